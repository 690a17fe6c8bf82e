package event

import "github.com/google/uuid"

func cacheKeyEventDetails(id uuid.UUID) string {
	return "event:details:" + id.String()
}
