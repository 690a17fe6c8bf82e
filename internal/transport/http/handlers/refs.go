package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/eventhub/platform/internal/application/category"
	"github.com/eventhub/platform/internal/application/user"
	"github.com/eventhub/platform/internal/domain"
	"github.com/eventhub/platform/internal/transport/http/dto"
)

// refResolver batch-resolves the initiators and categories referenced by a
// page of events. Rows that vanished mid-request degrade to id-only stubs.
type refResolver struct {
	users      *user.Service
	categories *category.Service
}

func (rr refResolver) forEvents(ctx context.Context, events []*domain.Event) dto.Refs {
	userSeen := map[uuid.UUID]bool{}
	catSeen := map[uuid.UUID]bool{}
	var userIDs []uuid.UUID
	for _, ev := range events {
		if !userSeen[ev.InitiatorID] {
			userSeen[ev.InitiatorID] = true
			userIDs = append(userIDs, ev.InitiatorID)
		}
		catSeen[ev.CategoryID] = true
	}

	refs := dto.Refs{
		Users:      map[uuid.UUID]*domain.User{},
		Categories: map[uuid.UUID]*domain.Category{},
	}
	if len(userIDs) > 0 {
		if users, err := rr.users.List(ctx, userIDs, 0, len(userIDs)); err == nil {
			for _, u := range users {
				refs.Users[u.ID] = u
			}
		}
	}
	for id := range catSeen {
		if c, err := rr.categories.Get(ctx, id); err == nil {
			refs.Categories[id] = c
		}
	}
	return refs
}
