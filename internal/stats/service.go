package stats

import (
	"context"
	"time"

	"github.com/eventhub/platform/internal/domain"
)

// Store is what the service needs from the hit repository.
type Store interface {
	SaveHit(ctx context.Context, hit EndpointHit) error
	Aggregate(ctx context.Context, start, end time.Time, uris []string, unique bool) ([]ViewStats, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Record(ctx context.Context, hit EndpointHit) error {
	if hit.App == "" || hit.URI == "" || hit.IP == "" {
		return domain.ErrValidation("app, uri and ip are required")
	}
	if hit.Timestamp.Time().IsZero() {
		return domain.ErrValidation("timestamp is required")
	}
	return s.store.SaveHit(ctx, hit)
}

func (s *Service) Stats(ctx context.Context, start, end time.Time, uris []string, unique bool) ([]ViewStats, error) {
	if start.IsZero() || end.IsZero() {
		return nil, domain.ErrValidation("start and end are required")
	}
	if start.After(end) {
		return nil, domain.ErrValidation("start must not be after end")
	}
	return s.store.Aggregate(ctx, start, end, uris, unique)
}
