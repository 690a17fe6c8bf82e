package event

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/eventhub/platform/internal/domain"
	zlog "github.com/rs/zerolog/log"
)

// Info is an event enriched with its confirmed-request count and view count.
type Info struct {
	Event             *domain.Event
	ConfirmedRequests int64
	Views             int64
}

// EventURI is the canonical URI the stat service keys view counts by.
func EventURI(id uuid.UUID) string {
	return fmt.Sprintf("/events/%s", id)
}

// Describe enriches a single already-loaded event, for responses to writes.
func (s *Service) Describe(ctx context.Context, ev *domain.Event) (Info, error) {
	return s.enrichOne(ctx, ev)
}

func (s *Service) enrichOne(ctx context.Context, ev *domain.Event) (Info, error) {
	confirmed, err := s.requests.CountConfirmed(ctx, ev.ID)
	if err != nil {
		return Info{}, err
	}
	views := s.viewsFor(ctx, []uuid.UUID{ev.ID})
	return Info{Event: ev, ConfirmedRequests: confirmed, Views: views[ev.ID]}, nil
}

func (s *Service) enrichMany(ctx context.Context, events []*domain.Event) ([]Info, error) {
	if len(events) == 0 {
		return []Info{}, nil
	}
	ids := make([]uuid.UUID, 0, len(events))
	for _, ev := range events {
		ids = append(ids, ev.ID)
	}

	confirmed, err := s.requests.CountConfirmedBatch(ctx, ids)
	if err != nil {
		return nil, err
	}
	views := s.viewsFor(ctx, ids)

	out := make([]Info, 0, len(events))
	for _, ev := range events {
		out = append(out, Info{
			Event:             ev,
			ConfirmedRequests: confirmed[ev.ID],
			Views:             views[ev.ID],
		})
	}
	return out, nil
}

// viewsFor queries the stat service over the fixed lookback window. A stats
// outage degrades reads to zero views instead of failing them.
func (s *Service) viewsFor(ctx context.Context, ids []uuid.UUID) map[uuid.UUID]int64 {
	out := make(map[uuid.UUID]int64, len(ids))
	if s.stats == nil || len(ids) == 0 {
		return out
	}

	uris := make([]string, 0, len(ids))
	byURI := make(map[string]uuid.UUID, len(ids))
	for _, id := range ids {
		uri := EventURI(id)
		uris = append(uris, uri)
		byURI[uri] = id
	}

	now := s.clock.Now()
	hits, err := s.stats.Views(ctx, uris, now.Add(-viewsLookback), now, true)
	if err != nil {
		zlog.Warn().Err(err).Msg("view stats query failed")
		return out
	}
	for uri, n := range hits {
		if id, ok := byURI[uri]; ok {
			out[id] = n
		}
	}
	return out
}

func (s *Service) recordHit(ctx context.Context, uri, ip string) {
	if s.stats == nil {
		return
	}
	s.stats.RecordHit(ctx, uri, ip)
}
