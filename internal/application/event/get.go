package event

import (
	"context"

	"github.com/google/uuid"

	"github.com/eventhub/platform/internal/domain"
	zlog "github.com/rs/zerolog/log"
)

// GetByOwner returns the initiator's own event in any state.
func (s *Service) GetByOwner(ctx context.Context, ownerID, eventID uuid.UUID) (Info, error) {
	ev, err := s.repo.GetByIDAndInitiator(ctx, eventID, ownerID)
	if err != nil {
		return Info{}, err
	}
	return s.enrichOne(ctx, ev)
}

// ListByOwner pages through the initiator's events.
func (s *Service) ListByOwner(ctx context.Context, ownerID uuid.UUID, from, size int) ([]Info, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	events, err := s.repo.ListByOwner(ctx, ownerID, from, size)
	if err != nil {
		return nil, err
	}
	return s.enrichMany(ctx, events)
}

// PublicGetByID serves the public event page: only published events are
// visible, and every access is recorded as a hit for the event's URI.
func (s *Service) PublicGetByID(ctx context.Context, eventID uuid.UUID, clientIP string) (Info, error) {
	ev, err := s.cachedByID(ctx, eventID)
	if err != nil {
		return Info{}, err
	}
	if ev.State != domain.StatePublished {
		return Info{}, domain.ErrNotFound("event not found")
	}

	s.recordHit(ctx, EventURI(eventID), clientIP)
	return s.enrichOne(ctx, ev)
}

func (s *Service) cachedByID(ctx context.Context, eventID uuid.UUID) (*domain.Event, error) {
	key := cacheKeyEventDetails(eventID)

	if s.cache != nil {
		var cached domain.Event
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			zlog.Warn().Err(err).Str("key", key).Msg("cache read failed")
		} else if hit {
			return &cached, nil
		}
	}

	ev, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, ev, s.ttlDetails); err != nil {
			zlog.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
	}
	return ev, nil
}
