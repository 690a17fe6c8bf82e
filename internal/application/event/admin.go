package event

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/eventhub/platform/internal/domain"
)

type AdminUpdateCmd struct {
	Title       *string
	Annotation  *string
	Description *string
	CategoryID  *uuid.UUID
	EventDate   *time.Time
	Lat         *float64
	Lon         *float64

	Paid              *bool
	ParticipantLimit  *int
	RequestModeration *bool

	StateAction *domain.AdminStateAction
}

// AdminUpdate is the moderation edit: no ownership check, a 1 hour lead time
// when the event is being published or already is, 2 hours otherwise.
func (s *Service) AdminUpdate(ctx context.Context, eventID uuid.UUID, cmd AdminUpdateCmd) (*domain.Event, error) {
	ev, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if cmd.EventDate != nil {
		lead := domain.OwnerEditLead
		publishing := cmd.StateAction != nil && *cmd.StateAction == domain.ActionPublishEvent
		if publishing || ev.State == domain.StatePublished {
			lead = domain.PublishLead
		}
		if cmd.EventDate.Before(s.clock.Now().Add(lead)) {
			return nil, domain.ErrConflict("event_date is too soon for this change")
		}
	}

	patch, err := s.resolvePatch(ctx, UpdateCmd{
		Title:             cmd.Title,
		Annotation:        cmd.Annotation,
		Description:       cmd.Description,
		CategoryID:        cmd.CategoryID,
		EventDate:         cmd.EventDate,
		Lat:               cmd.Lat,
		Lon:               cmd.Lon,
		Paid:              cmd.Paid,
		ParticipantLimit:  cmd.ParticipantLimit,
		RequestModeration: cmd.RequestModeration,
	})
	if err != nil {
		return nil, err
	}
	if err := ev.ApplyPatch(patch); err != nil {
		return nil, err
	}

	if cmd.StateAction != nil {
		switch *cmd.StateAction {
		case domain.ActionPublishEvent:
			err = ev.Publish(s.clock.Now())
		case domain.ActionRejectEvent:
			err = ev.Reject()
		default:
			err = domain.ErrValidation("unknown state action: " + string(*cmd.StateAction))
		}
		if err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, ev); err != nil {
		return nil, err
	}
	s.invalidate(ctx, cacheKeyEventDetails(ev.ID))

	if cmd.StateAction != nil {
		switch *cmd.StateAction {
		case domain.ActionPublishEvent:
			s.publish(ctx, "event.published", NewEnvelope(StatePayload{
				EventID:     ev.ID,
				InitiatorID: ev.InitiatorID,
				State:       string(ev.State),
				EventDate:   ev.EventDate,
			}, s.clock.Now()))
		case domain.ActionRejectEvent:
			s.publish(ctx, "event.canceled", NewEnvelope(StatePayload{
				EventID:     ev.ID,
				InitiatorID: ev.InitiatorID,
				State:       string(ev.State),
				EventDate:   ev.EventDate,
			}, s.clock.Now()))
		}
	}

	return ev, nil
}

// AdminSearch filters events by users, states, categories and date range.
func (s *Service) AdminSearch(ctx context.Context, f AdminFilter) ([]*domain.Event, error) {
	if f.RangeStart != nil && f.RangeEnd != nil && f.RangeStart.After(*f.RangeEnd) {
		return nil, domain.ErrValidation("rangeStart must not be after rangeEnd")
	}
	return s.repo.AdminSearch(ctx, f)
}
