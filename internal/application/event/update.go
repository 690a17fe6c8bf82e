package event

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/eventhub/platform/internal/domain"
)

type UpdateCmd struct {
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

	StateAction *domain.UserStateAction
}

// Update is the owner-side partial edit. Published events are frozen for the
// owner; ownership mismatch reads as not-found.
func (s *Service) Update(ctx context.Context, initiatorID, eventID uuid.UUID, cmd UpdateCmd) (*domain.Event, error) {
	ev, err := s.repo.GetByIDAndInitiator(ctx, eventID, initiatorID)
	if err != nil {
		return nil, err
	}
	if !ev.EditableByOwner() {
		return nil, domain.ErrConflict("only pending or canceled events can be modified")
	}

	if cmd.EventDate != nil && cmd.EventDate.Before(s.clock.Now().Add(domain.OwnerEditLead)) {
		return nil, domain.ErrConflict("event_date must be at least 2 hours ahead of now")
	}

	patch, err := s.resolvePatch(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if err := ev.ApplyPatch(patch); err != nil {
		return nil, err
	}

	if cmd.StateAction != nil {
		switch *cmd.StateAction {
		case domain.ActionSendToReview:
			err = ev.SendToReview()
		case domain.ActionCancelReview:
			err = ev.CancelReview()
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
	return ev, nil
}

// resolvePatch maps an update command onto a domain patch, resolving category
// and location references against their stores.
func (s *Service) resolvePatch(ctx context.Context, cmd UpdateCmd) (domain.EventPatch, error) {
	patch := domain.EventPatch{
		Title:             cmd.Title,
		Annotation:        cmd.Annotation,
		Description:       cmd.Description,
		EventDate:         cmd.EventDate,
		Paid:              cmd.Paid,
		ParticipantLimit:  cmd.ParticipantLimit,
		RequestModeration: cmd.RequestModeration,
	}

	if cmd.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *cmd.CategoryID); err != nil {
			return domain.EventPatch{}, err
		}
		patch.CategoryID = cmd.CategoryID
	}

	if cmd.Lat != nil || cmd.Lon != nil {
		if cmd.Lat == nil || cmd.Lon == nil {
			return domain.EventPatch{}, domain.ErrValidation("location requires both lat and lon")
		}
		loc, err := s.locations.FindOrCreate(ctx, *cmd.Lat, *cmd.Lon)
		if err != nil {
			return domain.EventPatch{}, err
		}
		patch.Location = &loc
	}

	return patch, nil
}
