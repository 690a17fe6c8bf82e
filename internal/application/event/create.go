package event

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/eventhub/platform/internal/domain"
)

type CreateCmd struct {
	InitiatorID uuid.UUID

	Title       string
	Annotation  string
	Description string
	CategoryID  uuid.UUID
	EventDate   time.Time
	Lat         float64
	Lon         float64

	Paid              bool
	ParticipantLimit  int
	RequestModeration bool
}

func (s *Service) Create(ctx context.Context, cmd CreateCmd) (*domain.Event, error) {
	if _, err := s.users.GetByID(ctx, cmd.InitiatorID); err != nil {
		return nil, err
	}
	if _, err := s.categories.GetByID(ctx, cmd.CategoryID); err != nil {
		return nil, err
	}

	loc, err := s.locations.FindOrCreate(ctx, cmd.Lat, cmd.Lon)
	if err != nil {
		return nil, err
	}

	ev, err := domain.NewEvent(
		cmd.InitiatorID, cmd.CategoryID,
		cmd.Title, cmd.Annotation, cmd.Description,
		cmd.EventDate, loc,
		cmd.Paid, cmd.ParticipantLimit, cmd.RequestModeration,
		s.clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}
