package request

import (
	"context"

	"github.com/google/uuid"

	"github.com/eventhub/platform/internal/domain"
)

// RequestRepo owns the request rows. Submit and BulkUpdate are transactional:
// the implementation must serialize them per event so capacity checks cannot
// race (event row locked before the confirmed count is read).
type RequestRepo interface {
	Submit(ctx context.Context, requesterID, eventID uuid.UUID) (*domain.Request, error)
	CancelByRequester(ctx context.Context, requestID, requesterID uuid.UUID) (*domain.Request, error)
	ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]*domain.Request, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*domain.Request, error)
	BulkUpdate(ctx context.Context, eventID uuid.UUID, requestIDs []uuid.UUID, target domain.RequestStatus) (domain.AdmissionResult, error)
}

type EventRepo interface {
	GetByIDAndInitiator(ctx context.Context, id, initiatorID uuid.UUID) (*domain.Event, error)
}

type UserRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}
