package request

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/eventhub/platform/internal/domain"
	zlog "github.com/rs/zerolog/log"
)

type Service struct {
	repo   RequestRepo
	events EventRepo
	users  UserRepo
	pub    Publisher
}

func New(repo RequestRepo, events EventRepo, users UserRepo, pub Publisher) *Service {
	return &Service{repo: repo, events: events, users: users, pub: pub}
}

// StatusPayload describes a request status change on the broker.
type StatusPayload struct {
	RequestID   uuid.UUID `json:"request_id"`
	EventID     uuid.UUID `json:"event_id"`
	RequesterID uuid.UUID `json:"requester_id"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Submit files a participation request. Duplicate, self-request, unpublished
// and full-event violations surface as conflicts from the store, which decides
// them under the event row lock.
func (s *Service) Submit(ctx context.Context, requesterID, eventID uuid.UUID) (*domain.Request, error) {
	if _, err := s.users.GetByID(ctx, requesterID); err != nil {
		return nil, err
	}

	req, err := s.repo.Submit(ctx, requesterID, eventID)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, "request.created", req)
	return req, nil
}

// Cancel is requester-initiated and idempotent.
func (s *Service) Cancel(ctx context.Context, requesterID, requestID uuid.UUID) (*domain.Request, error) {
	req, err := s.repo.CancelByRequester(ctx, requestID, requesterID)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, "request.canceled", req)
	return req, nil
}

// ListByRequester returns all requests a user has filed.
func (s *Service) ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]*domain.Request, error) {
	if _, err := s.users.GetByID(ctx, requesterID); err != nil {
		return nil, err
	}
	return s.repo.ListByRequester(ctx, requesterID)
}

// ListEventRequests returns all requests against one of the owner's events.
func (s *Service) ListEventRequests(ctx context.Context, ownerID, eventID uuid.UUID) ([]*domain.Request, error) {
	if _, err := s.events.GetByIDAndInitiator(ctx, eventID, ownerID); err != nil {
		return nil, err
	}
	return s.repo.ListByEvent(ctx, eventID)
}

// BulkUpdate applies the owner's confirm/reject decision to a batch of
// pending requests; the capacity admission policy runs inside the store
// transaction.
func (s *Service) BulkUpdate(ctx context.Context, ownerID, eventID uuid.UUID, requestIDs []uuid.UUID, target domain.RequestStatus) (domain.AdmissionResult, error) {
	if target != domain.RequestConfirmed && target != domain.RequestRejected {
		return domain.AdmissionResult{}, domain.ErrValidation("target status must be CONFIRMED or REJECTED")
	}
	if _, err := s.events.GetByIDAndInitiator(ctx, eventID, ownerID); err != nil {
		return domain.AdmissionResult{}, err
	}

	res, err := s.repo.BulkUpdate(ctx, eventID, requestIDs, target)
	if err != nil {
		return domain.AdmissionResult{}, err
	}

	for _, r := range res.Confirmed {
		s.notify(ctx, "request.confirmed", r)
	}
	return res, nil
}

func (s *Service) notify(ctx context.Context, routingKey string, req *domain.Request) {
	if s.pub == nil {
		return
	}
	payload := StatusPayload{
		RequestID:   req.ID,
		EventID:     req.EventID,
		RequesterID: req.RequesterID,
		Status:      string(req.Status),
		OccurredAt:  time.Now().UTC(),
	}
	if err := s.pub.Publish(ctx, routingKey, payload); err != nil {
		zlog.Error().Err(err).Str("rk", routingKey).Str("request_id", req.ID.String()).Msg("publish domain event failed")
	}
}
