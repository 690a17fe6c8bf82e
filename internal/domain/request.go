package domain

import (
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	RequestPending   RequestStatus = "PENDING"
	RequestConfirmed RequestStatus = "CONFIRMED"
	RequestRejected  RequestStatus = "REJECTED"
	RequestCanceled  RequestStatus = "CANCELED"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestConfirmed, RequestRejected, RequestCanceled:
		return true
	}
	return false
}

// Request is a user's application to participate in an event.
type Request struct {
	ID          uuid.UUID
	EventID     uuid.UUID
	RequesterID uuid.UUID
	CreatedOn   time.Time
	Status      RequestStatus
}

// NewRequest builds a submission against a published event. The status is
// decided up front: moderation disabled or no participant limit means the
// request is confirmed immediately.
func NewRequest(requesterID uuid.UUID, ev *Event, now time.Time) (*Request, error) {
	if requesterID == ev.InitiatorID {
		return nil, ErrConflict("the initiator cannot request participation in their own event")
	}
	if ev.State != StatePublished {
		return nil, ErrConflict("cannot participate in an unpublished event")
	}

	status := RequestPending
	if !ev.RequestModeration || ev.ParticipantLimit == 0 {
		status = RequestConfirmed
	}

	return &Request{
		ID:          uuid.New(),
		EventID:     ev.ID,
		RequesterID: requesterID,
		CreatedOn:   now.UTC(),
		Status:      status,
	}, nil
}

// Cancel is requester-initiated and idempotent: any prior status collapses to
// CANCELED.
func (r *Request) Cancel() {
	r.Status = RequestCanceled
}
