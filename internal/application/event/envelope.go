package event

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Envelope wraps every domain event published to the broker.
type Envelope struct {
	Version    int       `json:"version"`
	Producer   string    `json:"producer"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

func NewEnvelope(payload any, now time.Time) Envelope {
	return Envelope{
		Version:    1,
		Producer:   appName,
		OccurredAt: now.UTC(),
		Payload:    payload,
	}
}

// StatePayload describes an event lifecycle transition.
type StatePayload struct {
	EventID     uuid.UUID `json:"event_id"`
	InitiatorID uuid.UUID `json:"initiator_id"`
	State       string    `json:"state"`
	EventDate   time.Time `json:"event_date"`
}

// NoopPublisher drops every message; used in dev and tests.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	return nil
}
