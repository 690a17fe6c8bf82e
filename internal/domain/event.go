package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Lead times the event date must keep ahead of "now". Owners create and edit
// with a 2 hour margin; admins publish with a 1 hour margin relative to the
// publication moment.
const (
	OwnerEditLead = 2 * time.Hour
	PublishLead   = 1 * time.Hour
)

type EventState string

const (
	StatePending   EventState = "PENDING"
	StatePublished EventState = "PUBLISHED"
	StateCanceled  EventState = "CANCELED"
)

func (s EventState) Valid() bool {
	return s == StatePending || s == StatePublished || s == StateCanceled
}

// UserStateAction is the state marker an owner may carry in a patch.
type UserStateAction string

const (
	ActionSendToReview UserStateAction = "SEND_TO_REVIEW"
	ActionCancelReview UserStateAction = "CANCEL_REVIEW"
)

// AdminStateAction is the state transition an administrator requests.
type AdminStateAction string

const (
	ActionPublishEvent AdminStateAction = "PUBLISH_EVENT"
	ActionRejectEvent  AdminStateAction = "REJECT_EVENT"
)

type Location struct {
	ID  uuid.UUID
	Lat float64
	Lon float64
}

type Event struct {
	ID          uuid.UUID
	Title       string
	Annotation  string
	Description string

	EventDate time.Time
	Location  Location

	Paid              bool
	ParticipantLimit  int // 0 = unlimited
	RequestModeration bool

	State       EventState
	CreatedOn   time.Time
	PublishedOn *time.Time

	InitiatorID uuid.UUID
	CategoryID  uuid.UUID
}

func NewEvent(initiatorID, categoryID uuid.UUID, title, annotation, description string, eventDate time.Time, loc Location, paid bool, participantLimit int, requestModeration bool, now time.Time) (*Event, error) {
	title = strings.TrimSpace(title)
	annotation = strings.TrimSpace(annotation)
	description = strings.TrimSpace(description)

	if len(title) < 3 || len(title) > 120 {
		return nil, ErrValidation("title must be 3..120 chars")
	}
	if len(annotation) < 20 || len(annotation) > 2000 {
		return nil, ErrValidation("annotation must be 20..2000 chars")
	}
	if len(description) < 20 || len(description) > 7000 {
		return nil, ErrValidation("description must be 20..7000 chars")
	}
	if participantLimit < 0 {
		return nil, ErrValidation("participant_limit must be >= 0 (0 means unlimited)")
	}
	if eventDate.IsZero() {
		return nil, ErrValidation("event_date is required")
	}
	if eventDate.Before(now.Add(OwnerEditLead)) {
		return nil, ErrConflict("event_date must be at least 2 hours ahead of now")
	}

	return &Event{
		ID:                uuid.New(),
		Title:             title,
		Annotation:        annotation,
		Description:       description,
		EventDate:         eventDate.UTC(),
		Location:          loc,
		Paid:              paid,
		ParticipantLimit:  participantLimit,
		RequestModeration: requestModeration,
		State:             StatePending,
		CreatedOn:         now.UTC(),
		InitiatorID:       initiatorID,
		CategoryID:        categoryID,
	}, nil
}

// EventPatch carries partial-update fields; nil means "leave unchanged".
type EventPatch struct {
	Title             *string
	Annotation        *string
	Description       *string
	CategoryID        *uuid.UUID
	EventDate         *time.Time
	Location          *Location
	Paid              *bool
	ParticipantLimit  *int
	RequestModeration *bool
}

// ApplyPatch mutates the event with the present fields only. The event date
// lead-time check belongs to the caller since owner and admin margins differ.
func (e *Event) ApplyPatch(p EventPatch) error {
	if p.Title != nil {
		v := strings.TrimSpace(*p.Title)
		if len(v) < 3 || len(v) > 120 {
			return ErrValidation("title must be 3..120 chars")
		}
		e.Title = v
	}
	if p.Annotation != nil {
		v := strings.TrimSpace(*p.Annotation)
		if len(v) < 20 || len(v) > 2000 {
			return ErrValidation("annotation must be 20..2000 chars")
		}
		e.Annotation = v
	}
	if p.Description != nil {
		v := strings.TrimSpace(*p.Description)
		if len(v) < 20 || len(v) > 7000 {
			return ErrValidation("description must be 20..7000 chars")
		}
		e.Description = v
	}
	if p.CategoryID != nil {
		e.CategoryID = *p.CategoryID
	}
	if p.EventDate != nil {
		e.EventDate = p.EventDate.UTC()
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.Paid != nil {
		e.Paid = *p.Paid
	}
	if p.ParticipantLimit != nil {
		if *p.ParticipantLimit < 0 {
			return ErrValidation("participant_limit must be >= 0 (0 means unlimited)")
		}
		e.ParticipantLimit = *p.ParticipantLimit
	}
	if p.RequestModeration != nil {
		e.RequestModeration = *p.RequestModeration
	}
	return nil
}

// EditableByOwner reports whether the initiator may still modify the event.
func (e *Event) EditableByOwner() bool {
	return e.State != StatePublished
}

// SendToReview moves the event back to PENDING. Allowed from any non-published
// state; re-submitting a pending event is a no-op marker.
func (e *Event) SendToReview() error {
	if e.State == StatePublished {
		return ErrConflict("published event cannot be sent to review")
	}
	e.State = StatePending
	return nil
}

// CancelReview cancels an event the owner no longer wants reviewed.
func (e *Event) CancelReview() error {
	if e.State == StatePublished {
		return ErrConflict("published event cannot be canceled by owner")
	}
	e.State = StateCanceled
	return nil
}

// Publish transitions PENDING -> PUBLISHED and stamps publishedOn exactly once.
func (e *Event) Publish(now time.Time) error {
	if e.State != StatePending {
		return ErrConflict("only a pending event can be published, current state: " + string(e.State))
	}
	if e.EventDate.Before(now.Add(PublishLead)) {
		return ErrConflict("event_date must be at least 1 hour ahead of the publication time")
	}
	t := now.UTC()
	e.State = StatePublished
	e.PublishedOn = &t
	return nil
}

// Reject cancels a not-yet-published event.
func (e *Event) Reject() error {
	if e.State == StatePublished {
		return ErrConflict("a published event cannot be rejected")
	}
	e.State = StateCanceled
	return nil
}
