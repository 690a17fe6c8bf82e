package dto

import "github.com/google/uuid"

type CategoryDto struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type UserDto struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type UserShortDto struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// EventDto is the full event view, served to owners, admins and the public
// detail endpoint.
type EventDto struct {
	ID                uuid.UUID    `json:"id"`
	Title             string       `json:"title"`
	Annotation        string       `json:"annotation"`
	Description       string       `json:"description"`
	Category          CategoryDto  `json:"category"`
	ConfirmedRequests int64        `json:"confirmedRequests"`
	CreatedOn         DateTime     `json:"createdOn"`
	EventDate         DateTime     `json:"eventDate"`
	Initiator         UserShortDto `json:"initiator"`
	Location          LocationDto  `json:"location"`
	Paid              bool         `json:"paid"`
	ParticipantLimit  int          `json:"participantLimit"`
	PublishedOn       *DateTime    `json:"publishedOn,omitempty"`
	RequestModeration bool         `json:"requestModeration"`
	State             string       `json:"state"`
	Views             int64        `json:"views"`
}

// EventShortDto is the list item view.
type EventShortDto struct {
	ID                uuid.UUID    `json:"id"`
	Title             string       `json:"title"`
	Annotation        string       `json:"annotation"`
	Category          CategoryDto  `json:"category"`
	ConfirmedRequests int64        `json:"confirmedRequests"`
	EventDate         DateTime     `json:"eventDate"`
	Initiator         UserShortDto `json:"initiator"`
	Paid              bool         `json:"paid"`
	Views             int64        `json:"views"`
}

type ParticipationRequestDto struct {
	ID        uuid.UUID `json:"id"`
	Created   DateTime  `json:"created"`
	Event     uuid.UUID `json:"event"`
	Requester uuid.UUID `json:"requester"`
	Status    string    `json:"status"`
}

type EventRequestStatusUpdateResult struct {
	ConfirmedRequests []ParticipationRequestDto `json:"confirmedRequests"`
	RejectedRequests  []ParticipationRequestDto `json:"rejectedRequests"`
}

type CompilationDto struct {
	ID     uuid.UUID       `json:"id"`
	Title  string          `json:"title"`
	Pinned bool            `json:"pinned"`
	Events []EventShortDto `json:"events"`
}

type CommentDto struct {
	ID       uuid.UUID `json:"id"`
	Text     string    `json:"text"`
	AuthorID uuid.UUID `json:"authorId"`
	EventID  uuid.UUID `json:"eventId"`
	Created  DateTime  `json:"created"`
	Status   string    `json:"status"`
}
