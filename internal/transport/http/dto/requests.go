package dto

import "github.com/google/uuid"

type LocationDto struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type NewEventRequest struct {
	Title             string      `json:"title"`
	Annotation        string      `json:"annotation"`
	Description       string      `json:"description"`
	Category          uuid.UUID   `json:"category"`
	EventDate         DateTime    `json:"eventDate"`
	Location          LocationDto `json:"location"`
	Paid              bool        `json:"paid"`
	ParticipantLimit  int         `json:"participantLimit"`
	RequestModeration *bool       `json:"requestModeration"`
}

// UpdateEventUserRequest is the owner's partial patch; absent fields stay
// untouched.
type UpdateEventUserRequest struct {
	Title             *string      `json:"title"`
	Annotation        *string      `json:"annotation"`
	Description       *string      `json:"description"`
	Category          *uuid.UUID   `json:"category"`
	EventDate         *DateTime    `json:"eventDate"`
	Location          *LocationDto `json:"location"`
	Paid              *bool        `json:"paid"`
	ParticipantLimit  *int         `json:"participantLimit"`
	RequestModeration *bool        `json:"requestModeration"`
	StateAction       *string      `json:"stateAction"`
}

type UpdateEventAdminRequest struct {
	Title             *string      `json:"title"`
	Annotation        *string      `json:"annotation"`
	Description       *string      `json:"description"`
	Category          *uuid.UUID   `json:"category"`
	EventDate         *DateTime    `json:"eventDate"`
	Location          *LocationDto `json:"location"`
	Paid              *bool        `json:"paid"`
	ParticipantLimit  *int         `json:"participantLimit"`
	RequestModeration *bool        `json:"requestModeration"`
	StateAction       *string      `json:"stateAction"`
}

type EventRequestStatusUpdateRequest struct {
	RequestIDs []uuid.UUID `json:"requestIds"`
	Status     string      `json:"status"`
}

type NewCategoryDto struct {
	Name string `json:"name"`
}

type NewUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type NewCompilationDto struct {
	Title  string      `json:"title"`
	Pinned bool        `json:"pinned"`
	Events []uuid.UUID `json:"events"`
}

type UpdateCompilationRequest struct {
	Title  *string      `json:"title"`
	Pinned *bool        `json:"pinned"`
	Events *[]uuid.UUID `json:"events"`
}

type NewCommentDto struct {
	Text string `json:"text"`
}
