package dto

import (
	"github.com/google/uuid"

	"github.com/eventhub/platform/internal/application/compilation"
	"github.com/eventhub/platform/internal/application/event"
	"github.com/eventhub/platform/internal/domain"
)

// Refs carries initiator and category rows resolved for a batch of events,
// so list mappings stay lookup-only.
type Refs struct {
	Users      map[uuid.UUID]*domain.User
	Categories map[uuid.UUID]*domain.Category
}

func (r Refs) user(id uuid.UUID) UserShortDto {
	if u, ok := r.Users[id]; ok {
		return UserShortDto{ID: u.ID, Name: u.Name}
	}
	return UserShortDto{ID: id}
}

func (r Refs) category(id uuid.UUID) CategoryDto {
	if c, ok := r.Categories[id]; ok {
		return CategoryDto{ID: c.ID, Name: c.Name}
	}
	return CategoryDto{ID: id}
}

func ToEventDto(info event.Info, refs Refs) EventDto {
	ev := info.Event
	out := EventDto{
		ID:                ev.ID,
		Title:             ev.Title,
		Annotation:        ev.Annotation,
		Description:       ev.Description,
		Category:          refs.category(ev.CategoryID),
		ConfirmedRequests: info.ConfirmedRequests,
		CreatedOn:         DateTime(ev.CreatedOn),
		EventDate:         DateTime(ev.EventDate),
		Initiator:         refs.user(ev.InitiatorID),
		Location:          LocationDto{Lat: ev.Location.Lat, Lon: ev.Location.Lon},
		Paid:              ev.Paid,
		ParticipantLimit:  ev.ParticipantLimit,
		RequestModeration: ev.RequestModeration,
		State:             string(ev.State),
		Views:             info.Views,
	}
	if ev.PublishedOn != nil {
		p := DateTime(*ev.PublishedOn)
		out.PublishedOn = &p
	}
	return out
}

func ToEventShortDto(info event.Info, refs Refs) EventShortDto {
	return shortFromEvent(info.Event, info.ConfirmedRequests, info.Views, refs)
}

func shortFromEvent(ev *domain.Event, confirmed, views int64, refs Refs) EventShortDto {
	return EventShortDto{
		ID:                ev.ID,
		Title:             ev.Title,
		Annotation:        ev.Annotation,
		Category:          refs.category(ev.CategoryID),
		ConfirmedRequests: confirmed,
		EventDate:         DateTime(ev.EventDate),
		Initiator:         refs.user(ev.InitiatorID),
		Paid:              ev.Paid,
		Views:             views,
	}
}

func ToParticipationRequestDto(r *domain.Request) ParticipationRequestDto {
	return ParticipationRequestDto{
		ID:        r.ID,
		Created:   DateTime(r.CreatedOn),
		Event:     r.EventID,
		Requester: r.RequesterID,
		Status:    string(r.Status),
	}
}

func ToParticipationRequestDtos(rs []*domain.Request) []ParticipationRequestDto {
	out := make([]ParticipationRequestDto, 0, len(rs))
	for _, r := range rs {
		out = append(out, ToParticipationRequestDto(r))
	}
	return out
}

func ToAdmissionResult(res domain.AdmissionResult) EventRequestStatusUpdateResult {
	return EventRequestStatusUpdateResult{
		ConfirmedRequests: ToParticipationRequestDtos(res.Confirmed),
		RejectedRequests:  ToParticipationRequestDtos(res.Rejected),
	}
}

func ToCategoryDto(c *domain.Category) CategoryDto {
	return CategoryDto{ID: c.ID, Name: c.Name}
}

func ToUserDto(u *domain.User) UserDto {
	return UserDto{ID: u.ID, Name: u.Name, Email: u.Email}
}

func ToCompilationDto(info compilation.Info, refs Refs) CompilationDto {
	events := make([]EventShortDto, 0, len(info.Events))
	for _, ev := range info.Events {
		events = append(events, shortFromEvent(ev, info.ConfirmedRequests[ev.ID], 0, refs))
	}
	return CompilationDto{
		ID:     info.Compilation.ID,
		Title:  info.Compilation.Title,
		Pinned: info.Compilation.Pinned,
		Events: events,
	}
}

func ToCommentDto(c *domain.Comment) CommentDto {
	return CommentDto{
		ID:       c.ID,
		Text:     c.Text,
		AuthorID: c.AuthorID,
		EventID:  c.EventID,
		Created:  DateTime(c.CreatedOn),
		Status:   string(c.Status),
	}
}
