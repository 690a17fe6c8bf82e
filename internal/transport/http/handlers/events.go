package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/render"

	"github.com/eventhub/platform/internal/application/category"
	"github.com/eventhub/platform/internal/application/event"
	"github.com/eventhub/platform/internal/application/user"
	"github.com/eventhub/platform/internal/domain"
	"github.com/eventhub/platform/internal/transport/http/dto"
	"github.com/eventhub/platform/internal/transport/http/response"
)

type EventsHandler struct {
	svc  *event.Service
	refs refResolver
}

func NewEventsHandler(svc *event.Service, users *user.Service, categories *category.Service) *EventsHandler {
	return &EventsHandler{svc: svc, refs: refResolver{users: users, categories: categories}}
}

func (h *EventsHandler) refsFor(ctx context.Context, infos []event.Info) dto.Refs {
	events := make([]*domain.Event, 0, len(infos))
	for _, info := range infos {
		events = append(events, info.Event)
	}
	return h.refs.forEvents(ctx, events)
}

// Public

func (h *EventsHandler) PublicList(w http.ResponseWriter, r *http.Request) {
	f, order, err := publicFilter(r)
	if err != nil {
		response.Err(w, err)
		return
	}

	infos, err := h.svc.PublicSearch(r.Context(), f, order, clientIP(r))
	if err != nil {
		response.Err(w, err)
		return
	}

	refs := h.refsFor(r.Context(), infos)
	out := make([]dto.EventShortDto, 0, len(infos))
	for _, info := range infos {
		out = append(out, dto.ToEventShortDto(info, refs))
	}
	response.JSON(w, http.StatusOK, out)
}

func publicFilter(r *http.Request) (event.SearchFilter, event.SortOrder, error) {
	var f event.SearchFilter
	var err error

	if f.CategoryIDs, err = queryUUIDs(r, "categories"); err != nil {
		return f, "", err
	}
	if f.Paid, err = queryBool(r, "paid"); err != nil {
		return f, "", err
	}
	if f.RangeStart, err = queryTime(r, "rangeStart"); err != nil {
		return f, "", err
	}
	if f.RangeEnd, err = queryTime(r, "rangeEnd"); err != nil {
		return f, "", err
	}
	onlyAvailable, err := queryBool(r, "onlyAvailable")
	if err != nil {
		return f, "", err
	}
	f.OnlyAvailable = onlyAvailable != nil && *onlyAvailable
	if f.From, err = queryInt(r, "from", 0); err != nil {
		return f, "", err
	}
	if f.Size, err = queryInt(r, "size", 10); err != nil {
		return f, "", err
	}
	f.Text = r.URL.Query().Get("text")

	order := event.SortOrder(r.URL.Query().Get("sort"))
	switch order {
	case "", event.SortByEventDate, event.SortByViews:
	default:
		return f, "", domain.ErrValidationMeta("invalid query param", map[string]string{
			"sort": "must be EVENT_DATE or VIEWS",
		})
	}
	return f, order, nil
}

func (h *EventsHandler) PublicGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "eventId")
	if err != nil {
		response.Err(w, err)
		return
	}
	info, err := h.svc.PublicGetByID(r.Context(), id, clientIP(r))
	if err != nil {
		response.Err(w, err)
		return
	}
	refs := h.refsFor(r.Context(), []event.Info{info})
	response.JSON(w, http.StatusOK, dto.ToEventDto(info, refs))
}

// Owner

func (h *EventsHandler) OwnerList(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userId")
	if err != nil {
		response.Err(w, err)
		return
	}
	from, err := queryInt(r, "from", 0)
	if err != nil {
		response.Err(w, err)
		return
	}
	size, err := queryInt(r, "size", 10)
	if err != nil {
		response.Err(w, err)
		return
	}

	infos, err := h.svc.ListByOwner(r.Context(), userID, from, size)
	if err != nil {
		response.Err(w, err)
		return
	}
	refs := h.refsFor(r.Context(), infos)
	out := make([]dto.EventShortDto, 0, len(infos))
	for _, info := range infos {
		out = append(out, dto.ToEventShortDto(info, refs))
	}
	response.JSON(w, http.StatusOK, out)
}

func (h *EventsHandler) OwnerCreate(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userId")
	if err != nil {
		response.Err(w, err)
		return
	}

	var req dto.NewEventRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		response.Err(w, domain.ErrValidation("invalid json body"))
		return
	}

	moderation := true
	if req.RequestModeration != nil {
		moderation = *req.RequestModeration
	}
	ev, err := h.svc.Create(r.Context(), event.CreateCmd{
		InitiatorID:       userID,
		Title:             req.Title,
		Annotation:        req.Annotation,
		Description:       req.Description,
		CategoryID:        req.Category,
		EventDate:         req.EventDate.Time(),
		Lat:               req.Location.Lat,
		Lon:               req.Location.Lon,
		Paid:              req.Paid,
		ParticipantLimit:  req.ParticipantLimit,
		RequestModeration: moderation,
	})
	if err != nil {
		response.Err(w, err)
		return
	}
	h.writeFull(w, r, ev, http.StatusCreated)
}

func (h *EventsHandler) OwnerGet(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userId")
	if err != nil {
		response.Err(w, err)
		return
	}
	eventID, err := pathUUID(r, "eventId")
	if err != nil {
		response.Err(w, err)
		return
	}
	info, err := h.svc.GetByOwner(r.Context(), userID, eventID)
	if err != nil {
		response.Err(w, err)
		return
	}
	refs := h.refsFor(r.Context(), []event.Info{info})
	response.JSON(w, http.StatusOK, dto.ToEventDto(info, refs))
}

func (h *EventsHandler) OwnerUpdate(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userId")
	if err != nil {
		response.Err(w, err)
		return
	}
	eventID, err := pathUUID(r, "eventId")
	if err != nil {
		response.Err(w, err)
		return
	}

	var req dto.UpdateEventUserRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		response.Err(w, domain.ErrValidation("invalid json body"))
		return
	}

	cmd := event.UpdateCmd{
		Title:             req.Title,
		Annotation:        req.Annotation,
		Description:       req.Description,
		CategoryID:        req.Category,
		Paid:              req.Paid,
		ParticipantLimit:  req.ParticipantLimit,
		RequestModeration: req.RequestModeration,
	}
	if req.EventDate != nil {
		t := req.EventDate.Time()
		cmd.EventDate = &t
	}
	if req.Location != nil {
		cmd.Lat = &req.Location.Lat
		cmd.Lon = &req.Location.Lon
	}
	if req.StateAction != nil {
		action := domain.UserStateAction(*req.StateAction)
		switch action {
		case domain.ActionSendToReview, domain.ActionCancelReview:
		default:
			response.Err(w, domain.ErrValidationMeta("invalid body field", map[string]string{
				"stateAction": "must be SEND_TO_REVIEW or CANCEL_REVIEW",
			}))
			return
		}
		cmd.StateAction = &action
	}

	ev, err := h.svc.Update(r.Context(), userID, eventID, cmd)
	if err != nil {
		response.Err(w, err)
		return
	}
	h.writeFull(w, r, ev, http.StatusOK)
}

// Admin

func (h *EventsHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	var f event.AdminFilter
	var err error

	if f.UserIDs, err = queryUUIDs(r, "users"); err != nil {
		response.Err(w, err)
		return
	}
	if f.CategoryIDs, err = queryUUIDs(r, "categories"); err != nil {
		response.Err(w, err)
		return
	}
	for _, s := range r.URL.Query()["states"] {
		state := domain.EventState(s)
		if !state.Valid() {
			response.Err(w, domain.ErrValidationMeta("invalid query param", map[string]string{
				"states": "unknown event state " + s,
			}))
			return
		}
		f.States = append(f.States, state)
	}
	if f.RangeStart, err = queryTime(r, "rangeStart"); err != nil {
		response.Err(w, err)
		return
	}
	if f.RangeEnd, err = queryTime(r, "rangeEnd"); err != nil {
		response.Err(w, err)
		return
	}
	if f.From, err = queryInt(r, "from", 0); err != nil {
		response.Err(w, err)
		return
	}
	if f.Size, err = queryInt(r, "size", 10); err != nil {
		response.Err(w, err)
		return
	}

	events, err := h.svc.AdminSearch(r.Context(), f)
	if err != nil {
		response.Err(w, err)
		return
	}
	infos := make([]event.Info, 0, len(events))
	for _, ev := range events {
		info, err := h.svc.Describe(r.Context(), ev)
		if err != nil {
			response.Err(w, err)
			return
		}
		infos = append(infos, info)
	}
	refs := h.refsFor(r.Context(), infos)
	out := make([]dto.EventDto, 0, len(infos))
	for _, info := range infos {
		out = append(out, dto.ToEventDto(info, refs))
	}
	response.JSON(w, http.StatusOK, out)
}

func (h *EventsHandler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathUUID(r, "eventId")
	if err != nil {
		response.Err(w, err)
		return
	}

	var req dto.UpdateEventAdminRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		response.Err(w, domain.ErrValidation("invalid json body"))
		return
	}

	cmd := event.AdminUpdateCmd{
		Title:             req.Title,
		Annotation:        req.Annotation,
		Description:       req.Description,
		CategoryID:        req.Category,
		Paid:              req.Paid,
		ParticipantLimit:  req.ParticipantLimit,
		RequestModeration: req.RequestModeration,
	}
	if req.EventDate != nil {
		t := req.EventDate.Time()
		cmd.EventDate = &t
	}
	if req.Location != nil {
		cmd.Lat = &req.Location.Lat
		cmd.Lon = &req.Location.Lon
	}
	if req.StateAction != nil {
		action := domain.AdminStateAction(*req.StateAction)
		switch action {
		case domain.ActionPublishEvent, domain.ActionRejectEvent:
		default:
			response.Err(w, domain.ErrValidationMeta("invalid body field", map[string]string{
				"stateAction": "must be PUBLISH_EVENT or REJECT_EVENT",
			}))
			return
		}
		cmd.StateAction = &action
	}

	ev, err := h.svc.AdminUpdate(r.Context(), eventID, cmd)
	if err != nil {
		response.Err(w, err)
		return
	}
	h.writeFull(w, r, ev, http.StatusOK)
}

func (h *EventsHandler) writeFull(w http.ResponseWriter, r *http.Request, ev *domain.Event, status int) {
	info, err := h.svc.Describe(r.Context(), ev)
	if err != nil {
		response.Err(w, err)
		return
	}
	refs := h.refsFor(r.Context(), []event.Info{info})
	response.JSON(w, status, dto.ToEventDto(info, refs))
}
