package handlers

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/eventhub/platform/internal/application/request"
	"github.com/eventhub/platform/internal/domain"
	"github.com/eventhub/platform/internal/transport/http/dto"
	"github.com/eventhub/platform/internal/transport/http/response"
)

type RequestsHandler struct {
	svc *request.Service
}

func NewRequestsHandler(svc *request.Service) *RequestsHandler {
	return &RequestsHandler{svc: svc}
}

func (h *RequestsHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userId")
	if err != nil {
		response.Err(w, err)
		return
	}
	reqs, err := h.svc.ListByRequester(r.Context(), userID)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusOK, dto.ToParticipationRequestDtos(reqs))
}

func (h *RequestsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userId")
	if err != nil {
		response.Err(w, err)
		return
	}
	eventID, err := uuid.Parse(r.URL.Query().Get("eventId"))
	if err != nil {
		response.Err(w, domain.ErrValidationMeta("invalid query param", map[string]string{
			"eventId": "must be a valid uuid",
		}))
		return
	}

	req, err := h.svc.Submit(r.Context(), userID, eventID)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, dto.ToParticipationRequestDto(req))
}

func (h *RequestsHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userId")
	if err != nil {
		response.Err(w, err)
		return
	}
	requestID, err := pathUUID(r, "requestId")
	if err != nil {
		response.Err(w, err)
		return
	}

	req, err := h.svc.Cancel(r.Context(), userID, requestID)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusOK, dto.ToParticipationRequestDto(req))
}

func (h *RequestsHandler) ListForEvent(w http.ResponseWriter, r *http.Request) {
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

	reqs, err := h.svc.ListEventRequests(r.Context(), userID, eventID)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusOK, dto.ToParticipationRequestDtos(reqs))
}

func (h *RequestsHandler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
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

	var body dto.EventRequestStatusUpdateRequest
	if err := render.DecodeJSON(r.Body, &body); err != nil {
		response.Err(w, domain.ErrValidation("invalid json body"))
		return
	}

	res, err := h.svc.BulkUpdate(r.Context(), userID, eventID, body.RequestIDs, domain.RequestStatus(body.Status))
	if err != nil {
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusOK, dto.ToAdmissionResult(res))
}
