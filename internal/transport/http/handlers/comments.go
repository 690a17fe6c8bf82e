package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/eventhub/platform/internal/application/comment"
	"github.com/eventhub/platform/internal/domain"
	"github.com/eventhub/platform/internal/transport/http/dto"
	"github.com/eventhub/platform/internal/transport/http/response"
)

type CommentsHandler struct {
	svc *comment.Service
}

func NewCommentsHandler(svc *comment.Service) *CommentsHandler {
	return &CommentsHandler{svc: svc}
}

func (h *CommentsHandler) Create(w http.ResponseWriter, r *http.Request) {
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
	var req dto.NewCommentDto
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		response.Err(w, domain.ErrValidation("invalid json body"))
		return
	}

	c, err := h.svc.Create(r.Context(), userID, eventID, req.Text)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, dto.ToCommentDto(c))
}

func (h *CommentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userId")
	if err != nil {
		response.Err(w, err)
		return
	}
	commentID, err := pathUUID(r, "commentId")
	if err != nil {
		response.Err(w, err)
		return
	}
	var req dto.NewCommentDto
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		response.Err(w, domain.ErrValidation("invalid json body"))
		return
	}

	c, err := h.svc.Update(r.Context(), userID, commentID, req.Text)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusOK, dto.ToCommentDto(c))
}

func (h *CommentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "userId")
	if err != nil {
		response.Err(w, err)
		return
	}
	commentID, err := pathUUID(r, "commentId")
	if err != nil {
		response.Err(w, err)
		return
	}
	if err := h.svc.Delete(r.Context(), userID, commentID); err != nil {
		response.Err(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CommentsHandler) AdminPending(w http.ResponseWriter, r *http.Request) {
	comments, err := h.svc.AdminPending(r.Context())
	if err != nil {
		response.Err(w, err)
		return
	}
	out := make([]dto.CommentDto, 0, len(comments))
	for _, c := range comments {
		out = append(out, dto.ToCommentDto(c))
	}
	response.JSON(w, http.StatusOK, out)
}

func (h *CommentsHandler) AdminModerate(w http.ResponseWriter, r *http.Request) {
	commentID, err := pathUUID(r, "commentId")
	if err != nil {
		response.Err(w, err)
		return
	}
	publish, err := strconv.ParseBool(r.URL.Query().Get("publish"))
	if err != nil {
		response.Err(w, domain.ErrValidationMeta("invalid query param", map[string]string{
			"publish": "must be true or false",
		}))
		return
	}

	c, err := h.svc.AdminModerate(r.Context(), commentID, publish)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusOK, dto.ToCommentDto(c))
}
