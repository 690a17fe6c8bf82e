package handlers

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/eventhub/platform/internal/application/user"
	"github.com/eventhub/platform/internal/domain"
	"github.com/eventhub/platform/internal/transport/http/dto"
	"github.com/eventhub/platform/internal/transport/http/response"
)

type UsersHandler struct {
	svc *user.Service
}

func NewUsersHandler(svc *user.Service) *UsersHandler {
	return &UsersHandler{svc: svc}
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	ids, err := queryUUIDs(r, "ids")
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

	users, err := h.svc.List(r.Context(), ids, from, size)
	if err != nil {
		response.Err(w, err)
		return
	}
	out := make([]dto.UserDto, 0, len(users))
	for _, u := range users {
		out = append(out, dto.ToUserDto(u))
	}
	response.JSON(w, http.StatusOK, out)
}

func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.NewUserRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		response.Err(w, domain.ErrValidation("invalid json body"))
		return
	}
	u, err := h.svc.Create(r.Context(), req.Name, req.Email)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, dto.ToUserDto(u))
}

func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "userId")
	if err != nil {
		response.Err(w, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		response.Err(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
