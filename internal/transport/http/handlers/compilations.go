package handlers

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/eventhub/platform/internal/application/category"
	"github.com/eventhub/platform/internal/application/compilation"
	"github.com/eventhub/platform/internal/application/user"
	"github.com/eventhub/platform/internal/domain"
	"github.com/eventhub/platform/internal/transport/http/dto"
	"github.com/eventhub/platform/internal/transport/http/response"
)

type CompilationsHandler struct {
	svc  *compilation.Service
	refs refResolver
}

func NewCompilationsHandler(svc *compilation.Service, users *user.Service, categories *category.Service) *CompilationsHandler {
	return &CompilationsHandler{svc: svc, refs: refResolver{users: users, categories: categories}}
}

func (h *CompilationsHandler) write(w http.ResponseWriter, r *http.Request, info compilation.Info, status int) {
	refs := h.refs.forEvents(r.Context(), info.Events)
	response.JSON(w, status, dto.ToCompilationDto(info, refs))
}

func (h *CompilationsHandler) List(w http.ResponseWriter, r *http.Request) {
	pinned, err := queryBool(r, "pinned")
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

	infos, err := h.svc.List(r.Context(), pinned, from, size)
	if err != nil {
		response.Err(w, err)
		return
	}

	var allEvents []*domain.Event
	for _, info := range infos {
		allEvents = append(allEvents, info.Events...)
	}
	refs := h.refs.forEvents(r.Context(), allEvents)
	out := make([]dto.CompilationDto, 0, len(infos))
	for _, info := range infos {
		out = append(out, dto.ToCompilationDto(info, refs))
	}
	response.JSON(w, http.StatusOK, out)
}

func (h *CompilationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "compId")
	if err != nil {
		response.Err(w, err)
		return
	}
	info, err := h.svc.Get(r.Context(), id)
	if err != nil {
		response.Err(w, err)
		return
	}
	h.write(w, r, info, http.StatusOK)
}

func (h *CompilationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.NewCompilationDto
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		response.Err(w, domain.ErrValidation("invalid json body"))
		return
	}
	info, err := h.svc.Create(r.Context(), req.Title, req.Pinned, req.Events)
	if err != nil {
		response.Err(w, err)
		return
	}
	h.write(w, r, info, http.StatusCreated)
}

func (h *CompilationsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "compId")
	if err != nil {
		response.Err(w, err)
		return
	}
	var req dto.UpdateCompilationRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		response.Err(w, domain.ErrValidation("invalid json body"))
		return
	}
	info, err := h.svc.Update(r.Context(), id, compilation.UpdateCmd{
		Title:    req.Title,
		Pinned:   req.Pinned,
		EventIDs: req.Events,
	})
	if err != nil {
		response.Err(w, err)
		return
	}
	h.write(w, r, info, http.StatusOK)
}

func (h *CompilationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "compId")
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
