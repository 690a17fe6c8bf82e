package handlers

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/eventhub/platform/internal/application/category"
	"github.com/eventhub/platform/internal/domain"
	"github.com/eventhub/platform/internal/transport/http/dto"
	"github.com/eventhub/platform/internal/transport/http/response"
)

type CategoriesHandler struct {
	svc *category.Service
}

func NewCategoriesHandler(svc *category.Service) *CategoriesHandler {
	return &CategoriesHandler{svc: svc}
}

func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
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

	cats, err := h.svc.List(r.Context(), from, size)
	if err != nil {
		response.Err(w, err)
		return
	}
	out := make([]dto.CategoryDto, 0, len(cats))
	for _, c := range cats {
		out = append(out, dto.ToCategoryDto(c))
	}
	response.JSON(w, http.StatusOK, out)
}

func (h *CategoriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "catId")
	if err != nil {
		response.Err(w, err)
		return
	}
	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusOK, dto.ToCategoryDto(c))
}

func (h *CategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.NewCategoryDto
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		response.Err(w, domain.ErrValidation("invalid json body"))
		return
	}
	c, err := h.svc.Create(r.Context(), req.Name)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, dto.ToCategoryDto(c))
}

func (h *CategoriesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "catId")
	if err != nil {
		response.Err(w, err)
		return
	}
	var req dto.NewCategoryDto
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		response.Err(w, domain.ErrValidation("invalid json body"))
		return
	}
	c, err := h.svc.Update(r.Context(), id, req.Name)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.JSON(w, http.StatusOK, dto.ToCategoryDto(c))
}

func (h *CategoriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "catId")
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
