package stats

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"

	"github.com/eventhub/platform/internal/domain"
	"github.com/eventhub/platform/internal/transport/http/middleware"
	"github.com/eventhub/platform/internal/transport/http/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	var hit EndpointHit
	if err := render.DecodeJSON(r.Body, &hit); err != nil {
		response.Err(w, domain.ErrValidation("invalid json body"))
		return
	}
	if err := h.svc.Record(r.Context(), hit); err != nil {
		response.Err(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start, err := parseRequiredTime(q.Get("start"), "start")
	if err != nil {
		response.Err(w, err)
		return
	}
	end, err := parseRequiredTime(q.Get("end"), "end")
	if err != nil {
		response.Err(w, err)
		return
	}
	unique := false
	if v := q.Get("unique"); v != "" {
		if unique, err = strconv.ParseBool(v); err != nil {
			response.Err(w, domain.ErrValidationMeta("invalid query param", map[string]string{
				"unique": "must be a boolean",
			}))
			return
		}
	}

	rows, err := h.svc.Stats(r.Context(), start, end, q["uris"], unique)
	if err != nil {
		response.Err(w, err)
		return
	}
	if rows == nil {
		rows = []ViewStats{}
	}
	response.JSON(w, http.StatusOK, rows)
}

func parseRequiredTime(v, name string) (time.Time, error) {
	if v == "" {
		return time.Time{}, domain.ErrValidationMeta("missing query param", map[string]string{
			name: "is required",
		})
	}
	t, err := time.Parse(TimeLayout, v)
	if err != nil {
		return time.Time{}, domain.ErrValidationMeta("invalid query param", map[string]string{
			name: "must look like " + TimeLayout,
		})
	}
	return t, nil
}

// NewRouter wires the stat service HTTP surface.
func NewRouter(h *Handler, rlEnabled bool, rlLimit int, rlWindow time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.SecurityHeaders)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.AccessLog)

	if rlEnabled {
		r.Use(httprate.LimitByIP(rlLimit, rlWindow))
	}

	r.Post("/hit", h.Record)
	r.Get("/stats", h.Stats)

	return r
}
