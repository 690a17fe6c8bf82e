package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/eventhub/platform/internal/config"
	"github.com/eventhub/platform/internal/transport/http/handlers"
	"github.com/eventhub/platform/internal/transport/http/middleware"
)

func New(
	events *handlers.EventsHandler,
	requests *handlers.RequestsHandler,
	categories *handlers.CategoriesHandler,
	users *handlers.UsersHandler,
	compilations *handlers.CompilationsHandler,
	comments *handlers.CommentsHandler,
	health *handlers.HealthHandler,
	limiter middleware.IPLimiter,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.SecurityHeaders)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.AccessLog)

	if cfg.RLEnabled {
		if limiter != nil {
			r.Use(middleware.RateLimit(limiter, cfg.RLLimit, cfg.RLWindow))
		} else {
			r.Use(httprate.LimitByIP(cfg.RLLimit, cfg.RLWindow))
		}
	}

	r.Get("/healthz", health.Healthz)

	// Public
	r.Get("/events", events.PublicList)
	r.Get("/events/{eventId}", events.PublicGet)
	r.Get("/categories", categories.List)
	r.Get("/categories/{catId}", categories.Get)
	r.Get("/compilations", compilations.List)
	r.Get("/compilations/{compId}", compilations.Get)

	// Registered users, identified by the userId path segment.
	r.Route("/users/{userId}", func(r chi.Router) {
		r.Route("/events", func(r chi.Router) {
			r.Get("/", events.OwnerList)
			r.Post("/", events.OwnerCreate)
			r.Get("/{eventId}", events.OwnerGet)
			r.Patch("/{eventId}", events.OwnerUpdate)
			r.Get("/{eventId}/requests", requests.ListForEvent)
			r.Patch("/{eventId}/requests", requests.BulkUpdate)
		})
		r.Route("/requests", func(r chi.Router) {
			r.Get("/", requests.ListOwn)
			r.Post("/", requests.Submit)
			r.Patch("/{requestId}/cancel", requests.Cancel)
		})
		r.Route("/comments", func(r chi.Router) {
			r.Post("/", comments.Create)
			r.Patch("/{commentId}", comments.Update)
			r.Delete("/{commentId}", comments.Delete)
		})
	})

	// Admin
	r.Route("/admin", func(r chi.Router) {
		r.Get("/events", events.AdminList)
		r.Patch("/events/{eventId}", events.AdminUpdate)

		r.Post("/categories", categories.Create)
		r.Patch("/categories/{catId}", categories.Update)
		r.Delete("/categories/{catId}", categories.Delete)

		r.Get("/users", users.List)
		r.Post("/users", users.Create)
		r.Delete("/users/{userId}", users.Delete)

		r.Post("/compilations", compilations.Create)
		r.Patch("/compilations/{compId}", compilations.Update)
		r.Delete("/compilations/{compId}", compilations.Delete)

		r.Get("/comments", comments.AdminPending)
		r.Patch("/comments/{commentId}", comments.AdminModerate)
	})

	return r
}
