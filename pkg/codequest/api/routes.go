package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) SetupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(CORSMiddleware)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(5 * time.Second))
		r.Get("/healthz", h.Healthz)
		r.Get("/readyz", h.Readyz)
	})

	r.Route("/api/topics", func(r chi.Router) {
		r.Use(middleware.Timeout(DefaultRequestTimeout))
		r.Get("/", h.ListTopics)
		r.Get("/{topic}", h.GetTopic)
		r.Get("/{topic}/manifest", h.GetTopicManifest)
		r.Post("/{topic}/images", h.AddImage)
		r.Delete("/{topic}/images/{name}", h.DeleteImage)
		r.Post("/{topic}/reload", h.ReloadTopic)
	})

	r.With(middleware.Timeout(DefaultReloadTimeout)).Post("/api/reload", h.ReloadAll)

	r.Route("/api/images", func(r chi.Router) {
		r.Use(middleware.Timeout(DefaultRequestTimeout))
		r.Get("/{name}", h.ImageExists)
		r.Get("/{name}/raw", h.ServeImage)
	})

	r.Route("/api/events", func(r chi.Router) {
		r.Use(middleware.Timeout(DefaultRequestTimeout))
		r.Get("/", h.ListEvents)
		r.Get("/errors", h.GetRecentErrors)
		r.Get("/topics/{topic}", h.GetEventsByTopic)
		r.Delete("/", h.CleanupEvents)
	})

	return r
}
