package gateway

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// buildRouter constructs the chi mux with all routes wired.
func (g *Gateway) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Public, no auth required.
	r.Get("/health", g.handleHealth())
	r.Handle("/metrics", promhttp.Handler())

	// Job CRUD, bearer auth when a token is configured.
	r.Group(func(r chi.Router) {
		if g.config.AuthToken != "" {
			r.Use(authMiddleware(g.config.AuthToken))
		}
		r.Route("/jobs", func(r chi.Router) {
			r.Post("/", g.handleCreateJob())
			r.Get("/", g.handleListJobs())
			r.Get("/{id}", g.handleGetJob())
			r.Patch("/{id}", g.handleUpdateJob())
			r.Delete("/{id}", g.handleDeleteJob())
		})
	})

	return r
}
