package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rpupo63/portfolio-backend/ratelimit"
)

// Rate limits for mutating public endpoints, keyed per client IP.
const (
	createProjectLimit  = 10
	createProjectWindow = time.Hour
	contactLimit        = 5
	contactWindow       = time.Hour
)

// setupRoutes wires the public read surface, the rate-limited contact form,
// and the auth-gated admin mutations.
func setupRoutes(r chi.Router, handlers *routeHandlers, auth authMiddleware, limiter *ratelimit.Limiter) {
	r.Get("/health", healthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Public read endpoints
		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Get("/projects/slug/{slug}", handlers.projectHandler.getProjectBySlug())
		r.Get("/projects/{projectID}", handlers.projectHandler.getProject())

		// Contact form, rate limited per client IP
		r.With(rateLimitMiddleware(limiter, "contact", contactLimit, contactWindow)).
			Post("/contact", handlers.contactHandler.submitContact())

		// Mutations require an authenticated session
		r.Group(func(r chi.Router) {
			r.Use(auth.authenticate)

			r.With(rateLimitMiddleware(limiter, "projects-create", createProjectLimit, createProjectWindow)).
				Post("/projects", handlers.projectHandler.createProject())
			r.Put("/projects/{projectID}", handlers.projectHandler.updateProject())
			r.Delete("/projects/{projectID}", handlers.projectHandler.deleteProject())
			r.Post("/images", handlers.imageHandler.uploadImage())
		})
	})
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write([]byte(`{"status":"ok"}`))
}
