// Package api provides the JSON API for the public site and the admin panel,
// plus a small read-only content dashboard.
package api

import (
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/jaakkos/tourism-cms/internal/app"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// Handler holds dependencies for the HTTP handlers.
type Handler struct {
	store       *app.ContentStore
	tokens      *TokenIssuer
	logger      *log.Logger
	corsOrigins []string
	search      Searcher
}

// HandlerOption configures optional dependencies for the handler.
type HandlerOption func(*Handler)

// WithLogger sets the logger used for request and error logging.
func WithLogger(l *log.Logger) HandlerOption {
	return func(h *Handler) { h.logger = l }
}

// WithCORSOrigins enables CORS for the given origins.
func WithCORSOrigins(origins []string) HandlerOption {
	return func(h *Handler) { h.corsOrigins = origins }
}

// NewHandler creates a handler over store.
func NewHandler(store *app.ContentStore, tokens *TokenIssuer, opts ...HandlerOption) *Handler {
	h := &Handler{store: store, tokens: tokens, logger: log.New(io.Discard, "", 0)}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes returns the router. Callers may mount more handlers on it (the
// entrypoint adds /mcp).
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(chimiddleware.Recoverer)
	if len(h.corsOrigins) > 0 {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: h.corsOrigins,
			AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
		}).Handler)
	}

	r.Get("/health", h.handleHealth)
	r.Get("/dashboard", h.handleDashboard)

	r.Route("/api", func(r chi.Router) {
		r.Get("/settings", h.handlePublicSettings)
		r.Get("/search", h.handleSearch)

		r.Get("/destinations", h.handleSearchDestinations)
		r.Get("/destinations/featured", h.handleFeaturedDestinations)
		r.Get("/destinations/{slug}", h.handleDestinationBySlug)

		r.Get("/experiences", h.handleSearchExperiences)
		r.Get("/experiences/featured", h.handleFeaturedExperiences)
		r.Get("/experiences/{slug}", h.handleExperienceBySlug)

		r.Get("/testimonials", h.handleTestimonials)
		r.Get("/gallery", h.handleGallery)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", h.handleLogin)
			r.With(h.requireToken).Post("/logout", h.handleLogout)

			r.Group(func(r chi.Router) {
				r.Use(h.requireToken, h.requireSession)

				r.Get("/stats", h.handleStats)
				r.Get("/session", h.handleSession)

				r.Get("/settings", h.handleAdminSettings)
				r.Patch("/settings", h.handleUpdateSettings)

				r.Get("/destinations", h.handleListDestinations)
				r.Post("/destinations", h.handleCreateDestination)
				r.Patch("/destinations/{id}", h.handleUpdateDestination)
				r.Delete("/destinations/{id}", h.handleDeleteDestination)

				r.Get("/experiences", h.handleListExperiences)
				r.Post("/experiences", h.handleCreateExperience)
				r.Patch("/experiences/{id}", h.handleUpdateExperience)
				r.Delete("/experiences/{id}", h.handleDeleteExperience)

				r.Get("/testimonials", h.handleListTestimonials)
				r.Post("/testimonials", h.handleCreateTestimonial)
				r.Patch("/testimonials/{id}", h.handleUpdateTestimonial)
				r.Delete("/testimonials/{id}", h.handleDeleteTestimonial)

				r.Get("/gallery", h.handleListGallery)
				r.Post("/gallery", h.handleCreateGalleryItem)
				r.Patch("/gallery/{id}", h.handleUpdateGalleryItem)
				r.Delete("/gallery/{id}", h.handleDeleteGalleryItem)
			})
		})
	})
	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"source":   h.store.Source(),
		"revision": h.store.Revision(),
		"dirty":    h.store.Dirty(),
	})
}
