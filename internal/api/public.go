package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jaakkos/tourism-cms/internal/domain"
)

// publicSettings hides the admin credentials: the outer field shadows the
// embedded one and is always nil.
type publicSettings struct {
	domain.SiteSettings
	AdminCredentials *struct{} `json:"adminCredentials,omitempty"`
}

func (h *Handler) handlePublicSettings(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, publicSettings{SiteSettings: h.store.Settings().Public()})
}

// GET /api/destinations?q=&category=
func (h *Handler) handleSearchDestinations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.writeJSON(w, http.StatusOK, h.store.SearchDestinations(q.Get("q"), q.Get("category")))
}

// GET /api/destinations/featured?limit=
func (h *Handler) handleFeaturedDestinations(w http.ResponseWriter, r *http.Request) {
	limit, ok := h.limitParam(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, h.store.FeaturedDestinations(limit))
}

func (h *Handler) handleDestinationBySlug(w http.ResponseWriter, r *http.Request) {
	d, ok := h.store.DestinationBySlug(chi.URLParam(r, "slug"))
	if !ok {
		h.notFound(w, "destination not found")
		return
	}
	h.writeJSON(w, http.StatusOK, d)
}

// GET /api/experiences?q=&category=
func (h *Handler) handleSearchExperiences(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.writeJSON(w, http.StatusOK, h.store.SearchExperiences(q.Get("q"), q.Get("category")))
}

func (h *Handler) handleFeaturedExperiences(w http.ResponseWriter, r *http.Request) {
	limit, ok := h.limitParam(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, h.store.FeaturedExperiences(limit))
}

func (h *Handler) handleExperienceBySlug(w http.ResponseWriter, r *http.Request) {
	e, ok := h.store.ExperienceBySlug(chi.URLParam(r, "slug"))
	if !ok {
		h.notFound(w, "experience not found")
		return
	}
	h.writeJSON(w, http.StatusOK, e)
}

// GET /api/testimonials?featured=true
func (h *Handler) handleTestimonials(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("featured") == "true" {
		h.writeJSON(w, http.StatusOK, h.store.FeaturedTestimonials())
		return
	}
	h.writeJSON(w, http.StatusOK, h.store.Testimonials())
}

// GET /api/gallery?q=&category=
func (h *Handler) handleGallery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.writeJSON(w, http.StatusOK, h.store.FilterGallery(q.Get("q"), q.Get("category")))
}

// limitParam parses ?limit=; absent means no limit.
func (h *Handler) limitParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		h.writeError(w, http.StatusBadRequest, "bad_request", "limit must be a non-negative integer")
		return 0, false
	}
	return n, true
}
