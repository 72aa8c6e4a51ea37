package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jaakkos/tourism-cms/internal/app"
	"github.com/jaakkos/tourism-cms/internal/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}
	ok, err := h.store.Login(req.Email, req.Password)
	if err != nil && !errors.Is(err, app.ErrPersist) {
		h.writeStoreError(w, err)
		return
	}
	if err != nil {
		// The session is active in memory; the token is still useful.
		h.logger.Printf("Login persisted late: %v", err)
	}
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
		return
	}
	token, exp, err := h.tokens.Issue(req.Email)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, loginResponse{Token: token, Email: req.Email, ExpiresAt: exp})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Logout(); err != nil {
		h.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.store.Stats())
}

func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.store.Session())
}

func (h *Handler) handleAdminSettings(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.store.Settings())
}

func (h *Handler) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var patch domain.SettingsPatch
	if !h.decode(w, r, &patch) {
		return
	}
	if err := h.store.UpdateSettings(patch); err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.store.Settings())
}

// --- Destinations -----------------------------------------------------------

func (h *Handler) handleListDestinations(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.store.Destinations())
}

func (h *Handler) handleCreateDestination(w http.ResponseWriter, r *http.Request) {
	var d domain.Destination
	if !h.decode(w, r, &d) {
		return
	}
	created, err := h.store.CreateDestination(d)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleUpdateDestination(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var patch domain.DestinationPatch
	if !h.decode(w, r, &patch) {
		return
	}
	outcome, err := h.store.UpdateDestination(id, patch)
	if !h.checkOutcome(w, outcome, err, "destination") {
		return
	}
	d, _ := h.store.DestinationByID(id)
	h.writeJSON(w, http.StatusOK, d)
}

func (h *Handler) handleDeleteDestination(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.store.DeleteDestination(chi.URLParam(r, "id"))
	if h.checkOutcome(w, outcome, err, "destination") {
		w.WriteHeader(http.StatusNoContent)
	}
}

// --- Experiences ------------------------------------------------------------

func (h *Handler) handleListExperiences(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.store.Experiences())
}

func (h *Handler) handleCreateExperience(w http.ResponseWriter, r *http.Request) {
	var e domain.Experience
	if !h.decode(w, r, &e) {
		return
	}
	created, err := h.store.CreateExperience(e)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleUpdateExperience(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var patch domain.ExperiencePatch
	if !h.decode(w, r, &patch) {
		return
	}
	outcome, err := h.store.UpdateExperience(id, patch)
	if !h.checkOutcome(w, outcome, err, "experience") {
		return
	}
	e, _ := h.store.ExperienceByID(id)
	h.writeJSON(w, http.StatusOK, e)
}

func (h *Handler) handleDeleteExperience(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.store.DeleteExperience(chi.URLParam(r, "id"))
	if h.checkOutcome(w, outcome, err, "experience") {
		w.WriteHeader(http.StatusNoContent)
	}
}

// --- Testimonials -----------------------------------------------------------

func (h *Handler) handleListTestimonials(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.store.Testimonials())
}

func (h *Handler) handleCreateTestimonial(w http.ResponseWriter, r *http.Request) {
	var t domain.Testimonial
	if !h.decode(w, r, &t) {
		return
	}
	created, err := h.store.CreateTestimonial(t)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleUpdateTestimonial(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var patch domain.TestimonialPatch
	if !h.decode(w, r, &patch) {
		return
	}
	outcome, err := h.store.UpdateTestimonial(id, patch)
	if !h.checkOutcome(w, outcome, err, "testimonial") {
		return
	}
	t, _ := h.store.TestimonialByID(id)
	h.writeJSON(w, http.StatusOK, t)
}

func (h *Handler) handleDeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.store.DeleteTestimonial(chi.URLParam(r, "id"))
	if h.checkOutcome(w, outcome, err, "testimonial") {
		w.WriteHeader(http.StatusNoContent)
	}
}

// --- Gallery ----------------------------------------------------------------

func (h *Handler) handleListGallery(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.store.Gallery())
}

func (h *Handler) handleCreateGalleryItem(w http.ResponseWriter, r *http.Request) {
	var g domain.GalleryItem
	if !h.decode(w, r, &g) {
		return
	}
	created, err := h.store.CreateGalleryItem(g)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleUpdateGalleryItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var patch domain.GalleryItemPatch
	if !h.decode(w, r, &patch) {
		return
	}
	outcome, err := h.store.UpdateGalleryItem(id, patch)
	if !h.checkOutcome(w, outcome, err, "gallery item") {
		return
	}
	g, _ := h.store.GalleryItemByID(id)
	h.writeJSON(w, http.StatusOK, g)
}

func (h *Handler) handleDeleteGalleryItem(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.store.DeleteGalleryItem(chi.URLParam(r, "id"))
	if h.checkOutcome(w, outcome, err, "gallery item") {
		w.WriteHeader(http.StatusNoContent)
	}
}

// checkOutcome writes an error response and returns false unless the
// mutation was applied and saved.
func (h *Handler) checkOutcome(w http.ResponseWriter, outcome app.Outcome, err error, kind string) bool {
	if err != nil {
		h.writeStoreError(w, err)
		return false
	}
	if outcome != app.Applied {
		h.notFound(w, kind+" not found")
		return false
	}
	return true
}
