package api

import (
	"net/http"

	"github.com/jaakkos/tourism-cms/internal/search"
)

// Searcher runs full-text queries over the content. *search.Index
// implements it.
type Searcher interface {
	Query(query, collection string, limit int) ([]search.Result, error)
}

// WithSearch enables GET /api/search.
func WithSearch(s Searcher) HandlerOption {
	return func(h *Handler) { h.search = s }
}

var searchCollections = map[string]bool{
	"":                            true,
	search.CollectionDestinations: true,
	search.CollectionExperiences:  true,
	search.CollectionTestimonials: true,
	search.CollectionGallery:      true,
}

// GET /api/search?q=&collection=&limit=
func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	if h.search == nil {
		h.writeError(w, http.StatusServiceUnavailable, "search_unavailable", "full-text search is not enabled")
		return
	}
	q := r.URL.Query()
	collection := q.Get("collection")
	if !searchCollections[collection] {
		h.writeError(w, http.StatusBadRequest, "bad_request", "unknown collection "+collection)
		return
	}
	limit, ok := h.limitParam(w, r)
	if !ok {
		return
	}
	results, err := h.search.Query(q.Get("q"), collection, limit)
	if err != nil {
		h.logger.Printf("search %q: %v", q.Get("q"), err)
		h.writeError(w, http.StatusInternalServerError, "search_failed", "search failed")
		return
	}
	h.writeJSON(w, http.StatusOK, results)
}
