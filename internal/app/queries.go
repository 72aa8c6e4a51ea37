package app

import (
	"strings"

	"github.com/jaakkos/tourism-cms/internal/domain"
)

// ContentStats summarizes the store for dashboards and notifications.
type ContentStats struct {
	Revision             uint64       `json:"revision"`
	Destinations         int          `json:"destinations"`
	FeaturedDestinations int          `json:"featured_destinations"`
	Experiences          int          `json:"experiences"`
	Testimonials         int          `json:"testimonials"`
	Gallery              int          `json:"gallery"`
	AverageRating        float64      `json:"average_rating"`
	SiteStats            domain.Stats `json:"site_stats"`
	Authenticated        bool         `json:"authenticated"`
}

// Stats returns collection counts and the settings counters.
func (s *ContentStore) Stats() ContentStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	out := ContentStats{
		Revision:      s.revision,
		Destinations:  len(st.Destinations),
		Experiences:   len(st.Experiences),
		Testimonials:  len(st.Testimonials),
		Gallery:       len(st.Gallery),
		SiteStats:     st.Settings.Stats,
		Authenticated: st.Admin != nil && st.Admin.IsAuthenticated,
	}
	var sum float64
	for _, d := range st.Destinations {
		if d.Featured {
			out.FeaturedDestinations++
		}
		sum += d.Rating
	}
	if n := len(st.Destinations); n > 0 {
		out.AverageRating = sum / float64(n)
	}
	return out
}

// DestinationBySlug returns the first destination with the given slug.
func (s *ContentStore) DestinationBySlug(slug string) (domain.Destination, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.state.Destinations {
		if d.Slug == slug {
			return d.Clone(), true
		}
	}
	return domain.Destination{}, false
}

// ExperienceBySlug returns the first experience with the given slug.
func (s *ContentStore) ExperienceBySlug(slug string) (domain.Experience, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.state.Experiences {
		if e.Slug == slug {
			return e.Clone(), true
		}
	}
	return domain.Experience{}, false
}

// FeaturedDestinations returns up to limit featured destinations (limit <= 0 means all).
func (s *ContentStore) FeaturedDestinations(limit int) []domain.Destination {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Destination{}
	for _, d := range s.state.Destinations {
		if limit > 0 && len(out) == limit {
			break
		}
		if d.Featured {
			out = append(out, d.Clone())
		}
	}
	return out
}

// FeaturedExperiences returns up to limit featured experiences (limit <= 0 means all).
func (s *ContentStore) FeaturedExperiences(limit int) []domain.Experience {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Experience{}
	for _, e := range s.state.Experiences {
		if limit > 0 && len(out) == limit {
			break
		}
		if e.Featured {
			out = append(out, e.Clone())
		}
	}
	return out
}

// FeaturedTestimonials returns the featured testimonials.
func (s *ContentStore) FeaturedTestimonials() []domain.Testimonial {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Testimonial{}
	for _, t := range s.state.Testimonials {
		if t.Featured {
			out = append(out, t)
		}
	}
	return out
}

// SearchDestinations filters by a case-insensitive substring of name or
// location and by category ("" or "All" match any).
func (s *ContentStore) SearchDestinations(query, category string) []domain.Destination {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := strings.ToLower(query)
	out := []domain.Destination{}
	for _, d := range s.state.Destinations {
		if !domain.MatchesCategory(category, d.Category) {
			continue
		}
		if q == "" || strings.Contains(strings.ToLower(d.Name), q) || strings.Contains(strings.ToLower(d.Location), q) {
			out = append(out, d.Clone())
		}
	}
	return out
}

// SearchExperiences filters by a case-insensitive substring of name or
// short description and by category.
func (s *ContentStore) SearchExperiences(query, category string) []domain.Experience {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := strings.ToLower(query)
	out := []domain.Experience{}
	for _, e := range s.state.Experiences {
		if !domain.MatchesCategory(category, e.Category) {
			continue
		}
		if q == "" || strings.Contains(strings.ToLower(e.Name), q) || strings.Contains(strings.ToLower(e.ShortDescription), q) {
			out = append(out, e.Clone())
		}
	}
	return out
}

// FilterGallery filters by a case-insensitive substring of the title and by category.
func (s *ContentStore) FilterGallery(query, category string) []domain.GalleryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := strings.ToLower(query)
	out := []domain.GalleryItem{}
	for _, g := range s.state.Gallery {
		if !domain.MatchesCategory(category, g.Category) {
			continue
		}
		if q == "" || strings.Contains(strings.ToLower(g.Title), q) {
			out = append(out, g)
		}
	}
	return out
}

// DestinationByID returns the destination with the given id.
func (s *ContentStore) DestinationByID(id string) (domain.Destination, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.state.Destinations, id, destinationID); i >= 0 {
		return s.state.Destinations[i].Clone(), true
	}
	return domain.Destination{}, false
}

// ExperienceByID returns the experience with the given id.
func (s *ContentStore) ExperienceByID(id string) (domain.Experience, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.state.Experiences, id, experienceID); i >= 0 {
		return s.state.Experiences[i].Clone(), true
	}
	return domain.Experience{}, false
}

// TestimonialByID returns the testimonial with the given id.
func (s *ContentStore) TestimonialByID(id string) (domain.Testimonial, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.state.Testimonials, id, testimonialID); i >= 0 {
		return s.state.Testimonials[i], true
	}
	return domain.Testimonial{}, false
}

// GalleryItemByID returns the gallery item with the given id.
func (s *ContentStore) GalleryItemByID(id string) (domain.GalleryItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.state.Gallery, id, galleryItemID); i >= 0 {
		return s.state.Gallery[i], true
	}
	return domain.GalleryItem{}, false
}
