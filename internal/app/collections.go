package app

import (
	"fmt"

	"github.com/jaakkos/tourism-cms/internal/domain"
)

// indexOf returns the index of the first item whose id matches, or -1.
func indexOf[T any](items []T, id string, idOf func(T) string) int {
	for i := range items {
		if idOf(items[i]) == id {
			return i
		}
	}
	return -1
}

func removeAt[T any](items []T, i int) []T {
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}

func destinationID(d domain.Destination) string { return d.ID }
func experienceID(e domain.Experience) string   { return e.ID }
func testimonialID(t domain.Testimonial) string { return t.ID }
func galleryItemID(g domain.GalleryItem) string { return g.ID }

func duplicate(kind, id string) error {
	return fmt.Errorf("%w: %s %q already exists", domain.ErrDuplicateID, kind, id)
}

// checkRetiredLocked rejects identifiers deleted earlier in this process.
// Caller must hold s.mu.
func (s *ContentStore) checkRetiredLocked(kind, id string) error {
	if _, gone := s.retired[id]; gone {
		return fmt.Errorf("%w: %s %q was deleted and cannot be reused", domain.ErrDuplicateID, kind, id)
	}
	return nil
}

// --- Destinations -----------------------------------------------------------

// Destinations returns the destinations in insertion order.
func (s *ContentStore) Destinations() []domain.Destination {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Destination, len(s.state.Destinations))
	for i, d := range s.state.Destinations {
		out[i] = d.Clone()
	}
	return out
}

// AddDestination appends d. The identifier and createdAt must already be set.
func (s *ContentStore) AddDestination(d domain.Destination) error {
	_, err := s.mutate("add destination", func(st *domain.State) (Outcome, error) {
		if err := s.checkRetiredLocked("destination", d.ID); err != nil {
			return NotFound, err
		}
		return appendDestination(st, d)
	})
	return err
}

func appendDestination(st *domain.State, d domain.Destination) (Outcome, error) {
	if err := d.Validate(); err != nil {
		return NotFound, err
	}
	if indexOf(st.Destinations, d.ID, destinationID) >= 0 {
		return NotFound, duplicate("destination", d.ID)
	}
	st.Destinations = append(st.Destinations, d.Clone())
	return Applied, nil
}

// CreateDestination assigns a fresh identifier, the slug derived from the
// name and the creation timestamp, then adds the destination.
func (s *ContentStore) CreateDestination(d domain.Destination) (domain.Destination, error) {
	var created domain.Destination
	outcome, err := s.mutate("create destination", func(st *domain.State) (Outcome, error) {
		d.ID = s.newIDLocked(func(id string) bool { return indexOf(st.Destinations, id, destinationID) >= 0 })
		d.Slug = domain.Slugify(d.Name)
		d.CreatedAt = s.timestamp()
		created = d.Clone()
		return appendDestination(st, d)
	})
	if outcome != Applied {
		return domain.Destination{}, err
	}
	return created, err
}

// UpdateDestination merges patch into the first destination with the given id.
func (s *ContentStore) UpdateDestination(id string, patch domain.DestinationPatch) (Outcome, error) {
	return s.mutate("update destination", func(st *domain.State) (Outcome, error) {
		i := indexOf(st.Destinations, id, destinationID)
		if i < 0 {
			return NotFound, nil
		}
		merged := patch.Apply(st.Destinations[i])
		if err := merged.Validate(); err != nil {
			return NotFound, err
		}
		st.Destinations[i] = merged
		return Applied, nil
	})
}

// DeleteDestination removes the first destination with the given id.
func (s *ContentStore) DeleteDestination(id string) (Outcome, error) {
	return s.mutate("delete destination", func(st *domain.State) (Outcome, error) {
		i := indexOf(st.Destinations, id, destinationID)
		if i < 0 {
			return NotFound, nil
		}
		st.Destinations = removeAt(st.Destinations, i)
		s.retired[id] = struct{}{}
		return Applied, nil
	})
}

// --- Experiences ------------------------------------------------------------

// Experiences returns the experiences in insertion order.
func (s *ContentStore) Experiences() []domain.Experience {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Experience, len(s.state.Experiences))
	for i, e := range s.state.Experiences {
		out[i] = e.Clone()
	}
	return out
}

// AddExperience appends e. The identifier and createdAt must already be set.
func (s *ContentStore) AddExperience(e domain.Experience) error {
	_, err := s.mutate("add experience", func(st *domain.State) (Outcome, error) {
		if err := s.checkRetiredLocked("experience", e.ID); err != nil {
			return NotFound, err
		}
		return appendExperience(st, e)
	})
	return err
}

func appendExperience(st *domain.State, e domain.Experience) (Outcome, error) {
	if err := e.Validate(); err != nil {
		return NotFound, err
	}
	if indexOf(st.Experiences, e.ID, experienceID) >= 0 {
		return NotFound, duplicate("experience", e.ID)
	}
	st.Experiences = append(st.Experiences, e.Clone())
	return Applied, nil
}

// CreateExperience assigns identifier, slug and createdAt, then adds the experience.
func (s *ContentStore) CreateExperience(e domain.Experience) (domain.Experience, error) {
	var created domain.Experience
	outcome, err := s.mutate("create experience", func(st *domain.State) (Outcome, error) {
		e.ID = s.newIDLocked(func(id string) bool { return indexOf(st.Experiences, id, experienceID) >= 0 })
		e.Slug = domain.Slugify(e.Name)
		e.CreatedAt = s.timestamp()
		created = e.Clone()
		return appendExperience(st, e)
	})
	if outcome != Applied {
		return domain.Experience{}, err
	}
	return created, err
}

// UpdateExperience merges patch into the first experience with the given id.
func (s *ContentStore) UpdateExperience(id string, patch domain.ExperiencePatch) (Outcome, error) {
	return s.mutate("update experience", func(st *domain.State) (Outcome, error) {
		i := indexOf(st.Experiences, id, experienceID)
		if i < 0 {
			return NotFound, nil
		}
		merged := patch.Apply(st.Experiences[i])
		if err := merged.Validate(); err != nil {
			return NotFound, err
		}
		st.Experiences[i] = merged
		return Applied, nil
	})
}

// DeleteExperience removes the first experience with the given id.
func (s *ContentStore) DeleteExperience(id string) (Outcome, error) {
	return s.mutate("delete experience", func(st *domain.State) (Outcome, error) {
		i := indexOf(st.Experiences, id, experienceID)
		if i < 0 {
			return NotFound, nil
		}
		st.Experiences = removeAt(st.Experiences, i)
		s.retired[id] = struct{}{}
		return Applied, nil
	})
}

// --- Testimonials -----------------------------------------------------------

// Testimonials returns the testimonials in insertion order.
func (s *ContentStore) Testimonials() []domain.Testimonial {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Testimonial{}, s.state.Testimonials...)
}

// AddTestimonial appends t. The identifier must already be set.
func (s *ContentStore) AddTestimonial(t domain.Testimonial) error {
	_, err := s.mutate("add testimonial", func(st *domain.State) (Outcome, error) {
		if err := s.checkRetiredLocked("testimonial", t.ID); err != nil {
			return NotFound, err
		}
		return appendTestimonial(st, t)
	})
	return err
}

func appendTestimonial(st *domain.State, t domain.Testimonial) (Outcome, error) {
	if err := t.Validate(); err != nil {
		return NotFound, err
	}
	if indexOf(st.Testimonials, t.ID, testimonialID) >= 0 {
		return NotFound, duplicate("testimonial", t.ID)
	}
	st.Testimonials = append(st.Testimonials, t)
	return Applied, nil
}

// CreateTestimonial assigns a fresh identifier, then adds the testimonial.
// An empty date defaults to today.
func (s *ContentStore) CreateTestimonial(t domain.Testimonial) (domain.Testimonial, error) {
	var created domain.Testimonial
	outcome, err := s.mutate("create testimonial", func(st *domain.State) (Outcome, error) {
		t.ID = s.newIDLocked(func(id string) bool { return indexOf(st.Testimonials, id, testimonialID) >= 0 })
		if t.Date == "" {
			t.Date = s.now().UTC().Format("2006-01-02")
		}
		created = t
		return appendTestimonial(st, t)
	})
	if outcome != Applied {
		return domain.Testimonial{}, err
	}
	return created, err
}

// UpdateTestimonial merges patch into the first testimonial with the given id.
func (s *ContentStore) UpdateTestimonial(id string, patch domain.TestimonialPatch) (Outcome, error) {
	return s.mutate("update testimonial", func(st *domain.State) (Outcome, error) {
		i := indexOf(st.Testimonials, id, testimonialID)
		if i < 0 {
			return NotFound, nil
		}
		merged := patch.Apply(st.Testimonials[i])
		if err := merged.Validate(); err != nil {
			return NotFound, err
		}
		st.Testimonials[i] = merged
		return Applied, nil
	})
}

// DeleteTestimonial removes the first testimonial with the given id.
func (s *ContentStore) DeleteTestimonial(id string) (Outcome, error) {
	return s.mutate("delete testimonial", func(st *domain.State) (Outcome, error) {
		i := indexOf(st.Testimonials, id, testimonialID)
		if i < 0 {
			return NotFound, nil
		}
		st.Testimonials = removeAt(st.Testimonials, i)
		s.retired[id] = struct{}{}
		return Applied, nil
	})
}

// --- Gallery ----------------------------------------------------------------

// Gallery returns the gallery items in insertion order.
func (s *ContentStore) Gallery() []domain.GalleryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.GalleryItem{}, s.state.Gallery...)
}

// AddGalleryItem appends g. The identifier must already be set.
func (s *ContentStore) AddGalleryItem(g domain.GalleryItem) error {
	_, err := s.mutate("add gallery item", func(st *domain.State) (Outcome, error) {
		if err := s.checkRetiredLocked("gallery item", g.ID); err != nil {
			return NotFound, err
		}
		return appendGalleryItem(st, g)
	})
	return err
}

func appendGalleryItem(st *domain.State, g domain.GalleryItem) (Outcome, error) {
	if err := g.Validate(); err != nil {
		return NotFound, err
	}
	if indexOf(st.Gallery, g.ID, galleryItemID) >= 0 {
		return NotFound, duplicate("gallery item", g.ID)
	}
	st.Gallery = append(st.Gallery, g)
	return Applied, nil
}

// CreateGalleryItem assigns a fresh identifier, then adds the item.
func (s *ContentStore) CreateGalleryItem(g domain.GalleryItem) (domain.GalleryItem, error) {
	var created domain.GalleryItem
	outcome, err := s.mutate("create gallery item", func(st *domain.State) (Outcome, error) {
		g.ID = s.newIDLocked(func(id string) bool { return indexOf(st.Gallery, id, galleryItemID) >= 0 })
		created = g
		return appendGalleryItem(st, g)
	})
	if outcome != Applied {
		return domain.GalleryItem{}, err
	}
	return created, err
}

// UpdateGalleryItem merges patch into the first gallery item with the given id.
func (s *ContentStore) UpdateGalleryItem(id string, patch domain.GalleryItemPatch) (Outcome, error) {
	return s.mutate("update gallery item", func(st *domain.State) (Outcome, error) {
		i := indexOf(st.Gallery, id, galleryItemID)
		if i < 0 {
			return NotFound, nil
		}
		merged := patch.Apply(st.Gallery[i])
		if err := merged.Validate(); err != nil {
			return NotFound, err
		}
		st.Gallery[i] = merged
		return Applied, nil
	})
}

// DeleteGalleryItem removes the first gallery item with the given id.
func (s *ContentStore) DeleteGalleryItem(id string) (Outcome, error) {
	return s.mutate("delete gallery item", func(st *domain.State) (Outcome, error) {
		i := indexOf(st.Gallery, id, galleryItemID)
		if i < 0 {
			return NotFound, nil
		}
		st.Gallery = removeAt(st.Gallery, i)
		s.retired[id] = struct{}{}
		return Applied, nil
	})
}
