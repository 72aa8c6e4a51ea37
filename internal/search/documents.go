package search

import (
	"strings"

	"github.com/jaakkos/tourism-cms/internal/domain"
)

// Collection names used in document references.
const (
	CollectionDestinations = "destinations"
	CollectionExperiences  = "experiences"
	CollectionTestimonials = "testimonials"
	CollectionGallery      = "gallery"
)

// Documents flattens every entity of st into an indexable document.
func Documents(st *domain.State) []Document {
	docs := make([]Document, 0, len(st.Destinations)+len(st.Experiences)+len(st.Testimonials)+len(st.Gallery))
	for _, d := range st.Destinations {
		docs = append(docs, Document{
			Ref:        ref(CollectionDestinations, d.ID),
			Collection: CollectionDestinations,
			Title:      d.Name,
			Content:    join(d.Location, d.ShortDescription, d.Description, d.Category, strings.Join(d.Highlights, ". ")),
		})
	}
	for _, e := range st.Experiences {
		docs = append(docs, Document{
			Ref:        ref(CollectionExperiences, e.ID),
			Collection: CollectionExperiences,
			Title:      e.Name,
			Content:    join(e.ShortDescription, e.Description, e.Category, string(e.Difficulty), e.Duration, strings.Join(e.Included, ", ")),
		})
	}
	for _, t := range st.Testimonials {
		docs = append(docs, Document{
			Ref:        ref(CollectionTestimonials, t.ID),
			Collection: CollectionTestimonials,
			Title:      t.Name,
			Content:    join(t.Text, t.Destination, t.Location),
		})
	}
	for _, g := range st.Gallery {
		docs = append(docs, Document{
			Ref:        ref(CollectionGallery, g.ID),
			Collection: CollectionGallery,
			Title:      g.Title,
			Content:    join(g.Location, g.Category),
		})
	}
	return docs
}

func ref(collection, id string) string { return collection + ":" + id }

func join(parts ...string) string {
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n")
}
