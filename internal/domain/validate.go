package domain

import (
	"fmt"
	"strings"
)

// Validate checks required-field presence. Value ranges (rating, price)
// are not checked here.
func (d Destination) Validate() error {
	return required("destination",
		field{"id", d.ID},
		field{"name", d.Name},
		field{"location", d.Location},
		field{"shortDescription", d.ShortDescription},
		field{"description", d.Description},
	)
}

// Validate checks required-field presence.
func (e Experience) Validate() error {
	return required("experience", field{"id", e.ID}, field{"name", e.Name})
}

// Validate checks required-field presence.
func (t Testimonial) Validate() error {
	return required("testimonial", field{"id", t.ID}, field{"name", t.Name}, field{"text", t.Text})
}

// Validate checks required-field presence.
func (g GalleryItem) Validate() error {
	return required("gallery item", field{"id", g.ID}, field{"title", g.Title})
}

type field struct {
	name  string
	value string
}

func required(kind string, fields ...field) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s requires %s", ErrValidation, kind, strings.Join(missing, ", "))
	}
	return nil
}
