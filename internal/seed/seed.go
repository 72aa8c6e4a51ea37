// Package seed supplies the initial content used when no snapshot exists.
package seed

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/jaakkos/tourism-cms/internal/domain"
)

//go:embed data/*.json
var embeddedFS embed.FS

// Document file names. Each collection document wraps its array in an
// object keyed by the collection name; settings.json is the bare record.
const (
	destinationsFile = "destinations.json"
	experiencesFile  = "experiences.json"
	testimonialsFile = "testimonials.json"
	galleryFile      = "gallery.json"
	settingsFile     = "settings.json"
)

// Loader reads the five seed documents from a filesystem.
// It implements app.Seeder.
type Loader struct {
	fsys fs.FS
}

// Embedded returns a Loader over the documents compiled into the binary.
func Embedded() *Loader {
	sub, err := fs.Sub(embeddedFS, "data")
	if err != nil {
		panic(err) // the embed pattern guarantees the directory
	}
	return &Loader{fsys: sub}
}

// FromDir returns a Loader reading the documents from dir.
func FromDir(dir string) *Loader {
	return &Loader{fsys: os.DirFS(dir)}
}

// FromFS returns a Loader reading the documents from fsys.
func FromFS(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// New returns FromDir(dir), or Embedded() when dir is empty.
func New(dir string) *Loader {
	if dir == "" {
		return Embedded()
	}
	return FromDir(dir)
}

// Seed decodes all documents into a fresh state with no admin session.
// Every document must exist and decode.
func (l *Loader) Seed() (*domain.State, error) {
	st := domain.NewState()

	var d struct {
		Destinations []domain.Destination `json:"destinations"`
	}
	if err := l.decode(destinationsFile, &d); err != nil {
		return nil, err
	}
	var e struct {
		Experiences []domain.Experience `json:"experiences"`
	}
	if err := l.decode(experiencesFile, &e); err != nil {
		return nil, err
	}
	var t struct {
		Testimonials []domain.Testimonial `json:"testimonials"`
	}
	if err := l.decode(testimonialsFile, &t); err != nil {
		return nil, err
	}
	var g struct {
		Gallery []domain.GalleryItem `json:"gallery"`
	}
	if err := l.decode(galleryFile, &g); err != nil {
		return nil, err
	}
	if err := l.decode(settingsFile, &st.Settings); err != nil {
		return nil, err
	}

	st.Destinations = d.Destinations
	st.Experiences = e.Experiences
	st.Testimonials = t.Testimonials
	st.Gallery = g.Gallery
	st.EnsureCollections()
	return st, nil
}

func (l *Loader) decode(name string, v any) error {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return fmt.Errorf("read seed %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse seed %s: %w", name, err)
	}
	return nil
}
