// Package domain holds the tourism content entities and the aggregate state.
// It has no dependencies on other internal packages.
package domain

// Destination is a place promoted on the public site.
type Destination struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Slug             string   `json:"slug"`
	Location         string   `json:"location"`
	Description      string   `json:"description"`
	ShortDescription string   `json:"shortDescription"`
	Image            string   `json:"image"`
	Gallery          []string `json:"gallery"`
	Rating           float64  `json:"rating"`  // 0.0-5.0, clamped by the UI only
	Reviews          int      `json:"reviews"` // review count
	Price            int      `json:"price"`
	Category         string   `json:"category"`
	Featured         bool     `json:"featured"`
	Highlights       []string `json:"highlights"`
	CreatedAt        string   `json:"createdAt"`
}

// Experience is a bookable activity.
type Experience struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Slug             string     `json:"slug"`
	Description      string     `json:"description"`
	ShortDescription string     `json:"shortDescription"`
	Image            string     `json:"image"`
	Icon             string     `json:"icon"` // symbolic icon name resolved by the UI
	Price            int        `json:"price"`
	Duration         string     `json:"duration"`
	Difficulty       Difficulty `json:"difficulty"`
	MaxParticipants  int        `json:"maxParticipants"`
	Included         []string   `json:"included"`
	Category         string     `json:"category"`
	Featured         bool       `json:"featured"`
	CreatedAt        string     `json:"createdAt"`
}

// Testimonial is a traveller review. Destination holds the destination's
// display name, not its identifier.
type Testimonial struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Avatar      string `json:"avatar"`
	Location    string `json:"location"`
	Rating      int    `json:"rating"` // 1-5
	Text        string `json:"text"`
	Destination string `json:"destination"`
	Date        string `json:"date"` // YYYY-MM-DD
	Featured    bool   `json:"featured"`
}

// GalleryItem is a photo shown in the gallery.
type GalleryItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Image    string `json:"image"`
	Category string `json:"category"`
	Location string `json:"location"`
	Featured bool   `json:"featured"`
}

// Contact is the contact block of SiteSettings.
type Contact struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// Social holds the social platform URLs.
type Social struct {
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
	Twitter   string `json:"twitter"`
	Youtube   string `json:"youtube"`
}

// Hero is the homepage hero block.
type Hero struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	CtaText         string `json:"ctaText"`
	BackgroundImage string `json:"backgroundImage"`
}

// Stats are the counters shown on the homepage.
type Stats struct {
	Destinations   int `json:"destinations"`
	HappyTravelers int `json:"happyTravelers"`
	Tours          int `json:"tours"`
	Awards         int `json:"awards"`
}

// Credentials is the single admin email/password pair.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SiteSettings is the singleton site configuration record.
type SiteSettings struct {
	SiteName         string      `json:"siteName"`
	Tagline          string      `json:"tagline"`
	Description      string      `json:"description"`
	Contact          Contact     `json:"contact"`
	Social           Social      `json:"social"`
	Hero             Hero        `json:"hero"`
	Stats            Stats       `json:"stats"`
	AdminCredentials Credentials `json:"adminCredentials"`
}

// Public returns a copy of the settings without the admin credentials.
func (s SiteSettings) Public() SiteSettings {
	s.AdminCredentials = Credentials{}
	return s
}

// AdminSession is the authenticated admin. A nil *AdminSession means logged out.
type AdminSession struct {
	Email           string `json:"email"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

// State is the aggregate content state and the persisted snapshot document.
// UI-only state (sidebar, theme) is not part of it.
type State struct {
	Admin        *AdminSession `json:"admin"`
	Destinations []Destination `json:"destinations"`
	Experiences  []Experience  `json:"experiences"`
	Testimonials []Testimonial `json:"testimonials"`
	Gallery      []GalleryItem `json:"gallery"`
	Settings     SiteSettings  `json:"settings"`
}

// NewState returns an empty State with non-nil collections.
func NewState() *State {
	return &State{
		Destinations: []Destination{},
		Experiences:  []Experience{},
		Testimonials: []Testimonial{},
		Gallery:      []GalleryItem{},
	}
}

// EnsureCollections replaces nil collections with empty ones so the
// snapshot always serializes arrays, never null.
func (s *State) EnsureCollections() {
	if s.Destinations == nil {
		s.Destinations = []Destination{}
	}
	if s.Experiences == nil {
		s.Experiences = []Experience{}
	}
	if s.Testimonials == nil {
		s.Testimonials = []Testimonial{}
	}
	if s.Gallery == nil {
		s.Gallery = []GalleryItem{}
	}
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	out := &State{
		Destinations: make([]Destination, len(s.Destinations)),
		Experiences:  make([]Experience, len(s.Experiences)),
		Testimonials: append([]Testimonial{}, s.Testimonials...),
		Gallery:      append([]GalleryItem{}, s.Gallery...),
		Settings:     s.Settings,
	}
	if s.Admin != nil {
		a := *s.Admin
		out.Admin = &a
	}
	for i, d := range s.Destinations {
		out.Destinations[i] = d.Clone()
	}
	for i, e := range s.Experiences {
		out.Experiences[i] = e.Clone()
	}
	return out
}

// Clone returns a copy of d that shares no slices with it.
func (d Destination) Clone() Destination {
	d.Gallery = cloneStrings(d.Gallery)
	d.Highlights = cloneStrings(d.Highlights)
	return d
}

// Clone returns a copy of e that shares no slices with it.
func (e Experience) Clone() Experience {
	e.Included = cloneStrings(e.Included)
	return e
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append(make([]string, 0, len(in)), in...)
}
