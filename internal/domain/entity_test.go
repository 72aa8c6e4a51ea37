package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestNewState(t *testing.T) {
	s := NewState()
	if s == nil {
		t.Fatal("NewState() returned nil")
	}
	if s.Destinations == nil || s.Experiences == nil || s.Testimonials == nil || s.Gallery == nil {
		t.Error("collections should not be nil")
	}
	if s.Admin != nil {
		t.Error("Admin should be nil on a fresh state")
	}
}

func TestStateJSONKeys(t *testing.T) {
	s := NewState()
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, k := range []string{"admin", "destinations", "experiences", "testimonials", "gallery", "settings"} {
		if _, ok := m[k]; !ok {
			t.Errorf("snapshot missing key %q", k)
		}
	}
	if len(m) != 6 {
		t.Errorf("snapshot has %d keys, want 6", len(m))
	}
	if string(m["admin"]) != "null" {
		t.Errorf("admin = %s, want null", m["admin"])
	}
}

func TestStateCloneIsDeep(t *testing.T) {
	s := NewState()
	s.Admin = &AdminSession{Email: "a@b.c", IsAuthenticated: true}
	s.Destinations = append(s.Destinations, Destination{ID: "d1", Highlights: []string{"reef"}, Gallery: []string{"x.jpg"}})
	s.Experiences = append(s.Experiences, Experience{ID: "e1", Included: []string{"boat"}})

	c := s.Clone()
	c.Admin.Email = "changed"
	c.Destinations[0].Highlights[0] = "changed"
	c.Destinations[0].Gallery[0] = "changed"
	c.Experiences[0].Included[0] = "changed"

	if s.Admin.Email != "a@b.c" {
		t.Error("clone shares Admin")
	}
	if s.Destinations[0].Highlights[0] != "reef" || s.Destinations[0].Gallery[0] != "x.jpg" {
		t.Error("clone shares destination slices")
	}
	if s.Experiences[0].Included[0] != "boat" {
		t.Error("clone shares experience slices")
	}
}

func TestSettingsPublicStripsCredentials(t *testing.T) {
	s := SiteSettings{SiteName: "Wonderful", AdminCredentials: Credentials{Email: "admin@tourism.com", Password: "Admin123!"}}
	p := s.Public()
	if p.AdminCredentials.Email != "" || p.AdminCredentials.Password != "" {
		t.Error("Public() should drop credentials")
	}
	if p.SiteName != "Wonderful" {
		t.Errorf("SiteName = %q", p.SiteName)
	}
	if s.AdminCredentials.Password != "Admin123!" {
		t.Error("Public() must not modify the receiver")
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Raja Ampat", "raja-ampat"},
		{"  Bali!! ", "bali"},
		{"Komodo   National Park", "komodo-national-park"},
		{"Tana Toraja: Land of the Kings", "tana-toraja-land-of-the-kings"},
		{"Snorkel & Dive", "snorkel-dive"},
		{"Mount\tBromo", "mount-bromo"},
		{"under_score 2", "under_score-2"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	if Slugify("Lake Toba") != Slugify("Lake Toba") {
		t.Error("Slugify should be deterministic")
	}
}

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 5000; i++ {
		id := NewID()
		if len(id) != IDLength {
			t.Fatalf("NewID() = %q, len %d, want %d", id, len(id), IDLength)
		}
		if strings.Trim(id, "0123456789abcdefghijklmnopqrstuvwxyz") != "" {
			t.Fatalf("NewID() = %q is not base-36", id)
		}
		if seen[id] {
			t.Fatalf("NewID() returned duplicate %q", id)
		}
		seen[id] = true
	}
}

func TestDifficultyValid(t *testing.T) {
	if !DifficultyChallenging.Valid() {
		t.Error("Challenging should be valid")
	}
	if Difficulty("Extreme").Valid() {
		t.Error("Extreme should be invalid")
	}
}

func TestMatchesCategory(t *testing.T) {
	if !MatchesCategory("", "Beach") || !MatchesCategory(CategoryAll, "Beach") {
		t.Error("empty and All should match everything")
	}
	if MatchesCategory("Nature", "Beach") {
		t.Error("Nature should not match Beach")
	}
	if !IsCategory("Water Sports") || IsCategory("Water sports") {
		t.Error("IsCategory should be exact")
	}
	if !IsGalleryCategory("Wildlife") || IsGalleryCategory("Beach") {
		t.Error("IsGalleryCategory mismatch")
	}
}

func TestValidate(t *testing.T) {
	d := Destination{ID: "x", Name: "Bali", Location: "Bali", ShortDescription: "s", Description: "d"}
	if err := d.Validate(); err != nil {
		t.Errorf("valid destination: %v", err)
	}
	d.Location = "  "
	err := d.Validate()
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if !strings.Contains(err.Error(), "location") {
		t.Errorf("error %q should name the missing field", err)
	}

	if err := (Experience{ID: "x"}).Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("experience without name: %v", err)
	}
	if err := (Testimonial{ID: "x", Name: "Sarah"}).Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("testimonial without text: %v", err)
	}
	if err := (GalleryItem{ID: "x", Title: "Sunset"}).Validate(); err != nil {
		t.Errorf("valid gallery item: %v", err)
	}
	if err := (GalleryItem{Title: "Sunset"}).Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("gallery item without id: %v", err)
	}
}
