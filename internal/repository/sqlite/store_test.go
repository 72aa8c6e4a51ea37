package sqlite

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/jaakkos/tourism-cms/internal/domain"
)

func TestStoreRoundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.sqlite")

	store, err := New(path, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer store.Close()

	state := domain.NewState()
	state.Admin = &domain.AdminSession{Email: "admin@tourism.com", IsAuthenticated: true}
	state.Destinations = append(state.Destinations, domain.Destination{
		ID: "abc1234", Name: "Raja Ampat", Slug: "raja-ampat", Location: "West Papua",
		ShortDescription: "Reefs", Description: "Islands", Rating: 4.9, Highlights: []string{"Diving"},
		CreatedAt: "2024-01-01T00:00:00Z",
	})
	state.Experiences = append(state.Experiences, domain.Experience{ID: "e1", Name: "Trek", Difficulty: domain.DifficultyChallenging, MaxParticipants: 8})
	state.Settings.Contact.Phone = "+62 21 000"

	if err := store.Save(state); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded == nil {
		t.Fatal("Load returned nil after Save")
	}
	if len(loaded.Destinations) != 1 || loaded.Destinations[0].Name != "Raja Ampat" {
		t.Errorf("Destinations = %+v", loaded.Destinations)
	}
	if loaded.Destinations[0].Highlights[0] != "Diving" {
		t.Errorf("Highlights = %v", loaded.Destinations[0].Highlights)
	}
	if loaded.Experiences[0].Difficulty != domain.DifficultyChallenging || loaded.Experiences[0].MaxParticipants != 8 {
		t.Errorf("Experiences[0] = %+v", loaded.Experiences[0])
	}
	if loaded.Admin == nil || loaded.Admin.Email != "admin@tourism.com" {
		t.Errorf("Admin = %+v", loaded.Admin)
	}
	if loaded.Settings.Contact.Phone != "+62 21 000" {
		t.Errorf("Contact.Phone = %q", loaded.Settings.Contact.Phone)
	}
	if loaded.Testimonials == nil || loaded.Gallery == nil {
		t.Error("empty collections should load as empty slices, not nil")
	}
}

func TestStoreLoad_AbsentReturnsNil(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "empty.sqlite"), "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer store.Close()

	state, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if state != nil {
		t.Errorf("Load on empty db = %+v, want nil", state)
	}
	if _, ok, err := store.UpdatedAt(); err != nil || ok {
		t.Errorf("UpdatedAt on empty db = ok %v err %v, want false nil", ok, err)
	}
}

func TestStoreSave_Overwrites(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "s.sqlite"), "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer store.Close()

	first := domain.NewState()
	first.Gallery = append(first.Gallery, domain.GalleryItem{ID: "g1", Title: "One"})
	if err := store.Save(first); err != nil {
		t.Fatal(err)
	}
	second := domain.NewState()
	if err := store.Save(second); err != nil {
		t.Fatal(err)
	}
	loaded, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Gallery) != 0 {
		t.Errorf("len(Gallery) = %d, want 0 (last save wins)", len(loaded.Gallery))
	}
	if _, ok, err := store.UpdatedAt(); err != nil || !ok {
		t.Errorf("UpdatedAt = ok %v err %v, want true nil", ok, err)
	}
}

func TestStoreKeysAreIndependent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.sqlite")
	a, err := New(path, "site-a")
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	b, err := New(path, "site-b")
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	st := domain.NewState()
	st.Settings.SiteName = "A"
	if err := a.Save(st); err != nil {
		t.Fatal(err)
	}
	got, err := b.Load()
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("site-b should have no snapshot, got %+v", got)
	}
}

func TestStoreLoad_CorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.sqlite")
	store, err := New(path, "")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if _, err := db.Exec(`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)`, DefaultKey, []byte("{not json"), "2024-01-01T00:00:00Z"); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Load(); err == nil {
		t.Error("Load should fail on an undecodable document")
	}
}

func TestStoreClose(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "closed.sqlite")

	st, err := New(path, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if st.db != nil {
		t.Error("Close should set db to nil")
	}
	// Second Close is no-op
	if err := st.Close(); err != nil {
		t.Errorf("Second Close: %v", err)
	}
	if err := st.Save(domain.NewState()); err == nil {
		t.Error("Save after Close should fail")
	}
}

func TestNew_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "state.sqlite")
	st, err := New(path, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_ = st.Close()
}
