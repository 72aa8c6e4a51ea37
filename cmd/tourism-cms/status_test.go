package main

import (
	"testing"

	"github.com/jaakkos/tourism-cms/internal/domain"
	"github.com/jaakkos/tourism-cms/internal/seed"
)

func TestFormatStatus(t *testing.T) {
	state, err := seed.Embedded().Seed()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	got := formatStatus("seed", state)
	want := "source=seed destinations=6 experiences=4 testimonials=4 gallery=6 admin=none"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	state.Admin = &domain.AdminSession{Email: "admin@tourism.com", IsAuthenticated: true}
	got = formatStatus("snapshot", state)
	want = "source=snapshot destinations=6 experiences=4 testimonials=4 gallery=6 admin=admin@tourism.com"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
