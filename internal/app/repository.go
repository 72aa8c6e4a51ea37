// Package app implements the content store and defines its ports.
package app

import (
	"github.com/jaakkos/tourism-cms/internal/domain"
)

// SnapshotRepository loads and saves the full content snapshot.
// Implementation: internal/repository/sqlite.
type SnapshotRepository interface {
	// Load returns the persisted snapshot, or (nil, nil) when none exists.
	Load() (*domain.State, error)
	// Save persists the snapshot. Writes must be applied in call order.
	Save(*domain.State) error
}

// Seeder supplies the initial content when no snapshot can be loaded.
// Implementation: internal/seed.
type Seeder interface {
	Seed() (*domain.State, error)
}

// Triggerable is something that can be triggered after a snapshot write (e.g. Notifier).
type Triggerable interface {
	Trigger()
}
