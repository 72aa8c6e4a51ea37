package app

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/jaakkos/tourism-cms/internal/domain"
)

// ErrPersist wraps every snapshot write failure returned by a mutation.
var ErrPersist = errors.New("persist snapshot")

// Outcome reports whether an update or delete matched an entity.
type Outcome int

const (
	NotFound Outcome = iota
	Applied
)

func (o Outcome) String() string {
	if o == Applied {
		return "applied"
	}
	return "not_found"
}

// Source records where the store was hydrated from.
type Source string

const (
	SourceSnapshot Source = "snapshot"
	SourceSeed     Source = "seed"
)

// ContentStore is the single owner of all content collections, the site
// settings and the admin session. Every applied mutation is followed by a
// full snapshot save. Reads return copies.
type ContentStore struct {
	repo       SnapshotRepository
	logger     *log.Logger
	now        func() time.Time
	signalPath string
	notifier   Triggerable // optional; set via SetNotifier after construction
	newID      func() string

	mu       sync.Mutex
	state    *domain.State
	source   Source
	revision uint64
	dirty    bool
	epoch    uint64 // bumped by every login and logout
	retired  map[string]struct{} // ids deleted in this process; NewID never hands them out again
}

// Option configures a ContentStore.
type Option func(*ContentStore)

// WithClock overrides the clock used for createdAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *ContentStore) { s.now = now }
}

// WithSignalFile sets the notify signal file touched after every save.
func WithSignalFile(path string) Option {
	return func(s *ContentStore) { s.signalPath = path }
}

// NewContentStore hydrates a store. The repository is read exactly once:
// a missing snapshot or a failed read falls back to the seeder. Only a
// seeder failure is returned as an error.
func NewContentStore(repo SnapshotRepository, seeder Seeder, logger *log.Logger, opts ...Option) (*ContentStore, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &ContentStore{
		repo:    repo,
		logger:  logger,
		now:     time.Now,
		newID:   domain.NewID,
		retired: make(map[string]struct{}),
	}
	for _, o := range opts {
		o(s)
	}

	state, err := repo.Load()
	switch {
	case err != nil:
		s.logger.Printf("Warning: snapshot load failed: %v (using seed data)", err)
		state = nil
	case state == nil:
		s.logger.Println("No persisted snapshot, using seed data")
	}
	s.source = SourceSnapshot
	if state == nil {
		state, err = seeder.Seed()
		if err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
		if state == nil {
			return nil, fmt.Errorf("seed: seeder returned no state")
		}
		s.source = SourceSeed
	}
	state.EnsureCollections()
	s.state = state
	s.logger.Printf("Content store ready (source=%s, destinations=%d, experiences=%d, testimonials=%d, gallery=%d)",
		s.source, len(state.Destinations), len(state.Experiences), len(state.Testimonials), len(state.Gallery))
	return s, nil
}

// SetNotifier attaches a Triggerable (e.g. *Notifier) that is poked after every snapshot write.
func (s *ContentStore) SetNotifier(n Triggerable) {
	s.mu.Lock()
	s.notifier = n
	s.mu.Unlock()
}

// Source reports whether the store was hydrated from a snapshot or from seed data.
func (s *ContentStore) Source() Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source
}

// Revision increments on every applied mutation, including ones whose save failed.
func (s *ContentStore) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// Dirty reports whether the in-memory state has changes that were not saved.
func (s *ContentStore) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Snapshot returns a deep copy of the whole state.
func (s *ContentStore) Snapshot() *domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Flush saves the current state if an earlier save failed.
func (s *ContentStore) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	return s.persistLocked()
}

// mutate runs fn under the lock. fn must either apply its change fully and
// return Applied, or leave the state untouched. Applied changes are saved;
// a failed save keeps the in-memory change and marks the store dirty.
func (s *ContentStore) mutate(op string, fn func(*domain.State) (Outcome, error)) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	outcome, err := fn(s.state)
	if err != nil {
		return NotFound, fmt.Errorf("%s: %w", op, err)
	}
	if outcome != Applied {
		return outcome, nil
	}
	s.revision++
	s.dirty = true
	if err := s.persistLocked(); err != nil {
		return Applied, fmt.Errorf("%s: %w", op, err)
	}
	return Applied, nil
}

// persistLocked writes the snapshot. Caller must hold s.mu.
func (s *ContentStore) persistLocked() error {
	if err := s.repo.Save(s.state.Clone()); err != nil {
		s.logger.Printf("Snapshot save failed (revision %d): %v", s.revision, err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	s.dirty = false
	if err := TouchNotifySignal(s.signalPath, s.revision); err != nil {
		s.logger.Printf("Warning: touch notify signal: %v", err)
	}
	if s.notifier != nil {
		s.notifier.Trigger()
	}
	return nil
}

// newIDLocked returns an identifier that taken rejects and that was not
// retired in this process. Caller must hold s.mu.
func (s *ContentStore) newIDLocked(taken func(string) bool) string {
	for {
		id := s.newID()
		if _, gone := s.retired[id]; gone {
			continue
		}
		if !taken(id) {
			return id
		}
	}
}

func (s *ContentStore) timestamp() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}
