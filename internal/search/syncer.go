package search

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"github.com/jaakkos/tourism-cms/internal/domain"
)

const defaultSyncInterval = 2 * time.Second

// Source is implemented by app.ContentStore.
type Source interface {
	Snapshot() *domain.State
	Revision() uint64
}

// Syncer keeps an Index in step with a Source. It polls the source
// revision and rebuilds the changed documents when the revision moves.
type Syncer struct {
	index    *Index
	source   Source
	logger   *log.Logger
	interval time.Duration

	mu      sync.Mutex
	lastRev uint64
	synced  bool
}

// SyncerOption configures a Syncer.
type SyncerOption func(*Syncer)

// WithSyncInterval sets how often the source revision is polled.
func WithSyncInterval(d time.Duration) SyncerOption {
	return func(s *Syncer) { s.interval = d }
}

// NewSyncer creates a syncer. Call Sync or Start to populate the index.
func NewSyncer(index *Index, source Source, logger *log.Logger, opts ...SyncerOption) *Syncer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Syncer{index: index, source: source, logger: logger, interval: defaultSyncInterval}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Start performs a full sync, then polls until ctx is cancelled.
func (s *Syncer) Start(ctx context.Context) {
	start := time.Now()
	indexed, removed := s.Sync()
	s.logger.Printf("Search index: initial sync in %s (indexed=%d, removed=%d)", time.Since(start).Round(time.Millisecond), indexed, removed)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.logger.Println("Search index: stopped")
			return
		case <-ticker.C:
			s.SyncIfChanged()
		}
	}
}

// SyncIfChanged syncs when the source revision differs from the last sync.
// Reports whether a sync ran.
func (s *Syncer) SyncIfChanged() bool {
	s.mu.Lock()
	unchanged := s.synced && s.source.Revision() == s.lastRev
	s.mu.Unlock()
	if unchanged {
		return false
	}
	s.Sync()
	return true
}

// Sync indexes every changed document and removes documents whose entity
// no longer exists. If any document fails, the revision is not recorded and
// the next SyncIfChanged runs again.
func (s *Syncer) Sync() (indexed, removed int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Read the revision first: a write landing in between is picked up
	// by the next poll.
	rev := s.source.Revision()
	docs := Documents(s.source.Snapshot())

	failed := false
	seen := make(map[string]bool, len(docs))
	for _, doc := range docs {
		seen[doc.Ref] = true
		changed, err := s.index.Put(doc)
		if err != nil {
			s.logger.Printf("Search index: index %s: %v", doc.Ref, err)
			failed = true
			continue
		}
		if changed {
			indexed++
		}
	}

	refs, err := s.index.Refs()
	if err != nil {
		s.logger.Printf("Search index: list refs: %v", err)
		failed = true
	}
	for _, r := range refs {
		if seen[r] {
			continue
		}
		if err := s.index.Remove(r); err != nil {
			s.logger.Printf("Search index: remove %s: %v", r, err)
			failed = true
			continue
		}
		removed++
	}

	if failed {
		s.synced = false
		return indexed, removed
	}
	s.lastRev = rev
	s.synced = true
	return indexed, removed
}
