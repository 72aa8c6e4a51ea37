package app

import (
	"context"
	"io"
	"log"
	"sync"
	"time"
)

// defaultWatchdogInterval is how often the watchdog retries a failed save.
const defaultWatchdogInterval = 30 * time.Second

// Flusher is implemented by ContentStore.
type Flusher interface {
	Dirty() bool
	Flush() error
}

// Watchdog retries snapshot saves after a persistence failure. A mutation
// whose save failed stays in memory and marks the store dirty; the watchdog
// flushes it on the next tick so the change is not lost on a crash later.
// A successful flush notifies clients through the store's own notifier.
type Watchdog struct {
	store    Flusher
	logger   *log.Logger
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}

	mu       sync.Mutex // serializes checks from Start and CheckOnce
	failures int
}

// WatchdogOption configures the watchdog.
type WatchdogOption func(*Watchdog)

// WithWatchdogInterval sets the check interval.
func WithWatchdogInterval(d time.Duration) WatchdogOption {
	return func(w *Watchdog) { w.interval = d }
}

// NewWatchdog creates a new Watchdog.
func NewWatchdog(store Flusher, logger *log.Logger, opts ...WatchdogOption) *Watchdog {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	w := &Watchdog{
		store:    store,
		logger:   logger,
		interval: defaultWatchdogInterval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Start begins the watchdog loop. Returns when ctx is cancelled or Stop is called.
func (w *Watchdog) Start(ctx context.Context) {
	defer close(w.doneCh)
	w.logger.Printf("Watchdog: started (interval=%s)", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Println("Watchdog: stopped (context cancelled)")
			return
		case <-w.stopCh:
			w.logger.Println("Watchdog: stopped")
			return
		case <-ticker.C:
			w.check()
		}
	}
}

// Stop signals the watchdog to stop.
func (w *Watchdog) Stop() {
	close(w.stopCh)
	<-w.doneCh
}

// CheckOnce runs one watchdog cycle (for testing or manual trigger).
func (w *Watchdog) CheckOnce() {
	w.check()
}

// Failures returns the number of consecutive failed flushes.
func (w *Watchdog) Failures() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.failures
}

func (w *Watchdog) check() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.store.Dirty() {
		return
	}
	if err := w.store.Flush(); err != nil {
		w.failures++
		w.logger.Printf("Watchdog: flush failed (attempt %d): %v", w.failures, err)
		return
	}
	w.logger.Printf("Watchdog: unsaved changes flushed after %d failed attempt(s)", w.failures)
	w.failures = 0
}
