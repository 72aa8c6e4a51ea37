package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	defaultDebounceMs   = 200
	defaultPollInterval = 10 * time.Second

	// ContentUpdateMethod is the notification method pushed to MCP clients.
	ContentUpdateMethod = "notifications/content_update"
)

// ContentUpdateParams is the payload for notifications/content_update.
type ContentUpdateParams struct {
	Revision      string `json:"revision"`
	StoreRevision uint64 `json:"storeRevision,omitempty"`
	Destinations  int    `json:"destinations"`
	Experiences   int    `json:"experiences"`
	Testimonials  int    `json:"testimonials"`
	Gallery       int    `json:"gallery"`
	Authenticated bool   `json:"authenticated"`
	Summary       string `json:"summary"`
}

// StatsSource is implemented by ContentStore.
type StatsSource interface {
	Stats() ContentStats
}

// Notifier watches the signal file written after every snapshot save and
// pushes content_update notifications when the revision changes. Writes
// made by another process against the same state file are picked up too.
type Notifier struct {
	signalPath   string
	stats        StatsSource
	pushFunc     func(method string, params any) error
	logger       *log.Logger
	debounceMs   int
	pollInterval time.Duration

	mu            sync.Mutex
	lastPushedRev string
	debounceTimer *time.Timer
	watcher       *fsnotify.Watcher
	useFsnotify   bool
	stopCh        chan struct{}
	doneCh        chan struct{}
	pushMu        sync.Mutex // serializes checkAndPush to prevent duplicate pushes
}

// NotifierOption configures the notifier.
type NotifierOption func(*Notifier)

// WithPollInterval sets the fallback poll interval (default 10s).
func WithPollInterval(d time.Duration) NotifierOption {
	return func(n *Notifier) {
		n.pollInterval = d
	}
}

// WithDebounce sets the debounce window applied to file events and triggers.
func WithDebounce(d time.Duration) NotifierOption {
	return func(n *Notifier) {
		n.debounceMs = int(d / time.Millisecond)
	}
}

// NewNotifier creates a notifier. pushFunc is called with ContentUpdateMethod
// and a ContentUpdateParams value whenever the signal revision changes.
func NewNotifier(signalPath string, stats StatsSource, pushFunc func(method string, params any) error, logger *log.Logger, opts ...NotifierOption) *Notifier {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	n := &Notifier{
		signalPath:   signalPath,
		stats:        stats,
		pushFunc:     pushFunc,
		logger:       logger,
		debounceMs:   defaultDebounceMs,
		pollInterval: defaultPollInterval,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}
	for _, o := range opts {
		o(n)
	}
	return n
}

// Start starts the file watcher and fallback poll. Returns when ctx is cancelled.
// If fsnotify fails to initialize, falls back to poll-only mode.
func (n *Notifier) Start(ctx context.Context) {
	defer close(n.doneCh)

	watchDir := filepath.Dir(n.signalPath)
	signalName := filepath.Base(n.signalPath)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		n.logger.Printf("Notifier: fsnotify init failed (%v), using poll-only", err)
		n.useFsnotify = false
	} else {
		n.watcher = watcher
		n.useFsnotify = true
		if err := watcher.Add(watchDir); err != nil {
			n.logger.Printf("Notifier: fsnotify add %s failed (%v), using poll-only", watchDir, err)
			_ = watcher.Close()
			n.watcher = nil
			n.useFsnotify = false
		}
	}

	if n.useFsnotify {
		defer n.watcher.Close()
		go n.watchLoop(ctx, signalName)
	}

	n.pollLoop(ctx)
}

// Stop signals the notifier to stop. Call after cancelling the context passed to Start.
func (n *Notifier) Stop() {
	close(n.stopCh)
	<-n.doneCh
	n.mu.Lock()
	if n.debounceTimer != nil {
		n.debounceTimer.Stop()
	}
	n.mu.Unlock()
}

// CheckOnce runs one check-and-push cycle (for testing or manual trigger).
func (n *Notifier) CheckOnce() {
	n.checkAndPush()
}

// Trigger forces a check-and-push cycle, bypassing the revision dedup.
// ContentStore calls it after every save so same-process writes are pushed
// even when fsnotify misses the event.
func (n *Notifier) Trigger() {
	n.mu.Lock()
	n.lastPushedRev = ""
	n.mu.Unlock()
	n.triggerDebounced()
}

func (n *Notifier) watchLoop(ctx context.Context, signalName string) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-n.stopCh:
			return
		case event, ok := <-n.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != signalName {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			n.triggerDebounced()
		case _, ok := <-n.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (n *Notifier) triggerDebounced() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.debounceTimer != nil {
		n.debounceTimer.Stop()
	}
	n.debounceTimer = time.AfterFunc(time.Duration(n.debounceMs)*time.Millisecond, func() {
		n.checkAndPush()
	})
}

func (n *Notifier) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(n.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-n.stopCh:
			return
		case <-ticker.C:
			n.checkAndPush()
		}
	}
}

func (n *Notifier) checkAndPush() {
	n.pushMu.Lock()
	defer n.pushMu.Unlock()

	rev := n.readSignalRevision()
	if rev == "" {
		return
	}
	n.mu.Lock()
	if rev == n.lastPushedRev {
		n.mu.Unlock()
		return
	}
	n.mu.Unlock()

	st := n.stats.Stats()
	storeRev, _ := signalRevision(rev)
	params := ContentUpdateParams{
		Revision:      rev,
		StoreRevision: storeRev,
		Destinations:  st.Destinations,
		Experiences:   st.Experiences,
		Testimonials:  st.Testimonials,
		Gallery:       st.Gallery,
		Authenticated: st.Authenticated,
		Summary:       buildSummary(st),
	}
	if err := n.pushFunc(ContentUpdateMethod, params); err != nil {
		n.logger.Printf("Notifier: push failed: %v", err)
		return
	}
	n.mu.Lock()
	n.lastPushedRev = rev
	n.mu.Unlock()
}

func (n *Notifier) readSignalRevision() string {
	data, err := os.ReadFile(n.signalPath)
	if err != nil {
		return ""
	}
	return string(data)
}

func buildSummary(st ContentStats) string {
	return fmt.Sprintf("%d destination(s), %d experience(s), %d testimonial(s), %d gallery item(s)",
		st.Destinations, st.Experiences, st.Testimonials, st.Gallery)
}
