package search

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaakkos/tourism-cms/internal/domain"
	"github.com/jaakkos/tourism-cms/internal/seed"
)

type fakeSource struct {
	mu    sync.Mutex
	state *domain.State
	rev   uint64
}

func (f *fakeSource) Snapshot() *domain.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Clone()
}

func (f *fakeSource) Revision() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rev
}

func (f *fakeSource) mutate(fn func(*domain.State)) {
	f.mu.Lock()
	fn(f.state)
	f.rev++
	f.mu.Unlock()
}

func seededSource(t *testing.T) *fakeSource {
	t.Helper()
	st, err := seed.Embedded().Seed()
	require.NoError(t, err)
	return &fakeSource{state: st}
}

func TestSyncer_IndexesSeedContent(t *testing.T) {
	src := seededSource(t)
	x := tempIndex(t)
	s := NewSyncer(x, src, nil)

	indexed, removed := s.Sync()
	assert.Equal(t, 20, indexed, "6 destinations + 4 experiences + 4 testimonials + 6 gallery items")
	assert.Zero(t, removed)

	results, err := x.Query("dragon", CollectionGallery, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "gal-03", results[0].ID)

	results, err = x.Query("volcano", CollectionExperiences, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "exp-trek-02", results[0].ID)

	indexed, removed = s.Sync()
	assert.Zero(t, indexed, "unchanged content is not re-indexed")
	assert.Zero(t, removed)
}

func TestSyncer_FollowsMutations(t *testing.T) {
	src := seededSource(t)
	x := tempIndex(t)
	s := NewSyncer(x, src, nil)
	s.Sync()

	assert.False(t, s.SyncIfChanged(), "revision unchanged")

	src.mutate(func(st *domain.State) {
		st.Gallery = st.Gallery[:len(st.Gallery)-1] // drop gal-06
		st.Destinations[0].Description = "Bioluminescent plankton light the jetty at night"
	})
	assert.True(t, s.SyncIfChanged())

	results, err := x.Query("orangutan", "", 10)
	require.NoError(t, err)
	assert.Empty(t, results, "deleted entity leaves the index")

	results, err = x.Query("bioluminescent", "", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "raja-ampat-01", results[0].ID)
}

func TestSyncer_RetriesAfterIndexFailure(t *testing.T) {
	src := seededSource(t)
	x, err := NewIndex("")
	require.NoError(t, err)
	s := NewSyncer(x, src, nil)

	require.NoError(t, x.Close())
	indexed, _ := s.Sync()
	assert.Zero(t, indexed)
	assert.True(t, s.SyncIfChanged(), "failed sync is retried at the same revision")
	assert.True(t, s.SyncIfChanged())

	healthy := tempIndex(t)
	s.index = healthy
	assert.True(t, s.SyncIfChanged())
	refs, err := healthy.Refs()
	require.NoError(t, err)
	assert.Len(t, refs, 20)
	assert.False(t, s.SyncIfChanged(), "clean sync records the revision")
}

func TestSyncer_StartStopsOnCancel(t *testing.T) {
	src := seededSource(t)
	x := tempIndex(t)
	s := NewSyncer(x, src, nil, WithSyncInterval(5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		refs, _ := x.Refs()
		return len(refs) == 20
	}, 2*time.Second, 10*time.Millisecond)

	src.mutate(func(st *domain.State) { st.Testimonials = nil })
	require.Eventually(t, func() bool {
		refs, _ := x.Refs()
		return len(refs) == 16
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}

func TestDocuments(t *testing.T) {
	st := domain.NewState()
	st.Destinations = []domain.Destination{{ID: "d1", Name: "Ubud", Location: "Bali", Highlights: []string{"Monkey Forest", "Rice terraces"}}}
	st.Gallery = []domain.GalleryItem{{ID: "g1", Title: "Sunset", Category: "Nature"}}

	docs := Documents(st)
	require.Len(t, docs, 2)
	assert.Equal(t, "destinations:d1", docs[0].Ref)
	assert.Equal(t, "Ubud", docs[0].Title)
	assert.Contains(t, docs[0].Content, "Monkey Forest")
	assert.Equal(t, "gallery:g1", docs[1].Ref)
	assert.Equal(t, "Nature", docs[1].Content)
}
