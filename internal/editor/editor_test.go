package editor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beacon/internal/models"
)

// stubStore counts GetEvent calls and can fail, return a fixed event,
// or block until released.
type stubStore struct {
	mu      sync.Mutex
	calls   int
	event   models.Event
	err     error
	release chan struct{} // when set, GetEvent blocks until closed
}

func (s *stubStore) GetEvent(_ context.Context, _ string) (models.Event, error) {
	s.mu.Lock()
	s.calls++
	release := s.release
	err := s.err
	event := s.event.Clone()
	s.mu.Unlock()

	if release != nil {
		<-release
	}
	if err != nil {
		return models.Event{}, err
	}
	return event, nil
}

func (s *stubStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func newTestEditor(store *stubStore) *Editor {
	return New(store, zerolog.Nop())
}

func waitForStatus(t *testing.T, e *Editor, status Status) State {
	t.Helper()
	require.Eventually(t, func() bool {
		return e.State().Status == status
	}, time.Second, 5*time.Millisecond, "editor never reached status %q", status)
	return e.State()
}

func loadSuccess(t *testing.T, e *Editor, eventID, loadID string) State {
	t.Helper()
	e.LoadEvent(context.Background(), eventID, loadID)
	return waitForStatus(t, e, StatusSuccess)
}

func sampleEvent() models.Event {
	return models.Event{
		ID: "evt-1",
		Artists: []models.Artist{
			{Name: "Glass Waves", Genre: "Electronic", Headliner: true},
			{Name: "Muted Tones", Genre: "Acoustic"},
		},
		Date:      time.Date(2026, time.October, 3, 20, 0, 0, 0, time.UTC),
		Venue:     models.Venue{Name: "The Paramount", City: "Seattle", State: "WA"},
		Purchased: true,
	}
}

func TestLoadNewEvent(t *testing.T) {
	store := &stubStore{}
	e := newTestEditor(store)
	now := time.Date(2026, time.August, 29, 12, 0, 0, 0, time.UTC)
	e.now = func() time.Time { return now }

	st := loadSuccess(t, e, "", "u1")

	assert.Equal(t, "u1", st.LoadID)
	assert.Empty(t, st.Saved.Artists)
	assert.Equal(t, now, st.Saved.Date)
	assert.Equal(t, models.Venue{}, st.Saved.Venue)
	assert.False(t, st.Saved.Purchased)
	assert.Equal(t, st.Saved, st.Draft)
	assert.Zero(t, store.callCount(), "fresh events must not hit the repository")
}

func TestLoadExistingEvent(t *testing.T) {
	store := &stubStore{event: sampleEvent()}
	e := newTestEditor(store)

	st := loadSuccess(t, e, "evt-1", "u1")

	assert.Equal(t, sampleEvent(), st.Saved)
	assert.Equal(t, st.Saved, st.Draft)
	assert.Equal(t, 1, store.callCount())
}

func TestLoadDraftIsIndependentCopy(t *testing.T) {
	store := &stubStore{event: sampleEvent()}
	e := newTestEditor(store)
	loadSuccess(t, e, "evt-1", "u1")

	e.AddOpener(models.Artist{Name: "Band A", Genre: "Rock"})

	st := e.State()
	assert.Len(t, st.Draft.Artists, 3)
	assert.Equal(t, sampleEvent().Artists, st.Saved.Artists, "mutating the draft must not touch the baseline")
}

func TestLoadFailure(t *testing.T) {
	store := &stubStore{err: errors.New("connection refused")}
	e := newTestEditor(store)

	e.LoadEvent(context.Background(), "404", "u1")
	st := waitForStatus(t, e, StatusError)

	assert.Equal(t, ErrLoadMessage, st.Message)
	assert.Empty(t, st.LoadID, "error state carries no load token")
}

func TestLoadSameTokenSkipsRefetch(t *testing.T) {
	store := &stubStore{event: sampleEvent()}
	e := newTestEditor(store)
	loadSuccess(t, e, "evt-1", "u1")

	e.LoadEvent(context.Background(), "evt-1", "u1")

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, store.callCount())
	assert.Equal(t, StatusSuccess, e.State().Status)
}

func TestLoadNewTokenRefetches(t *testing.T) {
	store := &stubStore{event: sampleEvent()}
	e := newTestEditor(store)
	loadSuccess(t, e, "evt-1", "u1")

	st := loadSuccess(t, e, "evt-1", "u2")

	assert.Equal(t, "u2", st.LoadID)
	assert.Equal(t, 2, store.callCount())
}

func TestLoadAfterErrorRetries(t *testing.T) {
	store := &stubStore{err: errors.New("boom")}
	e := newTestEditor(store)
	e.LoadEvent(context.Background(), "evt-1", "u1")
	waitForStatus(t, e, StatusError)

	store.mu.Lock()
	store.err = nil
	store.event = sampleEvent()
	store.mu.Unlock()

	st := loadSuccess(t, e, "evt-1", "u1")
	assert.Equal(t, "u1", st.LoadID)
}

func TestSupersededLoadResultDropped(t *testing.T) {
	first := make(chan struct{})
	store := &stubStore{event: sampleEvent(), release: first}
	e := newTestEditor(store)

	// First load stalls inside the repository.
	e.LoadEvent(context.Background(), "evt-1", "u1")

	// Second load supersedes it and completes immediately.
	store.mu.Lock()
	store.release = nil
	store.mu.Unlock()
	e.LoadEvent(context.Background(), "evt-1", "u2")
	waitForStatus(t, e, StatusSuccess)

	// Now let the first fetch finish; its result must be dropped.
	close(first)
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, "u2", e.State().LoadID)
}

func TestUpdateHeadlinerReplacesExisting(t *testing.T) {
	store := &stubStore{event: sampleEvent()}
	e := newTestEditor(store)
	loadSuccess(t, e, "evt-1", "u1")

	next := models.Artist{Name: "Atlas Drift", Genre: "Ambient"}
	e.UpdateHeadliner(&next)

	st := e.State()
	require.Len(t, st.Draft.Artists, 2)
	headliner, ok := st.Draft.Headliner()
	require.True(t, ok)
	assert.Equal(t, "Atlas Drift", headliner.Name)
	assert.True(t, headliner.Headliner)
	// The previous headliner is gone entirely, not just unflagged.
	for _, a := range st.Draft.Artists {
		assert.NotEqual(t, "Glass Waves", a.Name)
	}
}

func TestUpdateHeadlinerNilClearsHeadliner(t *testing.T) {
	store := &stubStore{event: sampleEvent()}
	e := newTestEditor(store)
	loadSuccess(t, e, "evt-1", "u1")

	e.UpdateHeadliner(nil)

	st := e.State()
	_, ok := st.Draft.Headliner()
	assert.False(t, ok)
	assert.Len(t, st.Draft.Artists, 1, "only the opener remains")
}

func TestAddOpenerAppends(t *testing.T) {
	store := &stubStore{}
	e := newTestEditor(store)
	loadSuccess(t, e, "", "u1")

	opener := models.Artist{Name: "Band A", Genre: "Rock"}
	e.AddOpener(opener)
	e.AddOpener(opener) // duplicates are allowed

	st := e.State()
	require.Len(t, st.Draft.Artists, 2)
	assert.Equal(t, opener, st.Draft.Artists[0])
	assert.Equal(t, opener, st.Draft.Artists[1])
	assert.Empty(t, st.Saved.Artists)
}

func TestAddOpenerPreservesOrder(t *testing.T) {
	store := &stubStore{event: sampleEvent()}
	e := newTestEditor(store)
	loadSuccess(t, e, "evt-1", "u1")

	e.AddOpener(models.Artist{Name: "Band A", Genre: "Rock"})

	st := e.State()
	require.Len(t, st.Draft.Artists, 3)
	assert.Equal(t, "Glass Waves", st.Draft.Artists[0].Name)
	assert.Equal(t, "Muted Tones", st.Draft.Artists[1].Name)
	assert.Equal(t, "Band A", st.Draft.Artists[2].Name)
}

func TestRemoveOpener(t *testing.T) {
	store := &stubStore{event: sampleEvent()}
	e := newTestEditor(store)
	loadSuccess(t, e, "evt-1", "u1")

	e.RemoveOpener(models.Artist{Name: "Muted Tones", Genre: "Acoustic"})

	st := e.State()
	require.Len(t, st.Draft.Artists, 1)
	assert.Equal(t, "Glass Waves", st.Draft.Artists[0].Name)
}

func TestRemoveOpenerAbsentIsNoop(t *testing.T) {
	store := &stubStore{event: sampleEvent()}
	e := newTestEditor(store)
	before := loadSuccess(t, e, "evt-1", "u1")

	e.RemoveOpener(models.Artist{Name: "Nobody", Genre: "None"})

	assert.Equal(t, before.Draft, e.State().Draft)
}

func TestRemoveOpenerRemovesFirstMatchOnly(t *testing.T) {
	store := &stubStore{}
	e := newTestEditor(store)
	loadSuccess(t, e, "", "u1")

	opener := models.Artist{Name: "Band A", Genre: "Rock"}
	e.AddOpener(opener)
	e.AddOpener(opener)
	e.RemoveOpener(opener)

	assert.Len(t, e.State().Draft.Artists, 1)
}

func TestScalarUpdates(t *testing.T) {
	store := &stubStore{}
	e := newTestEditor(store)
	loadSuccess(t, e, "", "u1")

	venue := models.Venue{Name: "Red Rocks", City: "Morrison", State: "CO"}
	date := time.Date(2026, time.December, 31, 21, 0, 0, 0, time.UTC)

	e.UpdateVenue(venue)
	e.UpdateDate(date)
	e.UpdatePurchased(true)

	st := e.State()
	assert.Equal(t, venue, st.Draft.Venue)
	assert.Equal(t, date, st.Draft.Date)
	assert.True(t, st.Draft.Purchased)
	assert.Equal(t, models.Venue{}, st.Saved.Venue)
	assert.False(t, st.Saved.Purchased)
}

func TestBaselineSurvivesMutationSequence(t *testing.T) {
	store := &stubStore{event: sampleEvent()}
	e := newTestEditor(store)
	loadSuccess(t, e, "evt-1", "u1")

	headliner := models.Artist{Name: "Atlas Drift", Genre: "Ambient"}
	e.UpdateHeadliner(&headliner)
	e.AddOpener(models.Artist{Name: "Band A", Genre: "Rock"})
	e.RemoveOpener(models.Artist{Name: "Muted Tones", Genre: "Acoustic"})
	e.UpdateVenue(models.Venue{Name: "Elsewhere"})
	e.UpdateDate(time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC))
	e.UpdatePurchased(false)

	st := e.State()
	assert.Equal(t, sampleEvent(), st.Saved)
	assert.Equal(t, "u1", st.LoadID)
}

func TestMutationsIgnoredWhileLoading(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	store := &stubStore{event: sampleEvent(), release: release}
	e := newTestEditor(store)
	e.LoadEvent(context.Background(), "evt-1", "u1")

	e.AddOpener(models.Artist{Name: "Band A"})
	e.UpdatePurchased(true)

	st := e.State()
	assert.Equal(t, StatusLoading, st.Status)
	assert.Empty(t, st.Draft.Artists)
}

func TestMutationsIgnoredAfterError(t *testing.T) {
	store := &stubStore{err: errors.New("boom")}
	e := newTestEditor(store)
	e.LoadEvent(context.Background(), "evt-1", "u1")
	before := waitForStatus(t, e, StatusError)

	e.AddOpener(models.Artist{Name: "Band A"})
	e.UpdateVenue(models.Venue{Name: "Nowhere"})

	assert.Equal(t, before, e.State())
}

func TestSubscribeSeesMutations(t *testing.T) {
	store := &stubStore{}
	e := newTestEditor(store)
	loadSuccess(t, e, "", "u1")

	var (
		mu     sync.Mutex
		states []State
	)
	cancel := e.Subscribe(func(st State) {
		mu.Lock()
		states = append(states, st)
		mu.Unlock()
	})
	defer cancel()

	e.AddOpener(models.Artist{Name: "Band A", Genre: "Rock"})

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, states, 1)
	assert.Equal(t, "Band A", states[0].Draft.Artists[0].Name)
}
