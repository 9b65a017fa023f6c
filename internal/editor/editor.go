// Package editor holds the draft state for the event editor screen.
//
// The editor loads an event (existing or brand new) into a dual-copy
// model: Saved is the baseline as last fetched, Draft is the working
// copy the screen mutates. Mutations always replace Draft with a fresh
// copy and never touch Saved, so discard/compare logic stays trivial.
package editor

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"beacon/internal/models"
	"beacon/internal/watch"
)

// ErrLoadMessage is the fixed user-facing message for any load
// failure. The underlying cause is logged, never shown.
const ErrLoadMessage = "Failed to load event"

// Status discriminates the editor's state variants.
type Status string

const (
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// State is one immutable snapshot of the editor. LoadID, Saved and
// Draft are meaningful only when Status is StatusSuccess; Message only
// when Status is StatusError.
type State struct {
	Status  Status
	LoadID  string
	Saved   models.Event
	Draft   models.Event
	Message string
}

// Clone deep-copies the snapshot so callers can hold it without
// aliasing the editor's internal value.
func (s State) Clone() State {
	out := s
	out.Saved = s.Saved.Clone()
	out.Draft = s.Draft.Clone()
	return out
}

// EventGetter is the slice of the repository the editor needs.
type EventGetter interface {
	GetEvent(ctx context.Context, id string) (models.Event, error)
}

// Editor owns the event-editor state. One editor per screen instance;
// all operations are safe for concurrent use, but subscribers are
// notified synchronously and must not call back into the editor.
type Editor struct {
	events EventGetter
	logger zerolog.Logger
	now    func() time.Time

	mu      sync.Mutex
	pending string // load token of the fetch allowed to complete
	value   *watch.Value[State]
}

// New constructs an Editor in the Loading state.
func New(events EventGetter, logger zerolog.Logger) *Editor {
	return &Editor{
		events: events,
		logger: logger.With().Str("component", "event_editor").Logger(),
		now:    time.Now,
		value:  watch.NewValue(State{Status: StatusLoading}),
	}
}

// State returns a deep copy of the current snapshot.
func (e *Editor) State() State {
	return e.value.Get().Clone()
}

// Subscribe registers fn to run after every state change and returns a
// cancel function. Each subscriber receives its own deep copy.
func (e *Editor) Subscribe(fn func(State)) (cancel func()) {
	return e.value.Subscribe(func(st State) {
		fn(st.Clone())
	})
}

// LoadEvent (re)loads the editor. An empty eventID starts a fresh
// event; otherwise the event is fetched from the repository. loadID
// identifies this logical load request: if the editor already holds a
// successful load with the same token the call is a no-op, which keeps
// UI re-entry from refetching.
//
// The fetch runs asynchronously. A completion whose token has been
// superseded by a later LoadEvent call is dropped, so overlapping
// loads cannot publish stale state.
func (e *Editor) LoadEvent(ctx context.Context, eventID, loadID string) {
	e.mu.Lock()
	cur := e.value.Get()
	if cur.Status == StatusSuccess && cur.LoadID == loadID {
		e.mu.Unlock()
		e.logger.Debug().Str("load_id", loadID).Msg("load already satisfied, skipping")
		return
	}
	e.pending = loadID
	e.value.Set(State{Status: StatusLoading})
	e.mu.Unlock()

	e.logger.Debug().Str("load_id", loadID).Str("event_id", eventID).Msg("loading event")

	go func() {
		event, err := e.fetch(ctx, eventID)

		e.mu.Lock()
		defer e.mu.Unlock()
		if e.pending != loadID {
			e.logger.Debug().Str("load_id", loadID).Msg("dropping superseded load result")
			return
		}
		if err != nil {
			e.logger.Error().Err(err).Str("event_id", eventID).Msg("event load failed")
			e.value.Set(State{Status: StatusError, Message: ErrLoadMessage})
			return
		}
		e.value.Set(State{
			Status: StatusSuccess,
			LoadID: loadID,
			Saved:  event,
			Draft:  event.Clone(),
		})
		e.logger.Debug().Str("load_id", loadID).Int("artists", len(event.Artists)).Msg("event loaded")
	}()
}

func (e *Editor) fetch(ctx context.Context, eventID string) (models.Event, error) {
	if eventID == "" {
		return models.Event{
			Artists:   []models.Artist{},
			Date:      e.now(),
			Venue:     models.Venue{},
			Purchased: false,
		}, nil
	}
	return e.events.GetEvent(ctx, eventID)
}

// UpdateHeadliner replaces the draft's headliner. Any artist currently
// flagged as headliner is removed from the lineup; when headliner is
// non-nil it is flagged and appended, keeping at most one headliner.
func (e *Editor) UpdateHeadliner(headliner *models.Artist) {
	e.mutate("update_headliner", func(draft *models.Event) {
		kept := draft.Artists[:0]
		for _, a := range draft.Artists {
			if !a.Headliner {
				kept = append(kept, a)
			}
		}
		draft.Artists = kept
		if headliner != nil {
			next := *headliner
			next.Headliner = true
			draft.Artists = append(draft.Artists, next)
		}
	})
}

// AddOpener appends an opener to the draft lineup. Duplicates are
// allowed; the lineup carries no uniqueness invariant.
func (e *Editor) AddOpener(opener models.Artist) {
	e.mutate("add_opener", func(draft *models.Event) {
		draft.Artists = append(draft.Artists, opener)
	})
}

// RemoveOpener removes the first structural match from the draft
// lineup, or does nothing when absent.
func (e *Editor) RemoveOpener(opener models.Artist) {
	e.mutate("remove_opener", func(draft *models.Event) {
		for i, a := range draft.Artists {
			if a == opener {
				draft.Artists = append(draft.Artists[:i], draft.Artists[i+1:]...)
				return
			}
		}
	})
}

// UpdateVenue replaces the draft's venue.
func (e *Editor) UpdateVenue(venue models.Venue) {
	e.mutate("update_venue", func(draft *models.Event) {
		draft.Venue = venue
	})
}

// UpdateDate replaces the draft's date.
func (e *Editor) UpdateDate(date time.Time) {
	e.mutate("update_date", func(draft *models.Event) {
		draft.Date = date
	})
}

// UpdatePurchased replaces the draft's purchased flag.
func (e *Editor) UpdatePurchased(purchased bool) {
	e.mutate("update_purchased", func(draft *models.Event) {
		draft.Purchased = purchased
	})
}

// mutate applies op to a copy of the current draft and publishes a new
// Success snapshot with the same LoadID and Saved baseline. Outside of
// Success the call is a silent no-op; wrong-state mutations are a UI
// timing artifact, not an error.
func (e *Editor) mutate(op string, apply func(draft *models.Event)) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cur := e.value.Get()
	if cur.Status != StatusSuccess {
		e.logger.Debug().Str("op", op).Str("status", string(cur.Status)).Msg("ignoring mutation outside success state")
		return
	}

	draft := cur.Draft.Clone()
	apply(&draft)
	e.value.Set(State{
		Status: StatusSuccess,
		LoadID: cur.LoadID,
		Saved:  cur.Saved,
		Draft:  draft,
	})
	e.logger.Debug().Str("op", op).Int("artists", len(draft.Artists)).Msg("draft updated")
}
