package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"beacon/internal/models"
)

// MemoryStore keeps events in-memory. It backs local development when
// no database is configured, and doubles as a test fixture. Events are
// cloned on the way in and out so callers never share slices with the
// store.
type MemoryStore struct {
	mu     sync.RWMutex
	events map[string]models.Event
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{events: make(map[string]models.Event)}
}

// NewSeededMemoryStore returns an in-memory store preloaded with a
// couple of demo events.
func NewSeededMemoryStore() *MemoryStore {
	s := NewMemoryStore()
	seed := []models.Event{
		{
			Artists: []models.Artist{
				{Name: "Glass Waves", Genre: "Electronic", Headliner: true},
				{Name: "Muted Tones", Genre: "Acoustic"},
			},
			Date:      time.Date(2026, time.October, 3, 20, 0, 0, 0, time.UTC),
			Venue:     models.Venue{Name: "The Paramount", City: "Seattle", State: "WA"},
			Purchased: true,
		},
		{
			Artists: []models.Artist{
				{Name: "Atlas Drift", Genre: "Ambient", Headliner: true},
			},
			Date:  time.Date(2026, time.November, 14, 19, 30, 0, 0, time.UTC),
			Venue: models.Venue{Name: "Red Rocks", City: "Morrison", State: "CO"},
		},
	}
	for _, event := range seed {
		_, _ = s.CreateEvent(context.Background(), event)
	}
	return s
}

// GetEvent retrieves a single event by ID.
func (s *MemoryStore) GetEvent(_ context.Context, id string) (models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	event, ok := s.events[id]
	if !ok {
		return models.Event{}, ErrEventNotFound
	}
	return event.Clone(), nil
}

// ListEvents returns every stored event, soonest first.
func (s *MemoryStore) ListEvents(_ context.Context) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]models.Event, 0, len(s.events))
	for _, event := range s.events {
		events = append(events, event.Clone())
	}
	sortEventsByDate(events)
	return events, nil
}

// CreateEvent stores a new event, minting an ID when none is set.
func (s *MemoryStore) CreateEvent(_ context.Context, event models.Event) (models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if _, ok := s.events[event.ID]; ok {
		return models.Event{}, ErrEventExists
	}
	s.events[event.ID] = event.Clone()
	return event, nil
}

// UpdateEvent replaces the stored event wholesale.
func (s *MemoryStore) UpdateEvent(_ context.Context, id string, event models.Event) (models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return models.Event{}, ErrEventNotFound
	}
	event.ID = id
	s.events[id] = event.Clone()
	return event, nil
}

// DeleteEvent removes an event by ID.
func (s *MemoryStore) DeleteEvent(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return ErrEventNotFound
	}
	delete(s.events, id)
	return nil
}

func sortEventsByDate(events []models.Event) {
	sort.Slice(events, func(i, j int) bool {
		if !events[i].Date.Equal(events[j].Date) {
			return events[i].Date.Before(events[j].Date)
		}
		return events[i].ID < events[j].ID
	})
}
