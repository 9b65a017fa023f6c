package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"beacon/internal/models"
)

// GetEvent retrieves a single event by ID.
func (s *Store) GetEvent(ctx context.Context, id string) (models.Event, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, date, venue_name, venue_city, venue_state, purchased, artists
		FROM events
		WHERE id = $1
	`, id)

	event, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return models.Event{}, ErrEventNotFound
	}
	if err != nil {
		return models.Event{}, fmt.Errorf("select event: %w", err)
	}
	return event, nil
}

// ListEvents returns every stored event, soonest first.
func (s *Store) ListEvents(ctx context.Context) ([]models.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, venue_name, venue_city, venue_state, purchased, artists
		FROM events
		ORDER BY date ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

// CreateEvent inserts a new event, minting an ID when none is set.
func (s *Store) CreateEvent(ctx context.Context, event models.Event) (models.Event, error) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	artistsJSON, err := json.Marshal(artistsOrEmpty(event.Artists))
	if err != nil {
		return models.Event{}, fmt.Errorf("prepare artists payload: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO events (id, date, venue_name, venue_city, venue_state, purchased, artists)
		VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb)
	`, event.ID, event.Date, event.Venue.Name, event.Venue.City, event.Venue.State,
		event.Purchased, string(artistsJSON))
	if isUniqueViolation(err) {
		return models.Event{}, ErrEventExists
	}
	if err != nil {
		return models.Event{}, fmt.Errorf("insert event: %w", err)
	}

	return event, nil
}

// UpdateEvent replaces the stored event wholesale.
func (s *Store) UpdateEvent(ctx context.Context, id string, event models.Event) (models.Event, error) {
	artistsJSON, err := json.Marshal(artistsOrEmpty(event.Artists))
	if err != nil {
		return models.Event{}, fmt.Errorf("prepare artists payload: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE events
		SET date = $2, venue_name = $3, venue_city = $4, venue_state = $5,
		    purchased = $6, artists = $7::jsonb, updated_at = now()
		WHERE id = $1
	`, id, event.Date, event.Venue.Name, event.Venue.City, event.Venue.State,
		event.Purchased, string(artistsJSON))
	if err != nil {
		return models.Event{}, fmt.Errorf("update event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Event{}, fmt.Errorf("update event: %w", err)
	}
	if affected == 0 {
		return models.Event{}, ErrEventNotFound
	}

	event.ID = id
	return event, nil
}

// DeleteEvent removes an event by ID.
func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if affected == 0 {
		return ErrEventNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (models.Event, error) {
	var (
		event       models.Event
		artistsJSON []byte
	)
	err := row.Scan(&event.ID, &event.Date, &event.Venue.Name, &event.Venue.City,
		&event.Venue.State, &event.Purchased, &artistsJSON)
	if err != nil {
		return models.Event{}, err
	}
	if err := json.Unmarshal(artistsJSON, &event.Artists); err != nil {
		return models.Event{}, fmt.Errorf("decode artists payload: %w", err)
	}
	return event, nil
}

func artistsOrEmpty(artists []models.Artist) []models.Artist {
	if artists == nil {
		return []models.Artist{}
	}
	return artists
}
