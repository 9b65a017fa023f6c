package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"beacon/internal/models"
	"beacon/internal/store"
)

type eventRequest struct {
	Artists   []models.Artist `json:"artists"`
	Date      time.Time       `json:"date"`
	Venue     models.Venue    `json:"venue"`
	Purchased bool            `json:"purchased"`
}

func (r eventRequest) toEvent() models.Event {
	artists := r.Artists
	if artists == nil {
		artists = []models.Artist{}
	}
	return models.Event{
		Artists:   artists,
		Date:      r.Date,
		Venue:     r.Venue,
		Purchased: r.Purchased,
	}
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.events.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := s.events.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrEventNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "event not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := validateLineup(req.Artists); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	created, err := s.events.Create(r.Context(), req.toEvent())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := validateLineup(req.Artists); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	updated, err := s.events.Update(r.Context(), r.PathValue("id"), req.toEvent())
	if err != nil {
		if errors.Is(err, store.ErrEventNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "event not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := s.events.Delete(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, store.ErrEventNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "event not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// validateLineup rejects payloads with more than one headliner. The
// editor maintains this invariant client-side; the API refuses to
// store lineups that break it.
func validateLineup(artists []models.Artist) error {
	count := 0
	for _, a := range artists {
		if a.Headliner {
			count++
		}
	}
	if count > 1 {
		return errors.New("at most one artist may be flagged headliner")
	}
	return nil
}
