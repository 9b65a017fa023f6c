// Package httpapi exposes the event repository over HTTP. It is the
// remote face the mobile clients sync against; the editor and creator
// state holders stay purely in-process.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"beacon/internal/models"
)

// EventService coordinates event-related operations.
type EventService interface {
	Get(ctx context.Context, id string) (models.Event, error)
	List(ctx context.Context) ([]models.Event, error)
	Create(ctx context.Context, event models.Event) (models.Event, error)
	Update(ctx context.Context, id string, event models.Event) (models.Event, error)
	Delete(ctx context.Context, id string) error
}

// Server wires HTTP handlers to the application services.
type Server struct {
	events EventService
}

// NewServer constructs a Server.
func NewServer(events EventService) *Server {
	return &Server{events: events}
}

// Routes returns the HTTP handler for all API endpoints.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /api/v1/events", s.handleListEvents)
	mux.HandleFunc("POST /api/v1/events", s.handleCreateEvent)
	mux.HandleFunc("GET /api/v1/events/{id}", s.handleGetEvent)
	mux.HandleFunc("PUT /api/v1/events/{id}", s.handleUpdateEvent)
	mux.HandleFunc("DELETE /api/v1/events/{id}", s.handleDeleteEvent)

	return mux
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
