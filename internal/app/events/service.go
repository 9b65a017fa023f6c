package events

import (
	"context"

	"beacon/internal/models"
)

// Store defines persistence operations for events.
type Store interface {
	GetEvent(ctx context.Context, id string) (models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	CreateEvent(ctx context.Context, event models.Event) (models.Event, error)
	UpdateEvent(ctx context.Context, id string, event models.Event) (models.Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

// Service coordinates event-related operations.
type Service interface {
	Get(ctx context.Context, id string) (models.Event, error)
	List(ctx context.Context) ([]models.Event, error)
	Create(ctx context.Context, event models.Event) (models.Event, error)
	Update(ctx context.Context, id string, event models.Event) (models.Event, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	store Store
}

// New constructs an events Service.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Get(ctx context.Context, id string) (models.Event, error) {
	if err := ctx.Err(); err != nil {
		return models.Event{}, err
	}
	return s.store.GetEvent(ctx, id)
}

func (s *service) List(ctx context.Context) ([]models.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListEvents(ctx)
}

func (s *service) Create(ctx context.Context, event models.Event) (models.Event, error) {
	if err := ctx.Err(); err != nil {
		return models.Event{}, err
	}
	return s.store.CreateEvent(ctx, event)
}

func (s *service) Update(ctx context.Context, id string, event models.Event) (models.Event, error) {
	if err := ctx.Err(); err != nil {
		return models.Event{}, err
	}
	return s.store.UpdateEvent(ctx, id, event)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteEvent(ctx, id)
}
