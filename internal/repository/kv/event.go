package kv

import (
	"context"

	"danishdeck/internal/domain"
	"danishdeck/internal/storage"
)

// EventRepo implements repository.EventRepository on the global "events" log
type EventRepo struct {
	store storage.KV
}

// NewEventRepo creates a new event repository
func NewEventRepo(store storage.KV) *EventRepo {
	return &EventRepo{store: store}
}

// AppendEvent adds event and keeps only the newest limit entries
func (r *EventRepo) AppendEvent(ctx context.Context, event domain.Event, limit int) error {
	return update(ctx, r.store, keyEvents, func(events *[]domain.Event) (bool, error) {
		*events = append(*events, event)
		if limit > 0 && len(*events) > limit {
			*events = append([]domain.Event(nil), (*events)[len(*events)-limit:]...)
		}
		return true, nil
	})
}

// ListEvents returns the event log oldest first
func (r *EventRepo) ListEvents(ctx context.Context) ([]domain.Event, error) {
	events := []domain.Event{}
	if _, err := load(ctx, r.store, keyEvents, &events); err != nil {
		return nil, err
	}
	return events, nil
}
