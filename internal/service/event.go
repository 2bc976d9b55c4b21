package service

import (
	"context"
	"time"

	"danishdeck/internal/domain"
	"danishdeck/internal/repository"

	"go.uber.org/zap"
)

// EventService records lightweight analytics events
type EventService struct {
	eventRepo repository.EventRepository
	logger    *zap.Logger
	now       func() time.Time
}

// NewEventService creates a new event service
func NewEventService(eventRepo repository.EventRepository, logger *zap.Logger) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// Track appends an event to the global log, keeping the newest entries only
func (s *EventService) Track(ctx context.Context, userID, name string, data map[string]interface{}) error {
	if data == nil {
		data = map[string]interface{}{}
	}
	event := domain.Event{
		Name:      name,
		UserID:    userID,
		Data:      data,
		Timestamp: s.now().UTC(),
	}
	return s.eventRepo.AppendEvent(ctx, event, domain.EventLogLimit)
}

// trackQuietly records an event on behalf of another operation; failures are only logged
func (s *EventService) trackQuietly(ctx context.Context, userID, name string, data map[string]interface{}) {
	if err := s.Track(ctx, userID, name, data); err != nil {
		s.logger.Warn("Failed to track event",
			zap.String("event", name),
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
}

// Recent returns up to n newest events of userID, newest first.
// An empty userID matches every user and n <= 0 returns all matches.
func (s *EventService) Recent(ctx context.Context, userID string, n int) ([]domain.Event, error) {
	events, err := s.eventRepo.ListEvents(ctx)
	if err != nil {
		return nil, err
	}

	recent := []domain.Event{}
	for i := len(events) - 1; i >= 0; i-- {
		if userID != "" && events[i].UserID != userID {
			continue
		}
		recent = append(recent, events[i])
		if n > 0 && len(recent) == n {
			break
		}
	}
	return recent, nil
}
