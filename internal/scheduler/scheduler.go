package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// DefaultCleanupTime is the UTC wall-clock time of the daily cleanup run
const DefaultCleanupTime = "03:00"

// Cleaner prunes expired data
type Cleaner interface {
	CleanupOldData(ctx context.Context) error
}

// Scheduler runs periodic maintenance jobs
type Scheduler struct {
	scheduler *gocron.Scheduler
	cleaner   Cleaner
	logger    *zap.Logger
	timeout   time.Duration
}

// New creates a new scheduler instance
func New(cleaner Cleaner, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		cleaner:   cleaner,
		logger:    logger,
		timeout:   5 * time.Minute,
	}
}

// Start registers the daily cleanup job at the given "HH:MM" time and starts
// the scheduler without blocking.
func (s *Scheduler) Start(at string) error {
	if at == "" {
		at = DefaultCleanupTime
	}

	if _, err := s.scheduler.Every(1).Day().At(at).Do(s.runCleanup); err != nil {
		return fmt.Errorf("failed to schedule cleanup: %w", err)
	}

	s.scheduler.StartAsync()
	s.logger.Info("Scheduler started", zap.String("cleanup_at", at))
	return nil
}

// Stop terminates all scheduled jobs
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	s.logger.Info("Scheduler stopped")
}

// NextRun returns when the cleanup job fires next
func (s *Scheduler) NextRun() time.Time {
	_, next := s.scheduler.NextRun()
	return next
}

func (s *Scheduler) runCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.cleaner.CleanupOldData(ctx); err != nil {
		s.logger.Error("Scheduled cleanup failed", zap.Error(err))
	}
}
