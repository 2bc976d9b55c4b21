package service

import (
	"context"
	"time"

	"danishdeck/internal/repository"

	"go.uber.org/zap"
)

// StatsService handles retention of practice history
type StatsService struct {
	userRepo      repository.UserRepository
	sessionRepo   repository.SessionRepository
	retentionDays int
	logger        *zap.Logger
	now           func() time.Time
}

// NewStatsService creates a new stats service; retentionDays <= 0 keeps everything
func NewStatsService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, retentionDays int, logger *zap.Logger) *StatsService {
	return &StatsService{
		userRepo:      userRepo,
		sessionRepo:   sessionRepo,
		retentionDays: retentionDays,
		logger:        logger,
		now:           time.Now,
	}
}

// CleanupOldData removes practice sessions older than the retention window
func (s *StatsService) CleanupOldData(ctx context.Context) error {
	if s.retentionDays <= 0 {
		s.logger.Debug("Session retention disabled, skipping cleanup")
		return nil
	}

	s.logger.Info("Starting cleanup of old sessions", zap.Int("retention_days", s.retentionDays))

	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		s.logger.Error("Failed to list users for cleanup", zap.Error(err))
		return err
	}

	cutoff := s.now().AddDate(0, 0, -s.retentionDays)
	total := 0
	for _, u := range users {
		removed, err := s.sessionRepo.DeleteSessionsBefore(ctx, u.ID, cutoff)
		if err != nil {
			s.logger.Error("Failed to cleanup old sessions", zap.String("user_id", u.ID), zap.Error(err))
			return err
		}
		total += removed
	}

	s.logger.Info("Cleanup completed successfully", zap.Int("removed", total))
	return nil
}
