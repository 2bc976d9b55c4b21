package service

import (
	"context"
	"fmt"
	"time"

	"danishdeck/internal/domain"
	"danishdeck/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultWeeklyGoal is the number of sessions per week a learner aims for
const DefaultWeeklyGoal = 3

const (
	statsWindow   = 7 * 24 * time.Hour
	recentPhrases = 5
)

// PracticeService records practice runs and derives progress statistics
type PracticeService struct {
	sessionRepo repository.SessionRepository
	phraseRepo  repository.PhraseRepository
	events      *EventService
	logger      *zap.Logger
	weeklyGoal  int
	now         func() time.Time
}

// NewPracticeService creates a new practice service
func NewPracticeService(
	sessionRepo repository.SessionRepository,
	phraseRepo repository.PhraseRepository,
	events *EventService,
	weeklyGoal int,
	logger *zap.Logger,
) *PracticeService {
	if weeklyGoal <= 0 {
		weeklyGoal = DefaultWeeklyGoal
	}
	return &PracticeService{
		sessionRepo: sessionRepo,
		phraseRepo:  phraseRepo,
		events:      events,
		logger:      logger,
		weeklyGoal:  weeklyGoal,
		now:         time.Now,
	}
}

// AddSession records one completed practice run
func (s *PracticeService) AddSession(ctx context.Context, userID string, mode domain.Mode, reviewed, correct, incorrect int) (*domain.PracticeSession, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	if !mode.Valid() {
		return nil, ErrInvalidMode
	}
	if reviewed < 0 || correct < 0 || incorrect < 0 {
		return nil, ErrInvalidCount
	}

	session := domain.PracticeSession{
		ID:                 uuid.NewString(),
		UserID:             userID,
		Mode:               mode,
		ItemsReviewedCount: reviewed,
		CorrectCount:       correct,
		IncorrectCount:     incorrect,
		CreatedAt:          s.now().UTC(),
	}

	if err := s.sessionRepo.AddSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.events.trackQuietly(ctx, userID, domain.EventPracticeCompleted, map[string]interface{}{
		"mode": string(mode),
	})
	s.logger.Info("Practice session recorded",
		zap.String("user_id", userID),
		zap.String("mode", string(mode)),
		zap.Int("reviewed", reviewed),
		zap.Int("correct", correct),
	)
	return &session, nil
}

// Sessions returns the user's session history; empty without a user
func (s *PracticeService) Sessions(ctx context.Context, userID string) ([]domain.PracticeSession, error) {
	if userID == "" {
		return []domain.PracticeSession{}, nil
	}
	return s.sessionRepo.ListSessions(ctx, userID)
}

// WeekStats counts the sessions created within the trailing seven days
func (s *PracticeService) WeekStats(ctx context.Context, userID string) (int, error) {
	sessions, err := s.Sessions(ctx, userID)
	if err != nil {
		return 0, err
	}
	return countSince(sessions, s.now().Add(-statsWindow)), nil
}

func countSince(sessions []domain.PracticeSession, since time.Time) int {
	count := 0
	for _, session := range sessions {
		if session.CreatedAt.After(since) {
			count++
		}
	}
	return count
}

// Dashboard aggregates the learner's progress for the home view
func (s *PracticeService) Dashboard(ctx context.Context, userID string) (*domain.Dashboard, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	phrases, err := s.phraseRepo.ListPhrases(ctx, userID)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessionRepo.ListSessions(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	d := &domain.Dashboard{
		Total:        len(phrases),
		WeekSessions: countSince(sessions, now.Add(-statsWindow)),
		WeeklyGoal:   s.weeklyGoal,
		Recent:       []domain.Phrase{},
		Activity:     domain.LastDays(sessions, now, 7),
	}
	for _, p := range phrases {
		switch p.Status {
		case domain.StatusKnown:
			d.Known++
		default:
			d.Learning++
		}
	}
	d.GoalReached = d.WeekSessions >= d.WeeklyGoal

	for i := len(phrases) - 1; i >= 0 && len(d.Recent) < recentPhrases; i-- {
		d.Recent = append(d.Recent, phrases[i])
	}
	return d, nil
}
