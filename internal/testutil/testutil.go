package testutil

import (
	"time"

	"danishdeck/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a test user
func NewTestUser(id, email string) *domain.User {
	return &domain.User{
		ID:        id,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
}

// NewTestPhrase creates a test phrase in the Learning state
func NewTestPhrase(id, userID, danish, meaning string) domain.Phrase {
	return domain.Phrase{
		ID:             id,
		UserID:         userID,
		TargetLanguage: domain.TargetLanguage,
		DanishText:     danish,
		MeaningText:    meaning,
		Category:       domain.DefaultCategory,
		Status:         domain.StatusLearning,
		CreatedAt:      time.Now().UTC(),
	}
}

// NewTestSession creates a practice session stamped at createdAt
func NewTestSession(id, userID string, mode domain.Mode, createdAt time.Time) domain.PracticeSession {
	return domain.PracticeSession{
		ID:                 id,
		UserID:             userID,
		Mode:               mode,
		ItemsReviewedCount: 5,
		CorrectCount:       4,
		IncorrectCount:     1,
		CreatedAt:          createdAt,
	}
}
