package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"danishdeck/internal/domain"
	"danishdeck/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStatsService_CleanupOldData(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	cutoff := now.AddDate(0, 0, -30)
	users := []domain.User{{ID: "u1"}, {ID: "u2"}}

	tests := []struct {
		name          string
		listError     error
		deleteError   error
		expectedError bool
	}{
		{
			name: "successful cleanup",
		},
		{
			name:          "list users error",
			listError:     fmt.Errorf("db error"),
			expectedError: true,
		},
		{
			name:          "delete error",
			deleteError:   fmt.Errorf("db error"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(testutil.MockUserRepository)
			sessionRepo := new(testutil.MockSessionRepository)

			if tt.listError != nil {
				userRepo.On("ListUsers", mock.Anything).Return(nil, tt.listError)
			} else {
				userRepo.On("ListUsers", mock.Anything).Return(users, nil)
				sessionRepo.On("DeleteSessionsBefore", mock.Anything, "u1", cutoff).Return(2, tt.deleteError)
				if tt.deleteError == nil {
					sessionRepo.On("DeleteSessionsBefore", mock.Anything, "u2", cutoff).Return(0, nil)
				}
			}

			service := NewStatsService(userRepo, sessionRepo, 30, testutil.NewTestLogger())
			service.now = func() time.Time { return now }

			err := service.CleanupOldData(context.Background())

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			userRepo.AssertExpectations(t)
			sessionRepo.AssertExpectations(t)
		})
	}
}

func TestStatsService_RetentionDisabled(t *testing.T) {
	userRepo := new(testutil.MockUserRepository)
	sessionRepo := new(testutil.MockSessionRepository)

	service := NewStatsService(userRepo, sessionRepo, 0, testutil.NewTestLogger())

	assert.NoError(t, service.CleanupOldData(context.Background()))
	userRepo.AssertNotCalled(t, "ListUsers", mock.Anything)
}

func TestStatsService_PrunesOnlyExpiredSessions(t *testing.T) {
	ctx := context.Background()
	s := newTestServices()
	start := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	s.at(start)
	userID := signedUpUser(t, s)

	_, err := s.practice.AddSession(ctx, userID, domain.ModeQuiz, 3, 2, 1)
	require.NoError(t, err)

	s.at(start.AddDate(1, 1, 0))
	_, err = s.practice.AddSession(ctx, userID, domain.ModeFlashcard, 3, 3, 0)
	require.NoError(t, err)

	require.NoError(t, s.stats.CleanupOldData(ctx))

	sessions, err := s.practice.Sessions(ctx, userID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, domain.ModeFlashcard, sessions[0].Mode)
}
