package scheduler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockCleaner struct {
	mock.Mock
}

func (m *mockCleaner) CleanupOldData(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestScheduler_RunCleanup(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "success"},
		{name: "cleanup error is swallowed", err: fmt.Errorf("db error")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleaner := new(mockCleaner)
			cleaner.On("CleanupOldData", mock.Anything).Return(tt.err)

			s := New(cleaner, zap.NewNop())
			s.runCleanup()

			cleaner.AssertExpectations(t)
		})
	}
}

func TestScheduler_StartSchedulesDailyJob(t *testing.T) {
	cleaner := new(mockCleaner)
	s := New(cleaner, zap.NewNop())

	require.NoError(t, s.Start("03:00"))
	defer s.Stop()

	next := s.NextRun().UTC()
	assert.Equal(t, 3, next.Hour())
	assert.Equal(t, 0, next.Minute())
	assert.True(t, next.After(time.Now()))
	assert.WithinDuration(t, time.Now(), next, 24*time.Hour+time.Minute)
}

func TestScheduler_StartRejectsBadTime(t *testing.T) {
	s := New(new(mockCleaner), zap.NewNop())

	assert.Error(t, s.Start("25:99"))
}
