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

func TestEventService_Track(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	eventRepo := new(testutil.MockEventRepository)
	eventRepo.On("AppendEvent", mock.Anything, domain.Event{
		Name:      "chat_started",
		UserID:    "u1",
		Data:      map[string]interface{}{},
		Timestamp: now,
	}, 1000).Return(nil)

	service := NewEventService(eventRepo, testutil.NewTestLogger())
	service.now = func() time.Time { return now }

	err := service.Track(context.Background(), "u1", "chat_started", nil)

	assert.NoError(t, err)
	eventRepo.AssertExpectations(t)
}

func TestEventService_LogNeverExceedsLimit(t *testing.T) {
	ctx := context.Background()
	s := newTestServices()

	for i := 0; i <= domain.EventLogLimit; i++ {
		require.NoError(t, s.events.Track(ctx, "u1", fmt.Sprintf("event_%d", i), nil))
	}

	all, err := s.events.Recent(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, domain.EventLogLimit)
	assert.Equal(t, "event_1000", all[0].Name)
	assert.Equal(t, "event_1", all[len(all)-1].Name)
}

func TestEventService_TrackFailureDoesNotBlockPhrases(t *testing.T) {
	eventRepo := new(testutil.MockEventRepository)
	eventRepo.On("AppendEvent", mock.Anything, mock.Anything, 1000).Return(fmt.Errorf("db error"))
	s := newTestServices()
	s.phrases.events = NewEventService(eventRepo, testutil.NewTestLogger())

	phrase, err := s.phrases.Add(context.Background(), "u1", domain.PhraseInput{DanishText: "hej", MeaningText: "hello"})

	require.NoError(t, err)
	assert.NotNil(t, phrase)
	eventRepo.AssertExpectations(t)
}

func TestEventService_Recent(t *testing.T) {
	eventRepo := new(testutil.MockEventRepository)
	eventRepo.On("ListEvents", mock.Anything).Return([]domain.Event{
		{Name: "a"}, {Name: "b"}, {Name: "c"},
	}, nil)

	service := NewEventService(eventRepo, testutil.NewTestLogger())

	recent, err := service.Recent(context.Background(), "", 2)

	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "c", recent[0].Name)
	assert.Equal(t, "b", recent[1].Name)
}

func TestEventService_RecentForUser(t *testing.T) {
	eventRepo := new(testutil.MockEventRepository)
	eventRepo.On("ListEvents", mock.Anything).Return([]domain.Event{
		{Name: "a", UserID: "u1"},
		{Name: "b", UserID: "u2"},
		{Name: "c", UserID: "u1"},
		{Name: "d", UserID: "u2"},
	}, nil)

	service := NewEventService(eventRepo, testutil.NewTestLogger())

	tests := []struct {
		name     string
		userID   string
		n        int
		expected []string
	}{
		{name: "one user", userID: "u1", n: 10, expected: []string{"c", "a"}},
		{name: "one user limited", userID: "u2", n: 1, expected: []string{"d"}},
		{name: "unknown user", userID: "u3", n: 5, expected: []string{}},
		{name: "everyone", userID: "", n: 0, expected: []string{"d", "c", "b", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recent, err := service.Recent(context.Background(), tt.userID, tt.n)
			require.NoError(t, err)

			names := []string{}
			for _, e := range recent {
				names = append(names, e.Name)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}
