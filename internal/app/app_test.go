package app

import (
	"context"
	"testing"

	"danishdeck/internal/config"
	"danishdeck/internal/domain"
	"danishdeck/internal/storage/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWithStore_WiresServices(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{WeeklyGoal: 2, SessionRetentionDays: 30}

	a := NewWithStore(cfg, memory.New(), zap.NewNop())
	defer a.Close()

	user, err := a.Auth.Signup(ctx, "chat-1", "Learner@Example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "learner@example.com", user.Email)

	_, err = a.Phrases.Add(ctx, user.ID, domain.PhraseInput{DanishText: "hej", MeaningText: "hello"})
	require.NoError(t, err)

	d, err := a.Practice.Dashboard(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Total)
	assert.Equal(t, 2, d.WeeklyGoal)

	assert.NoError(t, a.Stats.CleanupOldData(ctx))

	// Without an API key the chat answers from fallback lines
	assert.NotEmpty(t, a.Chat.Reply(ctx, nil, nil, "Hej"))
}
