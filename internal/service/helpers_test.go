package service

import (
	"time"

	"danishdeck/internal/repository/kv"
	"danishdeck/internal/storage/memory"
	"danishdeck/internal/testutil"

	"golang.org/x/crypto/bcrypt"
)

type testServices struct {
	store    *memory.Store
	auth     *AuthService
	events   *EventService
	phrases  *PhraseService
	practice *PracticeService
	stats    *StatsService
}

// newTestServices wires every service over one in-memory store
func newTestServices() *testServices {
	store := memory.New()
	logger := testutil.NewTestLogger()

	userRepo := kv.NewUserRepo(store)
	phraseRepo := kv.NewPhraseRepo(store)
	sessionRepo := kv.NewSessionRepo(store)

	auth := NewAuthService(userRepo, kv.NewCurrentUserRepo(store), logger)
	auth.hashCost = bcrypt.MinCost
	events := NewEventService(kv.NewEventRepo(store), logger)

	return &testServices{
		store:    store,
		auth:     auth,
		events:   events,
		phrases:  NewPhraseService(phraseRepo, events, logger),
		practice: NewPracticeService(sessionRepo, phraseRepo, events, DefaultWeeklyGoal, logger),
		stats:    NewStatsService(userRepo, sessionRepo, 365, logger),
	}
}

// at pins every service clock to t
func (s *testServices) at(t time.Time) {
	now := func() time.Time { return t }
	s.auth.now = now
	s.events.now = now
	s.phrases.now = now
	s.practice.now = now
	s.stats.now = now
}
