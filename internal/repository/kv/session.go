package kv

import (
	"context"
	"time"

	"danishdeck/internal/domain"
	"danishdeck/internal/storage"
)

// SessionRepo implements repository.SessionRepository on "sessions_<userId>" blobs
type SessionRepo struct {
	store storage.KV
}

// NewSessionRepo creates a new practice session repository
func NewSessionRepo(store storage.KV) *SessionRepo {
	return &SessionRepo{store: store}
}

// ListSessions returns the user's session history in insertion order
func (r *SessionRepo) ListSessions(ctx context.Context, userID string) ([]domain.PracticeSession, error) {
	sessions := []domain.PracticeSession{}
	if _, err := load(ctx, r.store, sessionsKey(userID), &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// AddSession appends session to its user's history
func (r *SessionRepo) AddSession(ctx context.Context, session domain.PracticeSession) error {
	return update(ctx, r.store, sessionsKey(session.UserID), func(list *[]domain.PracticeSession) (bool, error) {
		*list = append(*list, session)
		return true, nil
	})
}

// DeleteSessionsBefore drops sessions created before cutoff and returns how many were removed
func (r *SessionRepo) DeleteSessionsBefore(ctx context.Context, userID string, cutoff time.Time) (int, error) {
	removed := 0
	err := update(ctx, r.store, sessionsKey(userID), func(list *[]domain.PracticeSession) (bool, error) {
		kept := (*list)[:0]
		removed = 0
		for _, s := range *list {
			if s.CreatedAt.Before(cutoff) {
				removed++
				continue
			}
			kept = append(kept, s)
		}
		*list = kept
		return removed > 0, nil
	})
	return removed, err
}
