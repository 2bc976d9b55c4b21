package repository

import (
	"context"
	"errors"
	"time"

	"danishdeck/internal/domain"
)

var (
	// ErrDuplicateEmail is returned when an account with the email already exists
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrConcurrentUpdate is returned when a write keeps losing revision races
	ErrConcurrentUpdate = errors.New("too many concurrent updates")
)

// UserRepository defines account data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// CurrentUserRepository stores the active user of each session scope
type CurrentUserRepository interface {
	GetCurrentUser(ctx context.Context, scope string) (*domain.User, error)
	SetCurrentUser(ctx context.Context, scope string, user domain.User) error
	ClearCurrentUser(ctx context.Context, scope string) error
}

// PhraseRepository defines phrase data operations
type PhraseRepository interface {
	ListPhrases(ctx context.Context, userID string) ([]domain.Phrase, error)
	AddPhrases(ctx context.Context, userID string, phrases ...domain.Phrase) error
	UpdatePhrase(ctx context.Context, userID, phraseID string, fn func(p *domain.Phrase) error) (bool, error)
	DeletePhrase(ctx context.Context, userID, phraseID string) (bool, error)
}

// SessionRepository defines practice session data operations
type SessionRepository interface {
	ListSessions(ctx context.Context, userID string) ([]domain.PracticeSession, error)
	AddSession(ctx context.Context, session domain.PracticeSession) error
	DeleteSessionsBefore(ctx context.Context, userID string, cutoff time.Time) (int, error)
}

// EventRepository defines analytics event log operations
type EventRepository interface {
	AppendEvent(ctx context.Context, event domain.Event, limit int) error
	ListEvents(ctx context.Context) ([]domain.Event, error)
}
