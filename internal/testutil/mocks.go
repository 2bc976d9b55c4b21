package testutil

import (
	"context"
	"time"

	"danishdeck/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockCurrentUserRepository is a mock for CurrentUserRepository
type MockCurrentUserRepository struct {
	mock.Mock
}

func (m *MockCurrentUserRepository) GetCurrentUser(ctx context.Context, scope string) (*domain.User, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockCurrentUserRepository) SetCurrentUser(ctx context.Context, scope string, user domain.User) error {
	args := m.Called(ctx, scope, user)
	return args.Error(0)
}

func (m *MockCurrentUserRepository) ClearCurrentUser(ctx context.Context, scope string) error {
	args := m.Called(ctx, scope)
	return args.Error(0)
}

// MockSessionRepository is a mock for SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) ListSessions(ctx context.Context, userID string) ([]domain.PracticeSession, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PracticeSession), args.Error(1)
}

func (m *MockSessionRepository) AddSession(ctx context.Context, session domain.PracticeSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) DeleteSessionsBefore(ctx context.Context, userID string, cutoff time.Time) (int, error) {
	args := m.Called(ctx, userID, cutoff)
	return args.Int(0), args.Error(1)
}

// MockEventRepository is a mock for EventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) AppendEvent(ctx context.Context, event domain.Event, limit int) error {
	args := m.Called(ctx, event, limit)
	return args.Error(0)
}

func (m *MockEventRepository) ListEvents(ctx context.Context) ([]domain.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Event), args.Error(1)
}

// MockChatClient is a mock for the chat completion backend
type MockChatClient struct {
	mock.Mock
}

func (m *MockChatClient) Complete(ctx context.Context, system string, messages []domain.ChatMessage) (string, error) {
	args := m.Called(ctx, system, messages)
	return args.String(0), args.Error(1)
}
