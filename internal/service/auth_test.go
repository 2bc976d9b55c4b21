package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"danishdeck/internal/domain"
	"danishdeck/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expected      string
		expectedError bool
	}{
		{name: "plain", input: "a@x.com", expected: "a@x.com"},
		{name: "trim and lower", input: "  Anna@Example.DK ", expected: "anna@example.dk"},
		{name: "empty", input: "", expectedError: true},
		{name: "no at sign", input: "anna.example.dk", expectedError: true},
		{name: "nothing before at", input: "@x.com", expectedError: true},
		{name: "nothing after at", input: "anna@", expectedError: true},
		{name: "inner space", input: "an na@x.com", expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NormalizeEmail(tt.input)

			if tt.expectedError {
				assert.ErrorIs(t, err, ErrInvalidEmail)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name        string
		email       string
		password    string
		existing    *domain.User
		lookupError error
		createError error
		expectedErr error
		expectError bool
		expectSave  bool
	}{
		{
			name:       "new account",
			email:      "a@x.com",
			password:   "p1",
			expectSave: true,
		},
		{
			name:        "invalid email",
			email:       "nope",
			password:    "p1",
			expectedErr: ErrInvalidEmail,
			expectError: true,
		},
		{
			name:        "empty password",
			email:       "a@x.com",
			password:    "",
			expectedErr: ErrEmptyField,
			expectError: true,
		},
		{
			name:        "email taken",
			email:       "a@x.com",
			password:    "p1",
			existing:    testutil.NewTestUser("u1", "a@x.com"),
			expectedErr: ErrDuplicateAccount,
			expectError: true,
		},
		{
			name:        "lookup fails",
			email:       "a@x.com",
			password:    "p1",
			lookupError: fmt.Errorf("db error"),
			expectError: true,
		},
		{
			name:        "save fails",
			email:       "a@x.com",
			password:    "p1",
			createError: fmt.Errorf("db error"),
			expectError: true,
			expectSave:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(testutil.MockUserRepository)
			currentRepo := new(testutil.MockCurrentUserRepository)

			if tt.expectedErr != ErrInvalidEmail && tt.expectedErr != ErrEmptyField {
				userRepo.On("GetUserByEmail", mock.Anything, "a@x.com").Return(tt.existing, tt.lookupError)
			}
			if tt.expectSave {
				userRepo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
					return u.Email == "a@x.com" && u.ID != "" && u.PasswordHash != tt.password
				})).Return(tt.createError)
			}

			service := NewAuthService(userRepo, currentRepo, testutil.NewTestLogger())
			service.hashCost = bcrypt.MinCost

			user, err := service.Register(context.Background(), tt.email, tt.password)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, user)
				if tt.expectedErr != nil {
					assert.ErrorIs(t, err, tt.expectedErr)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, "a@x.com", user.Email)
			}

			userRepo.AssertExpectations(t)
			currentRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_SignupThenLogin(t *testing.T) {
	ctx := context.Background()
	s := newTestServices()

	signedUp, err := s.auth.Signup(ctx, "", "a@x.com", "p1")
	require.NoError(t, err)

	current := s.auth.CurrentUser(ctx, "")
	require.NotNil(t, current)
	assert.Equal(t, signedUp.ID, current.ID)

	require.NoError(t, s.auth.Logout(ctx, ""))
	assert.Nil(t, s.auth.CurrentUser(ctx, ""))

	loggedIn, err := s.auth.Login(ctx, "", "a@x.com", "p1")
	require.NoError(t, err)
	assert.Equal(t, signedUp.ID, loggedIn.ID)
}

func TestAuthService_DistinctSignups(t *testing.T) {
	ctx := context.Background()
	s := newTestServices()

	ids := map[string]bool{}
	for i := 0; i < 5; i++ {
		email := fmt.Sprintf("user%d@x.com", i)
		user, err := s.auth.Signup(ctx, "", email, "pw")
		require.NoError(t, err)

		again, err := s.auth.Login(ctx, "", email, "pw")
		require.NoError(t, err)
		assert.Equal(t, user.ID, again.ID)

		ids[user.ID] = true
	}
	assert.Len(t, ids, 5)
}

func TestAuthService_SignupDuplicateKeepsExistingAccount(t *testing.T) {
	ctx := context.Background()
	s := newTestServices()

	original, err := s.auth.Signup(ctx, "", "a@x.com", "p1")
	require.NoError(t, err)

	_, err = s.auth.Signup(ctx, "", "A@x.com", "other")
	assert.ErrorIs(t, err, ErrDuplicateAccount)

	_, err = s.auth.Login(ctx, "", "a@x.com", "other")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	user, err := s.auth.Login(ctx, "", "a@x.com", "p1")
	require.NoError(t, err)
	assert.Equal(t, original.ID, user.ID)
	assert.Equal(t, original.PasswordHash, user.PasswordHash)
}

func TestAuthService_PasswordIsNotStoredInPlaintext(t *testing.T) {
	ctx := context.Background()
	s := newTestServices()

	_, err := s.auth.Signup(ctx, "", "a@x.com", "correct-horse")
	require.NoError(t, err)

	entry, err := s.store.Get(ctx, "users")
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(entry.Value), "correct-horse"))
	assert.Contains(t, string(entry.Value), "password_hash")
}

func TestAuthService_LoginInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	s := newTestServices()

	_, err := s.auth.Register(ctx, "a@x.com", "p1")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "unknown email", email: "b@x.com", password: "p1"},
		{name: "wrong password", email: "a@x.com", password: "p2"},
		{name: "case sensitive password", email: "a@x.com", password: "P1"},
		{name: "empty password", email: "a@x.com", password: ""},
		{name: "malformed email", email: "a", password: "p1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := s.auth.Login(ctx, "", tt.email, tt.password)

			assert.ErrorIs(t, err, ErrInvalidCredentials)
			assert.Nil(t, user)
			assert.Nil(t, s.auth.CurrentUser(ctx, ""))
		})
	}
}

func TestAuthService_ScopesAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := newTestServices()

	anna, err := s.auth.Signup(ctx, "chat-1", "anna@x.com", "p1")
	require.NoError(t, err)
	bo, err := s.auth.Signup(ctx, "chat-2", "bo@x.com", "p2")
	require.NoError(t, err)

	assert.Equal(t, anna.ID, s.auth.CurrentUser(ctx, "chat-1").ID)
	assert.Equal(t, bo.ID, s.auth.CurrentUser(ctx, "chat-2").ID)
	assert.Nil(t, s.auth.CurrentUser(ctx, "chat-3"))

	require.NoError(t, s.auth.Logout(ctx, "chat-1"))
	assert.Nil(t, s.auth.CurrentUser(ctx, "chat-1"))
	assert.NotNil(t, s.auth.CurrentUser(ctx, "chat-2"))
}

func TestAuthService_LogoutIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestServices()

	assert.NoError(t, s.auth.Logout(ctx, ""))
	assert.NoError(t, s.auth.Logout(ctx, ""))
}

func TestAuthService_CurrentUserStorageError(t *testing.T) {
	userRepo := new(testutil.MockUserRepository)
	currentRepo := new(testutil.MockCurrentUserRepository)
	currentRepo.On("GetCurrentUser", mock.Anything, "chat-1").Return(nil, fmt.Errorf("db error"))

	service := NewAuthService(userRepo, currentRepo, testutil.NewTestLogger())

	assert.Nil(t, service.CurrentUser(context.Background(), "chat-1"))
	currentRepo.AssertExpectations(t)
}

func TestAuthService_LoginPersistFailure(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("p1"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{ID: "u1", Email: "a@x.com", PasswordHash: string(hash)}

	userRepo := new(testutil.MockUserRepository)
	userRepo.On("GetUserByEmail", mock.Anything, "a@x.com").Return(user, nil)
	currentRepo := new(testutil.MockCurrentUserRepository)
	currentRepo.On("SetCurrentUser", mock.Anything, "", *user).Return(fmt.Errorf("db error"))

	service := NewAuthService(userRepo, currentRepo, testutil.NewTestLogger())

	result, err := service.Login(context.Background(), "", "a@x.com", "p1")

	assert.Error(t, err)
	assert.Nil(t, result)
	userRepo.AssertExpectations(t)
	currentRepo.AssertExpectations(t)
}
