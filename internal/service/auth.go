package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"danishdeck/internal/domain"
	"danishdeck/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles accounts and the active user of each session scope
type AuthService struct {
	userRepo    repository.UserRepository
	currentRepo repository.CurrentUserRepository
	logger      *zap.Logger
	now         func() time.Time
	hashCost    int
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, currentRepo repository.CurrentUserRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		currentRepo: currentRepo,
		logger:      logger,
		now:         time.Now,
		hashCost:    bcrypt.DefaultCost,
	}
}

// NormalizeEmail trims and lower-cases an email and checks its shape
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 || strings.ContainsAny(email, " \t\r\n") {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// Register creates an account without logging it in
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, fmt.Errorf("password: %w", ErrEmptyField)
	}

	existing, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateAccount
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrDuplicateAccount
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID))
	return &user, nil
}

// Signup registers an account and logs it in within scope
func (s *AuthService) Signup(ctx context.Context, scope, email, password string) (*domain.User, error) {
	if _, err := s.Register(ctx, email, password); err != nil {
		return nil, err
	}
	return s.Login(ctx, scope, email, password)
}

// Authenticate verifies credentials without changing any session
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Login verifies credentials and makes the user current in scope
func (s *AuthService) Login(ctx context.Context, scope, email, password string) (*domain.User, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := s.currentRepo.SetCurrentUser(ctx, scope, *user); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID), zap.String("scope", scope))
	return user, nil
}

// Logout clears the active user of scope
func (s *AuthService) Logout(ctx context.Context, scope string) error {
	if err := s.currentRepo.ClearCurrentUser(ctx, scope); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// CurrentUser returns the active user of scope, or nil.
// Storage failures are logged and reported as no active user.
func (s *AuthService) CurrentUser(ctx context.Context, scope string) *domain.User {
	user, err := s.currentRepo.GetCurrentUser(ctx, scope)
	if err != nil {
		s.logger.Error("Failed to load current user", zap.String("scope", scope), zap.Error(err))
		return nil
	}
	return user
}
