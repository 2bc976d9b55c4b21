package kv

import (
	"context"
	"sort"

	"danishdeck/internal/domain"
	"danishdeck/internal/repository"
	"danishdeck/internal/storage"
)

// UserRepo implements repository.UserRepository on the "users" mapping
type UserRepo struct {
	store storage.KV
}

// NewUserRepo creates a new user repository
func NewUserRepo(store storage.KV) *UserRepo {
	return &UserRepo{store: store}
}

// CreateUser adds user to the account mapping keyed by email
func (r *UserRepo) CreateUser(ctx context.Context, user domain.User) error {
	return update(ctx, r.store, keyUsers, func(users *map[string]domain.User) (bool, error) {
		if *users == nil {
			*users = make(map[string]domain.User)
		}
		if _, exists := (*users)[user.Email]; exists {
			return false, repository.ErrDuplicateEmail
		}
		(*users)[user.Email] = user
		return true, nil
	})
}

// GetUserByEmail returns the account for email, or nil if none exists
func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var users map[string]domain.User
	if _, err := load(ctx, r.store, keyUsers, &users); err != nil {
		return nil, err
	}

	user, ok := users[email]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

// ListUsers returns every account ordered by registration time
func (r *UserRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users map[string]domain.User
	if _, err := load(ctx, r.store, keyUsers, &users); err != nil {
		return nil, err
	}

	list := make([]domain.User, 0, len(users))
	for _, u := range users {
		list = append(list, u)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}
