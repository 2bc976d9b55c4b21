package kv

import (
	"context"
	"errors"

	"danishdeck/internal/domain"
	"danishdeck/internal/storage"
)

// CurrentUserRepo implements repository.CurrentUserRepository.
// The default scope uses the "currentUser" key, other scopes get a suffix.
type CurrentUserRepo struct {
	store storage.KV
}

// NewCurrentUserRepo creates a new current user repository
func NewCurrentUserRepo(store storage.KV) *CurrentUserRepo {
	return &CurrentUserRepo{store: store}
}

// GetCurrentUser returns the active user of scope, or nil
func (r *CurrentUserRepo) GetCurrentUser(ctx context.Context, scope string) (*domain.User, error) {
	var user *domain.User
	if _, err := load(ctx, r.store, currentUserKey(scope), &user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetCurrentUser makes user the active user of scope
func (r *CurrentUserRepo) SetCurrentUser(ctx context.Context, scope string, user domain.User) error {
	return update(ctx, r.store, currentUserKey(scope), func(current **domain.User) (bool, error) {
		*current = &user
		return true, nil
	})
}

// ClearCurrentUser removes the active user of scope
func (r *CurrentUserRepo) ClearCurrentUser(ctx context.Context, scope string) error {
	err := r.store.Delete(ctx, currentUserKey(scope))
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	return err
}
