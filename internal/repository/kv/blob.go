package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"danishdeck/internal/repository"
	"danishdeck/internal/storage"
)

// maxAttempts bounds the read-modify-write retries on revision conflicts
const maxAttempts = 5

// Storage keys
const (
	keyUsers       = "users"
	keyEvents      = "events"
	keyCurrentUser = "currentUser"
)

func phrasesKey(userID string) string {
	return "phrases_" + userID
}

func sessionsKey(userID string) string {
	return "sessions_" + userID
}

func currentUserKey(scope string) string {
	if scope == "" {
		return keyCurrentUser
	}
	return keyCurrentUser + "_" + scope
}

// load decodes the JSON blob under key into out and returns its revision.
// A missing key leaves out untouched and reports revision 0.
func load(ctx context.Context, store storage.KV, key string, out interface{}) (int64, error) {
	entry, err := store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	if err := json.Unmarshal(entry.Value, out); err != nil {
		return 0, fmt.Errorf("decode %q: %w", key, err)
	}
	return entry.Revision, nil
}

func save(ctx context.Context, store storage.KV, key string, revision int64, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	_, err = store.Put(ctx, key, data, revision)
	return err
}

// update runs a compare-and-swap loop over the blob under key.
// fn mutates the decoded value and reports whether it changed anything;
// unchanged values are not written back.
func update[T any](ctx context.Context, store storage.KV, key string, fn func(v *T) (bool, error)) error {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		var v T
		rev, err := load(ctx, store, key, &v)
		if err != nil {
			return err
		}

		changed, err := fn(&v)
		if err != nil || !changed {
			return err
		}

		err = save(ctx, store, key, rev, v)
		if errors.Is(err, storage.ErrConflict) {
			continue
		}
		return err
	}
	return fmt.Errorf("%s: %w", key, repository.ErrConcurrentUpdate)
}
