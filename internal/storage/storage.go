package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a key has no stored value
	ErrNotFound = errors.New("key not found")
	// ErrConflict is returned when a write was based on a stale revision
	ErrConflict = errors.New("revision conflict")
)

// Entry is a stored value with its revision counter
type Entry struct {
	Key       string
	Value     []byte
	Revision  int64
	UpdatedAt time.Time
}

// KV is a flat key-value store with optimistic concurrency.
//
// Put with revision 0 creates the key and fails with ErrConflict if it
// already exists. Put with a positive revision replaces the value only if
// the stored revision still matches, and fails with ErrConflict otherwise.
// Every successful Put returns the new revision. Revisions of a key only
// grow, including across Delete and re-creation.
type KV interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Put(ctx context.Context, key string, value []byte, revision int64) (int64, error)
	Delete(ctx context.Context, key string) error
}
