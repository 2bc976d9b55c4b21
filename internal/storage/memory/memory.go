package memory

import (
	"context"
	"sync"
	"time"

	"danishdeck/internal/storage"
)

// Store implements storage.KV in process memory
type Store struct {
	mu         sync.Mutex
	entries    map[string]storage.Entry
	tombstones map[string]int64 // last revision of deleted keys
	now        func() time.Time
}

// New creates an empty in-memory store
func New() *Store {
	return &Store{
		entries:    make(map[string]storage.Entry),
		tombstones: make(map[string]int64),
		now:        time.Now,
	}
}

// Get returns a copy of the entry stored under key
func (s *Store) Get(ctx context.Context, key string) (*storage.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	e.Value = append([]byte(nil), e.Value...)
	return &e, nil
}

// Put stores value under key if revision matches the stored one
func (s *Store) Put(ctx context.Context, key string, value []byte, revision int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.entries[key]
	switch {
	case revision == 0 && exists:
		return 0, storage.ErrConflict
	case revision != 0 && (!exists || current.Revision != revision):
		return 0, storage.ErrConflict
	}

	next := revision + 1
	if revision == 0 {
		next = s.tombstones[key] + 1
		delete(s.tombstones, key)
	}
	s.entries[key] = storage.Entry{
		Key:       key,
		Value:     append([]byte(nil), value...),
		Revision:  next,
		UpdatedAt: s.now().UTC(),
	}
	return next, nil
}

// Delete removes key; deleting a missing key is not an error
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		s.tombstones[key] = e.Revision + 1
		delete(s.entries, key)
	}
	return nil
}
