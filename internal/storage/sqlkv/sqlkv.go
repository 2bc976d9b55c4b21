package sqlkv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"danishdeck/internal/storage"

	"github.com/jmoiron/sqlx"
)

// Store implements storage.KV on the kv_entries table.
// Queries are written with ? placeholders and rebound for the driver.
// Deleted keys stay behind as tombstones so a key's revision never goes
// back down when it is created again.
type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

// New creates a new SQL-backed key-value store
func New(db *sqlx.DB) *Store {
	return &Store{db: db, now: time.Now}
}

type entryRow struct {
	Key       string    `db:"entry_key"`
	Value     string    `db:"value"`
	Revision  int64     `db:"revision"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Get returns the entry stored under key
func (s *Store) Get(ctx context.Context, key string) (*storage.Entry, error) {
	query := s.db.Rebind(`
		SELECT entry_key, value, revision, updated_at
		FROM kv_entries
		WHERE entry_key = ? AND NOT deleted
	`)

	var row entryRow
	err := s.db.GetContext(ctx, &row, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}

	return &storage.Entry{
		Key:       row.Key,
		Value:     []byte(row.Value),
		Revision:  row.Revision,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

// Put creates or replaces the value under key, guarded by revision
func (s *Store) Put(ctx context.Context, key string, value []byte, revision int64) (int64, error) {
	now := s.now().UTC()

	if revision == 0 {
		return s.create(ctx, key, value, now)
	}

	query := s.db.Rebind(`
		UPDATE kv_entries
		SET value = ?, revision = revision + 1, updated_at = ?
		WHERE entry_key = ? AND revision = ? AND NOT deleted
	`)
	res, err := s.db.ExecContext(ctx, query, string(value), now, key, revision)
	if err != nil {
		return 0, fmt.Errorf("put %q: %w", key, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("put %q: %w", key, err)
	}
	if affected == 0 {
		return 0, storage.ErrConflict
	}

	return revision + 1, nil
}

// create inserts key or revives its tombstone with the next revision
func (s *Store) create(ctx context.Context, key string, value []byte, now time.Time) (int64, error) {
	query := s.db.Rebind(`
		INSERT INTO kv_entries (entry_key, value, revision, updated_at)
		VALUES (?, ?, 1, ?)
		ON CONFLICT (entry_key) DO UPDATE
		SET value = excluded.value,
			revision = kv_entries.revision + 1,
			updated_at = excluded.updated_at,
			deleted = FALSE
		WHERE kv_entries.deleted
		RETURNING revision
	`)

	var next int64
	err := s.db.GetContext(ctx, &next, query, key, string(value), now)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, storage.ErrConflict
	}
	if err != nil {
		return 0, fmt.Errorf("put %q: %w", key, err)
	}
	return next, nil
}

// Delete marks key as deleted; deleting a missing key is not an error
func (s *Store) Delete(ctx context.Context, key string) error {
	query := s.db.Rebind(`
		UPDATE kv_entries
		SET value = '', deleted = TRUE, revision = revision + 1, updated_at = ?
		WHERE entry_key = ? AND NOT deleted
	`)
	if _, err := s.db.ExecContext(ctx, query, s.now().UTC(), key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}
