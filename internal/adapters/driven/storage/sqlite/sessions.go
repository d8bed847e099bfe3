package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/hioder/internal/core/domain"
	"github.com/custodia-labs/hioder/internal/core/ports/driven"
)

// sessionStore implements driven.SessionStore.
type sessionStore struct {
	store *Store
}

var _ driven.SessionStore = (*sessionStore)(nil)

// nowFunc is replaced in tests.
var nowFunc = time.Now

// Put stores value under key for the session.
func (s *sessionStore) Put(ctx context.Context, sessionID, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO sessions (session_id, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(session_id, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, sessionID, key, value, nowFunc().UnixNano())
	if err != nil {
		return fmt.Errorf("saving session value: %w", err)
	}
	return nil
}

// Get retrieves a value. Returns domain.ErrNotFound if absent or expired.
func (s *sessionStore) Get(ctx context.Context, sessionID, key string) ([]byte, error) {
	var since int64
	if s.store.ttl > 0 {
		since = nowFunc().Add(-s.store.ttl).UnixNano()
	}
	var value []byte
	err := s.store.db.QueryRowContext(ctx,
		"SELECT value FROM sessions WHERE session_id = ? AND key = ? AND updated_at >= ?",
		sessionID, key, since,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading session value: %w", err)
	}
	return value, nil
}

// Delete removes a value.
func (s *sessionStore) Delete(ctx context.Context, sessionID, key string) error {
	_, err := s.store.db.ExecContext(ctx,
		"DELETE FROM sessions WHERE session_id = ? AND key = ?", sessionID, key)
	if err != nil {
		return fmt.Errorf("deleting session value: %w", err)
	}
	return nil
}

// Prune removes values last written before cutoff.
func (s *sessionStore) Prune(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := s.store.db.ExecContext(ctx,
		"DELETE FROM sessions WHERE updated_at < ?", cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("pruning sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pruning sessions: %w", err)
	}
	return int(n), nil
}
