package driven

import (
	"context"
	"time"
)

// SessionStore is a per-session key-value store.
// It carries the selected record between views.
type SessionStore interface {
	// Put stores value under key for the session, replacing any previous value.
	Put(ctx context.Context, sessionID, key string, value []byte) error

	// Get retrieves a value. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, sessionID, key string) ([]byte, error)

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, sessionID, key string) error

	// Prune removes values last written before cutoff and returns the count.
	Prune(ctx context.Context, cutoff time.Time) (int, error)
}
