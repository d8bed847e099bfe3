package memory

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/hioder/internal/core/domain"
	"github.com/custodia-labs/hioder/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

type sessionEntry struct {
	value   []byte
	updated time.Time
}

// SessionStore is an in-memory implementation of driven.SessionStore.
// Values are lost when the process exits.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]map[string]sessionEntry
	now      func() time.Time
	ttl      time.Duration
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]map[string]sessionEntry),
		now:      time.Now,
	}
}

// SetTTL hides values older than ttl from Get before they are pruned.
// Zero keeps values until pruned.
func (s *SessionStore) SetTTL(ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ttl = ttl
}

// Put stores a copy of value under key for the session.
func (s *SessionStore) Put(_ context.Context, sessionID, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, ok := s.sessions[sessionID]
	if !ok {
		values = make(map[string]sessionEntry)
		s.sessions[sessionID] = values
	}
	values[key] = sessionEntry{value: append([]byte(nil), value...), updated: s.now()}
	return nil
}

// Get retrieves a copy of the value stored under key.
func (s *SessionStore) Get(_ context.Context, sessionID, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.sessions[sessionID][key]
	if !ok || (s.ttl > 0 && entry.updated.Before(s.now().Add(-s.ttl))) {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), entry.value...), nil
}

// Delete removes a value.
func (s *SessionStore) Delete(_ context.Context, sessionID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	delete(values, key)
	if len(values) == 0 {
		delete(s.sessions, sessionID)
	}
	return nil
}

// Prune removes values last written before cutoff.
func (s *SessionStore) Prune(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, values := range s.sessions {
		for key, entry := range values {
			if entry.updated.Before(cutoff) {
				delete(values, key)
				removed++
			}
		}
		if len(values) == 0 {
			delete(s.sessions, id)
		}
	}
	return removed, nil
}
