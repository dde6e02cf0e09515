package store

import (
	"encoding/json"
	"fmt"

	"github.com/evtrack/homeledger/internal/models"
)

// SessionStore keeps the single current session under the global session
// key. There is at most one session per store; signing in overwrites it.
type SessionStore struct {
	backend Backend
	prefix  string
}

// NewSessionStore creates a session store over the given backend.
func NewSessionStore(backend Backend, prefix string) *SessionStore {
	return &SessionStore{backend: backend, prefix: prefix}
}

// Get returns the persisted session, or nil when signed out.
func (s *SessionStore) Get() (*models.Session, error) {
	raw, ok, err := s.backend.Get(SessionKey(s.prefix))
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var sess models.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &sess, nil
}

// Put persists the session, replacing any existing one.
func (s *SessionStore) Put(sess *models.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.backend.Set(SessionKey(s.prefix), string(raw)); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Delete clears the session. Deleting an absent session is a no-op.
func (s *SessionStore) Delete() error {
	return s.backend.Delete(SessionKey(s.prefix))
}
