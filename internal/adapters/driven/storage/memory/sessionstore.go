package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/servilink/servilink-cli/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory implementation of driven.SessionStore for testing.
type SessionStore struct {
	mu      sync.RWMutex
	token   string
	profile []byte

	// Err, when set, is returned by every operation.
	Err error
	// Clears counts Clear calls.
	Clears int
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Load returns the stored token and profile.
func (s *SessionStore) Load(_ context.Context) (token string, profile []byte, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return "", nil, s.Err
	}
	return s.token, slices.Clone(s.profile), nil
}

// Save stores both entries.
func (s *SessionStore) Save(_ context.Context, token string, profile []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.token = token
	s.profile = slices.Clone(profile)
	return nil
}

// SaveProfile replaces the profile and keeps the token.
func (s *SessionStore) SaveProfile(_ context.Context, profile []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.profile = slices.Clone(profile)
	return nil
}

// Clear removes both entries.
func (s *SessionStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.token = ""
	s.profile = nil
	s.Clears++
	return nil
}

// Seed sets raw entries without validation, for corrupt-data tests.
func (s *SessionStore) Seed(token string, profile []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.profile = slices.Clone(profile)
}
