// Package session persists the bearer token and the cached user record.
//
// Token and user are always written and cleared together: a reader can observe
// an empty session or a complete one, never a token without its user. The
// store never validates the token itself; a stale token is only discovered
// when the backend rejects a call.
package session

import (
	"sync"

	"github.com/zanta/lfp-client/internal/core/domain"
)

// Store is the session persistence contract. Implementations must keep the
// token/user pair atomic from the caller's point of view.
type Store interface {
	// Token returns the bearer token, or false when no session exists.
	Token() (string, bool)
	// User returns the cached user record, or false when no session exists.
	User() (*domain.User, bool)
	// Set commits token and user together.
	Set(token string, user *domain.User) error
	// Clear removes both values.
	Clear() error
	// Authenticated reports whether a token is present. It does not check
	// signature or expiry; that is the backend's authority.
	Authenticated() bool
}

// MemoryStore keeps the session in process memory. Used by tests and as a
// throwaway backend; it does not survive a restart.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
	user  *domain.User
}

// NewMemoryStore returns an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

func (s *MemoryStore) User() (*domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil, false
	}
	u := *s.user
	return &u, true
}

func (s *MemoryStore) Set(token string, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	if user != nil {
		u := *user
		s.user = &u
	} else {
		s.user = nil
	}
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
	return nil
}

func (s *MemoryStore) Authenticated() bool {
	_, ok := s.Token()
	return ok
}
