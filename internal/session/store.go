package session

import (
	"sync"

	"github.com/munivisitas/gateway/internal/domain"
)

// Store holds the acting identity for one session. Only Login and Logout
// mutate it; everything else reads.
type Store struct {
	mu  sync.RWMutex
	rec domain.Session
}

// NewStore returns an anonymous store.
func NewStore() *Store {
	return &Store{}
}

// NewStoreFrom returns a store hydrated from a persisted record.
func NewStoreFrom(rec domain.Session) *Store {
	return &Store{rec: rec}
}

// Login installs the identity. A record without a user ID leaves the store
// anonymous, preserving the authenticated-iff-identity invariant.
func (s *Store) Login(rec domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !rec.Authenticated() {
		s.rec = domain.Session{}
		return
	}
	s.rec = rec
}

// Logout resets to the anonymous state.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = domain.Session{}
}

// Current returns the identity and whether it is authenticated.
func (s *Store) Current() (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rec, s.rec.Authenticated()
}
