// Package session keeps short-lived registration sessions: the name, country,
// timezone and color a visitor picked before joining a calendar.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Duration is how long a registration session stays valid.
const Duration = 24 * time.Hour

type User struct {
	Name     string `json:"name"`
	Country  string `json:"country"`
	Timezone string `json:"timezone"`
	Color    string `json:"color"`
}

type entry struct {
	user      User
	expiresAt time.Time
}

type Store struct {
	mu       sync.RWMutex
	sessions map[string]entry
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]entry), now: time.Now}
}

// NewStoreWithClock is used by tests to control expiry.
func NewStoreWithClock(now func() time.Time) *Store {
	return &Store{sessions: make(map[string]entry), now: now}
}

// Save registers a user and returns the session token.
func (s *Store) Save(u User) string {
	token := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = entry{user: u, expiresAt: s.now().Add(Duration)}
	return token
}

// Get returns the session's user. Expired sessions are removed and read as
// absent.
func (s *Store) Get(token string) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[token]
	if !ok {
		return User{}, false
	}
	if s.now().After(e.expiresAt) {
		delete(s.sessions, token)
		return User{}, false
	}
	return e.user, true
}

// Delete removes a session.
func (s *Store) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// Remaining reports how long the session stays valid; zero when absent or
// expired.
func (s *Store) Remaining(token string) time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.sessions[token]
	if !ok {
		return 0
	}
	remaining := e.expiresAt.Sub(s.now())
	if remaining < 0 {
		return 0
	}
	return remaining
}
