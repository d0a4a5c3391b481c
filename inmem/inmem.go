// Package inmem implements askbot.SessionStore in process memory.
package inmem

import (
	"context"
	"sync"

	"github.com/fwojciec/askbot"
)

// Interface compliance check.
var _ askbot.SessionStore = (*Store)(nil)

// Store keeps one session per user for the lifetime of the process.
// Sessions are never evicted.
type Store struct {
	factory askbot.SessionFactory

	mu       sync.Mutex
	sessions map[string]askbot.Session
}

// NewStore creates an empty Store that creates sessions with factory.
func NewStore(factory askbot.SessionFactory) *Store {
	return &Store{
		factory:  factory,
		sessions: make(map[string]askbot.Session),
	}
}

// GetOrCreate returns the session of userID, creating it on first use.
// Concurrent calls for the same user observe the same session. A factory
// error is returned as is and nothing is stored.
func (s *Store) GetOrCreate(ctx context.Context, userID string) (askbot.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[userID]; ok {
		return session, nil
	}
	session, err := s.factory(ctx)
	if err != nil {
		return nil, err
	}
	s.sessions[userID] = session
	return session, nil
}

// Len returns the number of stored sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
