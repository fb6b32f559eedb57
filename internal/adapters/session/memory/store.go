// Package memory guarda sessões num mapa protegido por mutex. Serve para
// desenvolvimento e testes; em produção o store Redis assume.
package memory

import (
	"context"
	"sync"
	"time"

	"sndot/internal/auth"
)

type Store struct {
	mu       sync.RWMutex
	sessions map[string]auth.Session
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]auth.Session),
		now:      time.Now,
	}
}

func (s *Store) Save(_ context.Context, sess auth.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return nil
}

// Find devolve ErrSessionNotFound também para sessões vencidas; a
// expiração aqui faz as vezes do TTL do Redis.
func (s *Store) Find(_ context.Context, id string) (auth.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return auth.Session{}, auth.ErrSessionNotFound
	}
	if sess.Expired(s.now()) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return auth.Session{}, auth.ErrSessionNotFound
	}
	return sess, nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
