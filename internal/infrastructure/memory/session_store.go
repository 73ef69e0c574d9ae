package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/financebi-api/internal/domain/repository"
)

var _ repository.SessionStore = (*SessionStore)(nil)

// SessionStore almacén clave-valor en memoria (se pierde al reiniciar).
type SessionStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewSessionStore construye un almacén vacío.
func NewSessionStore() *SessionStore {
	return &SessionStore{values: make(map[string]string)}
}

func (s *SessionStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *SessionStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
	return nil
}
