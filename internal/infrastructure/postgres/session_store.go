package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/financebi-api/internal/domain/repository"
)

var _ repository.SessionStore = (*SessionStore)(nil)

// SessionStore almacén clave/valor sobre la tabla app_session (usable con pool o tx).
type SessionStore struct {
	q Querier
}

// NewSessionStore construye el adaptador. Pasar pool o tx (Querier).
func NewSessionStore(q Querier) *SessionStore {
	return &SessionStore{q: q}
}

// Get devuelve el valor de la clave; ok=false si no existe.
func (s *SessionStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.q.QueryRow(ctx, `SELECT value FROM app_session WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get session %s: %w", key, err)
	}
	return value, true, nil
}

// Set inserta o actualiza la clave.
func (s *SessionStore) Set(ctx context.Context, key, value string) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO app_session (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value)
	if err != nil {
		return fmt.Errorf("set session %s: %w", key, err)
	}
	return nil
}

// Delete elimina la clave. No falla si no existe.
func (s *SessionStore) Delete(ctx context.Context, key string) error {
	if _, err := s.q.Exec(ctx, `DELETE FROM app_session WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete session %s: %w", key, err)
	}
	return nil
}
