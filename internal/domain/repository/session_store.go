package repository

import "context"

// SessionStore almacén clave-valor del flag de sesión.
// Es el único estado que sobrevive a un reinicio del proceso.
type SessionStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
