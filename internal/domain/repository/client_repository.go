package repository

import (
	"context"

	"github.com/jhoicas/financebi-api/internal/domain/entity"
)

// ClientRepository define el puerto del snapshot de clientes (DIP).
// El snapshot se lee completo y se reemplaza completo; no hay actualizaciones parciales.
type ClientRepository interface {
	// List devuelve una copia del snapshot en orden de inserción.
	List(ctx context.Context) ([]entity.Client, error)
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	// ReplaceAll sustituye el snapshot de forma atómica.
	ReplaceAll(ctx context.Context, clients []entity.Client) error
}
