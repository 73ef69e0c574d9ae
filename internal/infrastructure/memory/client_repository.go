// Package memory implementa los puertos de persistencia en memoria del proceso.
// Es el adaptador por defecto cuando no hay PostgreSQL configurado.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/financebi-api/internal/domain/entity"
	"github.com/jhoicas/financebi-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo guarda el snapshot de clientes. Las lecturas reciben copias y
// ReplaceAll publica un slice nuevo, así nadie observa un snapshot a medias.
type ClientRepo struct {
	mu      sync.RWMutex
	clients []entity.Client
	byID    map[string]int
}

// NewClientRepository construye el repositorio con el snapshot inicial.
func NewClientRepository(initial []entity.Client) *ClientRepo {
	r := &ClientRepo{}
	r.publish(initial)
	return r
}

// List devuelve una copia del snapshot actual.
func (r *ClientRepo) List(_ context.Context) ([]entity.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Client, len(r.clients))
	for i, c := range r.clients {
		out[i] = c.Clone()
	}
	return out, nil
}

// GetByID busca un cliente por id.
func (r *ClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	c := r.clients[i].Clone()
	return &c, nil
}

// ReplaceAll sustituye el snapshot completo.
func (r *ClientRepo) ReplaceAll(_ context.Context, clients []entity.Client) error {
	if err := entity.ValidateAll(clients); err != nil {
		return err
	}
	r.publish(clients)
	return nil
}

func (r *ClientRepo) publish(clients []entity.Client) {
	snapshot := make([]entity.Client, len(clients))
	index := make(map[string]int, len(clients))
	for i, c := range clients {
		snapshot[i] = c.Clone()
		index[c.ID] = i
	}
	r.mu.Lock()
	r.clients = snapshot
	r.byID = index
	r.mu.Unlock()
}
