package mockdata

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/jhoicas/financebi-api/internal/application/importer"
	"github.com/jhoicas/financebi-api/internal/domain/entity"
)

var _ importer.Refresher = (*SimulatedRefresher)(nil)

// SimulatedRefresher sustituye el procesamiento real de la planilla: marca todos
// los clientes como actualizados y, con probabilidad p, invierte su estado.
// Los montos se regeneran o se anulan para que el invariante de mora se mantenga.
type SimulatedRefresher struct {
	mu  sync.Mutex
	rnd *rand.Rand
	p   float64
	now func() time.Time
}

// NewSimulatedRefresher construye el refresher con su propia fuente aleatoria.
func NewSimulatedRefresher(seed int64, flipProbability float64) *SimulatedRefresher {
	return &SimulatedRefresher{
		rnd: rand.New(rand.NewSource(seed)),
		p:   flipProbability,
		now: time.Now,
	}
}

// WithClock fija el reloj usado para LastUpdate.
func (r *SimulatedRefresher) WithClock(now func() time.Time) *SimulatedRefresher {
	r.now = now
	return r
}

// Refresh devuelve un snapshot nuevo; la entrada no se modifica.
func (r *SimulatedRefresher) Refresh(ctx context.Context, clients []entity.Client) ([]entity.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	out := make([]entity.Client, len(clients))
	for i, c := range clients {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next := c.Clone()
		next.LastUpdate = now
		if r.rnd.Float64() < r.p {
			if next.IsDelinquent() {
				MarkCurrent(&next)
			} else {
				MarkDelinquent(r.rnd, &next)
			}
			next.History = History(r.rnd, next.IsDelinquent())
		}
		out[i] = next
	}
	return out, nil
}
