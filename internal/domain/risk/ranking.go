package risk

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/financebi-api/internal/domain/entity"
)

// Pesos del índice de riesgo: monto vencido × 1.5 + días de atraso × 100.
var (
	overdueWeight = decimal.RequireFromString("1.5")
	daysWeight    = decimal.NewFromInt(100)
)

// Score índice de riesgo del cliente (mayor = peor pagador).
func Score(c entity.Client) decimal.Decimal {
	return c.OverdueAmount.Mul(overdueWeight).
		Add(decimal.NewFromInt(int64(c.DaysOverdue)).Mul(daysWeight))
}

// Ranked cliente con su índice ya calculado.
type Ranked struct {
	Client entity.Client
	Score  decimal.Decimal
}

// RankWithScores ordena de mayor a menor índice. El orden es estable:
// empates conservan el orden relativo de la entrada.
func RankWithScores(clients []entity.Client) []Ranked {
	out := make([]Ranked, len(clients))
	for i, c := range clients {
		out[i] = Ranked{Client: c, Score: Score(c)}
	}
	slices.SortStableFunc(out, func(a, b Ranked) int {
		return b.Score.Cmp(a.Score)
	})
	return out
}

// RankByRisk devuelve los clientes ordenados por índice de riesgo descendente.
// La salida es una permutación de la entrada; la entrada no se modifica.
func RankByRisk(clients []entity.Client) []entity.Client {
	ranked := RankWithScores(clients)
	out := make([]entity.Client, len(ranked))
	for i, r := range ranked {
		out[i] = r.Client
	}
	return out
}

// Partition separa el ranking en los primeros n y el resto.
func Partition[T any](ranked []T, n int) (top, rest []T) {
	if n < 0 {
		n = 0
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n:n], ranked[n:]
}
