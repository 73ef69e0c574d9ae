// Package risk agrega la cartera de clientes: KPIs de mora, ranking de riesgo
// y filtros de búsqueda. Todas las funciones son puras y no modifican la entrada.
package risk

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/financebi-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// KPIs resumen agregado de la cartera.
type KPIs struct {
	TotalClients       int
	DelinquentClients  int
	TotalOverdueAmount decimal.Decimal
	DelinquencyRate    decimal.Decimal // porcentaje 0–100
}

// CurrentClients clientes al día (total - en mora).
func (k KPIs) CurrentClients() int {
	return k.TotalClients - k.DelinquentClients
}

// ComputeKPIs calcula el resumen de la cartera.
// DelinquencyRate = en mora / total × 100, y 0 cuando la colección está vacía.
func ComputeKPIs(clients []entity.Client) KPIs {
	k := KPIs{
		TotalClients:       len(clients),
		TotalOverdueAmount: decimal.Zero,
		DelinquencyRate:    decimal.Zero,
	}
	for _, c := range clients {
		if c.IsDelinquent() {
			k.DelinquentClients++
		}
		k.TotalOverdueAmount = k.TotalOverdueAmount.Add(c.OverdueAmount)
	}
	if k.TotalClients > 0 {
		// multiplicar antes de dividir mantiene exactos los casos enteros (2/10 → 20)
		k.DelinquencyRate = decimal.NewFromInt(int64(k.DelinquentClients)).
			Mul(hundred).
			Div(decimal.NewFromInt(int64(k.TotalClients)))
	}
	return k
}
