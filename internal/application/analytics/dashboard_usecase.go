// Package analytics contiene los casos de uso del dashboard de inadimplencia
// y del ranking de riesgo.
package analytics

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/financebi-api/internal/application/dto"
	"github.com/jhoicas/financebi-api/internal/domain/entity"
	"github.com/jhoicas/financebi-api/internal/domain/repository"
	"github.com/jhoicas/financebi-api/internal/domain/risk"
	"github.com/jhoicas/financebi-api/pkg/money"
)

const dashboardCriticalClients = 5 // filas de la tabla de casos críticos

var statusLabels = map[entity.ClientStatus]string{
	entity.StatusCurrent:    "Em dia",
	entity.StatusDelinquent: "Inadimplente",
}

// DashboardUseCase genera el resumen de la cartera.
//
// Fuente de datos: el snapshot del ClientRepository. Todos los indicadores se
// calculan sobre la misma lectura, así que son consistentes entre sí.
type DashboardUseCase struct {
	clientRepo repository.ClientRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(clientRepo repository.ClientRepository) *DashboardUseCase {
	return &DashboardUseCase{clientRepo: clientRepo}
}

// GetSummary construye el DashboardSummaryDTO:
//  1. KPIs del agregador de riesgo
//  2. distribución por estado (gráfico de torta)
//  3. pagos atrasados por mes (gráfico de barras)
//  4. top 5 clientes en mora por monto vencido
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	clients, err := uc.clientRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	kpis := risk.ComputeKPIs(clients)
	return &dto.DashboardSummaryDTO{
		KPIs: toKPIStats(kpis),
		StatusDistribution: []dto.StatusSliceDTO{
			{Status: string(entity.StatusCurrent), Label: statusLabels[entity.StatusCurrent], Count: kpis.CurrentClients()},
			{Status: string(entity.StatusDelinquent), Label: statusLabels[entity.StatusDelinquent], Count: kpis.DelinquentClients},
		},
		MonthlyOverdue:  monthlyOverdue(clients),
		CriticalClients: criticalClients(clients, dashboardCriticalClients),
		GeneratedAt:     time.Now().UTC(),
	}, nil
}

func toKPIStats(k risk.KPIs) dto.KPIStatsDTO {
	return dto.KPIStatsDTO{
		TotalClients:             k.TotalClients,
		DelinquentClients:        k.DelinquentClients,
		CurrentClients:           k.CurrentClients(),
		TotalOverdueAmount:       k.TotalOverdueAmount,
		TotalOverdueFormatted:    money.FormatBRL(k.TotalOverdueAmount),
		DelinquencyRate:          k.DelinquencyRate.Round(2),
		DelinquencyRateFormatted: money.FormatPercent(k.DelinquencyRate),
	}
}

// criticalClients clientes en mora ordenados por monto vencido (estable en empates).
func criticalClients(clients []entity.Client, n int) []dto.CriticalClientDTO {
	delinquent := make([]entity.Client, 0, len(clients))
	for _, c := range clients {
		if c.IsDelinquent() {
			delinquent = append(delinquent, c)
		}
	}
	slices.SortStableFunc(delinquent, func(a, b entity.Client) int {
		return b.OverdueAmount.Cmp(a.OverdueAmount)
	})
	top, _ := risk.Partition(delinquent, n)

	out := make([]dto.CriticalClientDTO, len(top))
	for i, c := range top {
		out[i] = dto.CriticalClientDTO{
			ID:               c.ID,
			Name:             c.Name,
			Company:          c.Company,
			Email:            c.Email,
			Phone:            c.Phone,
			OverdueAmount:    c.OverdueAmount,
			OverdueFormatted: money.FormatBRL(c.OverdueAmount),
			DaysOverdue:      c.DaysOverdue,
		}
	}
	return out
}

// monthlyOverdue suma los pagos atrasados por mes del histórico. Los meses salen
// en el orden en que aparecen por primera vez; un mes sin atrasos queda en cero.
func monthlyOverdue(clients []entity.Client) []dto.MonthlyOverdueDTO {
	var order []string
	totals := make(map[string]decimal.Decimal)
	for _, c := range clients {
		for _, h := range c.History {
			if _, seen := totals[h.Month]; !seen {
				order = append(order, h.Month)
				totals[h.Month] = decimal.Zero
			}
			if h.Status == entity.PaymentLate {
				totals[h.Month] = totals[h.Month].Add(h.Value)
			}
		}
	}

	out := make([]dto.MonthlyOverdueDTO, len(order))
	for i, m := range order {
		out[i] = dto.MonthlyOverdueDTO{Month: m, Value: totals[m]}
	}
	return out
}
