package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	KPIs               KPIStatsDTO         `json:"kpis"`
	StatusDistribution []StatusSliceDTO    `json:"status_distribution"`
	MonthlyOverdue     []MonthlyOverdueDTO `json:"monthly_overdue"` // pagos atrasados por mes
	CriticalClients    []CriticalClientDTO `json:"critical_clients"`
	GeneratedAt        time.Time           `json:"generated_at"`
}

// KPIStatsDTO indicadores de la cartera.
type KPIStatsDTO struct {
	TotalClients             int             `json:"total_clients"`
	DelinquentClients        int             `json:"delinquent_clients"`
	CurrentClients           int             `json:"current_clients"`
	TotalOverdueAmount       decimal.Decimal `json:"total_overdue_amount"`
	TotalOverdueFormatted    string          `json:"total_overdue_formatted"`
	DelinquencyRate          decimal.Decimal `json:"delinquency_rate"`           // 0–100
	DelinquencyRateFormatted string          `json:"delinquency_rate_formatted"` // "25,5%"
}

// StatusSliceDTO porción del gráfico de distribución por estado.
type StatusSliceDTO struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
}

// MonthlyOverdueDTO suma de pagos atrasados de un mes del histórico.
type MonthlyOverdueDTO struct {
	Month string          `json:"month"`
	Value decimal.Decimal `json:"value"`
}

// CriticalClientDTO cliente de la tabla de casos críticos.
type CriticalClientDTO struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Company          string          `json:"company"`
	Email            string          `json:"email"`
	Phone            string          `json:"phone"`
	OverdueAmount    decimal.Decimal `json:"overdue_amount"`
	OverdueFormatted string          `json:"overdue_formatted"`
	DaysOverdue      int             `json:"days_overdue"`
}
