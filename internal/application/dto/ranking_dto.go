package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RankingRequest parámetros de GET /api/ranking.
type RankingRequest struct {
	Top int `query:"top"` // tamaño del podio (default 3, max 10)
}

// RankingEntryDTO posición del ranking de riesgo.
type RankingEntryDTO struct {
	Position         int             `json:"position"` // 1 = peor pagador
	ClientID         string          `json:"client_id"`
	Name             string          `json:"name"`
	Company          string          `json:"company"`
	OverdueAmount    decimal.Decimal `json:"overdue_amount"`
	OverdueFormatted string          `json:"overdue_formatted"`
	DaysOverdue      int             `json:"days_overdue"`
	Score            decimal.Decimal `json:"score"`
	Points           int64           `json:"points"`       // parte entera del índice
	RiskBarPct       decimal.Decimal `json:"risk_bar_pct"` // min(vencido / 15000 × 100, 100)
}

// RankingResponseDTO podio y resto del ranking.
type RankingResponseDTO struct {
	Podium      []RankingEntryDTO `json:"podium"`
	Others      []RankingEntryDTO `json:"others"`
	Total       int               `json:"total"`
	GeneratedAt time.Time         `json:"generated_at"`
}
