package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientListRequest parámetros de GET /api/clients.
type ClientListRequest struct {
	Search string `query:"search"`
	Status string `query:"status"` // all | current | delinquent
}

// PaymentRecordDTO mes del histórico de pagos.
type PaymentRecordDTO struct {
	Month  string          `json:"month"`
	Status string          `json:"status"`
	Value  decimal.Decimal `json:"value"`
}

// ClientDTO cliente de la cartera.
type ClientDTO struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	Company          string             `json:"company"`
	Email            string             `json:"email"`
	Phone            string             `json:"phone"`
	Status           string             `json:"status"`
	TotalBalance     decimal.Decimal    `json:"total_balance"`
	OverdueAmount    decimal.Decimal    `json:"overdue_amount"`
	OverdueFormatted string             `json:"overdue_formatted"` // "R$ 1.234,00"
	DaysOverdue      int                `json:"days_overdue"`
	History          []PaymentRecordDTO `json:"history"`
	LastUpdate       time.Time          `json:"last_update"`
}

// ClientListResponse listado filtrado con su conteo.
type ClientListResponse struct {
	Count   int         `json:"count"`
	Search  string      `json:"search"`
	Status  string      `json:"status"`
	Clients []ClientDTO `json:"clients"`
}
