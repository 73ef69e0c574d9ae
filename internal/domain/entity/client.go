package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/financebi-api/internal/domain"
)

// ClientStatus situación de pago del cliente. Se mantiene fuera del agregador.
type ClientStatus string

const (
	StatusCurrent    ClientStatus = "current"    // "Em dia"
	StatusDelinquent ClientStatus = "delinquent" // "Inadimplente"
)

// PaymentStatus estado de un mes del histórico de pagos.
type PaymentStatus string

const (
	PaymentPaid PaymentStatus = "paid"
	PaymentLate PaymentStatus = "late"
)

// PaymentRecord registro mensual del histórico (informativo, el agregador no lo usa).
type PaymentRecord struct {
	Month  string          `json:"month"`
	Status PaymentStatus   `json:"status"`
	Value  decimal.Decimal `json:"value"`
}

// Client representa un cliente de la cartera.
type Client struct {
	ID            string
	Name          string
	Company       string
	Email         string
	Phone         string
	Status        ClientStatus
	TotalBalance  decimal.Decimal
	OverdueAmount decimal.Decimal // 0 cuando Status = current
	DaysOverdue   int             // 0 cuando Status = current
	History       []PaymentRecord
	LastUpdate    time.Time
}

// IsDelinquent informa si el cliente está en mora.
func (c Client) IsDelinquent() bool {
	return c.Status == StatusDelinquent
}

// Validate verifica el invariante de mora:
// OverdueAmount > 0 y DaysOverdue > 0 si y solo si Status = delinquent.
// Se usa en las fronteras de ingesta (seed, importación, carga desde DB).
func (c Client) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: id vacío", domain.ErrInvalidClient)
	}
	if c.TotalBalance.IsNegative() || c.OverdueAmount.IsNegative() || c.DaysOverdue < 0 {
		return fmt.Errorf("%w: %s tiene montos negativos", domain.ErrInvalidClient, c.ID)
	}
	switch c.Status {
	case StatusCurrent:
		if !c.OverdueAmount.IsZero() || c.DaysOverdue != 0 {
			return fmt.Errorf("%w: %s está al día con saldo vencido", domain.ErrInvalidClient, c.ID)
		}
	case StatusDelinquent:
		if !c.OverdueAmount.IsPositive() || c.DaysOverdue <= 0 {
			return fmt.Errorf("%w: %s en mora sin saldo o días vencidos", domain.ErrInvalidClient, c.ID)
		}
	default:
		return fmt.Errorf("%w: %s con estado desconocido %q", domain.ErrInvalidClient, c.ID, c.Status)
	}
	return nil
}

// Clone devuelve una copia independiente (el histórico no se comparte).
func (c Client) Clone() Client {
	out := c
	if c.History != nil {
		out.History = make([]PaymentRecord, len(c.History))
		copy(out.History, c.History)
	}
	return out
}

// ValidateAll valida una colección completa y rechaza ids duplicados.
func ValidateAll(clients []Client) error {
	seen := make(map[string]struct{}, len(clients))
	for _, c := range clients {
		if err := c.Validate(); err != nil {
			return err
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("%w: id duplicado %s", domain.ErrInvalidClient, c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	return nil
}
