// Package mockdata genera la cartera de demostración que alimenta el snapshot
// inicial de clientes. Con la misma semilla produce siempre los mismos datos.
package mockdata

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/financebi-api/internal/domain/entity"
)

// DefaultSize tamaño de la cartera de demostración.
const DefaultSize = 55

// Months etiquetas del histórico de seis meses.
var Months = []string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun"}

var (
	firstNames = []string{"Ana", "Bruno", "Carlos", "Daniela", "Eduardo", "Fernanda", "Gabriel", "Helena", "Igor", "Juliana"}
	lastNames  = []string{"Silva", "Santos", "Oliveira", "Souza", "Pereira", "Costa", "Rodrigues", "Almeida", "Nascimento", "Lopes"}
	companies  = []string{"Tech Innovators", "Global Logistics", "Alimentos S.A.", "Moda Brasil", "ConstruVale", "EcoEnergia", "Saúde Total", "Finanças Prime"}
)

// Generator produce clientes ficticios.
type Generator struct {
	rnd *rand.Rand
	now func() time.Time
}

// NewGenerator construye un generador determinista a partir de la semilla.
func NewGenerator(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed)), now: time.Now}
}

// WithClock fija el reloj usado para LastUpdate.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Clients genera n clientes; uno de cada cuatro queda en mora (25%).
func (g *Generator) Clients(n int) []entity.Client {
	out := make([]entity.Client, 0, n)
	now := g.now().UTC()
	for i := 0; i < n; i++ {
		first := firstNames[i%len(firstNames)]
		last := lastNames[(i+3)%len(lastNames)]
		isDelinquent := i%4 == 0

		c := entity.Client{
			ID:            fmt.Sprintf("cl-%d", i+1),
			Name:          first + " " + last,
			Company:       companies[i%len(companies)],
			Email:         fmt.Sprintf("%s.%s%d@example.com.br", strings.ToLower(first), strings.ToLower(last), i),
			Phone:         fmt.Sprintf("(11) 9%d", g.rnd.Intn(89_999_999)+10_000_000),
			Status:        entity.StatusCurrent,
			TotalBalance:  decimal.NewFromInt(int64(g.rnd.Intn(50_000) + 5_000)),
			OverdueAmount: decimal.Zero,
			LastUpdate:    now,
		}
		if isDelinquent {
			MarkDelinquent(g.rnd, &c)
		}
		c.History = History(g.rnd, isDelinquent)
		out = append(out, c)
	}
	return out
}

// MarkDelinquent pone al cliente en mora con saldo vencido 2000–16999 y 5–94 días.
func MarkDelinquent(rnd *rand.Rand, c *entity.Client) {
	c.Status = entity.StatusDelinquent
	c.OverdueAmount = decimal.NewFromInt(int64(rnd.Intn(15_000) + 2_000))
	c.DaysOverdue = rnd.Intn(90) + 5
}

// MarkCurrent pone al cliente al día y limpia saldo y días vencidos.
func MarkCurrent(c *entity.Client) {
	c.Status = entity.StatusCurrent
	c.OverdueAmount = decimal.Zero
	c.DaysOverdue = 0
}

// History genera el histórico de seis meses; en mora, los dos últimos meses quedan atrasados.
func History(rnd *rand.Rand, isDelinquent bool) []entity.PaymentRecord {
	out := make([]entity.PaymentRecord, len(Months))
	for idx, month := range Months {
		status := entity.PaymentPaid
		if isDelinquent && idx >= 4 {
			status = entity.PaymentLate
		}
		out[idx] = entity.PaymentRecord{
			Month:  month,
			Status: status,
			Value:  decimal.NewFromInt(int64(rnd.Intn(5_000) + 1_000)),
		}
	}
	return out
}
