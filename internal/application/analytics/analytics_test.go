package analytics_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/financebi-api/internal/application/analytics"
	"github.com/jhoicas/financebi-api/internal/application/dto"
	"github.com/jhoicas/financebi-api/internal/domain"
	"github.com/jhoicas/financebi-api/internal/domain/entity"
	"github.com/jhoicas/financebi-api/internal/infrastructure/memory"
	"github.com/jhoicas/financebi-api/internal/infrastructure/mockdata"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func cur(id string) entity.Client {
	return entity.Client{
		ID: id, Name: "Cliente " + id, Company: "Empresa",
		Status: entity.StatusCurrent, TotalBalance: decimal.NewFromInt(1000),
		History: []entity.PaymentRecord{
			{Month: "Jan", Status: entity.PaymentPaid, Value: decimal.NewFromInt(100)},
			{Month: "Fev", Status: entity.PaymentPaid, Value: decimal.NewFromInt(100)},
		},
	}
}

func late(id string, overdue int64, days int) entity.Client {
	return entity.Client{
		ID: id, Name: "Cliente " + id, Company: "Empresa",
		Status: entity.StatusDelinquent, TotalBalance: decimal.NewFromInt(50_000),
		OverdueAmount: decimal.NewFromInt(overdue), DaysOverdue: days,
		History: []entity.PaymentRecord{
			{Month: "Jan", Status: entity.PaymentPaid, Value: decimal.NewFromInt(100)},
			{Month: "Fev", Status: entity.PaymentLate, Value: decimal.NewFromInt(250)},
		},
	}
}

type fakeReport struct {
	got *dto.RankingResponseDTO
	err error
}

func (f *fakeReport) GenerateRankingReport(r *dto.RankingResponseDTO, _ dto.KPIStatsDTO) ([]byte, error) {
	f.got = r
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-fake"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_CarteraVacia(t *testing.T) {
	uc := analytics.NewDashboardUseCase(memory.NewClientRepository(nil))

	s, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, s.KPIs.TotalClients)
	assert.True(t, s.KPIs.DelinquencyRate.IsZero())
	assert.Empty(t, s.CriticalClients)
	assert.Empty(t, s.MonthlyOverdue)
	require.Len(t, s.StatusDistribution, 2)
	assert.Equal(t, 0, s.StatusDistribution[0].Count)
}

func TestDashboard_Resumen(t *testing.T) {
	clients := []entity.Client{
		cur("1"), late("2", 1000, 10), cur("3"), late("4", 5000, 2),
		late("5", 1000, 40), late("6", 300, 1), late("7", 9000, 3), late("8", 700, 9),
	}
	uc := analytics.NewDashboardUseCase(memory.NewClientRepository(clients))

	s, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 8, s.KPIs.TotalClients)
	assert.Equal(t, 6, s.KPIs.DelinquentClients)
	assert.Equal(t, 2, s.KPIs.CurrentClients)
	assert.True(t, decimal.NewFromInt(17_000).Equal(s.KPIs.TotalOverdueAmount))
	assert.True(t, decimal.NewFromInt(75).Equal(s.KPIs.DelinquencyRate))
	assert.Equal(t, "75,0%", s.KPIs.DelinquencyRateFormatted)

	assert.Equal(t, "Em dia", s.StatusDistribution[0].Label)
	assert.Equal(t, 2, s.StatusDistribution[0].Count)
	assert.Equal(t, 6, s.StatusDistribution[1].Count)

	// por monto vencido, empate 2/5 conserva el orden de entrada, solo 5 filas
	var critical []string
	for _, c := range s.CriticalClients {
		critical = append(critical, c.ID)
	}
	assert.Equal(t, []string{"7", "4", "2", "5", "8"}, critical)

	require.Len(t, s.MonthlyOverdue, 2)
	assert.Equal(t, "Jan", s.MonthlyOverdue[0].Month)
	assert.True(t, s.MonthlyOverdue[0].Value.IsZero())
	assert.Equal(t, "Fev", s.MonthlyOverdue[1].Month)
	assert.True(t, decimal.NewFromInt(1500).Equal(s.MonthlyOverdue[1].Value))
}

func TestDashboard_DatosDeDemostracion(t *testing.T) {
	clients := mockdata.NewGenerator(42).Clients(mockdata.DefaultSize)
	uc := analytics.NewDashboardUseCase(memory.NewClientRepository(clients))

	s, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 55, s.KPIs.TotalClients)
	assert.Equal(t, 14, s.KPIs.DelinquentClients)
	assert.Len(t, s.CriticalClients, 5)
	assert.Len(t, s.MonthlyOverdue, len(mockdata.Months))
}

// ──────────────────────────────────────────────────────────────────────────────
// Ranking
// ──────────────────────────────────────────────────────────────────────────────

func TestRanking_PodioYResto(t *testing.T) {
	clients := []entity.Client{
		cur("c1"),
		late("A", 1000, 10), // 2500
		late("B", 500, 50),  // 5750
		late("C", 20000, 1), // 30100
		late("D", 100, 1),   // 250
		cur("c2"),
	}
	uc := analytics.NewRankingUseCase(memory.NewClientRepository(clients), nil)

	r, err := uc.GetRanking(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, 4, r.Total, "el resto omite clientes sin saldo vencido")
	require.Len(t, r.Podium, 3)
	require.Len(t, r.Others, 1)

	assert.Equal(t, "C", r.Podium[0].ClientID)
	assert.Equal(t, 1, r.Podium[0].Position)
	assert.Equal(t, "B", r.Podium[1].ClientID)
	assert.Equal(t, "A", r.Podium[2].ClientID)
	assert.Equal(t, "D", r.Others[0].ClientID)
	assert.Equal(t, 4, r.Others[0].Position)

	assert.Equal(t, int64(30100), r.Podium[0].Points)
	assert.True(t, decimal.NewFromInt(100).Equal(r.Podium[0].RiskBarPct), "la barra se satura en 100")
	assert.Equal(t, "6.7", r.Podium[2].RiskBarPct.String())
}

func TestRanking_PuntosTruncados(t *testing.T) {
	uc := analytics.NewRankingUseCase(memory.NewClientRepository([]entity.Client{late("X", 3, 1)}), nil)

	r, err := uc.GetRanking(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, r.Podium, 1)
	assert.Equal(t, "104.5", r.Podium[0].Score.String())
	assert.Equal(t, int64(104), r.Podium[0].Points)
	assert.Empty(t, r.Others)
}

func TestRanking_TopFueraDeRango(t *testing.T) {
	uc := analytics.NewRankingUseCase(memory.NewClientRepository(nil), nil)
	for _, top := range []int{-1, 11} {
		_, err := uc.GetRanking(context.Background(), top)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, fmt.Sprint(top))
	}
}

func TestRanking_SinMorosos(t *testing.T) {
	uc := analytics.NewRankingUseCase(memory.NewClientRepository([]entity.Client{cur("1")}), nil)

	r, err := uc.GetRanking(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, r.Podium, 1, "el podio se completa con clientes al día")
	assert.True(t, r.Podium[0].Score.IsZero())
	assert.Empty(t, r.Others)
	assert.Equal(t, 1, r.Total)

	r, err = analytics.NewRankingUseCase(memory.NewClientRepository(nil), nil).GetRanking(context.Background(), 3)
	require.NoError(t, err)
	assert.Empty(t, r.Podium)
	assert.Equal(t, 0, r.Total)
}

func TestRanking_PodioCompletoConPocosMorosos(t *testing.T) {
	clients := []entity.Client{cur("c1"), late("A", 1000, 10), cur("c2"), cur("c3")}
	uc := analytics.NewRankingUseCase(memory.NewClientRepository(clients), nil)

	r, err := uc.GetRanking(context.Background(), 3)
	require.NoError(t, err)

	require.Len(t, r.Podium, 3)
	assert.Equal(t, "A", r.Podium[0].ClientID)
	assert.Equal(t, "c1", r.Podium[1].ClientID, "empates en cero conservan el orden de la cartera")
	assert.Equal(t, "c2", r.Podium[2].ClientID)
	assert.Equal(t, 3, r.Podium[2].Position)
	assert.Empty(t, r.Others, "c3 no tiene saldo vencido")
	assert.Equal(t, 3, r.Total)
}

func TestRanking_GenerateReport(t *testing.T) {
	gen := &fakeReport{}
	uc := analytics.NewRankingUseCase(memory.NewClientRepository([]entity.Client{late("A", 10, 1)}), gen)

	pdf, err := uc.GenerateReport(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(pdf))
	require.NotNil(t, gen.got)
	assert.Equal(t, 1, gen.got.Total)

	gen.err = errors.New("boom")
	_, err = uc.GenerateReport(context.Background(), 0)
	assert.Error(t, err)

	_, err = analytics.NewRankingUseCase(memory.NewClientRepository(nil), nil).GenerateReport(context.Background(), 0)
	assert.Error(t, err)
}
