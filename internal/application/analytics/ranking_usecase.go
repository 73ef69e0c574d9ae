package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/financebi-api/internal/application/dto"
	"github.com/jhoicas/financebi-api/internal/domain"
	"github.com/jhoicas/financebi-api/internal/domain/repository"
	"github.com/jhoicas/financebi-api/internal/domain/risk"
	"github.com/jhoicas/financebi-api/pkg/money"
)

const (
	DefaultPodiumSize = 3
	MaxPodiumSize     = 10
)

// Monto vencido con el que la barra de riesgo llega al 100%.
var riskBarCeiling = decimal.NewFromInt(15_000)

var hundred = decimal.NewFromInt(100)

// RankingUseCase ranking de peores pagadores.
type RankingUseCase struct {
	clientRepo repository.ClientRepository
	reportGen  RankingReportGenerator
}

// NewRankingUseCase construye el caso de uso. reportGen puede ser nil si no se exporta PDF.
func NewRankingUseCase(clientRepo repository.ClientRepository, reportGen RankingReportGenerator) *RankingUseCase {
	return &RankingUseCase{clientRepo: clientRepo, reportGen: reportGen}
}

// GetRanking ordena por índice de riesgo a los clientes con saldo vencido y los
// separa en podio (top) y resto. top = 0 usa DefaultPodiumSize.
func (uc *RankingUseCase) GetRanking(ctx context.Context, top int) (*dto.RankingResponseDTO, error) {
	ranking, _, err := uc.build(ctx, top)
	return ranking, err
}

// GenerateReport renderiza el ranking y los KPIs de la cartera como PDF.
func (uc *RankingUseCase) GenerateReport(ctx context.Context, top int) ([]byte, error) {
	if uc.reportGen == nil {
		return nil, fmt.Errorf("ranking: generador de reportes no configurado")
	}
	ranking, kpis, err := uc.build(ctx, top)
	if err != nil {
		return nil, err
	}
	pdf, err := uc.reportGen.GenerateRankingReport(ranking, kpis)
	if err != nil {
		return nil, fmt.Errorf("ranking: generar reporte: %w", err)
	}
	return pdf, nil
}

func (uc *RankingUseCase) build(ctx context.Context, top int) (*dto.RankingResponseDTO, dto.KPIStatsDTO, error) {
	if top == 0 {
		top = DefaultPodiumSize
	}
	if top < 1 || top > MaxPodiumSize {
		return nil, dto.KPIStatsDTO{}, fmt.Errorf("%w: top debe estar entre 1 y %d", domain.ErrInvalidInput, MaxPodiumSize)
	}

	clients, err := uc.clientRepo.List(ctx)
	if err != nil {
		return nil, dto.KPIStatsDTO{}, fmt.Errorf("ranking: %w", err)
	}

	ranked := risk.RankWithScores(clients)
	head, rest := risk.Partition(ranked, top)

	// El podio sale del ranking completo; el resto solo muestra clientes con saldo vencido.
	podium := make([]dto.RankingEntryDTO, 0, len(head))
	for i, r := range head {
		podium = append(podium, toRankingEntry(i+1, r))
	}
	others := make([]dto.RankingEntryDTO, 0, len(rest))
	for i, r := range rest {
		if !r.Client.OverdueAmount.IsPositive() {
			continue
		}
		others = append(others, toRankingEntry(len(head)+i+1, r))
	}

	return &dto.RankingResponseDTO{
		Podium:      podium,
		Others:      others,
		Total:       len(podium) + len(others),
		GeneratedAt: time.Now().UTC(),
	}, toKPIStats(risk.ComputeKPIs(clients)), nil
}

func toRankingEntry(position int, r risk.Ranked) dto.RankingEntryDTO {
	c := r.Client
	return dto.RankingEntryDTO{
		Position:         position,
		ClientID:         c.ID,
		Name:             c.Name,
		Company:          c.Company,
		OverdueAmount:    c.OverdueAmount,
		OverdueFormatted: money.FormatBRL(c.OverdueAmount),
		DaysOverdue:      c.DaysOverdue,
		Score:            r.Score,
		Points:           r.Score.Floor().IntPart(),
		RiskBarPct:       riskBarPct(c.OverdueAmount),
	}
}

// riskBarPct min(vencido / 15000 × 100, 100), redondeado a un decimal.
func riskBarPct(overdue decimal.Decimal) decimal.Decimal {
	pct := overdue.Div(riskBarCeiling).Mul(hundred)
	if pct.GreaterThan(hundred) {
		pct = hundred
	}
	return pct.Round(1)
}
