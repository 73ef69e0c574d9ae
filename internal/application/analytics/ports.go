package analytics

import "github.com/jhoicas/financebi-api/internal/application/dto"

// RankingReportGenerator puerto para renderizar el ranking de riesgo como documento.
type RankingReportGenerator interface {
	GenerateRankingReport(ranking *dto.RankingResponseDTO, kpis dto.KPIStatsDTO) ([]byte, error)
}
