// Package pdf genera el reporte del ranking de riesgo con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: clientes | en mora | tasa | total vencido            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PODIO: top N con índice y puntos                           │
//	│  TABLA: # | Cliente | Empresa | Vencido | Días | Puntos     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/financebi-api/internal/application/analytics"
	"github.com/jhoicas/financebi-api/internal/application/dto"
)

var _ analytics.RankingReportGenerator = (*RankingReport)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 30, Green: 41, Blue: 59}
	colorDanger  = &props.Color{Red: 220, Green: 38, Blue: 38}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// RankingReport implementa analytics.RankingReportGenerator usando Maroto v2.
type RankingReport struct {
	title string
}

// NewRankingReport construye el generador; title aparece en el encabezado.
func NewRankingReport(title string) *RankingReport {
	if title == "" {
		title = "Finance BI"
	}
	return &RankingReport{title: title}
}

// GenerateRankingReport genera el PDF y devuelve sus bytes.
func (g *RankingReport) GenerateRankingReport(ranking *dto.RankingResponseDTO, kpis dto.KPIStatsDTO) ([]byte, error) {
	if ranking == nil {
		return nil, fmt.Errorf("pdf: ranking vacío")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ranking de Risco", true).
		WithAuthor(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, ranking))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(kpiRow(kpis))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if ranking.Total == 0 {
		m.AddRows(row.New(12).Add(col.New(12).Add(
			text.New("Nenhum cliente com saldo vencido.", props.Text{
				Size: 10, Align: align.Center, Top: 4, Color: colorGray,
			}),
		)))
	} else {
		m.AddRows(sectionRow("PÓDIO DE RISCO"))
		m.AddRows(tableHeaderRow())
		m.AddRows(entryRows(ranking.Podium, true)...)
		if len(ranking.Others) > 0 {
			m.AddRows(line.NewRow(3))
			m.AddRows(sectionRow("DEMAIS INADIMPLENTES"))
			m.AddRows(tableHeaderRow())
			m.AddRows(entryRows(ranking.Others, false)...)
		}
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Índice de risco = valor vencido × 1,5 + dias de atraso × 100.", props.Text{
			Size: 6.5, Color: colorGray, Top: 2,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, ranking *dto.RankingResponseDTO) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Ranking de piores pagadores", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Gerado em", props.Text{
				Size: 8, Align: align.Right, Top: 1, Color: colorGray,
			}),
			text.New(ranking.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 7,
			}),
		),
	)
}

func kpiRow(k dto.KPIStatsDTO) core.Row {
	cell := func(label, value string, color *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 6, Align: align.Center, Color: color,
			}),
		)
	}
	return row.New(14).Add(
		cell("Total de clientes", strconv.Itoa(k.TotalClients), colorPrimary),
		cell("Inadimplentes", strconv.Itoa(k.DelinquentClients), colorDanger),
		cell("Taxa de inadimplência", k.DelinquencyRateFormatted, colorDanger),
		cell("Total vencido", k.TotalOverdueFormatted, colorPrimary),
	)
}

func sectionRow(label string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("#", 1, align.Center),
		h("Cliente", 3, align.Left),
		h("Empresa", 3, align.Left),
		h("Vencido", 2, align.Right),
		h("Dias", 1, align.Center),
		h("Pontos", 2, align.Right),
	)
}

// entryRows una fila por posición; el podio se resalta en negrita.
func entryRows(entries []dto.RankingEntryDTO, podium bool) []core.Row {
	style := fontstyle.Normal
	if podium {
		style = fontstyle.Bold
	}
	out := make([]core.Row, 0, len(entries))
	for _, e := range entries {
		out = append(out, row.New(6).Add(
			col.New(1).Add(text.New(strconv.Itoa(e.Position)+"º", props.Text{
				Style: style, Size: 8, Align: align.Center, Top: 1,
			})),
			col.New(3).Add(text.New(e.Name, props.Text{
				Style: style, Size: 8, Top: 1, Left: 1,
			})),
			col.New(3).Add(text.New(e.Company, props.Text{
				Size: 8, Top: 1, Left: 1, Color: colorGray,
			})),
			col.New(2).Add(text.New(e.OverdueFormatted, props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorDanger,
			})),
			col.New(1).Add(text.New(strconv.Itoa(e.DaysOverdue), props.Text{
				Size: 8, Align: align.Center, Top: 1,
			})),
			col.New(2).Add(text.New(formatPoints(e.Points), props.Text{
				Style: style, Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return out
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatPoints inserta puntos de miles: 30100 → "30.100 pts".
func formatPoints(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := n < 0
	if neg {
		s = s[1:]
	}
	l := len(s)
	buf := make([]byte, 0, l+l/3+1)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(s) {
		if i > 0 && (l-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf) + " pts"
}
