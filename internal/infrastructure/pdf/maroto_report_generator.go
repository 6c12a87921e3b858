// Package pdf genera el relatório mensal de movimentações en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Relatório de Estoque  │  Mês/Ano + Gerado em        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: ID | Data/Hora | Produto | Tipo | Qtd | Observação   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Entradas / Saídas / Ajustes                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/estoque-api/internal/application/reports"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

const dateTimeLayout = "02/01/2006 15:04:05"

// ── Generator ─────────────────────────────────────────────────────────────────

var _ reports.Renderer = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa reports.Renderer usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

func (g *MarotoReportGenerator) Extension() string                        { return "pdf" }
func (g *MarotoReportGenerator) ContentType(reports.MonthlyReport) string { return "application/pdf" }

// Render genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) Render(_ context.Context, r reports.MonthlyReport) ([]byte, error) {
	loc := r.Location
	if loc == nil {
		loc = time.UTC
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de Estoque "+monthLabel(r.Month, r.Year), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r, loc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(r.Entries, loc)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(r.Totals)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r reports.MonthlyReport, loc *time.Location) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("RELATÓRIO DE ESTOQUE", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Movimentações do mês", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(monthLabel(r.Month, r.Year), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Gerado em: "+r.GeneratedAt.In(loc).Format(dateTimeLayout), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("ID", 1, align.Center),
		h("Data/Hora", 2, align.Left),
		h("Produto", 3, align.Left),
		h("Tipo", 1, align.Center),
		h("Qtd.", 1, align.Right),
		h("Observação", 4, align.Left),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableDetailRows(entries []*entity.HistoryEntry, loc *time.Location) []core.Row {
	result := make([]core.Row, 0, len(entries))
	for i, e := range entries {
		r := row.New(7).Add(
			col.New(1).Add(text.New(strconv.FormatInt(e.ID, 10),
				props.Text{Size: 7.5, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(e.CreatedAt.In(loc).Format(dateTimeLayout),
				props.Text{Size: 7.5, Top: 1, Left: 1})),
			col.New(3).Add(text.New(e.ProductName,
				props.Text{Size: 7.5, Top: 1, Left: 1})),
			col.New(1).Add(text.New(entity.HistoryTypeLabel(e.Type),
				props.Text{Size: 7.5, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(printer.Sprintf("%d", e.Quantity),
				props.Text{Size: 7.5, Align: align.Right, Top: 1, Right: 1})),
			col.New(4).Add(text.New(e.Observation,
				props.Text{Size: 7, Top: 1, Left: 1, Color: colorGray})),
		)
		if i%2 == 1 {
			r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, r)
	}
	return result
}

func totalsRows(t reports.TypeTotals) []core.Row {
	line := func(label string, count, units int) core.Row {
		return row.New(6).Add(
			col.New(6),
			col.New(3).Add(text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
			})),
			col.New(3).Add(text.New(
				printer.Sprintf("%d mov. / %d un.", count, units),
				props.Text{Size: 9, Align: align.Right, Right: 1},
			)),
		)
	}
	return []core.Row{
		line("Entradas:", t.EntryCount, t.EntryUnits),
		line("Saídas:", t.ExitCount, t.ExitUnits),
		line("Ajustes:", t.AdjustmentCount, t.AdjustmentUnits),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

// monthLabel devuelve una etiqueta legible del mes, ej: "Março 2026".
func monthLabel(m time.Month, year int) string {
	months := [...]string{
		"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
		"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
	}
	return fmt.Sprintf("%s %d", months[m-1], year)
}
