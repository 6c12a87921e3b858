// Package reports genera el relatório mensal de movimentações en los formatos registrados.
package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/validation"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// MonthlyReportUseCase arma el relatório de un mes a partir del histórico.
type MonthlyReportUseCase struct {
	historyRepo repository.HistoryRepository
	renderers   map[string]Renderer
	loc         *time.Location
	now         func() time.Time
}

// NewMonthlyReportUseCase construye el caso de uso. renderers se indexa por formato (csv, pdf, xml).
func NewMonthlyReportUseCase(historyRepo repository.HistoryRepository, renderers map[string]Renderer, loc *time.Location) *MonthlyReportUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &MonthlyReportUseCase{historyRepo: historyRepo, renderers: renderers, loc: loc, now: time.Now}
}

// Generate devuelve el archivo del mes pedido. domain.ErrEmptyReport si no hubo movimientos.
func (uc *MonthlyReportUseCase) Generate(ctx context.Context, in dto.MonthlyReportRequest) (*dto.ReportFile, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	format := in.Format
	if format == "" {
		format = dto.ReportFormatCSV
	}
	renderer, ok := uc.renderers[format]
	if !ok {
		return nil, domain.NewValidationError("format", "Formato não suportado: "+format)
	}

	from := time.Date(in.Year, time.Month(in.Month), 1, 0, 0, 0, 0, uc.loc)
	to := from.AddDate(0, 1, 0)
	entries, err := uc.historyRepo.GetByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("relatório: histórico do mês: %w", err)
	}
	if len(entries) == 0 {
		return nil, domain.ErrEmptyReport
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })

	report := MonthlyReport{
		Year:        in.Year,
		Month:       time.Month(in.Month),
		Location:    uc.loc,
		Encoding:    in.Encoding,
		Entries:     entries,
		Totals:      totals(entries),
		GeneratedAt: uc.now().In(uc.loc),
	}
	content, err := renderer.Render(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("relatório: gerar %s: %w", format, err)
	}
	return &dto.ReportFile{
		Filename:    fmt.Sprintf("relatorio_estoque_%04d_%02d.%s", in.Year, in.Month, renderer.Extension()),
		ContentType: renderer.ContentType(report),
		Content:     content,
	}, nil
}

func totals(entries []*entity.HistoryEntry) TypeTotals {
	var t TypeTotals
	for _, e := range entries {
		switch e.Type {
		case entity.HistoryTypeEntry:
			t.EntryCount++
			t.EntryUnits += e.Quantity
		case entity.HistoryTypeExit:
			t.ExitCount++
			t.ExitUnits += e.Quantity
		default:
			t.AdjustmentCount++
			t.AdjustmentUnits += e.Quantity
		}
	}
	return t
}
