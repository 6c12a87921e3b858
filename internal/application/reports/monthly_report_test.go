package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/reports"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
)

// captureRenderer guarda el relatório recibido.
type captureRenderer struct {
	got *reports.MonthlyReport
}

func (c *captureRenderer) Render(_ context.Context, r reports.MonthlyReport) ([]byte, error) {
	c.got = &r
	return []byte("ok"), nil
}
func (c *captureRenderer) ContentType(reports.MonthlyReport) string { return "text/plain" }
func (c *captureRenderer) Extension() string                        { return "txt" }

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func seed(t *testing.T) *memory.Store {
	t.Helper()
	c := &clock{t: time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)}
	store := memory.NewStore().WithClock(c.now)
	ctx := context.Background()

	p := &entity.Product{
		Name: "Soda 2L", Category: entity.CategoryBebida, Supplier: "Acme",
		Expiry: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), Quantity: 10, Value: decimal.RequireFromString("5.00"),
	}
	require.NoError(t, store.Products().Create(ctx, p))

	add := func(at time.Time, typ string, qty int) {
		c.t = at
		require.NoError(t, store.History().Append(ctx, &entity.HistoryEntry{ProductID: p.ID, ProductName: p.Name, Type: typ, Quantity: qty}))
	}
	add(time.Date(2026, 2, 28, 10, 0, 0, 0, time.UTC), entity.HistoryTypeEntry, 10) // febrero
	add(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), entity.HistoryTypeEntry, 5)
	add(time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC), entity.HistoryTypeExit, 3)
	add(time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC), entity.HistoryTypeAdjustment, 2)
	add(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), entity.HistoryTypeExit, 1) // abril
	return store
}

func TestGenerate_FiltraMesOrdenaYTotaliza(t *testing.T) {
	store := seed(t)
	r := &captureRenderer{}
	uc := reports.NewMonthlyReportUseCase(store.History(), map[string]reports.Renderer{dto.ReportFormatCSV: r}, time.UTC)

	file, err := uc.Generate(context.Background(), dto.MonthlyReportRequest{Year: 2026, Month: 3})
	require.NoError(t, err)
	assert.Equal(t, "relatorio_estoque_2026_03.txt", file.Filename)
	assert.Equal(t, "text/plain", file.ContentType)
	assert.Equal(t, []byte("ok"), file.Content)

	require.NotNil(t, r.got)
	require.Len(t, r.got.Entries, 3)
	assert.Less(t, r.got.Entries[0].ID, r.got.Entries[1].ID, "orden cronológico")
	assert.Less(t, r.got.Entries[1].ID, r.got.Entries[2].ID)
	assert.Equal(t, reports.TypeTotals{
		EntryCount: 1, EntryUnits: 5,
		ExitCount: 1, ExitUnits: 3,
		AdjustmentCount: 1, AdjustmentUnits: 2,
	}, r.got.Totals)
}

func TestGenerate_MesVacio_ErrEmptyReport(t *testing.T) {
	store := seed(t)
	uc := reports.NewMonthlyReportUseCase(store.History(), map[string]reports.Renderer{dto.ReportFormatCSV: &captureRenderer{}}, time.UTC)

	_, err := uc.Generate(context.Background(), dto.MonthlyReportRequest{Year: 2026, Month: 5})
	assert.ErrorIs(t, err, domain.ErrEmptyReport)
}

func TestGenerate_FormatoNoRegistrado_Rechaza(t *testing.T) {
	store := seed(t)
	uc := reports.NewMonthlyReportUseCase(store.History(), map[string]reports.Renderer{dto.ReportFormatCSV: &captureRenderer{}}, time.UTC)

	_, err := uc.Generate(context.Background(), dto.MonthlyReportRequest{Year: 2026, Month: 3, Format: dto.ReportFormatPDF})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Generate(context.Background(), dto.MonthlyReportRequest{Year: 2026, Month: 13})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
