package reports

import (
	"context"
	"time"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// TypeTotals suma de cantidades y número de movimientos por tipo.
type TypeTotals struct {
	EntryCount, EntryUnits           int
	ExitCount, ExitUnits             int
	AdjustmentCount, AdjustmentUnits int
}

// MonthlyReport datos del relatório mensal, en orden cronológico.
type MonthlyReport struct {
	Year        int
	Month       time.Month
	Location    *time.Location // zona usada para Data/Hora
	Encoding    string         // solo CSV: utf-8 (defecto) o windows-1252
	Entries     []*entity.HistoryEntry
	Totals      TypeTotals
	GeneratedAt time.Time
}

// Renderer serializa el relatório en un formato concreto (CSV, PDF, XML).
type Renderer interface {
	Render(ctx context.Context, r MonthlyReport) ([]byte, error)
	ContentType(r MonthlyReport) string
	Extension() string
}
