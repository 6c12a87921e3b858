package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StockTotals agregados del estoque activo.
type StockTotals struct {
	Products   int
	Units      int64
	TotalValue decimal.Decimal // Σ quantity × value
}

// CategoryUnits unidades en estoque por categoría.
type CategoryUnits struct {
	Category string
	Products int
	Units    int64
}

// DashboardRepository consultas de solo lectura para el painel principal.
type DashboardRepository interface {
	GetStockTotals(ctx context.Context) (StockTotals, error)
	GetUnitsByCategory(ctx context.Context) ([]CategoryUnits, error)
	CountExpiring(ctx context.Context, from, to time.Time) (int, error)
	CountExpired(ctx context.Context, before time.Time) (int, error)
}
