package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalProducts int             `json:"totalProducts"`
	TotalUnits    int64           `json:"totalUnits"`
	TotalValue    decimal.Decimal `json:"totalValue"` // Σ quantity × value
	ExpiringDays  int             `json:"expiringDays"`
	ExpiringSoon  int             `json:"expiringSoon"`
	Expired       int             `json:"expired"`

	ByCategory      []CategoryUnitsDTO `json:"byCategory"`
	RecentMovements []HistoryResponse  `json:"recentMovements"` // últimos 5

	GeneratedAt time.Time `json:"generatedAt"`
}

// CategoryUnitsDTO unidades por categoría para el gráfico del painel.
type CategoryUnitsDTO struct {
	Category string `json:"category"`
	Products int    `json:"products"`
	Units    int64  `json:"units"`
}
