// Package analytics contiene el caso de uso del painel principal del estoque.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

const (
	dashboardRecentMovements = 5 // movimientos en el widget "últimas movimentações"
	DefaultExpiringDays      = 7
)

// DashboardUseCase genera el resumen del estoque activo.
//
// Fuente de datos: DashboardRepository (consultas read-only) y los últimos
// registros del histórico.
type DashboardUseCase struct {
	dashboardRepo repository.DashboardRepository
	historyRepo   repository.HistoryRepository
	loc           *time.Location
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(dashboardRepo repository.DashboardRepository, historyRepo repository.HistoryRepository, loc *time.Location) *DashboardUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardUseCase{dashboardRepo: dashboardRepo, historyRepo: historyRepo, loc: loc, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cinco consultas en paralelo:
//  1. GetStockTotals        → TotalProducts, TotalUnits, TotalValue
//  2. GetUnitsByCategory    → ByCategory
//  3. CountExpiring(hoy..N) → ExpiringSoon
//  4. CountExpired(hoy)     → Expired
//  5. GetRecent(5)          → RecentMovements
func (uc *DashboardUseCase) GetSummary(ctx context.Context, expiringDays int) (*dto.DashboardSummaryDTO, error) {
	if expiringDays <= 0 {
		expiringDays = DefaultExpiringDays
	}
	now := uc.now().In(uc.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	limit := today.AddDate(0, 0, expiringDays)

	// ── Goroutines para paralelizar las consultas DB ──────────────────────────
	type totalsResult struct {
		totals repository.StockTotals
		err    error
	}
	type categoryResult struct {
		rows []repository.CategoryUnits
		err  error
	}
	type countResult struct {
		n   int
		err error
	}
	type recentResult struct {
		dtos []dto.HistoryResponse
		err  error
	}

	totalsCh := make(chan totalsResult, 1)
	categoryCh := make(chan categoryResult, 1)
	expiringCh := make(chan countResult, 1)
	expiredCh := make(chan countResult, 1)
	recentCh := make(chan recentResult, 1)

	go func() {
		t, err := uc.dashboardRepo.GetStockTotals(ctx)
		totalsCh <- totalsResult{t, err}
	}()
	go func() {
		rows, err := uc.dashboardRepo.GetUnitsByCategory(ctx)
		categoryCh <- categoryResult{rows, err}
	}()
	go func() {
		n, err := uc.dashboardRepo.CountExpiring(ctx, today, limit)
		expiringCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.dashboardRepo.CountExpired(ctx, today)
		expiredCh <- countResult{n, err}
	}()
	go func() {
		list, err := uc.historyRepo.GetRecent(ctx, dashboardRecentMovements)
		recentCh <- recentResult{dto.FromHistoryList(list), err}
	}()

	totals := <-totalsCh
	categories := <-categoryCh
	expiring := <-expiringCh
	expired := <-expiredCh
	recent := <-recentCh

	if totals.err != nil {
		return nil, fmt.Errorf("dashboard: totales de estoque: %w", totals.err)
	}
	if categories.err != nil {
		return nil, fmt.Errorf("dashboard: unidades por categoría: %w", categories.err)
	}
	if expiring.err != nil {
		return nil, fmt.Errorf("dashboard: productos por vencer: %w", expiring.err)
	}
	if expired.err != nil {
		return nil, fmt.Errorf("dashboard: productos vencidos: %w", expired.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: últimos movimientos: %w", recent.err)
	}

	byCategory := make([]dto.CategoryUnitsDTO, 0, len(categories.rows))
	for _, c := range categories.rows {
		byCategory = append(byCategory, dto.CategoryUnitsDTO{Category: c.Category, Products: c.Products, Units: c.Units})
	}

	return &dto.DashboardSummaryDTO{
		TotalProducts:   totals.totals.Products,
		TotalUnits:      totals.totals.Units,
		TotalValue:      totals.totals.TotalValue.Round(2),
		ExpiringDays:    expiringDays,
		ExpiringSoon:    expiring.n,
		Expired:         expired.n,
		ByCategory:      byCategory,
		RecentMovements: recent.dtos,
		GeneratedAt:     now,
	}, nil
}
