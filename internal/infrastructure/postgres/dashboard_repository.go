package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura para el painel. Solo considera productos activos.
type DashboardRepo struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository construye el adaptador del painel.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{pool: pool}
}

// GetStockTotals cuenta productos, suma unidades y valor total (quantity × value).
func (r *DashboardRepo) GetStockTotals(ctx context.Context) (repository.StockTotals, error) {
	const query = `
	SELECT
	    COUNT(*)                           AS products,
	    COALESCE(SUM(quantity), 0)         AS units,
	    COALESCE(SUM(quantity * value), 0) AS total_value
	FROM product
	WHERE status = 'active'`

	var t repository.StockTotals
	if err := r.pool.QueryRow(ctx, query).Scan(&t.Products, &t.Units, &t.TotalValue); err != nil {
		return t, fmt.Errorf("dashboard.GetStockTotals: %w", err)
	}
	return t, nil
}

// GetUnitsByCategory agrupa unidades por categoría, en orden alfabético.
func (r *DashboardRepo) GetUnitsByCategory(ctx context.Context) ([]repository.CategoryUnits, error) {
	const query = `
	SELECT category, COUNT(*) AS products, COALESCE(SUM(quantity), 0) AS units
	FROM product
	WHERE status = 'active'
	GROUP BY category
	ORDER BY category`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("dashboard.GetUnitsByCategory: %w", err)
	}
	defer rows.Close()

	results := make([]repository.CategoryUnits, 0)
	for rows.Next() {
		var row repository.CategoryUnits
		if err := rows.Scan(&row.Category, &row.Products, &row.Units); err != nil {
			return nil, fmt.Errorf("dashboard.GetUnitsByCategory scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// CountExpiring cuenta productos activos que vencen en [from, to].
func (r *DashboardRepo) CountExpiring(ctx context.Context, from, to time.Time) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM product WHERE status = 'active' AND expiry BETWEEN $1::date AND $2::date`,
		from, to,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("dashboard.CountExpiring: %w", err)
	}
	return n, nil
}

// CountExpired cuenta productos activos vencidos antes de la fecha dada.
func (r *DashboardRepo) CountExpired(ctx context.Context, before time.Time) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM product WHERE status = 'active' AND expiry < $1::date`, before,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("dashboard.CountExpired: %w", err)
	}
	return n, nil
}
