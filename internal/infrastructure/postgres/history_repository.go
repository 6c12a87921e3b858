package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.HistoryRepository = (*HistoryRepo)(nil)

// El nombre mostrado viene del producto actual; si la fila no existe se usa la copia del evento.
const historySelect = `
	SELECT h.id, h.product_id, COALESCE(p.name, h.product_name), h.type, h.quantity,
	       h.previous_quantity, h.new_quantity, COALESCE(h.observation, ''),
	       COALESCE(h.user_id::text, ''), h.created_at
	FROM history h
	LEFT JOIN product p ON p.id = h.product_id`

// HistoryRepo adaptador del histórico de movimientos (solo INSERT y SELECT).
type HistoryRepo struct {
	q Querier
}

// NewHistoryRepository construye el repositorio. Pasar pool o tx (Querier).
func NewHistoryRepository(q Querier) *HistoryRepo {
	return &HistoryRepo{q: q}
}

// Append inserta un registro y completa ID y CreatedAt.
func (r *HistoryRepo) Append(ctx context.Context, e *entity.HistoryEntry) error {
	query := `
		INSERT INTO history (product_id, product_name, type, quantity, previous_quantity, new_quantity, observation, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::uuid)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		e.ProductID, e.ProductName, e.Type, e.Quantity, e.PreviousQuantity, e.NewQuantity,
		nullString(e.Observation), nullString(e.UserID),
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		if isCheckViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

// GetAll lista todo el histórico, el más reciente primero.
func (r *HistoryRepo) GetAll(ctx context.Context) ([]*entity.HistoryEntry, error) {
	return r.list(ctx, historySelect+` ORDER BY h.id DESC`)
}

// GetByProduct lista el histórico de un producto.
func (r *HistoryRepo) GetByProduct(ctx context.Context, productID int64) ([]*entity.HistoryEntry, error) {
	return r.list(ctx, historySelect+` WHERE h.product_id = $1 ORDER BY h.id DESC`, productID)
}

// GetByDateRange filtra por created_at en [from, to).
func (r *HistoryRepo) GetByDateRange(ctx context.Context, from, to time.Time) ([]*entity.HistoryEntry, error) {
	return r.list(ctx, historySelect+` WHERE h.created_at >= $1 AND h.created_at < $2 ORDER BY h.id DESC`, from, to)
}

// GetByType lista por tipo de movimiento.
func (r *HistoryRepo) GetByType(ctx context.Context, historyType string) ([]*entity.HistoryEntry, error) {
	return r.list(ctx, historySelect+` WHERE h.type = $1 ORDER BY h.id DESC`, historyType)
}

// GetRecent devuelve los últimos limit movimientos.
func (r *HistoryRepo) GetRecent(ctx context.Context, limit int) ([]*entity.HistoryEntry, error) {
	return r.list(ctx, historySelect+` ORDER BY h.id DESC LIMIT $1`, limit)
}

func (r *HistoryRepo) list(ctx context.Context, query string, args ...any) ([]*entity.HistoryEntry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.HistoryEntry, 0)
	for rows.Next() {
		var e entity.HistoryEntry
		if err := rows.Scan(&e.ID, &e.ProductID, &e.ProductName, &e.Type, &e.Quantity,
			&e.PreviousQuantity, &e.NewQuantity, &e.Observation, &e.UserID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
