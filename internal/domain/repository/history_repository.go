package repository

import (
	"context"
	"time"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// HistoryRepository puerto del histórico de movimientos (solo inserción y lectura).
// Todas las lecturas vienen ordenadas por id descendente (más reciente primero).
type HistoryRepository interface {
	Append(ctx context.Context, entry *entity.HistoryEntry) error
	GetAll(ctx context.Context) ([]*entity.HistoryEntry, error)
	GetByProduct(ctx context.Context, productID int64) ([]*entity.HistoryEntry, error)
	// GetByDateRange filtra por created_at en el intervalo semiabierto [from, to).
	GetByDateRange(ctx context.Context, from, to time.Time) ([]*entity.HistoryEntry, error)
	GetByType(ctx context.Context, historyType string) ([]*entity.HistoryEntry, error)
	GetRecent(ctx context.Context, limit int) ([]*entity.HistoryEntry, error)
}
