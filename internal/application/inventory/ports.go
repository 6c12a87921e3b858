package inventory

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que cantidad e histórico se confirmen o se descarten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		historyRepo repository.HistoryRepository,
	) error) error
}

// CacheInvalidator descarta lecturas cacheadas de un producto tras una mutación confirmada.
type CacheInvalidator interface {
	InvalidateProduct(ctx context.Context, productID int64)
}

// MovementRecorder cuenta movimientos confirmados por tipo (métricas).
type MovementRecorder interface {
	ObserveMovement(historyType string)
}

// NopInvalidator se usa cuando no hay caché configurada.
type NopInvalidator struct{}

func (NopInvalidator) InvalidateProduct(context.Context, int64) {}

// NopRecorder se usa cuando no hay métricas.
type NopRecorder struct{}

func (NopRecorder) ObserveMovement(string) {}
