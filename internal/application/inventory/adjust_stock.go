package inventory

import (
	"context"
	"unicode/utf8"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// MaxObservationLength límite de caracteres de la observação.
const MaxObservationLength = 1000

// AdjustStockInput entrada del movimiento. UserID vacío si no hay operador autenticado.
type AdjustStockInput struct {
	ProductID   int64
	Type        string
	Quantity    int
	Observation string
	UserID      string
}

// AdjustStockUseCase registra entradas, saídas y ajustes de forma transaccional:
// bloquea la fila del producto (SELECT FOR UPDATE), recalcula desde la BD,
// actualiza la cantidad y agrega el histórico en la misma tx.
type AdjustStockUseCase struct {
	txRunner    TxRunner
	invalidator CacheInvalidator
	recorder    MovementRecorder
}

// NewAdjustStockUseCase construye el caso de uso. invalidator/recorder pueden ser nil.
func NewAdjustStockUseCase(txRunner TxRunner, invalidator CacheInvalidator, recorder MovementRecorder) *AdjustStockUseCase {
	if invalidator == nil {
		invalidator = NopInvalidator{}
	}
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &AdjustStockUseCase{txRunner: txRunner, invalidator: invalidator, recorder: recorder}
}

// Adjust aplica el movimiento. Errores: ErrInvalidInput, ErrNotFound, ErrConflict (producto inactivo),
// ErrInsufficientStock (saída mayor que el estoque). Ante cualquier error no queda nada escrito.
func (uc *AdjustStockUseCase) Adjust(ctx context.Context, in AdjustStockInput) (*dto.StockMovementResponse, error) {
	verr := &domain.ValidationError{}
	if in.ProductID <= 0 {
		verr.Add("productId", "Produto inválido")
	}
	if !entity.IsValidHistoryType(in.Type) {
		verr.Add("type", "Tipo deve ser: entry, exit ou adjustment")
	}
	if utf8.RuneCountInString(in.Observation) > MaxObservationLength {
		verr.Add("observation", "Observação não pode ter mais de 1000 caracteres")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	observation := in.Observation
	if observation == "" {
		observation = "Ajuste de estoque: " + entity.HistoryTypeLabel(in.Type)
	}

	var out dto.StockMovementResponse
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, historyRepo repository.HistoryRepository) error {
		product, err := productRepo.GetByIDForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if !product.IsActive() {
			return domain.ErrConflict
		}

		adj, err := inventory.Apply(in.Type, product.Quantity, in.Quantity)
		if err != nil {
			return err
		}
		if err := productRepo.UpdateQuantity(ctx, product.ID, adj.New); err != nil {
			return err
		}

		prev, next := adj.Previous, adj.New
		entry := &entity.HistoryEntry{
			ProductID:        product.ID,
			ProductName:      product.Name,
			Type:             in.Type,
			Quantity:         adj.Logged,
			PreviousQuantity: &prev,
			NewQuantity:      &next,
			Observation:      observation,
			UserID:           in.UserID,
		}
		if err := historyRepo.Append(ctx, entry); err != nil {
			return err
		}

		product.Quantity = adj.New
		out = dto.StockMovementResponse{
			ProductID:        product.ID,
			Type:             in.Type,
			Quantity:         adj.Logged,
			PreviousQuantity: adj.Previous,
			NewQuantity:      adj.New,
			HistoryID:        entry.ID,
			Product:          dto.FromProduct(product),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.invalidator.InvalidateProduct(ctx, in.ProductID)
	uc.recorder.ObserveMovement(in.Type)
	return &out, nil
}
