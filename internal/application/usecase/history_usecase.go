package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/validation"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// HistoryUseCase lecturas del histórico y registro manual de movimientos.
type HistoryUseCase struct {
	repo        repository.HistoryRepository
	productRepo repository.ProductRepository
	loc         *time.Location
}

// NewHistoryUseCase construye el caso de uso. loc define el día calendario de los filtros por fecha.
func NewHistoryUseCase(repo repository.HistoryRepository, productRepo repository.ProductRepository, loc *time.Location) *HistoryUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &HistoryUseCase{repo: repo, productRepo: productRepo, loc: loc}
}

// Append registra un movimiento manual. No altera la cantidad del producto:
// para mover estoque se usa AdjustStockUseCase.
func (uc *HistoryUseCase) Append(ctx context.Context, in dto.CreateHistoryRequest, userID string) (*dto.HistoryResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	entry := &entity.HistoryEntry{
		ProductID:        product.ID,
		ProductName:      product.Name,
		Type:             in.Type,
		Quantity:         *in.Quantity,
		PreviousQuantity: in.PreviousQuantity,
		NewQuantity:      in.NewQuantity,
		Observation:      in.Observation,
		UserID:           userID,
	}
	if err := uc.repo.Append(ctx, entry); err != nil {
		return nil, err
	}
	out := dto.FromHistory(entry)
	return &out, nil
}

// List devuelve todo el histórico, el más reciente primero.
func (uc *HistoryUseCase) List(ctx context.Context) ([]dto.HistoryResponse, error) {
	list, err := uc.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return dto.FromHistoryList(list), nil
}

// ByProduct devuelve el histórico de un producto existente.
func (uc *HistoryUseCase) ByProduct(ctx context.Context, productID int64) ([]dto.HistoryResponse, error) {
	if _, err := uc.productRepo.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	list, err := uc.repo.GetByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return dto.FromHistoryList(list), nil
}

// ByDateRange filtra por fechas calendario inclusivas (AAAA-MM-DD) en la zona configurada.
func (uc *HistoryUseCase) ByDateRange(ctx context.Context, start, end string) ([]dto.HistoryResponse, error) {
	verr := &domain.ValidationError{}
	from, okFrom := parseDate(start)
	if !okFrom {
		verr.Add("start", "Data inicial inválida (use AAAA-MM-DD)")
	}
	to, okTo := parseDate(end)
	if !okTo {
		verr.Add("end", "Data final inválida (use AAAA-MM-DD)")
	}
	if okFrom && okTo && to.Before(from) {
		verr.Add("end", "Data final deve ser igual ou posterior à data inicial")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	lo := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, uc.loc)
	hi := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, uc.loc).AddDate(0, 0, 1)
	list, err := uc.repo.GetByDateRange(ctx, lo, hi)
	if err != nil {
		return nil, err
	}
	return dto.FromHistoryList(list), nil
}

// ByType filtra por tipo de movimiento.
func (uc *HistoryUseCase) ByType(ctx context.Context, historyType string) ([]dto.HistoryResponse, error) {
	if !entity.IsValidHistoryType(historyType) {
		return nil, domain.NewValidationError("type", "Tipo deve ser: entry, exit ou adjustment")
	}
	list, err := uc.repo.GetByType(ctx, historyType)
	if err != nil {
		return nil, err
	}
	return dto.FromHistoryList(list), nil
}

// Query combina los filtros de GET /api/history: rango de fechas y/o tipo.
func (uc *HistoryUseCase) Query(ctx context.Context, q dto.HistoryQuery) ([]dto.HistoryResponse, error) {
	if err := validation.Struct(q); err != nil {
		return nil, err
	}
	switch {
	case q.Start != "" || q.End != "":
		if q.End == "" {
			q.End = q.Start
		}
		if q.Start == "" {
			q.Start = q.End
		}
		list, err := uc.ByDateRange(ctx, q.Start, q.End)
		if err != nil || q.Type == "" {
			return list, err
		}
		filtered := make([]dto.HistoryResponse, 0, len(list))
		for _, h := range list {
			if h.Type == q.Type {
				filtered = append(filtered, h)
			}
		}
		return filtered, nil
	case q.Type != "":
		return uc.ByType(ctx, q.Type)
	}
	return uc.List(ctx)
}
