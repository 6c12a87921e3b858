package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/application/validation"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// DefaultExpiringDays ventana por defecto de "vence em breve".
const DefaultExpiringDays = 7

var sortFields = map[string]string{
	"id":        repository.SortByID,
	"name":      repository.SortByName,
	"category":  repository.SortByCategory,
	"expiry":    repository.SortByExpiry,
	"quantity":  repository.SortByQuantity,
	"value":     repository.SortByValue,
	"createdAt": repository.SortByCreatedAt,
}

// ProductUseCase casos de uso de productos. Toda escritura que cambia el estoque
// registra su movimiento en el histórico dentro de la misma transacción.
type ProductUseCase struct {
	repo        repository.ProductRepository // lecturas (puede ir cacheado)
	txRunner    inventory.TxRunner
	invalidator inventory.CacheInvalidator
	recorder    inventory.MovementRecorder
	loc         *time.Location // define "hoy" para validade y vencimientos
	now         func() time.Time
}

// NewProductUseCase construye el caso de uso. invalidator/recorder pueden ser nil; loc nil es UTC.
func NewProductUseCase(
	repo repository.ProductRepository,
	txRunner inventory.TxRunner,
	invalidator inventory.CacheInvalidator,
	recorder inventory.MovementRecorder,
	loc *time.Location,
) *ProductUseCase {
	if invalidator == nil {
		invalidator = inventory.NopInvalidator{}
	}
	if recorder == nil {
		recorder = inventory.NopRecorder{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ProductUseCase{repo: repo, txRunner: txRunner, invalidator: invalidator, recorder: recorder, loc: loc, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *ProductUseCase) WithClock(now func() time.Time) *ProductUseCase {
	uc.now = now
	return uc
}

func (uc *ProductUseCase) today() time.Time {
	return dateOnly(uc.now().In(uc.loc))
}

// Create valida, persiste el producto y registra la entrada inicial en el histórico.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest, userID string) (*dto.ProductResponse, error) {
	verr := asValidationError(validation.Struct(in))
	expiry := uc.checkExpiry(verr, in.Expiry)
	checkValue(verr, in.Value)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	product := &entity.Product{
		Name:     in.Name,
		Category: in.Category,
		Supplier: in.Supplier,
		Expiry:   expiry,
		Quantity: *in.Quantity,
		Value:    in.Value.Round(2),
	}
	observation := in.Observation
	if observation == "" {
		observation = "Entrada inicial do produto " + in.Name
	}

	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, historyRepo repository.HistoryRepository) error {
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		prev, next := 0, product.Quantity
		return historyRepo.Append(ctx, &entity.HistoryEntry{
			ProductID:        product.ID,
			ProductName:      product.Name,
			Type:             entity.HistoryTypeEntry,
			Quantity:         product.Quantity,
			PreviousQuantity: &prev,
			NewQuantity:      &next,
			Observation:      observation,
			UserID:           userID,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.invalidator.InvalidateProduct(ctx, product.ID)
	uc.recorder.ObserveMovement(entity.HistoryTypeEntry)
	out := dto.FromProduct(product)
	return &out, nil
}

// GetByID obtiene un producto (activo o no).
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.FromProduct(product)
	return &out, nil
}

// List devuelve todos los productos activos, el más reciente primero.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return dto.FromProducts(list), nil
}

// Search lista con filtros y paginación. Sin status explícito solo devuelve activos.
func (uc *ProductUseCase) Search(ctx context.Context, q dto.ProductQuery) (*dto.ProductListResponse, error) {
	if err := validation.Struct(q); err != nil {
		return nil, err
	}
	q.DefaultPage()

	filter := repository.ProductFilter{
		Status:   q.Status,
		Category: q.Category,
		Search:   q.Search,
		SortBy:   repository.SortByCreatedAt,
		SortDesc: true,
		Limit:    q.Limit,
		Offset:   q.Offset(),
	}
	if filter.Status == "" {
		filter.Status = entity.StatusActive
	}
	if s, ok := sortFields[q.SortBy]; ok {
		filter.SortBy = s
	}
	if q.SortOrder != "" {
		filter.SortDesc = q.SortOrder == "DESC" || q.SortOrder == "desc"
	}
	today := uc.today()
	if q.Expiring > 0 {
		to := today.AddDate(0, 0, q.Expiring)
		filter.ExpiringFrom, filter.ExpiringTo = &today, &to
	}
	if q.Expired {
		filter.ExpiredBefore = &today
	}

	list, total, err := uc.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{
		Items: dto.FromProducts(list),
		Page:  dto.NewPageResponse(q.PageRequest, total),
	}, nil
}

// Expiring devuelve los productos activos que vencen en [hoy, hoy+days]. days=0 usa 7.
func (uc *ProductUseCase) Expiring(ctx context.Context, days int) ([]dto.ProductResponse, error) {
	if days == 0 {
		days = DefaultExpiringDays
	}
	if days < 0 {
		return nil, domain.NewValidationError("days", "Deve ser maior ou igual a 1")
	}
	today := uc.today()
	list, err := uc.repo.GetExpiring(ctx, today, today.AddDate(0, 0, days))
	if err != nil {
		return nil, err
	}
	return dto.FromProducts(list), nil
}

// Update aplica una actualización parcial. Si cambia la cantidad se registra un ajuste.
// Un producto inactivo no se edita (ErrConflict).
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest, userID string) (*dto.ProductResponse, error) {
	if in.IsEmpty() {
		return nil, domain.NewValidationError("body", "Informe pelo menos um campo para atualizar")
	}
	verr := asValidationError(validation.Struct(in))
	var expiry time.Time
	if in.Expiry != nil {
		expiry = uc.checkExpiry(verr, *in.Expiry)
	}
	if in.Value != nil {
		checkValue(verr, *in.Value)
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	var (
		product      *entity.Product
		quantityMove bool
	)
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, historyRepo repository.HistoryRepository) error {
		p, err := productRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !p.IsActive() {
			return domain.ErrConflict
		}
		previous := p.Quantity
		if in.Name != nil {
			p.Name = *in.Name
		}
		if in.Category != nil {
			p.Category = *in.Category
		}
		if in.Supplier != nil {
			p.Supplier = *in.Supplier
		}
		if in.Expiry != nil {
			p.Expiry = expiry
		}
		if in.Quantity != nil {
			p.Quantity = *in.Quantity
		}
		if in.Value != nil {
			p.Value = in.Value.Round(2)
		}
		if err := productRepo.Update(ctx, p); err != nil {
			return err
		}
		product = p

		if p.Quantity == previous {
			return nil
		}
		quantityMove = true
		diff := p.Quantity - previous
		if diff < 0 {
			diff = -diff
		}
		prev, next := previous, p.Quantity
		return historyRepo.Append(ctx, &entity.HistoryEntry{
			ProductID:        p.ID,
			ProductName:      p.Name,
			Type:             entity.HistoryTypeAdjustment,
			Quantity:         diff,
			PreviousQuantity: &prev,
			NewQuantity:      &next,
			Observation:      "Ajuste de estoque: Ajuste",
			UserID:           userID,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.invalidator.InvalidateProduct(ctx, id)
	if quantityMove {
		uc.recorder.ObserveMovement(entity.HistoryTypeAdjustment)
	}
	out := dto.FromProduct(product)
	return &out, nil
}

// Delete da de baja el producto: registra la saída del estoque restante y lo marca inactivo.
// Borrar un producto ya inactivo no registra movimientos.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64, userID string) error {
	var logged bool
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, historyRepo repository.HistoryRepository) error {
		p, err := productRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p.IsActive() && p.Quantity > 0 {
			prev, next := p.Quantity, 0
			if err := historyRepo.Append(ctx, &entity.HistoryEntry{
				ProductID:        p.ID,
				ProductName:      p.Name,
				Type:             entity.HistoryTypeExit,
				Quantity:         p.Quantity,
				PreviousQuantity: &prev,
				NewQuantity:      &next,
				Observation:      "Produto removido do sistema: " + p.Name,
				UserID:           userID,
			}); err != nil {
				return err
			}
			if err := productRepo.UpdateQuantity(ctx, p.ID, 0); err != nil {
				return err
			}
			logged = true
		}
		return productRepo.SoftDelete(ctx, p.ID)
	})
	if err != nil {
		return err
	}
	uc.invalidator.InvalidateProduct(ctx, id)
	if logged {
		uc.recorder.ObserveMovement(entity.HistoryTypeExit)
	}
	return nil
}

// checkExpiry parsea la validade y exige que no sea anterior a hoy.
func (uc *ProductUseCase) checkExpiry(verr *domain.ValidationError, raw string) time.Time {
	if raw == "" {
		return time.Time{} // "required" ya lo reporta
	}
	t, ok := parseDate(raw)
	if !ok {
		verr.Add("expiry", "Data de validade deve ser uma data válida")
		return time.Time{}
	}
	if t.Before(uc.today()) {
		verr.Add("expiry", "Data de validade não pode ser anterior à data atual")
	}
	return t
}

// checkValue exige valor > 0 con como máximo dos decimales.
func checkValue(verr *domain.ValidationError, v decimal.Decimal) {
	if !v.GreaterThan(decimal.Zero) {
		verr.Add("value", "Valor deve ser maior que zero")
		return
	}
	if !v.Equal(v.Round(2)) {
		verr.Add("value", "Valor deve ter no máximo 2 casas decimais")
	}
}

// asValidationError normaliza el resultado de validation.Struct para seguir acumulando campos.
func asValidationError(err error) *domain.ValidationError {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr
	}
	return &domain.ValidationError{}
}
