package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
)

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func intPtr(v int) *int { return &v }

func newProductUC() (*usecase.ProductUseCase, *memory.Store) {
	store := memory.NewStore().WithClock(clock)
	uc := usecase.NewProductUseCase(store.Products(), store, nil, nil, time.UTC).WithClock(clock)
	return uc, store
}

func sodaRequest() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name:     "Soda 2L",
		Category: entity.CategoryBebida,
		Supplier: "Acme",
		Expiry:   "2026-04-01",
		Quantity: intPtr(10),
		Value:    decimal.RequireFromString("5.50"),
	}
}

// ─── Create ──────────────────────────────────────────────────────────────────

func TestCreate_PersisteYRegistraEntradaInicial(t *testing.T) {
	uc, store := newProductUC()
	ctx := context.Background()

	out, err := uc.Create(ctx, sodaRequest(), "")
	require.NoError(t, err)
	assert.Equal(t, "Soda 2L", out.Name)
	assert.Equal(t, "2026-04-01", out.Expiry)
	assert.Equal(t, entity.StatusActive, out.Status)
	assert.True(t, decimal.RequireFromString("55.00").Equal(out.StockValue))

	got, err := uc.GetByID(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, out.ID, got.ID)
	assert.Equal(t, 10, got.Quantity)

	hist, err := store.History().GetByProduct(ctx, out.ID)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, entity.HistoryTypeEntry, hist[0].Type)
	assert.Equal(t, 10, hist[0].Quantity)
	assert.Equal(t, 0, *hist[0].PreviousQuantity)
	assert.Equal(t, 10, *hist[0].NewQuantity)
	assert.Equal(t, "Entrada inicial do produto Soda 2L", hist[0].Observation)
}

func TestCreate_ValidadeNoPassado_Rechaza(t *testing.T) {
	uc, store := newProductUC()
	req := sodaRequest()
	req.Expiry = "2026-03-09"

	_, err := uc.Create(context.Background(), req, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "expiry", verr.Fields[0].Field)

	all, _ := store.History().GetAll(context.Background())
	assert.Empty(t, all, "nada debe escribirse si la validación falla")
}

func TestCreate_ValidadeHoy_Acepta(t *testing.T) {
	uc, _ := newProductUC()
	req := sodaRequest()
	req.Expiry = "2026-03-10"

	_, err := uc.Create(context.Background(), req, "")
	assert.NoError(t, err)
}

func TestCreate_ValorConTresDecimales_Rechaza(t *testing.T) {
	uc, _ := newProductUC()
	req := sodaRequest()
	req.Value = decimal.RequireFromString("1.234")

	_, err := uc.Create(context.Background(), req, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_ValorCero_Rechaza(t *testing.T) {
	uc, _ := newProductUC()
	req := sodaRequest()
	req.Value = decimal.Zero

	_, err := uc.Create(context.Background(), req, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_CategoriaInvalida_Rechaza(t *testing.T) {
	uc, _ := newProductUC()
	req := sodaRequest()
	req.Category = "Limpeza"

	_, err := uc.Create(context.Background(), req, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─── Lecturas ────────────────────────────────────────────────────────────────

func TestGetByID_Inexistente_NotFound(t *testing.T) {
	uc, _ := newProductUC()
	_, err := uc.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExpiring_LimitesInclusivos(t *testing.T) {
	uc, _ := newProductUC()
	ctx := context.Background()

	for _, e := range []string{"2026-03-10", "2026-03-17", "2026-03-18"} {
		req := sodaRequest()
		req.Name = "Produto " + e
		req.Expiry = e
		_, err := uc.Create(ctx, req, "")
		require.NoError(t, err)
	}

	list, err := uc.Expiring(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2026-03-10", list[0].Expiry)
	assert.Equal(t, "2026-03-17", list[1].Expiry)

	_, err = uc.Expiring(ctx, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearch_PaginaYFiltra(t *testing.T) {
	uc, _ := newProductUC()
	ctx := context.Background()
	for i, cat := range []string{entity.CategoryBebida, entity.CategoryDoce, entity.CategoryBebida} {
		req := sodaRequest()
		req.Name = []string{"Soda", "Bala", "Suco"}[i]
		req.Category = cat
		_, err := uc.Create(ctx, req, "")
		require.NoError(t, err)
	}

	out, err := uc.Search(ctx, dto.ProductQuery{Category: entity.CategoryBebida, PageRequest: dto.PageRequest{Page: 1, Limit: 1}})
	require.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, 2, out.Page.Total)
	assert.Equal(t, 2, out.Page.TotalPages)

	out, err = uc.Search(ctx, dto.ProductQuery{Search: "bal"})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Bala", out.Items[0].Name)
	assert.Equal(t, 10, out.Page.Limit)
}

// ─── Update / Delete ─────────────────────────────────────────────────────────

func TestUpdate_CambioDeCantidad_RegistraAjuste(t *testing.T) {
	uc, store := newProductUC()
	ctx := context.Background()
	p, err := uc.Create(ctx, sodaRequest(), "")
	require.NoError(t, err)

	out, err := uc.Update(ctx, p.ID, dto.UpdateProductRequest{Quantity: intPtr(4)}, "")
	require.NoError(t, err)
	assert.Equal(t, 4, out.Quantity)

	hist, err := store.History().GetByProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	last := hist[0]
	assert.Equal(t, entity.HistoryTypeAdjustment, last.Type)
	assert.Equal(t, 6, last.Quantity)
	assert.Equal(t, 10, *last.PreviousQuantity)
	assert.Equal(t, 4, *last.NewQuantity)
	assert.Equal(t, "Ajuste de estoque: Ajuste", last.Observation)
}

func TestUpdate_SinCambioDeCantidad_NoRegistra(t *testing.T) {
	uc, store := newProductUC()
	ctx := context.Background()
	p, err := uc.Create(ctx, sodaRequest(), "")
	require.NoError(t, err)

	name := "Soda 3L"
	out, err := uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: &name}, "")
	require.NoError(t, err)
	assert.Equal(t, "Soda 3L", out.Name)

	hist, _ := store.History().GetByProduct(ctx, p.ID)
	assert.Len(t, hist, 1)
}

func TestUpdate_Vacio_Rechaza(t *testing.T) {
	uc, _ := newProductUC()
	_, err := uc.Update(context.Background(), 1, dto.UpdateProductRequest{}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_ProductoInactivo_Conflict(t *testing.T) {
	uc, store := newProductUC()
	ctx := context.Background()
	p, err := uc.Create(ctx, sodaRequest(), "")
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, p.ID, ""))

	_, err = uc.Update(ctx, p.ID, dto.UpdateProductRequest{Quantity: intPtr(8)}, "")
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)
	hist, _ := store.History().GetByProduct(ctx, p.ID)
	assert.Len(t, hist, 2, "solo entrada inicial y saída de la baja")
}

func TestDelete_RegistraSaidaYOcultaDeListados(t *testing.T) {
	uc, store := newProductUC()
	ctx := context.Background()
	p, err := uc.Create(ctx, sodaRequest(), "")
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, p.ID, ""))

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err, "la baja es lógica")
	assert.Equal(t, entity.StatusInactive, got.Status)
	assert.Equal(t, 0, got.Quantity)

	hist, _ := store.History().GetByProduct(ctx, p.ID)
	require.Len(t, hist, 2)
	assert.Equal(t, entity.HistoryTypeExit, hist[0].Type)
	assert.Equal(t, 10, hist[0].Quantity)
	assert.Equal(t, 0, *hist[0].NewQuantity)

	// segunda baja: sin movimientos nuevos
	require.NoError(t, uc.Delete(ctx, p.ID, ""))
	hist, _ = store.History().GetByProduct(ctx, p.ID)
	assert.Len(t, hist, 2)
}

func TestDelete_FalloDelHistorico_NoDaDeBaja(t *testing.T) {
	uc, store := newProductUC()
	ctx := context.Background()
	p, err := uc.Create(ctx, sodaRequest(), "")
	require.NoError(t, err)

	store.FailAppend = errors.New("disco lleno")
	require.Error(t, uc.Delete(ctx, p.ID, ""))

	got, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusActive, got.Status)
	assert.Equal(t, 10, got.Quantity)
}

// ─── Zona horaria ────────────────────────────────────────────────────────────

func TestToday_UsaLaZonaConfigurada(t *testing.T) {
	sp, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	// 02:30 UTC del 19 = 23:30 del 18 en São Paulo
	late := func() time.Time { return time.Date(2026, 10, 19, 2, 30, 0, 0, time.UTC) }
	store := memory.NewStore().WithClock(late)
	uc := usecase.NewProductUseCase(store.Products(), store, nil, nil, sp).WithClock(late)
	ctx := context.Background()

	in := sodaRequest()
	in.Expiry = "2026-10-18"
	out, err := uc.Create(ctx, in, "")
	require.NoError(t, err, "la validade de hoy en São Paulo es válida")

	expiring, err := uc.Expiring(ctx, 1)
	require.NoError(t, err)
	require.Len(t, expiring, 1, "la ventana empieza en el día local")
	assert.Equal(t, out.ID, expiring[0].ID)

	in.Name = "Soda ontem"
	in.Expiry = "2026-10-17"
	_, err = uc.Create(ctx, in, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
