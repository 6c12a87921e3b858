package usecase_test

import (
	"context"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
)

// movableClock permite fijar el instante de cada inserción.
type movableClock struct{ t time.Time }

func (c *movableClock) now() time.Time { return c.t }

func TestHistory_AppendManual_NoAlteraCantidad(t *testing.T) {
	store := memory.NewStore().WithClock(clock)
	products := usecase.NewProductUseCase(store.Products(), store, nil, nil, time.UTC).WithClock(clock)
	uc := usecase.NewHistoryUseCase(store.History(), store.Products(), time.UTC)
	ctx := context.Background()

	p, err := products.Create(ctx, sodaRequest(), "")
	require.NoError(t, err)

	out, err := uc.Append(ctx, dto.CreateHistoryRequest{
		ProductID: p.ID, Type: entity.HistoryTypeEntry, Quantity: intPtr(5), Observation: "Conferência",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "Soda 2L", out.ProductName)
	assert.Equal(t, "Entrada", out.TypeLabel)

	got, _ := products.GetByID(ctx, p.ID)
	assert.Equal(t, 10, got.Quantity)

	list, err := uc.ByProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, out.ID, list[0].ID, "más reciente primero")
}

func TestHistory_AppendProductoInexistente_NotFound(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewHistoryUseCase(store.History(), store.Products(), time.UTC)

	_, err := uc.Append(context.Background(), dto.CreateHistoryRequest{
		ProductID: 42, Type: entity.HistoryTypeExit, Quantity: intPtr(1),
	}, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistory_ByDateRange_UsaDiaCalendarioLocal(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	c := &movableClock{t: time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)}
	store := memory.NewStore().WithClock(c.now)
	products := usecase.NewProductUseCase(store.Products(), store, nil, nil, time.UTC).WithClock(clock)
	uc := usecase.NewHistoryUseCase(store.History(), store.Products(), loc)
	ctx := context.Background()

	p, err := products.Create(ctx, sodaRequest(), "") // 05/03 09:00 local
	require.NoError(t, err)

	c.t = time.Date(2026, 3, 6, 2, 0, 0, 0, time.UTC) // 05/03 23:00 local
	_, err = uc.Append(ctx, dto.CreateHistoryRequest{ProductID: p.ID, Type: entity.HistoryTypeExit, Quantity: intPtr(1)}, "")
	require.NoError(t, err)

	c.t = time.Date(2026, 3, 6, 4, 0, 0, 0, time.UTC) // 06/03 01:00 local
	_, err = uc.Append(ctx, dto.CreateHistoryRequest{ProductID: p.ID, Type: entity.HistoryTypeExit, Quantity: intPtr(1)}, "")
	require.NoError(t, err)

	list, err := uc.ByDateRange(ctx, "2026-03-05", "2026-03-05")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = uc.ByDateRange(ctx, "2026-03-06", "2026-03-06")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestHistory_ByDateRange_FinAntesDeInicio_Rechaza(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewHistoryUseCase(store.History(), store.Products(), time.UTC)

	_, err := uc.ByDateRange(context.Background(), "2026-03-10", "2026-03-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ByDateRange(context.Background(), "ontem", "2026-03-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistory_ByType(t *testing.T) {
	store := memory.NewStore().WithClock(clock)
	products := usecase.NewProductUseCase(store.Products(), store, nil, nil, time.UTC).WithClock(clock)
	uc := usecase.NewHistoryUseCase(store.History(), store.Products(), time.UTC)
	ctx := context.Background()

	p, err := products.Create(ctx, sodaRequest(), "")
	require.NoError(t, err)
	_, err = products.Update(ctx, p.ID, dto.UpdateProductRequest{Quantity: intPtr(2)}, "")
	require.NoError(t, err)

	list, err := uc.ByType(ctx, entity.HistoryTypeAdjustment)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 8, list[0].Quantity)

	_, err = uc.ByType(ctx, "transfer")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	all, err := uc.Query(ctx, dto.HistoryQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
