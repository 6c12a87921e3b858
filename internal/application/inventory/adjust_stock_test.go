package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
)

type spyInvalidator struct {
	mu  sync.Mutex
	ids []int64
}

func (s *spyInvalidator) InvalidateProduct(_ context.Context, id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = append(s.ids, id)
}

type spyRecorder struct{ types []string }

func (s *spyRecorder) ObserveMovement(t string) { s.types = append(s.types, t) }

func seedProduct(t *testing.T, store *memory.Store, qty int) *entity.Product {
	t.Helper()
	p := &entity.Product{
		Name: "Soda 2L", Category: entity.CategoryBebida, Supplier: "Acme",
		Expiry: time.Now().AddDate(0, 0, 30), Quantity: qty, Value: decimal.RequireFromString("5.00"),
	}
	require.NoError(t, store.Products().Create(context.Background(), p))
	return p
}

// ─── Casos felices ───────────────────────────────────────────────────────────

func TestAdjust_Saida_ActualizaCantidadEHistorico(t *testing.T) {
	store := memory.NewStore()
	inv := &spyInvalidator{}
	rec := &spyRecorder{}
	uc := inventory.NewAdjustStockUseCase(store, inv, rec)
	p := seedProduct(t, store, 10)
	ctx := context.Background()

	out, err := uc.Adjust(ctx, inventory.AdjustStockInput{ProductID: p.ID, Type: entity.HistoryTypeExit, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 10, out.PreviousQuantity)
	assert.Equal(t, 7, out.NewQuantity)
	assert.Equal(t, 7, out.Product.Quantity)

	got, err := store.Products().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Quantity)

	hist, err := store.History().GetByProduct(ctx, p.ID)
	require.NoError(t, err)
	require.NotEmpty(t, hist)
	last := hist[0]
	assert.Equal(t, entity.HistoryTypeExit, last.Type)
	assert.Equal(t, 3, last.Quantity)
	require.NotNil(t, last.PreviousQuantity)
	require.NotNil(t, last.NewQuantity)
	assert.Equal(t, 10, *last.PreviousQuantity)
	assert.Equal(t, 7, *last.NewQuantity)
	assert.Equal(t, "Ajuste de estoque: Saída", last.Observation, "observação por defecto")
	assert.Equal(t, out.HistoryID, last.ID)

	assert.Equal(t, []int64{p.ID}, inv.ids, "la caché del producto debe invalidarse tras el commit")
	assert.Equal(t, []string{entity.HistoryTypeExit}, rec.types)
}

func TestAdjust_Entrada_SumaDelta(t *testing.T) {
	store := memory.NewStore()
	uc := inventory.NewAdjustStockUseCase(store, nil, nil)
	p := seedProduct(t, store, 4)

	out, err := uc.Adjust(context.Background(), inventory.AdjustStockInput{
		ProductID: p.ID, Type: entity.HistoryTypeEntry, Quantity: 6, Observation: "Compra semanal", UserID: "u-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 10, out.NewQuantity)
	assert.Equal(t, 6, out.Quantity)

	hist, _ := store.History().GetRecent(context.Background(), 1)
	require.Len(t, hist, 1)
	assert.Equal(t, "Compra semanal", hist[0].Observation)
	assert.Equal(t, "u-1", hist[0].UserID)
}

func TestAdjust_Ajuste_RegistraDiferenciaAbsoluta(t *testing.T) {
	store := memory.NewStore()
	uc := inventory.NewAdjustStockUseCase(store, nil, nil)
	p := seedProduct(t, store, 12)

	out, err := uc.Adjust(context.Background(), inventory.AdjustStockInput{ProductID: p.ID, Type: entity.HistoryTypeAdjustment, Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, out.NewQuantity)
	assert.Equal(t, 7, out.Quantity, "|5 - 12| = 7")

	out, err = uc.Adjust(context.Background(), inventory.AdjustStockInput{ProductID: p.ID, Type: entity.HistoryTypeAdjustment, Quantity: 0})
	require.NoError(t, err)
	assert.Equal(t, 0, out.NewQuantity)
	assert.Equal(t, 5, out.Quantity)
}

// ─── Rechazos: nada debe quedar escrito ──────────────────────────────────────

func TestAdjust_SaidaMayorQueEstoque_NoModificaNada(t *testing.T) {
	store := memory.NewStore()
	inv := &spyInvalidator{}
	uc := inventory.NewAdjustStockUseCase(store, inv, nil)
	p := seedProduct(t, store, 2)

	_, err := uc.Adjust(context.Background(), inventory.AdjustStockInput{ProductID: p.ID, Type: entity.HistoryTypeExit, Quantity: 3})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, _ := store.Products().GetByID(context.Background(), p.ID)
	assert.Equal(t, 2, got.Quantity)
	hist, _ := store.History().GetAll(context.Background())
	assert.Empty(t, hist)
	assert.Empty(t, inv.ids, "sin commit no se invalida la caché")
}

func TestAdjust_FallaAlRegistrarHistorico_RevierteCantidad(t *testing.T) {
	store := memory.NewStore()
	uc := inventory.NewAdjustStockUseCase(store, nil, nil)
	p := seedProduct(t, store, 10)
	store.FailAppend = errors.New("conexión perdida")

	_, err := uc.Adjust(context.Background(), inventory.AdjustStockInput{ProductID: p.ID, Type: entity.HistoryTypeExit, Quantity: 3})
	require.Error(t, err)

	got, _ := store.Products().GetByID(context.Background(), p.ID)
	assert.Equal(t, 10, got.Quantity, "cantidad y histórico se confirman juntos o no se confirman")
}

func TestAdjust_ProductoInexistente(t *testing.T) {
	uc := inventory.NewAdjustStockUseCase(memory.NewStore(), nil, nil)
	_, err := uc.Adjust(context.Background(), inventory.AdjustStockInput{ProductID: 99, Type: entity.HistoryTypeEntry, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjust_ProductoInactivo_Conflicto(t *testing.T) {
	store := memory.NewStore()
	uc := inventory.NewAdjustStockUseCase(store, nil, nil)
	p := seedProduct(t, store, 1)
	require.NoError(t, store.Products().SoftDelete(context.Background(), p.ID))

	_, err := uc.Adjust(context.Background(), inventory.AdjustStockInput{ProductID: p.ID, Type: entity.HistoryTypeEntry, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAdjust_EntradaInvalida(t *testing.T) {
	store := memory.NewStore()
	uc := inventory.NewAdjustStockUseCase(store, nil, nil)
	p := seedProduct(t, store, 1)

	cases := []inventory.AdjustStockInput{
		{ProductID: p.ID, Type: "transfer", Quantity: 1},
		{ProductID: p.ID, Type: entity.HistoryTypeEntry, Quantity: 0},
		{ProductID: p.ID, Type: entity.HistoryTypeExit, Quantity: -2},
		{ProductID: 0, Type: entity.HistoryTypeEntry, Quantity: 1},
		{ProductID: p.ID, Type: entity.HistoryTypeEntry, Quantity: 1, Observation: string(make([]rune, 1001))},
	}
	for _, in := range cases {
		_, err := uc.Adjust(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "entrada: %+v", in)
	}
}

func TestAdjust_Concurrente_SinPerderActualizaciones(t *testing.T) {
	store := memory.NewStore()
	uc := inventory.NewAdjustStockUseCase(store, nil, nil)
	p := seedProduct(t, store, 0)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = uc.Adjust(context.Background(), inventory.AdjustStockInput{ProductID: p.ID, Type: entity.HistoryTypeEntry, Quantity: 1})
		}()
	}
	wg.Wait()

	got, _ := store.Products().GetByID(context.Background(), p.ID)
	assert.Equal(t, 20, got.Quantity)
	hist, _ := store.History().GetAll(context.Background())
	assert.Len(t, hist, 20)
}
