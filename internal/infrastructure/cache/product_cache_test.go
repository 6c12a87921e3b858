package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/infrastructure/cache"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
	"github.com/jhoicas/estoque-api/pkg/config"
)

// Requiere un Redis real: TEST_REDIS_ADDR=localhost:6379 go test ./internal/infrastructure/cache/...
func newCached(t *testing.T) (*cache.CachedProductRepository, *memory.Store) {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR no definido")
	}
	ctx := context.Background()
	rdb, err := cache.Connect(ctx, config.RedisConfig{Addr: addr, DB: 15})
	require.NoError(t, err)
	require.NoError(t, rdb.FlushDB(ctx).Err())
	t.Cleanup(func() { _ = rdb.Close() })

	store := memory.NewStore()
	return cache.NewCachedProductRepository(store.Products(), rdb, time.Minute, zerolog.Nop()), store
}

func TestCached_GetByID_SirveDesdeCacheHastaInvalidar(t *testing.T) {
	repo, store := newCached(t)
	ctx := context.Background()

	p := &entity.Product{
		Name: "Soda 2L", Category: entity.CategoryBebida, Supplier: "Acme",
		Expiry: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), Quantity: 10, Value: decimal.RequireFromString("5.00"),
	}
	require.NoError(t, store.Products().Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity)

	// escritura directa al store: la caché sigue devolviendo el valor anterior
	require.NoError(t, store.Products().UpdateQuantity(ctx, p.ID, 3))
	got, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity)
	assert.True(t, decimal.RequireFromString("5.00").Equal(got.Value))

	repo.InvalidateProduct(ctx, p.ID)
	got, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Quantity)
}

func TestCached_GetAll_SeInvalidaAlCrear(t *testing.T) {
	repo, _ := newCached(t)
	ctx := context.Background()

	list, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, repo.Create(ctx, &entity.Product{
		Name: "Bala", Category: entity.CategoryDoce, Supplier: "B",
		Expiry: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), Quantity: 1, Value: decimal.RequireFromString("0.50"),
	}))

	list, err = repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

// Una lectura que llega justo después de la invalidación no vuelve a poblar la caché:
// el valor siguiente sale de la BD aunque no haya otra invalidación.
func TestCached_TrasInvalidar_NoRecacheaDuranteLaEspera(t *testing.T) {
	repo, store := newCached(t)
	ctx := context.Background()

	p := &entity.Product{
		Name: "Paçoca", Category: entity.CategoryDoce, Supplier: "Santa Helena",
		Expiry: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), Quantity: 10, Value: decimal.RequireFromString("1.00"),
	}
	require.NoError(t, store.Products().Create(ctx, p))

	require.NoError(t, store.Products().UpdateQuantity(ctx, p.ID, 8))
	repo.InvalidateProduct(ctx, p.ID)

	got, err := repo.GetByID(ctx, p.ID) // lectura concurrente a la escritura
	require.NoError(t, err)
	assert.Equal(t, 8, got.Quantity)

	require.NoError(t, store.Products().UpdateQuantity(ctx, p.ID, 2))
	got, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity, "la lectura anterior no quedó cacheada")

	list, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NoError(t, store.Products().UpdateQuantity(ctx, p.ID, 1))
	list, err = repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, list[0].Quantity)
}
