package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/analytics"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
)

func TestGetSummary_AgregaEstoqueActivo(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	store := memory.NewStore().WithClock(clock)
	ctx := context.Background()

	day := func(d int) time.Time { return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC) }
	products := []*entity.Product{
		{Name: "Soda", Category: entity.CategoryBebida, Supplier: "A", Expiry: day(12), Quantity: 10, Value: decimal.RequireFromString("2.50")},
		{Name: "Suco", Category: entity.CategoryBebida, Supplier: "A", Expiry: day(30), Quantity: 4, Value: decimal.RequireFromString("1.00")},
		{Name: "Bala", Category: entity.CategoryDoce, Supplier: "B", Expiry: day(5), Quantity: 100, Value: decimal.RequireFromString("0.10")},
		{Name: "Chips", Category: entity.CategorySalgadinho, Supplier: "C", Expiry: day(17), Quantity: 7, Value: decimal.RequireFromString("3.00")},
	}
	for _, p := range products {
		require.NoError(t, store.Products().Create(ctx, p))
		require.NoError(t, store.History().Append(ctx, &entity.HistoryEntry{ProductID: p.ID, Type: entity.HistoryTypeEntry, Quantity: p.Quantity}))
	}
	require.NoError(t, store.Products().SoftDelete(ctx, products[3].ID))

	uc := analytics.NewDashboardUseCase(store.Dashboard(), store.History(), time.UTC).WithClock(clock)
	out, err := uc.GetSummary(ctx, 0)
	require.NoError(t, err)

	assert.Equal(t, 3, out.TotalProducts)
	assert.Equal(t, int64(114), out.TotalUnits)
	assert.True(t, decimal.RequireFromString("39.00").Equal(out.TotalValue), "25 + 4 + 10")
	assert.Equal(t, analytics.DefaultExpiringDays, out.ExpiringDays)
	assert.Equal(t, 1, out.ExpiringSoon, "solo Soda vence en [10/03, 17/03]; Chips está inactivo")
	assert.Equal(t, 1, out.Expired)

	require.Len(t, out.ByCategory, 2)
	assert.Equal(t, entity.CategoryBebida, out.ByCategory[0].Category)
	assert.Equal(t, int64(14), out.ByCategory[0].Units)

	require.Len(t, out.RecentMovements, 4)
	assert.Equal(t, "Chips", out.RecentMovements[0].ProductName)
}
