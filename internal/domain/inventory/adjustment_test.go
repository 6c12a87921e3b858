package inventory_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/inventory"
)

func TestApply(t *testing.T) {
	cases := []struct {
		name     string
		kind     string
		previous int
		qty      int
		want     inventory.Adjustment
		wantErr  error
	}{
		{"entrada suma", entity.HistoryTypeEntry, 10, 5, inventory.Adjustment{Previous: 10, New: 15, Logged: 5}, nil},
		{"saída resta", entity.HistoryTypeExit, 10, 3, inventory.Adjustment{Previous: 10, New: 7, Logged: 3}, nil},
		{"saída hasta cero", entity.HistoryTypeExit, 4, 4, inventory.Adjustment{Previous: 4, New: 0, Logged: 4}, nil},
		{"saída mayor que estoque", entity.HistoryTypeExit, 2, 3, inventory.Adjustment{}, domain.ErrInsufficientStock},
		{"ajuste hacia arriba", entity.HistoryTypeAdjustment, 10, 25, inventory.Adjustment{Previous: 10, New: 25, Logged: 15}, nil},
		{"ajuste hacia abajo", entity.HistoryTypeAdjustment, 10, 4, inventory.Adjustment{Previous: 10, New: 4, Logged: 6}, nil},
		{"ajuste a cero", entity.HistoryTypeAdjustment, 7, 0, inventory.Adjustment{Previous: 7, New: 0, Logged: 7}, nil},
		{"entrada cero", entity.HistoryTypeEntry, 1, 0, inventory.Adjustment{}, domain.ErrInvalidInput},
		{"tipo desconocido", "transfer", 1, 1, inventory.Adjustment{}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := inventory.Apply(tc.kind, tc.previous, tc.qty)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tc.wantErr), "error esperado %v, obtenido %v", tc.wantErr, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// El ajuste siempre registra la diferencia absoluta entre objetivo y cantidad previa.
func TestApply_AjusteRegistraDiferenciaAbsoluta(t *testing.T) {
	for previous := 0; previous <= 20; previous++ {
		for target := 0; target <= 20; target++ {
			adj, err := inventory.Apply(entity.HistoryTypeAdjustment, previous, target)
			require.NoError(t, err)
			want := target - previous
			if want < 0 {
				want = -want
			}
			assert.Equal(t, want, adj.Logged)
			assert.Equal(t, target, adj.New)
		}
	}
}
