package inventory

import (
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// Adjustment resultado de aplicar un movimiento sobre la cantidad actual.
type Adjustment struct {
	Previous int
	New      int
	Logged   int // cantidad registrada en el histórico
}

// Apply calcula la nueva cantidad para un movimiento (servicio de dominio, sin I/O).
//
//	entry:      New = Previous + qty             Logged = qty
//	exit:       New = Previous - qty (>= 0)      Logged = qty
//	adjustment: New = qty (cantidad absoluta)    Logged = |qty - Previous|
func Apply(kind string, previous, qty int) (Adjustment, error) {
	if previous < 0 {
		return Adjustment{}, domain.ErrConflict
	}
	switch kind {
	case entity.HistoryTypeEntry:
		if qty <= 0 {
			return Adjustment{}, domain.NewValidationError("quantity", "Quantidade deve ser maior que zero")
		}
		return Adjustment{Previous: previous, New: previous + qty, Logged: qty}, nil
	case entity.HistoryTypeExit:
		if qty <= 0 {
			return Adjustment{}, domain.NewValidationError("quantity", "Quantidade deve ser maior que zero")
		}
		if previous-qty < 0 {
			return Adjustment{}, domain.ErrInsufficientStock
		}
		return Adjustment{Previous: previous, New: previous - qty, Logged: qty}, nil
	case entity.HistoryTypeAdjustment:
		if qty < 0 {
			return Adjustment{}, domain.NewValidationError("quantity", "Quantidade não pode ser negativa")
		}
		diff := qty - previous
		if diff < 0 {
			diff = -diff
		}
		return Adjustment{Previous: previous, New: qty, Logged: diff}, nil
	}
	return Adjustment{}, domain.NewValidationError("type", "Tipo deve ser: entry, exit ou adjustment")
}
