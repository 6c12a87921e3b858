package entity

import "time"

// Tipos de movimiento del histórico.
const (
	HistoryTypeEntry      = "entry"      // entrada
	HistoryTypeExit       = "exit"       // saída
	HistoryTypeAdjustment = "adjustment" // ajuste a cantidad absoluta
)

// IsValidHistoryType indica si t es un tipo de movimiento conocido.
func IsValidHistoryType(t string) bool {
	switch t {
	case HistoryTypeEntry, HistoryTypeExit, HistoryTypeAdjustment:
		return true
	}
	return false
}

// HistoryTypeLabel devuelve la etiqueta pt-BR del tipo (Entrada, Saída, Ajuste).
func HistoryTypeLabel(t string) string {
	switch t {
	case HistoryTypeEntry:
		return "Entrada"
	case HistoryTypeExit:
		return "Saída"
	default:
		return "Ajuste"
	}
}

// HistoryEntry registro inmutable de un cambio de estoque.
// ID es solo identidad; CreatedAt es el instante real del evento.
type HistoryEntry struct {
	ID               int64
	ProductID        int64
	ProductName      string // copia del nombre al momento del evento
	Type             string
	Quantity         int
	PreviousQuantity *int
	NewQuantity      *int
	Observation      string
	UserID           string // vacío si no hubo operador autenticado
	CreatedAt        time.Time
}
