package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías válidas de producto.
const (
	CategoryBebida     = "Bebida"
	CategoryDoce       = "Doce"
	CategorySalgadinho = "Salgadinho"
)

// Estados de producto. La baja es lógica: nunca se borra la fila.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Categories lista ordenada de categorías válidas.
var Categories = []string{CategoryBebida, CategoryDoce, CategorySalgadinho}

// IsValidCategory indica si c pertenece al catálogo de categorías.
func IsValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Product representa un producto perecedero del estoque.
// Quantity nunca es negativa en reposo; Value es el precio unitario con dos decimales.
type Product struct {
	ID        int64
	Name      string
	Category  string
	Supplier  string
	Expiry    time.Time // fecha de validade (solo día)
	Quantity  int
	Value     decimal.Decimal
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive indica si el producto no fue dado de baja.
func (p *Product) IsActive() bool {
	return p.Status == StatusActive
}

// StockValue devuelve Quantity × Value.
func (p *Product) StockValue() decimal.Decimal {
	return p.Value.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
