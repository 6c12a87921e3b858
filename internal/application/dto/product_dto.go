package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de fecha de validade en JSON (AAAA-MM-DD).
const DateLayout = "2006-01-02"

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name     string          `json:"name" validate:"required,min=2,max=255"`
	Category string          `json:"category" validate:"required,oneof=Bebida Doce Salgadinho"`
	Supplier string          `json:"supplier" validate:"required,min=2,max=255"`
	Expiry   string          `json:"expiry" validate:"required"` // AAAA-MM-DD o RFC3339
	Quantity *int            `json:"quantity" validate:"required,min=0"`
	Value    decimal.Decimal `json:"value"`

	Observation string `json:"observation" validate:"max=1000"` // del registro de entrada inicial
}

// UpdateProductRequest actualización parcial; al menos un campo. El status no se edita:
// la baja pasa por Delete.
type UpdateProductRequest struct {
	Name     *string          `json:"name" validate:"omitempty,min=2,max=255"`
	Category *string          `json:"category" validate:"omitempty,oneof=Bebida Doce Salgadinho"`
	Supplier *string          `json:"supplier" validate:"omitempty,min=2,max=255"`
	Expiry   *string          `json:"expiry"`
	Quantity *int             `json:"quantity" validate:"omitempty,min=0"`
	Value    *decimal.Decimal `json:"value"`
}

// IsEmpty indica que no se envió ningún campo.
func (r UpdateProductRequest) IsEmpty() bool {
	return r.Name == nil && r.Category == nil && r.Supplier == nil && r.Expiry == nil &&
		r.Quantity == nil && r.Value == nil
}

// ProductQuery filtros de GET /api/products.
type ProductQuery struct {
	PageRequest
	Category  string `query:"category" json:"category" validate:"omitempty,oneof=Bebida Doce Salgadinho"`
	Status    string `query:"status" json:"status" validate:"omitempty,oneof=active inactive"`
	Expiring  int    `query:"expiring" json:"expiring" validate:"omitempty,min=1"` // vence en los próximos N días
	Expired   bool   `query:"expired" json:"expired"`
	Search    string `query:"search" json:"search" validate:"max=255"`
	SortBy    string `query:"sortBy" json:"sortBy" validate:"omitempty,oneof=id name category expiry quantity value createdAt"`
	SortOrder string `query:"sortOrder" json:"sortOrder" validate:"omitempty,oneof=ASC DESC asc desc"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Supplier   string          `json:"supplier"`
	Expiry     string          `json:"expiry"`
	Quantity   int             `json:"quantity"`
	Value      decimal.Decimal `json:"value"`
	StockValue decimal.Decimal `json:"stockValue"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
