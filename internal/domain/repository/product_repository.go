package repository

import (
	"context"
	"time"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// Columnas permitidas para ordenar listados de productos.
const (
	SortByID        = "id"
	SortByName      = "name"
	SortByCategory  = "category"
	SortByExpiry    = "expiry"
	SortByQuantity  = "quantity"
	SortByValue     = "value"
	SortByCreatedAt = "created_at"
)

// ProductFilter criterios de búsqueda paginada. Campos vacíos/nil no filtran.
type ProductFilter struct {
	Status        string
	Category      string
	Search        string     // coincidencia parcial en name o supplier (sin mayúsculas)
	ExpiringFrom  *time.Time // junto con ExpiringTo: expiry BETWEEN from AND to
	ExpiringTo    *time.Time
	ExpiredBefore *time.Time // expiry < fecha
	SortBy        string
	SortDesc      bool
	Limit         int
	Offset        int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve también productos inactivos; los listados solo activos salvo filtro explícito.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetByIDForUpdate bloquea la fila (SELECT FOR UPDATE); solo tiene sentido dentro de una tx.
	GetByIDForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	GetAll(ctx context.Context) ([]*entity.Product, error)
	Search(ctx context.Context, filter ProductFilter) ([]*entity.Product, int, error)
	GetExpiring(ctx context.Context, from, to time.Time) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateQuantity(ctx context.Context, id int64, quantity int) error
	SoftDelete(ctx context.Context, id int64) error
}
