package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, category, supplier, expiry, quantity, value, status, created_at, updated_at`

// columnas ordenables; cualquier otro valor cae en id.
var productSortColumns = map[string]string{
	repository.SortByID:        "id",
	repository.SortByName:      "name",
	repository.SortByCategory:  "category",
	repository.SortByExpiry:    "expiry",
	repository.SortByQuantity:  "quantity",
	repository.SortByValue:     "value",
	repository.SortByCreatedAt: "created_at",
}

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto activo y completa ID y timestamps.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO product (name, category, supplier, expiry, quantity, value, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'active')
		RETURNING id, status, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		p.Name, p.Category, p.Supplier, p.Expiry, p.Quantity, p.Value,
	).Scan(&p.ID, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isCheckViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID, activo o no.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM product WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene el producto bloqueando la fila hasta el fin de la tx.
func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM product WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) getOne(ctx context.Context, query string, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetAll lista los productos activos, el más reciente primero.
func (r *ProductRepo) GetAll(ctx context.Context) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM product WHERE status = 'active' ORDER BY id DESC`
	return r.list(ctx, query)
}

// GetExpiring lista productos activos con validade en [from, to], por validade ascendente.
func (r *ProductRepo) GetExpiring(ctx context.Context, from, to time.Time) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM product
		WHERE status = 'active' AND expiry BETWEEN $1::date AND $2::date
		ORDER BY expiry ASC, id ASC`
	return r.list(ctx, query, from, to)
}

// Search aplica filtros, orden y paginación. Devuelve la página y el total sin paginar.
func (r *ProductRepo) Search(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Status != "" {
		conds = append(conds, "status = "+arg(f.Status))
	}
	if f.Category != "" {
		conds = append(conds, "category = "+arg(f.Category))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		p := arg("%" + escapeLike(s) + "%")
		conds = append(conds, "(name ILIKE "+p+" OR supplier ILIKE "+p+")")
	}
	if f.ExpiringFrom != nil && f.ExpiringTo != nil {
		conds = append(conds, "expiry BETWEEN "+arg(*f.ExpiringFrom)+"::date AND "+arg(*f.ExpiringTo)+"::date")
	}
	if f.ExpiredBefore != nil {
		conds = append(conds, "expiry < "+arg(*f.ExpiredBefore)+"::date")
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM product`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	col, ok := productSortColumns[f.SortBy]
	if !ok {
		col = "id"
	}
	dir := "ASC"
	if f.SortDesc {
		dir = "DESC"
	}
	query := `SELECT ` + productColumns + ` FROM product` + where +
		` ORDER BY ` + col + ` ` + dir + `, id ` + dir
	if f.Limit > 0 {
		query += " LIMIT " + arg(f.Limit)
	}
	if f.Offset > 0 {
		query += " OFFSET " + arg(f.Offset)
	}

	list, err := r.list(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Update sobrescribe los campos editables. ErrNotFound si no afectó filas.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE product
		SET name = $2, category = $3, supplier = $4, expiry = $5, quantity = $6, value = $7, status = $8, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`
	err := r.q.QueryRow(ctx, query,
		p.ID, p.Name, p.Category, p.Supplier, p.Expiry, p.Quantity, p.Value, p.Status,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		if isCheckViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateQuantity sobrescribe solo la cantidad.
func (r *ProductRepo) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE product SET quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("update product quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marca el producto como inactivo. La fila y su histórico se conservan.
func (r *ProductRepo) SoftDelete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE product SET status = 'inactive', updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Supplier, &p.Expiry, &p.Quantity,
		&p.Value, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
