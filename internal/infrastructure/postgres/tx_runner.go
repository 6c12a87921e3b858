package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta la unidad producto + histórico en una transacción READ COMMITTED.
// La fila del producto se bloquea con FOR UPDATE dentro de fn; si la espera supera
// lock_timeout el error es domain.ErrBusy.
type TxRunner struct {
	pool *pgxpool.Pool
}

func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) Run(ctx context.Context, fn func(repository.ProductRepository, repository.HistoryRepository) error) error {
	err := pgx.BeginTxFunc(ctx, r.pool, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
		return fn(NewProductRepository(tx), NewHistoryRepository(tx))
	})
	if isLockTimeout(err) {
		return fmt.Errorf("%w: %v", domain.ErrBusy, err)
	}
	return err
}
