package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Cartuchos-api/internal/application/lifecycle"
	"github.com/jhoicas/Cartuchos-api/internal/domain/repository"
)

// Ensure TxRunner implements lifecycle.TxRunner.
var _ lifecycle.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. El bloqueo FOR UPDATE sobre la fila del cartucho vive
// durante toda la tx, serializando escrituras concurrentes por cartucho.
func (r *TxRunner) Run(ctx context.Context, fn func(
	cartridgeRepo repository.CartridgeRepository,
	operationRepo repository.OperationRepository,
	locationRepo repository.LocationRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	cartridgeRepo := NewCartridgeRepository(tx)
	operationRepo := NewOperationRepository(tx)
	locationRepo := NewLocationRepository(tx)

	if err := fn(cartridgeRepo, operationRepo, locationRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
