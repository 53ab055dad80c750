package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Intendencia-api/internal/application/movement"
	"github.com/jhoicas/Intendencia-api/internal/domain/repository"
)

var _ movement.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	ledgerRepo repository.LedgerRepository,
	locker movement.StockLocker,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewMovementRepository(tx), NewLedgerRepository(tx), txLocker{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// txLocker toma un advisory lock de transacción por (base, equipo); se libera en Commit/Rollback.
type txLocker struct {
	tx pgx.Tx
}

func (l txLocker) LockStock(ctx context.Context, baseID, equipmentID int64) error {
	if _, err := l.tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1::int, $2::int)`, int32(baseID), int32(equipmentID)); err != nil {
		return fmt.Errorf("lock stock: %w", err)
	}
	return nil
}
