package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/jhoicas/Intendencia-api/internal/application/movement"
	"github.com/jhoicas/Intendencia-api/internal/domain/repository"
)

var _ movement.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción GORM (Commit si fn retorna nil, Rollback si no).
type TxRunner struct {
	db *gorm.DB
}

func NewTxRunner(db *gorm.DB) *TxRunner {
	return &TxRunner{db: db}
}

func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	ledgerRepo repository.LedgerRepository,
	locker movement.StockLocker,
) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewMovementRepository(tx), NewLedgerRepository(tx), nil)
	})
}
