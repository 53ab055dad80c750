package movement

import (
	"context"

	"github.com/jhoicas/Intendencia-api/internal/domain/repository"
)

// StockLocker serializa escrituras sobre un par (base, equipo) dentro de la transacción.
// PostgreSQL usa un advisory lock de transacción; SQLite ya serializa con una sola conexión.
type StockLocker interface {
	LockStock(ctx context.Context, baseID, equipmentID int64) error
}

// TxRunner ejecuta una función dentro de una transacción de BD.
// La implementación hace Begin, llama a fn con repos atados a la tx, y Commit si fn retorna nil o Rollback si hay error.
// Dentro de fn solo deben usarse los repos recibidos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		ledgerRepo repository.LedgerRepository,
		locker StockLocker,
	) error) error
}
