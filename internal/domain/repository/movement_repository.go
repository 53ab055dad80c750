package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Intendencia-api/internal/domain/entity"
	"github.com/jhoicas/Intendencia-api/internal/domain/ledger"
)

// MovementFilter filtro de listados. BaseID en traslados coincide con origen o destino.
type MovementFilter struct {
	BaseID      *int64
	EquipmentID *int64
	Range       entity.DateRange
	Limit       int
	Offset      int
}

// MovementRepository define el puerto de solo inserción del libro de movimientos.
// Cada Create asigna un ID único y creciente por tipo de registro (autoincremento de la BD).
type MovementRepository interface {
	CreateOpeningStock(ctx context.Context, rec *entity.OpeningStock) error
	CreatePurchase(ctx context.Context, rec *entity.Purchase) error
	CreateTransfer(ctx context.Context, rec *entity.Transfer) error
	CreateAssignment(ctx context.Context, rec *entity.Assignment) error
	CreateExpenditure(ctx context.Context, rec *entity.Expenditure) error

	ListOpeningStock(ctx context.Context, f MovementFilter) ([]*entity.OpeningStock, error)
	ListPurchases(ctx context.Context, f MovementFilter) ([]*entity.Purchase, error)
	ListTransfers(ctx context.Context, f MovementFilter) ([]*entity.Transfer, error)
	ListAssignments(ctx context.Context, f MovementFilter) ([]*entity.Assignment, error)
	ListExpenditures(ctx context.Context, f MovementFilter) ([]*entity.Expenditure, error)
}

// LedgerFilter filtro de las sumas del balance.
type LedgerFilter struct {
	BaseID      int64
	EquipmentID *int64
	Range       entity.DateRange
	// OpeningWindowed limita el stock inicial a fotos con fecha <= Range.From.
	OpeningWindowed bool
}

// OpeningUpperBound devuelve el límite superior de fecha para MetricOpening, o nil si no aplica.
func (f LedgerFilter) OpeningUpperBound() *time.Time {
	if !f.OpeningWindowed || f.Range.From == nil {
		return nil
	}
	return f.Range.From
}

// LedgerRepository define las lecturas agregadas del libro (read-only).
// Sum usa COALESCE: sin registros devuelve 0, nunca error.
type LedgerRepository interface {
	Sum(ctx context.Context, metric ledger.Metric, f LedgerFilter) (int64, error)
}
