package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/jhoicas/Intendencia-api/internal/domain/entity"
	"github.com/jhoicas/Intendencia-api/internal/domain/ledger"
	"github.com/jhoicas/Intendencia-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepository)(nil)

type metricSource struct {
	table   string
	baseCol string
	dateCol string
}

var metricSources = map[ledger.Metric]metricSource{
	ledger.MetricOpening:     {"opening_stock", "base_id", "date"},
	ledger.MetricPurchases:   {"purchases", "base_id", "purchase_date"},
	ledger.MetricTransferIn:  {"transfers", "to_base_id", "transfer_date"},
	ledger.MetricTransferOut: {"transfers", "from_base_id", "transfer_date"},
	ledger.MetricAssigned:    {"assignments", "base_id", "assigned_date"},
	ledger.MetricExpended:    {"expenditures", "base_id", "expended_date"},
}

// LedgerRepository sumas agregadas del libro. db puede ser la conexión o una tx de GORM.
type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Sum devuelve SUM(quantity) con COALESCE a 0. El stock inicial solo usa la cota de OpeningUpperBound.
func (r *LedgerRepository) Sum(ctx context.Context, metric ledger.Metric, f repository.LedgerFilter) (int64, error) {
	src, ok := metricSources[metric]
	if !ok {
		return 0, fmt.Errorf("métrica desconocida: %s", metric)
	}
	q := r.db.WithContext(ctx).Table(src.table).
		Select("COALESCE(SUM(quantity), 0)").
		Where(src.baseCol+" = ?", f.BaseID)
	if f.EquipmentID != nil {
		q = q.Where("equipment_id = ?", *f.EquipmentID)
	}
	if metric == ledger.MetricOpening {
		if ub := f.OpeningUpperBound(); ub != nil {
			q = applyRange(q, src.dateCol, entity.DateRange{To: ub})
		}
	} else {
		q = applyRange(q, src.dateCol, f.Range)
	}
	var total int64
	if err := q.Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("sum %s: %w", metric, err)
	}
	return total, nil
}
