package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Intendencia-api/internal/domain/entity"
	"github.com/jhoicas/Intendencia-api/internal/domain/ledger"
	"github.com/jhoicas/Intendencia-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// metricSource tabla, columna de base y columna de fecha de cada métrica.
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

// LedgerRepo sumas agregadas del libro (read-only, usable con pool o tx).
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador de sumas.
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Sum devuelve SUM(quantity) de la métrica con COALESCE a 0.
// El stock inicial ignora el rango salvo la cota superior de OpeningUpperBound.
func (r *LedgerRepo) Sum(ctx context.Context, metric ledger.Metric, f repository.LedgerFilter) (int64, error) {
	src, ok := metricSources[metric]
	if !ok {
		return 0, fmt.Errorf("métrica desconocida: %s", metric)
	}
	w := &where{}
	w.add(src.baseCol+" = $%d", f.BaseID)
	if f.EquipmentID != nil {
		w.add("equipment_id = $%d", *f.EquipmentID)
	}
	if metric == ledger.MetricOpening {
		if ub := f.OpeningUpperBound(); ub != nil {
			w.dateRange(src.dateCol, entity.DateRange{To: ub})
		}
	} else {
		w.dateRange(src.dateCol, f.Range)
	}
	query := `SELECT COALESCE(SUM(quantity), 0)::BIGINT FROM ` + src.table + w.String()
	var total int64
	if err := r.q.QueryRow(ctx, query, w.args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum %s: %w", metric, err)
	}
	return total, nil
}
