// Package ledger calcula el balance de una base a partir del libro de movimientos.
//
// Las seis sumas se leen en paralelo desde el LedgerRepository y se reducen con
// la regla de dominio (domain/ledger). Nada se guarda: el reporte es derivado.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Intendencia-api/internal/application/ports"
	"github.com/jhoicas/Intendencia-api/internal/domain"
	"github.com/jhoicas/Intendencia-api/internal/domain/entity"
	rule "github.com/jhoicas/Intendencia-api/internal/domain/ledger"
	"github.com/jhoicas/Intendencia-api/internal/domain/policy"
	"github.com/jhoicas/Intendencia-api/internal/domain/repository"
)

// Options banderas de cálculo.
type Options struct {
	// OpeningWindowed cuenta solo las fotos de stock inicial con fecha <= inicio del rango.
	OpeningWindowed bool
}

// BalanceQuery parámetros de un balance.
type BalanceQuery struct {
	BaseID      int64
	EquipmentID *int64
	Range       entity.DateRange
}

// Aggregator caso de uso de lectura del balance.
type Aggregator struct {
	repo    repository.LedgerRepository
	policy  *policy.Policy
	metrics ports.MetricsRecorder
	log     zerolog.Logger
	opts    Options
}

// NewAggregator construye el agregador. metrics puede ser nil.
func NewAggregator(repo repository.LedgerRepository, pol *policy.Policy, metrics ports.MetricsRecorder, log zerolog.Logger, opts Options) *Aggregator {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &Aggregator{repo: repo, policy: pol, metrics: metrics, log: log, opts: opts}
}

// ComputeBalance autoriza balance:read sobre q.BaseID y luego calcula.
// No se lee nada del libro si la identidad no tiene acceso.
func (a *Aggregator) ComputeBalance(ctx context.Context, id entity.Identity, q BalanceQuery) (*entity.BalanceReport, error) {
	if !q.Range.Valid() {
		return nil, domain.ErrInvalidDateRange
	}
	if d := a.policy.Authorize(id, policy.ActionReadBalance, q.BaseID); !d.Allowed {
		a.log.Warn().Int64("user_id", id.UserID).Int64("base_id", q.BaseID).Str("reason", d.Reason).Msg("balance denegado")
		return nil, d.Err()
	}
	return a.Compute(ctx, q)
}

// Compute calcula sin autorizar (uso interno: dashboard ya autorizado, CLI).
func (a *Aggregator) Compute(ctx context.Context, q BalanceQuery) (*entity.BalanceReport, error) {
	if !q.Range.Valid() {
		return nil, domain.ErrInvalidDateRange
	}
	start := time.Now()
	f := a.filter(q)

	type sumResult struct {
		metric rule.Metric
		value  int64
		err    error
	}
	ch := make(chan sumResult, len(rule.Metrics))
	for _, m := range rule.Metrics {
		go func(m rule.Metric) {
			v, err := a.repo.Sum(ctx, m, f)
			ch <- sumResult{metric: m, value: v, err: err}
		}(m)
	}

	totals := make(rule.Totals, len(rule.Metrics))
	var firstErr error
	for range rule.Metrics {
		r := <-ch
		if r.err != nil && firstErr == nil {
			firstErr = fmt.Errorf("balance: suma %s: %w", r.metric, r.err)
		}
		totals[r.metric] = r.value
	}
	if firstErr != nil {
		return nil, firstErr
	}

	report, err := reduce(q, totals)
	if err != nil {
		return nil, err
	}
	a.metrics.BalanceComputed(time.Since(start).Seconds())
	return report, nil
}

func (a *Aggregator) filter(q BalanceQuery) repository.LedgerFilter {
	return Filter(q, a.opts)
}

// Filter traduce una consulta de balance al filtro del repositorio.
func Filter(q BalanceQuery, opts Options) repository.LedgerFilter {
	return repository.LedgerFilter{
		BaseID:          q.BaseID,
		EquipmentID:     q.EquipmentID,
		Range:           q.Range,
		OpeningWindowed: opts.OpeningWindowed,
	}
}

// ComputeSequential calcula el balance leyendo las sumas una tras otra.
// Es la variante para repositorios ligados a una transacción, que no admiten uso concurrente.
func ComputeSequential(ctx context.Context, repo repository.LedgerRepository, q BalanceQuery, opts Options) (*entity.BalanceReport, error) {
	f := Filter(q, opts)
	totals := make(rule.Totals, len(rule.Metrics))
	for _, m := range rule.Metrics {
		v, err := repo.Sum(ctx, m, f)
		if err != nil {
			return nil, fmt.Errorf("balance: suma %s: %w", m, err)
		}
		totals[m] = v
	}
	return reduce(q, totals)
}

func reduce(q BalanceQuery, totals rule.Totals) (*entity.BalanceReport, error) {
	report := &entity.BalanceReport{
		BaseID:      q.BaseID,
		EquipmentID: q.EquipmentID,
		Range:       q.Range,
	}
	if err := rule.Reduce(report, totals); err != nil {
		return nil, fmt.Errorf("balance base %d: %w", q.BaseID, err)
	}
	return report, nil
}
