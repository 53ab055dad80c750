// Package ledger contiene la regla de saldo (servicio de dominio puro, sin I/O).
package ledger

import (
	"math"

	"github.com/jhoicas/Intendencia-api/internal/domain"
	"github.com/jhoicas/Intendencia-api/internal/domain/entity"
)

// Metric identifica una de las seis sumas que alimentan el balance.
type Metric string

const (
	MetricOpening     Metric = "opening"
	MetricPurchases   Metric = "purchases"
	MetricTransferIn  Metric = "transfer_in"
	MetricTransferOut Metric = "transfer_out"
	MetricAssigned    Metric = "assigned"
	MetricExpended    Metric = "expended"
)

// Metrics lista las métricas en el orden en que se reportan.
var Metrics = []Metric{
	MetricOpening, MetricPurchases, MetricTransferIn,
	MetricTransferOut, MetricAssigned, MetricExpended,
}

// Totals sumas crudas por métrica. Una métrica ausente vale cero.
type Totals map[Metric]int64

// Reduce aplica la fórmula del balance:
//
//	net_movement = purchases + transfer_in - transfer_out
//	closing      = opening + net_movement - assigned - expended
//
// assigned y expended solo restan una vez, en el cierre; no afectan net_movement.
// Devuelve domain.ErrOverflow si algún paso excede int64.
func Reduce(report *entity.BalanceReport, t Totals) error {
	report.Opening = t[MetricOpening]
	report.Purchases = t[MetricPurchases]
	report.TransferIn = t[MetricTransferIn]
	report.TransferOut = t[MetricTransferOut]
	report.Assigned = t[MetricAssigned]
	report.Expended = t[MetricExpended]

	net, ok := add(report.Purchases, report.TransferIn)
	if ok {
		net, ok = sub(net, report.TransferOut)
	}
	if !ok {
		return domain.ErrOverflow
	}
	closing, ok := add(report.Opening, net)
	if ok {
		closing, ok = sub(closing, report.Assigned)
	}
	if ok {
		closing, ok = sub(closing, report.Expended)
	}
	if !ok {
		return domain.ErrOverflow
	}
	report.NetMovement = net
	report.Closing = closing
	return nil
}

// AddChecked suma dos cantidades detectando desbordamiento.
func AddChecked(a, b int64) (int64, error) {
	s, ok := add(a, b)
	if !ok {
		return 0, domain.ErrOverflow
	}
	return s, nil
}

func add(a, b int64) (int64, bool) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, false
	}
	return a + b, true
}

func sub(a, b int64) (int64, bool) {
	if (b < 0 && a > math.MaxInt64+b) || (b > 0 && a < math.MinInt64+b) {
		return 0, false
	}
	return a - b, true
}
