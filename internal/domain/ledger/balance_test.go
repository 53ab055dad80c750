package ledger_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Intendencia-api/internal/domain"
	"github.com/jhoicas/Intendencia-api/internal/domain/entity"
	"github.com/jhoicas/Intendencia-api/internal/domain/ledger"
)

func TestReduce_EscenarioBaseAlpha(t *testing.T) {
	var r entity.BalanceReport
	err := ledger.Reduce(&r, ledger.Totals{
		ledger.MetricOpening:     100,
		ledger.MetricPurchases:   20,
		ledger.MetricTransferOut: 10,
		ledger.MetricExpended:    5,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(100), r.Opening)
	assert.Equal(t, int64(20), r.Purchases)
	assert.Equal(t, int64(0), r.TransferIn)
	assert.Equal(t, int64(10), r.TransferOut)
	assert.Equal(t, int64(0), r.Assigned)
	assert.Equal(t, int64(5), r.Expended)
	assert.Equal(t, int64(10), r.NetMovement)
	assert.Equal(t, int64(105), r.Closing)
}

// La asignación resta solo en el cierre, nunca en net_movement.
func TestReduce_AsignacionNoAfectaMovimientoNeto(t *testing.T) {
	var r entity.BalanceReport
	require.NoError(t, ledger.Reduce(&r, ledger.Totals{
		ledger.MetricOpening:    50,
		ledger.MetricPurchases:  10,
		ledger.MetricTransferIn: 4,
		ledger.MetricAssigned:   7,
	}))

	assert.Equal(t, int64(14), r.NetMovement)
	assert.Equal(t, int64(57), r.Closing)
}

func TestReduce_SinMovimientosTodoCero(t *testing.T) {
	var r entity.BalanceReport
	require.NoError(t, ledger.Reduce(&r, ledger.Totals{}))
	assert.Zero(t, r.Closing)
	assert.Zero(t, r.NetMovement)
}

func TestReduce_FormulaDeCierre(t *testing.T) {
	cases := []ledger.Totals{
		{ledger.MetricOpening: 0, ledger.MetricExpended: 3},
		{ledger.MetricOpening: 7, ledger.MetricPurchases: 1, ledger.MetricTransferIn: 2, ledger.MetricTransferOut: 3, ledger.MetricAssigned: 4, ledger.MetricExpended: 5},
		{ledger.MetricTransferOut: 1000},
	}
	for _, tc := range cases {
		var r entity.BalanceReport
		require.NoError(t, ledger.Reduce(&r, tc))
		want := r.Opening + r.Purchases + r.TransferIn - r.TransferOut - r.Assigned - r.Expended
		assert.Equal(t, want, r.Closing)
	}
}

func TestReduce_DesbordamientoDetectado(t *testing.T) {
	var r entity.BalanceReport
	err := ledger.Reduce(&r, ledger.Totals{
		ledger.MetricOpening:   math.MaxInt64,
		ledger.MetricPurchases: 1,
	})
	assert.ErrorIs(t, err, domain.ErrOverflow)

	_, err = ledger.AddChecked(math.MaxInt64, 1)
	assert.ErrorIs(t, err, domain.ErrOverflow)
}
