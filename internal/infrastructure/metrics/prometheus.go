// Package metrics expone métricas Prometheus del libro de movimientos.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Intendencia-api/internal/application/ports"
)

// Namespace prefijo de todas las métricas.
const Namespace = "intendencia"

var _ ports.MetricsRecorder = (*Recorder)(nil)

// Recorder implementa ports.MetricsRecorder sobre su propio registro Prometheus.
type Recorder struct {
	registry         *prometheus.Registry
	movementsTotal   *prometheus.CounterVec
	rejectionsTotal  *prometheus.CounterVec
	balanceDurations prometheus.Histogram
}

// NewRecorder crea el registro con las métricas del dominio y las estándar de Go y del proceso.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewPedanticRegistry(),
		movementsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "movements_recorded_total",
				Help:      "Total de movimientos registrados por tipo",
			},
			[]string{"kind"},
		),
		rejectionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "movements_rejected_total",
				Help:      "Total de movimientos rechazados por tipo y código de error",
			},
			[]string{"kind", "code"},
		),
		balanceDurations: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "balance_compute_seconds",
				Help:      "Duración del cálculo de balance",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}
	r.registry.MustRegister(
		r.movementsTotal,
		r.rejectionsTotal,
		r.balanceDurations,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return r
}

func (r *Recorder) MovementRecorded(kind string) {
	r.movementsTotal.WithLabelValues(kind).Inc()
}

func (r *Recorder) MovementRejected(kind, code string) {
	r.rejectionsTotal.WithLabelValues(kind, code).Inc()
}

func (r *Recorder) BalanceComputed(seconds float64) {
	r.balanceDurations.Observe(seconds)
}

// Handler sirve el registro en formato de exposición Prometheus.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry devuelve el registro subyacente.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
