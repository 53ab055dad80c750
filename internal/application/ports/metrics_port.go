package ports

// MetricsRecorder define el puerto de salida para métricas operativas.
// El adaptador Prometheus vive en infrastructure/metrics; NopMetrics sirve para tests y CLI.
type MetricsRecorder interface {
	// MovementRecorded cuenta un movimiento persistido (kind: purchase, transfer...).
	MovementRecorded(kind string)
	// MovementRejected cuenta un movimiento rechazado con su código de error.
	MovementRejected(kind, code string)
	// BalanceComputed observa la duración en segundos de un cálculo de balance.
	BalanceComputed(seconds float64)
}

// NopMetrics implementación vacía de MetricsRecorder.
type NopMetrics struct{}

func (NopMetrics) MovementRecorded(string)         {}
func (NopMetrics) MovementRejected(string, string) {}
func (NopMetrics) BalanceComputed(float64)         {}
