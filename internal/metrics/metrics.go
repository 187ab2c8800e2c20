package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the prediction endpoint.
type Metrics struct {
	predictions      *prometheus.CounterVec
	batchSize        prometheus.Histogram
	inferenceLatency prometheus.Histogram
}

// NewMetrics creates and registers all prediction metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		predictions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "predictions_total",
				Help: "Total number of prediction requests by outcome",
			},
			[]string{"outcome"},
		),
		batchSize: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "prediction_batch_size",
				Help:    "Number of locations per prediction request",
				Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250, 500},
			},
		),
		inferenceLatency: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "prediction_latency_ms",
				Help:    "End-to-end latency of the prediction pipeline in milliseconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250},
			},
		),
	}
}

// RecordOutcome increments the prediction counter for the given outcome
// ("ok", "validation_error" or "inference_error").
func (m *Metrics) RecordOutcome(outcome string) {
	m.predictions.WithLabelValues(outcome).Inc()
}

// ObserveBatchSize records the number of locations in a request.
func (m *Metrics) ObserveBatchSize(n int) {
	m.batchSize.Observe(float64(n))
}

// ObserveLatency records the pipeline latency of a request.
func (m *Metrics) ObserveLatency(milliseconds float64) {
	m.inferenceLatency.Observe(milliseconds)
}
