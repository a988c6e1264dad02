// Package rbmetrics holds the Prometheus instrumentation for rulebox's
// batch evaluation path.
package rbmetrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// BatchMetrics tracks throughput and latency of AssignLabelsBatch calls made
// through the CLI.
type BatchMetrics struct {
	// Duration observes the wall-clock time of a single batch call.
	// Buckets: 1ms .. 10s, matching the scale of realistic rule-document
	// batch workloads.
	Duration prometheus.Histogram

	// Inputs counts the total number of texts classified across all batch
	// calls.
	Inputs prometheus.Counter

	// LabelsAssigned counts the total number of labels assigned across all
	// batch calls (a single input may contribute zero or many).
	LabelsAssigned prometheus.Counter

	registry *prometheus.Registry
}

// New creates and registers batch metrics against a private registry, so
// repeated test construction never panics on duplicate registration.
func New() *BatchMetrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &BatchMetrics{
		Duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rulebox",
			Subsystem: "batch",
			Name:      "duration_seconds",
			Help:      "Duration of AssignLabelsBatch calls in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		Inputs: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "rulebox",
			Subsystem: "batch",
			Name:      "inputs_total",
			Help:      "Total number of texts submitted to AssignLabelsBatch",
		}),
		LabelsAssigned: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "rulebox",
			Subsystem: "batch",
			Name:      "labels_assigned_total",
			Help:      "Total number of labels assigned across all batch calls",
		}),
		registry: reg,
	}
}

// Handler returns the HTTP handler exposing metrics in Prometheus exposition
// format, for wiring into an http.ServeMux under Config.Metrics.Path.
func (m *BatchMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Observe records one AssignLabelsBatch call's duration and result shape.
func (m *BatchMetrics) Observe(seconds float64, inputCount, labelCount int) {
	m.Duration.Observe(seconds)
	m.Inputs.Add(float64(inputCount))
	m.LabelsAssigned.Add(float64(labelCount))
}
