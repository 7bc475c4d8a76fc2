package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "symdiff"

	// OutcomeSuccess labels a diff that produced a result.
	OutcomeSuccess = "success"
	// OutcomeInvalid labels a diff rejected because of malformed input.
	OutcomeInvalid = "invalid"
	// OutcomeError labels a diff that failed for any other reason.
	OutcomeError = "error"
)

// Metrics holds the collectors for diff operations.
type Metrics struct {
	registry     *prometheus.Registry
	computations *prometheus.CounterVec
	duration     prometheus.Histogram
	inputSize    *prometheus.HistogramVec
	resultSize   prometheus.Histogram
}

// New creates the collectors on a dedicated registry, along with the Go runtime collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		computations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "computations_total",
			Help:      "Number of symmetric difference computations by outcome",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "computation_duration_seconds",
			Help:      "Time spent computing symmetric differences",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		inputSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "input_records",
			Help:      "Number of records per input collection",
			Buckets:   prometheus.ExponentialBuckets(1, 10, 7),
		}, []string{"side"}),
		resultSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "result_records",
			Help:      "Number of records in the symmetric difference",
			Buckets:   prometheus.ExponentialBuckets(1, 10, 7),
		}),
	}
	m.registry.MustRegister(
		m.computations,
		m.duration,
		m.inputSize,
		m.resultSize,
		collectors.NewGoCollector(),
	)
	return m
}

// ObserveInputs records the sizes of both input collections.
func (m *Metrics) ObserveInputs(left, right int) {
	if m == nil {
		return
	}
	m.inputSize.WithLabelValues("a").Observe(float64(left))
	m.inputSize.WithLabelValues("b").Observe(float64(right))
}

// ObserveComputation records one computation. results is ignored unless outcome is OutcomeSuccess.
func (m *Metrics) ObserveComputation(outcome string, took time.Duration, results int) {
	if m == nil {
		return
	}
	m.computations.WithLabelValues(outcome).Inc()
	if outcome == OutcomeSuccess {
		m.duration.Observe(took.Seconds())
		m.resultSize.Observe(float64(results))
	}
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
