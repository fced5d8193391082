package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/xlittlerag/groups-assigner/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Metric registration is lazy: collectors are registered on first use so that
// constructing the collector never panics on duplicate registration in tests.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	drawDuration       *prometheus.HistogramVec
	drawAttempts       prometheus.Histogram
	bestCollisions     prometheus.Gauge
	validationFailures prometheus.Counter
	storeOpDuration    *prometheus.HistogramVec
	requests           *prometheus.CounterVec
	requestLatency     *prometheus.HistogramVec
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "assigner" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "assigner"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.drawDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "draw_duration_seconds",
			Help:      "Wall-clock duration of draw runs by outcome.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2.5, 12), // 1ms .. ~10m
		}, []string{"outcome"})

		p.drawAttempts = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "draw_attempts",
			Help:      "Placement attempts consumed per draw.",
			Buckets:   []float64{1, 2, 5, 10, 25, 50, 100},
		})

		p.bestCollisions = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "best_collisions",
			Help:      "Collision count of the most recently returned assignment.",
		})

		p.validationFailures = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "validation_failures_total",
			Help:      "Total input sets rejected by validation.",
		})

		p.storeOpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Latency of dataset/result store operations by op.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"op"})

		p.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "service",
			Name:      "requests_total",
			Help:      "Total handled requests by subject and outcome.",
		}, []string{"subject", "outcome"})

		p.requestLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "service",
			Name:      "request_duration_seconds",
			Help:      "Request handling latency by subject.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2.5, 12),
		}, []string{"subject"})

		p.reg.MustRegister(p.drawDuration)
		p.reg.MustRegister(p.drawAttempts)
		p.reg.MustRegister(p.bestCollisions)
		p.reg.MustRegister(p.validationFailures)
		p.reg.MustRegister(p.storeOpDuration)
		p.reg.MustRegister(p.requests)
		p.reg.MustRegister(p.requestLatency)
	})
}

// RecordDrawDuration observes the duration of one draw run by outcome.
func (p *PrometheusCollector) RecordDrawDuration(seconds float64, outcome string) {
	p.ensureRegistered()
	p.drawDuration.WithLabelValues(outcome).Observe(seconds)
}

// RecordDrawAttempts observes how many placement attempts a draw used.
func (p *PrometheusCollector) RecordDrawAttempts(count int) {
	p.ensureRegistered()
	p.drawAttempts.Observe(float64(count))
}

// RecordBestCollisions sets the collision count of the latest result.
func (p *PrometheusCollector) RecordBestCollisions(count int) {
	p.ensureRegistered()
	p.bestCollisions.Set(float64(count))
}

// RecordValidationFailure increments the rejected-input counter.
func (p *PrometheusCollector) RecordValidationFailure() {
	p.ensureRegistered()
	p.validationFailures.Inc()
}

// RecordStoreOperationDuration observes store operation latency.
func (p *PrometheusCollector) RecordStoreOperationDuration(operation string, seconds float64) {
	p.ensureRegistered()
	p.storeOpDuration.WithLabelValues(operation).Observe(seconds)
}

// RecordRequest records one handled request and its latency.
func (p *PrometheusCollector) RecordRequest(subject string, outcome string, seconds float64) {
	p.ensureRegistered()
	p.requests.WithLabelValues(subject, outcome).Inc()
	p.requestLatency.WithLabelValues(subject).Observe(seconds)
}
