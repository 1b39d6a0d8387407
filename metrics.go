package layoutkit

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures Metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "layoutkit").
	Namespace string

	// Buckets are the histogram buckets for stage durations.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use. Nil leaves the collectors
	// unregistered.
	Registry prometheus.Registerer
}

// MetricsOption configures Metrics.
type MetricsOption func(*MetricsConfig)

// WithMetricsNamespace sets the metrics namespace.
func WithMetricsNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithMetricsBuckets sets the histogram buckets.
func WithMetricsBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "layoutkit",
		Buckets:   prometheus.DefBuckets,
	}
}

// Metrics holds the Prometheus collectors for passes and views.
//
// Collected:
//   - layoutkit_passes_total: passes by outcome
//   - layoutkit_views_total: views by operation (built, reused, torn_down)
//   - layoutkit_node_errors_total: node failures by phase
//   - layoutkit_stage_duration_seconds: layout and apply durations
//   - layoutkit_last_applied_generation: generation of the last applied pass
type Metrics struct {
	passes         *prometheus.CounterVec
	views          *prometheus.CounterVec
	nodeErrors     *prometheus.CounterVec
	stageDuration  *prometheus.HistogramVec
	lastGeneration prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with the configured
// registry.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		passes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "passes_total",
			Help:      "Total number of layout passes by outcome",
		}, []string{"outcome"}),

		views: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "views_total",
			Help:      "Total number of views built, reused and torn down",
		}, []string{"op"}),

		nodeErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "node_errors_total",
			Help:      "Total number of node failures during apply",
		}, []string{"phase"}),

		stageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of pass stages in seconds",
			Buckets:   config.Buckets,
		}, []string{"stage"}),

		lastGeneration: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: config.Namespace,
			Name:      "last_applied_generation",
			Help:      "Generation of the most recently applied pass",
		}),
	}
}

func (m *Metrics) observeApply(r ApplyReport) {
	if m == nil {
		return
	}
	m.views.WithLabelValues("built").Add(float64(r.Built))
	m.views.WithLabelValues("reused").Add(float64(r.Reused))
	m.views.WithLabelValues("torn_down").Add(float64(r.TornDown))
	for _, e := range r.Errors {
		m.nodeErrors.WithLabelValues(string(e.Phase)).Inc()
	}
}

func (m *Metrics) observePass(outcome PassOutcome, generation uint64) {
	if m == nil {
		return
	}
	m.passes.WithLabelValues(outcome.String()).Inc()
	if outcome == PassApplied {
		m.lastGeneration.Set(float64(generation))
	}
}

func (m *Metrics) observeStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}
