// Package metrics exports layout solver activity to Prometheus.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"layoutkit/internal/layout"
)

// Config configures the collectors.
type Config struct {
	// Namespace is the metrics namespace (default: "layoutkit").
	Namespace string

	// Subsystem is the metrics subsystem (default: "layout").
	Subsystem string

	// Buckets are the histogram buckets for solve duration.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: a fresh prometheus.Registry
	Registry prometheus.Registerer
}

// Option configures the collectors.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "layoutkit",
		Subsystem: "layout",
		Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
	}
}

// Collector implements layout.Observer with Prometheus metrics.
//
// Metrics collected:
//   - layoutkit_layout_updates_total: UpdateLayout calls by result
//   - layoutkit_layout_update_duration_seconds: UpdateLayout duration
//   - layoutkit_layout_changes_total: edges reported as moved
//   - layoutkit_layout_constraints: constraints installed after the last update
//   - layoutkit_layout_suggestions_total: edit suggestions by result
type Collector struct {
	updates     *prometheus.CounterVec
	duration    prometheus.Histogram
	changes     prometheus.Counter
	constraints prometheus.Gauge
	suggestions *prometheus.CounterVec
	registry    prometheus.Registerer
}

// New registers the collectors.
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Registry == nil {
		config.Registry = prometheus.NewRegistry()
	}
	factory := promauto.With(config.Registry)

	return &Collector{
		registry: config.Registry,
		updates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "updates_total",
			Help:      "Total number of layout updates by result",
		}, []string{"result"}),

		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "update_duration_seconds",
			Help:      "Layout update duration in seconds",
			Buckets:   config.Buckets,
		}),

		changes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "changes_total",
			Help:      "Total number of widget edges reported as moved",
		}),

		constraints: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "constraints",
			Help:      "Number of constraints installed in the solver",
		}),

		suggestions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "suggestions_total",
			Help:      "Total number of edit suggestions by result",
		}, []string{"result"}),
	}
}

// Registry returns the registerer the collectors live in.
func (c *Collector) Registry() prometheus.Registerer { return c.registry }

// Gatherer returns the registry as a Gatherer for serving, falling back to
// the default gatherer when the registerer cannot gather.
func (c *Collector) Gatherer() prometheus.Gatherer {
	if g, ok := c.registry.(prometheus.Gatherer); ok {
		return g
	}
	return prometheus.DefaultGatherer
}

// ObserveUpdate implements layout.Observer.
func (c *Collector) ObserveUpdate(s layout.UpdateStats) {
	c.updates.WithLabelValues(result(s.Err)).Inc()
	c.duration.Observe(s.Duration.Seconds())
	c.changes.Add(float64(s.Changes))
	c.constraints.Set(float64(s.Constraints))
}

// ObserveSuggest implements layout.Observer.
func (c *Collector) ObserveSuggest(err error) {
	c.suggestions.WithLabelValues(result(err)).Inc()
}

func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, layout.ErrInfeasible):
		return "infeasible"
	case errors.Is(err, layout.ErrNotEditable):
		return "not_editable"
	default:
		return "error"
	}
}

var _ layout.Observer = (*Collector)(nil)
