// Package metrics exports reactivity engine activity as Prometheus metrics.
//
// Install it on a System with reactivity.WithInstrument:
//
//	reg := prometheus.NewRegistry()
//	rs := reactivity.New(reactivity.WithInstrument(metrics.New(metrics.WithRegistry(reg))))
package metrics

import (
	"time"

	"github.com/delaneyj/signalgraph/reactivity"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config configures the Prometheus instrument.
type Config struct {
	// Namespace is the metrics namespace (default: "signalgraph").
	Namespace string

	// Subsystem is the metrics subsystem (default: "reactivity").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for durations.
	// Default: exponential from 1µs to ~1s.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

type Option func(*Config)

func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the registry the collectors are registered with.
// Registering twice with the same registry panics, as with promauto.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "signalgraph",
		Subsystem: "reactivity",
		Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 11),
		Registry:  prometheus.DefaultRegisterer,
	}
}

const (
	statusOK    = "ok"
	statusError = "error"
)

// Instrument is a reactivity.Instrument backed by Prometheus collectors.
type Instrument struct {
	effectRuns        *prometheus.CounterVec
	effectDuration    prometheus.Histogram
	computedRefreshes *prometheus.CounterVec
	computedDuration  prometheus.Histogram
	batchFlushes      *prometheus.CounterVec
	batchDuration     prometheus.Histogram
	batchTriggered    prometheus.Histogram
}

var _ reactivity.Instrument = (*Instrument)(nil)

// New creates the collectors and registers them.
//
// Metrics collected:
//   - signalgraph_reactivity_effect_runs_total: effect runs by status
//   - signalgraph_reactivity_effect_duration_seconds: effect run duration
//   - signalgraph_reactivity_computed_refreshes_total: getter evaluations by result
//   - signalgraph_reactivity_computed_duration_seconds: getter evaluation duration
//   - signalgraph_reactivity_batch_flushes_total: outermost batch drains by status
//   - signalgraph_reactivity_batch_duration_seconds: drain duration
//   - signalgraph_reactivity_batch_triggered_effects: effects run per drain
func New(opts ...Option) *Instrument {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Instrument{
		effectRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "effect_runs_total",
			Help:        "Total number of effect runs",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		effectDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "effect_duration_seconds",
			Help:        "Effect run duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		computedRefreshes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "computed_refreshes_total",
			Help:        "Total number of computed getter evaluations",
			ConstLabels: config.ConstLabels,
		}, []string{"result"}),

		computedDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "computed_duration_seconds",
			Help:        "Computed getter evaluation duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		batchFlushes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "batch_flushes_total",
			Help:        "Total number of outermost batch drains that ran effects",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		batchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "batch_duration_seconds",
			Help:        "Batch drain duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		batchTriggered: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "batch_triggered_effects",
			Help:        "Number of effects triggered per batch drain",
			ConstLabels: config.ConstLabels,
			Buckets:     prometheus.ExponentialBuckets(1, 2, 12),
		}),
	}
}

func status(err error) string {
	if err != nil {
		return statusError
	}
	return statusOK
}

func (in *Instrument) EffectRan(d time.Duration, err error) {
	in.effectRuns.WithLabelValues(status(err)).Inc()
	in.effectDuration.Observe(d.Seconds())
}

func (in *Instrument) ComputedRefreshed(changed bool, d time.Duration) {
	result := "unchanged"
	if changed {
		result = "changed"
	}
	in.computedRefreshes.WithLabelValues(result).Inc()
	in.computedDuration.Observe(d.Seconds())
}

func (in *Instrument) BatchFlushed(triggered int, d time.Duration, err error) {
	in.batchFlushes.WithLabelValues(status(err)).Inc()
	in.batchDuration.Observe(d.Seconds())
	in.batchTriggered.Observe(float64(triggered))
}
