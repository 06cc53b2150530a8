package middleware

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/vdiff/internal/errors"
	"github.com/vango-dev/vdiff/pkg/vdom"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vdiff").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for diff duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
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
		Namespace: "vdiff",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// metrics holds the collectors shared by every diff through one middleware.
type metrics struct {
	diffsTotal   *prometheus.CounterVec
	diffDuration prometheus.Histogram
	patchesTotal *prometheus.CounterVec
	diffErrors   *prometheus.CounterVec
}

func newMetrics(config MetricsConfig) *metrics {
	return &metrics{
		diffsTotal: register(config.Registry, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "diffs_total",
			Help:        "Total number of diffs computed",
			ConstLabels: config.ConstLabels,
		}, []string{"status"})),

		diffDuration: register(config.Registry, prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "diff_duration_seconds",
			Help:        "Diff duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		})),

		patchesTotal: register(config.Registry, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patches_total",
			Help:        "Total number of patches emitted, by operation",
			ConstLabels: config.ConstLabels,
		}, []string{"op"})),

		diffErrors: register(config.Registry, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "diff_errors_total",
			Help:        "Total number of failed diffs, by error code",
			ConstLabels: config.ConstLabels,
		}, []string{"code"})),
	}
}

// register registers c, reusing the collector already registered under the
// same description so that several middlewares can share one registry.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if stderrors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

// Prometheus creates middleware that records diff metrics.
//
// Metrics collected:
//   - vdiff_diffs_total: Counter of diffs by status (success, error)
//   - vdiff_diff_duration_seconds: Histogram of diff duration
//   - vdiff_patches_total: Counter of emitted patches by operation
//   - vdiff_diff_errors_total: Counter of failed diffs by error code
//
// It panics if the registry holds an incompatible collector under one of
// these names.
func Prometheus(opts ...MetricsOption) Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	m := newMetrics(config)

	return func(next DiffFunc) DiffFunc {
		return func(ctx context.Context, prev, nextTree vdom.Node) ([]vdom.Patch, error) {
			start := time.Now()
			patches, err := next(ctx, prev, nextTree)
			m.diffDuration.Observe(time.Since(start).Seconds())

			if err != nil {
				m.diffsTotal.WithLabelValues("error").Inc()
				m.diffErrors.WithLabelValues(errorCode(err)).Inc()
				return nil, err
			}
			m.diffsTotal.WithLabelValues("success").Inc()
			for _, p := range patches {
				m.patchesTotal.WithLabelValues(p.Op.String()).Inc()
			}
			return patches, nil
		}
	}
}

// errorCode returns a low-cardinality label for err.
func errorCode(err error) string {
	var e *errors.Error
	switch {
	case stderrors.As(err, &e) && e.Code != "":
		return e.Code
	case stderrors.Is(err, context.Canceled):
		return "canceled"
	case stderrors.Is(err, context.DeadlineExceeded):
		return "deadline_exceeded"
	default:
		return "unknown"
	}
}
