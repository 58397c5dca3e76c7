package middleware

import (
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/wayfind-dev/wayfind/pkg/navigator"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "wayfind").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for navigation duration.
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

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace:   "wayfind",
		Subsystem:   "",
		ConstLabels: nil,
		Buckets:     prometheus.DefBuckets,
		Registry:    prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus metrics for navigation.
type metrics struct {
	navigationsTotal   *prometheus.CounterVec
	navigationDuration *prometheus.HistogramVec
	navigationErrors   *prometheus.CounterVec
	historyDepth       prometheus.Gauge
	deepLinksTotal     *prometheus.CounterVec
}

// globalMetrics is the singleton metrics instance.
// Created on first call to Prometheus().
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

// initMetrics initializes the Prometheus metrics.
func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		navigationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_total",
			Help:        "Total number of navigations by operation, route and status",
			ConstLabels: config.ConstLabels,
		}, []string{"op", "route", "status"}),

		navigationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_duration_seconds",
			Help:        "Navigation duration in seconds, including the host mount",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"op"}),

		navigationErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_errors_total",
			Help:        "Total number of navigation errors by operation and error type",
			ConstLabels: config.ConstLabels,
		}, []string{"op", "error_type"}),

		historyDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "history_depth",
			Help:        "Current navigation history stack depth",
			ConstLabels: config.ConstLabels,
		}),

		deepLinksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "deep_links_total",
			Help:        "Total number of deep links received by status",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),
	}
}

// Prometheus creates middleware that collects Prometheus metrics for
// navigations.
//
// Metrics collected:
//   - wayfind_navigations_total: Counter of navigations by op, route and status
//   - wayfind_navigation_duration_seconds: Histogram of navigation duration
//   - wayfind_navigation_errors_total: Counter of navigation errors by op and error type
//   - wayfind_history_depth: Gauge of the history stack depth
//   - wayfind_deep_links_total: Counter of deep links (when RecordDeepLink is called)
//
// The route label uses the route id, never the raw path, so label
// cardinality stays bounded by the route table.
//
// Example:
//
//	nav := navigator.New(registry)
//	nav.Use(middleware.Prometheus(
//	    middleware.WithNamespace("myapp"),
//	))
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.Handler())
func Prometheus(opts ...MetricsOption) navigator.Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	// Initialize metrics once
	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return navigator.MiddlewareFunc(func(ev *navigator.Event, next func() error) error {
		start := time.Now()

		err := next()

		duration := time.Since(start).Seconds()
		m.navigationDuration.WithLabelValues(ev.Op).Observe(duration)

		route := "none"
		if ev.Route != nil {
			route = ev.Route.RouteID
		}

		status := "success"
		if err != nil {
			status = "error"
			m.navigationErrors.WithLabelValues(ev.Op, categorizeError(err)).Inc()
		} else {
			m.historyDepth.Set(float64(ev.Depth))
		}
		m.navigationsTotal.WithLabelValues(ev.Op, route, status).Inc()

		return err
	})
}

// categorizeError returns a category for the error type. Categories
// come from the resolver error taxonomy, which keeps the label set
// closed regardless of error message contents.
func categorizeError(err error) string {
	var missing *router.MissingParamError
	var mismatch *router.ParamTypeMismatchError
	switch {
	case errors.Is(err, router.ErrNotFound):
		return "not_found"
	case errors.Is(err, router.ErrMalformedPath):
		return "malformed_path"
	case errors.As(err, &missing):
		return "missing_param"
	case errors.As(err, &mismatch):
		return "type_mismatch"
	case errors.Is(err, navigator.ErrNoHistory):
		return "no_history"
	default:
		return "internal"
	}
}

// RecordDeepLink records a received deep link. Status is "accepted",
// "rejected" or "failed". No-op until Prometheus() has initialized the
// metrics.
func RecordDeepLink(status string) {
	if globalMetrics != nil {
		globalMetrics.deepLinksTotal.WithLabelValues(status).Inc()
	}
}

// Collector exposes the metrics for use in custom registrations and
// tests.
type Collector struct {
	navigationsTotal   *prometheus.CounterVec
	navigationDuration *prometheus.HistogramVec
	navigationErrors   *prometheus.CounterVec
	historyDepth       prometheus.Gauge
	deepLinksTotal     *prometheus.CounterVec
}

// GetMetrics returns the global metrics collector.
// Returns nil if Prometheus middleware has not been initialized.
func GetMetrics() *Collector {
	if globalMetrics == nil {
		return nil
	}
	return &Collector{
		navigationsTotal:   globalMetrics.navigationsTotal,
		navigationDuration: globalMetrics.navigationDuration,
		navigationErrors:   globalMetrics.navigationErrors,
		historyDepth:       globalMetrics.historyDepth,
		deepLinksTotal:     globalMetrics.deepLinksTotal,
	}
}

// NavigationsTotal returns the navigations counter, labelled by op,
// route and status.
func (c *Collector) NavigationsTotal() *prometheus.CounterVec {
	return c.navigationsTotal
}

// NavigationDuration returns the navigation duration histogram,
// labelled by op.
func (c *Collector) NavigationDuration() *prometheus.HistogramVec {
	return c.navigationDuration
}

// NavigationErrors returns the navigation error counter, labelled by
// op and error type.
func (c *Collector) NavigationErrors() *prometheus.CounterVec {
	return c.navigationErrors
}

// HistoryDepth returns the history depth gauge.
func (c *Collector) HistoryDepth() prometheus.Gauge {
	return c.historyDepth
}

// DeepLinksTotal returns the deep link counter, labelled by status.
func (c *Collector) DeepLinksTotal() *prometheus.CounterVec {
	return c.deepLinksTotal
}
