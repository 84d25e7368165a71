// Package observability wires the engine's render pipeline into Prometheus
// metrics and OpenTelemetry tracing. It has no dependency on pkg/engine —
// the engine depends on this package, never the reverse — so it can be
// reused by pkg/wsrenderer or a consuming application without pulling in
// the reconciler.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures NewMetrics, grounded on the teacher's
// middleware.MetricsConfig (pkg/middleware/metrics.go).
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "gridui").
	Namespace string
	// Subsystem is the metrics subsystem (default: "").
	Subsystem string
	// ConstLabels are constant labels added to every metric.
	ConstLabels prometheus.Labels
	// Registry is the Prometheus registry to register against (default:
	// prometheus.DefaultRegisterer).
	Registry prometheus.Registerer
}

// MetricsOption configures NewMetrics.
type MetricsOption func(*MetricsConfig)

func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) { c.Namespace = namespace }
}

func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) { c.Subsystem = subsystem }
}

func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) { c.ConstLabels = labels }
}

func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) { c.Registry = registry }
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "gridui",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the reconciler's Prometheus instruments: render duration,
// patch size, GC-evicted-path count, and render-error count (SPEC_FULL.md
// Domain Stack table).
type Metrics struct {
	renderDuration prometheus.Histogram
	patchDiffs     prometheus.Histogram
	evictedPaths   prometheus.Counter
	renderErrors   prometheus.Counter
}

// NewMetrics registers a fresh set of instruments against cfg.Registry.
func NewMetrics(opts ...MetricsOption) *Metrics {
	cfg := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	factory := promauto.With(cfg.Registry)

	return &Metrics{
		renderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Duration of a single reconciler render pass.",
			ConstLabels: cfg.ConstLabels,
			Buckets:     prometheus.DefBuckets,
		}),
		patchDiffs: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "patch_diff_count",
			Help:        "Number of Set/Clear diffs emitted per render.",
			ConstLabels: cfg.ConstLabels,
			Buckets:     []float64{0, 1, 2, 4, 8, 16, 32, 64, 128, 256},
		}),
		evictedPaths: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "gc_evicted_paths_total",
			Help:        "Total component paths evicted by the reconciler's mark-and-sweep GC.",
			ConstLabels: cfg.ConstLabels,
		}),
		renderErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "render_errors_total",
			Help:        "Total renders aborted by a panic or a Renderer.Apply failure.",
			ConstLabels: cfg.ConstLabels,
		}),
	}
}

// ObserveRender records one completed render's duration and patch size.
// Safe to call on a nil *Metrics (observability is always optional).
func (m *Metrics) ObserveRender(d time.Duration, patchDiffCount int) {
	if m == nil {
		return
	}
	m.renderDuration.Observe(d.Seconds())
	m.patchDiffs.Observe(float64(patchDiffCount))
}

// AddEvictedPaths increments the GC-evicted-path counter by n.
func (m *Metrics) AddEvictedPaths(n int) {
	if m == nil || n == 0 {
		return
	}
	m.evictedPaths.Add(float64(n))
}

// IncRenderErrors increments the render-error counter.
func (m *Metrics) IncRenderErrors() {
	if m == nil {
		return
	}
	m.renderErrors.Inc()
}
