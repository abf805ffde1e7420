package observe

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	rerrors "github.com/vango-dev/reconciler/internal/errors"
	"github.com/vango-dev/reconciler/pkg/element"
	"github.com/vango-dev/reconciler/pkg/reconcile"
)

// MetricsConfig configures the Prometheus observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "reconcile").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for tree operation duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus observer.
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
		Namespace: "reconcile",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics is a reconcile.Observer that records Prometheus metrics.
//
// Metrics collected:
//   - reconcile_tree_operations_total: root operations by op and status
//   - reconcile_tree_duration_seconds: root operation duration by op
//   - reconcile_tree_errors_total: failed root operations by op and error code
//   - reconcile_instance_events_total: instance transitions by event and kind
//   - reconcile_host_operations_total: applied child operations by op
//   - reconcile_mounted_instances: instances currently mounted
//
// Example:
//
//	m := observe.NewMetrics(observe.WithNamespace("preview"))
//	mgr := reconcile.NewManager(doc, reconcile.WithObserver(m))
//	http.Handle("/metrics", promhttp.Handler())
type Metrics struct {
	treeOps      *prometheus.CounterVec
	treeDuration *prometheus.HistogramVec
	treeErrors   *prometheus.CounterVec
	events       *prometheus.CounterVec
	hostOps      *prometheus.CounterVec
	mounted      prometheus.Gauge
}

// NewMetrics registers the reconciler metrics and returns an observer
// recording into them. Registering twice on the same registry panics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		treeOps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "tree_operations_total",
			Help:        "Total number of root-level reconcile operations",
			ConstLabels: config.ConstLabels,
		}, []string{"op", "status"}),

		treeDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "tree_duration_seconds",
			Help:        "Root-level reconcile operation duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"op"}),

		treeErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "tree_errors_total",
			Help:        "Total number of failed root-level operations",
			ConstLabels: config.ConstLabels,
		}, []string{"op", "code"}),

		events: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "instance_events_total",
			Help:        "Total number of instance lifecycle transitions",
			ConstLabels: config.ConstLabels,
		}, []string{"event", "kind"}),

		hostOps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "host_operations_total",
			Help:        "Total number of queued child operations applied to the host tree",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		mounted: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "mounted_instances",
			Help:        "Number of instances currently mounted",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// TreeStarted implements reconcile.Observer.
func (m *Metrics) TreeStarted(op reconcile.TreeOp, _ string) func(error) {
	start := time.Now()
	return func(err error) {
		m.treeDuration.WithLabelValues(op.String()).Observe(time.Since(start).Seconds())

		status := "success"
		if err != nil {
			status = "error"
			m.treeErrors.WithLabelValues(op.String(), errorCode(err)).Inc()
		}
		m.treeOps.WithLabelValues(op.String(), status).Inc()
	}
}

// InstanceChanged implements reconcile.Observer.
func (m *Metrics) InstanceChanged(ev reconcile.LifecycleEvent, kind element.Kind, _ string) {
	m.events.WithLabelValues(ev.String(), kind.String()).Inc()
	switch ev {
	case reconcile.EventMount:
		m.mounted.Inc()
	case reconcile.EventUnmount:
		m.mounted.Dec()
	}
}

// OperationApplied implements reconcile.Observer.
func (m *Metrics) OperationApplied(op reconcile.OpKind) {
	m.hostOps.WithLabelValues(op.String()).Inc()
}

// errorCode keeps error labels low-cardinality: the registered code when
// there is one, "internal" otherwise.
func errorCode(err error) string {
	if code := rerrors.CodeOf(err); code != "" {
		return code
	}
	return "internal"
}
