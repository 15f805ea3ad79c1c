package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/navio-dev/navio/pkg/nav"
)

// MetricsConfig configures the Prometheus metrics wrapper.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "navio").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for navigation duration.
	// Default: prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics wrapper.
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
		Namespace: "navio",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics exports bridge and capability activity to Prometheus. It
// implements nav.Observer (hand it to nav.NewBridge via WithObserver)
// and decorates a History via Instrument for operation latency.
type Metrics struct {
	commandsTotal  *prometheus.CounterVec
	fanOutSize     prometheus.Histogram
	subscribers    prometheus.Gauge
	listenerActive prometheus.Gauge
	opDuration     *prometheus.HistogramVec
}

// NewMetrics creates and registers the metric set.
func NewMetrics(opts ...MetricsOption) (*Metrics, error) {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	m := &Metrics{
		commandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "commands_total",
			Help:        "Navigation commands executed, by kind.",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),
		fanOutSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "fanout_subscribers",
			Help:        "Subscribers notified per delivered location.",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{0, 1, 2, 5, 10, 25},
		}),
		subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "subscribers",
			Help:        "Subscribers registered at the last delivery.",
			ConstLabels: config.ConstLabels,
		}),
		listenerActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "listener_active",
			Help:        "1 while the listener task is running.",
			ConstLabels: config.ConstLabels,
		}),
		opDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "operation_duration_seconds",
			Help:        "Duration of history capability operations.",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"op"}),
	}

	for _, c := range []prometheus.Collector{
		m.commandsTotal, m.fanOutSize, m.subscribers, m.listenerActive, m.opDuration,
	} {
		if err := config.Registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// CommandExecuted implements nav.Observer.
func (m *Metrics) CommandExecuted(cmd nav.Command) {
	m.commandsTotal.WithLabelValues(cmd.Kind.String()).Inc()
}

// FanOut implements nav.Observer.
func (m *Metrics) FanOut(subscribers int) {
	m.fanOutSize.Observe(float64(subscribers))
	m.subscribers.Set(float64(subscribers))
}

// ListenerState implements nav.Observer.
func (m *Metrics) ListenerState(active bool) {
	if active {
		m.listenerActive.Set(1)
	} else {
		m.listenerActive.Set(0)
	}
}

// Instrument decorates a History so every capability call records its
// duration under the "op" label.
func (m *Metrics) Instrument(h nav.History) nav.History {
	return &metricsHistory{inner: h, metrics: m}
}

type metricsHistory struct {
	inner   nav.History
	metrics *Metrics
}

func (mh *metricsHistory) observe(op string, start time.Time) {
	mh.metrics.opDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (mh *metricsHistory) Location() nav.Location {
	defer mh.observe("location", time.Now())
	return mh.inner.Location()
}

func (mh *metricsHistory) PushURL(url string) nav.Location {
	defer mh.observe("push", time.Now())
	return mh.inner.PushURL(url)
}

func (mh *metricsHistory) ReplaceURL(url string) nav.Location {
	defer mh.observe("replace", time.Now())
	return mh.inner.ReplaceURL(url)
}

func (mh *metricsHistory) Go(n int) {
	defer mh.observe("go", time.Now())
	mh.inner.Go(n)
}

func (mh *metricsHistory) Notifications() <-chan struct{} {
	return mh.inner.Notifications()
}
