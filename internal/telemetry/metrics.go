package telemetry

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/weave/internal/errors"
	"github.com/vango-dev/weave/pkg/weave"
)

// MetricsConfig configures the Prometheus collectors.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "weave").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for commit and slice durations.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus collectors.
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
		Namespace: "weave",
		// Commits and slices are sub-millisecond to tens of milliseconds.
		Buckets:  []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1},
		Registry: prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors for one engine. It implements
// weave.Observer.
type Metrics struct {
	commitsTotal   prometheus.Counter
	commitFailures *prometheus.CounterVec
	commitDuration prometheus.Histogram
	effectsTotal   *prometheus.CounterVec
	mutationsTotal prometheus.Counter
	generation     prometheus.Gauge

	slicesTotal   *prometheus.CounterVec
	unitsTotal    prometheus.Counter
	restartsTotal prometheus.Counter
	sliceDuration prometheus.Histogram

	clients     prometheus.Gauge
	eventsTotal *prometheus.CounterVec
}

var _ weave.Observer = (*Metrics)(nil)

// NewMetrics registers the collectors and returns them.
//
// Metrics collected:
//   - weave_commits_total: Counter of successful commits
//   - weave_commit_failures_total: Counter of aborted generations by error code
//   - weave_commit_duration_seconds: Histogram of commit phase duration
//   - weave_effects_total: Counter of committed effects by tag
//   - weave_host_mutations_total: Counter of host calls made by commits
//   - weave_generation: Gauge of the last committed generation
//   - weave_slices_total: Counter of work loop slices by outcome
//   - weave_units_total: Counter of fibers processed
//   - weave_restarts_total: Counter of renders restarted by state updates
//   - weave_slice_duration_seconds: Histogram of slice duration
//   - weave_live_clients: Gauge of connected live view clients
//   - weave_events_total: Counter of dispatched host events
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		})
	}
	counterVec := func(name, help string, labels ...string) *prometheus.CounterVec {
		return factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		}, labels)
	}
	histogram := func(name, help string) prometheus.Histogram {
		return factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		})
	}
	gauge := func(name, help string) prometheus.Gauge {
		return factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		})
	}

	return &Metrics{
		commitsTotal:   counter("commits_total", "Total number of committed generations"),
		commitFailures: counterVec("commit_failures_total", "Total number of aborted generations", "code"),
		commitDuration: histogram("commit_duration_seconds", "Commit phase duration in seconds"),
		effectsTotal:   counterVec("effects_total", "Total number of committed effects", "effect"),
		mutationsTotal: counter("host_mutations_total", "Total number of host calls made by commits"),
		generation:     gauge("generation", "Last committed generation"),

		slicesTotal:   counterVec("slices_total", "Total number of work loop slices", "yielded"),
		unitsTotal:    counter("units_total", "Total number of fibers processed"),
		restartsTotal: counter("restarts_total", "Total number of renders restarted by state updates"),
		sliceDuration: histogram("slice_duration_seconds", "Work loop slice duration in seconds"),

		clients:     gauge("live_clients", "Number of connected live view clients"),
		eventsTotal: counterVec("events_total", "Total number of dispatched host events", "event", "handled"),
	}
}

// SliceDone implements weave.Observer.
func (m *Metrics) SliceDone(r weave.SliceReport) {
	m.slicesTotal.WithLabelValues(strconv.FormatBool(r.Yielded)).Inc()
	m.unitsTotal.Add(float64(r.Units))
	m.restartsTotal.Add(float64(r.Restarts))
	m.sliceDuration.Observe(r.Duration.Seconds())
}

// Committed implements weave.Observer.
func (m *Metrics) Committed(r weave.CommitReport) {
	m.commitsTotal.Inc()
	m.commitDuration.Observe(r.Duration.Seconds())
	m.mutationsTotal.Add(float64(r.Mutations))
	m.generation.Set(float64(r.Generation))

	m.effectsTotal.WithLabelValues("placement").Add(float64(r.Placements))
	m.effectsTotal.WithLabelValues("update").Add(float64(r.Updates))
	m.effectsTotal.WithLabelValues("unchanged").Add(float64(r.Unchanged))
	m.effectsTotal.WithLabelValues("deletion").Add(float64(r.Deletions))
}

// Failed implements weave.Observer.
func (m *Metrics) Failed(err error) {
	m.commitFailures.WithLabelValues(errorCode(err)).Inc()
}

// ClientConnected records a live view client joining.
func (m *Metrics) ClientConnected() {
	m.clients.Inc()
}

// ClientDisconnected records a live view client leaving.
func (m *Metrics) ClientDisconnected() {
	m.clients.Dec()
}

// EventDispatched records a host event and whether a listener handled it.
func (m *Metrics) EventDispatched(event string, handled bool) {
	m.eventsTotal.WithLabelValues(event, strconv.FormatBool(handled)).Inc()
}

// errorCode returns the weave error code of err, keeping label cardinality
// bounded.
func errorCode(err error) string {
	for _, code := range []string{"W010", "W020"} {
		if errors.Is(err, code) {
			return code
		}
	}
	return "other"
}
