// Package metrics provides Prometheus metrics for the hueblend service.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultNamespace = "hueblend"
	defaultSubsystem = ""
)

// Blend failure kinds used as label values.
const (
	FailureInvalidAngle       = "invalid_angle"
	FailureInvalidCoordinates = "invalid_coordinates"
	FailureOther              = "other"
)

// resultantBuckets spans the midpoint length range [0,1].
var resultantBuckets = []float64{0.001, 0.01, 0.1, 0.25, 0.5, 0.75, 0.9, 0.99, 1}

// Manager manages all Prometheus metrics for the hueblend service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Blend metrics
	blends          prometheus.Counter
	blendDegenerate prometheus.Counter
	blendFailures   *prometheus.CounterVec
	blendResultant  prometheus.Histogram

	// Display metrics
	displayUpdates    prometheus.Counter
	displayAverageHue prometheus.Gauge
	streamSubscribers prometheus.Gauge
	streamMessages    prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var (
	mu             sync.RWMutex
	globalManager  *Manager             //nolint:gochecknoglobals // intentional global for singleton metrics manager
	customRegistry *prometheus.Registry //nolint:gochecknoglobals // intentional global for metrics registry
)

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	Configure()
}

// Configure replaces the global manager with one registered on a fresh
// registry. Call it once at startup, before serving metrics.
func Configure(opts ...Option) {
	reg := prometheus.NewRegistry()
	m := NewManager(append([]Option{WithPrometheusRegistry(reg)}, opts...)...)

	mu.Lock()
	defer mu.Unlock()
	customRegistry = reg
	globalManager = m
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        defaultNamespace,
		subsystem:        defaultSubsystem,
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		constLabels:      make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.constLabels)

	m.blends = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "blends_total",
		Help:        "Total number of successful hue blends",
		ConstLabels: labels,
	})

	m.blendDegenerate = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "blends_degenerate_total",
		Help:        "Blends of (nearly) opposite hues whose result has no stable direction",
		ConstLabels: labels,
	})

	m.blendFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "blend_failures_total",
		Help:        "Blends rejected because of invalid input, by kind",
		ConstLabels: labels,
	}, []string{"kind"})

	m.blendResultant = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "blend_resultant_length",
		Help:        "Length of the averaged point; 1 for identical hues, 0 for opposite ones",
		Buckets:     resultantBuckets,
		ConstLabels: labels,
	})

	m.displayUpdates = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "display_updates_total",
		Help:        "Total number of display state updates",
		ConstLabels: labels,
	})

	m.displayAverageHue = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "display_average_hue_degrees",
		Help:        "Current average hue shown by the display",
		ConstLabels: labels,
	})

	m.streamSubscribers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "stream_subscribers",
		Help:        "Open display stream connections",
		ConstLabels: labels,
	})

	m.streamMessages = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "stream_messages_total",
		Help:        "Snapshots written to display stream connections",
		ConstLabels: labels,
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests by endpoint and method",
			ConstLabels: labels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_request_duration_milliseconds",
			Help:        "HTTP request duration in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: labels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_type_total",
			Help:        "Errors by type and severity",
			ConstLabels: labels,
		},
		[]string{"error_type", "severity"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_endpoint_total",
			Help:        "Errors by endpoint, method and type",
			ConstLabels: labels,
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_memory_bytes",
		Help:        "Heap bytes allocated",
		ConstLabels: labels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_goroutines",
		Help:        "Number of goroutines",
		ConstLabels: labels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_gc_pause_milliseconds",
		Help:        "Average GC pause in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})
}

// current returns the global manager, or nil when metrics are disabled.
func current() *Manager {
	mu.RLock()
	defer mu.RUnlock()
	if globalManager == nil || !globalManager.enabled {
		return nil
	}
	return globalManager
}

// Blend Metrics Functions.

// RecordBlend records a successful blend.
func RecordBlend(resultant float64, degenerate bool) {
	m := current()
	if m == nil {
		return
	}
	m.blends.Inc()
	m.blendResultant.Observe(resultant)
	if degenerate {
		m.blendDegenerate.Inc()
	}
}

// RecordBlendFailure records a rejected blend; kind is one of the Failure* constants.
func RecordBlendFailure(kind string) {
	if m := current(); m != nil {
		m.blendFailures.WithLabelValues(kind).Inc()
	}
}

// Display Metrics Functions.

// RecordDisplayUpdate counts a display update and publishes the new average.
func RecordDisplayUpdate(averageHue float64) {
	if m := current(); m != nil {
		m.displayUpdates.Inc()
		m.displayAverageHue.Set(averageHue)
	}
}

// UpdateStreamSubscribers sets the number of open stream connections.
func UpdateStreamSubscribers(count int) {
	if m := current(); m != nil {
		m.streamSubscribers.Set(float64(count))
	}
}

// RecordStreamMessage counts one snapshot written to a stream.
func RecordStreamMessage() {
	if m := current(); m != nil {
		m.streamMessages.Inc()
	}
}

// HTTP Metrics Functions.

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if m := current(); m != nil {
		m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if m := current(); m != nil {
		m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
	}
}

// Error Metrics Functions.

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	if m := current(); m != nil {
		m.errorRateByType.WithLabelValues(errorType, severity).Inc()
	}
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if m := current(); m != nil {
		m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	if m := current(); m != nil {
		m.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	if m := current(); m != nil {
		m.systemGoroutineCount.Set(float64(count))
	}
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	if m := current(); m != nil {
		m.systemGCPauseTime.Observe(pauseMs)
	}
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	mu.RLock()
	defer mu.RUnlock()
	return customRegistry
}
