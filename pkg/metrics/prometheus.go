// Package metrics provides Prometheus metrics for the carprice valuation service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector exported by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	priceBuckets     []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Valuation
	estimatesTotal      prometheus.Counter
	estimateErrors      *prometheus.CounterVec
	predictionLatency   prometheus.Histogram
	predictedPrice      prometheus.Histogram
	depreciationPercent prometheus.Histogram
	factorsEmitted      *prometheus.CounterVec

	// Model artifact
	modelLoaded       prometheus.Gauge
	modelLoadDuration prometheus.Histogram
	modelLoadErrors   *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "carprice",
		subsystem:        "valuation",
		histogramBuckets: prometheus.DefBuckets,
		priceBuckets:     []float64{0.5, 1, 2, 3, 5, 7.5, 10, 15, 20, 30, 50},
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: name, Help: help, ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: name, Help: help, ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: name, Help: help, Buckets: buckets, ConstLabels: m.constLabels,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // flat list of collectors
	auto := promauto.With(m.registry)

	m.estimatesTotal = auto.NewCounter(m.counterOpts(
		"estimates_total", "Total number of completed price estimates"))
	m.estimateErrors = auto.NewCounterVec(m.counterOpts(
		"estimate_errors_total", "Estimates aborted, by error kind"), []string{"kind"})
	m.predictionLatency = auto.NewHistogram(m.histogramOpts(
		"prediction_latency_milliseconds", "Model prediction latency in milliseconds", m.histogramBuckets))
	m.predictedPrice = auto.NewHistogram(m.histogramOpts(
		"predicted_price_lakhs", "Distribution of predicted resale prices in lakhs", m.priceBuckets))
	m.depreciationPercent = auto.NewHistogram(m.histogramOpts(
		"depreciation_percent", "Distribution of depreciation percentages",
		[]float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}))
	m.factorsEmitted = auto.NewCounterVec(m.counterOpts(
		"price_factors_total", "Price factors emitted, by factor"), []string{"factor"})

	m.modelLoaded = auto.NewGauge(m.gaugeOpts(
		"model_loaded", "1 when the prediction model is loaded and ready"))
	m.modelLoadDuration = auto.NewHistogram(m.histogramOpts(
		"model_load_duration_milliseconds", "Model artifact load duration in milliseconds", m.histogramBuckets))
	m.modelLoadErrors = auto.NewCounterVec(m.counterOpts(
		"model_load_errors_total", "Model artifact load failures, by source"), []string{"source"})

	m.httpRequests = auto.NewCounterVec(m.counterOpts(
		"http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts(
		"http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"})
	m.errorRateByType = auto.NewCounterVec(m.counterOpts(
		"errors_by_type_total", "Total number of errors by type"),
		[]string{"error_type", "severity"})
	m.errorRateByEndpoint = auto.NewCounterVec(m.counterOpts(
		"errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"})
	m.errorLatency = auto.NewHistogramVec(m.histogramOpts(
		"error_latency_milliseconds", "Latency of operations that resulted in errors", m.histogramBuckets),
		[]string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts(
		"system_memory_usage_bytes", "Heap memory in use in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts(
		"system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts(
		"system_gc_pause_time_milliseconds", "Average GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}))
}

// RecordEstimate records a completed estimate.
func RecordEstimate(predicted, depreciationPct float64, latencyMs float64) {
	globalManager.estimatesTotal.Inc()
	globalManager.predictedPrice.Observe(predicted)
	globalManager.depreciationPercent.Observe(depreciationPct)
	globalManager.predictionLatency.Observe(latencyMs)
}

// RecordEstimateError increments the aborted-estimate counter for kind.
func RecordEstimateError(kind string) {
	globalManager.estimateErrors.WithLabelValues(kind).Inc()
}

// RecordFactor counts one emitted price factor.
func RecordFactor(factor string) {
	globalManager.factorsEmitted.WithLabelValues(factor).Inc()
}

// SetModelLoaded flips the model readiness gauge.
func SetModelLoaded(loaded bool) {
	if loaded {
		globalManager.modelLoaded.Set(1)
		return
	}
	globalManager.modelLoaded.Set(0)
}

// RecordModelLoad records how long an artifact load took.
func RecordModelLoad(durationMs float64) {
	globalManager.modelLoadDuration.Observe(durationMs)
}

// RecordModelLoadError counts a failed artifact load from source.
func RecordModelLoadError(source string) {
	globalManager.modelLoadErrors.WithLabelValues(source).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// UpdateSystemMemoryUsage sets the heap memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
