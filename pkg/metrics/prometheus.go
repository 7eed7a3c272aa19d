package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline label values.
const (
	PipelineAggregate  = "aggregate"
	PipelineProjection = "projection"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Pipelines
	recomputations   *prometheus.CounterVec
	recomputeLatency *prometheus.HistogramVec
	pipelineRecords  *prometheus.GaugeVec
	insufficientData prometheus.Counter
	recordsExcluded  *prometheus.CounterVec
	colorsAssigned   *prometheus.GaugeVec

	// Dataset
	datasetRecords prometheus.Gauge
	datasetVersion prometheus.Gauge
	datasetReloads *prometheus.CounterVec
	snapshotSwap   prometheus.Histogram

	// Filter queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueEnqueued      prometheus.Counter
	queueEnqueueErrors prometheus.Counter
	filterChanges      prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorsByComponent *prometheus.CounterVec
	errorsByEndpoint  *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
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
		namespace:        "boardlens",
		subsystem:        "charts",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250},
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
	return prometheus.CounterOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels, Buckets: m.histogramBuckets}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.recomputations = auto.NewCounterVec(
		m.counterOpts("recomputations_total", "Number of chart recomputations by pipeline"),
		[]string{"pipeline"},
	)
	m.recomputeLatency = auto.NewHistogramVec(
		m.histogramOpts("recompute_latency_milliseconds", "Time spent in one recomputation"),
		[]string{"pipeline"},
	)
	m.pipelineRecords = auto.NewGaugeVec(
		m.gaugeOpts("pipeline_records", "Records that passed the filter in the last recomputation"),
		[]string{"pipeline"},
	)
	m.insufficientData = auto.NewCounter(
		m.counterOpts("insufficient_data_total", "Projection requests rejected for too few categories or records"),
	)
	m.recordsExcluded = auto.NewCounterVec(
		m.counterOpts("records_excluded_total", "Records dropped from a projection"),
		[]string{"reason"},
	)
	m.colorsAssigned = auto.NewGaugeVec(
		m.gaugeOpts("colors_assigned", "Distinct category names holding a color"),
		[]string{"chart"},
	)

	m.datasetRecords = auto.NewGauge(m.gaugeOpts("dataset_records", "Records in the current dataset snapshot"))
	m.datasetVersion = auto.NewGauge(m.gaugeOpts("dataset_version", "Version of the current dataset snapshot"))
	m.datasetReloads = auto.NewCounterVec(
		m.counterOpts("dataset_reloads_total", "Dataset load attempts by result"),
		[]string{"result"},
	)
	m.snapshotSwap = auto.NewHistogram(m.histogramOpts("snapshot_swap_milliseconds", "Time spent building and publishing a dataset snapshot"))

	m.queueSize = auto.NewGauge(m.gaugeOpts("filter_queue_size", "Pending filter changes"))
	m.queueCapacity = auto.NewGauge(m.gaugeOpts("filter_queue_capacity", "Capacity of the filter change queue"))
	m.queueEnqueued = auto.NewCounter(m.counterOpts("filter_queue_enqueued_total", "Filter changes accepted by the queue"))
	m.queueEnqueueErrors = auto.NewCounter(m.counterOpts("filter_queue_enqueue_errors_total", "Filter changes rejected by the queue"))
	m.filterChanges = auto.NewCounter(m.counterOpts("filter_changes_processed_total", "Filter changes applied by the worker"))

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "HTTP requests by endpoint, method and status"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds"),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorsByComponent = auto.NewCounterVec(
		m.counterOpts("errors_total", "Errors by component and type"),
		[]string{"component", "error_type"},
	)
	m.errorsByEndpoint = auto.NewCounterVec(
		m.counterOpts("http_errors_total", "HTTP errors by endpoint, method and type"),
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "Heap bytes allocated"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
}

// RecordRecompute counts one recomputation of pipeline and its latency.
func RecordRecompute(pipeline string, latencyMs float64) {
	globalManager.recomputations.WithLabelValues(pipeline).Inc()
	globalManager.recomputeLatency.WithLabelValues(pipeline).Observe(latencyMs)
}

// UpdatePipelineRecords sets how many records passed the filter of pipeline.
func UpdatePipelineRecords(pipeline string, n int) {
	globalManager.pipelineRecords.WithLabelValues(pipeline).Set(float64(n))
}

// RecordInsufficientData counts a projection that hit the insufficient-data state.
func RecordInsufficientData() {
	globalManager.insufficientData.Inc()
}

// RecordRecordsExcluded counts n records dropped for reason.
func RecordRecordsExcluded(reason string, n int) {
	if n <= 0 {
		return
	}
	globalManager.recordsExcluded.WithLabelValues(reason).Add(float64(n))
}

// UpdateColorsAssigned sets the number of colored names for chart.
func UpdateColorsAssigned(chart string, n int) {
	globalManager.colorsAssigned.WithLabelValues(chart).Set(float64(n))
}

// UpdateDataset records the size and version of the live snapshot.
func UpdateDataset(records int, version uint64) {
	globalManager.datasetRecords.Set(float64(records))
	globalManager.datasetVersion.Set(float64(version))
}

// RecordSnapshotSwap observes how long a dataset swap took.
func RecordSnapshotSwap(latencyMs float64) {
	globalManager.snapshotSwap.Observe(latencyMs)
}

// RecordDatasetReload counts a load attempt; result is "ok" or "error".
func RecordDatasetReload(result string) {
	globalManager.datasetReloads.WithLabelValues(result).Inc()
}

// UpdateQueueSize sets the number of pending filter changes.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the filter queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// RecordQueueEnqueue counts an accepted filter change.
func RecordQueueEnqueue() {
	globalManager.queueEnqueued.Inc()
}

// RecordQueueEnqueueError counts a rejected filter change.
func RecordQueueEnqueueError() {
	globalManager.queueEnqueueErrors.Inc()
}

// RecordFilterChangeProcessed counts a filter change applied by the worker.
func RecordFilterChangeProcessed() {
	globalManager.filterChanges.Inc()
}

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent counts an error raised by component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint counts an HTTP error response.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets heap usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the registry the global collectors live on.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
