// Package metrics provides Prometheus metrics for the lineup service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns the service collectors.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Scheduling
	generations       prometheus.Counter
	generationLatency prometheus.Histogram
	forcedKeepers     prometheus.Counter
	unfilledSlots     prometheus.Counter

	// Commands
	commandsApplied   *prometheus.CounterVec
	commandsRejected  *prometheus.CounterVec
	commandsDuplicate prometheus.Counter
	swaps             *prometheus.CounterVec
	rosterImports     prometheus.Counter
	rosterImportRows  prometheus.Counter

	// Sessions and storage
	sessions     prometheus.Gauge
	storeLatency *prometheus.HistogramVec

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

var globalManager *Manager //nolint:gochecknoglobals // process-wide collectors

// customRegistry keeps the Go runtime collectors out of /healthz.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // process-wide registry

func init() { //nolint:gochecknoinits // global collectors are registered once
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates and registers a set of collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "lineup",
		subsystem:        "service",
		histogramBuckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) histogram(name, help string) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		Buckets: m.histogramBuckets,
	})
}

func (m *Manager) histogramVec(name, help string, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		Buckets: m.histogramBuckets,
	}, labels)
}

func (m *Manager) initializeMetrics() {
	m.generations = m.counter("generations_total", "Total number of lineup generation runs")
	m.generationLatency = m.histogram("generation_latency_milliseconds", "Lineup generation latency in milliseconds")
	m.forcedKeepers = m.counter("forced_keepers_total", "Total number of quarters where a non-keeper was forced into goal")
	m.unfilledSlots = m.counter("unfilled_slots_total", "Total number of slots left empty by generation")

	m.commandsApplied = m.counterVec("commands_applied_total", "Commands applied to sessions by type", "command")
	m.commandsRejected = m.counterVec("commands_rejected_total", "Commands rejected by type", "command")
	m.commandsDuplicate = m.counter("commands_duplicate_total", "Commands skipped because their idempotency key was already seen")
	m.swaps = m.counterVec("swaps_total", "Manual lineup edits by kind", "kind")
	m.rosterImports = m.counter("roster_imports_total", "Total number of roster CSV imports")
	m.rosterImportRows = m.counter("roster_import_rows_total", "Total number of people read from roster CSV imports")

	m.sessions = m.gauge("sessions", "Number of stored sessions")
	m.storeLatency = m.histogramVec("store_latency_milliseconds", "Session store latency in milliseconds", "op")

	m.httpRequests = m.counterVec("http_requests_total", "Total number of HTTP requests by endpoint and method",
		"endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds", "HTTP request duration in milliseconds",
		"endpoint", "method", "status_code")

	m.errorsByComponent = m.counterVec("errors_by_component_total", "Errors by component", "component", "error_type")
	m.errorsByEndpoint = m.counterVec("errors_by_endpoint_total", "Errors by endpoint", "endpoint", "method", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "Heap memory in use in bytes")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
}

// RecordGeneration records one generation run.
func RecordGeneration(latencyMs float64, forcedKeepers, unfilledSlots int) {
	globalManager.generations.Inc()
	globalManager.generationLatency.Observe(latencyMs)
	globalManager.forcedKeepers.Add(float64(forcedKeepers))
	globalManager.unfilledSlots.Add(float64(unfilledSlots))
}

// RecordCommandApplied increments the applied counter for command.
func RecordCommandApplied(command string) {
	globalManager.commandsApplied.WithLabelValues(command).Inc()
}

// RecordCommandRejected increments the rejected counter for command.
func RecordCommandRejected(command string) {
	globalManager.commandsRejected.WithLabelValues(command).Inc()
}

// RecordCommandDuplicate increments the duplicate command counter.
func RecordCommandDuplicate() {
	globalManager.commandsDuplicate.Inc()
}

// RecordSwap increments the manual edit counter for kind.
func RecordSwap(kind string) {
	globalManager.swaps.WithLabelValues(kind).Inc()
}

// RecordRosterImport records one CSV import of rows people.
func RecordRosterImport(rows int) {
	globalManager.rosterImports.Inc()
	globalManager.rosterImportRows.Add(float64(rows))
}

// UpdateSessions sets the stored session gauge.
func UpdateSessions(count int) {
	globalManager.sessions.Set(float64(count))
}

// RecordStoreLatency records the latency of a store operation.
func RecordStoreLatency(op string, latencyMs float64) {
	globalManager.storeLatency.WithLabelValues(op).Observe(latencyMs)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method and type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the heap memory gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the registry holding the global collectors.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
