// Package metrics provides Prometheus metrics for the swigup hydration service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Intake
	intakeMl         *prometheus.CounterVec
	intakeEvents     *prometheus.CounterVec
	intakeDuplicates prometheus.Counter
	intakeRejected   *prometheus.CounterVec
	scanFallbacks    *prometheus.CounterVec
	scanSessionsOpen prometheus.Gauge

	// Progress of the active period
	goalMl         prometheus.Gauge
	currentMl      prometheus.Gauge
	progressPct    prometheus.Gauge
	periodsStarted prometheus.Counter
	onboardings    prometheus.Counter

	// Leaderboard
	leaderboardBuilds prometheus.Counter
	leaderboardErrors prometheus.Counter
	leaderboardSize   prometheus.Gauge

	// Storage
	profileStoreOps *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "swigup",
		subsystem:        "hydration",
		histogramBuckets: prometheus.DefBuckets,
		customLabels:     make(map[string]string),
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
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.customLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric definition
	auto := promauto.With(m.registry)

	m.intakeMl = auto.NewCounterVec(m.counterOpts("intake_milliliters_total",
		"Milliliters applied to the active period by source"), []string{"source"})
	m.intakeEvents = auto.NewCounterVec(m.counterOpts("intake_events_total",
		"Intake events applied by source"), []string{"source"})
	m.intakeDuplicates = auto.NewCounter(m.counterOpts("intake_duplicates_total",
		"Intake events acknowledged without re-applying (repeated event id)"))
	m.intakeRejected = auto.NewCounterVec(m.counterOpts("intake_rejected_total",
		"Intake events rejected before reaching the period total"), []string{"reason"})
	m.scanFallbacks = auto.NewCounterVec(m.counterOpts("scan_fallbacks_total",
		"Scans resolved through a default amount by tier"), []string{"tier"})
	m.scanSessionsOpen = auto.NewGauge(m.gaugeOpts("scan_sessions_open",
		"Scan sessions currently accepting a decode"))

	m.goalMl = auto.NewGauge(m.gaugeOpts("goal_milliliters", "Daily goal of the onboarded profile"))
	m.currentMl = auto.NewGauge(m.gaugeOpts("current_milliliters", "Intake logged in the active period"))
	m.progressPct = auto.NewGauge(m.gaugeOpts("progress_percentage", "Percentage of goal reached, clamped to 100"))
	m.periodsStarted = auto.NewCounter(m.counterOpts("periods_started_total", "Period rollovers"))
	m.onboardings = auto.NewCounter(m.counterOpts("onboardings_total", "Completed onboardings"))

	m.leaderboardBuilds = auto.NewCounter(m.counterOpts("leaderboard_builds_total", "Leaderboards built"))
	m.leaderboardErrors = auto.NewCounter(m.counterOpts("leaderboard_errors_total",
		"Leaderboard builds aborted by invalid entries"))
	m.leaderboardSize = auto.NewGauge(m.gaugeOpts("leaderboard_size", "Entries in the last leaderboard built"))

	m.profileStoreOps = auto.NewCounterVec(m.counterOpts("profile_store_operations_total",
		"Profile store operations by outcome"), []string{"op", "outcome"})

	m.httpRequests = auto.NewCounterVec(m.counterOpts("http_requests_total",
		"Total number of HTTP requests by endpoint and method"), []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts("http_request_duration_milliseconds",
		"HTTP request duration in milliseconds", m.histogramBuckets), []string{"endpoint", "method", "status_code"})
	m.errorRateByEndpoint = auto.NewCounterVec(m.counterOpts("errors_by_endpoint_total",
		"Total number of errors by endpoint"), []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts("system_gc_pause_time_milliseconds",
		"GC pause time in milliseconds", []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}))
}

// RecordIntake counts an applied intake of amountMl from source.
func RecordIntake(source string, amountMl int) {
	globalManager.intakeEvents.WithLabelValues(source).Inc()
	globalManager.intakeMl.WithLabelValues(source).Add(float64(amountMl))
}

// RecordIntakeDuplicate counts a repeated event id.
func RecordIntakeDuplicate() {
	globalManager.intakeDuplicates.Inc()
}

// RecordIntakeRejected counts an intake refused for reason.
func RecordIntakeRejected(reason string) {
	globalManager.intakeRejected.WithLabelValues(reason).Inc()
}

// RecordScanFallback counts a scan resolved through the tier default.
func RecordScanFallback(tier string) {
	globalManager.scanFallbacks.WithLabelValues(tier).Inc()
}

// UpdateScanSessionsOpen sets the number of open scan sessions.
func UpdateScanSessionsOpen(count int) {
	globalManager.scanSessionsOpen.Set(float64(count))
}

// UpdateGoal sets the goal gauge.
func UpdateGoal(goalMl int) {
	globalManager.goalMl.Set(float64(goalMl))
}

// UpdateProgress sets the current intake and percentage gauges.
func UpdateProgress(currentMl int, percentage float64) {
	globalManager.currentMl.Set(float64(currentMl))
	globalManager.progressPct.Set(percentage)
}

// RecordPeriodStarted counts a period rollover.
func RecordPeriodStarted() {
	globalManager.periodsStarted.Inc()
}

// RecordOnboarding counts a completed onboarding.
func RecordOnboarding() {
	globalManager.onboardings.Inc()
}

// RecordLeaderboardBuild counts a successful build of size entries.
func RecordLeaderboardBuild(size int) {
	globalManager.leaderboardBuilds.Inc()
	globalManager.leaderboardSize.Set(float64(size))
}

// RecordLeaderboardError counts an aborted build.
func RecordLeaderboardError() {
	globalManager.leaderboardErrors.Inc()
}

// RecordProfileStoreOp counts a profile store operation.
func RecordProfileStoreOp(op, outcome string) {
	globalManager.profileStoreOps.WithLabelValues(op, outcome).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
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
