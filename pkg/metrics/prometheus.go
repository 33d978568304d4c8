// Package metrics provides Prometheus metrics for the whisper pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Scope label values for the whispers_created_total metric.
const (
	ScopeLabelScoped  = "scoped"
	ScopeLabelOrgWide = "org_wide"
)

// Manager manages all Prometheus metrics for the whisper service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Pipeline throughput
	eventsTagged    *prometheus.CounterVec
	eventsProcessed *prometheus.CounterVec
	eventsFailed    *prometheus.CounterVec

	// Matching and generation
	scopeMatches      prometheus.Histogram
	whispersCreated   *prometheus.CounterVec
	whispersDuplicate prometheus.Counter

	// Latency
	pipelineDuration prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// customRegistry keeps our metrics off the default registry.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "whisper",
		subsystem:        "pipeline",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.eventsTagged = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "events_tagged_total",
			Help:      "Total number of events tagged with scope matches, by integration",
		},
		[]string{"integration"},
	)

	m.eventsProcessed = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "events_processed_total",
			Help:      "Total number of events that completed the pipeline, by integration",
		},
		[]string{"integration"},
	)

	m.eventsFailed = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "events_failed_total",
			Help:      "Total number of events that failed the pipeline, by integration and stage",
		},
		[]string{"integration", "stage"},
	)

	m.scopeMatches = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scope_matches_per_event",
		Help:      "Distribution of scope matches found per tagged event",
		Buckets:   []float64{0, 1, 2, 3, 5, 8},
	})

	m.whispersCreated = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "whispers_created_total",
			Help:      "Total number of whispers created, by scope (scoped or org_wide)",
		},
		[]string{"scope"},
	)

	m.whispersDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "whispers_duplicate_total",
		Help:      "Total number of whisper creations skipped because the whisper already existed",
	})

	m.pipelineDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duration_milliseconds",
		Help:      "Histogram of end-to-end event processing latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// Pipeline Metrics Functions.

// RecordEventTagged increments the tagged-events counter for an integration.
func RecordEventTagged(integration string) {
	globalManager.eventsTagged.WithLabelValues(integration).Inc()
}

// RecordEventProcessed increments the processed-events counter for an integration.
func RecordEventProcessed(integration string) {
	globalManager.eventsProcessed.WithLabelValues(integration).Inc()
}

// RecordEventFailed increments the failed-events counter for an integration and
// pipeline stage.
func RecordEventFailed(integration, stage string) {
	globalManager.eventsFailed.WithLabelValues(integration, stage).Inc()
}

// RecordScopeMatches records the number of scope matches found for one event.
func RecordScopeMatches(count int) {
	globalManager.scopeMatches.Observe(float64(count))
}

// RecordWhisperCreated increments the created-whispers counter for a scope
// label (ScopeLabelScoped or ScopeLabelOrgWide).
func RecordWhisperCreated(scope string) {
	globalManager.whispersCreated.WithLabelValues(scope).Inc()
}

// RecordWhisperDuplicate increments the duplicate-whisper counter.
func RecordWhisperDuplicate() {
	globalManager.whispersDuplicate.Inc()
}

// RecordPipelineDuration records end-to-end event processing latency in milliseconds.
func RecordPipelineDuration(latencyMs float64) {
	globalManager.pipelineDuration.Observe(latencyMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
