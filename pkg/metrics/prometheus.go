// Package metrics provides Prometheus metrics for the NSL squad assistant.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace      string
	subsystem      string
	rankingBuckets []float64
	httpBuckets    []float64
	enabled        bool
	constLabels    map[string]string
	registry       prometheus.Registerer

	// Recommendation metrics
	recommendations      *prometheus.CounterVec
	recommendationsEmpty *prometheus.CounterVec
	rankingLatency       prometheus.Histogram

	// Squad metrics
	slotsReplaced    *prometheus.CounterVec
	squadsSaved      prometheus.Counter
	squadSaveErrors  prometheus.Counter
	finalizeRejected prometheus.Counter

	// Account metrics
	logins *prometheus.CounterVec

	// Roster metrics
	rosterPlayers *prometheus.GaugeVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorsByComponent *prometheus.CounterVec
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
		namespace:      "nsl",
		subsystem:      "fantasy",
		rankingBuckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		httpBuckets:    []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 1000},
		enabled:        true,
		constLabels:    make(map[string]string),
		registry:       prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // flat list of metric definitions
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.constLabels)

	m.recommendations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "recommendations_total",
		Help:        "Total number of rankings requested, by position",
		ConstLabels: labels,
	}, []string{"position"})

	m.recommendationsEmpty = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "recommendations_empty_total",
		Help:        "Rankings that produced no candidates, by position",
		ConstLabels: labels,
	}, []string{"position"})

	m.rankingLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "ranking_latency_milliseconds",
		Help:        "Time spent vectorizing and ranking one request",
		Buckets:     m.rankingBuckets,
		ConstLabels: labels,
	})

	m.slotsReplaced = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "squad_slots_replaced_total",
		Help:        "Squad slots written by position reselection",
		ConstLabels: labels,
	}, []string{"position"})

	m.squadsSaved = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "squads_saved_total",
		Help:        "Finalized squads written to the squad store",
		ConstLabels: labels,
	})

	m.squadSaveErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "squad_save_errors_total",
		Help:        "Squad store writes that failed",
		ConstLabels: labels,
	})

	m.finalizeRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "finalize_rejected_total",
		Help:        "Finalize attempts rejected because the squad was empty",
		ConstLabels: labels,
	})

	m.logins = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "logins_total",
		Help:        "Authentication attempts by outcome",
		ConstLabels: labels,
	}, []string{"outcome"})

	m.rosterPlayers = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "roster_players",
		Help:        "Players loaded from the roster, by position and eligibility",
		ConstLabels: labels,
	}, []string{"position", "eligible"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.httpBuckets,
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_total",
		Help:        "Errors by component and type",
		ConstLabels: labels,
	}, []string{"component", "type"})
}

// RecordRecommendation counts a ranking for position and whether it was empty.
func RecordRecommendation(position string, empty bool) {
	globalManager.RecordRecommendation(position, empty)
}

// RecordRecommendation counts a ranking for position and whether it was empty.
func (m *Manager) RecordRecommendation(position string, empty bool) {
	if !m.enabled {
		return
	}
	m.recommendations.WithLabelValues(position).Inc()
	if empty {
		m.recommendationsEmpty.WithLabelValues(position).Inc()
	}
}

// RecordRankingLatency records ranking latency in milliseconds.
func RecordRankingLatency(latencyMs float64) {
	if globalManager.enabled {
		globalManager.rankingLatency.Observe(latencyMs)
	}
}

// RecordSlotsReplaced adds n written slots for position.
func RecordSlotsReplaced(position string, n int) {
	if globalManager.enabled {
		globalManager.slotsReplaced.WithLabelValues(position).Add(float64(n))
	}
}

// RecordSquadSaved increments the saved squads counter.
func RecordSquadSaved() {
	if globalManager.enabled {
		globalManager.squadsSaved.Inc()
	}
}

// RecordSquadSaveError increments the failed saves counter.
func RecordSquadSaveError() {
	if globalManager.enabled {
		globalManager.squadSaveErrors.Inc()
	}
}

// RecordFinalizeRejected increments the rejected finalize counter.
func RecordFinalizeRejected() {
	if globalManager.enabled {
		globalManager.finalizeRejected.Inc()
	}
}

// RecordLogin counts an authentication attempt by outcome.
func RecordLogin(outcome string) {
	if globalManager.enabled {
		globalManager.logins.WithLabelValues(outcome).Inc()
	}
}

// UpdateRosterPlayers sets the roster gauge for one position.
func UpdateRosterPlayers(position string, eligible, ineligible int) {
	if !globalManager.enabled {
		return
	}
	globalManager.rosterPlayers.WithLabelValues(position, "true").Set(float64(eligible))
	globalManager.rosterPlayers.WithLabelValues(position, "false").Set(float64(ineligible))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
	}
}

// RecordError records an error with component and type labels.
func RecordError(component, errorType string) {
	if globalManager.enabled {
		globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
	}
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
