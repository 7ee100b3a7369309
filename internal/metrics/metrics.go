// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Recommendation Metrics
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Total number of recommendation requests by outcome",
		},
		[]string{"outcome"}, // "generated", "cached", "parse_error", "upstream_error"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "End-to-end recommendation latency in seconds",
			Buckets: []float64{0.005, 0.05, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	RecommendationCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_candidates",
			Help:    "Number of candidate products sent to the language model",
			Buckets: []float64{0, 1, 3, 5, 8, 10, 15, 20, 30},
		},
	)

	RecommendationEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_events_total",
			Help: "Total number of domain events consumed by topic and outcome",
		},
		[]string{"topic", "outcome"},
	)

	// LLM Metrics
	LLMRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_requests_total",
			Help: "Total number of language model completion requests",
		},
		[]string{"result"}, // "success", "error", "rejected", "rate_limited"
	)

	LLMRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "llm_request_duration_seconds",
			Help:    "Duration of language model completion requests",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30, 60},
		},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "file", "badger"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions (TTL expiry, corruption or clear)",
		},
		[]string{"cache_type"},
	)

	CacheWriteErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_write_errors_total",
			Help: "Total number of failed cache writes",
		},
		[]string{"cache_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records the outcome and latency of one request.
func RecordRecommendation(outcome string, candidates int, duration time.Duration) {
	RecommendationRequests.WithLabelValues(outcome).Inc()
	RecommendationDuration.Observe(duration.Seconds())
	if candidates >= 0 {
		RecommendationCandidates.Observe(float64(candidates))
	}
}

// RecordLLMRequest records a completion request.
func RecordLLMRequest(result string, duration time.Duration) {
	LLMRequests.WithLabelValues(result).Inc()
	if duration > 0 {
		LLMRequestDuration.Observe(duration.Seconds())
	}
}

// RecordCacheLookup records a hit or miss for the given backend.
func RecordCacheLookup(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
	} else {
		CacheMisses.WithLabelValues(cacheType).Inc()
	}
}

// RecordCacheEvictions adds n removed entries for the given backend.
func RecordCacheEvictions(cacheType string, n int) {
	if n > 0 {
		CacheEvictions.WithLabelValues(cacheType).Add(float64(n))
	}
}

// RecordEvent records a consumed domain event.
func RecordEvent(topic, outcome string) {
	RecommendationEvents.WithLabelValues(topic, outcome).Inc()
}
