// Package metrics exposes Prometheus instrumentation for the advisor.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Decision sources recorded by the recommendation orchestrator
const (
	SourceStrategyNames    = "strategy_names"
	SourceStrategyCategory = "strategy_category"
	SourceFallbackRatio    = "fallback_ratio"
	SourceFallbackBalance  = "fallback_balance"
)

var (
	// Recommendation Metrics
	RecommendationDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_recommendation_decisions_total",
			Help: "Total number of recommendation decisions by source",
		},
		[]string{"source"},
	)

	RecommendationProducts = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "advisor_recommendation_products",
			Help:    "Number of products returned per recommendation",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 25},
		},
	)

	// Strategy Client Metrics
	StrategyCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_strategy_calls_total",
			Help: "Total number of predictive module calls by contract and outcome",
		},
		[]string{"contract", "outcome"}, // outcome: "ok", "unavailable", "bad_status", "malformed", "empty"
	)

	StrategyCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "advisor_strategy_call_duration_seconds",
			Help:    "Duration of predictive module calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"contract"},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "advisor_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// Maintenance Metrics
	JobRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_job_runs_total",
			Help: "Total number of scheduled job runs by job and result",
		},
		[]string{"job", "result"},
	)

	DatabaseSizeBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "advisor_database_size_bytes",
			Help: "Size of the advisor database file including WAL",
		},
	)
)

// RecordDecision records the source a recommendation was decided from
func RecordDecision(source string, products int) {
	RecommendationDecisions.WithLabelValues(source).Inc()
	RecommendationProducts.Observe(float64(products))
}

// RecordStrategyCall records one predictive module call.
// An empty outcome is recorded as "ok".
func RecordStrategyCall(contract, outcome string, duration time.Duration) {
	if outcome == "" {
		outcome = "ok"
	}
	StrategyCalls.WithLabelValues(contract, outcome).Inc()
	StrategyCallDuration.WithLabelValues(contract).Observe(duration.Seconds())
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordJobRun records the result of a scheduled job
func RecordJobRun(job string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	JobRuns.WithLabelValues(job, result).Inc()
}
