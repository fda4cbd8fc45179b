// Entrata-Webflow Sync - Property Listing Synchronization
// Copyright 2026 Black Pixel CA
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/blackpixelca/entrata-webflow-sync

// Package metrics provides Prometheus instrumentation for:
//   - Sync runs (count, duration, per-property record/item volumes)
//   - Normalization field defaults (upstream shape drift visibility)
//   - Upstream/destination call failures by stage
//   - Circuit breaker state
//   - HTTP API requests
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Sync run metrics
	SyncRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_runs_total",
			Help: "Total number of sync runs",
		},
		[]string{"result"}, // "success", "partial", "error"
	)

	SyncRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sync_run_duration_seconds",
			Help:    "Duration of full sync runs in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	SyncRecordsFetched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_records_fetched_total",
			Help: "Total number of source records fetched from Entrata",
		},
		[]string{"property"},
	)

	SyncItemsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_items_published_total",
			Help: "Total number of items published to Webflow",
		},
		[]string{"collection"},
	)

	SyncBatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sync_batch_size",
			Help:    "Number of items per published batch",
			Buckets: []float64{1, 5, 10, 25, 50, 75, 100},
		},
	)

	SyncErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_errors_total",
			Help: "Total number of sync errors by stage",
		},
		[]string{"stage"}, // "config", "upstream", "destination"
	)

	// NormalizeDefaults counts fields that fell back to a default value
	// during normalization. A rising series for one field is the early
	// signal that the upstream response shape has drifted again.
	NormalizeDefaults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_normalize_defaults_total",
			Help: "Total number of record fields that defaulted during normalization",
		},
		[]string{"field"},
	)

	// Circuit breaker metrics
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
			Help: "Total requests through the circuit breaker by outcome",
		},
		[]string{"name", "outcome"}, // "success", "failure", "rejected"
	)

	// API endpoint metrics
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
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)
)

// RecordAPIRequest records metrics for a completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge.
func TrackActiveRequest(active bool) {
	if active {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRunResult classifies a finished run for the run counter.
func RecordRunResult(failed, total int, duration time.Duration) {
	result := "success"
	switch {
	case total > 0 && failed == total:
		result = "error"
	case failed > 0:
		result = "partial"
	}
	SyncRunsTotal.WithLabelValues(result).Inc()
	SyncRunDuration.Observe(duration.Seconds())
}
