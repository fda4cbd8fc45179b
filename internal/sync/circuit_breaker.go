// Entrata-Webflow Sync - Property Listing Synchronization
// Copyright 2026 Black Pixel CA
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/blackpixelca/entrata-webflow-sync

package sync

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/blackpixelca/entrata-webflow-sync/internal/logging"
	"github.com/blackpixelca/entrata-webflow-sync/internal/metrics"
	"github.com/blackpixelca/entrata-webflow-sync/internal/models"
)

// CircuitBreakerFetcher wraps a RecordFetcher with the circuit breaker
// pattern. When the upstream is down, later properties in a run fail fast
// instead of each waiting out a full HTTP timeout. The breaker never
// retries anything: a rejected or failed fetch is still the property's
// final answer for this run.
type CircuitBreakerFetcher struct {
	fetcher RecordFetcher
	cb      *gobreaker.CircuitBreaker[[]models.SourceRecord]
	name    string
}

// NewCircuitBreakerFetcher wraps fetcher with a circuit breaker.
// Configuration: opens at a 60% failure rate over a minimum of 5 requests
// within a 1 minute window; half-opens after 2 minutes.
func NewCircuitBreakerFetcher(fetcher RecordFetcher) *CircuitBreakerFetcher {
	cbName := "entrata-api"
	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[[]models.SourceRecord](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.6
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", stateToString(from)).
				Str("to", stateToString(to)).
				Msg("Circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &CircuitBreakerFetcher{
		fetcher: fetcher,
		cb:      cb,
		name:    cbName,
	}
}

// FetchRecords executes the wrapped fetch through the breaker.
func (f *CircuitBreakerFetcher) FetchRecords(ctx context.Context, propertyID string) ([]models.SourceRecord, error) {
	records, err := f.cb.Execute(func() ([]models.SourceRecord, error) {
		return f.fetcher.FetchRecords(ctx, propertyID)
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(f.name, "rejected").Inc()
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(f.name, "failure").Inc()
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(f.name, "success").Inc()
	return records, nil
}

// stateToString converts a gobreaker state to a readable label.
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// stateToFloat converts a gobreaker state to its metric value.
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
