// Entrata-Webflow Sync - Property Listing Synchronization
// Copyright 2026 Black Pixel CA
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/blackpixelca/entrata-webflow-sync

package sync

import (
	"context"
	"errors"
	"testing"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/blackpixelca/entrata-webflow-sync/internal/models"
)

func TestCircuitBreakerPassesThroughSuccess(t *testing.T) {
	t.Parallel()

	inner := &fakeFetcher{records: map[string][]models.SourceRecord{
		"p1": {record("A1", 1)},
	}}
	fetcher := NewCircuitBreakerFetcher(inner)

	records, err := fetcher.FetchRecords(context.Background(), "p1")
	if err != nil {
		t.Fatalf("FetchRecords() error = %v", err)
	}
	if len(records) != 1 {
		t.Errorf("got %d records, want 1", len(records))
	}
}

func TestCircuitBreakerPreservesErrorType(t *testing.T) {
	t.Parallel()

	upstreamErr := &UpstreamError{Status: 503, Body: "maintenance"}
	inner := &fakeFetcher{
		records: map[string][]models.SourceRecord{},
		fail:    map[string]error{"p1": upstreamErr},
	}
	fetcher := NewCircuitBreakerFetcher(inner)

	_, err := fetcher.FetchRecords(context.Background(), "p1")
	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("error %v should pass through as *UpstreamError", err)
	}
	if ue.Status != 503 {
		t.Errorf("Status = %d, want 503", ue.Status)
	}
}

func TestCircuitBreakerOpensAfterRepeatedFailures(t *testing.T) {
	t.Parallel()

	inner := &fakeFetcher{
		records: map[string][]models.SourceRecord{},
		fail:    map[string]error{"p1": &UpstreamError{Status: 502, Body: "down"}},
	}
	fetcher := NewCircuitBreakerFetcher(inner)

	// Five consecutive failures trip the breaker.
	for i := 0; i < 5; i++ {
		if _, err := fetcher.FetchRecords(context.Background(), "p1"); err == nil {
			t.Fatalf("call %d: expected failure", i)
		}
	}

	_, err := fetcher.FetchRecords(context.Background(), "p1")
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("after trip: error = %v, want gobreaker.ErrOpenState", err)
	}

	// The open breaker rejects without reaching the upstream.
	callsBefore := len(inner.calls)
	fetcher.FetchRecords(context.Background(), "p1") //nolint:errcheck
	if len(inner.calls) != callsBefore {
		t.Error("open breaker must fail fast without calling the upstream")
	}
}
