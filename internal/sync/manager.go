// Entrata-Webflow Sync - Property Listing Synchronization
// Copyright 2026 Black Pixel CA
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/blackpixelca/entrata-webflow-sync

package sync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/blackpixelca/entrata-webflow-sync/internal/logging"
	"github.com/blackpixelca/entrata-webflow-sync/internal/metrics"
	"github.com/blackpixelca/entrata-webflow-sync/internal/models"
)

// ErrRunInProgress is returned by TriggerRun when a sync run is already
// executing. Runs never overlap.
var ErrRunInProgress = errors.New("a sync run is already in progress")

// Manager orchestrates sync runs across all configured properties.
//
// Properties are processed strictly sequentially in configuration order;
// property N+1's fetch does not begin until property N's publish completes
// or fails. A property's failure does not abort the run: it is recorded in
// the run summary and the run continues, returning the aggregate error at
// the end.
type Manager struct {
	props      []models.PropertyConfig
	fetcher    RecordFetcher
	publisher  ItemPublisher
	interval   time.Duration
	runOnStart bool

	// runMu serializes runs; mu guards lastRun.
	runMu   sync.Mutex
	mu      sync.RWMutex
	lastRun *models.RunSummary
}

// NewManager creates a Manager. interval is the periodic schedule for
// Serve; 0 disables the internal scheduler. When runOnStart is set, Serve
// runs one sync immediately instead of waiting for the first tick.
func NewManager(props []models.PropertyConfig, fetcher RecordFetcher, publisher ItemPublisher, interval time.Duration, runOnStart bool) *Manager {
	return &Manager{
		props:      props,
		fetcher:    fetcher,
		publisher:  publisher,
		interval:   interval,
		runOnStart: runOnStart,
	}
}

// LastRun returns the most recent run summary, or nil before the first run.
func (m *Manager) LastRun() *models.RunSummary {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastRun
}

// TriggerRun runs the full pipeline if no run is in flight, returning
// ErrRunInProgress otherwise. Used by the manual HTTP trigger so an
// external caller cannot stack runs behind each other.
func (m *Manager) TriggerRun(ctx context.Context) (*models.RunSummary, error) {
	if !m.runMu.TryLock() {
		return nil, ErrRunInProgress
	}
	defer m.runMu.Unlock()
	return m.runAll(ctx)
}

// RunAll runs the full pipeline, waiting for any in-flight run to finish
// first. Used by the scheduler.
func (m *Manager) RunAll(ctx context.Context) (*models.RunSummary, error) {
	m.runMu.Lock()
	defer m.runMu.Unlock()
	return m.runAll(ctx)
}

// runAll executes one run. Callers must hold runMu.
func (m *Manager) runAll(ctx context.Context) (*models.RunSummary, error) {
	start := time.Now()
	summary := &models.RunSummary{
		StartedAt:  start,
		Properties: make([]models.PropertyRunResult, 0, len(m.props)),
	}

	logging.Info().Int("properties", len(m.props)).Msg("Sync run started")

	var errs []error
	for _, prop := range m.props {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}

		result, err := m.syncProperty(ctx, prop)
		if err != nil {
			err = fmt.Errorf("property %s: %w", prop.Name(), err)
			logging.Error().Err(err).Str("property", prop.Name()).Msg("Property sync failed")
			result.Error = err.Error()
			summary.Failed++
			errs = append(errs, err)
		}
		summary.Properties = append(summary.Properties, result)
	}

	summary.Duration = time.Since(start)
	metrics.RecordRunResult(summary.Failed, len(m.props), summary.Duration)

	m.mu.Lock()
	m.lastRun = summary
	m.mu.Unlock()

	logging.Info().
		Dur("duration", summary.Duration).
		Int("properties", len(summary.Properties)).
		Int("failed", summary.Failed).
		Msg("Sync run finished")

	return summary, errors.Join(errs...)
}

// syncProperty runs fetch -> normalize -> publish for one property.
func (m *Manager) syncProperty(ctx context.Context, prop models.PropertyConfig) (models.PropertyRunResult, error) {
	result := models.PropertyRunResult{
		Property:     prop.Name(),
		CollectionID: prop.DestCollectionID,
	}

	records, err := m.fetcher.FetchRecords(ctx, prop.SourcePropertyID)
	if err != nil {
		metrics.SyncErrors.WithLabelValues("upstream").Inc()
		return result, fmt.Errorf("fetch: %w", err)
	}
	result.RecordsFetched = len(records)
	metrics.SyncRecordsFetched.WithLabelValues(prop.Name()).Add(float64(len(records)))

	logging.Info().
		Str("property", prop.Name()).
		Int("records", len(records)).
		Msg("Fetched source records")

	now := time.Now()
	items := make([]models.DestinationItem, 0, len(records))
	for _, record := range records {
		items = append(items, Normalize(record, prop, now))
	}

	if err := m.publisher.Publish(ctx, prop.DestCollectionID, items); err != nil {
		return result, fmt.Errorf("publish: %w", err)
	}
	result.ItemsPublished = len(items)

	return result, nil
}

// Serve implements suture.Service: it runs the periodic sync schedule
// until ctx is canceled. With a zero interval the scheduler idles and only
// manual triggers run syncs.
func (m *Manager) Serve(ctx context.Context) error {
	if m.runOnStart {
		if _, err := m.RunAll(ctx); err != nil {
			logging.Error().Err(err).Msg("Startup sync run failed")
		}
	}

	if m.interval <= 0 {
		logging.Info().Msg("Internal scheduler disabled (sync.interval = 0)")
		<-ctx.Done()
		return ctx.Err()
	}

	logging.Info().Dur("interval", m.interval).Msg("Internal scheduler started")

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := m.RunAll(ctx); err != nil {
				logging.Error().Err(err).Msg("Scheduled sync run failed")
			}
		}
	}
}
