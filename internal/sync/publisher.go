// Entrata-Webflow Sync - Property Listing Synchronization
// Copyright 2026 Black Pixel CA
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/blackpixelca/entrata-webflow-sync

package sync

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/blackpixelca/entrata-webflow-sync/internal/logging"
	"github.com/blackpixelca/entrata-webflow-sync/internal/metrics"
	"github.com/blackpixelca/entrata-webflow-sync/internal/models"
)

// ItemPublisher publishes a full item set to one destination collection.
type ItemPublisher interface {
	Publish(ctx context.Context, collectionID string, items []models.DestinationItem) error
}

// Publisher partitions items into fixed-size batches and pushes each batch
// to the destination's bulk-create endpoint, pausing between batches (not
// after the last) to respect the destination's rate limits.
//
// There is no partial-success bookkeeping: batches already accepted by the
// destination are not rolled back and not recorded, so a mid-run failure
// leaves the collection partially updated.
type Publisher struct {
	creator   ItemCreator
	batchSize int
	batchRate rate.Limit
}

// NewPublisher creates a Publisher. batchSize must not exceed the
// destination's per-request cap (100 for Webflow); delay is the fixed
// inter-batch pause (0 disables pacing).
func NewPublisher(creator ItemCreator, batchSize int, delay time.Duration) *Publisher {
	return &Publisher{
		creator:   creator,
		batchSize: batchSize,
		batchRate: rate.Every(delay),
	}
}

// Publish pushes items to the collection in order. A no-op when items is
// empty. A failed batch aborts the remaining batches and returns the
// error; earlier batches stay published.
//
// The inter-batch pause uses a token-bucket limiter with burst 1: the
// first batch goes immediately, each later batch waits out the fixed
// delay. The wait is cancellable through ctx.
func (p *Publisher) Publish(ctx context.Context, collectionID string, items []models.DestinationItem) error {
	if len(items) == 0 {
		logging.Info().Str("collection", collectionID).Msg("No items to publish")
		return nil
	}

	limiter := rate.NewLimiter(p.batchRate, 1)

	batches := (len(items) + p.batchSize - 1) / p.batchSize
	for i := 0; i < len(items); i += p.batchSize {
		end := i + p.batchSize
		if end > len(items) {
			end = len(items)
		}
		batch := items[i:end]

		if err := limiter.Wait(ctx); err != nil {
			return fmt.Errorf("inter-batch wait canceled: %w", err)
		}

		if err := p.creator.CreateItems(ctx, collectionID, batch); err != nil {
			metrics.SyncErrors.WithLabelValues("destination").Inc()
			return fmt.Errorf("batch %d/%d: %w", i/p.batchSize+1, batches, err)
		}

		metrics.SyncBatchSize.Observe(float64(len(batch)))
		metrics.SyncItemsPublished.WithLabelValues(collectionID).Add(float64(len(batch)))

		logging.Debug().
			Str("collection", collectionID).
			Int("batch", i/p.batchSize+1).
			Int("batches", batches).
			Int("size", len(batch)).
			Msg("Published batch")
	}

	logging.Info().
		Str("collection", collectionID).
		Int("items", len(items)).
		Int("batches", batches).
		Msg("Publish complete")

	return nil
}
