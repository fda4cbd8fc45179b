// Entrata-Webflow Sync - Property Listing Synchronization
// Copyright 2026 Black Pixel CA
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/blackpixelca/entrata-webflow-sync

// Package main is the entry point for the sync service.
//
// The service keeps Webflow CMS collections in step with Entrata property
// data: each configured property is fetched from the Entrata JSON-RPC
// API, normalized into flat CMS items, and bulk-published to its Webflow
// collection in paced batches.
//
// # Startup Order
//
//  1. Configuration: Koanf v2 layered sources (defaults, config.yaml,
//     environment variables)
//  2. Logging: zerolog, configured from LOG_LEVEL / LOG_FORMAT
//  3. Property set: parsed from the PROPERTIES JSON array
//  4. Pipeline: Entrata client (behind a circuit breaker), Webflow
//     client, batch publisher, sync manager
//  5. Supervisor tree: sync layer (scheduler) and api layer (HTTP server)
//
// # Configuration
//
// Required environment variables:
//   - ENTRATA_API_KEY: Entrata API key
//   - ENTRATA_BASE_URL: e.g. https://apis.entrata.com/ext/orgs
//   - ENTRATA_ORG_ID: organization identifier in the request path
//   - WEBFLOW_TOKEN: Webflow API v2 bearer token
//   - PROPERTIES: JSON array of property-to-collection mappings, e.g.
//     [{"sourcePropertyId":"100042","destSiteId":"...","destCollectionId":"..."}]
//
// # Signal Handling
//
// SIGINT and SIGTERM trigger graceful shutdown: the HTTP server drains
// in-flight requests (10s timeout) and the scheduler stops between runs.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blackpixelca/entrata-webflow-sync/internal/api"
	"github.com/blackpixelca/entrata-webflow-sync/internal/config"
	"github.com/blackpixelca/entrata-webflow-sync/internal/logging"
	"github.com/blackpixelca/entrata-webflow-sync/internal/supervisor"
	"github.com/blackpixelca/entrata-webflow-sync/internal/sync"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Str("version", version).Msg("Starting entrata-webflow-sync")

	props, err := config.ParseProperties(cfg.Sync.Properties)
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid property configuration")
	}
	logging.Info().
		Int("properties", len(props)).
		Str("entrata_url", cfg.Entrata.BaseURL).
		Dur("interval", cfg.Sync.Interval).
		Int("batch_size", cfg.Sync.BatchSize).
		Msg("Configuration loaded")

	// Pipeline: Entrata fetch (behind a circuit breaker so one dead
	// upstream fails later properties fast), normalize, paced publish.
	fetcher := sync.NewCircuitBreakerFetcher(sync.NewEntrataClient(cfg.Entrata))
	publisher := sync.NewPublisher(
		sync.NewWebflowClient(cfg.Webflow),
		cfg.Sync.BatchSize,
		cfg.Sync.BatchDelay,
	)
	manager := sync.NewManager(props, fetcher, publisher, cfg.Sync.Interval, cfg.Sync.RunOnStart)

	handler := api.NewHandler(manager, props, version)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree := supervisor.NewTree(supervisor.DefaultTreeConfig())
	tree.AddSyncService(manager)
	tree.AddAPIService(supervisor.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
