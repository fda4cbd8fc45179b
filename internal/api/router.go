// Entrata-Webflow Sync - Property Listing Synchronization
// Copyright 2026 Black Pixel CA
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/blackpixelca/entrata-webflow-sync

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/blackpixelca/entrata-webflow-sync/internal/middleware"
)

// Router wires handlers into the Chi routing tree.
type Router struct {
	handler *Handler
}

// NewRouter creates a router around the given handler.
func NewRouter(handler *Handler) *Router {
	return &Router{handler: handler}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)

	// Trigger endpoint. The rate limit is a guard against webhook storms,
	// not a fairness mechanism: runs are serialized by the manager anyway.
	r.With(httprate.Limit(10, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP))).
		Post("/sync", router.handler.TriggerSync)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Compression)
		r.Get("/status", router.handler.Status)
		r.Route("/health", func(r chi.Router) {
			r.Get("/live", router.handler.HealthLive)
			r.Get("/ready", router.handler.HealthReady)
		})
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Everything else acknowledges with service info.
	r.NotFound(router.handler.Info)
	r.MethodNotAllowed(router.handler.Info)

	return r
}
