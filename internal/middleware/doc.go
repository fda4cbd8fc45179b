// Entrata-Webflow Sync - Property Listing Synchronization
// Copyright 2026 Black Pixel CA
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/blackpixelca/entrata-webflow-sync

// Package middleware provides HTTP middleware for the API server: request
// ID tracking, Prometheus instrumentation, and gzip compression. All
// middleware uses the Chi-compatible func(http.Handler) http.Handler shape
// so it composes with r.Use().
package middleware
