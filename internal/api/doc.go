// Entrata-Webflow Sync - Property Listing Synchronization
// Copyright 2026 Black Pixel CA
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/blackpixelca/entrata-webflow-sync

/*
Package api provides the HTTP surface of the sync service using the Chi
router.

Endpoints:

  - POST /sync               triggers a full sync run (409 while one runs)
  - GET  /api/v1/status      last run summary and uptime
  - GET  /api/v1/health/live liveness probe, always 200
  - GET  /api/v1/health/ready readiness probe, 503 until configured
  - GET  /metrics            Prometheus metrics
  - anything else            200 with service info

The catch-all deliberately returns 200 rather than 404: the service sits
behind webhook callers that treat any non-2xx as a delivery failure and
retry, so unknown paths are acknowledged and described instead of
rejected.
*/
package api
