// Entrata-Webflow Sync - Property Listing Synchronization
// Copyright 2026 Black Pixel CA
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/blackpixelca/entrata-webflow-sync

/*
Package sync implements the per-property sync pipeline:

	fetch (Entrata) -> normalize -> publish (Webflow)

Properties are processed strictly sequentially in configuration order, and
batches within a property are sequential with a fixed inter-batch pause.
There is no retry of failed calls and no state carried between runs; a
property's failure is recorded and the run continues with the next property.

Components:

  - EntrataClient fetches unit/unit-type/floorplan records for one property
    per call, tolerating the upstream's unstable response nesting via an
    ordered list of shape probes (extract.go).
  - Normalize maps one heterogeneous source record to a canonical
    DestinationItem. Pure, total, never errors; missing fields default and
    are counted in metrics.
  - Publisher partitions items into bulk-create batches and pushes them to
    a Webflow collection with pacing between batches.
  - Manager orchestrates runs: manual triggers, the periodic schedule, and
    run summaries for the status endpoint.
*/
package sync
