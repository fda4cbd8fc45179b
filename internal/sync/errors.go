// Entrata-Webflow Sync - Property Listing Synchronization
// Copyright 2026 Black Pixel CA
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/blackpixelca/entrata-webflow-sync

package sync

import "fmt"

// UpstreamError indicates a non-success HTTP response from the Entrata API.
// It aborts the current property's sync; the run continues with the next
// property and reports the failure in the aggregate result.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("entrata request failed with status %d: %s", e.Status, e.Body)
}

// DestinationError indicates a non-success HTTP response from the Webflow
// API. Remaining batches for the property are abandoned; batches the
// destination already accepted are neither rolled back nor recorded.
type DestinationError struct {
	Status int
	Body   string
}

func (e *DestinationError) Error() string {
	return fmt.Sprintf("webflow request failed with status %d: %s", e.Status, e.Body)
}
