// Entrata-Webflow Sync - Property Listing Synchronization
// Copyright 2026 Black Pixel CA
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/blackpixelca/entrata-webflow-sync

package models

import "time"

// APIResponse is the standard envelope for all HTTP API responses.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data,omitempty"`
	Error    *APIError   `json:"error,omitempty"`
	Metadata Metadata    `json:"metadata"`
}

// APIError describes a failed API request.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Metadata carries response metadata.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
}

// PropertyRunResult summarizes one property's slice of a sync run.
type PropertyRunResult struct {
	Property       string `json:"property"`
	CollectionID   string `json:"collectionId"`
	RecordsFetched int    `json:"recordsFetched"`
	ItemsPublished int    `json:"itemsPublished"`
	Error          string `json:"error,omitempty"`
}

// RunSummary describes one full sync run across all configured properties.
type RunSummary struct {
	StartedAt  time.Time           `json:"startedAt"`
	Duration   time.Duration       `json:"duration"`
	Properties []PropertyRunResult `json:"properties"`
	Failed     int                 `json:"failed"`
}

// Succeeded reports whether every property synced without error.
func (s *RunSummary) Succeeded() bool {
	return s.Failed == 0
}
