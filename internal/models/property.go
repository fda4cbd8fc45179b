// Entrata-Webflow Sync - Property Listing Synchronization
// Copyright 2026 Black Pixel CA
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/blackpixelca/entrata-webflow-sync

// Package models defines the data types shared across the sync pipeline:
// the per-property configuration entries, the untyped upstream records, and
// the canonical destination items pushed to Webflow.
package models

// PropertyConfig maps one Entrata property to one Webflow collection.
// Entries are loaded once per run from the PROPERTIES configuration value
// and are immutable afterwards; their order determines sync order.
type PropertyConfig struct {
	// SourcePropertyID is the Entrata property identifier.
	SourcePropertyID string `json:"sourcePropertyId"`

	// DestSiteID is the Webflow site the collection belongs to.
	DestSiteID string `json:"destSiteId"`

	// DestCollectionID is the Webflow collection items are created in.
	DestCollectionID string `json:"destCollectionId"`

	// DisplayName is used for logging and item naming.
	// Defaults to SourcePropertyID when absent.
	DisplayName string `json:"displayName,omitempty"`
}

// Name returns the display name, falling back to the source property ID.
func (p PropertyConfig) Name() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.SourcePropertyID
}
