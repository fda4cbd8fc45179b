// Entrata-Webflow Sync - Property Listing Synchronization
// Copyright 2026 Black Pixel CA
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/blackpixelca/entrata-webflow-sync

package models

// SourceRecord is a single unit, unit-type, or floorplan record as returned
// by Entrata. The shape is not stable across API variants (field names and
// casing differ, numerics sometimes arrive as comma-formatted strings), so
// records stay untyped until normalization.
type SourceRecord map[string]interface{}

// DestinationItem is the canonical flat field map created in a Webflow
// collection. Field keys follow Webflow's kebab-case slug convention.
//
// Items carry no identity: every sync run creates new items and never
// matches against existing ones. Deduplication, if any, is the
// destination's concern.
type DestinationItem struct {
	Name               string  `json:"name"`
	Slug               string  `json:"slug"`
	Bedrooms           int     `json:"bedrooms"`
	Bathrooms          float64 `json:"bathrooms"`
	SquareFeet         float64 `json:"square-feet"`
	StartingPrice      float64 `json:"starting-price"`
	MaxPrice           float64 `json:"max-price"`
	PricePerBedroom    int     `json:"price-per-bedroom"`
	AvailableUnits     int     `json:"available-units"`
	TotalUnits         int     `json:"total-units"`
	AvailabilityStatus string  `json:"availability-status"`
	LayoutType         string  `json:"layout-type"`
	TierSignature      bool    `json:"tier-signature"`
	TierElite          bool    `json:"tier-elite"`
	ImageURL           string  `json:"image-url"`
	PropertyID         string  `json:"property-id"`
	LastSynced         string  `json:"last-synced"`
}

// Availability status values for DestinationItem.AvailabilityStatus.
const (
	StatusAvailable = "available"
	StatusSoldOut   = "sold-out"
)
