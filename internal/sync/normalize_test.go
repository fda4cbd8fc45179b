// Entrata-Webflow Sync - Property Listing Synchronization
// Copyright 2026 Black Pixel CA
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/blackpixelca/entrata-webflow-sync

package sync

import (
	"testing"
	"time"

	"github.com/blackpixelca/entrata-webflow-sync/internal/models"
)

var testProperty = models.PropertyConfig{
	SourcePropertyID: "100042",
	DestSiteID:       "site-1",
	DestCollectionID: "coll-1",
	DisplayName:      "Test Towers",
}

func TestNormalizePricePerBedroom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		record models.SourceRecord
		want   int
	}{
		{
			name:   "even division",
			record: models.SourceRecord{"bedrooms": float64(2), "minRent": float64(1000)},
			want:   500,
		},
		{
			name:   "rounds to nearest",
			record: models.SourceRecord{"bedrooms": float64(3), "minRent": float64(1000)},
			want:   333,
		},
		{
			name:   "zero bedrooms avoids division",
			record: models.SourceRecord{"bedrooms": float64(0), "minRent": float64(1000)},
			want:   0,
		},
		{
			name:   "zero rent",
			record: models.SourceRecord{"bedrooms": float64(2)},
			want:   0,
		},
		{
			name:   "comma-formatted rent string",
			record: models.SourceRecord{"bedrooms": float64(2), "minRent": "2,400"},
			want:   1200,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			item := Normalize(tt.record, testProperty, time.Now())
			if item.PricePerBedroom != tt.want {
				t.Errorf("PricePerBedroom = %d, want %d", item.PricePerBedroom, tt.want)
			}
		})
	}
}

func TestNormalizeAvailabilityStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		record models.SourceRecord
		want   string
	}{
		{"zero available", models.SourceRecord{"availableUnits": float64(0)}, models.StatusSoldOut},
		{"missing available", models.SourceRecord{}, models.StatusSoldOut},
		{"some available", models.SourceRecord{"availableUnits": float64(3)}, models.StatusAvailable},
		{"string count", models.SourceRecord{"availableUnits": "5"}, models.StatusAvailable},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			item := Normalize(tt.record, testProperty, time.Now())
			if item.AvailabilityStatus != tt.want {
				t.Errorf("AvailabilityStatus = %q, want %q", item.AvailabilityStatus, tt.want)
			}
		})
	}
}

func TestNormalizeTierClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		record        models.SourceRecord
		wantElite     bool
		wantSignature bool
	}{
		{
			name:          "below threshold is signature",
			record:        models.SourceRecord{"name": "A1 Flat", "bedrooms": float64(1), "minRent": float64(899)},
			wantElite:     false,
			wantSignature: true,
		},
		{
			name:          "at threshold is elite",
			record:        models.SourceRecord{"name": "A1 Flat", "bedrooms": float64(1), "minRent": float64(900)},
			wantElite:     true,
			wantSignature: false,
		},
		{
			name:          "elite keyword beats cheap price",
			record:        models.SourceRecord{"name": "Elite Corner", "bedrooms": float64(2), "minRent": float64(600)},
			wantElite:     true,
			wantSignature: false,
		},
		{
			name:          "signature keyword beats expensive price",
			record:        models.SourceRecord{"name": "Signature Loft", "bedrooms": float64(1), "minRent": float64(2000)},
			wantElite:     false,
			wantSignature: true,
		},
		{
			name:          "empty record defaults to signature",
			record:        models.SourceRecord{},
			wantElite:     false,
			wantSignature: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			item := Normalize(tt.record, testProperty, time.Now())
			if item.TierElite != tt.wantElite || item.TierSignature != tt.wantSignature {
				t.Errorf("tier = (elite=%v, signature=%v), want (elite=%v, signature=%v)",
					item.TierElite, item.TierSignature, tt.wantElite, tt.wantSignature)
			}
			if item.TierElite == item.TierSignature {
				t.Error("tier flags must be mutually exclusive")
			}
		})
	}
}

func TestNormalizeLayoutAndSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		record     models.SourceRecord
		wantLayout string
		wantSlug   string
	}{
		{
			name:       "keyword match",
			record:     models.SourceRecord{"name": "Two Bedroom Townhouse", "bedrooms": float64(2)},
			wantLayout: "Townhouse",
			wantSlug:   "2bed-townhouse",
		},
		{
			name:       "first keyword wins",
			record:     models.SourceRecord{"name": "Corner Penthouse", "bedrooms": float64(3)},
			wantLayout: "Corner",
			wantSlug:   "3bed-corner",
		},
		{
			name:       "no keyword falls back to raw name",
			record:     models.SourceRecord{"name": "The Ashford", "bedrooms": float64(1)},
			wantLayout: "The Ashford",
			wantSlug:   "1bed-the-ashford",
		},
		{
			name:       "empty record yields standard layout",
			record:     models.SourceRecord{},
			wantLayout: "Standard",
			wantSlug:   "0bed-standard",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			item := Normalize(tt.record, testProperty, time.Now())
			if item.LayoutType != tt.wantLayout {
				t.Errorf("LayoutType = %q, want %q", item.LayoutType, tt.wantLayout)
			}
			if item.Slug != tt.wantSlug {
				t.Errorf("Slug = %q, want %q", item.Slug, tt.wantSlug)
			}
		})
	}
}

func TestNormalizeEmptyRecord(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	item := Normalize(models.SourceRecord{}, testProperty, now)

	if item.Bedrooms != 0 || item.StartingPrice != 0 || item.PricePerBedroom != 0 {
		t.Errorf("empty record should yield zero numerics, got %+v", item)
	}
	if item.Slug == "" {
		t.Error("slug must be non-empty even for an empty record")
	}
	if item.Name != "Standard" {
		t.Errorf("Name = %q, want layout fallback %q", item.Name, "Standard")
	}
	if item.PropertyID != testProperty.SourcePropertyID {
		t.Errorf("PropertyID = %q, want %q", item.PropertyID, testProperty.SourcePropertyID)
	}
	if item.LastSynced != "2026-03-14T09:26:53Z" {
		t.Errorf("LastSynced = %q, want RFC3339 UTC timestamp", item.LastSynced)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	t.Parallel()

	record := models.SourceRecord{
		"UnitTypeName":   "Signature Loft B2",
		"Bedrooms":       float64(2),
		"Bathrooms":      float64(2.5),
		"SquareFeet":     "1,150",
		"MinRent":        "$1,800",
		"MaxRent":        float64(2200),
		"availableUnits": float64(4),
		"totalUnits":     float64(12),
		"imageUrl":       "https://cdn.example.com/b2.jpg",
	}
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	first := Normalize(record, testProperty, now)
	second := Normalize(record, testProperty, now)
	if first != second {
		t.Errorf("same inputs produced different items:\n%+v\n%+v", first, second)
	}

	if first.Name != "Signature Loft B2" {
		t.Errorf("Name = %q", first.Name)
	}
	if first.SquareFeet != 1150 {
		t.Errorf("SquareFeet = %v, want 1150", first.SquareFeet)
	}
	if first.StartingPrice != 1800 {
		t.Errorf("StartingPrice = %v, want 1800", first.StartingPrice)
	}
	if first.PricePerBedroom != 900 {
		t.Errorf("PricePerBedroom = %d, want 900", first.PricePerBedroom)
	}
	// Name keyword outranks the threshold.
	if !first.TierSignature || first.TierElite {
		t.Errorf("tier = (elite=%v, signature=%v), want signature", first.TierElite, first.TierSignature)
	}
	if first.AvailabilityStatus != models.StatusAvailable {
		t.Errorf("AvailabilityStatus = %q", first.AvailabilityStatus)
	}
}

func TestKebabCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Corner", "corner"},
		{"Two Bedroom  Townhouse", "two-bedroom-townhouse"},
		{"A1 / Flat!", "a1-flat"},
		{"--weird--", "weird"},
		{"", ""},
	}

	for _, tt := range tests {
		tt := tt
		if got := kebabCase(tt.in); got != tt.want {
			t.Errorf("kebabCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
