// Entrata-Webflow Sync - Property Listing Synchronization
// Copyright 2026 Black Pixel CA
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/blackpixelca/entrata-webflow-sync

package sync

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/blackpixelca/entrata-webflow-sync/internal/metrics"
	"github.com/blackpixelca/entrata-webflow-sync/internal/models"
)

// Field alias tables. No two Entrata API variants agree on field names or
// casing, so each canonical field probes an ordered list of known aliases;
// the first present value wins.
var (
	nameAliases = []string{
		"name", "Name", "unitTypeName", "UnitTypeName",
		"floorplanName", "FloorplanName", "floorPlanName", "title", "Title",
	}
	bedroomAliases = []string{
		"bedrooms", "Bedrooms", "beds", "Beds",
		"bedroomCount", "BedroomCount", "maxBedrooms", "MaxBedrooms",
	}
	bathroomAliases = []string{
		"bathrooms", "Bathrooms", "baths", "Baths",
		"bathroomCount", "BathroomCount", "maxBathrooms", "MaxBathrooms",
	}
	squareFeetAliases = []string{
		"squareFeet", "SquareFeet", "sqft", "SqFt",
		"maxSquareFeet", "MaxSquareFeet", "squareFootage",
	}
	minRentAliases = []string{
		"minRent", "MinRent", "minimumRent", "MinimumRent",
		"rentMin", "minPrice", "startingPrice",
	}
	maxRentAliases = []string{
		"maxRent", "MaxRent", "maximumRent", "MaximumRent",
		"rentMax", "maxPrice",
	}
	availableUnitsAliases = []string{
		"availableUnits", "AvailableUnits", "availableCount",
		"AvailableCount", "unitsAvailable", "UnitsAvailable",
	}
	totalUnitsAliases = []string{
		"totalUnits", "TotalUnits", "unitCount", "UnitCount", "totalUnitCount",
	}
	imageAliases = []string{
		"imageUrl", "ImageUrl", "imageURL", "image", "Image",
		"photoUrl", "PhotoUrl", "mediaUrl",
	}
)

// layoutKeywords is the ordered keyword list for layout classification.
// First case-insensitive match against the record's name wins.
var layoutKeywords = []struct {
	keyword string
	label   string
}{
	{"corner", "Corner"},
	{"townhouse", "Townhouse"},
	{"flat", "Flat"},
	{"penthouse", "Penthouse"},
	{"loft", "Loft"},
	{"studio", "Studio"},
}

// eliteThreshold is the price-per-bedroom at or above which an unnamed
// tier classifies as elite.
const eliteThreshold = 900

// Normalize maps one source record to a canonical destination item for the
// given property. It is pure and total: any input, including an empty
// record, yields a complete item. Missing or malformed fields degrade
// silently to zero values; each such fallback is counted in
// sync_normalize_defaults_total so shape drift stays visible.
//
// now supplies the last-synced timestamp; callers pass wall-clock time.
func Normalize(record models.SourceRecord, prop models.PropertyConfig, now time.Time) models.DestinationItem {
	name := extractString(record, nameAliases, "name")
	bedrooms := int(extractNumber(record, bedroomAliases, "bedrooms"))
	bathrooms := extractNumber(record, bathroomAliases, "bathrooms")
	squareFeet := extractNumber(record, squareFeetAliases, "square-feet")
	minRent := extractNumber(record, minRentAliases, "starting-price")
	maxRent := extractNumber(record, maxRentAliases, "max-price")
	availableUnits := int(extractNumber(record, availableUnitsAliases, "available-units"))
	totalUnits := int(extractNumber(record, totalUnitsAliases, "total-units"))
	imageURL := extractString(record, imageAliases, "image-url")

	layoutType := classifyLayout(name)

	pricePerBed := 0
	if bedrooms > 0 && minRent > 0 {
		pricePerBed = int(math.Round(minRent / float64(bedrooms)))
	}

	status := models.StatusSoldOut
	if availableUnits > 0 {
		status = models.StatusAvailable
	}

	elite, signature := classifyTier(name, pricePerBed)

	displayName := name
	if displayName == "" {
		displayName = layoutType
	}

	return models.DestinationItem{
		Name:               displayName,
		Slug:               fmt.Sprintf("%dbed-%s", bedrooms, kebabCase(layoutType)),
		Bedrooms:           bedrooms,
		Bathrooms:          bathrooms,
		SquareFeet:         squareFeet,
		StartingPrice:      minRent,
		MaxPrice:           maxRent,
		PricePerBedroom:    pricePerBed,
		AvailableUnits:     availableUnits,
		TotalUnits:         totalUnits,
		AvailabilityStatus: status,
		LayoutType:         layoutType,
		TierSignature:      signature,
		TierElite:          elite,
		ImageURL:           imageURL,
		PropertyID:         prop.SourcePropertyID,
		LastSynced:         now.UTC().Format(time.RFC3339),
	}
}

// classifyLayout derives the layout label from the record name: first
// keyword match wins, then the raw name, then "Standard".
func classifyLayout(name string) string {
	lower := strings.ToLower(name)
	for _, lk := range layoutKeywords {
		if strings.Contains(lower, lk.keyword) {
			return lk.label
		}
	}
	if name != "" {
		return name
	}
	return "Standard"
}

// classifyTier derives the mutually exclusive tier flags. An explicit name
// keyword wins; otherwise the price-per-bedroom threshold decides.
func classifyTier(name string, pricePerBed int) (elite, signature bool) {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "elite"):
		return true, false
	case strings.Contains(lower, "signature"):
		return false, true
	case pricePerBed >= eliteThreshold:
		return true, false
	default:
		return false, true
	}
}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// kebabCase lowercases s and collapses runs of non-alphanumeric characters
// into single hyphens.
func kebabCase(s string) string {
	s = nonAlphanumeric.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}

// extractString probes the alias list and returns the first present
// string-convertible value, or "" (counted as a default).
func extractString(record models.SourceRecord, aliases []string, field string) string {
	for _, key := range aliases {
		v, ok := record[key]
		if !ok || v == nil {
			continue
		}
		switch s := v.(type) {
		case string:
			if s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(s, 'f', -1, 64)
		}
	}
	metrics.NormalizeDefaults.WithLabelValues(field).Inc()
	return ""
}

// extractNumber probes the alias list and returns the first present
// numeric value, coercing numeric-looking strings after stripping
// thousands separators. Returns 0 (counted as a default) when nothing
// usable is present.
func extractNumber(record models.SourceRecord, aliases []string, field string) float64 {
	for _, key := range aliases {
		v, ok := record[key]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n
		case int:
			return float64(n)
		case string:
			cleaned := strings.TrimSpace(strings.ReplaceAll(n, ",", ""))
			cleaned = strings.TrimPrefix(cleaned, "$")
			if f, err := strconv.ParseFloat(cleaned, 64); err == nil {
				return f
			}
		}
	}
	metrics.NormalizeDefaults.WithLabelValues(field).Inc()
	return 0
}
