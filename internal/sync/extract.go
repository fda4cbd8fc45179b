// Entrata-Webflow Sync - Property Listing Synchronization
// Copyright 2026 Black Pixel CA
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/blackpixelca/entrata-webflow-sync

package sync

import (
	"sort"

	"github.com/blackpixelca/entrata-webflow-sync/internal/models"
)

// RecordProbe names one candidate location of the record array inside the
// upstream's response.result object. Probes are applied in order and the
// first one that finds a non-empty array wins.
type RecordProbe struct {
	Name string
	Path []string
}

// DefaultRecordProbes covers every result nesting observed across Entrata
// API variants so far. The list is exported so the shapes can be extended
// without touching the extraction logic; upstream shape drift is expected.
var DefaultRecordProbes = []RecordProbe{
	{Name: "floorplans", Path: []string{"FloorPlans"}},
	{Name: "floorplans-lower", Path: []string{"floorPlans"}},
	{Name: "floorplan-list", Path: []string{"FloorPlans", "FloorPlan"}},
	{Name: "unittypes-nested", Path: []string{"unitTypes", "unitType"}},
	{Name: "unittypes-nested-upper", Path: []string{"UnitTypes", "UnitType"}},
	{Name: "unittypes", Path: []string{"unitTypes"}},
	{Name: "propertyunits-nested", Path: []string{"PropertyUnits", "Unit"}},
	{Name: "propertyunits", Path: []string{"propertyUnits"}},
	{Name: "units-nested", Path: []string{"Units", "Unit"}},
}

// ExtractRecords locates the record array inside the unwrapped
// response.result value. The policy, in priority order:
//
//  1. An array result is the record list itself.
//  2. Each probe path is walked through nested objects; the first array
//     found wins.
//  3. Failing all probes, the result object's immediate properties are
//     scanned (in sorted key order, for determinism) for the first
//     array-valued property.
//  4. A lone non-array object counts as a one-element record list.
//  5. Anything else yields an empty list.
//
// Shape drift therefore degrades to an empty result instead of an error;
// only transport-level failures abort a property's sync.
func ExtractRecords(result interface{}, probes []RecordProbe) []models.SourceRecord {
	switch v := result.(type) {
	case []interface{}:
		return toRecords(v)
	case map[string]interface{}:
		if recs := probeRecords(v, probes); recs != nil {
			return recs
		}
		if recs := scanForArray(v); recs != nil {
			return recs
		}
		if len(v) > 0 {
			return []models.SourceRecord{models.SourceRecord(v)}
		}
		return []models.SourceRecord{}
	default:
		return []models.SourceRecord{}
	}
}

// probeRecords walks each probe path and returns the first non-empty array.
func probeRecords(result map[string]interface{}, probes []RecordProbe) []models.SourceRecord {
	for _, probe := range probes {
		node := interface{}(result)
		for _, key := range probe.Path {
			obj, ok := node.(map[string]interface{})
			if !ok {
				node = nil
				break
			}
			node = obj[key]
		}
		if arr, ok := node.([]interface{}); ok && len(arr) > 0 {
			return toRecords(arr)
		}
	}
	return nil
}

// scanForArray returns the first array-valued immediate property of the
// result object. Keys are visited in sorted order so repeated runs against
// the same payload always pick the same array.
func scanForArray(result map[string]interface{}) []models.SourceRecord {
	keys := make([]string, 0, len(result))
	for k := range result {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if arr, ok := result[k].([]interface{}); ok {
			return toRecords(arr)
		}
	}
	return nil
}

// toRecords converts a decoded JSON array to SourceRecords, skipping
// non-object elements.
func toRecords(arr []interface{}) []models.SourceRecord {
	records := make([]models.SourceRecord, 0, len(arr))
	for _, el := range arr {
		if obj, ok := el.(map[string]interface{}); ok {
			records = append(records, models.SourceRecord(obj))
		}
	}
	return records
}
