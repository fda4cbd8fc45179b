// Entrata-Webflow Sync - Property Listing Synchronization
// Copyright 2026 Black Pixel CA
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/blackpixelca/entrata-webflow-sync

package sync

import (
	"testing"

	"github.com/goccy/go-json"
)

// decodeResult unwraps a raw response payload down to response.result.
func decodeResult(t *testing.T, payload string) interface{} {
	t.Helper()
	var envelope rpcEnvelope
	if err := json.Unmarshal([]byte(payload), &envelope); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	return envelope.Response.Result
}

func TestExtractRecords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
		want    int
	}{
		{
			name:    "top-level FloorPlans array",
			payload: `{"response":{"result":{"FloorPlans":[{"name":"A1"},{"name":"B2"}]}}}`,
			want:    2,
		},
		{
			name:    "nested unitTypes.unitType array",
			payload: `{"response":{"result":{"unitTypes":{"unitType":[{"name":"Studio"},{"name":"Loft"},{"name":"Corner"}]}}}}`,
			want:    3,
		},
		{
			name:    "empty result object",
			payload: `{"response":{"result":{}}}`,
			want:    0,
		},
		{
			name:    "result is the array itself",
			payload: `{"response":{"result":[{"name":"A1"}]}}`,
			want:    1,
		},
		{
			name:    "unknown key holding an array found by fallback scan",
			payload: `{"response":{"result":{"SomethingNew":[{"name":"A1"},{"name":"B2"}]}}}`,
			want:    2,
		},
		{
			name:    "single object result treated as one-element list",
			payload: `{"response":{"result":{"name":"Solo Penthouse","bedrooms":3}}}`,
			want:    1,
		},
		{
			name:    "missing result",
			payload: `{"response":{}}`,
			want:    0,
		},
		{
			name:    "scalar result",
			payload: `{"response":{"result":"ok"}}`,
			want:    0,
		},
		{
			name:    "non-object array elements are skipped",
			payload: `{"response":{"result":{"FloorPlans":[{"name":"A1"},"stray",42]}}}`,
			want:    1,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := decodeResult(t, tt.payload)
			records := ExtractRecords(result, DefaultRecordProbes)
			if len(records) != tt.want {
				t.Errorf("ExtractRecords() returned %d records, want %d", len(records), tt.want)
			}
		})
	}
}

func TestExtractRecordsProbePriority(t *testing.T) {
	t.Parallel()

	// When multiple known shapes are present, probe order decides.
	payload := `{"response":{"result":{
		"FloorPlans":[{"name":"from-floorplans"}],
		"unitTypes":{"unitType":[{"name":"from-unittypes"}]}
	}}}`

	records := ExtractRecords(decodeResult(t, payload), DefaultRecordProbes)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if got := records[0]["name"]; got != "from-floorplans" {
		t.Errorf("probe priority picked %v, want from-floorplans", got)
	}
}

func TestExtractRecordsFallbackScanIsDeterministic(t *testing.T) {
	t.Parallel()

	// Two unknown array keys: sorted key order picks "aaa" every time.
	payload := `{"response":{"result":{
		"zzz":[{"name":"late"}],
		"aaa":[{"name":"early"}]
	}}}`

	for i := 0; i < 10; i++ {
		records := ExtractRecords(decodeResult(t, payload), DefaultRecordProbes)
		if len(records) != 1 || records[0]["name"] != "early" {
			t.Fatalf("iteration %d: fallback scan picked %v, want early", i, records)
		}
	}
}

func TestExtractRecordsCustomProbes(t *testing.T) {
	t.Parallel()

	payload := `{"response":{"result":{"Rentables":{"Rentable":[{"name":"A1"}]}}}}`

	// Default probes miss the path entirely; the fallback scan finds
	// nothing either because Rentables is an object, so the single-object
	// rule applies instead.
	records := ExtractRecords(decodeResult(t, payload), DefaultRecordProbes)
	if len(records) != 1 {
		t.Fatalf("default probes: got %d, want 1 (single-object rule)", len(records))
	}
	if _, hasWrapper := records[0]["Rentables"]; !hasWrapper {
		t.Errorf("expected wrapper object as one-element record, got %v", records[0])
	}

	// A custom probe reaches the nested array directly.
	probes := []RecordProbe{{Name: "rentables", Path: []string{"Rentables", "Rentable"}}}
	records = ExtractRecords(decodeResult(t, payload), probes)
	if len(records) != 1 || records[0]["name"] != "A1" {
		t.Errorf("custom probe: got %v, want the nested record", records)
	}
}
