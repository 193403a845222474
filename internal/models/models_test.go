// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package models

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestExtractedEntitiesMerge(t *testing.T) {
	a := ExtractedEntities{
		Parameters: []string{"temperature", "salinity"},
		FloatIDs:   []string{"1902681"},
	}
	b := ExtractedEntities{
		Parameters:  []string{"salinity", "oxygen"},
		Regions:     []string{"arabian sea"},
		FloatIDs:    []string{"1902681", "2902145"},
		Comparisons: []Comparator{{Operator: ">", Value: 25}},
	}

	merged := a.Merge(b)

	wantParams := []string{"temperature", "salinity", "oxygen"}
	if len(merged.Parameters) != len(wantParams) {
		t.Fatalf("expected %d parameters, got %d: %v", len(wantParams), len(merged.Parameters), merged.Parameters)
	}
	for i, p := range wantParams {
		if merged.Parameters[i] != p {
			t.Errorf("parameter[%d] = %q, want %q (first-seen order)", i, merged.Parameters[i], p)
		}
	}
	if len(merged.FloatIDs) != 2 {
		t.Errorf("expected deduplicated float IDs, got %v", merged.FloatIDs)
	}
	if len(merged.Comparisons) != 1 {
		t.Errorf("expected 1 comparison, got %d", len(merged.Comparisons))
	}
}

func TestExtractedEntitiesIsEmpty(t *testing.T) {
	var e ExtractedEntities
	if !e.IsEmpty() {
		t.Error("zero entities should be empty")
	}

	e.Regions = []string{"bay of bengal"}
	if e.IsEmpty() {
		t.Error("entities with a region should not be empty")
	}
}

func TestRetrievedDataIsEmpty(t *testing.T) {
	var r RetrievedData
	if !r.IsEmpty() {
		t.Error("zero retrieval should be empty")
	}

	r.VectorHits = []VectorHit{{ID: "a"}}
	if r.IsEmpty() {
		t.Error("retrieval with hits should not be empty")
	}
}

func TestNewLineStringCollection(t *testing.T) {
	coords := [][2]float64{
		{15.5, 68.2}, // lat, lon
		{15.7, 68.4},
	}

	fc := NewLineStringCollection(coords, map[string]any{"name": "Float Trajectory"})

	if fc.Type != "FeatureCollection" {
		t.Errorf("expected FeatureCollection, got %s", fc.Type)
	}
	if len(fc.Features) != 1 {
		t.Fatalf("expected 1 feature, got %d", len(fc.Features))
	}
	geom := fc.Features[0].Geometry
	if geom.Type != "LineString" {
		t.Errorf("expected LineString, got %s", geom.Type)
	}
	// GeoJSON stores [lon, lat]: the pair order must be swapped.
	if geom.Coordinates[0][0] != 68.2 || geom.Coordinates[0][1] != 15.5 {
		t.Errorf("expected [lon, lat] order, got %v", geom.Coordinates[0])
	}
}

func TestResultJSONShape(t *testing.T) {
	r := Result{
		Success: true,
		Query:   "How many profiles in 2023?",
		Classification: Classification{
			Type:       QueryTypeSQL,
			Confidence: 1.0,
		},
		Answer: "Found 12,847 profiles in 2023.",
	}

	raw, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["success"] != true {
		t.Error("expected success field")
	}
	cls, ok := decoded["classification"].(map[string]any)
	if !ok {
		t.Fatal("expected classification object")
	}
	if cls["query_type"] != string(QueryTypeSQL) {
		t.Errorf("expected query_type %q, got %v", QueryTypeSQL, cls["query_type"])
	}
}
