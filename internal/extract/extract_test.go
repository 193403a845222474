// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package extract

import (
	"reflect"
	"testing"

	"github.com/tomtom215/floatquery/internal/models"
)

func TestEntitiesIdentifiers(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantFloats   []string
		wantProfiles []string
	}{
		{
			name:       "explicit float reference",
			query:      "show trajectory for float 1902680",
			wantFloats: []string{"1902680"},
		},
		{
			name:         "explicit profile reference",
			query:        "what is in profile 1902681",
			wantProfiles: []string{"1902681"},
		},
		{
			name:         "profile number phrasing",
			query:        "describe profile number 1902681",
			wantProfiles: []string{"1902681"},
		},
		{
			name:       "bare id defaults to float",
			query:      "where has 1902680 been",
			wantFloats: []string{"1902680"},
		},
		{
			name:         "bare id with profile context",
			query:        "show the profile data for 1902680",
			wantProfiles: []string{"1902680"},
		},
		{
			name:       "explicit reference suppresses bare ids",
			query:      "float 1902680 near 1234567",
			wantFloats: []string{"1902680"},
		},
		{
			name:  "six digits is not an id",
			query: "show float 190268",
		},
		{
			name:       "duplicate ids collapse",
			query:      "float 1902680 and float 1902680",
			wantFloats: []string{"1902680"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Entities(tt.query)
			if !reflect.DeepEqual(got.FloatIDs, tt.wantFloats) {
				t.Errorf("FloatIDs = %v, want %v", got.FloatIDs, tt.wantFloats)
			}
			if !reflect.DeepEqual(got.ProfileIDs, tt.wantProfiles) {
				t.Errorf("ProfileIDs = %v, want %v", got.ProfileIDs, tt.wantProfiles)
			}
		})
	}
}

func TestEntitiesParametersAndRegions(t *testing.T) {
	got := Entities("Show me temperature profiles in the Bay of Bengal in March 2023")

	if !reflect.DeepEqual(got.Parameters, []string{"temperature"}) {
		t.Errorf("Parameters = %v", got.Parameters)
	}
	if len(got.Regions) == 0 || got.Regions[0] != "bay of bengal" {
		t.Errorf("Regions = %v, want bay of bengal first", got.Regions)
	}
	if !contains(got.DateRanges, "march 2023") {
		t.Errorf("DateRanges = %v, want march 2023", got.DateRanges)
	}
	if !contains(got.DateRanges, "2023") {
		t.Errorf("DateRanges = %v, want bare year 2023", got.DateRanges)
	}
}

func TestEntitiesCoordinateMentions(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"find profiles near 10°N, 65°E", "10 n 65 e"},
		{"profiles around 15.5°S, 72°E please", "15.5 s 72 e"},
		{"floats at 10 degrees north, 65 degrees east", "10 north 65 east"},
		{"latitude 12.5 measurements", "12.5"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := Entities(tt.query)
			if !contains(got.Regions, tt.want) {
				t.Errorf("Regions = %v, want to contain %q", got.Regions, tt.want)
			}
		})
	}
}

func TestEntitiesEquatorMention(t *testing.T) {
	got := Entities("salinity near the equator")
	if !contains(got.Regions, "equatorial") {
		t.Errorf("Regions = %v, want catalog region equatorial", got.Regions)
	}
	if !contains(got.Regions, "near the equator") {
		t.Errorf("Regions = %v, want phrase match", got.Regions)
	}
}

func TestEntitiesDates(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"profiles since 2020", []string{"2020"}},
		{"data from the last 30 days", []string{"30 days"}},
		{"collected on 2023-03-15", []string{"2023 03 15", "2023"}},
		{
			"between March 2023 and June 2024",
			[]string{"march 2023 june 2024", "2023", "2024"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := Entities(tt.query)
			for _, w := range tt.want {
				if !contains(got.DateRanges, w) {
					t.Errorf("DateRanges = %v, want to contain %q", got.DateRanges, w)
				}
			}
		})
	}
}

func TestEntitiesComparators(t *testing.T) {
	tests := []struct {
		query string
		want  []models.Comparator
	}{
		{"salinity > 35", []models.Comparator{{Operator: ">", Value: 35}}},
		{"temperature >= 25.5 in summer", []models.Comparator{{Operator: ">=", Value: 25.5}}},
		{
			"pressure > 1000 and temperature < 5",
			[]models.Comparator{{Operator: ">", Value: 1000}, {Operator: "<", Value: 5}},
		},
		{"no comparison here", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := Entities(tt.query)
			if !reflect.DeepEqual(got.Comparisons, tt.want) {
				t.Errorf("Comparisons = %v, want %v", got.Comparisons, tt.want)
			}
		})
	}
}

func TestEntitiesEmptyQuery(t *testing.T) {
	got := Entities("")
	if !got.IsEmpty() {
		t.Errorf("expected empty entities, got %+v", got)
	}
}

func contains(in []string, want string) bool {
	for _, s := range in {
		if s == want {
			return true
		}
	}
	return false
}
