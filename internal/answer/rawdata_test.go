// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package answer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/tomtom215/floatquery/internal/models"
)

func TestRawDataAnswer_CountOnly(t *testing.T) {
	data := models.RetrievedData{
		SQLRows:    []map[string]any{{"count": int64(122215)}},
		TotalCount: 1,
	}
	got := rawDataAnswer("how many profiles total", data)
	want := "**Database Results** (1 record found):\n\n**Total Count**: 122,215\n"
	if got != want {
		t.Errorf("rawDataAnswer() = %q, want %q", got, want)
	}
}

func TestRawDataAnswer_YearCountTable(t *testing.T) {
	data := models.RetrievedData{
		SQLRows: []map[string]any{
			{"year": int64(2022), "count": int64(4500)},
			{"year": int64(2023), "count": int64(5000)},
		},
		TotalCount: 9500,
	}
	got := rawDataAnswer("how many profiles per year", data)
	want := "**Database Results** (9,500 records found):\n\n" +
		"**Profile Counts by Year:**\n\n" +
		"**2022**: 4,500 profiles\n" +
		"**2023**: 5,000 profiles\n" +
		"\n**Total**: 9,500 profiles\n"
	if got != want {
		t.Errorf("rawDataAnswer() = %q, want %q", got, want)
	}
}

func TestRawDataAnswer_AggregateTemperature(t *testing.T) {
	data := models.RetrievedData{
		SQLRows:    []map[string]any{{"min": 2.5, "max": 31.2, "avg": 15.75}},
		SQLText:    "SELECT MIN(temperature[1]) AS min, MAX(temperature[1]) AS max, AVG(temperature[1]) AS avg FROM argo_profiles",
		TotalCount: 1,
	}
	got := rawDataAnswer("average temperature overall", data)
	want := "**Database Results** (1 records found):\n\n" +
		"**Min Temperature**: 2.50°C\n" +
		"**Max Temperature**: 31.20°C\n" +
		"**Avg Temperature**: 15.75°C\n"
	if got != want {
		t.Errorf("rawDataAnswer() = %q, want %q", got, want)
	}
}

func TestRawDataAnswer_AggregateUnits(t *testing.T) {
	tests := []struct {
		name    string
		sqlText string
		value   float64
		want    string
	}{
		{"salinity", "SELECT MIN(salinity[1]) AS min FROM argo_profiles", 34.5, "**Min Salinity**: 34.50 PSU\n"},
		{"pressure", "SELECT MIN(pressure[1]) AS min FROM argo_profiles", 1500.0, "**Min Depth**: 1500.0m\n"},
		{"unitless", "SELECT MIN(cycle_number) AS min FROM argo_profiles", 42.5, "**Min**: 42.5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := models.RetrievedData{
				SQLRows:    []map[string]any{{"min": tt.value}},
				SQLText:    tt.sqlText,
				TotalCount: 1,
			}
			got := rawDataAnswer("lowest value measured", data)
			if !strings.Contains(got, tt.want) {
				t.Errorf("rawDataAnswer() = %q, want line %q", got, tt.want)
			}
		})
	}
}

func TestRawDataAnswer_LatitudeBands(t *testing.T) {
	data := models.RetrievedData{
		SQLRows: []map[string]any{
			{"latitude": -5.25, "surface_temp": 28.5, "deep_temp": 4.25},
		},
		TotalCount: 1,
	}
	got := rawDataAnswer("temperature variation by latitude", data)
	want := "**Database Results** (1 records found):\n\n" +
		"**5.250°S**:\n" +
		"  - Surface Temperature: 28.50°C\n" +
		"  - Deep Temperature: 4.25°C\n\n"
	if got != want {
		t.Errorf("rawDataAnswer() = %q, want %q", got, want)
	}
}

func TestRawDataAnswer_FloatGroups(t *testing.T) {
	data := models.RetrievedData{
		SQLRows: []map[string]any{
			{"float_id": "2902746", "profile_id": "p1", "latitude": 15.123, "longitude": -60.5, "profile_date": "2023-05-10", "max_pressure": 1850.7},
			{"float_id": "2902746", "profile_id": "p2", "latitude": 15.2, "longitude": -60.25, "profile_date": "2023-05-20"},
			{"float_id": "2902747", "first_profile_date": "2023-03-10", "last_profile_date": "2024-01-05", "total_profiles": int64(37), "operating_duration": int64(301)},
		},
		TotalCount: 3,
	}
	got := rawDataAnswer("show float positions", data)
	want := "**Database Results** (3 records found):\n\n" +
		"**Float 2902746** (2 records):\n" +
		"  1. p1: 15.123°N, 60.500°W (2023-05-10) - 1850.7m depth\n" +
		"  2. p2: 15.200°N, 60.250°W (2023-05-20)\n" +
		"\n" +
		"**Float 2902747** (1 records):\n" +
		"  1. 2902747: 2023-03-10 to 2024-01-05 (37 profiles, 301 days)\n" +
		"\n"
	if got != want {
		t.Errorf("rawDataAnswer() = %q, want %q", got, want)
	}
}

func TestRawDataAnswer_RecordCapPerFloat(t *testing.T) {
	rows := make([]map[string]any, 0, 7)
	for i := 1; i <= 7; i++ {
		rows = append(rows, map[string]any{
			"float_id":     "F1",
			"profile_id":   fmt.Sprintf("p%d", i),
			"latitude":     10.0,
			"longitude":    80.0,
			"profile_date": "2023-01-01",
		})
	}
	data := models.RetrievedData{SQLRows: rows, TotalCount: 7}

	got := rawDataAnswer("list profiles", data)
	if !strings.Contains(got, "**Float F1** (7 records):") {
		t.Errorf("rawDataAnswer() = %q, want float header with record count", got)
	}
	if !strings.Contains(got, "  5. p5:") {
		t.Errorf("rawDataAnswer() = %q, want fifth record", got)
	}
	if strings.Contains(got, "p6") {
		t.Errorf("rawDataAnswer() = %q, want at most five records shown", got)
	}
	if !strings.Contains(got, "     ... and 2 more records\n") {
		t.Errorf("rawDataAnswer() = %q, want overflow marker", got)
	}
}

func TestRawDataAnswer_FloatCapAndDisplayNote(t *testing.T) {
	rows := make([]map[string]any, 0, 21)
	for i := 0; i < 21; i++ {
		rows = append(rows, map[string]any{
			"float_id":     fmt.Sprintf("F%02d", i),
			"profile_id":   fmt.Sprintf("p%d", i),
			"latitude":     10.0,
			"longitude":    80.0,
			"profile_date": "2023-01-01",
		})
	}
	data := models.RetrievedData{SQLRows: rows, TotalCount: 50}

	got := rawDataAnswer("list all floats", data)
	if !strings.Contains(got, "**Database Results** (50 records found):\n\n**Displaying a few of them:**\n\n") {
		t.Errorf("rawDataAnswer() = %q, want truncation banner", got)
	}
	if !strings.Contains(got, "**Float F19**") {
		t.Errorf("rawDataAnswer() = %q, want twentieth float", got)
	}
	if strings.Contains(got, "**Float F20**") {
		t.Errorf("rawDataAnswer() = %q, want at most twenty floats", got)
	}
	if !strings.Contains(got, "... and 1 more floats\n") {
		t.Errorf("rawDataAnswer() = %q, want float overflow marker", got)
	}
}

func TestRawDataAnswer_VectorHitsFlattened(t *testing.T) {
	data := models.RetrievedData{
		VectorHits: []models.VectorHit{
			{ID: "v1", Document: "Float 2902746 in the Bay of Bengal", Metadata: map[string]string{
				"float_id":   "2902746",
				"latitude":   "12.5",
				"longitude":  "88.25",
				"date":       "2023-06-01",
				"profile_id": "p-9",
			}},
		},
		TotalCount: 1,
	}
	got := rawDataAnswer("show matching summaries", data)
	want := "**Database Results** (1 records found):\n\n" +
		"**Float 2902746** (1 records):\n" +
		"  1. p-9: 12.500°N, 88.250°E (2023-06-01)\n" +
		"\n"
	if got != want {
		t.Errorf("rawDataAnswer() = %q, want %q", got, want)
	}
}

func TestRawDataAnswer_NearestFloats(t *testing.T) {
	data := models.RetrievedData{
		SQLRows: []map[string]any{
			{"float_id": "B", "distance_km": 45.6, "latitude": 10.0, "longitude": 85.0, "profile_date": "2023-01-02", "status": "active"},
			{"float_id": "A", "distance_km": 12.3, "latitude": 9.5, "longitude": 84.5, "profile_date": "2023-02-03", "status": "active"},
			{"float_id": "B", "distance_km": 50.0, "latitude": 10.1, "longitude": 85.1, "profile_date": "2023-01-09", "status": "active"},
		},
		Method:     models.MethodNearestFloats,
		TotalCount: 3,
	}
	got := rawDataAnswer("nearest floats to 9.8, 84.9", data)
	want := "Found 2 nearest ARGO floats:\n\n" +
		"**Float A** (12.3km away):\n" +
		"  - Location: 9.500°N, 84.500°E\n" +
		"  - Date: 2023-02-03\n" +
		"  - Status: active\n\n" +
		"**Float B** (45.6km away):\n" +
		"  - Location: 10.000°N, 85.000°E\n" +
		"  - Date: 2023-01-02\n" +
		"  - Status: active\n\n"
	if got != want {
		t.Errorf("rawDataAnswer() = %q, want %q", got, want)
	}
}

func TestRawDataAnswer_GeographicNotePrepended(t *testing.T) {
	data := models.RetrievedData{
		SQLRows:        []map[string]any{{"count": int64(5)}},
		GeographicNote: "Using broader Indian Ocean region (no specific data found in requested region)",
		TotalCount:     1,
	}
	got := rawDataAnswer("how many nearby", data)
	wantPrefix := "_Using broader Indian Ocean region (no specific data found in requested region)_\n\n**Database Results**"
	if !strings.HasPrefix(got, wantPrefix) {
		t.Errorf("rawDataAnswer() = %q, want prefix %q", got, wantPrefix)
	}
}

func TestRawDataAnswer_NoRows(t *testing.T) {
	got := rawDataAnswer("anything", models.RetrievedData{})
	want := "No data available for your query."
	if got != want {
		t.Errorf("rawDataAnswer() = %q, want %q", got, want)
	}
}

func TestFormatCoordinates(t *testing.T) {
	tests := []struct {
		lat, lon         float64
		wantLat, wantLon string
	}{
		{15.1234, 88.0, "15.123°N", "88.000°E"},
		{-5.0, -120.55, "5.000°S", "120.550°W"},
		{0, 0, "0.000°N", "0.000°E"},
	}
	for _, tt := range tests {
		if got := formatLat(tt.lat); got != tt.wantLat {
			t.Errorf("formatLat(%v) = %q, want %q", tt.lat, got, tt.wantLat)
		}
		if got := formatLon(tt.lon); got != tt.wantLon {
			t.Errorf("formatLon(%v) = %q, want %q", tt.lon, got, tt.wantLon)
		}
	}
}

func TestDurationText(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{nil, "Unknown"},
		{int64(45), "45 days"},
		{int64(365), "1 years, 0 days"},
		{int64(800), "2 years, 70 days"},
		{"n/a", "n/a"},
	}
	for _, tt := range tests {
		if got := durationText(tt.value); got != tt.want {
			t.Errorf("durationText(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestCommaValue(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{int64(1234567), "1,234,567"},
		{int(999), "999"},
		{1234.5, "1,234.5"},
		{"abc", "abc"},
	}
	for _, tt := range tests {
		if got := commaValue(tt.value); got != tt.want {
			t.Errorf("commaValue(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestRowsFromHits(t *testing.T) {
	hits := []models.VectorHit{
		{ID: "a", Metadata: map[string]string{"float_id": "F1", "latitude": "12.5", "longitude": "88.0", "date": "2023-06-01"}},
		{ID: "b", Metadata: map[string]string{"latitude": "abc"}},
		{ID: "c"},
	}
	rows := rowsFromHits(hits)
	if len(rows) != 3 {
		t.Fatalf("rowsFromHits() returned %d rows, want 3", len(rows))
	}

	if got := rows[0]["float_id"]; got != "F1" {
		t.Errorf("rows[0] float_id = %v, want F1", got)
	}
	if got := rows[0]["latitude"]; got != 12.5 {
		t.Errorf("rows[0] latitude = %v, want 12.5", got)
	}
	if hasKey(rows[1], "latitude") {
		t.Error("rows[1] has latitude, want dropped unparseable coordinate")
	}
	if got := rows[2]["float_id"]; got != "Unknown" {
		t.Errorf("rows[2] float_id = %v, want Unknown", got)
	}
}
