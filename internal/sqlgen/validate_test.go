// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package sqlgen

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		stmt    string
		wantErr bool
	}{
		{
			name: "plain select",
			stmt: "SELECT * FROM argo_profiles LIMIT 10",
		},
		{
			name: "count select",
			stmt: "SELECT COUNT(*) FROM argo_floats",
		},
		{
			name: "indexed array aggregate",
			stmt: "SELECT AVG(temperature[1]) FROM argo_profiles",
		},
		{
			name: "column name containing keyword",
			stmt: "SELECT created_at FROM argo_floats",
		},
		{
			name:    "not a select",
			stmt:    "EXPLAIN SELECT * FROM argo_profiles",
			wantErr: true,
		},
		{
			name:    "missing from",
			stmt:    "SELECT 1",
			wantErr: true,
		},
		{
			name:    "unknown table",
			stmt:    "SELECT * FROM users",
			wantErr: true,
		},
		{
			name:    "drop statement",
			stmt:    "SELECT * FROM argo_profiles; DROP TABLE argo_profiles",
			wantErr: true,
		},
		{
			name:    "embedded delete",
			stmt:    "SELECT * FROM argo_profiles WHERE 1=1; DELETE FROM argo_floats",
			wantErr: true,
		},
		{
			name:    "bare array aggregate",
			stmt:    "SELECT AVG(temperature) FROM argo_profiles",
			wantErr: true,
		},
		{
			name:    "aliased bare array aggregate",
			stmt:    "SELECT SUM(p.salinity) FROM argo_profiles p",
			wantErr: true,
		},
		{
			name:    "empty",
			stmt:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.stmt)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate(%q) error = %v, wantErr %v", tt.stmt, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUnsafeSQL) {
				t.Errorf("error %v does not wrap ErrUnsafeSQL", err)
			}
		})
	}
}

func TestEnsureLimit(t *testing.T) {
	tests := []struct {
		name   string
		stmt   string
		method string
		want   string
	}{
		{
			name:   "open select gets default limit",
			stmt:   "SELECT * FROM argo_profiles",
			method: "intelligent_llm",
			want:   "SELECT * FROM argo_profiles LIMIT 25",
		},
		{
			name:   "count exempt",
			stmt:   "SELECT COUNT(*) FROM argo_profiles",
			method: "intelligent_llm",
			want:   "SELECT COUNT(*) FROM argo_profiles",
		},
		{
			name:   "existing limit kept",
			stmt:   "SELECT * FROM argo_profiles LIMIT 5",
			method: "intelligent_llm",
			want:   "SELECT * FROM argo_profiles LIMIT 5",
		},
		{
			name:   "geographic template exempt",
			stmt:   "SELECT * FROM argo_profiles WHERE latitude BETWEEN 19 AND 21",
			method: "geographic_direct",
			want:   "SELECT * FROM argo_profiles WHERE latitude BETWEEN 19 AND 21",
		},
		{
			name:   "nearest template exempt",
			stmt:   "SELECT * FROM argo_profiles",
			method: "nearest_floats_direct",
			want:   "SELECT * FROM argo_profiles",
		},
		{
			name:   "year comparison exempt",
			stmt:   "SELECT * FROM argo_profiles",
			method: "year_comparison_direct",
			want:   "SELECT * FROM argo_profiles",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EnsureLimit(tt.stmt, tt.method); got != tt.want {
				t.Errorf("EnsureLimit(%q, %q) = %q, want %q", tt.stmt, tt.method, got, tt.want)
			}
		})
	}
}

func TestCountCompanion(t *testing.T) {
	tests := []struct {
		name   string
		stmt   string
		want   string
		wantOK bool
	}{
		{
			name:   "plain select",
			stmt:   "SELECT profile_id, float_id FROM argo_profiles WHERE latitude > 0 ORDER BY profile_date DESC LIMIT 25",
			want:   "SELECT COUNT(*) as count FROM argo_profiles WHERE latitude > 0",
			wantOK: true,
		},
		{
			name:   "select star",
			stmt:   "SELECT * FROM argo_profiles LIMIT 100",
			want:   "SELECT COUNT(*) as count FROM argo_profiles",
			wantOK: true,
		},
		{
			name:   "group by with where",
			stmt:   "SELECT EXTRACT(YEAR FROM profile_date) as year, COUNT(*) as count FROM argo_profiles WHERE profile_date IS NOT NULL GROUP BY EXTRACT(YEAR FROM profile_date) ORDER BY year",
			want:   "SELECT COUNT(*) as count FROM argo_profiles WHERE profile_date IS NOT NULL",
			wantOK: true,
		},
		{
			name:   "no from clause",
			stmt:   "SELECT 1",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CountCompanion(tt.stmt)
			if ok != tt.wantOK {
				t.Fatalf("CountCompanion(%q) ok = %v, want %v", tt.stmt, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("CountCompanion(%q) = %q, want %q", tt.stmt, got, tt.want)
			}
		})
	}
}
