// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/floatquery/internal/config"
	"github.com/tomtom215/floatquery/internal/models"
)

// testDBSemaphore serializes test database lifecycles. Concurrent DuckDB
// CGO calls from parallel tests can hang under CI resource pressure, so
// only one test holds an open store at a time.
var testDBSemaphore = make(chan struct{}, 1)

// setupTestDB creates an in-memory test database. The semaphore is held
// for the whole test, released via t.Cleanup.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	cfg := &config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "1GB",
		Threads:   2,
	}

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})

	return db
}

func testDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// seedQueryFixture inserts a small, fully known dataset: two Arabian Sea
// floats sharing an ID prefix and one equatorial float, with profiles
// spread across 2023 and 2024.
func seedQueryFixture(t *testing.T, db *DB) {
	t.Helper()
	ctx := context.Background()

	floats := []models.Float{
		{
			FloatID:             "2902745",
			PlatformNumber:      "2902745",
			DeploymentDate:      testDate(2022, 11, 3),
			DeploymentLatitude:  15.0,
			DeploymentLongitude: 64.0,
			FloatType:           "APEX",
			Institution:         "INCOIS",
			Status:              "ACTIVE",
			TotalProfiles:       3,
		},
		{
			FloatID:             "2902746",
			PlatformNumber:      "2902746",
			DeploymentDate:      testDate(2023, 1, 19),
			DeploymentLatitude:  18.5,
			DeploymentLongitude: 66.5,
			FloatType:           "APEX",
			Institution:         "INCOIS",
			Status:              "ACTIVE",
		},
		{
			FloatID:             "5906542",
			PlatformNumber:      "5906542",
			DeploymentDate:      testDate(2023, 5, 30),
			DeploymentLatitude:  -2.0,
			DeploymentLongitude: 75.0,
			FloatType:           "NAVIS_A",
			Institution:         "CSIRO",
			Status:              "ACTIVE",
			TotalProfiles:       2,
		},
	}
	for i := range floats {
		if err := db.InsertFloat(ctx, &floats[i]); err != nil {
			t.Fatalf("InsertFloat(%s) failed: %v", floats[i].FloatID, err)
		}
	}

	profiles := []models.Profile{
		{
			ProfileID: "2902745_001", FloatID: "2902745",
			Latitude: 15.0, Longitude: 64.0,
			ProfileDate: testDate(2023, 3, 10), ProfileTime: "04:30:00",
			Depth: []float64{0, 100, 500}, Pressure: []float64{0, 102, 510},
			Temperature: []float64{28.0, 22.0, 12.0}, Salinity: []float64{36.1, 35.8, 35.0},
			MaxPressure: 510, NLevels: 3, DataMode: "D", PositionQC: 1, ProfileQC: "A",
		},
		{
			ProfileID: "2902745_002", FloatID: "2902745",
			Latitude: 15.2, Longitude: 64.3,
			ProfileDate: testDate(2023, 6, 18),
			Depth:       []float64{0, 100, 500}, Pressure: []float64{0, 102, 510},
			Temperature: []float64{29.0, 23.0, 12.5}, Salinity: []float64{36.0, 35.7, 35.0},
			MaxPressure: 510, NLevels: 3, DataMode: "D", PositionQC: 1, ProfileQC: "A",
		},
		{
			ProfileID: "2902745_003", FloatID: "2902745",
			Latitude: 15.4, Longitude: 64.7,
			ProfileDate: testDate(2024, 1, 5),
			Depth:       []float64{0, 100, 500}, Pressure: []float64{0, 102, 510},
			Temperature: []float64{27.0, 21.5, 12.1}, Salinity: []float64{36.2, 35.9, 35.1},
			MaxPressure: 510, NLevels: 3, DataMode: "R", PositionQC: 1, ProfileQC: "A",
		},
		{
			ProfileID: "5906542_001", FloatID: "5906542",
			Latitude: -2.0, Longitude: 75.0,
			ProfileDate: testDate(2023, 7, 22),
			Depth:       []float64{0, 100}, Pressure: []float64{0, 102},
			Temperature: []float64{29.0, 24.0}, Salinity: []float64{34.9, 34.8},
			MaxPressure: 102, NLevels: 2, DataMode: "D", PositionQC: 1, ProfileQC: "A",
		},
		{
			ProfileID: "5906542_002", FloatID: "5906542",
			Latitude: -1.8, Longitude: 75.4,
			ProfileDate: testDate(2024, 2, 14),
			Depth:       []float64{0, 100}, Pressure: []float64{0, 102},
			Temperature: []float64{29.4, 24.2}, Salinity: []float64{34.9, 34.8},
			MaxPressure: 102, NLevels: 2, DataMode: "R", PositionQC: 1, ProfileQC: "A",
		},
	}
	for i := range profiles {
		if err := db.InsertProfile(ctx, &profiles[i]); err != nil {
			t.Fatalf("InsertProfile(%s) failed: %v", profiles[i].ProfileID, err)
		}
	}
}

func TestNew_InitializesSchema(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for _, table := range []string{"argo_floats", "argo_profiles"} {
		var count int64
		if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
			t.Errorf("Table %s not queryable after New: %v", table, err)
		}
		if count != 0 {
			t.Errorf("Table %s: expected 0 rows in fresh store, got %d", table, count)
		}
	}
}

func TestNew_CreatesParentDirectory(t *testing.T) {
	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	dir := filepath.Join(t.TempDir(), "nested", "data")
	cfg := &config.DatabaseConfig{
		Path:      filepath.Join(dir, "store.duckdb"),
		MaxMemory: "512MB",
		Threads:   1,
	}

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("New with nested path failed: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	}()

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("Parent directory was not created: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("Expected %s to be a directory", dir)
	}
	if db.DatabasePath() != cfg.Path {
		t.Errorf("DatabasePath() = %q, want %q", db.DatabasePath(), cfg.Path)
	}
}

func TestPing(t *testing.T) {
	db := setupTestDB(t)

	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping on live store failed: %v", err)
	}

	// nil context gets a default timeout instead of panicking
	if err := db.Ping(nil); err != nil { //nolint:staticcheck // deliberate nil ctx
		t.Errorf("Ping with nil context failed: %v", err)
	}
}

func TestPreparedStmt_CachesBySQL(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	first, err := db.preparedStmt(ctx, floatDateRangeSQL)
	if err != nil {
		t.Fatalf("preparedStmt failed: %v", err)
	}
	second, err := db.preparedStmt(ctx, floatDateRangeSQL)
	if err != nil {
		t.Fatalf("preparedStmt on cached SQL failed: %v", err)
	}
	if first != second {
		t.Error("Expected the same *sql.Stmt back for identical SQL")
	}

	db.stmtCacheMu.RLock()
	size := len(db.stmtCache)
	db.stmtCacheMu.RUnlock()
	if size != 1 {
		t.Errorf("Statement cache size = %d, want 1", size)
	}
}

func TestCheckpoint(t *testing.T) {
	db := setupTestDB(t)

	if err := db.Checkpoint(context.Background()); err != nil {
		t.Errorf("Checkpoint failed: %v", err)
	}
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"refused", errTest("dial tcp: connection refused"), true},
		{"closed", errTest("sql: database is closed"), true},
		{"broken pipe", errTest("write: broken pipe"), true},
		{"syntax error", errTest(`Parser Error: syntax error at or near "FORM"`), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isConnectionError(tt.err); got != tt.want {
				t.Errorf("isConnectionError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }
