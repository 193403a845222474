// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

/*
queries.go - Pipeline Query Operations

This file holds every query the resolution pipeline and the answer
formatter run against the store.

ExecuteRaw is the single entry point for LLM-generated SQL. Statements are
re-validated before execution, so even a statement that slipped past the
synthesizer cannot mutate data. All other operations are fixed-shape and
run through the prepared-statement cache.

Dates cross the boundary as ISO strings (CAST(... AS VARCHAR)) because the
answer formatter renders them verbatim and never does date arithmetic.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/floatquery/internal/catalog"
	"github.com/tomtom215/floatquery/internal/metrics"
	"github.com/tomtom215/floatquery/internal/models"
	"github.com/tomtom215/floatquery/internal/sqlgen"
)

// ExecuteRaw runs a generated SELECT statement and scans every row into a
// column-name → value map. The statement is validated again here; a
// statement that fails validation is refused, never executed.
func (db *DB) ExecuteRaw(ctx context.Context, stmt string) ([]map[string]any, error) {
	if err := sqlgen.Validate(stmt); err != nil {
		return nil, fmt.Errorf("statement refused: %w", err)
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, stmt)
	metrics.RecordDBQuery("SELECT", "generated", time.Since(start), err)
	if err != nil {
		if isConnectionError(err) {
			return nil, fmt.Errorf("store unavailable: %w", err)
		}
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer closeQuietly(rows)

	return scanRows(rows)
}

// CountFor runs a COUNT companion statement and returns the total. The
// same validation gate as ExecuteRaw applies.
func (db *DB) CountFor(ctx context.Context, countStmt string) (int, error) {
	if err := sqlgen.Validate(countStmt); err != nil {
		return 0, fmt.Errorf("statement refused: %w", err)
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var count int
	start := time.Now()
	err := db.conn.QueryRowContext(ctx, countStmt).Scan(&count)
	metrics.RecordDBQuery("COUNT", "generated", time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("count query failed: %w", err)
	}
	return count, nil
}

const floatDateRangeSQL = `SELECT CAST(MIN(profile_date) AS VARCHAR), CAST(MAX(profile_date) AS VARCHAR), COUNT(*) FROM argo_profiles WHERE float_id = ?`

// FloatDateRange returns the first and last profile dates recorded for a
// float and how many profiles it holds. A zero count means the float has
// no profiles at all.
func (db *DB) FloatDateRange(ctx context.Context, floatID string) (earliest, latest string, profiles int, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	stmt, err := db.preparedStmt(ctx, floatDateRangeSQL)
	if err != nil {
		return "", "", 0, err
	}

	var minDate, maxDate sql.NullString
	var count int
	if err := stmt.QueryRowContext(ctx, floatID).Scan(&minDate, &maxDate, &count); err != nil {
		return "", "", 0, fmt.Errorf("date range query failed: %w", err)
	}
	if !minDate.Valid || !maxDate.Valid || count == 0 {
		return "", "", 0, nil
	}
	return minDate.String, maxDate.String, count, nil
}

const similarFloatIDsSQL = `SELECT DISTINCT float_id FROM argo_floats WHERE float_id LIKE ? ORDER BY float_id LIMIT ?`

// SimilarFloatIDs returns up to n float IDs sharing the given prefix, for
// "did you mean" suggestions when a requested float does not exist.
func (db *DB) SimilarFloatIDs(ctx context.Context, prefix string, n int) ([]string, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	stmt, err := db.preparedStmt(ctx, similarFloatIDsSQL)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.QueryContext(ctx, prefix+"%", n)
	if err != nil {
		return nil, fmt.Errorf("similar float query failed: %w", err)
	}
	defer closeQuietly(rows)

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan float id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("similar float iteration failed: %w", err)
	}
	return ids, nil
}

// YearConditions aggregates one year's profiles for comparison answers.
// The averages cover the surface sample only; nil means the year had no
// usable measurements.
type YearConditions struct {
	Year         int
	ProfileCount int
	AvgTemp      *float64
	AvgSalinity  *float64
}

const yearConditionsSQL = `SELECT COUNT(*), AVG(temperature[1]), AVG(salinity[1]) FROM argo_profiles WHERE EXTRACT(YEAR FROM profile_date) = ?`
const yearConditionsEquatorialSQL = yearConditionsSQL + ` AND latitude BETWEEN -5 AND 5`

// YearCounts returns per-year profile counts and surface averages for the
// given years, in input order. When equatorialOnly is set the aggregation
// is restricted to the ±5° latitude band.
func (db *DB) YearCounts(ctx context.Context, years []int, equatorialOnly bool) ([]YearConditions, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	sqlText := yearConditionsSQL
	if equatorialOnly {
		sqlText = yearConditionsEquatorialSQL
	}

	stmt, err := db.preparedStmt(ctx, sqlText)
	if err != nil {
		return nil, err
	}

	out := make([]YearConditions, 0, len(years))
	for _, year := range years {
		yc := YearConditions{Year: year}
		var avgTemp, avgSal sql.NullFloat64
		start := time.Now()
		err := stmt.QueryRowContext(ctx, year).Scan(&yc.ProfileCount, &avgTemp, &avgSal)
		metrics.RecordDBQuery("SELECT", "argo_profiles", time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("year aggregate failed for %d: %w", year, err)
		}
		if avgTemp.Valid {
			yc.AvgTemp = &avgTemp.Float64
		}
		if avgSal.Valid {
			yc.AvgSalinity = &avgSal.Float64
		}
		out = append(out, yc)
	}
	return out, nil
}

// Stats returns a snapshot of the store: float and profile totals, the
// covered date range, and the catalog regions inside the coverage
// envelope. Used by the /stats endpoint and by no-data answers.
func (db *DB) Stats(ctx context.Context) (*models.DatabaseStats, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	stats := &models.DatabaseStats{}

	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM argo_floats`).Scan(&stats.TotalFloats); err != nil {
		return nil, fmt.Errorf("failed to count floats: %w", err)
	}
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM argo_profiles`).Scan(&stats.TotalProfiles); err != nil {
		return nil, fmt.Errorf("failed to count profiles: %w", err)
	}

	var earliest, latest sql.NullString
	err := db.conn.QueryRowContext(ctx,
		`SELECT CAST(MIN(profile_date) AS VARCHAR), CAST(MAX(profile_date) AS VARCHAR) FROM argo_profiles`,
	).Scan(&earliest, &latest)
	if err != nil {
		return nil, fmt.Errorf("failed to read date range: %w", err)
	}
	if earliest.Valid {
		stats.EarliestDate = earliest.String
	}
	if latest.Valid {
		stats.LatestDate = latest.String
	}

	cov := catalog.Coverage()
	for _, r := range catalog.Regions() {
		if r.Bounds.Overlaps(cov.Bounds) {
			stats.Regions = append(stats.Regions, r.Name)
		}
	}

	return stats, nil
}

const floatTrajectorySQL = `SELECT profile_id, latitude, longitude, CAST(profile_date AS VARCHAR) FROM argo_profiles WHERE float_id = ? ORDER BY profile_date, profile_id`

// FloatTrajectory returns a float's profile positions in date order for
// trajectory rendering. An unknown float yields an empty slice, not an
// error.
func (db *DB) FloatTrajectory(ctx context.Context, floatID string) ([]models.TimePoint, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	stmt, err := db.preparedStmt(ctx, floatTrajectorySQL)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := stmt.QueryContext(ctx, floatID)
	metrics.RecordDBQuery("SELECT", "argo_profiles", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("trajectory query failed: %w", err)
	}
	defer closeQuietly(rows)

	var points []models.TimePoint
	for rows.Next() {
		p := models.TimePoint{FloatID: floatID}
		if err := rows.Scan(&p.ProfileID, &p.Latitude, &p.Longitude, &p.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan trajectory row: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("trajectory iteration failed: %w", err)
	}
	return points, nil
}

// scanRows reads every row into a column-name → value map. Generated
// projections are unknown at compile time, so scanning goes through
// rows.Columns().
func scanRows(rows *sql.Rows) ([]map[string]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var out []map[string]any
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		row := make(map[string]any, len(cols))
		for i, col := range cols {
			row[col] = normalizeValue(values[i])
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}
	return out, nil
}

// normalizeValue converts driver-specific scan results into values the
// answer formatter and JSON encoder handle directly. DATE and TIMESTAMP
// columns come back from the driver as time.Time; answers and JSON both
// want ISO strings.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case []byte:
		return string(t)
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format("2006-01-02")
		}
		return t.Format("2006-01-02 15:04:05")
	default:
		return v
	}
}
