// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

/*
database_schema.go - Database Schema Management

This file manages the DuckDB database schema including table creation
and index management.

Tables:
  - argo_floats: one row per deployed ARGO float (WMO ID, deployment
    position and date, institution, status, profile totals)
  - argo_profiles: one row per measurement cycle with parallel DOUBLE[]
    columns for the eight measured parameters plus QC flags

Schema Strategy:
All columns are defined in the initial CREATE TABLE statements. The table
and column names are part of the LLM prompt contract (internal/catalog
embeds them verbatim), so renames here require a prompt change too.

Index Strategy:
Indexes cover the columns the generated SQL filters on most:
  - float_id lookups (date ranges, trajectories, similar-ID suggestions)
  - profile_date ranges and per-year EXTRACT filters
  - latitude/longitude rectangles from the geographic templates
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core database tables
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	queries := db.getTableCreationQueries()

	for _, query := range queries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}

	return nil
}

// getTableCreationQueries returns the table creation SQL statements
func (db *DB) getTableCreationQueries() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS argo_floats (
			float_id             VARCHAR PRIMARY KEY,
			platform_number      VARCHAR,
			deployment_date      DATE,
			deployment_latitude  DOUBLE,
			deployment_longitude DOUBLE,
			float_type           VARCHAR,
			institution          VARCHAR,
			status               VARCHAR,
			last_profile_date    DATE,
			total_profiles       INTEGER
		)`,

		// Measurement arrays are parallel per level; element 1 is the
		// surface sample (DuckDB lists are 1-indexed).
		`CREATE TABLE IF NOT EXISTS argo_profiles (
			profile_id       VARCHAR PRIMARY KEY,
			float_id         VARCHAR NOT NULL,
			latitude         DOUBLE NOT NULL,
			longitude        DOUBLE NOT NULL,
			profile_date     DATE NOT NULL,
			profile_time     TIME,
			pressure         DOUBLE[],
			depth            DOUBLE[],
			temperature      DOUBLE[],
			salinity         DOUBLE[],
			dissolved_oxygen DOUBLE[],
			ph_in_situ       DOUBLE[],
			nitrate          DOUBLE[],
			chlorophyll_a    DOUBLE[],
			max_pressure     DOUBLE,
			n_levels         INTEGER,
			data_mode        VARCHAR,
			position_qc      INTEGER,
			profile_qc       VARCHAR
		)`,
	}
}

// createIndexes creates all database indexes
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	indexes := db.getIndexQueries()

	for _, query := range indexes {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute index query: %s: %w", query, err)
		}
	}

	return nil
}

// getIndexQueries returns index creation SQL statements
func (db *DB) getIndexQueries() []string {
	return []string{
		// Float lookups: trajectories, date ranges, per-float grouping
		`CREATE INDEX IF NOT EXISTS idx_profiles_float_id ON argo_profiles(float_id);`,
		`CREATE INDEX IF NOT EXISTS idx_profiles_float_date ON argo_profiles(float_id, profile_date);`,

		// Temporal filters: year extraction and recency ordering
		`CREATE INDEX IF NOT EXISTS idx_profiles_date ON argo_profiles(profile_date DESC);`,

		// Geographic rectangle filters from the direct templates and the
		// nearest-float Haversine pre-filter
		`CREATE INDEX IF NOT EXISTS idx_profiles_location ON argo_profiles(latitude, longitude);`,

		// Status filters on float metadata queries
		`CREATE INDEX IF NOT EXISTS idx_floats_status ON argo_floats(status);`,
	}
}
