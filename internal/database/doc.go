// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

// Package database provides the DuckDB-backed relational store for ARGO
// float and profile data.
//
// # Overview
//
// This package is the data layer between the query pipeline and DuckDB. It
// owns the schema, executes the pipeline's validated SELECT statements, and
// serves the handful of fixed-shape lookups the answer formatter needs
// (float date ranges, similar float IDs, per-year aggregates, store stats).
//
// # Architecture
//
// The package is organized by concern:
//
//   - database.go: lifecycle (open, pool, prepared-statement cache, close)
//   - database_schema.go: table and index DDL
//   - database_connection.go: pool settings and connection error detection
//   - database_utils.go: context defaults, checkpointing
//   - queries.go: pipeline-facing query operations
//   - seed.go: fixture inserts and the optional demo dataset
//
// # Database Technology
//
// The store is DuckDB (not SQLite), chosen for analytical workloads:
//   - OLAP-optimized column store
//   - Native array columns (DOUBLE[]) for per-level measurements
//   - Advanced SQL (EXTRACT, window functions, list indexing)
//   - CGO-based driver (github.com/duckdb/duckdb-go/v2)
//
// No DuckDB extensions are loaded. Distance math uses the core
// trigonometric functions (Haversine via acos/cos/sin), so autoinstall and
// autoload are disabled in the DSN.
//
// # Schema
//
// Two tables, names fixed by the prompt contract in internal/catalog:
//
//   - argo_floats: one row per deployed float (WMO ID, deployment
//     position, institution, status)
//   - argo_profiles: one row per measurement cycle, with parallel DOUBLE[]
//     columns for pressure, depth, temperature, salinity, dissolved
//     oxygen, pH, nitrate, and chlorophyll. Array index 1 is the surface
//     sample.
//
// # Query Execution
//
// ExecuteRaw is the only entry point for dynamically generated SQL. It
// re-validates every statement with sqlgen.Validate before execution, so a
// statement that bypassed the synthesizer's own validation still cannot
// mutate the store. Rows are scanned by column name into []map[string]any
// because generated projections are not known at compile time.
//
// Fixed-shape lookups (FloatDateRange, SimilarFloatIDs, YearCounts,
// FloatTrajectory) run through a prepared-statement cache keyed by SQL
// text with double-checked locking.
//
// # Usage
//
//	db, err := database.New(&cfg.Database)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	rows, err := db.ExecuteRaw(ctx, generated.Query)
//	if err != nil {
//	    // fall back to vector retrieval
//	}
//
// # Concurrency
//
// All exported methods are safe for concurrent use. The driver pools
// connections; the statement cache is guarded by a RWMutex; every
// operation gets a 30-second default timeout when the caller's context
// carries no deadline.
//
// # Error Handling
//
//   - Errors are wrapped with fmt.Errorf("%w")
//   - Statements rejected by validation wrap sqlgen.ErrUnsafeSQL
//   - Close and shutdown checkpoint failures are logged, not returned
//
// # See Also
//
//   - internal/sqlgen: statement generation and validation
//   - internal/catalog: the schema text the LLM prompt embeds
package database
