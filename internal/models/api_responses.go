// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package models

import (
	"time"
)

// APIResponse represents a standardized API response wrapper used by all HTTP endpoints.
// It provides consistent structure for both successful and error responses, with metadata
// for observability and caching information.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"answer": "...", "metadata": {...}},
//	  "metadata": {
//	    "timestamp": "2026-02-10T12:00:00Z",
//	    "query_time_ms": 1840,
//	    "cached": false
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "query must be 1 to 2000 characters",
//	    "details": {"field": "query"}
//	  },
//	  "metadata": {"timestamp": "2026-02-10T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability and performance tracking.
//
// Fields:
//   - Timestamp: Server time when response was generated (RFC3339 format)
//   - QueryTimeMS: Processing time in milliseconds (0 if served from cache)
//   - Cached: Whether response was served from cache (omitted if false)
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Common error codes:
//   - VALIDATION_ERROR: Invalid input parameters
//   - PIPELINE_ERROR: Query resolution failure
//   - DATABASE_ERROR: Relational store failure
//   - NOT_FOUND: Resource doesn't exist
//   - RATE_LIMIT_EXCEEDED: Too many requests
//   - INTERNAL_ERROR: Unexpected failure
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// QueryRequest is the body of POST /api/v1/query.
type QueryRequest struct {
	Query      string `json:"query" validate:"required,min=1,max=2000"`
	MaxResults int    `json:"max_results,omitempty" validate:"omitempty,min=1,max=100"`
}

// CoverageResponse describes the data holdings served by GET /api/v1/coverage.
type CoverageResponse struct {
	Description string    `json:"description"`
	Regions     []string  `json:"regions"`
	LatMin      float64   `json:"lat_min"`
	LatMax      float64   `json:"lat_max"`
	LonMin      float64   `json:"lon_min"`
	LonMax      float64   `json:"lon_max"`
	Generated   time.Time `json:"generated"`
}

// HistoryEntry is one journaled pipeline invocation, served by GET /api/v1/history.
type HistoryEntry struct {
	ID          string    `json:"id"`
	Query       string    `json:"query"`
	QueryType   QueryType `json:"query_type"`
	Method      string    `json:"generation_method,omitempty"`
	Confidence  float64   `json:"confidence"`
	SQLCount    int       `json:"sql_count"`
	VectorCount int       `json:"vector_count"`
	Success     bool      `json:"success"`
	ElapsedMS   int64     `json:"elapsed_ms"`
	Timestamp   time.Time `json:"timestamp"`
}
