// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

/*
Package models defines data structures for the FloatQuery application.

This package contains all data models used throughout the application: the
pipeline's closed set of payload shapes, API request/response structures, and
GeoJSON output types. It serves as the single source of truth for data
structure definitions; no package passes free-form string-keyed maps across
API boundaries (the SQL row maps inside RetrievedData are the one deliberate
exception, since rows are inherently column-name keyed).

Key Components:

  - Classification: routing decision {sql_retrieval, vector_retrieval, hybrid}
    with confidence, reasoning, and extracted entities
  - ExtractedEntities: parameters, regions, dates, float/profile identifiers,
    numeric comparators recognized in the query text
  - GeneratedSQL: synthesizer output with generation method tag
  - RetrievedData: SQL rows + vector hits + SQL text + total count
  - Result: the single output shape of every pipeline invocation
  - Visualization: coordinates, GeoJSON, time series, plot snippet
  - APIResponse / APIError / Metadata: standardized HTTP envelope
  - HealthStatus, DatabaseStats, HistoryEntry: operational surfaces

Identifier semantics: float and profile identifiers are opaque strings
everywhere. They are matched, prefixed, and compared but never parsed as
numbers.

Usage Example:

	result := pipe.Process(ctx, "How many profiles in 2023?", 25)
	if result.Success {
	    fmt.Println(result.Answer)
	}
*/
package models
