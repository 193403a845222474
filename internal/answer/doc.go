// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

// Package answer turns retrieved data into the prose a user reads.
//
// # Formatter ladder
//
// Shape walks a ladder of deterministic formatters before it considers
// model-generated prose, because every deterministic rung is immune to
// hallucination:
//
//  1. Empty retrievals get a no-results answer. When the query names a
//     float, the answer is grounded in that float's actual date range,
//     or states plainly that the float does not exist.
//  2. Year-comparison retrievals render a per-year breakdown with fresh
//     population counts and a two-year summary of the deltas.
//  3. A single all-NULL row for a float query means the aggregate found
//     nothing; the answer suggests similar float IDs by prefix.
//  4. Queries using concrete data-request words (show, find, list,
//     trajectory, ...) get the raw-data formatter: counts, per-year
//     tables, aggregates with units, latitude bands, nearest floats
//     with distances, or records grouped by float.
//  5. Everything else goes to the LLM gateway under a strict
//     anti-hallucination system prompt. Generic or trivially short
//     replies fall back to the raw-data formatter.
//
// Coordinates always render as absolute value plus hemisphere
// (15.000°N, 64.250°E), temperatures and salinities with two decimals,
// and counts with thousands separators.
package answer
