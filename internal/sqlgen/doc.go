// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

// Package sqlgen turns a natural-language query into one safe SELECT
// statement against the ARGO schema.
//
// Five deterministic templates handle the query shapes the language model
// repeatedly got wrong (operating duration, per-year counts, nearest
// floats, year comparisons, coordinate rectangles); everything else goes
// through the model with the schema prompt, then through post-processing
// that repairs the model's recurring mistakes (markdown fences, aggregates
// over array columns, wrong table for location queries). Statements that
// fail validation are replaced with a harmless COUNT fallback rather than
// surfacing an error, so the pipeline always has something to execute.
package sqlgen
