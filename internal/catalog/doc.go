// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

// Package catalog holds the static schema and geographic reference data the
// pipeline consults: ocean region rectangles with their query keywords, the
// parameter vocabulary mapping user language to measurement columns, the
// data-coverage envelope, and the schema description injected into LLM
// prompts.
//
// Everything in this package is immutable after init and safe for concurrent
// use. Callers must not modify returned slices.
package catalog
