// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

// Package classify routes natural-language queries to a retrieval
// strategy: SQL for precise lookups, vector search for descriptive
// questions, hybrid for comparisons that need both. A cheap keyword pass
// runs first and a model opinion refines it; coordinate queries skip the
// model entirely because they are always SQL.
package classify
