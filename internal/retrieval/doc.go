// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

// Package retrieval fetches the data that grounds an answer.
//
// # Overview
//
// The Coordinator runs one of three routes chosen by the classifier:
//
//   - SQL: synthesize a statement, bound it, execute it against the
//     relational store, and derive the unbounded total through a count
//     companion. Any execution failure falls back to semantic search.
//   - Vector: semantic search over profile summaries with a geographic
//     post-filter (hits outside the rectangle of the region the query
//     names are dropped; an emptied result widens to the region's broader
//     rectangle with a note). Extracted parameters and regions trigger
//     small supplemental searches; everything merges, dedupes by hit ID,
//     and caps at the result budget.
//   - Hybrid: both routes run concurrently on half the budget each. One
//     side failing serves the other; both failing is the only error the
//     Coordinator returns.
//
// Every retrieval also carries a store statistics snapshot so downstream
// formatting can ground "no data" answers in what actually exists.
package retrieval
