// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

// Package history journals recently resolved queries.
//
// # Overview
//
// Every pipeline invocation appends one Entry recording the query text, the
// route taken, the retrieval counts, and the elapsed time. The journal backs
// GET /api/v1/history and nothing else: it is an operator convenience, not a
// system of record, so entries expire after a configurable lifetime
// (default seven days) and a failed append never fails the query.
//
// # Storage
//
// Entries live in BadgerDB under keys of the form
//
//	q:<zero-padded unix nanoseconds>:<entry id>
//
// The timestamp padding makes key order chronological, so Recent is a single
// reverse prefix scan with no index. Expiry rides on Badger's native TTL;
// StartGC reclaims value log space in the background.
//
// # Degraded Mode
//
// With history disabled, callers construct Disabled instead: appends are
// dropped and the history endpoint returns an empty list.
package history
