// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package history

import (
	"context"
	"time"
)

// Entry is one journal record: what was asked, how it was resolved, and how
// long it took. Field names and JSON tags line up with the result metadata
// the API returns for the same query.
type Entry struct {
	ID          string    `json:"id"`
	Query       string    `json:"query"`
	Type        string    `json:"query_type"`
	Method      string    `json:"generation_method"`
	Confidence  float64   `json:"confidence"`
	SQLCount    int       `json:"sql_count"`
	VectorCount int       `json:"vector_count"`
	ElapsedMS   int64     `json:"elapsed_ms"`
	Timestamp   time.Time `json:"timestamp"`
}

// Journal is the recent-query record consumed by the pipeline (writes) and
// the history endpoint (reads).
type Journal interface {
	// Append writes one entry. An empty ID or zero Timestamp is filled in.
	Append(ctx context.Context, e Entry) error

	// Recent returns up to n entries, newest first. A non-positive n takes
	// the default limit.
	Recent(ctx context.Context, n int) ([]Entry, error)

	// Close releases the backing store.
	Close() error
}

// Disabled is the Journal used when history is turned off. Appends are
// dropped and Recent returns nothing; an intentionally absent journal is
// not a failure.
type Disabled struct{}

// Append drops the entry.
func (Disabled) Append(context.Context, Entry) error { return nil }

// Recent always returns no entries.
func (Disabled) Recent(context.Context, int) ([]Entry, error) { return nil, nil }

// Close does nothing.
func (Disabled) Close() error { return nil }
