// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package services

import (
	"context"
	"time"
)

// GCRunner matches *history.Badger's StartGC method, which blocks until
// the context is canceled.
type GCRunner interface {
	StartGC(ctx context.Context, interval time.Duration)
}

// HistoryGCService runs the history journal's value log garbage collection
// under the data layer supervisor. Badger reclaims value log space only
// when GC is driven externally, so this keeps the journal directory from
// growing without bound.
type HistoryGCService struct {
	journal  GCRunner
	interval time.Duration
	name     string
}

// NewHistoryGCService creates a journal GC service. Interval defaults to
// ten minutes when zero or negative.
func NewHistoryGCService(journal GCRunner, interval time.Duration) *HistoryGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &HistoryGCService{
		journal:  journal,
		interval: interval,
		name:     "history-gc",
	}
}

// Serve implements suture.Service. StartGC blocks until the context is
// canceled; the context error tells the supervisor this was a clean stop.
func (h *HistoryGCService) Serve(ctx context.Context) error {
	h.journal.StartGC(ctx, h.interval)
	return ctx.Err()
}

// String implements fmt.Stringer for supervisor logging.
func (h *HistoryGCService) String() string {
	return h.name
}
