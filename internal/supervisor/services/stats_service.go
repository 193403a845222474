// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package services

import (
	"context"
	"time"

	"github.com/tomtom215/floatquery/internal/logging"
	"github.com/tomtom215/floatquery/internal/models"
)

// StatsSource yields a snapshot of the profile store. *database.DB
// satisfies it.
type StatsSource interface {
	Stats(ctx context.Context) (*models.DatabaseStats, error)
}

// StatsBroadcaster receives store snapshots for fan-out to dashboard
// clients. *websocket.Hub satisfies it.
type StatsBroadcaster interface {
	BroadcastStatsUpdate(stats *models.DatabaseStats)
}

// StatsRefresherService periodically reads dataset statistics and pushes
// them to connected dashboards. A failed read is logged and retried on the
// next tick; the service itself only stops with the context.
type StatsRefresherService struct {
	source   StatsSource
	hub      StatsBroadcaster
	interval time.Duration
	name     string
}

// NewStatsRefresherService creates a stats refresher. Interval defaults to
// one minute when zero or negative.
func NewStatsRefresherService(source StatsSource, hub StatsBroadcaster, interval time.Duration) *StatsRefresherService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &StatsRefresherService{
		source:   source,
		hub:      hub,
		interval: interval,
		name:     "stats-refresher",
	}
}

// Serve implements suture.Service. One refresh runs immediately so new
// dashboards see fresh numbers without waiting a full interval.
func (s *StatsRefresherService) Serve(ctx context.Context) error {
	s.refresh(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *StatsRefresherService) refresh(ctx context.Context) {
	stats, err := s.source.Stats(ctx)
	if err != nil {
		logging.Warn().
			Str("component", s.name).
			Err(err).
			Msg("stats refresh failed")
		return
	}
	s.hub.BroadcastStatsUpdate(stats)
}

// String implements fmt.Stringer for supervisor logging.
func (s *StatsRefresherService) String() string {
	return s.name
}
