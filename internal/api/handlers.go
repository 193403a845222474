// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package api

import (
	"context"
	"time"

	"github.com/tomtom215/floatquery/internal/cache"
	"github.com/tomtom215/floatquery/internal/config"
	"github.com/tomtom215/floatquery/internal/history"
	"github.com/tomtom215/floatquery/internal/models"
	ws "github.com/tomtom215/floatquery/internal/websocket"
)

// QueryPipeline is the handler-facing slice of *pipeline.Pipeline.
type QueryPipeline interface {
	Process(ctx context.Context, query string, maxResults int) models.Result
	Health(ctx context.Context) models.HealthStatus
}

// MetaStore is the handler-facing slice of *database.DB: the snapshots and
// per-float lookups the read-only endpoints serve.
type MetaStore interface {
	Ping(ctx context.Context) error
	Stats(ctx context.Context) (*models.DatabaseStats, error)
	FloatTrajectory(ctx context.Context, floatID string) ([]models.TimePoint, error)
}

// Handler holds dependencies shared by all HTTP handlers.
type Handler struct {
	pipeline QueryPipeline
	db       MetaStore
	journal  history.Journal
	wsHub    *ws.Hub
	config   *config.Config

	statsCache    *cache.Cache
	coverageCache *cache.Cache

	startTime time.Time
}

// NewHandler creates the handler set. A nil journal degrades to the
// disabled journal; a nil hub disables the WebSocket endpoint.
func NewHandler(p QueryPipeline, db MetaStore, journal history.Journal, wsHub *ws.Hub, cfg *config.Config) *Handler {
	if journal == nil {
		journal = history.Disabled{}
	}
	statsTTL := 30 * time.Second
	coverageTTL := 5 * time.Minute
	if cfg != nil {
		if cfg.Cache.StatsTTL > 0 {
			statsTTL = cfg.Cache.StatsTTL
		}
		if cfg.Cache.CoverageTTL > 0 {
			coverageTTL = cfg.Cache.CoverageTTL
		}
	}
	return &Handler{
		pipeline:      p,
		db:            db,
		journal:       journal,
		wsHub:         wsHub,
		config:        cfg,
		statsCache:    cache.New("stats", statsTTL),
		coverageCache: cache.New("coverage", coverageTTL),
		startTime:     time.Now(),
	}
}
