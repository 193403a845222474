// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package api

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/floatquery/internal/config"
	"github.com/tomtom215/floatquery/internal/history"
	"github.com/tomtom215/floatquery/internal/models"
)

// fakePipeline is a test double for QueryPipeline.
type fakePipeline struct {
	result    models.Result
	health    models.HealthStatus
	gotQuery  string
	gotMax    int
	callCount int
}

func (f *fakePipeline) Process(_ context.Context, query string, maxResults int) models.Result {
	f.callCount++
	f.gotQuery = query
	f.gotMax = maxResults
	return f.result
}

func (f *fakePipeline) Health(context.Context) models.HealthStatus {
	return f.health
}

// fakeMeta is a test double for MetaStore.
type fakeMeta struct {
	pingErr    error
	stats      *models.DatabaseStats
	statsErr   error
	trajectory []models.TimePoint
	trajErr    error
	statsCalls int
}

func (f *fakeMeta) Ping(context.Context) error { return f.pingErr }

func (f *fakeMeta) Stats(context.Context) (*models.DatabaseStats, error) {
	f.statsCalls++
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	return f.stats, nil
}

func (f *fakeMeta) FloatTrajectory(context.Context, string) ([]models.TimePoint, error) {
	if f.trajErr != nil {
		return nil, f.trajErr
	}
	return f.trajectory, nil
}

// fakeHistory records appends and serves canned entries.
type fakeHistory struct {
	history.Disabled
	entries []history.Entry
	err     error
}

func (f *fakeHistory) Recent(_ context.Context, n int) ([]history.Entry, error) {
	if f.err != nil {
		return nil, f.err
	}
	if n < len(f.entries) {
		return f.entries[:n], nil
	}
	return f.entries, nil
}

func testConfig() *config.Config {
	return &config.Config{
		API: config.APIConfig{
			DefaultMaxResults: 25,
			MaxResultsCap:     100,
			QueryRateLimit:    30,
			HealthRateLimit:   1000,
		},
		Cache: config.CacheConfig{
			StatsTTL:    time.Minute,
			CoverageTTL: time.Minute,
		},
	}
}

func successResult() models.Result {
	return models.Result{
		Success: true,
		Query:   "how many profiles",
		Answer:  "There are 122,215 profiles.",
		Classification: models.Classification{
			Type:       models.QueryTypeSQL,
			Confidence: 1.0,
		},
		Metadata: models.ResultMetadata{
			QueryType:  models.QueryTypeSQL,
			Confidence: 1.0,
			SQLCount:   1,
			ElapsedMS:  42,
			Timestamp:  time.Now().UTC(),
		},
	}
}

var errStoreClosed = errors.New("store closed")
