// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package retrieval

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/floatquery/internal/logging"
	"github.com/tomtom215/floatquery/internal/models"
	"github.com/tomtom215/floatquery/internal/vector"
)

// DefaultMaxResults bounds a retrieval when the caller passes no budget.
const DefaultMaxResults = 25

// SQLStore is the slice of the relational store the coordinator uses.
// *database.DB satisfies it.
type SQLStore interface {
	ExecuteRaw(ctx context.Context, stmt string) ([]map[string]any, error)
	CountFor(ctx context.Context, countStmt string) (int, error)
	Stats(ctx context.Context) (*models.DatabaseStats, error)
}

// SQLGenerator maps a natural-language query to one SELECT statement.
// *sqlgen.Synthesizer satisfies it.
type SQLGenerator interface {
	Generate(ctx context.Context, query string, entities models.ExtractedEntities) models.GeneratedSQL
}

// Coordinator routes retrievals between the relational store and the
// vector store. Safe for concurrent use.
type Coordinator struct {
	store  SQLStore
	search vector.Store
	gen    SQLGenerator
}

// NewCoordinator wires the coordinator's three dependencies.
func NewCoordinator(store SQLStore, search vector.Store, gen SQLGenerator) *Coordinator {
	return &Coordinator{store: store, search: search, gen: gen}
}

// Retrieve fetches grounding data for the query along the classified route.
// The returned data may be empty; a non-nil error means the route (and its
// fallback, where one exists) produced nothing usable. Even failed
// retrievals carry a store statistics snapshot when one is available.
func (c *Coordinator) Retrieve(ctx context.Context, query string, cls models.Classification, maxResults int) (models.RetrievedData, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	var (
		data models.RetrievedData
		err  error
	)
	switch cls.Type {
	case models.QueryTypeVector:
		data, err = c.vectorOnly(ctx, query, cls.Entities, maxResults)
	case models.QueryTypeHybrid:
		data, err = c.hybrid(ctx, query, cls.Entities, maxResults)
	default:
		data, err = c.sqlWithFallback(ctx, query, cls.Entities, maxResults)
	}

	if stats, statsErr := c.store.Stats(ctx); statsErr == nil {
		data.Stats = stats
	} else {
		logging.Ctx(ctx).Warn().
			Err(statsErr).
			Str("component", "retrieval").
			Msg("Store statistics unavailable for retrieval context")
	}
	return data, err
}

// sqlWithFallback runs the SQL route and degrades to semantic search when
// execution fails. Generation itself cannot fail; the synthesizer always
// returns an executable statement.
func (c *Coordinator) sqlWithFallback(ctx context.Context, query string, entities models.ExtractedEntities, maxResults int) (models.RetrievedData, error) {
	data, err := c.sqlRetrieve(ctx, query, entities, maxResults)
	if err == nil {
		return data, nil
	}

	logging.CtxErr(ctx, err).
		Str("component", "retrieval").
		Msg("SQL retrieval failed, falling back to semantic search")
	return c.vectorOnly(ctx, query, entities, maxResults)
}

func (c *Coordinator) vectorOnly(ctx context.Context, query string, entities models.ExtractedEntities, maxResults int) (models.RetrievedData, error) {
	hits, note, err := c.vectorRetrieve(ctx, query, entities, maxResults)
	if err != nil {
		return models.RetrievedData{}, fmt.Errorf("vector retrieval: %w", err)
	}
	return models.RetrievedData{
		VectorHits:     hits,
		GeographicNote: note,
		TotalCount:     len(hits),
	}, nil
}

// hybrid runs both routes concurrently on half the budget each. Each side
// reports through its own error slot so one failing path never cancels
// the other.
func (c *Coordinator) hybrid(ctx context.Context, query string, entities models.ExtractedEntities, maxResults int) (models.RetrievedData, error) {
	budget := maxResults / 2
	if budget < 1 {
		budget = 1
	}

	var (
		sqlData models.RetrievedData
		sqlErr  error
		hits    []models.VectorHit
		note    string
		vecErr  error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sqlData, sqlErr = c.sqlRetrieve(gctx, query, entities, budget)
		return nil
	})
	g.Go(func() error {
		hits, note, vecErr = c.vectorRetrieve(gctx, query, entities, budget)
		return nil
	})
	_ = g.Wait()

	switch {
	case sqlErr != nil && vecErr != nil:
		return models.RetrievedData{}, fmt.Errorf("hybrid retrieval: sql: %v; vector: %w", sqlErr, vecErr)
	case sqlErr != nil:
		logging.CtxErr(ctx, sqlErr).
			Str("component", "retrieval").
			Msg("Hybrid SQL side failed, serving vector results only")
		return models.RetrievedData{
			VectorHits:     hits,
			GeographicNote: note,
			TotalCount:     len(hits),
		}, nil
	case vecErr != nil:
		logging.CtxErr(ctx, vecErr).
			Str("component", "retrieval").
			Msg("Hybrid vector side failed, serving SQL results only")
		return sqlData, nil
	}

	sqlData.VectorHits = hits
	sqlData.GeographicNote = note
	return sqlData, nil
}
