// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package retrieval

import (
	"context"
	"fmt"

	"github.com/tomtom215/floatquery/internal/logging"
	"github.com/tomtom215/floatquery/internal/models"
	"github.com/tomtom215/floatquery/internal/sqlgen"
)

// sqlRetrieve synthesizes, bounds, and executes one statement. The rows
// come back exactly as the store returned them, truncated to the budget.
func (c *Coordinator) sqlRetrieve(ctx context.Context, query string, entities models.ExtractedEntities, maxResults int) (models.RetrievedData, error) {
	gen := c.gen.Generate(ctx, query, entities)
	stmt := sqlgen.EnsureLimit(gen.Query, gen.Method)

	if gen.Err != "" {
		logging.Ctx(ctx).Warn().
			Str("component", "retrieval").
			Str("generation_error", gen.Err).
			Msg("SQL generation degraded to its fallback statement")
	}

	logging.Ctx(ctx).Debug().
		Str("component", "retrieval").
		Str("method", gen.Method).
		Str("sql", stmt).
		Msg("Executing retrieval statement")

	rows, err := c.store.ExecuteRaw(ctx, stmt)
	if err != nil {
		return models.RetrievedData{}, fmt.Errorf("execute %s statement: %w", gen.Method, err)
	}
	if len(rows) > maxResults {
		rows = rows[:maxResults]
	}

	return models.RetrievedData{
		SQLRows:    rows,
		SQLText:    stmt,
		Method:     gen.Method,
		TotalCount: c.totalFor(ctx, stmt, gen.Method, rows),
	}, nil
}

// totalFor reports how many rows the statement matches without its LIMIT.
// Ranked nearest-float statements carry their own bound, so their result
// length is the total; everything else runs the count companion,
// best-effort, with the visible row count as the floor.
func (c *Coordinator) totalFor(ctx context.Context, stmt, method string, rows []map[string]any) int {
	if method == models.MethodNearestFloats {
		return len(rows)
	}

	countStmt, ok := sqlgen.CountCompanion(stmt)
	if !ok {
		return len(rows)
	}
	total, err := c.store.CountFor(ctx, countStmt)
	if err != nil {
		logging.Ctx(ctx).Debug().
			Err(err).
			Str("component", "retrieval").
			Msg("Count companion failed, using visible row count")
		return len(rows)
	}
	if total < len(rows) {
		return len(rows)
	}
	return total
}
