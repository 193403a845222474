// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package answer

import (
	"context"
	"strings"

	"github.com/tomtom215/floatquery/internal/database"
	"github.com/tomtom215/floatquery/internal/logging"
	"github.com/tomtom215/floatquery/internal/models"
)

// DataStore is the slice of the relational store the shaper consults for
// grounded suggestions and comparison aggregates. *database.DB satisfies it.
type DataStore interface {
	FloatDateRange(ctx context.Context, floatID string) (earliest, latest string, profiles int, err error)
	SimilarFloatIDs(ctx context.Context, prefix string, n int) ([]string, error)
	YearCounts(ctx context.Context, years []int, equatorialOnly bool) ([]database.YearConditions, error)
}

// AnswerWriter generates free-text prose. *llm.Gateway satisfies it.
type AnswerWriter interface {
	GenerateAnswer(ctx context.Context, system, user string, temperature float64, preferCode bool) (string, error)
}

// forceDataKeywords mark a query as a concrete data request. Those answers
// come straight from the data formatters; model prose is reserved for
// open-ended questions.
var forceDataKeywords = []string{
	"show", "find", "get", "list", "display", "float", "data", "profile",
	"temperature", "salinity", "trajectory", "trajectories", "location",
	"coordinates", "map", "bay", "ocean", "sea",
}

// Shaper renders retrieved data into the final answer text.
// Safe for concurrent use.
type Shaper struct {
	store  DataStore
	writer AnswerWriter
}

// NewShaper wires the shaper's store and prose dependencies.
func NewShaper(store DataStore, writer AnswerWriter) *Shaper {
	return &Shaper{store: store, writer: writer}
}

// Shape produces the answer for a retrieval. Every data shape has a
// deterministic rendering, so the only failure Shape reports is context
// cancellation.
func (s *Shaper) Shape(ctx context.Context, query string, cls models.Classification, data models.RetrievedData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch {
	case data.IsEmpty():
		logShapePath(ctx, "no_results")
		return s.noResults(ctx, query, cls.Entities), nil
	case isYearComparison(query, data):
		logShapePath(ctx, "year_comparison")
		return s.yearComparison(ctx, query, data.SQLRows), nil
	case isFloatNotFound(query, data.SQLRows):
		logShapePath(ctx, "float_not_found")
		return s.floatNotFound(ctx, query, data.Stats), nil
	case wantsDataAnswer(query):
		logShapePath(ctx, "raw_data")
		return rawDataAnswer(query, data), nil
	}

	logShapePath(ctx, "prose")
	return s.proseAnswer(ctx, query, cls.Type, data)
}

func logShapePath(ctx context.Context, path string) {
	logging.Ctx(ctx).Debug().
		Str("component", "answer").
		Str("formatter", path).
		Msg("Answer formatter selected")
}

// wantsDataAnswer reports whether the query asks for concrete records
// rather than an interpretation.
func wantsDataAnswer(query string) bool {
	return containsAny(strings.ToLower(query), forceDataKeywords)
}

func containsAny(lower string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(lower, n) {
			return true
		}
	}
	return false
}
