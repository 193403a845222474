// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package sqlgen

import (
	"context"
	"errors"
	"strings"

	"github.com/tomtom215/floatquery/internal/catalog"
	"github.com/tomtom215/floatquery/internal/logging"
	"github.com/tomtom215/floatquery/internal/models"
)

// SQLWriter is the slice of the LLM gateway the synthesizer needs.
// *llm.Gateway satisfies it.
type SQLWriter interface {
	GenerateSQL(ctx context.Context, system, user string) (string, error)
}

// Synthesizer produces exactly one SELECT statement per query. Direct
// templates are tried first because they are cheaper and more reliable
// than the model for the shapes they cover; the model is the catch-all.
type Synthesizer struct {
	writer SQLWriter
}

// NewSynthesizer returns a Synthesizer backed by the given writer. The
// writer may be nil, in which case every non-template query falls back
// to a COUNT statement.
func NewSynthesizer(w SQLWriter) *Synthesizer {
	return &Synthesizer{writer: w}
}

// Generate maps a natural-language query to a validated SELECT statement.
// It never returns an unusable result: when both the templates and the
// model come up empty the returned GeneratedSQL carries a COUNT fallback
// and the Err field records what went wrong.
func (s *Synthesizer) Generate(ctx context.Context, query string, entities models.ExtractedEntities) models.GeneratedSQL {
	_ = entities // reserved for entity-aware templates

	for _, direct := range []func(string) (models.GeneratedSQL, bool){
		operatingDurationSQL,
		yearCountSQL,
		nearestFloatsSQL,
		yearComparisonSQL,
		geographicSQL,
	} {
		if gen, ok := direct(query); ok {
			logging.Ctx(ctx).Debug().
				Str("component", "sqlgen").
				Str("method", gen.Method).
				Msg("direct SQL template matched")
			return gen
		}
	}

	return s.llmSQL(ctx, query)
}

func (s *Synthesizer) llmSQL(ctx context.Context, query string) models.GeneratedSQL {
	if s.writer == nil {
		return Fallback(query, errors.New("no SQL writer configured"))
	}

	raw, err := s.writer.GenerateSQL(ctx, sqlSystemPrompt(), "Generate SQL for: "+query)
	if err != nil {
		logging.CtxErr(ctx, err).
			Str("component", "sqlgen").
			Msg("LLM SQL generation failed, using fallback")
		return Fallback(query, err)
	}

	stmt := CleanResponse(raw)
	stmt = FixArrayAggregates(stmt)
	stmt = FixTableSelection(stmt, query)

	if err := Validate(stmt); err != nil {
		logging.Ctx(ctx).Warn().
			Str("component", "sqlgen").
			Err(err).
			Str("sql", stmt).
			Msg("generated SQL rejected, using fallback")
		return Fallback(query, err)
	}

	return models.GeneratedSQL{
		Query:            stmt,
		Explanation:      "Generated SQL to answer: " + query,
		EstimatedResults: "Variable based on query",
		ParametersUsed:   parametersIn(stmt),
		Method:           models.MethodIntelligentLLM,
	}
}

// Fallback builds the COUNT statement used when generation fails.
// Coordinate-flavoured queries count located profiles so the answer at
// least reflects the user's geographic intent.
func Fallback(query string, genErr error) models.GeneratedSQL {
	lower := strings.ToLower(query)
	msg := ""
	if genErr != nil {
		msg = genErr.Error()
	}

	if strings.Contains(lower, "coordinate") || strings.Contains(lower, "near") || latitudeMarkerPattern.MatchString(query) {
		return models.GeneratedSQL{
			Query:            "SELECT COUNT(*) FROM argo_profiles WHERE latitude IS NOT NULL AND longitude IS NOT NULL",
			Explanation:      "Fallback geographic query for: " + query,
			EstimatedResults: "Count of profiles with coordinates",
			ParametersUsed:   []string{"latitude", "longitude"},
			Method:           models.MethodFallback,
			Err:              msg,
		}
	}
	return models.GeneratedSQL{
		Query:            "SELECT COUNT(*) FROM argo_profiles LIMIT 10",
		Explanation:      "Fallback query due to generation error: " + msg,
		EstimatedResults: "10 profiles",
		Method:           models.MethodFallback,
		Err:              msg,
	}
}

// parametersIn reports which measurement columns a statement touches.
func parametersIn(stmt string) []string {
	lower := strings.ToLower(stmt)
	var used []string
	for _, col := range catalog.ArrayColumns() {
		if strings.Contains(lower, col) {
			used = append(used, col)
		}
	}
	return used
}
