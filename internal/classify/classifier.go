// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package classify

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/tomtom215/floatquery/internal/extract"
	"github.com/tomtom215/floatquery/internal/logging"
	"github.com/tomtom215/floatquery/internal/models"
)

// TypeSuggester is the slice of the LLM gateway the classifier uses for
// the model-assisted pass. *llm.Gateway satisfies it.
type TypeSuggester interface {
	ClassifyQuery(ctx context.Context, query string) (models.Classification, error)
}

// Classifier picks the retrieval route for a query. Coordinate queries
// short-circuit straight to SQL; everything else gets a keyword-scored
// rule pass fused with a model opinion. The classifier never fails: with
// no suggester, or a failing one, the rule pass stands alone.
type Classifier struct {
	llm TypeSuggester
}

// NewClassifier returns a Classifier. The suggester may be nil for a
// rules-only classifier.
func NewClassifier(s TypeSuggester) *Classifier {
	return &Classifier{llm: s}
}

// Keyword families scored by the rule pass. Substring containment against
// the lowercased query, one point per family member present. All families
// live in a single Aho-Corasick automaton so the query is scanned once.
const (
	familySQL       = "sql"
	familyVector    = "vector"
	familyHybrid    = "hybrid"
	familyStrongSQL = "strong_sql"
)

var ruleMatcher = newKeywordMatcher(map[string][]string{
	familySQL: {
		"show", "get", "find", "retrieve", "extract", "list", "count",
		"filter", "where", "between", "greater than", "less than",
		"exact", "specific", "precise", "data", "values", "measurements",
	},
	familyVector: {
		"summarize", "describe", "explain", "patterns", "trends",
		"characteristics", "overview", "general", "typical", "average",
		"variations", "changes", "analysis", "insights", "understand",
	},
	familyHybrid: {
		"compare", "analyze", "relationship", "correlation", "impact",
		"influence", "effect", "difference", "similar", "contrast",
	},
	familyStrongSQL: {"show me", "get me", "find all", "list all"},
})

var numberPattern = regexp.MustCompile(`\b\d+\b`)

// Two tiers of coordinate detection. The first recognizes explicit
// profile-proximity phrasing, the second the broader coordinate grammar;
// both route to SQL without consulting the model.
var (
	coordinateSQLPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)near\s+coordinates?\s+\d+[°\s]*[NS]`),
		regexp.MustCompile(`profiles?\s+near\s+\d+`),
		regexp.MustCompile(`find\s+profiles?\s+near`),
		regexp.MustCompile(`latitude\s+between`),
		regexp.MustCompile(`longitude\s+between`),
	}
	geographicIndicators = []*regexp.Regexp{
		regexp.MustCompile(`near\s+coordinates?`),
		regexp.MustCompile(`(?i)coordinates?\s+\d+[°\s]*[NS]`),
		regexp.MustCompile(`profiles?\s+near\s+\d+`),
		regexp.MustCompile(`find\s+profiles?\s+near`),
		regexp.MustCompile(`(?i)around\s+\d+[°\s]*[NS]`),
		regexp.MustCompile(`latitude.*longitude`),
		regexp.MustCompile(`(?i)\d+[°\s]*[NS].*\d+[°\s]*[EW]`),
	}
)

// Classify determines the retrieval route and extracts entities. It never
// returns an error; classification failures degrade to the rule result
// and, failing that, to semantic search.
func (c *Classifier) Classify(ctx context.Context, query string) models.Classification {
	lower := strings.ToLower(strings.TrimSpace(query))

	if matchAny(coordinateSQLPatterns, lower) {
		return models.Classification{
			Type:       models.QueryTypeSQL,
			Confidence: 0.9,
			Reasoning:  "Geographic coordinate query detected",
			Entities:   extract.Entities(query),
		}
	}
	if matchAny(geographicIndicators, lower) {
		return models.Classification{
			Type:       models.QueryTypeSQL,
			Confidence: 0.95,
			Reasoning:  "Geographic coordinate query detected - requires SQL database query",
			Entities:   extract.Entities(query),
		}
	}

	rules := ruleClassification(lower)
	entities := extract.Entities(query)

	if c.llm == nil {
		rules.Entities = entities
		return rules
	}

	suggestion, err := c.llm.ClassifyQuery(ctx, query)
	if err != nil {
		logging.Ctx(ctx).Warn().
			Str("component", "classify").
			Err(err).
			Str("rule_type", string(rules.Type)).
			Msg("LLM classification unavailable, using rule result")
		rules.Entities = entities
		return rules
	}

	final := fuse(rules, suggestion)
	final.Entities = entities.Merge(suggestion.Entities)

	logging.Ctx(ctx).Debug().
		Str("component", "classify").
		Str("query_type", string(final.Type)).
		Float64("confidence", final.Confidence).
		Msg("query classified")

	return final
}

// fuse combines the rule pass with the model's suggestion: agreement keeps
// the type at the higher confidence, disagreement defers to the model but
// caps confidence at 0.7.
func fuse(rules, suggestion models.Classification) models.Classification {
	llmConfidence := suggestion.Confidence
	if llmConfidence == 0 {
		llmConfidence = 0.5
	}

	final := models.Classification{Reasoning: suggestion.Reasoning}
	if final.Reasoning == "" {
		final.Reasoning = "Combined rule-based and LLM classification"
	}

	if rules.Type == suggestion.Type {
		final.Type = rules.Type
		final.Confidence = rules.Confidence
		if llmConfidence > final.Confidence {
			final.Confidence = llmConfidence
		}
		return final
	}

	final.Type = suggestion.Type
	final.Confidence = llmConfidence
	if final.Confidence > 0.7 {
		final.Confidence = 0.7
	}
	return final
}

// ruleClassification scores the query against the keyword families.
// SQL wins ties over hybrid, hybrid over vector; a scoreless query
// defaults to semantic search at half confidence.
func ruleClassification(lower string) models.Classification {
	counts := ruleMatcher.familyCounts(lower)
	sqlScore := counts[familySQL]
	vectorScore := counts[familyVector]
	hybridScore := counts[familyHybrid]

	if counts[familyStrongSQL] > 0 {
		sqlScore += 2
	}
	if numberPattern.MatchString(lower) {
		sqlScore++
	}
	if extract.MentionsLocation(lower) {
		sqlScore++
	}
	if extract.MentionsDate(lower) {
		sqlScore++
	}

	reasoning := fmt.Sprintf("Rule-based classification (sql=%d vector=%d hybrid=%d)",
		sqlScore, vectorScore, hybridScore)

	max := sqlScore
	if vectorScore > max {
		max = vectorScore
	}
	if hybridScore > max {
		max = hybridScore
	}

	switch {
	case max == 0:
		return models.Classification{
			Type:       models.QueryTypeVector,
			Confidence: 0.5,
			Reasoning:  reasoning,
		}
	case sqlScore == max:
		return models.Classification{
			Type:       models.QueryTypeSQL,
			Confidence: scoreConfidence(sqlScore),
			Reasoning:  reasoning,
		}
	case hybridScore == max:
		return models.Classification{
			Type:       models.QueryTypeHybrid,
			Confidence: scoreConfidence(hybridScore),
			Reasoning:  reasoning,
		}
	default:
		return models.Classification{
			Type:       models.QueryTypeVector,
			Confidence: scoreConfidence(vectorScore),
			Reasoning:  reasoning,
		}
	}
}

func scoreConfidence(score int) float64 {
	c := 0.6 + float64(score)*0.1
	if c > 0.9 {
		return 0.9
	}
	return c
}

func matchAny(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}
