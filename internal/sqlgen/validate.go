// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package sqlgen

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tomtom215/floatquery/internal/catalog"
	"github.com/tomtom215/floatquery/internal/models"
)

// ErrUnsafeSQL marks statements rejected by Validate. Callers replace
// them with a Fallback rather than executing.
var ErrUnsafeSQL = errors.New("unsafe SQL statement")

var (
	forbiddenKeywordPattern = regexp.MustCompile(`(?i)\b(drop|delete|insert|update|alter|create)\b`)

	bareArrayAggregatePattern = regexp.MustCompile(
		`(?i)\b(?:avg|sum|min|max)\(\s*(?:[a-zA-Z_][a-zA-Z0-9_]*\.)?(` +
			strings.Join(catalog.ArrayColumns(), "|") + `)\s*\)`)

	limitClausePattern   = regexp.MustCompile(`(?i)\s+LIMIT\s+\d+`)
	orderByClausePattern = regexp.MustCompile(`(?is)\s+ORDER\s+BY\s+.*$`)
	// Anchored on the table prefix so EXTRACT(YEAR FROM ...) in a
	// projection is not mistaken for the FROM clause.
	fromTablePattern = regexp.MustCompile(`(?i)FROM\s+(argo_\w+)`)
	whereClausePattern   = regexp.MustCompile(`(?is)WHERE\s+(.+?)(?:\s+GROUP\s+BY|\s+ORDER\s+BY|$)`)
	selectFromPattern    = regexp.MustCompile(`(?is)SELECT\s+.*?\s+FROM`)
)

// Validate enforces the read-only contract: single SELECT against a known
// table, no mutating keywords anywhere, no bare aggregates over array
// columns. It is deliberately shallow; the store's own parser catches the
// rest.
func Validate(stmt string) error {
	lower := strings.ToLower(strings.TrimSpace(stmt))

	if !strings.HasPrefix(lower, "select") {
		return fmt.Errorf("%w: statement must start with SELECT", ErrUnsafeSQL)
	}
	if !strings.Contains(lower, "from") {
		return fmt.Errorf("%w: statement has no FROM clause", ErrUnsafeSQL)
	}
	if !strings.Contains(lower, catalog.TableProfiles) && !strings.Contains(lower, catalog.TableFloats) {
		return fmt.Errorf("%w: statement references no known table", ErrUnsafeSQL)
	}
	if kw := forbiddenKeywordPattern.FindString(stmt); kw != "" {
		return fmt.Errorf("%w: forbidden keyword %q", ErrUnsafeSQL, strings.ToUpper(kw))
	}
	if m := bareArrayAggregatePattern.FindStringSubmatch(stmt); m != nil {
		return fmt.Errorf("%w: aggregate over array column %q needs an element index", ErrUnsafeSQL, m[1])
	}
	return nil
}

// EnsureLimit appends a default LIMIT 25 to open-ended statements. Counts
// carry their own bound, and the direct templates that page or rank
// manage their own limits.
func EnsureLimit(stmt, method string) string {
	lower := strings.ToLower(stmt)
	if strings.Contains(lower, "count(") || strings.Contains(lower, "limit") {
		return stmt
	}
	switch method {
	case models.MethodGeographic, models.MethodNearestFloats, models.MethodYearComparison:
		return stmt
	}
	return stmt + " LIMIT 25"
}

// CountCompanion derives the total-count statement for a retrieval query
// so the answer can report "showing N of M". GROUP BY statements count the
// underlying rows under the same WHERE clause; plain selects swap the
// projection for COUNT(*). Returns false when no companion can be built.
func CountCompanion(stmt string) (string, bool) {
	trimmed := limitClausePattern.ReplaceAllString(stmt, "")
	trimmed = orderByClausePattern.ReplaceAllString(trimmed, "")

	if strings.Contains(strings.ToUpper(stmt), "GROUP BY") {
		fm := fromTablePattern.FindStringSubmatch(trimmed)
		if fm == nil {
			return "", false
		}
		if wm := whereClausePattern.FindStringSubmatch(trimmed); wm != nil {
			return "SELECT COUNT(*) as count FROM " + fm[1] + " WHERE " + wm[1], true
		}
		return "SELECT COUNT(*) as count FROM " + fm[1], true
	}

	if !fromTablePattern.MatchString(trimmed) {
		return "", false
	}
	return selectFromPattern.ReplaceAllString(trimmed, "SELECT COUNT(*) as count FROM"), true
}
