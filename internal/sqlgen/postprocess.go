// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package sqlgen

import (
	"regexp"
	"strings"

	"github.com/tomtom215/floatquery/internal/catalog"
)

// Measurement columns hold per-depth arrays, so a bare AVG(temperature)
// is a type error in the store. The rewrite indexes the surface element,
// preserving any table alias the model emitted.
var arrayAggregatePattern = regexp.MustCompile(
	`(?i)\b(avg|sum|min|max)\(\s*((?:[a-zA-Z_][a-zA-Z0-9_]*\.)?)(` +
		strings.Join(catalog.ArrayColumns(), "|") + `)\s*\)`)

var (
	sqlFenceOpenPattern = regexp.MustCompile("```sql\\s*\\n?")
	fenceClosePattern   = regexp.MustCompile("```\\s*$")

	fromFloatsPattern       = regexp.MustCompile(`(?i)FROM\s+argo_floats\b`)
	floatsProjectionPattern = regexp.MustCompile(`(?i)SELECT\s+float_id,\s*latitude,\s*longitude\b`)
)

var locationKeywords = []string{
	"location", "coordinate", "latitude", "longitude",
	"equator", "near", "trajectory", "trajectories",
}

// CleanResponse extracts a single-line SQL statement from a raw model
// reply: markdown fences and comment lines go, everything else is joined
// with single spaces.
func CleanResponse(raw string) string {
	raw = sqlFenceOpenPattern.ReplaceAllString(raw, "")
	raw = fenceClosePattern.ReplaceAllString(raw, "")

	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") || strings.HasPrefix(line, "```") {
			continue
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, " "))
}

// FixArrayAggregates rewrites aggregates over array columns to aggregate
// the surface element instead: AVG(temperature) and AVG(t.temperature)
// both become aggregates over [...][1]. Already-indexed expressions are
// left alone.
func FixArrayAggregates(stmt string) string {
	return arrayAggregatePattern.ReplaceAllStringFunc(stmt, func(m string) string {
		parts := arrayAggregatePattern.FindStringSubmatch(m)
		return strings.ToUpper(parts[1]) + "(" + parts[2] + parts[3] + "[1])"
	})
}

// FixTableSelection redirects location-flavoured queries from argo_floats
// to argo_profiles, where the coordinates live, widening the projection
// with profile identity and date. The models regularly pick the float
// table for trajectory questions.
func FixTableSelection(stmt, query string) string {
	if !containsAny(strings.ToLower(query), locationKeywords) {
		return stmt
	}
	if !strings.Contains(strings.ToLower(stmt), "from argo_floats") {
		return stmt
	}
	stmt = fromFloatsPattern.ReplaceAllString(stmt, "FROM argo_profiles")
	stmt = floatsProjectionPattern.ReplaceAllString(stmt, "SELECT profile_id, float_id, latitude, longitude, profile_date")
	return stmt
}
