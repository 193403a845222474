// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tomtom215/floatquery/internal/catalog"
	"github.com/tomtom215/floatquery/internal/models"
)

// ARGO identifiers are exactly seven digits. "profile 1902680" and
// "profile number 1902680" are profile references, "float 1902680" is a
// float reference, and a bare seven-digit number is resolved by context.
var (
	profileIDPattern    = regexp.MustCompile(`\b(?:profile|profile\s+number)\s+(\d{7})\b`)
	floatIDPattern      = regexp.MustCompile(`\bfloat\s+(\d{7})\b`)
	standaloneIDPattern = regexp.MustCompile(`\b(\d{7})\b`)
)

// locationPatterns recognize coordinate and place mentions beyond the named
// regions the catalog already knows. Patterns with capture groups contribute
// their groups joined by spaces; groupless patterns contribute the whole
// match.
var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`near\s+(?:the\s+)?equator`),
	regexp.MustCompile(`in\s+the\s+(\w+\s+\w+|\w+)\s+(?:ocean|sea)`),
	regexp.MustCompile(`(?i)around\s+(\d+\.?\d*)[°\s]*([NS])\s*,?\s*(\d+\.?\d*)[°\s]*([EW])`),
	regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*°?\s*([NS])[,\s]+(\d+(?:\.\d+)?)\s*°?\s*([EW])`),
	regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*degrees?\s+(north|south)[,\s]+(\d+(?:\.\d+)?)\s*degrees?\s+(east|west)`),
	regexp.MustCompile(`latitude\s+(\d+\.?\d*)`),
	regexp.MustCompile(`longitude\s+(\d+\.?\d*)`),
}

// datePatterns recognize the temporal expressions users actually write.
// The bare-year pattern is last so the more specific forms win first-seen
// ordering; duplicates collapse afterwards.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`between\s+(\w+\s+\d{4})\s+and\s+(\w+\s+\d{4})`),
	regexp.MustCompile(`in\s+(\w+\s+\d{4})`),
	regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`),
	regexp.MustCompile(`last\s+(\d+)\s+(days?|weeks?|months?|years?)`),
	regexp.MustCompile(`past\s+(\d+)\s+(days?|weeks?|months?|years?)`),
	regexp.MustCompile(`since\s+(\w+\s+\d{4}|\d{4})`),
	regexp.MustCompile(`\b((?:19|20)\d{2})\b`),
}

var comparatorPattern = regexp.MustCompile(`([><=]+)\s*(\d+\.?\d*)`)

// Entities extracts every entity the extractor recognizes in the query.
// All rule families run; matches accumulate and duplicates collapse while
// preserving first-seen order.
func Entities(query string) models.ExtractedEntities {
	var e models.ExtractedEntities
	lower := strings.ToLower(query)

	profileIDs := captures(profileIDPattern, lower)
	floatIDs := captures(floatIDPattern, lower)
	if len(profileIDs) == 0 && len(floatIDs) == 0 {
		// A bare seven-digit number is a profile reference when the query
		// talks about profiles, otherwise a float reference.
		if ids := captures(standaloneIDPattern, query); len(ids) > 0 {
			if strings.Contains(lower, "profile") {
				profileIDs = ids
			} else {
				floatIDs = ids
			}
		}
	}
	e.ProfileIDs = dedupe(profileIDs)
	e.FloatIDs = dedupe(floatIDs)

	e.Parameters = catalog.MatchParameters(query)

	var regions []string
	for _, r := range catalog.MatchRegions(query) {
		regions = append(regions, r.Name)
	}
	for _, p := range locationPatterns {
		regions = append(regions, joinedMatches(p, lower)...)
	}
	e.Regions = dedupe(regions)

	var dates []string
	for _, p := range datePatterns {
		dates = append(dates, joinedMatches(p, lower)...)
	}
	e.DateRanges = dedupe(dates)

	for _, m := range comparatorPattern.FindAllStringSubmatch(query, -1) {
		v, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		e.Comparisons = append(e.Comparisons, models.Comparator{Operator: m[1], Value: v})
	}

	return e
}

// MentionsLocation reports whether the query contains a coordinate or
// place expression. Named catalog regions count as locations.
func MentionsLocation(query string) bool {
	lower := strings.ToLower(query)
	if len(catalog.MatchRegions(query)) > 0 {
		return true
	}
	for _, p := range locationPatterns {
		if p.MatchString(lower) {
			return true
		}
	}
	return false
}

// MentionsDate reports whether the query contains a temporal expression.
func MentionsDate(query string) bool {
	lower := strings.ToLower(query)
	for _, p := range datePatterns {
		if p.MatchString(lower) {
			return true
		}
	}
	return false
}

// captures returns the first capture group of every match.
func captures(re *regexp.Regexp, s string) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(s, -1) {
		out = append(out, m[1])
	}
	return out
}

// joinedMatches returns one string per match: the non-empty capture groups
// joined by spaces, or the whole match when the pattern has no groups.
func joinedMatches(re *regexp.Regexp, s string) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(s, -1) {
		if len(m) == 1 {
			out = append(out, m[0])
			continue
		}
		parts := make([]string, 0, len(m)-1)
		for _, g := range m[1:] {
			if g != "" {
				parts = append(parts, g)
			}
		}
		out = append(out, strings.Join(parts, " "))
	}
	return out
}

func dedupe(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
