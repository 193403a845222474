// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package answer

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/tomtom215/floatquery/internal/logging"
	"github.com/tomtom215/floatquery/internal/models"
)

// floatIDPatterns match the ways users write a float ID into a query.
// First match wins.
var floatIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`float\s+(\d+)`),
	regexp.MustCompile(`argo\s+float\s+(\d+)`),
	regexp.MustCompile(`float\s+id\s+(\d+)`),
	regexp.MustCompile(`float\s+(\d{7})`),
}

// floatIDFrom extracts a float ID mentioned in the query, if any.
func floatIDFrom(query string) (string, bool) {
	q := strings.ToLower(query)
	for _, p := range floatIDPatterns {
		if m := p.FindStringSubmatch(q); m != nil {
			return m[1], true
		}
	}
	return "", false
}

const floatDateRangeAnswer = `**No Data Found for Requested Date**

Float %[1]s exists in the database but has no data for the requested date.

**Available Data for Float %[1]s:**
- Date Range: %[2]s to %[3]s
- Total Profiles: %[4]d

**Suggestions:**
- Try a date within the available range (%[2]s to %[3]s)
- Ask for the temperature profile for a different date
- Request general information about this float's data coverage`

// noResults answers an empty retrieval. Float queries are grounded against
// the store so the user learns whether the float exists at all; everything
// else gets suggestions derived from the extracted entities.
func (s *Shaper) noResults(ctx context.Context, query string, entities models.ExtractedEntities) string {
	if floatID, ok := floatIDFrom(query); ok {
		earliest, latest, profiles, err := s.store.FloatDateRange(ctx, floatID)
		switch {
		case err != nil:
			logging.CtxErr(ctx, err).
				Str("component", "answer").
				Str("float_id", floatID).
				Msg("Float date range lookup failed")
		case profiles > 0:
			return fmt.Sprintf(floatDateRangeAnswer, floatID, earliest, latest, profiles)
		default:
			return fmt.Sprintf("Float %s does not exist in the ARGO database. Please check the float ID and try again.", floatID)
		}
	}

	var suggestions []string
	if len(entities.Parameters) > 0 {
		suggestions = append(suggestions, "Try searching for different oceanographic parameters")
	}
	if len(entities.Regions) > 0 {
		suggestions = append(suggestions, "Consider expanding the geographic area")
	}
	if len(entities.DateRanges) > 0 {
		suggestions = append(suggestions, "Try a different date range")
	}

	hint := ""
	if len(suggestions) > 0 {
		hint = " You might want to: " + strings.Join(suggestions, ", ") + "."
	}
	return fmt.Sprintf("I couldn't find specific data matching your query about %s.%s You can also try rephrasing your question or asking for general information about ARGO float data.", query, hint)
}

// isFloatNotFound recognizes the aggregate-found-nothing shape: the query
// names a float and the store answered with a single row of NULLs.
func isFloatNotFound(query string, rows []map[string]any) bool {
	if len(rows) != 1 || len(rows[0]) == 0 {
		return false
	}
	if _, ok := floatIDFrom(query); !ok {
		return false
	}
	for _, v := range rows[0] {
		if v != nil {
			return false
		}
	}
	return true
}

// floatNotFound answers a query for a float the store does not hold, with
// store totals for context and prefix-matched IDs as suggestions.
func (s *Shaper) floatNotFound(ctx context.Context, query string, stats *models.DatabaseStats) string {
	floatID, ok := floatIDFrom(query)
	if !ok {
		return "I couldn't find the specific float you're asking about. Please provide a valid float ID."
	}

	prefix := floatID
	if len(prefix) > 4 {
		prefix = prefix[:4]
	}
	similar, err := s.store.SimilarFloatIDs(ctx, prefix, 5)
	if err != nil {
		logging.CtxErr(ctx, err).
			Str("component", "answer").
			Str("prefix", prefix).
			Msg("Similar float lookup failed")
		similar = nil
	}

	parts := []string{
		fmt.Sprintf("**Float %s Not Found**", floatID),
		"",
		fmt.Sprintf("Float %s does not exist in the ARGO database.", floatID),
	}
	if stats != nil {
		parts = append(parts,
			"",
			"**Database Information:**",
			"- Total unique floats: "+humanize.Comma(stats.TotalFloats),
			fmt.Sprintf("- Date range: %s to %s", stats.EarliestDate, stats.LatestDate),
			"- Total profiles: "+humanize.Comma(stats.TotalProfiles),
		)
	}
	if len(similar) > 0 {
		parts = append(parts, "", "**Similar Float IDs:**")
		for _, id := range similar {
			parts = append(parts, "- "+id)
		}
	}
	parts = append(parts, "", "Please check the float ID and try again, or ask about available floats in a specific region or time period.")

	return strings.Join(parts, "\n")
}
