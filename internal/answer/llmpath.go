// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package answer

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/tomtom215/floatquery/internal/logging"
	"github.com/tomtom215/floatquery/internal/models"
)

const proseBaseRules = `You are a database query results interpreter for ARGO oceanographic data.

ABSOLUTE RULES - NEVER BREAK THESE:
1. Report ONLY what exists in the provided database results
2. If a field contains NULL, None, or is missing - say "not available"
3. NEVER estimate, calculate, or invent any numerical values
4. NEVER provide temperature, salinity, depth, or pressure values unless they explicitly appear in the database results
5. If no oceanographic measurements exist, say so clearly`

const proseDoNotRules = `DO NOT:
- Describe oceanographic patterns if no measurement data exists
- Mention specific temperatures/salinities/depths unless they're in the database results
- Use phrases like "suggests", "indicates", "likely" when referring to non-existent data
- Provide scientific interpretations of measurements that don't exist
- Invent any numerical values or ranges`

// measurementColumns are the per-level array channels a profile row can carry.
var measurementColumns = []string{"temperature", "salinity", "pressure", "depth", "dissolved_oxygen"}

var genericReplies = []string{"query processed successfully", "no data found", "no data available"}

// proseAnswer asks the model to narrate the retrieved data, falling back to
// the raw formatter when generation fails or the reply is contentless filler.
func (s *Shaper) proseAnswer(ctx context.Context, query string, queryType models.QueryType, data models.RetrievedData) (string, error) {
	count := len(data.SQLRows)
	hasArrays := hasMeasurementArrays(data.SQLRows)

	system := proseSystemPrompt(query, queryType, count, hasArrays)
	user := "Retrieved database results: " + summarizeForModel(data) +
		"\n\nReport exactly what this data contains for the user's query. Do not add any analysis beyond what the actual data supports."

	temperature := 0.2
	if queryType == models.QueryTypeSQL {
		temperature = 0.1
	}

	reply, err := s.writer.GenerateAnswer(ctx, system, user, temperature, false)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		logging.CtxErr(ctx, err).
			Str("component", "answer").
			Msg("Answer generation failed, using raw data")
		return rawDataAnswer(query, data), nil
	}
	if isGenericReply(reply) {
		logging.Ctx(ctx).Debug().
			Str("component", "answer").
			Int("reply_length", len(reply)).
			Msg("Generic model reply rejected, using raw data")
		return rawDataAnswer(query, data), nil
	}
	return reply, nil
}

func proseSystemPrompt(query string, queryType models.QueryType, count int, hasArrays bool) string {
	return proseBaseRules + "\n" + responseStructure(count, hasArrays) + "\n" + proseDoNotRules +
		fmt.Sprintf("\n\nThe user asked: %q\nQuery type: %s\n\nYour job: Report exactly what the database contains, nothing more.", query, queryType)
}

// responseStructure picks guidance matched to the shape of the results so the
// model neither pads a count nor drowns a single record in summary prose.
func responseStructure(count int, hasArrays bool) string {
	switch {
	case count == 0:
		return `RESPONSE STRUCTURE:
- State clearly: "No data found matching your query"
- Suggest alternative search terms or broader criteria
- Do not provide any oceanographic analysis`
	case hasArrays && count > 1:
		return `RESPONSE STRUCTURE:
1. Report the number of profiles/records found
2. For measurement arrays (temperature, salinity, pressure):
- If arrays contain data: provide meaningful summaries like "Surface temperature: [first_value]°C, Deep temperature: [last_value]°C"
- If arrays are NULL/empty: state "[parameter] measurements not available"
3. Focus on what the actual data tells us about ocean conditions
4. Never invent array values - only use what's in the database
5. If data spans multiple years, group by year and compare conditions between years`
	case count == 1 && !hasArrays:
		return `RESPONSE STRUCTURE:
1. Start with: "Based on the retrieved data, here's what I found:"
2. State exactly how many records were found
3. For each piece of data:
- If present: report the exact value from database
- If NULL/None/missing: state "[parameter] data is not available"
4. End with what this means for the user's query`
	case count > 100:
		return `RESPONSE STRUCTURE:
1. Start with: "Found [X] records matching your query"
2. Provide summary statistics from the data (counts, ranges if available)
3. Highlight key patterns or notable findings
4. For large datasets, focus on aggregate insights rather than individual records
5. Only mention specific values that appear in the database results`
	default:
		return `RESPONSE STRUCTURE:
1. Start with: "Based on the retrieved data, here's what I found:"
2. State exactly how many records were found
3. Summarize the key findings from the actual database results
4. Provide context about what this means for the user's query`
	}
}

func hasMeasurementArrays(rows []map[string]any) bool {
	if len(rows) == 0 {
		return false
	}
	for _, col := range measurementColumns {
		if v, ok := rows[0][col]; ok && v != nil {
			return true
		}
	}
	return false
}

// summarizeForModel compresses the retrieval into a compact context block.
// Counts and group-by results are spelled out verbatim so the model has no
// room to improvise; row detail is capped at three records.
func summarizeForModel(data models.RetrievedData) string {
	var parts []string

	if len(data.SQLRows) > 0 {
		rows := data.SQLRows
		if len(rows) == 1 && hasKey(rows[0], "count") {
			parts = append(parts,
				"SQL COUNT QUERY RESULT: "+cast.ToString(rows[0]["count"]),
				"This is the exact count returned by the database query")
			return strings.Join(parts, " || ")
		}
		if allYearCountRows(rows) {
			parts = append(parts, "SQL GROUP BY QUERY RESULTS - YEARLY BREAKDOWN:")
			for _, row := range rows {
				year, _ := rowInt(row, "year")
				parts = append(parts, fmt.Sprintf("Year %d: %s profiles", year, cast.ToString(row["count"])))
			}
			return strings.Join(parts, " || ")
		}

		parts = append(parts, fmt.Sprintf("Database Query Results: %d records found", len(rows)))
		show := rows
		if len(show) > 3 {
			show = show[:3]
		}
		for i, row := range show {
			parts = append(parts, recordSummary(i+1, row))
		}
	}

	if len(data.VectorHits) > 0 {
		parts = append(parts, fmt.Sprintf("Vector Search Results: %d relevant summaries found", len(data.VectorHits)))
		show := data.VectorHits
		if len(show) > 2 {
			show = show[:2]
		}
		for i, hit := range show {
			parts = append(parts, fmt.Sprintf("Vector Result %d: %s...", i+1, truncateRunes(hit.Document, 200)))
		}
	}

	if data.Stats != nil {
		parts = append(parts, fmt.Sprintf("Database contains %d total profiles and %d floats",
			data.Stats.TotalProfiles, data.Stats.TotalFloats))
	}

	return strings.Join(parts, " || ")
}

func recordSummary(n int, row map[string]any) string {
	fields := []string{fmt.Sprintf("Record %d:", n)}

	if v := rowString(row, "profile_id", ""); v != "" {
		fields = append(fields, "Profile ID: "+v)
	}
	if v := rowString(row, "float_id", ""); v != "" {
		fields = append(fields, "Float ID: "+v)
	}
	if lat, ok := rowFloat(row, "latitude"); ok {
		if lon, ok := rowFloat(row, "longitude"); ok {
			fields = append(fields, fmt.Sprintf("Location: %s, %s", formatLat(lat), formatLon(lon)))
		}
	}
	if v := rowString(row, "profile_date", ""); v != "" {
		fields = append(fields, "Date: "+v)
	}

	if v, ok := row["temperature"]; ok && v != nil {
		fields = append(fields, fmt.Sprintf("Temperature measurements: %v °C", v))
	}
	if v, ok := row["salinity"]; ok && v != nil {
		fields = append(fields, fmt.Sprintf("Salinity measurements: %v PSU", v))
	}
	if v, ok := row["pressure"]; ok && v != nil {
		fields = append(fields, fmt.Sprintf("Pressure measurements: %v dbar", v))
	}
	if v, ok := row["depth"]; ok && v != nil {
		fields = append(fields, fmt.Sprintf("Depth measurements: %v meters", v))
	}

	var bgc []string
	if v, ok := row["dissolved_oxygen"]; ok && v != nil {
		bgc = append(bgc, fmt.Sprintf("Dissolved Oxygen: %v", v))
	}
	if v, ok := row["ph_in_situ"]; ok && v != nil {
		bgc = append(bgc, fmt.Sprintf("pH: %v", v))
	}
	if v, ok := row["nitrate"]; ok && v != nil {
		bgc = append(bgc, fmt.Sprintf("Nitrate: %v", v))
	}
	if v, ok := row["chlorophyll_a"]; ok && v != nil {
		bgc = append(bgc, fmt.Sprintf("Chlorophyll-a: %v", v))
	}
	if len(bgc) > 0 {
		fields = append(fields, "BGC data: "+strings.Join(bgc, ", "))
	} else {
		fields = append(fields, "No BGC data available")
	}

	return strings.Join(fields, " | ")
}

func allYearCountRows(rows []map[string]any) bool {
	for _, row := range rows {
		if !hasKey(row, "year") || !hasKey(row, "count") {
			return false
		}
	}
	return true
}

// truncateRunes returns the first n runes of s.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// isGenericReply flags replies that carry no information beyond filler.
func isGenericReply(reply string) bool {
	trimmed := strings.TrimSpace(reply)
	if len(trimmed) <= 50 {
		return true
	}
	return containsAny(strings.ToLower(trimmed), genericReplies)
}
