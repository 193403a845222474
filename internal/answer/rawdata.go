// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package answer

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cast"

	"github.com/tomtom215/floatquery/internal/models"
)

var yearCountCues = []string{"how many", "count", "number of profiles", "profiles in"}

// rawDataAnswer renders the retrieved rows verbatim, without a model in the
// loop. SQL rows win over vector hits when both sides returned.
func rawDataAnswer(query string, data models.RetrievedData) string {
	var rows []map[string]any
	switch {
	case len(data.SQLRows) > 0:
		rows = data.SQLRows
	case len(data.VectorHits) > 0:
		rows = rowsFromHits(data.VectorHits)
	default:
		return "No data available for your query."
	}

	var b strings.Builder
	if data.GeographicNote != "" {
		b.WriteString("_" + data.GeographicNote + "_\n\n")
	}

	if data.Method == models.MethodNearestFloats && len(data.SQLRows) > 0 {
		b.WriteString(nearestFloatsAnswer(rows))
		return b.String()
	}

	if len(rows) == 1 && hasKey(rows[0], "count") {
		b.WriteString("**Database Results** (1 record found):\n\n")
		b.WriteString("**Total Count**: " + commaValue(rows[0]["count"]) + "\n")
		return b.String()
	}

	if containsAny(strings.ToLower(query), yearCountCues) {
		if breakdown := yearCountBreakdown(rows, data.TotalCount); breakdown != "" {
			b.WriteString(breakdown)
			return b.String()
		}
	}

	total := data.TotalCount
	if total < len(rows) {
		total = len(rows)
	}
	fmt.Fprintf(&b, "**Database Results** (%s records found):\n\n", humanize.Comma(int64(total)))
	if total > len(rows) {
		b.WriteString("**Displaying a few of them:**\n\n")
	}

	first := rows[0]
	if !hasKey(first, "float_id") && hasAnyKey(first, "min", "max", "avg", "count", "sum") {
		b.WriteString(aggregateLines(first, data.SQLText))
		return b.String()
	}

	if hasKey(first, "latitude") && !hasKey(first, "float_id") &&
		(hasKey(first, "surface_temp") || hasKey(first, "deep_temp")) {
		b.WriteString(latitudeBandLines(rows))
		return b.String()
	}

	b.WriteString(floatGroupLines(rows))
	return b.String()
}

// nearestFloatsAnswer lists the closest floats with their distances. Rows
// arrive one per profile; only each float's nearest profile is shown.
func nearestFloatsAnswer(rows []map[string]any) string {
	unique := lo.UniqBy(rows, func(row map[string]any) string {
		return rowString(row, "float_id", "Unknown")
	})
	sort.SliceStable(unique, func(i, j int) bool {
		di, _ := rowFloat(unique[i], "distance_km")
		dj, _ := rowFloat(unique[j], "distance_km")
		return di < dj
	})

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d nearest ARGO floats:\n\n", len(unique))

	show := unique
	if len(show) > 10 {
		show = show[:10]
	}
	for _, row := range show {
		dist, _ := rowFloat(row, "distance_km")
		fmt.Fprintf(&b, "**Float %s** (%.1fkm away):\n", rowString(row, "float_id", "Unknown"), dist)
		if lat, ok := rowFloat(row, "latitude"); ok {
			if lon, ok := rowFloat(row, "longitude"); ok {
				fmt.Fprintf(&b, "  - Location: %s, %s\n", formatLat(lat), formatLon(lon))
			}
		}
		fmt.Fprintf(&b, "  - Date: %s\n", rowString(row, "profile_date", "Unknown"))
		fmt.Fprintf(&b, "  - Status: %s\n\n", rowString(row, "status", "Unknown"))
	}
	return b.String()
}

// yearCountBreakdown renders per-year profile counts, or "" when the rows
// are not year/count pairs.
func yearCountBreakdown(rows []map[string]any, total int) string {
	counts := make(map[int]int64)
	for _, row := range rows {
		year, ok := rowInt(row, "year")
		if !ok {
			continue
		}
		count, ok := rowInt64(row, "count")
		if !ok {
			continue
		}
		counts[year] = count
	}
	if len(counts) == 0 {
		return ""
	}

	if total < len(rows) {
		total = len(rows)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Database Results** (%s records found):\n\n", humanize.Comma(int64(total)))
	b.WriteString("**Profile Counts by Year:**\n\n")

	years := lo.Keys(counts)
	sort.Ints(years)
	var sum int64
	for _, year := range years {
		fmt.Fprintf(&b, "**%d**: %s profiles\n", year, humanize.Comma(counts[year]))
		sum += counts[year]
	}
	fmt.Fprintf(&b, "\n**Total**: %s profiles\n", humanize.Comma(sum))
	return b.String()
}

// aggregateLines labels min/max/avg/count/sum columns, inferring the unit
// from the statement text.
func aggregateLines(row map[string]any, sqlText string) string {
	lowerSQL := strings.ToLower(sqlText)

	var b strings.Builder
	for _, key := range []string{"min", "max", "avg"} {
		v, ok := rowFloat(row, key)
		if !ok {
			continue
		}
		label := strings.ToUpper(key[:1]) + key[1:]
		switch {
		case strings.Contains(lowerSQL, "temperature"):
			fmt.Fprintf(&b, "**%s Temperature**: %.2f°C\n", label, v)
		case strings.Contains(lowerSQL, "salinity"):
			fmt.Fprintf(&b, "**%s Salinity**: %.2f PSU\n", label, v)
		case strings.Contains(lowerSQL, "depth"), strings.Contains(lowerSQL, "pressure"):
			fmt.Fprintf(&b, "**%s Depth**: %.1fm\n", label, v)
		default:
			fmt.Fprintf(&b, "**%s**: %s\n", label, cast.ToString(row[key]))
		}
	}
	if v, ok := row["count"]; ok && v != nil {
		b.WriteString("**Total Count**: " + commaValue(v) + "\n")
	}
	if v, ok := row["sum"]; ok && v != nil {
		b.WriteString("**Total Sum**: " + cast.ToString(v) + "\n")
	}
	return b.String()
}

// latitudeBandLines renders surface and deep temperatures per latitude band.
func latitudeBandLines(rows []map[string]any) string {
	var b strings.Builder
	for _, row := range rows {
		lat, _ := rowFloat(row, "latitude")
		fmt.Fprintf(&b, "**%s**:\n", formatLat(lat))
		if v, ok := rowFloat(row, "surface_temp"); ok {
			fmt.Fprintf(&b, "  - Surface Temperature: %.2f°C\n", v)
		}
		if v, ok := rowFloat(row, "deep_temp"); ok {
			fmt.Fprintf(&b, "  - Deep Temperature: %.2f°C\n", v)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// floatGroupLines organizes rows by float, keeping first-seen order. Each
// row renders as either a located profile or a per-float summary.
func floatGroupLines(rows []map[string]any) string {
	type floatGroup struct {
		id      string
		records []map[string]any
	}
	var groups []*floatGroup
	index := make(map[string]*floatGroup)
	for _, row := range rows {
		id := rowString(row, "float_id", "Unknown")
		g := index[id]
		if g == nil {
			g = &floatGroup{id: id}
			index[id] = g
			groups = append(groups, g)
		}
		g.records = append(g.records, row)
	}

	var b strings.Builder
	shown := groups
	if len(shown) > 20 {
		shown = shown[:20]
	}
	for _, g := range shown {
		fmt.Fprintf(&b, "**Float %s** (%d records):\n", g.id, len(g.records))

		records := g.records
		if len(records) > 5 {
			records = records[:5]
		}
		for i, rec := range records {
			lat, latOK := rowFloat(rec, "latitude")
			lon, lonOK := rowFloat(rec, "longitude")
			if latOK && lonOK {
				fmt.Fprintf(&b, "  %d. %s: %s, %s (%s)", i+1,
					rowString(rec, "profile_id", "Unknown"),
					formatLat(lat), formatLon(lon),
					rowString(rec, "profile_date", "Unknown"))
				if maxPressure, ok := rowFloat(rec, "max_pressure"); ok {
					fmt.Fprintf(&b, " - %.1fm depth", maxPressure)
				}
				b.WriteString("\n")
			} else {
				fmt.Fprintf(&b, "  %d. %s: %s to %s (%s profiles, %s)\n", i+1, g.id,
					rowString(rec, "first_profile_date", "Unknown"),
					rowString(rec, "last_profile_date", "Unknown"),
					rowString(rec, "total_profiles", "Unknown"),
					durationText(rec["operating_duration"]))
			}
		}
		if len(g.records) > 5 {
			fmt.Fprintf(&b, "     ... and %d more records\n", len(g.records)-5)
		}
		b.WriteString("\n")
	}
	if len(groups) > 20 {
		fmt.Fprintf(&b, "... and %d more floats\n", len(groups)-20)
	}
	return b.String()
}

// rowsFromHits flattens vector hit metadata into the row shape the
// formatters expect. Coordinates are carried only when they parse.
func rowsFromHits(hits []models.VectorHit) []map[string]any {
	rows := make([]map[string]any, 0, len(hits))
	for _, h := range hits {
		row := map[string]any{
			"float_id":     metaOr(h.Metadata, "float_id", "Unknown"),
			"profile_id":   metaOr(h.Metadata, "profile_id", "Unknown"),
			"profile_date": metaOr(h.Metadata, "date", "Unknown"),
		}
		if f, err := cast.ToFloat64E(h.Metadata["latitude"]); err == nil {
			row["latitude"] = f
		}
		if f, err := cast.ToFloat64E(h.Metadata["longitude"]); err == nil {
			row["longitude"] = f
		}
		rows = append(rows, row)
	}
	return rows
}

func metaOr(meta map[string]string, key, fallback string) string {
	if v := meta[key]; v != "" {
		return v
	}
	return fallback
}

// formatLat renders a latitude as an absolute value with hemisphere suffix.
func formatLat(lat float64) string {
	hemi := "N"
	if lat < 0 {
		hemi = "S"
	}
	return fmt.Sprintf("%.3f°%s", math.Abs(lat), hemi)
}

// formatLon renders a longitude as an absolute value with hemisphere suffix.
func formatLon(lon float64) string {
	hemi := "E"
	if lon < 0 {
		hemi = "W"
	}
	return fmt.Sprintf("%.3f°%s", math.Abs(lon), hemi)
}

// durationText renders an operating duration in days as years plus days.
func durationText(v any) string {
	if v == nil {
		return "Unknown"
	}
	days, err := cast.ToInt64E(v)
	if err != nil {
		return cast.ToString(v)
	}
	years := days / 365
	remaining := days % 365
	if years > 0 {
		return fmt.Sprintf("%d years, %d days", years, remaining)
	}
	return fmt.Sprintf("%d days", days)
}

// commaValue renders a numeric value with thousands separators.
func commaValue(v any) string {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return humanize.Comma(cast.ToInt64(v))
	case float32, float64:
		return humanize.Commaf(cast.ToFloat64(v))
	default:
		return cast.ToString(v)
	}
}

func rowFloat(row map[string]any, key string) (float64, bool) {
	v, ok := row[key]
	if !ok || v == nil {
		return 0, false
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, false
	}
	return f, true
}

func rowInt(row map[string]any, key string) (int, bool) {
	v, ok := row[key]
	if !ok || v == nil {
		return 0, false
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func rowInt64(row map[string]any, key string) (int64, bool) {
	v, ok := row[key]
	if !ok || v == nil {
		return 0, false
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func rowString(row map[string]any, key, fallback string) string {
	v, ok := row[key]
	if !ok || v == nil {
		return fallback
	}
	if s := cast.ToString(v); s != "" {
		return s
	}
	return fallback
}

func hasKey(row map[string]any, key string) bool {
	_, ok := row[key]
	return ok
}

func hasAnyKey(row map[string]any, keys ...string) bool {
	for _, k := range keys {
		if hasKey(row, k) {
			return true
		}
	}
	return false
}
