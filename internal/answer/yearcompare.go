// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package answer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/tomtom215/floatquery/internal/database"
	"github.com/tomtom215/floatquery/internal/logging"
	"github.com/tomtom215/floatquery/internal/models"
)

var (
	comparisonCues = []string{"compare", "versus", "vs", "between", "comparison", "compared"}
	equatorialCues = []string{"equator", "equatorial", "near the equator"}
)

// isYearComparison reports whether the retrieval used the year comparison
// path and the query phrasing actually asks for one.
func isYearComparison(query string, data models.RetrievedData) bool {
	if data.Method != models.MethodYearComparison {
		return false
	}
	if !containsAny(strings.ToLower(query), comparisonCues) {
		return false
	}
	for _, row := range data.SQLRows {
		if _, ok := row["year"]; ok {
			return true
		}
	}
	return false
}

// yearSample holds the per-year slice of the retrieved rows. Ranges and
// geographic coverage come from here; counts and means prefer the
// full-population numbers from the store when it answers.
type yearSample struct {
	rows                    int
	temps, sals, lats, lons []float64
}

func collectYearSamples(rows []map[string]any) map[int]*yearSample {
	samples := make(map[int]*yearSample)
	for _, row := range rows {
		year, ok := rowInt(row, "year")
		if !ok || year <= 0 {
			continue
		}
		smp := samples[year]
		if smp == nil {
			smp = &yearSample{}
			samples[year] = smp
		}
		smp.rows++
		if v, ok := rowFloat(row, "surface_temperature"); ok {
			smp.temps = append(smp.temps, v)
		}
		if v, ok := rowFloat(row, "surface_salinity"); ok {
			smp.sals = append(smp.sals, v)
		}
		if v, ok := rowFloat(row, "latitude"); ok {
			smp.lats = append(smp.lats, v)
		}
		if v, ok := rowFloat(row, "longitude"); ok {
			smp.lons = append(smp.lons, v)
		}
	}
	return samples
}

// yearComparison renders a deterministic side-by-side of ocean conditions
// for the years present in the rows.
func (s *Shaper) yearComparison(ctx context.Context, query string, rows []map[string]any) string {
	samples := collectYearSamples(rows)
	if len(samples) == 0 {
		return "No data available for year comparison."
	}

	years := lo.Keys(samples)
	sort.Ints(years)
	if len(years) < 2 {
		return fmt.Sprintf("Found data for %d only. Need data from at least two different years for comparison.", years[0])
	}

	conditions := s.yearConditions(ctx, query, years)

	type yearStats struct {
		count           int
		avgTemp, avgSal float64
		hasTemp, hasSal bool
	}
	stats := make(map[int]yearStats, len(years))

	parts := []string{"**Ocean Conditions Comparison**", ""}
	for _, year := range years {
		smp := samples[year]
		cond, hasCond := conditions[year]

		st := yearStats{count: smp.rows}
		if hasCond {
			st.count = cond.ProfileCount
		}

		parts = append(parts, fmt.Sprintf("**%d:**", year), fmt.Sprintf("- Profiles: %d", st.count))

		if len(smp.temps) > 0 {
			st.avgTemp, st.hasTemp = sampleMean(smp.temps), true
			if hasCond && cond.AvgTemp != nil {
				st.avgTemp = *cond.AvgTemp
			}
			parts = append(parts, fmt.Sprintf("- Surface Temperature: %.1f°C (range: %.1f-%.1f°C)",
				st.avgTemp, lo.Min(smp.temps), lo.Max(smp.temps)))
		}
		if len(smp.sals) > 0 {
			st.avgSal, st.hasSal = sampleMean(smp.sals), true
			if hasCond && cond.AvgSalinity != nil {
				st.avgSal = *cond.AvgSalinity
			}
			parts = append(parts, fmt.Sprintf("- Surface Salinity: %.1f PSU (range: %.1f-%.1f PSU)",
				st.avgSal, lo.Min(smp.sals), lo.Max(smp.sals)))
		}
		if len(smp.lats) > 0 && len(smp.lons) > 0 {
			parts = append(parts, fmt.Sprintf("- Geographic Coverage: %.1f to %.1f°N/S, %.1f to %.1f°E/W",
				lo.Min(smp.lats), lo.Max(smp.lats), lo.Min(smp.lons), lo.Max(smp.lons)))
		}
		parts = append(parts, "")

		stats[year] = st
	}

	if len(years) == 2 {
		older, newer := years[0], years[1]
		st1, st2 := stats[older], stats[newer]

		parts = append(parts, "**Comparison Summary:**")
		if st1.hasTemp && st2.hasTemp {
			diff := st2.avgTemp - st1.avgTemp
			word := "cooler"
			if diff > 0 {
				word = "warmer"
			}
			parts = append(parts, fmt.Sprintf("- Temperature: %d was %+.1f°C %s than %d", newer, diff, word, older))
		}
		if st1.hasSal && st2.hasSal {
			diff := st2.avgSal - st1.avgSal
			word := "fresher"
			if diff > 0 {
				word = "saltier"
			}
			parts = append(parts, fmt.Sprintf("- Salinity: %d was %+.1f PSU %s than %d", newer, diff, word, older))
		}
		parts = append(parts, fmt.Sprintf("- Data Coverage: %d had %d profiles, %d had %d profiles",
			older, st1.count, newer, st2.count))
	}

	return strings.Join(parts, "\n")
}

// yearConditions asks the store for profile counts and surface means across
// the whole population for each year. Nil on failure; callers fall back to
// the sampled rows.
func (s *Shaper) yearConditions(ctx context.Context, query string, years []int) map[int]database.YearConditions {
	equatorial := containsAny(strings.ToLower(query), equatorialCues)
	rows, err := s.store.YearCounts(ctx, years, equatorial)
	if err != nil {
		logging.CtxErr(ctx, err).
			Str("component", "answer").
			Msg("Year conditions lookup failed, using sampled rows")
		return nil
	}
	byYear := make(map[int]database.YearConditions, len(rows))
	for _, row := range rows {
		byYear[row.Year] = row
	}
	return byYear
}

func sampleMean(values []float64) float64 {
	return lo.Sum(values) / float64(len(values))
}
