// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package sqlgen

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/tomtom215/floatquery/internal/models"
)

// Direct templates cover the query shapes where LLM generation was
// unreliable enough to be worth hardcoding. Order matters: the synthesizer
// tries them in the sequence operating duration, year counts, nearest
// floats, year comparison, geographic rectangle.
var (
	operatingPhrases  = []string{"operating for", "been operating", "operating more than", "operating less than"}
	countPhrases      = []string{"how many", "number of profiles", "profiles in"}
	proximityPhrases  = []string{"nearest", "closest", "near"}
	coordinateMarkers = []string{"°", "degrees", "north", "south", "east", "west"}
	comparisonWords   = []string{"compare", "versus", "vs", "compare between"}
	equatorialTerms   = []string{"equator", "equatorial", "near the equator"}
)

var (
	operatingYearsPattern = regexp.MustCompile(`(\d+)\s*years?`)
	countYearPattern      = regexp.MustCompile(`\b(201[8-9]|202[0-5])\b`)
	anyYearPattern        = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
	nearestCoordPattern   = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*°?\s*([NS])\s*,\s*(\d+(?:\.\d+)?)\s*°?\s*([EW])`)
	compactCoordPattern   = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)[°\s]*([NS])\s*,?\s*(\d+(?:\.\d+)?)[°\s]*([EW])`)
	spelledCoordPattern   = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*degrees?\s*(north|south|[NS])\s*,?\s*(\d+(?:\.\d+)?)\s*degrees?\s*(east|west|[EW])`)
	latitudeMarkerPattern = regexp.MustCompile(`\d+[°\s]*[NS]`)
)

const operatingDurationTemplate = `SELECT float_id,
       MIN(profile_date) as first_profile_date,
       MAX(profile_date) as last_profile_date,
       COUNT(*) as total_profiles,
       (MAX(profile_date) - MIN(profile_date)) as operating_duration
FROM argo_profiles
WHERE profile_date IS NOT NULL
GROUP BY float_id
HAVING EXTRACT(EPOCH FROM AGE(MAX(profile_date), MIN(profile_date))) %s %s
ORDER BY operating_duration DESC
LIMIT 100`

// operatingDurationSQL answers "floats operating for N years" with a
// GROUP BY over the profile date span. Requires an explicit year count;
// without one the query falls through to the other generators.
func operatingDurationSQL(query string) (models.GeneratedSQL, bool) {
	lower := strings.ToLower(query)
	if !containsAny(lower, operatingPhrases) {
		return models.GeneratedSQL{}, false
	}
	m := operatingYearsPattern.FindStringSubmatch(lower)
	if m == nil {
		return models.GeneratedSQL{}, false
	}
	years, err := strconv.Atoi(m[1])
	if err != nil {
		return models.GeneratedSQL{}, false
	}

	cmp := ">="
	switch {
	case strings.Contains(lower, "more than") || strings.Contains(lower, "over"):
		cmp = ">"
	case strings.Contains(lower, "less than") || strings.Contains(lower, "under"):
		cmp = "<"
	}
	seconds := float64(years) * 365.25 * 24 * 3600

	return models.GeneratedSQL{
		Query:            fmt.Sprintf(operatingDurationTemplate, cmp, num(seconds)),
		Explanation:      fmt.Sprintf("Floats operating %s %d years based on profile data", cmp, years),
		EstimatedResults: fmt.Sprintf("Floats with operating duration %s %d years", cmp, years),
		ParametersUsed:   []string{"profile_date"},
		Method:           models.MethodOperatingDuration,
	}, true
}

const yearCountTemplate = `SELECT EXTRACT(YEAR FROM profile_date) as year,
       COUNT(*) as count
FROM argo_profiles
WHERE profile_date IS NOT NULL
  AND EXTRACT(YEAR FROM profile_date) IN (%s)
GROUP BY EXTRACT(YEAR FROM profile_date)
ORDER BY year`

// yearCountSQL answers "how many profiles in 2023" style questions with a
// per-year GROUP BY. Only years in the archive window 2018-2025 trigger it.
func yearCountSQL(query string) (models.GeneratedSQL, bool) {
	lower := strings.ToLower(query)
	if !containsAny(lower, countPhrases) {
		return models.GeneratedSQL{}, false
	}
	years := countYearPattern.FindAllString(query, -1)
	if len(years) == 0 {
		return models.GeneratedSQL{}, false
	}
	yearsClause := strings.Join(years, ", ")

	return models.GeneratedSQL{
		Query:            fmt.Sprintf(yearCountTemplate, yearsClause),
		Explanation:      "Year-by-year profile counts for years: " + yearsClause,
		EstimatedResults: fmt.Sprintf("Profile counts for %d years", len(years)),
		ParametersUsed:   []string{"profile_date"},
		Method:           models.MethodYearCount,
	}, true
}

const nearestFloatsTemplate = `SELECT DISTINCT
    p.float_id,
    p.latitude,
    p.longitude,
    p.profile_date,
    f.status,
    f.float_type,
    f.institution,
    MIN(6371 * acos(
        cos(radians(%[1]s)) * cos(radians(p.latitude)) *
        cos(radians(p.longitude) - radians(%[2]s)) +
        sin(radians(%[1]s)) * sin(radians(p.latitude))
    )) AS distance_km
FROM argo_profiles p
LEFT JOIN argo_floats f ON p.float_id = f.float_id
WHERE p.latitude IS NOT NULL
  AND p.longitude IS NOT NULL
  AND (6371 * acos(
        cos(radians(%[1]s)) * cos(radians(p.latitude)) *
        cos(radians(p.longitude) - radians(%[2]s)) +
        sin(radians(%[1]s)) * sin(radians(p.latitude))
      )) <= 500
GROUP BY p.float_id, p.latitude, p.longitude, p.profile_date, f.status, f.float_type, f.institution
ORDER BY distance_km ASC
LIMIT 10`

// nearestFloatsSQL ranks floats by Haversine distance from an explicit
// coordinate, capped at a 500km radius and ten results.
func nearestFloatsSQL(query string) (models.GeneratedSQL, bool) {
	lower := strings.ToLower(query)
	if !containsAny(lower, proximityPhrases) || !containsAny(lower, coordinateMarkers) {
		return models.GeneratedSQL{}, false
	}
	m := nearestCoordPattern.FindStringSubmatch(query)
	if m == nil {
		return models.GeneratedSQL{}, false
	}
	lat := signedCoord(m[1], m[2], 'N')
	lon := signedCoord(m[3], m[4], 'E')

	return models.GeneratedSQL{
		Query:            fmt.Sprintf(nearestFloatsTemplate, num(lat), num(lon)),
		Explanation:      fmt.Sprintf("Found nearest ARGO floats to coordinates %s°N, %s°E using distance calculation", num(lat), num(lon)),
		EstimatedResults: "Up to 10 closest floats within 500km",
		ParametersUsed:   []string{"latitude", "longitude"},
		Method:           models.MethodNearestFloats,
	}, true
}

const yearComparisonSelect = `(SELECT
    EXTRACT(YEAR FROM profile_date) AS year,
    profile_id,
    float_id,
    latitude,
    longitude,
    profile_date,
    temperature[1] AS surface_temperature,
    salinity[1] AS surface_salinity,
    pressure[1] AS surface_pressure
FROM argo_profiles
WHERE EXTRACT(YEAR FROM profile_date) = %d%s
  AND temperature IS NOT NULL
  AND salinity IS NOT NULL
ORDER BY profile_date DESC
)`

// yearComparisonSQL builds a UNION ALL of surface measurements for the two
// years being compared, newest first. Mentions of the equator narrow the
// band to latitude -5..5.
func yearComparisonSQL(query string) (models.GeneratedSQL, bool) {
	lower := strings.ToLower(query)
	years := uniqueYears(anyYearPattern.FindAllString(query, -1))
	if len(years) < 2 || !containsAny(lower, comparisonWords) {
		return models.GeneratedSQL{}, false
	}
	older, newer := years[0], years[1]

	filter := ""
	if containsAny(lower, equatorialTerms) {
		filter = "\n  AND latitude BETWEEN -5 AND 5"
	}

	stmt := fmt.Sprintf(yearComparisonSelect, newer, filter) +
		"\nUNION ALL\n" +
		fmt.Sprintf(yearComparisonSelect, older, filter) +
		"\nORDER BY year DESC, profile_date DESC"

	return models.GeneratedSQL{
		Query:            stmt,
		Explanation:      fmt.Sprintf("Yearly comparison with oceanographic data for years: %d, %d", older, newer),
		EstimatedResults: "Profile data for requested years with surface measurements",
		ParametersUsed:   []string{"profile_date", "temperature", "salinity"},
		Method:           models.MethodYearComparison,
	}, true
}

const geographicTemplate = `SELECT * FROM argo_profiles
WHERE latitude BETWEEN %s AND %s
AND longitude BETWEEN %s AND %s
ORDER BY profile_date DESC
LIMIT 100`

// geographicSQL answers bare coordinate mentions with a one-degree
// rectangle around the point, newest profiles first.
func geographicSQL(query string) (models.GeneratedSQL, bool) {
	m := compactCoordPattern.FindStringSubmatch(query)
	if m == nil {
		m = spelledCoordPattern.FindStringSubmatch(query)
	}
	if m == nil {
		return models.GeneratedSQL{}, false
	}
	lat := signedCoord(m[1], m[2], 'N')
	lon := signedCoord(m[3], m[4], 'E')

	return models.GeneratedSQL{
		Query:            fmt.Sprintf(geographicTemplate, num(lat-1), num(lat+1), num(lon-1), num(lon+1)),
		Explanation:      fmt.Sprintf("Geographic query for profiles near %s°N, %s°E", num(lat), num(lon)),
		EstimatedResults: "Up to 100 profiles in geographic area",
		ParametersUsed:   []string{"latitude", "longitude"},
		Method:           models.MethodGeographic,
	}, true
}

func containsAny(lower string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(lower, n) {
			return true
		}
	}
	return false
}

// signedCoord converts a magnitude plus hemisphere word or letter into a
// signed decimal degree. Anything other than the positive hemisphere
// negates, matching N/E positive map conventions.
func signedCoord(value, dir string, positive byte) float64 {
	v, _ := strconv.ParseFloat(value, 64)
	d := strings.ToUpper(dir)
	if d == "" || d[0] != positive {
		return -v
	}
	return v
}

func uniqueYears(matches []string) []int {
	seen := make(map[int]struct{}, len(matches))
	var years []int
	for _, m := range matches {
		y, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// num renders a coordinate or threshold without trailing zeros so the SQL
// stays readable.
func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
