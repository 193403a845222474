// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package catalog

import (
	"regexp"
	"strings"
)

// Parameter maps the ways users name an oceanographic measurement to the
// column that stores it.
type Parameter struct {
	// Name is the canonical entity name, e.g. "dissolved_oxygen".
	Name string
	// Column is the argo_profiles array column, empty when the parameter
	// is an umbrella term with no single column (bgc).
	Column string
	// Unit is the measurement unit used when formatting values.
	Unit    string
	pattern *regexp.Regexp
}

// Matches reports whether the query mentions this parameter under any of
// its aliases. Matching is an unanchored substring search, so "temp"
// matches inside "temperature" and "attempts" alike.
func (p Parameter) Matches(query string) bool {
	return p.pattern.MatchString(strings.ToLower(query))
}

var parameters = []Parameter{
	{Name: "temperature", Column: "temperature", Unit: "°C",
		pattern: regexp.MustCompile(`temperature|temp|thermal`)},
	{Name: "salinity", Column: "salinity", Unit: "PSU",
		pattern: regexp.MustCompile(`salinity|salt|halocline`)},
	{Name: "dissolved_oxygen", Column: "dissolved_oxygen", Unit: "μmol/kg",
		pattern: regexp.MustCompile(`dissolved\s+oxygen|oxygen|o2|do`)},
	{Name: "ph", Column: "ph_in_situ", Unit: "",
		pattern: regexp.MustCompile(`ph|acidity|alkalinity`)},
	{Name: "nitrate", Column: "nitrate", Unit: "μmol/kg",
		pattern: regexp.MustCompile(`nitrate|nitrogen|no3`)},
	{Name: "chlorophyll", Column: "chlorophyll_a", Unit: "mg/m³",
		pattern: regexp.MustCompile(`chlorophyll|chl|phytoplankton|algae`)},
	{Name: "pressure", Column: "pressure", Unit: "dbar",
		pattern: regexp.MustCompile(`pressure|depth|deep`)},
	{Name: "bgc", Column: "", Unit: "",
		pattern: regexp.MustCompile(`bgc|biogeochemical|biochemical|bio`)},
}

// Parameters returns the full parameter vocabulary in match order. The
// returned slice is shared; treat it as read-only.
func Parameters() []Parameter {
	return parameters
}

// MatchParameters returns the canonical names of every parameter the query
// mentions, in vocabulary order.
func MatchParameters(query string) []string {
	q := strings.ToLower(query)
	var out []string
	for _, p := range parameters {
		if p.pattern.MatchString(q) {
			out = append(out, p.Name)
		}
	}
	return out
}

// ParameterByName looks a parameter up by its canonical name.
func ParameterByName(name string) (Parameter, bool) {
	for _, p := range parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}
