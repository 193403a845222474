// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package coverage

import (
	"fmt"
	"strings"

	"github.com/tomtom215/floatquery/internal/catalog"
)

// coverageIntentPhrases mark a query as asking about the data store itself
// rather than the data in it.
var coverageIntentPhrases = []string{
	"what data",
	"data coverage",
	"ocean regions",
	"available data",
	"what oceans",
}

// Validation is the outcome of a coverage check. When Valid is false,
// Message explains which basins are unavailable and what the store covers.
type Validation struct {
	Valid              bool
	UnavailableRegions []string
	Message            string
}

// Validator refuses queries the data store cannot serve. It consults the
// catalog's coverage rectangle: a region mentioned in the query whose
// rectangle is disjoint from coverage makes the query invalid, unless a
// covered region is also mentioned.
type Validator struct{}

// NewValidator returns a stateless validator. Safe for concurrent use.
func NewValidator() *Validator {
	return &Validator{}
}

// IsCoverageQuery reports whether the query is asking what the data store
// contains rather than asking for data.
func (v *Validator) IsCoverageQuery(query string) bool {
	q := strings.ToLower(query)
	for _, phrase := range coverageIntentPhrases {
		if strings.Contains(q, phrase) {
			return true
		}
	}
	return false
}

// Validate checks every region mentioned in the query against the coverage
// rectangle. Queries that mention no region, or at least one covered
// region, pass.
func (v *Validator) Validate(query string) Validation {
	cov := catalog.Coverage()

	var unavailable []string
	var available []string
	for _, r := range catalog.MatchRegions(query) {
		if r.Bounds.Overlaps(cov.Bounds) {
			available = append(available, r.Name)
		} else {
			unavailable = append(unavailable, r.Name)
		}
	}

	q := strings.ToLower(query)
	for _, basin := range catalog.UnsupportedBasins() {
		if strings.Contains(q, basin) {
			unavailable = append(unavailable, basin)
		}
	}

	if len(unavailable) == 0 || len(available) > 0 {
		return Validation{Valid: true}
	}

	return Validation{
		Valid:              false,
		UnavailableRegions: unavailable,
		Message: fmt.Sprintf(
			"Sorry, our ARGO float database does not contain data for the %s. "+
				"Coverage is limited to the %s (latitude %.0f° to %.0f°, longitude %.0f°E to %.0f°E). "+
				"Try asking about the Indian Ocean, Arabian Sea, or Bay of Bengal.",
			humanJoin(unavailable), cov.Label,
			cov.Bounds.LatMin, cov.Bounds.LatMax, cov.Bounds.LonMin, cov.Bounds.LonMax),
	}
}

// Describe returns the coverage summary used to answer coverage-information
// queries. totalProfiles of zero omits the count sentence.
func (v *Validator) Describe(totalProfiles int64) string {
	cov := catalog.Coverage()

	var b strings.Builder
	if totalProfiles > 0 {
		fmt.Fprintf(&b, "Our ARGO float database contains %s profiles from the %s region. ",
			thousands(totalProfiles), cov.Label)
	} else {
		fmt.Fprintf(&b, "Our ARGO float database covers the %s region. ", cov.Label)
	}
	fmt.Fprintf(&b, "Longitude range: %.0f°E to %.0f°E, Latitude range: %.0f°S to %.0f°N. ",
		cov.Bounds.LonMin, cov.Bounds.LonMax, -cov.Bounds.LatMin, cov.Bounds.LatMax)
	b.WriteString("We do not have data for the Atlantic Ocean, Pacific Ocean, Arctic Ocean, or Mediterranean Sea.")
	return b.String()
}

// humanJoin renders a lowercase region list as prose: "a", "a and b",
// "a, b, and c".
func humanJoin(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	}
}

// thousands formats n with comma separators.
func thousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
