// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package catalog

import "strings"

// Rect is a closed latitude/longitude rectangle. When LonMin > LonMax the
// rectangle wraps across the antimeridian (the Pacific does this).
type Rect struct {
	LatMin float64
	LatMax float64
	LonMin float64
	LonMax float64
}

// Contains reports whether the point lies inside the rectangle, bounds
// inclusive.
func (r Rect) Contains(lat, lon float64) bool {
	if lat < r.LatMin || lat > r.LatMax {
		return false
	}
	if r.LonMin <= r.LonMax {
		return lon >= r.LonMin && lon <= r.LonMax
	}
	return lon >= r.LonMin || lon <= r.LonMax
}

// Overlaps reports whether the two rectangles share interior area.
// Rectangles that only touch at an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	if r.LatMin >= o.LatMax || o.LatMin >= r.LatMax {
		return false
	}
	for _, a := range r.lonSpans() {
		for _, b := range o.lonSpans() {
			if a[0] < b[1] && b[0] < a[1] {
				return true
			}
		}
	}
	return false
}

func (r Rect) lonSpans() [][2]float64 {
	if r.LonMin <= r.LonMax {
		return [][2]float64{{r.LonMin, r.LonMax}}
	}
	return [][2]float64{{r.LonMin, 180}, {-180, r.LonMax}}
}

// Broader is a coarser fallback rectangle used when a tight region filter
// eliminates every hit.
type Broader struct {
	Bounds Rect
	// Name appears in the note attached to broadened results, e.g.
	// "broader Indian Ocean region".
	Name string
}

// Region is a named ocean region with the keyword phrases that identify it
// in a query and the rectangle used to filter results to it.
type Region struct {
	// Name is the canonical lowercase region key, e.g. "bay of bengal".
	Name     string
	Keywords []string
	Bounds   Rect
	// Broad is non-nil for regions that permit a widened second pass.
	Broad *Broader
}

// regions is ordered; the first keyword match wins.
var regions = []Region{
	{
		Name:     "bay of bengal",
		Keywords: []string{"bay of bengal", "bengal", "bengal bay"},
		Bounds:   Rect{LatMin: 5, LatMax: 25, LonMin: 80, LonMax: 100},
		Broad: &Broader{
			Bounds: Rect{LatMin: -10, LatMax: 30, LonMin: 60, LonMax: 120},
			Name:   "broader Indian Ocean region",
		},
	},
	{
		Name:     "arabian sea",
		Keywords: []string{"arabian sea", "arabian", "arabia"},
		Bounds:   Rect{LatMin: 10, LatMax: 30, LonMin: 50, LonMax: 80},
		Broad: &Broader{
			Bounds: Rect{LatMin: 5, LatMax: 35, LonMin: 45, LonMax: 85},
			Name:   "broader Arabian Sea region",
		},
	},
	{
		Name:     "indian ocean",
		Keywords: []string{"indian ocean", "indian"},
		Bounds:   Rect{LatMin: -60, LatMax: 30, LonMin: 20, LonMax: 120},
		Broad: &Broader{
			Bounds: Rect{LatMin: -60, LatMax: 30, LonMin: 20, LonMax: 120},
			Name:   "broader Indian Ocean region",
		},
	},
	{
		Name:     "equatorial",
		Keywords: []string{"equatorial", "equator"},
		Bounds:   Rect{LatMin: -5, LatMax: 5, LonMin: -180, LonMax: 180},
	},
	{
		Name:     "southern ocean",
		Keywords: []string{"southern ocean"},
		Bounds:   Rect{LatMin: -90, LatMax: -60, LonMin: -180, LonMax: 180},
	},
	{
		Name:     "pacific ocean",
		Keywords: []string{"pacific ocean", "pacific"},
		Bounds:   Rect{LatMin: -60, LatMax: 60, LonMin: 120, LonMax: -120},
	},
	{
		Name:     "atlantic ocean",
		Keywords: []string{"atlantic ocean", "atlantic"},
		Bounds:   Rect{LatMin: -60, LatMax: 60, LonMin: -80, LonMax: 20},
	},
	{
		Name:     "mediterranean sea",
		Keywords: []string{"mediterranean", "mediterranean sea"},
		Bounds:   Rect{LatMin: 30, LatMax: 45, LonMin: -5, LonMax: 40},
	},
}

// Regions returns every ocean region the catalog knows, in match-priority
// order. The returned slice is shared; treat it as read-only.
func Regions() []Region {
	return regions
}

// MatchRegion returns the first region whose keyword appears as a substring
// of the query.
func MatchRegion(query string) (Region, bool) {
	q := strings.ToLower(query)
	for _, r := range regions {
		for _, kw := range r.Keywords {
			if strings.Contains(q, kw) {
				return r, true
			}
		}
	}
	return Region{}, false
}

// MatchRegions returns every region mentioned in the query, in catalog order.
func MatchRegions(query string) []Region {
	q := strings.ToLower(query)
	var out []Region
	for _, r := range regions {
		for _, kw := range r.Keywords {
			if strings.Contains(q, kw) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// BroaderFor returns the widened rectangle for a region named verbatim in
// the query, if one exists. Broadening keys on the canonical region name,
// not the full keyword list, so "bengal" alone does not broaden.
func BroaderFor(query string) (Broader, bool) {
	q := strings.ToLower(query)
	for _, r := range regions {
		if r.Broad != nil && strings.Contains(q, r.Name) {
			return *r.Broad, true
		}
	}
	return Broader{}, false
}

// CoverageArea describes the single contiguous rectangle the data store
// actually holds profiles for.
type CoverageArea struct {
	Label  string
	Bounds Rect
}

var coverage = CoverageArea{
	Label:  "Indian Ocean",
	Bounds: Rect{LatMin: -60, LatMax: 30, LonMin: 20, LonMax: 120},
}

// Coverage returns the data store's geographic coverage envelope.
func Coverage() CoverageArea {
	return coverage
}

// unsupportedBasins are ocean areas with no catalog rectangle that the
// coverage validator still needs to recognize and refuse.
var unsupportedBasins = []string{
	"arctic",
	"caribbean",
	"gulf of mexico",
	"north sea",
	"baltic",
}

// UnsupportedBasins returns keyword phrases for ocean areas known to be
// outside coverage that have no Region entry.
func UnsupportedBasins() []string {
	return unsupportedBasins
}
