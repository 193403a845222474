// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package models

import "time"

// QueryType is the retrieval route chosen for a natural-language query.
type QueryType string

const (
	// QueryTypeSQL routes through the SQL synthesizer and the relational store.
	QueryTypeSQL QueryType = "sql_retrieval"

	// QueryTypeVector routes through semantic search on the vector store.
	QueryTypeVector QueryType = "vector_retrieval"

	// QueryTypeHybrid runs both retrievals concurrently and merges.
	QueryTypeHybrid QueryType = "hybrid"
)

// SQL generation method tags. The direct methods mark deterministic templates
// that bypass the LLM; each exists because LLM-generated SQL repeatedly got
// that query shape wrong.
const (
	MethodOperatingDuration = "operating_duration_direct"
	MethodYearCount         = "year_count_direct"
	MethodNearestFloats     = "nearest_floats_direct"
	MethodYearComparison    = "year_comparison_direct"
	MethodGeographic        = "geographic_direct"
	MethodIntelligentLLM    = "intelligent_llm"
	MethodFallback          = "fallback"
)

// Comparator is a numeric comparison extracted from the query text,
// e.g. "> 25" becomes {Operator: ">", Value: 25}.
type Comparator struct {
	Operator string  `json:"operator"`
	Value    float64 `json:"value"`
}

// ExtractedEntities holds everything the entity extractor recognized in a
// query. All sets are best-effort; empty sets are valid. Float and profile
// identifiers are opaque strings and are never parsed as numbers.
type ExtractedEntities struct {
	Parameters  []string     `json:"parameters,omitempty"`
	Regions     []string     `json:"regions,omitempty"`
	DateRanges  []string     `json:"date_ranges,omitempty"`
	FloatIDs    []string     `json:"float_ids,omitempty"`
	ProfileIDs  []string     `json:"profile_ids,omitempty"`
	Comparisons []Comparator `json:"comparisons,omitempty"`
}

// IsEmpty reports whether no entities were extracted at all.
func (e ExtractedEntities) IsEmpty() bool {
	return len(e.Parameters) == 0 && len(e.Regions) == 0 && len(e.DateRanges) == 0 &&
		len(e.FloatIDs) == 0 && len(e.ProfileIDs) == 0 && len(e.Comparisons) == 0
}

// Merge returns the union of two entity sets, preserving first-seen order
// and dropping duplicates.
func (e ExtractedEntities) Merge(other ExtractedEntities) ExtractedEntities {
	return ExtractedEntities{
		Parameters:  mergeUnique(e.Parameters, other.Parameters),
		Regions:     mergeUnique(e.Regions, other.Regions),
		DateRanges:  mergeUnique(e.DateRanges, other.DateRanges),
		FloatIDs:    mergeUnique(e.FloatIDs, other.FloatIDs),
		ProfileIDs:  mergeUnique(e.ProfileIDs, other.ProfileIDs),
		Comparisons: mergeComparators(e.Comparisons, other.Comparisons),
	}
}

func mergeUnique(a, b []string) []string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range a {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	for _, s := range b {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

func mergeComparators(a, b []Comparator) []Comparator {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	type key struct {
		op  string
		val float64
	}
	seen := make(map[key]struct{}, len(a)+len(b))
	out := make([]Comparator, 0, len(a)+len(b))
	for _, c := range append(append([]Comparator{}, a...), b...) {
		k := key{c.Operator, c.Value}
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

// Classification is the routing decision for a query: which retrieval path to
// take, how confident the classifier is, why, and what it extracted.
type Classification struct {
	Type       QueryType         `json:"query_type"`
	Confidence float64           `json:"confidence"`
	Reasoning  string            `json:"reasoning"`
	Entities   ExtractedEntities `json:"entities"`
}

// GeneratedSQL is the SQL synthesizer's output. Err is populated when the
// primary generation failed and Query holds a safe fallback statement.
type GeneratedSQL struct {
	Query            string   `json:"sql_query"`
	Explanation      string   `json:"explanation"`
	EstimatedResults string   `json:"estimated_results"`
	ParametersUsed   []string `json:"parameters_used,omitempty"`
	Method           string   `json:"generation_method"`
	Err              string   `json:"error,omitempty"`
}

// VectorHit is one semantic-search result. Metadata keys consumed by the
// pipeline: float_id, profile_id, latitude, longitude, date. ID is opaque and
// used only for deduplication.
type VectorHit struct {
	ID       string            `json:"id"`
	Document string            `json:"document"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Distance float64           `json:"distance"`
}

// RetrievedData carries everything a retrieval produced. SQLRows maps column
// name to scalar or sequence values exactly as the store returned them; a
// nonempty SQLRows was always produced by a validated statement.
type RetrievedData struct {
	SQLRows        []map[string]any `json:"sql_results,omitempty"`
	VectorHits     []VectorHit      `json:"vector_results,omitempty"`
	SQLText        string           `json:"sql_query,omitempty"`
	Method         string           `json:"generation_method,omitempty"`
	TotalCount     int              `json:"total_count"`
	Stats          *DatabaseStats   `json:"database_stats,omitempty"`
	GeographicNote string           `json:"geographic_note,omitempty"`
}

// IsEmpty reports whether the retrieval produced no grounding data at all.
func (r RetrievedData) IsEmpty() bool {
	return len(r.SQLRows) == 0 && len(r.VectorHits) == 0
}

// TimePoint is one step of a trajectory time series.
type TimePoint struct {
	Timestamp string  `json:"timestamp"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	ProfileID string  `json:"profile_id"`
	FloatID   string  `json:"float_id"`
}

// Visualization is the map/plot payload attached to location-bearing results.
// Coordinates are [lat, lon] pairs sorted by profile date; the GeoJSON
// geometry uses [lon, lat] order per RFC 7946. Err is set when the builder
// failed; a failed build never fails the Result.
type Visualization struct {
	Coordinates [][2]float64              `json:"coordinates,omitempty"`
	GeoJSON     *GeoJSONFeatureCollection `json:"geojson,omitempty"`
	TimeSeries  []TimePoint               `json:"time_series,omitempty"`
	PlotSnippet string                    `json:"plot_snippet,omitempty"`
	MapHTML     string                    `json:"map_html,omitempty"`
	Err         string                    `json:"error,omitempty"`
}

// ResultMetadata summarizes how a query was resolved.
type ResultMetadata struct {
	QueryType   QueryType `json:"query_type"`
	Confidence  float64   `json:"confidence"`
	DataSources []string  `json:"data_sources,omitempty"`
	SQLCount    int       `json:"sql_count"`
	VectorCount int       `json:"vector_count"`
	ElapsedMS   int64     `json:"elapsed_ms"`
	Timestamp   time.Time `json:"timestamp"`
}

// Result is the single output shape of a pipeline invocation. Every
// invocation returns one; callers never see an uncaught error from the core.
type Result struct {
	Success        bool           `json:"success"`
	Query          string         `json:"query"`
	Classification Classification `json:"classification"`
	Retrieved      RetrievedData  `json:"data"`
	Answer         string         `json:"answer"`
	Visualization  *Visualization `json:"visualization,omitempty"`
	Metadata       ResultMetadata `json:"metadata"`
}

// HealthStatus reports reachability of the pipeline's three dependencies.
type HealthStatus struct {
	Database    bool `json:"database"`
	VectorStore bool `json:"vector_db"`
	LLM         bool `json:"llm"`
	Overall     bool `json:"overall"`
}

// DatabaseStats is a snapshot of the relational store used for grounding
// no-data answers and the /stats endpoint.
type DatabaseStats struct {
	TotalFloats   int64    `json:"total_floats"`
	TotalProfiles int64    `json:"total_profiles"`
	EarliestDate  string   `json:"earliest_date,omitempty"`
	LatestDate    string   `json:"latest_date,omitempty"`
	Regions       []string `json:"regions,omitempty"`
}
