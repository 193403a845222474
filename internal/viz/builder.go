// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package viz

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cast"

	"github.com/tomtom215/floatquery/internal/llm"
	"github.com/tomtom215/floatquery/internal/logging"
	"github.com/tomtom215/floatquery/internal/models"
)

// SnippetWriter generates plotting code through the model gateway.
// *llm.Gateway satisfies it.
type SnippetWriter interface {
	Complete(ctx context.Context, req llm.Request) (string, error)
}

// Builder assembles visualization payloads. Safe for concurrent use.
type Builder struct {
	writer SnippetWriter
}

// NewBuilder wires the builder's code-generation dependency.
func NewBuilder(writer SnippetWriter) *Builder {
	return &Builder{writer: writer}
}

// point is one plottable row: a coordinate plus the row it came from,
// kept together so marker labels stay aligned with the ordered path.
type point struct {
	lat, lon float64
	row      map[string]any
}

// Build assembles coordinates, GeoJSON, a time series, a plotting
// snippet, and a standalone map document from the retrieved rows. SQL
// rows win over vector hits; hits are flattened through their metadata.
// Failures land in the payload's Err field, never in the caller's error
// path.
func (b *Builder) Build(ctx context.Context, query string, rows []map[string]any, hits []models.VectorHit) (viz *models.Visualization) {
	viz = &models.Visualization{}
	defer func() {
		if r := recover(); r != nil {
			logging.Ctx(ctx).Error().Str("query", query).Interface("panic", r).
				Msg("Visualization build failed")
			*viz = models.Visualization{Err: fmt.Sprint(r)}
		}
	}()

	if len(rows) == 0 {
		rows = rowsFromHits(hits)
	}

	points := plottablePoints(rows)
	coords := make([][2]float64, len(points))
	for i, p := range points {
		coords[i] = [2]float64{p.lat, p.lon}
	}
	viz.Coordinates = coords

	if len(rows) > 0 {
		viz.TimeSeries = timeSeries(rows)
	}
	if len(points) == 0 {
		return viz
	}

	viz.GeoJSON = models.NewLineStringCollection(coords, map[string]any{"name": "ARGO Trajectory"})
	viz.PlotSnippet = b.plotSnippet(ctx, coords)
	viz.MapHTML = mapHTML(points)

	logging.Ctx(ctx).Debug().
		Str("query", query).
		Int("points", len(points)).
		Msg("Visualization payload assembled")
	return viz
}

// plottablePoints filters rows to those with a usable coordinate pair
// and orders them by profile date. Dates are normalized ISO strings, so
// lexicographic order is chronological.
func plottablePoints(rows []map[string]any) []point {
	ordered := make([]map[string]any, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool {
		return rowTime(ordered[i]) < rowTime(ordered[j])
	})

	points := make([]point, 0, len(ordered))
	for _, row := range ordered {
		lat, ok := rowFloat(row, "latitude")
		if !ok {
			continue
		}
		lon, ok := rowFloat(row, "longitude")
		if !ok {
			continue
		}
		points = append(points, point{lat: lat, lon: lon, row: row})
	}
	return points
}

// rowTime is a row's ordering key: profile_date, then profile_time,
// then empty.
func rowTime(row map[string]any) string {
	if v, ok := row["profile_date"]; ok && v != nil {
		return cast.ToString(v)
	}
	if v, ok := row["profile_time"]; ok && v != nil {
		return cast.ToString(v)
	}
	return ""
}

// timeSeries samples every row in retrieval order.
func timeSeries(rows []map[string]any) []models.TimePoint {
	series := make([]models.TimePoint, 0, len(rows))
	for _, row := range rows {
		pt := models.TimePoint{Timestamp: "Unknown"}
		if v, ok := row["profile_date"]; ok && v != nil {
			pt.Timestamp = cast.ToString(v)
		}
		if lat, ok := rowFloat(row, "latitude"); ok {
			pt.Latitude = lat
		}
		if lon, ok := rowFloat(row, "longitude"); ok {
			pt.Longitude = lon
		}
		if v, ok := row["profile_id"]; ok && v != nil {
			pt.ProfileID = cast.ToString(v)
		}
		if v, ok := row["float_id"]; ok && v != nil {
			pt.FloatID = cast.ToString(v)
		}
		series = append(series, pt)
	}
	return series
}

// rowsFromHits flattens vector hits into plottable rows. A hit without a
// parseable coordinate pair in its metadata carries nothing to plot and
// is dropped.
func rowsFromHits(hits []models.VectorHit) []map[string]any {
	rows := make([]map[string]any, 0, len(hits))
	for _, hit := range hits {
		lat, latErr := cast.ToFloat64E(hit.Metadata["latitude"])
		lon, lonErr := cast.ToFloat64E(hit.Metadata["longitude"])
		if latErr != nil || lonErr != nil {
			continue
		}
		row := map[string]any{"latitude": lat, "longitude": lon}
		if v := hit.Metadata["date"]; v != "" {
			row["profile_date"] = v
		}
		if v := hit.Metadata["profile_id"]; v != "" {
			row["profile_id"] = v
		}
		if v := hit.Metadata["float_id"]; v != "" {
			row["float_id"] = v
		}
		rows = append(rows, row)
	}
	return rows
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

func rowString(row map[string]any, key, fallback string) string {
	v, ok := row[key]
	if !ok || v == nil {
		return fallback
	}
	return cast.ToString(v)
}
