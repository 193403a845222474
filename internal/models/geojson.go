// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package models

// GeoJSONGeometry represents a GeoJSON geometry object (RFC 7946).
// Coordinates are [longitude, latitude] pairs; the swap from the pipeline's
// internal [lat, lon] order happens when the geometry is built.
type GeoJSONGeometry struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

// GeoJSONFeature represents a GeoJSON feature with geometry and properties.
type GeoJSONFeature struct {
	Type       string          `json:"type"`
	Geometry   GeoJSONGeometry `json:"geometry"`
	Properties map[string]any  `json:"properties,omitempty"`
}

// GeoJSONFeatureCollection is the top-level GeoJSON container returned by the
// visualization builder and the trajectory endpoint.
type GeoJSONFeatureCollection struct {
	Type     string           `json:"type"`
	Features []GeoJSONFeature `json:"features"`
}

// NewLineStringCollection builds a FeatureCollection holding a single
// LineString from internal [lat, lon] coordinate pairs.
func NewLineStringCollection(coords [][2]float64, properties map[string]any) *GeoJSONFeatureCollection {
	line := make([][]float64, 0, len(coords))
	for _, c := range coords {
		// GeoJSON wants [lon, lat]
		line = append(line, []float64{c[1], c[0]})
	}
	return &GeoJSONFeatureCollection{
		Type: "FeatureCollection",
		Features: []GeoJSONFeature{
			{
				Type: "Feature",
				Geometry: GeoJSONGeometry{
					Type:        "LineString",
					Coordinates: line,
				},
				Properties: properties,
			},
		},
	}
}
