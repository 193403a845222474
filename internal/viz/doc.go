// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

// Package viz assembles the visualization payload for map and trajectory
// queries.
//
// The builder turns retrieved rows into parallel renderings of the same
// path: a date-ordered coordinate list, a GeoJSON LineString feature
// collection, a time series, a Plotly scattergeo script, and a
// self-contained Leaflet document. Rows without a usable coordinate pair
// are dropped; vector hits contribute through their metadata when no SQL
// rows were retrieved. The builder never fails a query: anything that
// goes wrong lands in the payload's Err field.
package viz
