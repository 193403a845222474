// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

/*
Package middleware provides per-handler HTTP middleware.

Three components wrap the query and metadata endpoints:

  - RequestID: UUID request tracking, echoed in X-Request-ID and attached
    to the logging context
  - PrometheusMetrics: request counts, latency histograms, and an
    in-flight gauge per method/path/status
  - Compression: pooled gzip for JSON and GeoJSON responses

Router-level concerns (CORS, rate limiting, panic recovery) live in the
chi middleware stack in internal/api; this package holds the pieces that
wrap individual http.HandlerFunc values.

Typical composition, innermost first:

	handler = middleware.RequestID(handler)
	handler = middleware.Compression(handler)
	handler = middleware.PrometheusMetrics(handler)

All components are safe for concurrent use.
*/
package middleware
