// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

/*
Package api provides the HTTP surface over the query pipeline.

# Endpoints

	POST /api/v1/query                           run a natural-language query
	GET  /api/v1/health                          dependency health
	GET  /api/v1/health/live                     liveness probe
	GET  /api/v1/health/ready                    readiness probe
	GET  /api/v1/coverage                        data holdings description
	GET  /api/v1/stats                           dataset statistics
	GET  /api/v1/history?limit=                  recent query journal
	GET  /api/v1/floats/{float_id}/trajectory    GeoJSON LineString for one float
	GET  /api/v1/ws                              live dashboard WebSocket
	GET  /metrics                                Prometheus
	GET  /swagger/*                              OpenAPI UI

All JSON endpoints use the models.APIResponse envelope; errors carry a
machine-readable code (VALIDATION_ERROR, PIPELINE_ERROR, DATABASE_ERROR,
NOT_FOUND, INTERNAL_ERROR). Cacheable GETs get an FNV-1a ETag and a
Cache-Control header.

# Middleware

The chi stack, outermost first: request ID with logging context, RealIP,
Recoverer, CORS (go-chi/cors), gzip compression. Per-route groups add
go-chi/httprate limits (query 30/min per IP, health 1000/min), Prometheus
HTTP metrics, and security headers.

Coverage and stats responses are served through named TTL caches; the
handlers read through them so a dashboard poll never touches DuckDB more
than once per TTL window.
*/
package api
