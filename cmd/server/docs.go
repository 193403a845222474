// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

// Package main provides the FloatQuery HTTP server
//
// FloatQuery answers natural-language questions about ARGO ocean float
// observations in the Indian Ocean.
//
// @title FloatQuery API
// @version 1.0
// @description Conversational query pipeline over ARGO ocean float data
// @description
// @description ## Features
// @description
// @description - **Natural-language queries**: Classified and routed to SQL and/or semantic retrieval
// @description - **DuckDB store**: Floats, profiles and per-depth measurements
// @description - **Semantic search**: Qdrant-backed retrieval over profile summaries
// @description - **Visualizations**: GeoJSON trajectories, map and chart payloads
// @description - **Real-time Updates**: WebSocket feed of query lifecycle events
// @description
// @description ## Rate Limiting
// @description
// @description POST /api/v1/query is limited per IP per minute (default: 30).
// @description Read endpoints and health checks have separate, more permissive limits.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "status": "error",
// @description   "data": null,
// @description   "error": {
// @description     "code": "ERROR_CODE",
// @description     "message": "Human-readable error message",
// @description     "details": {}
// @description   },
// @description   "metadata": {
// @description     "timestamp": "2026-08-26T12:34:56Z"
// @description   }
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/floatquery/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Query
// @tag.description Natural-language query execution
//
// @tag.name Core
// @tag.description Health checks, dataset statistics and coverage
//
// @tag.name Realtime
// @tag.description WebSocket feed of query events and stats updates
package main
