// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

/*
Package metrics provides Prometheus metrics collection and export for observability.

This package instruments the query pipeline end to end using the Prometheus
client library, exposing metrics for monitoring performance, errors, and
system health.

# Overview

The package provides metrics for:
  - Pipeline query resolution (per query type and generation method)
  - Database query performance (DuckDB)
  - Vector store search performance (Qdrant)
  - LLM gateway calls, provider fallbacks, and circuit breaker state
  - API endpoint latency and throughput
  - Cache hit/miss rates
  - Event bus throughput and WebSocket connection counts

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

Pipeline Metrics:
  - query_pipeline_duration_seconds: End-to-end resolution time (histogram)
    Labels: query_type, method
  - query_pipeline_requests_total: Queries resolved (counter)
    Labels: query_type, method, status
  - query_classification_confidence: Classification confidence (histogram)
    Labels: query_type
  - query_retrieval_rows: Records per retrieval source (histogram)
    Labels: source (sql, vector)

Database Metrics:
  - duckdb_query_duration_seconds: Query execution time (histogram)
    Labels: operation, table
  - duckdb_query_errors_total: Failed queries (counter)
    Labels: operation, table, error_type
  - duckdb_connection_pool_size: Connections in use (gauge)

Vector Store Metrics:
  - qdrant_search_duration_seconds: Search execution time (histogram)
    Labels: operation (search, count, health)
  - qdrant_search_errors_total: Failed searches (counter)
    Labels: operation

LLM Gateway Metrics:
  - llm_request_duration_seconds: Provider call latency (histogram)
    Labels: provider
  - llm_requests_total: Provider calls (counter)
    Labels: provider, outcome
  - llm_fallbacks_total: Completions served by a non-preferred provider (counter)
  - circuit_breaker_state: Breaker state per provider (gauge)
    Values: 0=closed, 1=half-open, 2=open
  - circuit_breaker_state_transitions_total: Breaker transitions (counter)
    Labels: name, from_state, to_state

# Usage Example

Recording a pipeline invocation:

	start := time.Now()
	result, err := pipe.Process(ctx, query, maxResults)
	metrics.RecordQuery(string(result.Classification.Type),
	    result.Retrieved.Method, time.Since(start), err)

Recording database query metrics:

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, sql, args...)
	metrics.RecordDBQuery("SELECT", "argo_profiles", time.Since(start), err)

# Prometheus Configuration

Example prometheus.yml configuration:

	scrape_configs:
	  - job_name: 'floatquery'
	    static_configs:
	      - targets: ['localhost:8080']
	    metrics_path: '/metrics'
	    scrape_interval: 15s

Example PromQL queries:

	# Query rate by type
	rate(query_pipeline_requests_total[5m])

	# Pipeline p95 latency
	histogram_quantile(0.95, rate(query_pipeline_duration_seconds_bucket[5m]))

	# LLM fallback ratio
	rate(llm_fallbacks_total[5m]) / rate(llm_requests_total[5m])

	# Cache hit rate
	sum(rate(cache_hits_total[5m])) / (sum(rate(cache_hits_total[5m])) + sum(rate(cache_misses_total[5m])))
*/
package metrics
