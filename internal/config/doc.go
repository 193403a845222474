// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

/*
Package config provides centralized configuration management for FloatQuery.

This package handles loading, validation, and parsing of configuration for all
application components. It ensures consistent configuration across the query
pipeline and provides sensible defaults for optional settings.

# Configuration Sources

Configuration is loaded in layers (later layers override earlier ones):

  - Built-in defaults (defaultConfig)
  - Optional YAML config file (config.yaml, or CONFIG_PATH)
  - FLOATQUERY_*-prefixed environment variables

# Configuration Structure

The package organizes configuration into logical groups:

  - ServerConfig: HTTP server settings (host, port, timeout, environment)
  - DatabaseConfig: DuckDB relational store tuning
  - VectorConfig: Qdrant vector store and embedding endpoint
  - LLMConfig: Two-provider language model gateway
  - EventsConfig: Query lifecycle bus (embedded NATS JetStream)
  - HistoryConfig: Badger-backed recent-query journal
  - CacheConfig: TTLs for read-mostly endpoints
  - APIConfig: Result caps, rate limits, CORS
  - LoggingConfig: Log level and output format

# Environment Variables

Key variables by component (all prefixed with FLOATQUERY_):

HTTP Server:
  - FLOATQUERY_SERVER_HOST: Bind address (default: 0.0.0.0)
  - FLOATQUERY_SERVER_PORT: Listen port (default: 8000)
  - FLOATQUERY_SERVER_TIMEOUT: Read/write timeout (default: 30s)

Database:
  - FLOATQUERY_DUCKDB_PATH: Database file path (default: /data/floatquery.duckdb)
  - FLOATQUERY_DUCKDB_THREADS: Thread count (default: CPU count)
  - FLOATQUERY_DUCKDB_MAX_MEMORY: Memory limit (default: 2GB)

Vector store:
  - FLOATQUERY_QDRANT_HOST / FLOATQUERY_QDRANT_PORT: Qdrant gRPC endpoint
  - FLOATQUERY_QDRANT_COLLECTION: Collection name (default: argo_summaries)
  - FLOATQUERY_EMBEDDINGS_BASE_URL / _API_KEY / _MODEL: Embedding endpoint

LLM gateway:
  - FLOATQUERY_LLM_BASE_URL / _API_KEY: OpenAI-compatible primary provider
  - FLOATQUERY_LLM_TEXT_MODEL / _CODE_MODEL: Model names for prose and code
  - FLOATQUERY_ANTHROPIC_API_KEY / _MODEL: Secondary provider
  - FLOATQUERY_LLM_TIMEOUT: Per-call deadline (default: 60s)

Events and history:
  - FLOATQUERY_EVENTS_ENABLED: Lifecycle event bus toggle (default: true)
  - FLOATQUERY_NATS_STORE_DIR: JetStream storage directory
  - FLOATQUERY_HISTORY_PATH: Query journal directory
  - FLOATQUERY_HISTORY_TTL: Journal entry lifetime (default: 168h)

# Usage Example

Basic configuration loading:

	import "github.com/tomtom215/floatquery/internal/config"

	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
	    log.Fatalf("Failed to load config: %v", err)
	}

	// Access configuration values
	fmt.Printf("Starting server on %s:%d\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("Database: %s\n", cfg.Database.Path)

# Validation

The package performs validation at load time and fails fast:

  - Struct-level range checks via go-playground/validator tags
    (ports 1-65535, positive durations, result caps 1-100)
  - Base URL formats for the LLM and embeddings endpoints
  - Toggle-dependent requirements (Qdrant endpoint when vector search is
    enabled, NATS URL when the embedded server is off)
  - Placeholder detection on API keys (CHANGEME, YOUR_API_KEY, ...)

# Defaults

Sensible defaults are provided for all optional settings. Both LLM API keys
default to empty: the pipeline runs fully degraded to its deterministic paths
(rule classification, template SQL, raw-data answers) without any provider.

# Docker Deployment

For Docker deployments, use environment variables or docker-compose.yml:

	services:
	  floatquery:
	    image: ghcr.io/tomtom215/floatquery:latest
	    environment:
	      FLOATQUERY_DUCKDB_PATH: /data/floatquery.duckdb
	      FLOATQUERY_QDRANT_HOST: qdrant
	      FLOATQUERY_LLM_API_KEY: ${GROQ_API_KEY}
	      FLOATQUERY_ANTHROPIC_API_KEY: ${ANTHROPIC_API_KEY}
	    ports:
	      - "8000:8000"

# Thread Safety

The Config struct is immutable after Load() returns, making it safe for
concurrent access from multiple goroutines without synchronization.
*/
package config
