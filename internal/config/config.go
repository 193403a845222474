// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package config

import "time"

// Config holds all application configuration loaded from environment variables
// and an optional config file.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via FLOATQUERY_* variables
//
// Configuration Categories:
//
//  1. Stores:
//     - Database: DuckDB relational store (ARGO floats and profiles)
//     - Vector: Qdrant vector store + embedding endpoint for semantic search
//     - History: Badger-backed journal of recent queries
//
//  2. Inference:
//     - LLM: Two chat providers (OpenAI-compatible primary, Anthropic
//     secondary), routing thresholds, rate limits, circuit breaker
//
//  3. Service surface:
//     - Server: HTTP listener (port, host, timeout)
//     - API: result caps, per-endpoint rate limits, CORS
//     - Events: query lifecycle bus (embedded NATS JetStream)
//     - Cache: TTLs for read-mostly endpoints
//
//  4. Observability:
//     - Logging: Log levels and output formats
//
// Example - Load configuration from environment:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	// cfg.Database.Path, cfg.LLM.TextModel, etc. are now populated
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access from
// multiple goroutines.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Vector   VectorConfig   `koanf:"vector"`
	LLM      LLMConfig      `koanf:"llm"`
	Events   EventsConfig   `koanf:"events"`
	History  HistoryConfig  `koanf:"history"`
	Cache    CacheConfig    `koanf:"cache"`
	API      APIConfig      `koanf:"api"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - FLOATQUERY_SERVER_PORT: Listen port (default: 8000)
//   - FLOATQUERY_SERVER_HOST: Bind address (default: 0.0.0.0)
//   - FLOATQUERY_SERVER_TIMEOUT: Read/write timeout (default: 30s)
//   - FLOATQUERY_ENVIRONMENT: development, staging or production
type ServerConfig struct {
	Port        int           `koanf:"port" validate:"min=1,max=65535"`
	Host        string        `koanf:"host" validate:"required"`
	Timeout     time.Duration `koanf:"timeout" validate:"gt=0"`
	Environment string        `koanf:"environment" validate:"oneof=development staging production"`
}

// DatabaseConfig holds DuckDB settings for the relational ARGO store.
//
// Environment Variables:
//   - FLOATQUERY_DUCKDB_PATH: Database file path (default: /data/floatquery.duckdb)
//   - FLOATQUERY_DUCKDB_MAX_MEMORY: DuckDB memory limit (default: 2GB)
//   - FLOATQUERY_DUCKDB_THREADS: DuckDB threads, 0 = NumCPU (default: 0)
//   - FLOATQUERY_SEED_SAMPLE_DATA: Seed demo floats/profiles on startup
type DatabaseConfig struct {
	Path                   string `koanf:"path" validate:"required"`
	MaxMemory              string `koanf:"max_memory"`
	Threads                int    `koanf:"threads" validate:"min=0"`                // Number of DuckDB threads (0 = use NumCPU)
	PreserveInsertionOrder bool   `koanf:"preserve_insertion_order"`                // Whether to preserve insertion order (default true)
	SeedSampleData         bool   `koanf:"seed_sample_data"`                        // Seed a small demo dataset when the store is empty
}

// VectorConfig holds Qdrant connection settings plus the embedding endpoint
// used to turn query text into vectors. When disabled, the pipeline runs
// SQL-only and vector paths degrade to empty results.
//
// Environment Variables:
//   - FLOATQUERY_VECTOR_ENABLED: Enable semantic search (default: true)
//   - FLOATQUERY_QDRANT_HOST / _PORT / _API_KEY / _USE_TLS
//   - FLOATQUERY_QDRANT_COLLECTION: Collection name (default: argo_summaries)
//   - FLOATQUERY_EMBEDDINGS_BASE_URL / _API_KEY / _MODEL
type VectorConfig struct {
	Enabled    bool             `koanf:"enabled"`
	Host       string           `koanf:"host" validate:"required_if=Enabled true"`
	Port       int              `koanf:"port" validate:"min=0,max=65535"`
	APIKey     string           `koanf:"api_key"`
	UseTLS     bool             `koanf:"use_tls"`
	Collection string           `koanf:"collection" validate:"required_if=Enabled true"`
	Embeddings EmbeddingsConfig `koanf:"embeddings"`
}

// EmbeddingsConfig points at an OpenAI-compatible embeddings endpoint.
type EmbeddingsConfig struct {
	BaseURL string `koanf:"base_url"`
	APIKey  string `koanf:"api_key"`
	Model   string `koanf:"model"`
}

// LLMConfig holds the two-provider language model gateway settings.
// The primary is any OpenAI-compatible chat endpoint (Groq by default);
// the secondary is Anthropic. Empty API keys leave the corresponding
// provider unconfigured and the gateway degrades to whichever remains.
//
// Environment Variables:
//   - FLOATQUERY_LLM_BASE_URL / _API_KEY / _TEXT_MODEL / _CODE_MODEL
//   - FLOATQUERY_ANTHROPIC_API_KEY / _MODEL
//   - FLOATQUERY_LLM_TIMEOUT: Per-call deadline (default: 60s)
//   - FLOATQUERY_LLM_MAX_TOKENS: Default completion cap (default: 1024)
//   - FLOATQUERY_LLM_TOKEN_THRESHOLD: Estimated-token count above which the
//     secondary provider is preferred (default: 4000)
//   - FLOATQUERY_LLM_RATE_LIMIT / _RATE_BURST: Client-side throttle
//   - FLOATQUERY_LLM_BREAKER_FAILURES / _BREAKER_TIMEOUT: Circuit breaker
type LLMConfig struct {
	BaseURL         string        `koanf:"base_url"`
	APIKey          string        `koanf:"api_key"`
	TextModel       string        `koanf:"text_model"`
	CodeModel       string        `koanf:"code_model"`
	AnthropicAPIKey string        `koanf:"anthropic_api_key"`
	AnthropicModel  string        `koanf:"anthropic_model"`
	Timeout         time.Duration `koanf:"timeout" validate:"gt=0"`
	MaxTokens       int           `koanf:"max_tokens" validate:"min=1"`
	TokenThreshold  int           `koanf:"token_threshold" validate:"min=1"`
	RateLimit       float64       `koanf:"rate_limit" validate:"min=0"`       // Requests per second per provider (0 = unlimited)
	RateBurst       int           `koanf:"rate_burst" validate:"min=1"`
	BreakerFailures uint32        `koanf:"breaker_failures" validate:"min=1"` // Consecutive failures before the breaker opens
	BreakerTimeout  time.Duration `koanf:"breaker_timeout" validate:"gt=0"`   // Open-state duration before a probe is allowed
}

// EventsConfig holds the query lifecycle event bus settings. The bus runs an
// embedded single-node NATS JetStream server by default; set EmbeddedServer
// to false and URL to point at an external cluster instead. When disabled,
// the pipeline publishes to a no-op sink.
//
// Environment Variables:
//   - FLOATQUERY_EVENTS_ENABLED (default: true)
//   - FLOATQUERY_NATS_URL / _EMBEDDED / _STORE_DIR
//   - FLOATQUERY_NATS_MAX_MEMORY / _MAX_STORE / _RETENTION_DAYS
type EventsConfig struct {
	Enabled             bool   `koanf:"enabled"`
	URL                 string `koanf:"url"`
	EmbeddedServer      bool   `koanf:"embedded_server"`
	StoreDir            string `koanf:"store_dir"`
	MaxMemory           int64  `koanf:"max_memory"`
	MaxStore            int64  `koanf:"max_store"`
	StreamRetentionDays int    `koanf:"stream_retention_days" validate:"min=1"`
}

// HistoryConfig holds the Badger-backed recent-query journal settings.
//
// Environment Variables:
//   - FLOATQUERY_HISTORY_ENABLED (default: true)
//   - FLOATQUERY_HISTORY_PATH: Badger directory (default: /data/floatquery/history)
//   - FLOATQUERY_HISTORY_TTL: Entry lifetime (default: 168h)
type HistoryConfig struct {
	Enabled bool          `koanf:"enabled"`
	Path    string        `koanf:"path"`
	TTL     time.Duration `koanf:"ttl"`
}

// CacheConfig holds TTLs for the read-mostly endpoint caches.
type CacheConfig struct {
	StatsTTL    time.Duration `koanf:"stats_ttl" validate:"gt=0"`
	CoverageTTL time.Duration `koanf:"coverage_ttl" validate:"gt=0"`
}

// APIConfig holds request caps and per-endpoint rate limits.
//
// Environment Variables:
//   - FLOATQUERY_API_MAX_RESULTS: Default max_results (default: 25)
//   - FLOATQUERY_API_QUERY_RATE_LIMIT: Query requests per IP per minute
//   - FLOATQUERY_API_HEALTH_RATE_LIMIT: Health requests per IP per minute
//   - FLOATQUERY_CORS_ORIGINS: Comma-separated allowed origins
type APIConfig struct {
	DefaultMaxResults int      `koanf:"default_max_results" validate:"min=1,max=100"`
	MaxResultsCap     int      `koanf:"max_results_cap" validate:"min=1,max=1000"`
	QueryRateLimit    int      `koanf:"query_rate_limit" validate:"min=1"`  // Requests per IP per minute on POST /api/v1/query
	HealthRateLimit   int      `koanf:"health_rate_limit" validate:"min=1"` // Requests per IP per minute on health endpoints
	CORSOrigins       []string `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level" validate:"omitempty,oneof=trace debug info warn error fatal"`

	// Format is the output format: json or console.
	// JSON is recommended for production (structured, machine-parseable).
	// Console is human-readable for development.
	// Default: json
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`

	// Caller includes caller file and line number in logs.
	// Adds slight performance overhead.
	// Default: false
	Caller bool `koanf:"caller"`
}

// Load reads configuration from environment variables and optional config file.
// Configuration is loaded in the following order (later sources override earlier ones):
//  1. Built-in defaults
//  2. Config file (config.yaml if exists, or path specified in CONFIG_PATH env var)
//  3. Environment variables (FLOATQUERY_* prefix)
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
