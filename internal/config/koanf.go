// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/floatquery/config.yaml",
	"/etc/floatquery/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// EnvPrefix is the prefix shared by every FloatQuery environment variable.
const EnvPrefix = "FLOATQUERY_"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8000,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development", // Set FLOATQUERY_ENVIRONMENT=production for production checks
		},
		Database: DatabaseConfig{
			Path:                   "/data/floatquery.duckdb",
			MaxMemory:              "2GB",
			Threads:                0,    // 0 = use runtime.NumCPU()
			PreserveInsertionOrder: true, // DuckDB default
			SeedSampleData:         false,
		},
		Vector: VectorConfig{
			Enabled:    true,
			Host:       "127.0.0.1",
			Port:       6334, // Qdrant gRPC port
			APIKey:     "",
			UseTLS:     false,
			Collection: "argo_summaries",
			Embeddings: EmbeddingsConfig{
				BaseURL: "https://api.openai.com/v1",
				APIKey:  "",
				Model:   "text-embedding-3-small",
			},
		},
		LLM: LLMConfig{
			BaseURL:         "https://api.groq.com/openai/v1",
			APIKey:          "",
			TextModel:       "llama-3.3-70b-versatile",
			CodeModel:       "qwen-2.5-coder-32b-instruct",
			AnthropicAPIKey: "",
			AnthropicModel:  "claude-3-5-haiku-20241022",
			Timeout:         60 * time.Second,
			MaxTokens:       1024,
			TokenThreshold:  4000,
			RateLimit:       2.0,
			RateBurst:       4,
			BreakerFailures: 5,
			BreakerTimeout:  30 * time.Second,
		},
		Events: EventsConfig{
			Enabled:             true,
			URL:                 "nats://127.0.0.1:4222",
			EmbeddedServer:      true,
			StoreDir:            "/data/floatquery/nats",
			MaxMemory:           1 << 30,  // 1GB
			MaxStore:            10 << 30, // 10GB
			StreamRetentionDays: 7,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    "/data/floatquery/history",
			TTL:     7 * 24 * time.Hour,
		},
		Cache: CacheConfig{
			StatsTTL:    30 * time.Second,
			CoverageTTL: 5 * time.Minute,
		},
		API: APIConfig{
			DefaultMaxResults: 25,
			MaxResultsCap:     100,
			QueryRateLimit:    30,
			HealthRateLimit:   1000,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// This function is the preferred way to load configuration and provides:
//   - Type-safe configuration unmarshaling
//   - Clear precedence: ENV > File > Defaults
//   - Support for nested configuration via koanf struct tags
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// Transform environment variable names to koanf paths:
	// FLOATQUERY_DUCKDB_PATH -> database.path
	// FLOATQUERY_LLM_TEXT_MODEL -> llm.text_model
	envProvider := env.Provider(EnvPrefix, ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	// Unmarshal into Config struct
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	// Check environment variable first
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	// Search default paths
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"api.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// This is necessary because env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// If it's already a slice (from YAML file), skip
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		// If it's a string, split by comma
		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Keys arrive with the FLOATQUERY_ prefix intact; unmapped keys are dropped so
// unrelated variables never pollute the config tree.
//
// Examples:
//   - FLOATQUERY_DUCKDB_PATH -> database.path
//   - FLOATQUERY_QDRANT_HOST -> vector.host
//   - FLOATQUERY_LLM_API_KEY -> llm.api_key
//   - FLOATQUERY_SERVER_PORT -> server.port
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))

	envMappings := map[string]string{
		// Server mappings
		"server_port":    "server.port",
		"server_host":    "server.host",
		"server_timeout": "server.timeout",
		"environment":    "server.environment",

		// Database mappings
		"duckdb_path":              "database.path",
		"duckdb_max_memory":        "database.max_memory",
		"duckdb_threads":           "database.threads",
		"duckdb_preserve_order":    "database.preserve_insertion_order",
		"seed_sample_data":         "database.seed_sample_data",

		// Vector store mappings
		"vector_enabled":       "vector.enabled",
		"qdrant_host":          "vector.host",
		"qdrant_port":          "vector.port",
		"qdrant_api_key":       "vector.api_key",
		"qdrant_use_tls":       "vector.use_tls",
		"qdrant_collection":    "vector.collection",
		"embeddings_base_url":  "vector.embeddings.base_url",
		"embeddings_api_key":   "vector.embeddings.api_key",
		"embeddings_model":     "vector.embeddings.model",

		// LLM gateway mappings
		"llm_base_url":         "llm.base_url",
		"llm_api_key":          "llm.api_key",
		"llm_text_model":       "llm.text_model",
		"llm_code_model":       "llm.code_model",
		"anthropic_api_key":    "llm.anthropic_api_key",
		"anthropic_model":      "llm.anthropic_model",
		"llm_timeout":          "llm.timeout",
		"llm_max_tokens":       "llm.max_tokens",
		"llm_token_threshold":  "llm.token_threshold",
		"llm_rate_limit":       "llm.rate_limit",
		"llm_rate_burst":       "llm.rate_burst",
		"llm_breaker_failures": "llm.breaker_failures",
		"llm_breaker_timeout":  "llm.breaker_timeout",

		// Events mappings
		"events_enabled":       "events.enabled",
		"nats_url":             "events.url",
		"nats_embedded":        "events.embedded_server",
		"nats_store_dir":       "events.store_dir",
		"nats_max_memory":      "events.max_memory",
		"nats_max_store":       "events.max_store",
		"nats_retention_days":  "events.stream_retention_days",

		// History mappings
		"history_enabled": "history.enabled",
		"history_path":    "history.path",
		"history_ttl":     "history.ttl",

		// Cache mappings
		"cache_stats_ttl":    "cache.stats_ttl",
		"cache_coverage_ttl": "cache.coverage_ttl",

		// API mappings
		"api_max_results":       "api.default_max_results",
		"api_max_results_cap":   "api.max_results_cap",
		"api_query_rate_limit":  "api.query_rate_limit",
		"api_health_rate_limit": "api.health_rate_limit",
		"cors_origins":          "api.cors_origins",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	return ""
}
