// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	// Server defaults
	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Server.Timeout != 30*time.Second {
		t.Errorf("Server.Timeout = %v, want 30s", cfg.Server.Timeout)
	}

	// Database defaults
	if cfg.Database.Path != "/data/floatquery.duckdb" {
		t.Errorf("Database.Path = %q, want /data/floatquery.duckdb", cfg.Database.Path)
	}
	if cfg.Database.MaxMemory != "2GB" {
		t.Errorf("Database.MaxMemory = %q, want 2GB", cfg.Database.MaxMemory)
	}
	if !cfg.Database.PreserveInsertionOrder {
		t.Errorf("Database.PreserveInsertionOrder should be true by default")
	}

	// Vector defaults (enabled)
	if !cfg.Vector.Enabled {
		t.Errorf("Vector.Enabled should be true by default")
	}
	if cfg.Vector.Port != 6334 {
		t.Errorf("Vector.Port = %d, want 6334", cfg.Vector.Port)
	}
	if cfg.Vector.Collection != "argo_summaries" {
		t.Errorf("Vector.Collection = %q, want argo_summaries", cfg.Vector.Collection)
	}
	if cfg.Vector.Embeddings.Model != "text-embedding-3-small" {
		t.Errorf("Vector.Embeddings.Model = %q, want text-embedding-3-small", cfg.Vector.Embeddings.Model)
	}

	// LLM defaults (no keys, deterministic degradation)
	if cfg.LLM.APIKey != "" {
		t.Errorf("LLM.APIKey should be empty by default, got %q", cfg.LLM.APIKey)
	}
	if cfg.LLM.Timeout != 60*time.Second {
		t.Errorf("LLM.Timeout = %v, want 60s", cfg.LLM.Timeout)
	}
	if cfg.LLM.TokenThreshold != 4000 {
		t.Errorf("LLM.TokenThreshold = %d, want 4000", cfg.LLM.TokenThreshold)
	}
	if cfg.LLM.BreakerFailures != 5 {
		t.Errorf("LLM.BreakerFailures = %d, want 5", cfg.LLM.BreakerFailures)
	}

	// Events defaults (enabled, embedded)
	if !cfg.Events.Enabled {
		t.Errorf("Events.Enabled should be true by default")
	}
	if !cfg.Events.EmbeddedServer {
		t.Errorf("Events.EmbeddedServer should be true by default")
	}
	if cfg.Events.URL != "nats://127.0.0.1:4222" {
		t.Errorf("Events.URL = %q, want nats://127.0.0.1:4222", cfg.Events.URL)
	}
	if cfg.Events.MaxMemory != 1<<30 {
		t.Errorf("Events.MaxMemory = %d, want 1GB", cfg.Events.MaxMemory)
	}

	// History defaults
	if cfg.History.TTL != 7*24*time.Hour {
		t.Errorf("History.TTL = %v, want 168h", cfg.History.TTL)
	}

	// API defaults
	if cfg.API.DefaultMaxResults != 25 {
		t.Errorf("API.DefaultMaxResults = %d, want 25", cfg.API.DefaultMaxResults)
	}
	if cfg.API.QueryRateLimit != 30 {
		t.Errorf("API.QueryRateLimit = %d, want 30", cfg.API.QueryRateLimit)
	}
	if len(cfg.API.CORSOrigins) != 1 || cfg.API.CORSOrigins[0] != "*" {
		t.Errorf("API.CORSOrigins = %v, want [*]", cfg.API.CORSOrigins)
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}

	// Defaults must pass their own validation
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig() failed validation: %v", err)
	}
}

// TestEnvTransformFunc verifies environment variable name transformations
func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Server
		{"FLOATQUERY_SERVER_PORT", "server.port"},
		{"FLOATQUERY_SERVER_HOST", "server.host"},
		{"FLOATQUERY_SERVER_TIMEOUT", "server.timeout"},
		{"FLOATQUERY_ENVIRONMENT", "server.environment"},

		// Database
		{"FLOATQUERY_DUCKDB_PATH", "database.path"},
		{"FLOATQUERY_DUCKDB_MAX_MEMORY", "database.max_memory"},
		{"FLOATQUERY_DUCKDB_THREADS", "database.threads"},
		{"FLOATQUERY_SEED_SAMPLE_DATA", "database.seed_sample_data"},

		// Vector store
		{"FLOATQUERY_QDRANT_HOST", "vector.host"},
		{"FLOATQUERY_QDRANT_PORT", "vector.port"},
		{"FLOATQUERY_QDRANT_COLLECTION", "vector.collection"},
		{"FLOATQUERY_EMBEDDINGS_MODEL", "vector.embeddings.model"},

		// LLM
		{"FLOATQUERY_LLM_API_KEY", "llm.api_key"},
		{"FLOATQUERY_LLM_TEXT_MODEL", "llm.text_model"},
		{"FLOATQUERY_ANTHROPIC_API_KEY", "llm.anthropic_api_key"},
		{"FLOATQUERY_LLM_TOKEN_THRESHOLD", "llm.token_threshold"},

		// Events
		{"FLOATQUERY_EVENTS_ENABLED", "events.enabled"},
		{"FLOATQUERY_NATS_URL", "events.url"},
		{"FLOATQUERY_NATS_EMBEDDED", "events.embedded_server"},
		{"FLOATQUERY_NATS_RETENTION_DAYS", "events.stream_retention_days"},

		// History
		{"FLOATQUERY_HISTORY_PATH", "history.path"},
		{"FLOATQUERY_HISTORY_TTL", "history.ttl"},

		// API
		{"FLOATQUERY_API_MAX_RESULTS", "api.default_max_results"},
		{"FLOATQUERY_CORS_ORIGINS", "api.cors_origins"},

		// Logging
		{"FLOATQUERY_LOG_LEVEL", "logging.level"},
		{"FLOATQUERY_LOG_FORMAT", "logging.format"},

		// Unknown (should return empty)
		{"FLOATQUERY_RANDOM_VAR", ""},
		{"FLOATQUERY_PATH", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := envTransformFunc(tt.input)
			if result != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

// TestFindConfigFile verifies config file discovery
func TestFindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	defer func() {
		if err := os.Chdir(origDir); err != nil {
			t.Errorf("Failed to restore working directory: %v", err)
		}
	}()

	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	t.Run("no config file exists", func(t *testing.T) {
		os.Unsetenv(ConfigPathEnvVar)
		result := findConfigFile()
		if result != "" {
			t.Errorf("findConfigFile() = %q, want empty string", result)
		}
	})

	t.Run("config.yaml exists", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "config.yaml")
		if err := os.WriteFile(configPath, []byte("server:\n  port: 9000\n"), 0o644); err != nil {
			t.Fatalf("Failed to create config file: %v", err)
		}
		defer os.Remove(configPath)

		os.Unsetenv(ConfigPathEnvVar)
		result := findConfigFile()
		if result != "config.yaml" {
			t.Errorf("findConfigFile() = %q, want config.yaml", result)
		}
	})

	t.Run("CONFIG_PATH env var takes precedence", func(t *testing.T) {
		customPath := filepath.Join(tmpDir, "custom_config.yaml")
		if err := os.WriteFile(customPath, []byte("server:\n  port: 9000\n"), 0o644); err != nil {
			t.Fatalf("Failed to create custom config file: %v", err)
		}
		defer os.Remove(customPath)

		os.Setenv(ConfigPathEnvVar, customPath)
		defer os.Unsetenv(ConfigPathEnvVar)

		result := findConfigFile()
		if result != customPath {
			t.Errorf("findConfigFile() = %q, want %q", result, customPath)
		}
	})

	t.Run("CONFIG_PATH env var with non-existent file", func(t *testing.T) {
		os.Setenv(ConfigPathEnvVar, "/non/existent/config.yaml")
		defer os.Unsetenv(ConfigPathEnvVar)

		result := findConfigFile()
		if result != "" {
			t.Errorf("findConfigFile() = %q, want empty string", result)
		}
	})
}

// TestLoadWithKoanfEnvVars tests loading configuration from environment variables
func TestLoadWithKoanfEnvVars(t *testing.T) {
	os.Clearenv()

	os.Setenv("FLOATQUERY_SERVER_PORT", "9000")
	os.Setenv("FLOATQUERY_SERVER_TIMEOUT", "45s")
	os.Setenv("FLOATQUERY_DUCKDB_PATH", "/tmp/test.duckdb")
	os.Setenv("FLOATQUERY_QDRANT_HOST", "qdrant.internal")
	os.Setenv("FLOATQUERY_LLM_API_KEY", "gsk_test_1234567890")
	os.Setenv("FLOATQUERY_LLM_TEXT_MODEL", "llama-3.1-8b-instant")
	os.Setenv("FLOATQUERY_LOG_LEVEL", "debug")
	os.Setenv("FLOATQUERY_CORS_ORIGINS", "http://a.local, http://b.local")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Server.Timeout != 45*time.Second {
		t.Errorf("Server.Timeout = %v, want 45s", cfg.Server.Timeout)
	}
	if cfg.Database.Path != "/tmp/test.duckdb" {
		t.Errorf("Database.Path = %q, want /tmp/test.duckdb", cfg.Database.Path)
	}
	if cfg.Vector.Host != "qdrant.internal" {
		t.Errorf("Vector.Host = %q, want qdrant.internal", cfg.Vector.Host)
	}
	if cfg.LLM.APIKey != "gsk_test_1234567890" {
		t.Errorf("LLM.APIKey = %q, want gsk_test_1234567890", cfg.LLM.APIKey)
	}
	if cfg.LLM.TextModel != "llama-3.1-8b-instant" {
		t.Errorf("LLM.TextModel = %q, want llama-3.1-8b-instant", cfg.LLM.TextModel)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if len(cfg.API.CORSOrigins) != 2 || cfg.API.CORSOrigins[0] != "http://a.local" || cfg.API.CORSOrigins[1] != "http://b.local" {
		t.Errorf("API.CORSOrigins = %v, want [http://a.local http://b.local]", cfg.API.CORSOrigins)
	}

	// Defaults survive for untouched fields
	if cfg.Vector.Collection != "argo_summaries" {
		t.Errorf("Vector.Collection = %q, want default argo_summaries", cfg.Vector.Collection)
	}
}

// TestLoadWithKoanfConfigFile tests the YAML layer and env precedence over it
func TestLoadWithKoanfConfigFile(t *testing.T) {
	os.Clearenv()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	yamlContent := `
server:
  port: 9100
llm:
  text_model: llama-3.1-8b-instant
history:
  ttl: 24h
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	os.Setenv(ConfigPathEnvVar, configPath)
	defer os.Unsetenv(ConfigPathEnvVar)

	t.Run("file overrides defaults", func(t *testing.T) {
		cfg, err := LoadWithKoanf()
		if err != nil {
			t.Fatalf("LoadWithKoanf() error = %v", err)
		}
		if cfg.Server.Port != 9100 {
			t.Errorf("Server.Port = %d, want 9100 from file", cfg.Server.Port)
		}
		if cfg.LLM.TextModel != "llama-3.1-8b-instant" {
			t.Errorf("LLM.TextModel = %q, want value from file", cfg.LLM.TextModel)
		}
		if cfg.History.TTL != 24*time.Hour {
			t.Errorf("History.TTL = %v, want 24h from file", cfg.History.TTL)
		}
	})

	t.Run("env overrides file", func(t *testing.T) {
		os.Setenv("FLOATQUERY_SERVER_PORT", "9200")
		defer os.Unsetenv("FLOATQUERY_SERVER_PORT")

		cfg, err := LoadWithKoanf()
		if err != nil {
			t.Fatalf("LoadWithKoanf() error = %v", err)
		}
		if cfg.Server.Port != 9200 {
			t.Errorf("Server.Port = %d, want 9200 from env", cfg.Server.Port)
		}
	})
}

// TestLoadWithKoanfInvalidConfig verifies that validation failures surface as errors
func TestLoadWithKoanfInvalidConfig(t *testing.T) {
	os.Clearenv()

	os.Setenv("FLOATQUERY_ENVIRONMENT", "sandbox")
	defer os.Unsetenv("FLOATQUERY_ENVIRONMENT")

	if _, err := LoadWithKoanf(); err == nil {
		t.Fatal("LoadWithKoanf() should reject unknown environment mode")
	}
}
