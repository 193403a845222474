// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package config

import (
	"fmt"
	"strings"

	"github.com/tomtom215/floatquery/internal/validation"
)

// Validate checks that the loaded configuration is complete and consistent.
// Range and format checks live as validate tags on the config structs and run
// through go-playground/validator; rules that depend on feature toggles are
// checked explicitly below. Error messages name the environment variable to
// fix, not the struct field.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return fmt.Errorf("invalid configuration: %w", verr)
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateVector(); err != nil {
		return err
	}

	if err := c.validateLLM(); err != nil {
		return err
	}

	if err := c.validateEvents(); err != nil {
		return err
	}

	if err := c.validateHistory(); err != nil {
		return err
	}

	return c.validateAPI()
}

// validMemorySuffixes lists the units DuckDB accepts for its memory limit.
var validMemorySuffixes = []string{"KB", "MB", "GB", "TB", "KIB", "MIB", "GIB", "TIB", "%"}

// validateDatabase validates the DuckDB memory limit format. A malformed
// value would otherwise surface as an opaque driver error at open time.
func (c *Config) validateDatabase() error {
	if c.Database.MaxMemory == "" {
		return nil
	}
	mem := strings.ToUpper(c.Database.MaxMemory)
	for _, suffix := range validMemorySuffixes {
		if strings.HasSuffix(mem, suffix) {
			return nil
		}
	}
	return fmt.Errorf("FLOATQUERY_DUCKDB_MAX_MEMORY must end in KB, MB, GB, TB or %%, got: %s", c.Database.MaxMemory)
}

// validateVector validates the vector store configuration (only if enabled).
func (c *Config) validateVector() error {
	if !c.Vector.Enabled {
		return nil
	}

	if c.Vector.Port == 0 {
		return fmt.Errorf("FLOATQUERY_QDRANT_PORT is required when FLOATQUERY_VECTOR_ENABLED=true")
	}
	if c.Vector.Embeddings.Model == "" {
		return fmt.Errorf("FLOATQUERY_EMBEDDINGS_MODEL is required when FLOATQUERY_VECTOR_ENABLED=true")
	}
	if c.Vector.Embeddings.BaseURL != "" {
		if err := validateBaseURL(c.Vector.Embeddings.BaseURL, "FLOATQUERY_EMBEDDINGS_BASE_URL"); err != nil {
			return err
		}
	}
	return nil
}

// validateLLM validates the language model gateway configuration. Both
// providers are optional (the pipeline degrades to deterministic paths
// without them), but a configured provider must be complete.
func (c *Config) validateLLM() error {
	if c.LLM.BaseURL != "" {
		if err := validateBaseURL(c.LLM.BaseURL, "FLOATQUERY_LLM_BASE_URL"); err != nil {
			return err
		}
	}

	if c.LLM.APIKey != "" && c.LLM.TextModel == "" {
		return fmt.Errorf("FLOATQUERY_LLM_TEXT_MODEL is required when FLOATQUERY_LLM_API_KEY is set")
	}
	if c.LLM.AnthropicAPIKey != "" && c.LLM.AnthropicModel == "" {
		return fmt.Errorf("FLOATQUERY_ANTHROPIC_MODEL is required when FLOATQUERY_ANTHROPIC_API_KEY is set")
	}

	if containsPlaceholder(c.LLM.APIKey) {
		return fmt.Errorf("FLOATQUERY_LLM_API_KEY contains a placeholder value, set a real key")
	}
	if containsPlaceholder(c.LLM.AnthropicAPIKey) {
		return fmt.Errorf("FLOATQUERY_ANTHROPIC_API_KEY contains a placeholder value, set a real key")
	}
	return nil
}

// validateEvents validates the event bus configuration (only if enabled).
func (c *Config) validateEvents() error {
	if !c.Events.Enabled {
		return nil
	}

	if c.Events.EmbeddedServer {
		if c.Events.StoreDir == "" {
			return fmt.Errorf("FLOATQUERY_NATS_STORE_DIR is required when the embedded NATS server is enabled")
		}
		return nil
	}

	if c.Events.URL == "" {
		return fmt.Errorf("FLOATQUERY_NATS_URL is required when FLOATQUERY_NATS_EMBEDDED=false")
	}
	if !strings.HasPrefix(c.Events.URL, "nats://") && !strings.HasPrefix(c.Events.URL, "tls://") {
		return fmt.Errorf("FLOATQUERY_NATS_URL must use the nats:// or tls:// scheme, got: %s", c.Events.URL)
	}
	return nil
}

// validateHistory validates the query journal configuration (only if enabled).
func (c *Config) validateHistory() error {
	if !c.History.Enabled {
		return nil
	}

	if c.History.Path == "" {
		return fmt.Errorf("FLOATQUERY_HISTORY_PATH is required when FLOATQUERY_HISTORY_ENABLED=true")
	}
	if c.History.TTL <= 0 {
		return fmt.Errorf("FLOATQUERY_HISTORY_TTL must be positive, got: %s", c.History.TTL)
	}
	return nil
}

// validateAPI validates cross-field API limits.
func (c *Config) validateAPI() error {
	if c.API.DefaultMaxResults > c.API.MaxResultsCap {
		return fmt.Errorf("FLOATQUERY_API_MAX_RESULTS (%d) cannot exceed the max_results cap (%d)",
			c.API.DefaultMaxResults, c.API.MaxResultsCap)
	}
	return nil
}

// placeholderPatterns defines common placeholder patterns that indicate
// the user forgot to set a real value. This prevents accidental deployment
// with non-functional credentials.
var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_KEY",
	"YOUR_API_KEY",
	"PLACEHOLDER",
	"EXAMPLE",
}

// containsPlaceholder checks if a value contains common placeholder patterns
// that indicate the user forgot to set a real value.
func containsPlaceholder(value string) bool {
	upperValue := strings.ToUpper(value)
	for _, pattern := range placeholderPatterns {
		if strings.Contains(upperValue, pattern) {
			return true
		}
	}
	return false
}
