// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/floatquery/internal/logging"
	"github.com/tomtom215/floatquery/internal/metrics"
)

// Errors returned by the gateway.
var (
	// ErrNoProviders means no provider has credentials configured.
	ErrNoProviders = errors.New("llm: no providers configured")

	// ErrEmptyCompletion means a provider answered with no usable text.
	ErrEmptyCompletion = errors.New("llm: provider returned empty completion")
)

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a chat prompt.
type Message struct {
	Role    string
	Content string
}

// Request is a single completion request. Zero Temperature and MaxTokens
// take the configured defaults. UseCodeModel selects the code-tuned model
// on providers that carry one.
type Request struct {
	Messages     []Message
	Temperature  float64
	MaxTokens    int64
	UseCodeModel bool
}

// Config wires the gateway. Primary is the OpenAI-compatible endpoint;
// Secondary is Anthropic. A provider with an empty API key is not built.
type Config struct {
	PrimaryAPIKey  string
	PrimaryBaseURL string
	TextModel      string
	CodeModel      string

	SecondaryAPIKey string
	SecondaryModel  string

	MaxTokens      int64
	Temperature    float64
	RequestTimeout time.Duration

	// TokenRouteLimit is the estimated-token threshold above which the
	// secondary provider is preferred for a request.
	TokenRouteLimit int

	// RequestsPerMinute caps the client-side call rate per provider.
	RequestsPerMinute int

	// BreakerFailures is the consecutive-failure count that opens a
	// provider's circuit breaker.
	BreakerFailures uint32
}

// codeRouteKeywords steer visualization and code generation requests to the
// secondary provider, which tolerates larger completions.
var codeRouteKeywords = []string{
	"map", "coordinates", "visualization", "plot", "geojson", "plotly",
}

// provider is one chat-completion backend.
type provider interface {
	Name() string
	Complete(ctx context.Context, req Request) (string, error)
}

// slot pairs a provider with its breaker and throttle.
type slot struct {
	provider provider
	breaker  *gobreaker.CircuitBreaker[string]
	limiter  *rate.Limiter
}

// Gateway routes completion requests between the configured providers with
// automatic fallback. Safe for concurrent use.
type Gateway struct {
	cfg       Config
	primary   *slot
	secondary *slot
}

// NewGateway builds the gateway from config. At least one provider must
// have credentials.
func NewGateway(cfg Config) (*Gateway, error) {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1024
	}
	if cfg.TokenRouteLimit <= 0 {
		cfg.TokenRouteLimit = 4000
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 30
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = 5
	}

	g := &Gateway{cfg: cfg}
	if cfg.PrimaryAPIKey != "" {
		g.primary = newSlot(newOpenAIProvider(cfg), cfg)
	}
	if cfg.SecondaryAPIKey != "" {
		g.secondary = newSlot(newAnthropicProvider(cfg), cfg)
	}
	if g.primary == nil && g.secondary == nil {
		return nil, ErrNoProviders
	}
	return g, nil
}

func newSlot(p provider, cfg Config) *slot {
	settings := gobreaker.Settings{
		Name:        "llm-" + p.Name(),
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.RecordBreakerTransition(name, from.String(), to.String())
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("LLM provider breaker state changed")
		},
	}
	return &slot{
		provider: p,
		breaker:  gobreaker.NewCircuitBreaker[string](settings),
		limiter:  rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), cfg.RequestsPerMinute),
	}
}

// Complete sends the request to the preferred provider, falling back to the
// other on any error. Both failing returns the last error.
func (g *Gateway) Complete(ctx context.Context, req Request) (string, error) {
	order := g.routeOrder(req)
	if len(order) == 0 {
		return "", ErrNoProviders
	}

	var lastErr error
	for i, s := range order {
		text, err := g.call(ctx, s, req)
		if err == nil {
			if i > 0 {
				metrics.RecordLLMFallback()
			}
			logging.Debug().
				Str("provider", s.provider.Name()).
				Bool("fallback", i > 0).
				Int("estimated_tokens", estimateTokens(joinContents(req.Messages))).
				Msg("LLM completion served")
			return text, nil
		}
		lastErr = err
		logging.Warn().
			Err(err).
			Str("provider", s.provider.Name()).
			Bool("fallback", i > 0).
			Msg("LLM provider failed")
		if ctx.Err() != nil {
			break
		}
	}
	return "", fmt.Errorf("all LLM providers failed: %w", lastErr)
}

// call runs one provider attempt under the timeout, throttle, and breaker.
func (g *Gateway) call(ctx context.Context, s *slot, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.RequestTimeout)
	defer cancel()

	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}
	start := time.Now()
	text, err := s.breaker.Execute(func() (string, error) {
		return s.provider.Complete(ctx, req)
	})
	metrics.RecordLLMRequest(s.provider.Name(), time.Since(start), err)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyCompletion
	}
	return strings.TrimSpace(text), nil
}

// routeOrder returns the provider slots in preference order for a request.
func (g *Gateway) routeOrder(req Request) []*slot {
	var order []*slot
	if g.preferSecondary(req) {
		order = appendSlot(order, g.secondary)
		order = appendSlot(order, g.primary)
	} else {
		order = appendSlot(order, g.primary)
		order = appendSlot(order, g.secondary)
	}
	return order
}

func appendSlot(order []*slot, s *slot) []*slot {
	if s == nil {
		return order
	}
	return append(order, s)
}

// preferSecondary reports whether the request should try the alternate
// provider first: visualization/code keywords in the prompt, an oversized
// prompt, or an explicit code-model request.
func (g *Gateway) preferSecondary(req Request) bool {
	if req.UseCodeModel {
		return true
	}
	text := strings.ToLower(joinContents(req.Messages))
	for _, kw := range codeRouteKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return estimateTokens(text) > g.cfg.TokenRouteLimit
}

func joinContents(msgs []Message) string {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		parts = append(parts, m.Content)
	}
	return strings.Join(parts, "\n")
}

// estimateTokens approximates the token count of text as words times 1.3.
func estimateTokens(text string) int {
	if text == "" {
		return 0
	}
	words := len(strings.Fields(text))
	n := int(float64(words) * 1.3)
	if n < 1 {
		n = 1
	}
	return n
}

// GenerateSQL asks the primary-preferred route to write SQL. Low
// temperature keeps the statement shape stable run to run.
func (g *Gateway) GenerateSQL(ctx context.Context, system, user string) (string, error) {
	return g.Complete(ctx, Request{
		Messages: []Message{
			{Role: RoleSystem, Content: system},
			{Role: RoleUser, Content: user},
		},
		Temperature: 0.1,
		MaxTokens:   g.cfg.MaxTokens,
	})
}

// GenerateAnswer produces final prose from a data summary. preferCode
// requests the code-tuned model for visualization-bearing answers.
func (g *Gateway) GenerateAnswer(ctx context.Context, system, user string, temperature float64, preferCode bool) (string, error) {
	return g.Complete(ctx, Request{
		Messages: []Message{
			{Role: RoleSystem, Content: system},
			{Role: RoleUser, Content: user},
		},
		Temperature:  temperature,
		MaxTokens:    g.cfg.MaxTokens,
		UseCodeModel: preferCode,
	})
}

// Healthy probes the configured providers with a one-token completion.
func (g *Gateway) Healthy(ctx context.Context) bool {
	_, err := g.Complete(ctx, Request{
		Messages:    []Message{{Role: RoleUser, Content: "ping"}},
		Temperature: 0,
		MaxTokens:   1,
	})
	return err == nil
}
