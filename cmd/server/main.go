// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

// Package main is the entry point for the FloatQuery server.
//
// FloatQuery answers natural-language questions about ARGO ocean float
// observations. A query is classified, routed to SQL retrieval against
// DuckDB and/or semantic retrieval against Qdrant, shaped into a prose
// answer, and optionally decorated with a map or chart payload.
//
// # Application Architecture
//
// The server runs under a Suture v4 supervisor tree:
//
//	RootSupervisor ("floatquery")
//	├── DataSupervisor ("data-layer")
//	│   └── History journal GC (Badger value log)
//	├── MessagingSupervisor ("messaging-layer")
//	│   ├── WebSocket Hub (dashboard fan-out)
//	│   ├── Query event consumer (NATS JetStream -> WebSocket)
//	│   └── Stats refresher (periodic dataset snapshots)
//	└── APISupervisor ("api-layer")
//	    └── HTTP Server (REST API + Swagger + /metrics)
//
// Component initialization order:
//
//  1. Configuration: Koanf v2 with environment variables and config files
//  2. Logging: zerolog, JSON or console format
//  3. DuckDB: relational store of floats and profiles
//  4. Qdrant: semantic search over profile summaries (optional)
//  5. LLM gateway: OpenAI-compatible primary, Anthropic secondary
//  6. History journal: Badger-backed recent-query log (optional)
//  7. Event bus: embedded NATS JetStream for query lifecycle events
//  8. Pipeline, HTTP handlers, supervisor tree
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (FLOATQUERY_* prefix)
//   - Config file (config.yaml)
//   - Built-in defaults
//
// A minimal development setup needs only the LLM credentials:
//
//	export FLOATQUERY_LLM_API_KEY=your-key
//	export FLOATQUERY_SEED_SAMPLE_DATA=true
//	./floatquery
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (10s timeout)
//   - Flushes the event bus and closes the journal and database
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	_ "github.com/tomtom215/floatquery/docs" // Import generated swagger docs
	"github.com/tomtom215/floatquery/internal/answer"
	"github.com/tomtom215/floatquery/internal/api"
	"github.com/tomtom215/floatquery/internal/classify"
	"github.com/tomtom215/floatquery/internal/config"
	"github.com/tomtom215/floatquery/internal/coverage"
	"github.com/tomtom215/floatquery/internal/database"
	"github.com/tomtom215/floatquery/internal/events"
	"github.com/tomtom215/floatquery/internal/history"
	"github.com/tomtom215/floatquery/internal/llm"
	"github.com/tomtom215/floatquery/internal/logging"
	"github.com/tomtom215/floatquery/internal/metrics"
	"github.com/tomtom215/floatquery/internal/pipeline"
	"github.com/tomtom215/floatquery/internal/retrieval"
	"github.com/tomtom215/floatquery/internal/sqlgen"
	"github.com/tomtom215/floatquery/internal/supervisor"
	"github.com/tomtom215/floatquery/internal/supervisor/services"
	"github.com/tomtom215/floatquery/internal/vector"
	"github.com/tomtom215/floatquery/internal/viz"
	ws "github.com/tomtom215/floatquery/internal/websocket"
)

const version = "1.0.0"

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Str("version", version).Msg("Starting FloatQuery")
	metrics.SetAppInfo(version, runtime.Version())

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Str("path", cfg.Database.Path).Msg("DuckDB store initialized")

	if cfg.Database.SeedSampleData {
		if err := db.SeedSampleData(context.Background()); err != nil {
			logging.Fatal().Err(err).Msg("Failed to seed sample data")
		}
		logging.Info().Msg("Sample data seeded (SEED_SAMPLE_DATA=true)")
	}

	// Semantic search is optional; a failed Qdrant connection degrades the
	// pipeline to SQL-only retrieval rather than blocking startup.
	var store vector.Store = vector.Disabled{}
	if cfg.Vector.Enabled {
		qdrant, err := vector.NewQdrant(cfg.Vector)
		if err != nil {
			logging.Warn().Err(err).Msg("Qdrant unavailable, semantic search disabled")
		} else {
			store = qdrant
			logging.Info().
				Str("host", cfg.Vector.Host).
				Str("collection", cfg.Vector.Collection).
				Msg("Vector store connected")
		}
	} else {
		logging.Info().Msg("Semantic search disabled (VECTOR_ENABLED=false)")
	}

	gateway, err := llm.NewGateway(llm.Config{
		PrimaryAPIKey:     cfg.LLM.APIKey,
		PrimaryBaseURL:    cfg.LLM.BaseURL,
		TextModel:         cfg.LLM.TextModel,
		CodeModel:         cfg.LLM.CodeModel,
		SecondaryAPIKey:   cfg.LLM.AnthropicAPIKey,
		SecondaryModel:    cfg.LLM.AnthropicModel,
		MaxTokens:         int64(cfg.LLM.MaxTokens),
		RequestTimeout:    cfg.LLM.Timeout,
		TokenRouteLimit:   cfg.LLM.TokenThreshold,
		RequestsPerMinute: int(cfg.LLM.RateLimit * 60),
		BreakerFailures:   cfg.LLM.BreakerFailures,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize LLM gateway")
	}

	// The journal degrades to a no-op when disabled or when Badger cannot
	// open its directory; query answering never depends on it.
	var journal history.Journal = history.Disabled{}
	var badgerJournal *history.Badger
	if cfg.History.Enabled {
		badgerJournal, err = history.Open(cfg.History)
		if err != nil {
			logging.Warn().Err(err).Msg("History journal unavailable, continuing without it")
		} else {
			journal = badgerJournal
			defer func() {
				if err := badgerJournal.Close(); err != nil {
					logging.Error().Err(err).Msg("Error closing history journal")
				}
			}()
			logging.Info().Str("path", cfg.History.Path).Msg("History journal opened")
		}
	} else {
		logging.Info().Msg("History journal disabled (HISTORY_ENABLED=false)")
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus, err := events.New(ctx, cfg.Events)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize event bus")
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := bus.Close(closeCtx); err != nil {
			logging.Error().Err(err).Msg("Error closing event bus")
		}
	}()

	pipe := pipeline.New(pipeline.Deps{
		Classifier: classify.NewClassifier(gateway),
		Coverage:   coverage.NewValidator(),
		Retriever:  retrieval.NewCoordinator(db, store, sqlgen.NewSynthesizer(gateway)),
		Shaper:     answer.NewShaper(db, gateway),
		Viz:        viz.NewBuilder(gateway),
		Store:      db,
		Vector:     store,
		Gateway:    gateway,
		Journal:    journal,
		Events:     bus.Publisher(),
	})

	wsHub := ws.NewHub()
	handler := api.NewHandler(pipe, db, journal, wsHub, cfg)
	router := api.NewRouter(handler, &api.ChiMiddlewareConfig{
		CORSAllowedOrigins: cfg.API.CORSOrigins,
		QueryRateLimit:     cfg.API.QueryRateLimit,
		HealthRateLimit:    cfg.API.HealthRateLimit,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// sutureslog bridges the supervisor's slog output into zerolog.
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if badgerJournal != nil {
		tree.AddDataService(services.NewHistoryGCService(badgerJournal, 0))
	}

	tree.AddMessagingService(services.NewWebSocketHubService(wsHub))
	tree.AddMessagingService(services.NewStatsRefresherService(db, wsHub, 0))
	if sub := bus.Subscriber(); sub != nil {
		tree.AddMessagingService(events.NewConsumer(sub, wsHub))
		logging.Info().Msg("Query event consumer added to supervisor tree")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// Wait for supervisor to finish (either from signal or error)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Wait for the error channel to close (supervisor finished)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
