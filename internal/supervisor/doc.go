// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

/*
Package supervisor provides process supervision for FloatQuery using suture v4.

This package implements a hierarchical supervisor tree that manages the
lifecycle of every long-running service in the application: Erlang/OTP-style
supervision with automatic restart, failure isolation, and graceful shutdown.

# Overview

Services are organized into three layers for failure isolation:

	RootSupervisor ("floatquery")
	├── DataSupervisor ("data-layer")
	│   └── HistoryGCService (if history is enabled)
	├── MessagingSupervisor ("messaging-layer")
	│   ├── WebSocketHubService
	│   ├── QueryEventConsumer (if events are enabled)
	│   └── StatsRefresherService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

This hierarchy ensures that:
  - A crash in the event consumer doesn't drop WebSocket connections
  - Journal GC failures don't impact API availability
  - Each layer restarts independently

# Usage

Basic setup in main.go:

	logger := logging.NewSlogLogger()
	tree, err := supervisor.NewSupervisorTree(logger, supervisor.DefaultTreeConfig())
	if err != nil {
	    logging.Fatal().Err(err).Msg("failed to create supervisor tree")
	}

	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	tree.AddMessagingService(services.NewStatsRefresherService(db, hub, time.Minute))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	errCh := tree.ServeBackground(ctx)
	// ... wait for signal ...
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("supervisor stopped")
	}

# Configuration

TreeConfig controls restart behavior. The defaults match suture's
production values:

	FailureThreshold: 5 failures before backoff
	FailureDecay:     30 seconds for failures to decay
	FailureBackoff:   15 seconds of backoff
	ShutdownTimeout:  10 seconds per-service shutdown

# Service Interface

All services implement suture.Service:

	type Service interface {
	    Serve(ctx context.Context) error
	}

Return nil to stop cleanly without restart; return an error to be
restarted; return promptly when the context is canceled. Services that
also implement fmt.Stringer get readable names in supervisor logs.

# What Is NOT Supervised

DuckDB and BadgerDB handles are not supervised: they are embedded
libraries whose connections the database and history packages manage
directly. The LLM gateway and Qdrant client are request-scoped and carry
their own circuit breakers.

# Debugging Shutdown Issues

If services don't stop within the timeout:

	report, _ := tree.UnstoppedServiceReport()
	for _, svc := range report {
	    logging.Warn().Str("service", fmt.Sprint(svc)).Msg("service did not stop")
	}

# See Also

  - internal/supervisor/services: Service wrappers
  - github.com/thejerf/suture/v4: Underlying library
*/
package supervisor
