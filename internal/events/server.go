// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package events

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats-server/v2/server"

	"github.com/tomtom215/floatquery/internal/config"
)

// readyTimeout bounds how long startup waits for the embedded server to
// accept connections before giving up.
const readyTimeout = 30 * time.Second

// EmbeddedServer wraps a single-node NATS server with JetStream enabled.
// It gives standalone deployments a self-contained event bus with no
// external broker to operate.
type EmbeddedServer struct {
	server    *server.Server
	clientURL string
}

// NewEmbeddedServer creates and starts an embedded NATS server from the
// events configuration. It returns once the server accepts connections or
// fails the ready timeout.
func NewEmbeddedServer(cfg config.EventsConfig) (*EmbeddedServer, error) {
	opts := &server.Options{
		ServerName:         "floatquery-events",
		Host:               "127.0.0.1",
		Port:               -1, // random free port; clients use ClientURL
		JetStream:          true,
		StoreDir:           cfg.StoreDir,
		JetStreamMaxMemory: cfg.MaxMemory,
		JetStreamMaxStore:  cfg.MaxStore,
		NoLog:              true,
		MaxPayload:         1 * 1024 * 1024, // events are small; 1MB is generous
	}

	ns, err := server.NewServer(opts)
	if err != nil {
		return nil, fmt.Errorf("create NATS server: %w", err)
	}

	go ns.Start()

	if !ns.ReadyForConnections(readyTimeout) {
		ns.Shutdown()
		return nil, fmt.Errorf("NATS server not ready within %s", readyTimeout)
	}

	return &EmbeddedServer{
		server:    ns,
		clientURL: ns.ClientURL(),
	}, nil
}

// ClientURL returns the connection URL local clients should dial.
func (s *EmbeddedServer) ClientURL() string {
	return s.clientURL
}

// IsRunning reports server liveness.
func (s *EmbeddedServer) IsRunning() bool {
	return s.server.Running()
}

// Shutdown stops the server, waiting for completion unless the context
// expires first.
func (s *EmbeddedServer) Shutdown(ctx context.Context) error {
	s.server.Shutdown()

	done := make(chan struct{})
	go func() {
		s.server.WaitForShutdown()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}
