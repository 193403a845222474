// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

// Package events publishes query lifecycle events over NATS JetStream and
// consumes them for the live dashboard feed.
//
// Every resolved query produces one QueryEvent describing how it was routed,
// what it retrieved, and how long it took. The pipeline publishes these
// through a non-blocking Publisher; a Consumer subscribes on the other side
// and fans events out to the WebSocket hub and Prometheus counters.
//
// The bus runs an embedded single-node NATS server with JetStream by default,
// so a standalone deployment needs no external broker. Pointing
// FLOATQUERY_NATS_URL at an external cluster and disabling the embedded
// server switches to client-only mode. With events disabled entirely, the
// pipeline publishes to a no-op sink and the dashboard simply receives no
// live feed.
//
// Transport is Watermill over watermill-nats, so tests exercise the
// publisher/consumer pair against Watermill's in-process gochannel Pub/Sub
// without a running NATS server.
package events
