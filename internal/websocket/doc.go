// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

// Package websocket streams live query activity to dashboard clients.
//
// A single Hub fans messages out to every connected client. The events
// consumer feeds it resolved-query events; the stats refresher feeds it
// periodic store snapshots. Clients receive JSON frames of the form
// {"type": ..., "data": ...} and may send ping frames, which the hub
// answers with pong.
//
// The hub runs under the supervisor tree via RunWithContext, which closes
// every client on shutdown and returns the context error. Broadcasts are
// non-blocking: a client whose send buffer is full is disconnected rather
// than allowed to stall the hub, and a full broadcast channel drops the
// message with a warning.
package websocket
