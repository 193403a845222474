// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

/*
Package services provides suture.Service wrappers for FloatQuery components.

Each wrapper adapts a component lifecycle (ListenAndServe, RunWithContext,
a blocking GC loop, a ticker) to suture's context-aware Serve pattern and
names the service for supervisor logs via fmt.Stringer.

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Configurable timeout for draining connections

WebSocket Hub (WebSocketHubService):
  - Delegates to websocket.Hub.RunWithContext
  - Closes all dashboard clients on shutdown

Stats Refresher (StatsRefresherService):
  - Periodically reads dataset statistics from the profile store
  - Pushes snapshots to the hub for the live dashboard
  - Read failures are logged and retried on the next tick

History GC (HistoryGCService):
  - Drives the history journal's Badger value log GC
  - Runs under the data layer supervisor

The query event consumer (events.Consumer) implements suture.Service
directly and needs no wrapper here.

# Return Values

	nil        -> stopped cleanly, no restart
	error      -> crashed, supervisor restarts it
	ctx.Err()  -> shutdown requested, normal termination

# Usage

	tree.AddDataService(services.NewHistoryGCService(journal, 10*time.Minute))
	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	tree.AddMessagingService(services.NewStatsRefresherService(db, hub, time.Minute))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

All wrappers are safe for a single Serve call at a time, which is what
suture guarantees.
*/
package services
