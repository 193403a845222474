// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package api

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/floatquery/internal/logging"
	ws "github.com/tomtom215/floatquery/internal/websocket"
)

// wsReadBufferSize and wsWriteBufferSize match the hub's small-frame
// traffic: lifecycle events and stats snapshots, never bulk data.
const (
	wsReadBufferSize  = 1024
	wsWriteBufferSize = 4096
)

// WebSocket upgrades the connection and attaches it to the dashboard hub
//
// @Summary Live query event stream
// @Description Upgrades to a WebSocket delivering query lifecycle events and stats snapshots for the dashboard.
// @Tags Core
// @Success 101 "Switching protocols"
// @Failure 503 {object} models.APIResponse "Event streaming disabled"
// @Router /ws [get]
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.wsHub == nil {
		respondError(w, http.StatusServiceUnavailable, ErrCodeInternal, "Event streaming is not enabled", nil)
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  wsReadBufferSize,
		WriteBufferSize: wsWriteBufferSize,
		CheckOrigin:     h.checkWSOrigin,
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		logging.Ctx(r.Context()).Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	h.wsHub.Register <- client
	client.Start()
}

// checkWSOrigin accepts same-host connections and any configured CORS
// origin. Browsers send Origin on WebSocket upgrades; non-browser clients
// that omit it are allowed.
func (h *Handler) checkWSOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if origin == "http://"+r.Host || origin == "https://"+r.Host {
		return true
	}
	if h.config != nil {
		for _, allowed := range h.config.API.CORSOrigins {
			if allowed == "*" || allowed == origin {
				return true
			}
		}
	}
	return false
}
