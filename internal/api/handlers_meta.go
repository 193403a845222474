// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/floatquery/internal/catalog"
	"github.com/tomtom215/floatquery/internal/coverage"
	"github.com/tomtom215/floatquery/internal/models"
)

// defaultHistoryLimit applies when /history is called without a limit.
const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// Coverage describes the data holdings
//
// @Summary Describe geographic and temporal data coverage
// @Description Returns the coverage rectangle, the regions the catalog knows, and a human-readable summary. Served through a TTL cache.
// @Tags Meta
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.CoverageResponse} "Coverage description"
// @Router /coverage [get]
func (h *Handler) Coverage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
		return
	}

	if cached, ok := h.coverageCache.Get("coverage"); ok {
		respondJSON(w, http.StatusOK, &models.APIResponse{
			Status: "success",
			Data:   cached,
			Metadata: models.Metadata{
				Timestamp: time.Now(),
				Cached:    true,
			},
		})
		return
	}

	var totalProfiles int64
	if stats, err := h.db.Stats(r.Context()); err == nil && stats != nil {
		totalProfiles = stats.TotalProfiles
	}

	cov := catalog.Coverage()
	regions := make([]string, 0, len(catalog.Regions()))
	for _, region := range catalog.Regions() {
		regions = append(regions, region.Name)
	}

	resp := models.CoverageResponse{
		Description: coverage.NewValidator().Describe(totalProfiles),
		Regions:     regions,
		LatMin:      cov.Bounds.LatMin,
		LatMax:      cov.Bounds.LatMax,
		LonMin:      cov.Bounds.LonMin,
		LonMax:      cov.Bounds.LonMax,
		Generated:   time.Now().UTC(),
	}
	h.coverageCache.Set("coverage", resp)

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   resp,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// Stats returns the dataset snapshot
//
// @Summary Get dataset statistics
// @Description Returns float and profile counts, date range, and region list. Served through a TTL cache.
// @Tags Meta
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.DatabaseStats} "Dataset statistics"
// @Failure 500 {object} models.APIResponse "Store failure"
// @Router /stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
		return
	}

	if cached, ok := h.statsCache.Get("stats"); ok {
		respondJSON(w, http.StatusOK, &models.APIResponse{
			Status: "success",
			Data:   cached,
			Metadata: models.Metadata{
				Timestamp: time.Now(),
				Cached:    true,
			},
		})
		return
	}

	stats, err := h.db.Stats(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeDatabase, "Failed to read dataset statistics", err)
		return
	}
	h.statsCache.Set("stats", stats)

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   stats,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// History lists recent queries
//
// @Summary List recent queries
// @Description Returns journaled pipeline invocations, newest first.
// @Tags Meta
// @Produce json
// @Param limit query int false "Maximum entries to return (1-100, default 20)"
// @Success 200 {object} models.APIResponse "Recent queries"
// @Failure 500 {object} models.APIResponse "Journal failure"
// @Router /history [get]
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
		return
	}

	limit := getIntParam(r, "limit", defaultHistoryLimit)
	if limit < 1 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	entries, err := h.journal.Recent(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternal, "Failed to read query history", err)
		return
	}

	items := make([]models.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		items = append(items, models.HistoryEntry{
			ID:          e.ID,
			Query:       e.Query,
			QueryType:   models.QueryType(e.Type),
			Method:      e.Method,
			Confidence:  e.Confidence,
			SQLCount:    e.SQLCount,
			VectorCount: e.VectorCount,
			Success:     true,
			ElapsedMS:   e.ElapsedMS,
			Timestamp:   e.Timestamp,
		})
	}

	respondJSONNoStore(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"queries": items,
			"count":   len(items),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// Trajectory returns one float's path as GeoJSON
//
// @Summary Get a float's trajectory
// @Description Returns the float's profile positions in date order as a GeoJSON LineString FeatureCollection.
// @Tags Meta
// @Produce json
// @Param float_id path string true "WMO platform identifier"
// @Success 200 {object} models.GeoJSONFeatureCollection "Trajectory"
// @Failure 404 {object} models.APIResponse "Unknown float"
// @Router /floats/{float_id}/trajectory [get]
func (h *Handler) Trajectory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
		return
	}

	floatID := strings.TrimSpace(chi.URLParam(r, "float_id"))
	if floatID == "" {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, "float_id is required", nil)
		return
	}

	points, err := h.db.FloatTrajectory(r.Context(), floatID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeDatabase, "Failed to read trajectory", err)
		return
	}
	if len(points) == 0 {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "No trajectory data for float "+sanitizeLogValue(floatID), nil)
		return
	}

	coords := make([][2]float64, 0, len(points))
	for _, p := range points {
		coords = append(coords, [2]float64{p.Latitude, p.Longitude})
	}
	collection := models.NewLineStringCollection(coords, map[string]any{
		"float_id":   floatID,
		"n_profiles": len(points),
		"start":      points[0].Timestamp,
		"end":        points[len(points)-1].Timestamp,
	})

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   collection,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
