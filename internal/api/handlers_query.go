// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/floatquery/internal/logging"
	"github.com/tomtom215/floatquery/internal/models"
)

// maxQueryBodyBytes caps the request body. The query field itself is capped
// at 2000 characters; anything much larger is garbage or abuse.
const maxQueryBodyBytes = 64 * 1024

// Query runs one natural-language query through the pipeline
//
// @Summary Ask a question about the float data
// @Description Runs the natural-language query through classification, retrieval, and answer shaping. Always returns a Result; refusals and pipeline failures are carried inside it.
// @Tags Query
// @Accept json
// @Produce json
// @Param request body models.QueryRequest true "Query text and optional result budget"
// @Success 200 {object} models.APIResponse{data=models.Result} "Query resolved"
// @Failure 400 {object} models.APIResponse "Invalid request body"
// @Router /query [post]
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxQueryBodyBytes)

	var req models.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, "Request body must be valid JSON", err)
		return
	}

	if apiErr := validateRequest(&req); apiErr != nil {
		respondJSONNoStore(w, http.StatusBadRequest, &models.APIResponse{
			Status:   "error",
			Metadata: models.Metadata{Timestamp: time.Now()},
			Error:    apiErr,
		})
		return
	}

	maxResults := req.MaxResults
	if maxResults == 0 && h.config != nil {
		maxResults = h.config.API.DefaultMaxResults
	}

	started := time.Now()
	result := h.pipeline.Process(r.Context(), req.Query, maxResults)

	logging.Ctx(r.Context()).Info().
		Str("component", "api").
		Str("query_type", string(result.Metadata.QueryType)).
		Bool("success", result.Success).
		Int64("elapsed_ms", result.Metadata.ElapsedMS).
		Msg("query request served")

	respondJSONNoStore(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   result,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(started).Milliseconds(),
		},
	})
}
