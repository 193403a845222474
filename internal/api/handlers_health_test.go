// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tomtom215/floatquery/internal/models"
)

func TestHealth_AllUp(t *testing.T) {
	p := &fakePipeline{health: models.HealthStatus{
		Database: true, VectorStore: true, LLM: true, Overall: true,
	}}
	h := NewHandler(p, &fakeMeta{}, &fakeHistory{}, nil, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if resp.Status != "success" {
		t.Errorf("envelope status = %q", resp.Status)
	}
}

func TestHealth_DegradedIs503(t *testing.T) {
	p := &fakePipeline{health: models.HealthStatus{
		Database: true, VectorStore: false, LLM: true, Overall: false,
	}}
	h := NewHandler(p, &fakeMeta{}, &fakeHistory{}, nil, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 when a dependency is down", rec.Code)
	}
}

func TestHealthLive(t *testing.T) {
	h := NewHandler(&fakePipeline{}, &fakeMeta{pingErr: errStoreClosed}, &fakeHistory{}, nil, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil)
	rec := httptest.NewRecorder()
	h.HealthLive(rec, req)

	// Liveness ignores dependencies.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestHealthReady(t *testing.T) {
	tests := []struct {
		name    string
		pingErr error
		want    int
	}{
		{"store up", nil, http.StatusOK},
		{"store down", errStoreClosed, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakePipeline{}, &fakeMeta{pingErr: tt.pingErr}, &fakeHistory{}, nil, testConfig())

			req := httptest.NewRequest(http.MethodGet, "/api/v1/health/ready", nil)
			rec := httptest.NewRecorder()
			h.HealthReady(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestHealth_MethodNotAllowed(t *testing.T) {
	h := NewHandler(&fakePipeline{}, &fakeMeta{}, &fakeHistory{}, nil, testConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}
