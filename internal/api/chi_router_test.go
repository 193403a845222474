// FloatQuery - Conversational Query Pipeline for ARGO Ocean Float Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/floatquery

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomtom215/floatquery/internal/models"
)

func testRouter(t *testing.T, p *fakePipeline, mwConfig *ChiMiddlewareConfig) http.Handler {
	t.Helper()
	db := &fakeMeta{stats: &models.DatabaseStats{TotalProfiles: 100}}
	handler := NewHandler(p, db, &fakeHistory{}, nil, testConfig())
	return NewRouter(handler, mwConfig).SetupChi()
}

func TestRouter_QueryRoute(t *testing.T) {
	p := &fakePipeline{result: successResult()}
	router := testRouter(t, p, &ChiMiddlewareConfig{RateLimitDisabled: true})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/query", strings.NewReader(`{"query":"how many profiles"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}
	if p.callCount != 1 {
		t.Errorf("pipeline called %d times", p.callCount)
	}
}

func TestRouter_QueryRouteRejectsGET(t *testing.T) {
	router := testRouter(t, &fakePipeline{}, &ChiMiddlewareConfig{RateLimitDisabled: true})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/query", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestRouter_HealthRoutes(t *testing.T) {
	p := &fakePipeline{health: models.HealthStatus{
		Database: true, VectorStore: true, LLM: true, Overall: true,
	}}
	router := testRouter(t, p, &ChiMiddlewareConfig{RateLimitDisabled: true})

	for _, path := range []string{"/api/v1/health", "/api/v1/health/live", "/api/v1/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", path, rec.Code)
		}
	}
}

func TestRouter_MetaRoutes(t *testing.T) {
	router := testRouter(t, &fakePipeline{}, &ChiMiddlewareConfig{RateLimitDisabled: true})

	for _, path := range []string{"/api/v1/coverage", "/api/v1/stats", "/api/v1/history"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200, body: %s", path, rec.Code, rec.Body.String())
		}
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	router := testRouter(t, &fakePipeline{}, &ChiMiddlewareConfig{RateLimitDisabled: true})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Error("expected Prometheus exposition output")
	}
}

func TestRouter_RequestIDEchoed(t *testing.T) {
	router := testRouter(t, &fakePipeline{}, &ChiMiddlewareConfig{RateLimitDisabled: true})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	req.Header.Set("X-Request-ID", "req-12345")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "req-12345" {
		t.Errorf("X-Request-ID = %q, want echo of the caller's ID", got)
	}
}

func TestRouter_RequestIDGenerated(t *testing.T) {
	router := testRouter(t, &fakePipeline{}, &ChiMiddlewareConfig{RateLimitDisabled: true})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing generated X-Request-ID")
	}
}

func TestRouter_SecurityHeaders(t *testing.T) {
	router := testRouter(t, &fakePipeline{}, &ChiMiddlewareConfig{RateLimitDisabled: true})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	headers := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}
	for name, want := range headers {
		if got := rec.Header().Get(name); got != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}
	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS must not be set on plain HTTP")
	}
}

func TestRouter_QueryRateLimit(t *testing.T) {
	p := &fakePipeline{result: successResult()}
	router := testRouter(t, p, &ChiMiddlewareConfig{QueryRateLimit: 3, HealthRateLimit: 1000})

	var last *httptest.ResponseRecorder
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/query", strings.NewReader(`{"query":"hi"}`))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "198.51.100.7:4000"
		last = httptest.NewRecorder()
		router.ServeHTTP(last, req)
	}

	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("4th request status = %d, want 429", last.Code)
	}
	resp := decodeEnvelope(t, last)
	if resp.Error == nil || resp.Error.Code != "RATE_LIMIT_EXCEEDED" {
		t.Errorf("error = %+v, want RATE_LIMIT_EXCEEDED envelope", resp.Error)
	}
}

func TestRouter_UnknownRouteIs404(t *testing.T) {
	router := testRouter(t, &fakePipeline{}, &ChiMiddlewareConfig{RateLimitDisabled: true})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/nonsense", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
