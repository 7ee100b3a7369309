// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/shoprec/internal/catalog"
)

func TestNewHandler_RequiresCollaborators(t *testing.T) {
	cat, _ := catalog.New(testProducts())
	if _, err := NewHandler(nil, cat, HandlerOptions{}); err == nil {
		t.Error("expected error for nil recommender")
	}
	if _, err := NewHandler(&failingRecommender{}, nil, HandlerOptions{}); err == nil {
		t.Error("expected error for nil catalog")
	}
}

func TestRouter_NotFoundAndMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, serverOptions{})

	rec, env := s.do(t, http.MethodGet, "/api/v1/nope", "")
	if rec.Code != http.StatusNotFound || env.Error == nil || env.Error.Code != ErrCodeNotFound {
		t.Errorf("unknown route: status = %d, error = %+v", rec.Code, env.Error)
	}

	rec, _ = s.do(t, http.MethodGet, "/api/v1/recommendations", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET recommendations status = %d, want 405", rec.Code)
	}
}

func TestRouter_RequestIDEchoed(t *testing.T) {
	s := newTestServer(t, serverOptions{})

	rec, _ := s.do(t, http.MethodGet, "/api/v1/live", "", "X-Request-ID", "req-42")
	if got := rec.Header().Get("X-Request-ID"); got != "req-42" {
		t.Errorf("X-Request-ID = %q", got)
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	s := newTestServer(t, serverOptions{})
	s.do(t, http.MethodGet, "/api/v1/live", "")

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "api_requests_total") {
		t.Error("metrics output missing api_requests_total")
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	cfg := DefaultMiddlewareConfig()
	cfg.RateLimitDisabled = true
	cfg.CORSAllowedOrigins = []string{"https://shop.example"}
	s := newTestServer(t, serverOptions{middleware: cfg})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/recommendations", nil)
	req.Header.Set("Origin", "https://shop.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://shop.example" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := DefaultMiddlewareConfig()
	cfg.RateLimitRequests = 2
	cfg.RateLimitWindow = time.Minute
	s := newTestServer(t, serverOptions{middleware: cfg})

	for i := 0; i < 2; i++ {
		if rec, _ := s.do(t, http.MethodGet, "/api/v1/products", ""); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, rec.Code)
		}
	}

	rec, env := s.do(t, http.MethodGet, "/api/v1/products", "")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if env.Error == nil || env.Error.Code != ErrCodeTooManyRequests {
		t.Errorf("error = %+v", env.Error)
	}

	if rec, _ := s.do(t, http.MethodGet, "/api/v1/live", ""); rec.Code != http.StatusOK {
		t.Errorf("health probes should use their own limit, status = %d", rec.Code)
	}
}
