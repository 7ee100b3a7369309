// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/shoprec/internal/cache"
	"github.com/tomtom215/shoprec/internal/catalog"
	"github.com/tomtom215/shoprec/internal/models"
	"github.com/tomtom215/shoprec/internal/recommend"
)

const p1Reply = "```json\n[{\"product_id\": \"p1\", \"explanation\": \"Matches your taste\", \"score\": 8}]\n```"

type stubCompleter struct {
	mu       sync.Mutex
	response string
	err      error
	calls    int
}

func (s *stubCompleter) Complete(context.Context, string, string, int, float64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.response, s.err
}

func (s *stubCompleter) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type staticCircuit string

func (c staticCircuit) State() string { return string(c) }

type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func testProducts() []models.Product {
	return []models.Product{
		{ID: "p1", Name: "Noise Cancelling Headphones", Category: "electronics", Brand: "Sonic", Price: 199, Rating: 4.7},
		{ID: "p2", Name: "Trail Running Shoes", Category: "sports", Brand: "Stride", Price: 89, Rating: 4.3},
		{ID: "p3", Name: "Cast Iron Skillet", Category: "kitchen", Brand: "Forge", Price: 35, Rating: 4.9},
	}
}

func newTestCatalog(t *testing.T, products []models.Product) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(products)
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	return c
}

type testServer struct {
	router http.Handler
	llm    *stubCompleter
	orch   *recommend.Orchestrator
}

type serverOptions struct {
	withCache  bool
	products   []models.Product
	middleware *MiddlewareConfig
	circuit    CircuitStater
}

func newTestServer(t *testing.T, opts serverOptions) *testServer {
	t.Helper()

	products := opts.products
	if products == nil {
		products = testProducts()
	}

	llm := &stubCompleter{response: p1Reply}
	deps := recommend.Deps{Completer: llm}
	if opts.withCache {
		store := cache.NewFileStore(t.TempDir(), cache.Options{TTL: time.Hour, Logger: zerolog.Nop()})
		t.Cleanup(func() { _ = store.Close() })
		deps.Cache = store
	}

	orch, err := recommend.NewOrchestrator(context.Background(), recommend.DefaultConfig(), deps, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewOrchestrator() error = %v", err)
	}

	h, err := NewHandler(orch, newTestCatalog(t, products), HandlerOptions{
		Version:      "test",
		CacheBackend: "file",
		Circuit:      opts.circuit,
	})
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}

	mwCfg := opts.middleware
	if mwCfg == nil {
		mwCfg = DefaultMiddlewareConfig()
		mwCfg.RateLimitDisabled = true
	}

	return &testServer{router: NewRouter(h, NewMiddleware(mwCfg)), llm: llm, orch: orch}
}

func (s *testServer) do(t *testing.T, method, path, body string, headers ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode response: %v\nbody: %s", err, rec.Body.String())
		}
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data: %v\ndata: %s", err, env.Data)
	}
}
