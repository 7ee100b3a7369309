// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package api

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/shoprec/internal/cache"
	"github.com/tomtom215/shoprec/internal/catalog"
	"github.com/tomtom215/shoprec/internal/models"
	"github.com/tomtom215/shoprec/internal/recommend"
)

// Recommender is the recommendation surface the handlers need.
// Implemented by recommend.Orchestrator.
type Recommender interface {
	GenerateRecommendations(ctx context.Context, prefs models.UserPreferences, history []string, catalog recommend.Catalog) (*models.RecommendationResult, error)
	Candidates(prefs models.UserPreferences, history []string, catalog recommend.Catalog) []recommend.ScoredCandidate
	GetMetrics() recommend.Metrics
	CacheEnabled() bool
	SweepCache(ctx context.Context, reason string) (int, error)
	ClearCache(ctx context.Context) (int, error)
	CacheStats(ctx context.Context) (cache.Stats, error)
}

// CircuitStater reports the LLM circuit breaker state.
// Implemented by llm.BreakerClient.
type CircuitStater interface {
	State() string
}

// HandlerOptions are optional handler settings.
type HandlerOptions struct {
	Version      string
	CacheBackend string

	// Circuit is nil when the LLM client has no breaker.
	Circuit CircuitStater
}

// Handler serves the HTTP API.
type Handler struct {
	recommender Recommender
	catalog     *catalog.Catalog
	circuit     CircuitStater
	version     string
	backend     string
	startTime   time.Time
}

// NewHandler creates a handler over an orchestrator and the product catalog.
func NewHandler(recommender Recommender, cat *catalog.Catalog, opts HandlerOptions) (*Handler, error) {
	if recommender == nil {
		return nil, errors.New("api: recommender is required")
	}
	if cat == nil {
		return nil, errors.New("api: catalog is required")
	}
	version := opts.Version
	if version == "" {
		version = "dev"
	}
	return &Handler{
		recommender: recommender,
		catalog:     cat,
		circuit:     opts.Circuit,
		version:     version,
		backend:     opts.CacheBackend,
		startTime:   time.Now(),
	}, nil
}
