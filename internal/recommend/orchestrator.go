// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/shoprec/internal/cache"
	"github.com/tomtom215/shoprec/internal/events"
	"github.com/tomtom215/shoprec/internal/metrics"
	"github.com/tomtom215/shoprec/internal/models"
)

var (
	// ErrUpstreamFailure wraps every failed completion call.
	ErrUpstreamFailure = errors.New("recommendation model call failed")

	// ErrCacheDisabled is returned by cache administration when no store
	// is configured.
	ErrCacheDisabled = errors.New("recommendation cache is disabled")
)

// Completer produces a free-text completion for a system and user prompt.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error)
}

// EventPublisher receives domain notifications. Implemented by events.Bus.
type EventPublisher interface {
	PublishRecommendationGenerated(ctx context.Context, ev events.RecommendationGenerated) error
	PublishCacheSwept(ctx context.Context, ev events.CacheSwept) error
	PublishCacheCleared(ctx context.Context, ev events.CacheCleared) error
}

// Catalog is the read-only product source for one request.
type Catalog interface {
	ProductLookup
	Products() []models.Product
	Resolve(ids []string) []models.Product
}

// Deps are the orchestrator's collaborators. Completer is required; a nil
// Cache disables caching and a nil Events disables publishing.
type Deps struct {
	Completer Completer
	Cache     cache.Store
	Events    EventPublisher
}

// Metrics are request counters since construction.
type Metrics struct {
	Requests         int64 `json:"requests"`
	CacheHits        int64 `json:"cache_hits"`
	CacheMisses      int64 `json:"cache_misses"`
	ParseFailures    int64 `json:"parse_failures"`
	UpstreamFailures int64 `json:"upstream_failures"`
	CacheWriteErrors int64 `json:"cache_write_errors"`
}

// Orchestrator turns preferences and browsing history into recommendations:
// cache lookup, candidate selection, one completion call, parsing and cache
// population.
type Orchestrator struct {
	cfg      Config
	selector *Selector
	llm      Completer
	store    cache.Store
	events   EventPublisher
	logger   zerolog.Logger
	now      func() time.Time

	requests         atomic.Int64
	cacheHits        atomic.Int64
	cacheMisses      atomic.Int64
	parseFailures    atomic.Int64
	upstreamFailures atomic.Int64
	cacheWriteErrors atomic.Int64
}

// NewOrchestrator creates an orchestrator. When caching is enabled, expired
// and corrupt entries are swept once before it is returned; a failed sweep
// is logged and does not prevent startup.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewOrchestrator(ctx context.Context, cfg *Config, deps Deps, logger zerolog.Logger) (*Orchestrator, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recommend config: %w", err)
	}
	if deps.Completer == nil {
		return nil, errors.New("recommend: completer is required")
	}

	o := &Orchestrator{
		cfg:      *cfg.Clone(),
		selector: NewSelector(cfg.Weights, cfg.DiversityCategories),
		llm:      deps.Completer,
		store:    deps.Cache,
		events:   deps.Events,
		logger:   logger.With().Str("component", "recommend").Logger(),
		now:      time.Now,
	}

	if o.store != nil {
		if _, err := o.SweepCache(ctx, events.SweepStartup); err != nil {
			o.logger.Warn().Err(err).Msg("Startup cache sweep failed")
		}
	}

	return o, nil
}

// GenerateRecommendations produces recommendations for one request.
//
// A completion that cannot be parsed yields a result with Error set and a
// nil error. Only a failed completion call returns an error, wrapping
// ErrUpstreamFailure.
func (o *Orchestrator) GenerateRecommendations(
	ctx context.Context,
	prefs models.UserPreferences,
	history []string,
	catalog Catalog,
) (*models.RecommendationResult, error) {
	start := o.now()
	o.requests.Add(1)

	key := cache.Fingerprint(prefs, history)
	logger := o.logger.With().Str("fingerprint", key).Int("history", len(history)).Logger()

	if o.store != nil {
		if cached, ok := o.store.Get(ctx, key); ok {
			o.cacheHits.Add(1)
			cached.Cached = true
			logger.Debug().Int("count", cached.Count).Msg("Serving cached recommendations")
			o.finish(ctx, key, cached, start, "cached", -1)
			return cached, nil
		}
		o.cacheMisses.Add(1)
	}

	browsed := catalog.Resolve(history)
	candidates := o.selector.Select(prefs, browsed, catalog.Products(), o.cfg.MaxCandidates)
	prompt := BuildPrompt(prefs, browsed, candidates, o.cfg.RecommendationCount)

	logger.Debug().
		Int("browsed", len(browsed)).
		Int("candidates", len(candidates)).
		Int("prompt_bytes", len(prompt)).
		Msg("Requesting completion")

	text, err := o.complete(ctx, prompt)
	if err != nil {
		o.upstreamFailures.Add(1)
		logger.Error().Err(err).Msg("Completion failed")
		o.publishGenerated(ctx, events.RecommendationGenerated{
			Fingerprint: key,
			Error:       err.Error(),
			LatencyMS:   o.now().Sub(start).Milliseconds(),
		})
		metrics.RecordRecommendation("upstream_error", len(candidates), o.now().Sub(start))
		return nil, fmt.Errorf("%w: %w", ErrUpstreamFailure, err)
	}

	result := ParseResponse(text, catalog)
	outcome := "success"
	switch {
	case result.Error != "":
		outcome = "parse_error"
		o.parseFailures.Add(1)
		logger.Warn().Str("error", result.Error).Int("response_bytes", len(text)).Msg("Unparseable completion")
	case result.Count == 0:
		outcome = "empty"
	case o.store != nil:
		if err := o.store.Put(ctx, key, result, cache.Meta{Preferences: prefs, HistoryCount: len(history)}); err != nil {
			o.cacheWriteErrors.Add(1)
			logger.Warn().Err(err).Msg("Failed to cache recommendations")
		}
	}

	logger.Info().Int("count", result.Count).Str("outcome", outcome).Msg("Recommendations generated")
	o.finish(ctx, key, result, start, outcome, len(candidates))
	return result, nil
}

func (o *Orchestrator) complete(ctx context.Context, prompt string) (string, error) {
	if o.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.RequestTimeout)
		defer cancel()
	}
	return o.llm.Complete(ctx, SystemPrompt, prompt, o.cfg.MaxTokens, o.cfg.Temperature)
}

func (o *Orchestrator) finish(ctx context.Context, key string, result *models.RecommendationResult, start time.Time, outcome string, candidates int) {
	elapsed := o.now().Sub(start)
	metrics.RecordRecommendation(outcome, candidates, elapsed)
	o.publishGenerated(ctx, events.RecommendationGenerated{
		Fingerprint: key,
		Count:       result.Count,
		Cached:      result.Cached,
		Error:       result.Error,
		LatencyMS:   elapsed.Milliseconds(),
	})
}

func (o *Orchestrator) publishGenerated(ctx context.Context, ev events.RecommendationGenerated) {
	if o.events == nil {
		return
	}
	if err := o.events.PublishRecommendationGenerated(ctx, ev); err != nil {
		o.logger.Warn().Err(err).Msg("Failed to publish recommendation event")
	}
}

// CacheEnabled reports whether a cache store is configured.
func (o *Orchestrator) CacheEnabled() bool {
	return o.store != nil
}

// SweepCache removes expired and corrupt entries. reason is one of the
// events.Sweep* values and is carried on the published event.
func (o *Orchestrator) SweepCache(ctx context.Context, reason string) (int, error) {
	if o.store == nil {
		return 0, ErrCacheDisabled
	}
	removed, err := o.store.SweepExpired(ctx)
	if err != nil {
		return removed, fmt.Errorf("sweep cache: %w", err)
	}
	o.logger.Info().Int("removed", removed).Str("reason", reason).Msg("Cache swept")
	if o.events != nil {
		if err := o.events.PublishCacheSwept(ctx, events.CacheSwept{Removed: removed, Reason: reason}); err != nil {
			o.logger.Warn().Err(err).Msg("Failed to publish sweep event")
		}
	}
	return removed, nil
}

// ClearCache removes every cache entry.
func (o *Orchestrator) ClearCache(ctx context.Context) (int, error) {
	if o.store == nil {
		return 0, ErrCacheDisabled
	}
	removed, err := o.store.ClearAll(ctx)
	if err != nil {
		return removed, fmt.Errorf("clear cache: %w", err)
	}
	o.logger.Info().Int("removed", removed).Msg("Cache cleared")
	if o.events != nil {
		if err := o.events.PublishCacheCleared(ctx, events.CacheCleared{Removed: removed}); err != nil {
			o.logger.Warn().Err(err).Msg("Failed to publish clear event")
		}
	}
	return removed, nil
}

// CacheStats returns a snapshot of the cache.
func (o *Orchestrator) CacheStats(ctx context.Context) (cache.Stats, error) {
	if o.store == nil {
		return cache.Stats{Enabled: false}, ErrCacheDisabled
	}
	return o.store.Stats(ctx)
}

// Candidates exposes the ranked candidate set for a request without calling
// the model. Used for diagnostics.
func (o *Orchestrator) Candidates(prefs models.UserPreferences, history []string, catalog Catalog) []ScoredCandidate {
	ranked := o.selector.Rank(prefs, catalog.Resolve(history), catalog.Products())
	if len(ranked) > o.cfg.MaxCandidates {
		ranked = ranked[:o.cfg.MaxCandidates]
	}
	return ranked
}

// GetMetrics returns the current counters.
func (o *Orchestrator) GetMetrics() Metrics {
	return Metrics{
		Requests:         o.requests.Load(),
		CacheHits:        o.cacheHits.Load(),
		CacheMisses:      o.cacheMisses.Load(),
		ParseFailures:    o.parseFailures.Load(),
		UpstreamFailures: o.upstreamFailures.Load(),
		CacheWriteErrors: o.cacheWriteErrors.Load(),
	}
}

// Config returns a copy of the active configuration.
func (o *Orchestrator) Config() *Config {
	return o.cfg.Clone()
}
