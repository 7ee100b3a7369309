// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package main

import (
	"github.com/rs/zerolog"

	"github.com/tomtom215/shoprec/internal/api"
	"github.com/tomtom215/shoprec/internal/cache"
	"github.com/tomtom215/shoprec/internal/config"
	"github.com/tomtom215/shoprec/internal/llm"
	"github.com/tomtom215/shoprec/internal/logging"
)

// openCache returns nil when caching is disabled.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func openCache(cfg *config.Config, logger zerolog.Logger) (cache.Store, error) {
	if !cfg.Cache.Enabled {
		logger.Info().Msg("Recommendation cache disabled")
		return nil, nil
	}
	store, err := cache.New(cfg.Cache.Backend, cfg.Cache.Dir, cache.Options{
		TTL:    cfg.Cache.TTL(),
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}
	logger.Info().
		Str("backend", cfg.Cache.Backend).
		Str("dir", cfg.Cache.Dir).
		Float64("ttl_hours", cfg.Cache.TTLHours).
		Msg("Recommendation cache opened")
	return store, nil
}

// newCompleter builds the rate-limited client behind a circuit breaker.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func newCompleter(cfg *config.Config, logger zerolog.Logger) *llm.BreakerClient {
	return llm.NewBreakerClient(llm.NewClient(cfg.LLM.ClientConfig(), logger), llm.DefaultBreakerSettings(), logger)
}

// loggingConfig overlays the configured level, format and caller flag on
// the logging defaults, which keep timestamps on.
func loggingConfig(cfg *config.Config) logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = cfg.Logging.Level
	lc.Format = cfg.Logging.Format
	lc.Caller = cfg.Logging.Caller
	return lc
}

func middlewareConfig(cfg *config.Config) *api.MiddlewareConfig {
	mc := api.DefaultMiddlewareConfig()
	mc.CORSAllowedOrigins = cfg.Security.CORSOrigins
	mc.RateLimitRequests = cfg.Security.RateLimitReqs
	mc.RateLimitWindow = cfg.Security.RateLimitWindow
	mc.RateLimitDisabled = cfg.Security.RateLimitDisabled
	mc.AdminToken = cfg.Security.AdminToken
	return mc
}
