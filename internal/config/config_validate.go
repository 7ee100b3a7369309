// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package config

import (
	"fmt"
	"net/url"
	"time"
)

// Validate checks that configuration values are usable.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateLLM,
		c.validateCache,
		c.validateCatalog,
		c.validateRecommend,
		c.validateServer,
		c.validateSecurity,
		c.validateLogging,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateLLM() error {
	u, err := url.Parse(c.LLM.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("LLM_ENDPOINT must be an absolute http(s) URL, got %q", c.LLM.Endpoint)
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("MODEL_NAME is required")
	}
	if c.LLM.MaxTokens < 1 {
		return fmt.Errorf("MAX_TOKENS must be positive, got %d", c.LLM.MaxTokens)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("TEMPERATURE must be between 0 and 2, got %v", c.LLM.Temperature)
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be positive")
	}
	if c.LLM.RequestsPerSecond < 0 {
		return fmt.Errorf("LLM_REQUESTS_PER_SECOND must be non-negative")
	}
	if c.LLM.RequestsPerSecond > 0 && c.LLM.Burst < 1 {
		return fmt.Errorf("LLM_BURST must be at least 1 when rate limiting is enabled")
	}
	return nil
}

var validCacheBackends = map[string]bool{
	"file":   true,
	"badger": true,
}

func (c *Config) validateCache() error {
	if !c.Cache.Enabled {
		return nil
	}
	if !validCacheBackends[c.Cache.Backend] {
		return fmt.Errorf("CACHE_BACKEND must be one of: file, badger")
	}
	if c.Cache.Dir == "" {
		return fmt.Errorf("CACHE_DIR is required when caching is enabled")
	}
	if c.Cache.TTLHours < 0 {
		return fmt.Errorf("CACHE_TTL_HOURS must be non-negative, got %v", c.Cache.TTLHours)
	}
	if c.Cache.SweepInterval < 0 {
		return fmt.Errorf("CACHE_SWEEP_INTERVAL must be non-negative")
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if c.Catalog.DataPath == "" {
		return fmt.Errorf("DATA_PATH is required")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.MaxCandidates < 1 {
		return fmt.Errorf("RECOMMEND_MAX_CANDIDATES must be positive, got %d", c.Recommend.MaxCandidates)
	}
	if c.Recommend.RecommendationCount < 1 || c.Recommend.RecommendationCount > c.Recommend.MaxCandidates {
		return fmt.Errorf("RECOMMEND_COUNT must be between 1 and RECOMMEND_MAX_CANDIDATES (%d)", c.Recommend.MaxCandidates)
	}
	if c.Recommend.RequestTimeout <= 0 {
		return fmt.Errorf("RECOMMEND_REQUEST_TIMEOUT must be positive")
	}
	w := c.Recommend.Weights
	for name, v := range map[string]float64{
		"preferred_category": w.PreferredCategory,
		"browsed_category":   w.BrowsedCategory,
		"preferred_brand":    w.PreferredBrand,
		"browsed_brand":      w.BrowsedBrand,
		"in_price_range":     w.InPriceRange,
		"near_price_range":   w.NearPriceRange,
		"price_close_to_avg": w.PriceCloseToAvg,
		"price_near_avg":     w.PriceNearAvg,
		"rating_excellent":   w.RatingExcellent,
		"rating_great":       w.RatingGreat,
		"rating_good":        w.RatingGood,
		"tag_match":          w.TagMatch,
		"feature_match":      w.FeatureMatch,
		"discovery":          w.Discovery,
	} {
		if v < 0 {
			return fmt.Errorf("recommend.weights.%s must be non-negative, got %v", name, v)
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// HasWildcardCORS reports whether any origin is "*".
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
