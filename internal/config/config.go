// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package config

import (
	"time"
)

// Config holds all application configuration.
type Config struct {
	LLM       LLMConfig       `koanf:"llm"`
	Cache     CacheConfig     `koanf:"cache"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// LLMConfig configures the chat-completions endpoint used for the final
// recommendation step.
type LLMConfig struct {
	// APIKey is sent as a bearer token. An empty key is allowed (the server
	// starts and every recommendation request fails upstream) so that the
	// catalog endpoints remain usable.
	APIKey      string        `koanf:"api_key"`
	Endpoint    string        `koanf:"endpoint"`
	Model       string        `koanf:"model"`
	MaxTokens   int           `koanf:"max_tokens"`
	Temperature float64       `koanf:"temperature"`
	Timeout     time.Duration `koanf:"timeout"`

	// RequestsPerSecond limits outbound calls; 0 disables the limiter.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`
}

// CacheConfig configures the recommendation response cache.
type CacheConfig struct {
	Enabled bool `koanf:"enabled"`

	// Backend selects the store: "file" (one JSON file per entry) or
	// "badger" (embedded key-value store). Both live under Dir.
	Backend string `koanf:"backend"`
	Dir     string `koanf:"dir"`

	// TTLHours is fractional so short TTLs can be configured; 0 means every
	// entry is expired as soon as it is written.
	TTLHours float64 `koanf:"ttl_hours"`

	// SweepInterval is how often expired entries are removed in the
	// background. 0 disables the periodic sweep; the startup sweep still runs.
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

// TTL returns TTLHours as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours * float64(time.Hour))
}

// CatalogConfig locates the product catalog.
type CatalogConfig struct {
	DataPath string `koanf:"data_path"`
}

// RecommendConfig tunes candidate selection and the prompt.
type RecommendConfig struct {
	MaxCandidates       int           `koanf:"max_candidates"`
	RecommendationCount int           `koanf:"recommendation_count"`
	RequestTimeout      time.Duration `koanf:"request_timeout"`
	Weights             WeightsConfig `koanf:"weights"`
}

// WeightsConfig holds the relevance heuristic's contributions.
type WeightsConfig struct {
	PreferredCategory float64 `koanf:"preferred_category"`
	BrowsedCategory   float64 `koanf:"browsed_category"`
	PreferredBrand    float64 `koanf:"preferred_brand"`
	BrowsedBrand      float64 `koanf:"browsed_brand"`
	InPriceRange      float64 `koanf:"in_price_range"`
	NearPriceRange    float64 `koanf:"near_price_range"`
	PriceCloseToAvg   float64 `koanf:"price_close_to_avg"`
	PriceNearAvg      float64 `koanf:"price_near_avg"`
	RatingExcellent   float64 `koanf:"rating_excellent"`
	RatingGreat       float64 `koanf:"rating_great"`
	RatingGood        float64 `koanf:"rating_good"`
	TagMatch          float64 `koanf:"tag_match"`
	FeatureMatch      float64 `koanf:"feature_match"`
	Discovery         float64 `koanf:"discovery"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// SecurityConfig holds CORS, rate limiting and admin access settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// AdminToken protects the cache sweep and clear endpoints. When empty
	// those endpoints are open.
	AdminToken string `koanf:"admin_token"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	Format string `koanf:"format"`

	// Caller includes file:line in every log line.
	Caller bool `koanf:"caller"`
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, in that order of increasing precedence.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
