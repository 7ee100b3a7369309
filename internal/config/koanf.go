// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/shoprec/config.yaml",
	"/etc/shoprec/config.yml",
}

// ConfigPathEnvVar overrides the config file search.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultLLMEndpoint is the OpenAI chat-completions URL.
const DefaultLLMEndpoint = "https://api.openai.com/v1/chat/completions"

func defaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Endpoint:          DefaultLLMEndpoint,
			Model:             "gpt-3.5-turbo",
			MaxTokens:         1000,
			Temperature:       0.7,
			Timeout:           30 * time.Second,
			RequestsPerSecond: 5,
			Burst:             10,
		},
		Cache: CacheConfig{
			Enabled:       true,
			Backend:       "file",
			Dir:           "cache",
			TTLHours:      24,
			SweepInterval: time.Hour,
		},
		Catalog: CatalogConfig{
			DataPath: "data/products.json",
		},
		Recommend: RecommendConfig{
			MaxCandidates:       15,
			RecommendationCount: 5,
			RequestTimeout:      60 * time.Second,
			Weights: WeightsConfig{
				PreferredCategory: 4,
				BrowsedCategory:   3,
				PreferredBrand:    4,
				BrowsedBrand:      2.5,
				InPriceRange:      3,
				NearPriceRange:    1,
				PriceCloseToAvg:   2,
				PriceNearAvg:      1,
				RatingExcellent:   2,
				RatingGreat:       1.5,
				RatingGood:        1,
				TagMatch:          0.75,
				FeatureMatch:      0.5,
				Discovery:         1,
			},
		},
		Server: ServerConfig{
			Port:            5000,
			Host:            "0.0.0.0",
			Timeout:         90 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   60,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf loads configuration in three layers:
//
//  1. Defaults: built-in values from defaultConfig
//  2. Config file: optional YAML (CONFIG_PATH or DefaultConfigPaths)
//  3. Environment variables: only those listed in envMappings
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated strings when set via env.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
// The first block keeps the variable names earlier deployments used.
var envMappings = map[string]string{
	"openai_api_key":  "llm.api_key",
	"model_name":      "llm.model",
	"max_tokens":      "llm.max_tokens",
	"temperature":     "llm.temperature",
	"data_path":       "catalog.data_path",
	"use_cache":       "cache.enabled",
	"cache_dir":       "cache.dir",
	"cache_ttl_hours": "cache.ttl_hours",

	"llm_endpoint":            "llm.endpoint",
	"llm_timeout":             "llm.timeout",
	"llm_requests_per_second": "llm.requests_per_second",
	"llm_burst":               "llm.burst",

	"cache_backend":        "cache.backend",
	"cache_sweep_interval": "cache.sweep_interval",

	"recommend_max_candidates":  "recommend.max_candidates",
	"recommend_count":           "recommend.recommendation_count",
	"recommend_request_timeout": "recommend.request_timeout",

	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",

	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"admin_token":         "security.admin_token",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc returns "" for unmapped variables so unrelated
// environment does not leak into the configuration.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
