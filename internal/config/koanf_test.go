// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir on Go < 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restore working directory: %v", err)
		}
	})
}

// noConfigFile points CONFIG_PATH at a missing file and moves into an empty
// directory so no config.yaml from the repository is picked up.
func noConfigFile(t *testing.T) {
	t.Helper()
	chdir(t, t.TempDir())
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.LLM.Model != "gpt-3.5-turbo" {
		t.Errorf("LLM.Model = %q, want gpt-3.5-turbo", cfg.LLM.Model)
	}
	if cfg.LLM.MaxTokens != 1000 {
		t.Errorf("LLM.MaxTokens = %d, want 1000", cfg.LLM.MaxTokens)
	}
	if cfg.LLM.Temperature != 0.7 {
		t.Errorf("LLM.Temperature = %v, want 0.7", cfg.LLM.Temperature)
	}
	if cfg.Catalog.DataPath != "data/products.json" {
		t.Errorf("Catalog.DataPath = %q, want data/products.json", cfg.Catalog.DataPath)
	}
	if !cfg.Cache.Enabled {
		t.Error("Cache.Enabled should be true by default")
	}
	if cfg.Cache.Dir != "cache" {
		t.Errorf("Cache.Dir = %q, want cache", cfg.Cache.Dir)
	}
	if cfg.Cache.TTL() != 24*time.Hour {
		t.Errorf("Cache.TTL() = %v, want 24h", cfg.Cache.TTL())
	}
	if cfg.Recommend.MaxCandidates != 15 {
		t.Errorf("Recommend.MaxCandidates = %d, want 15", cfg.Recommend.MaxCandidates)
	}
	if cfg.Recommend.Weights.PreferredCategory != 4 || cfg.Recommend.Weights.BrowsedBrand != 2.5 {
		t.Errorf("unexpected default weights: %+v", cfg.Recommend.Weights)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadWithKoanf_Defaults(t *testing.T) {
	noConfigFile(t)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("Cache.Backend = %q, want file", cfg.Cache.Backend)
	}
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	noConfigFile(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("MODEL_NAME", "gpt-4o-mini")
	t.Setenv("MAX_TOKENS", "512")
	t.Setenv("TEMPERATURE", "0.2")
	t.Setenv("USE_CACHE", "false")
	t.Setenv("CACHE_TTL_HOURS", "0.5")
	t.Setenv("CACHE_SWEEP_INTERVAL", "10m")
	t.Setenv("HTTP_PORT", "8088")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.LLM.APIKey != "sk-test" {
		t.Errorf("LLM.APIKey = %q, want sk-test", cfg.LLM.APIKey)
	}
	if cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("LLM.Model = %q, want gpt-4o-mini", cfg.LLM.Model)
	}
	if cfg.LLM.MaxTokens != 512 {
		t.Errorf("LLM.MaxTokens = %d, want 512", cfg.LLM.MaxTokens)
	}
	if cfg.LLM.Temperature != 0.2 {
		t.Errorf("LLM.Temperature = %v, want 0.2", cfg.LLM.Temperature)
	}
	if cfg.Cache.Enabled {
		t.Error("Cache.Enabled should be false")
	}
	if cfg.Cache.TTL() != 30*time.Minute {
		t.Errorf("Cache.TTL() = %v, want 30m", cfg.Cache.TTL())
	}
	if cfg.Cache.SweepInterval != 10*time.Minute {
		t.Errorf("Cache.SweepInterval = %v, want 10m", cfg.Cache.SweepInterval)
	}
	if cfg.Server.Port != 8088 {
		t.Errorf("Server.Port = %d, want 8088", cfg.Server.Port)
	}
	want := []string{"https://a.example", "https://b.example"}
	if strings.Join(cfg.Security.CORSOrigins, "|") != strings.Join(want, "|") {
		t.Errorf("Security.CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
}

func TestLoadWithKoanf_ConfigFile(t *testing.T) {
	chdir(t, t.TempDir())
	path := filepath.Join(t.TempDir(), "shoprec.yaml")
	content := `
llm:
  model: local-model
  endpoint: http://localhost:8080/v1/chat/completions
cache:
  backend: badger
  dir: /tmp/shoprec-cache
recommend:
  recommendation_count: 3
  weights:
    tag_match: 1.25
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("MODEL_NAME", "env-wins")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.LLM.Model != "env-wins" {
		t.Errorf("LLM.Model = %q, want env-wins (env overrides file)", cfg.LLM.Model)
	}
	if cfg.LLM.Endpoint != "http://localhost:8080/v1/chat/completions" {
		t.Errorf("LLM.Endpoint = %q", cfg.LLM.Endpoint)
	}
	if cfg.Cache.Backend != "badger" {
		t.Errorf("Cache.Backend = %q, want badger", cfg.Cache.Backend)
	}
	if cfg.Recommend.RecommendationCount != 3 {
		t.Errorf("Recommend.RecommendationCount = %d, want 3", cfg.Recommend.RecommendationCount)
	}
	if cfg.Recommend.Weights.TagMatch != 1.25 {
		t.Errorf("Weights.TagMatch = %v, want 1.25", cfg.Recommend.Weights.TagMatch)
	}
	if cfg.Recommend.Weights.PreferredCategory != 4 {
		t.Errorf("Weights.PreferredCategory = %v, want default 4", cfg.Recommend.Weights.PreferredCategory)
	}
}

func TestLoadWithKoanf_InvalidFails(t *testing.T) {
	noConfigFile(t)
	t.Setenv("HTTP_PORT", "70000")

	if _, err := LoadWithKoanf(); err == nil {
		t.Fatal("expected validation error for out-of-range port")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"OPENAI_API_KEY", "llm.api_key"},
		{"CACHE_TTL_HOURS", "cache.ttl_hours"},
		{"use_cache", "cache.enabled"},
		{"HOME", ""},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.in); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
