// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package recommend

import (
	"fmt"
	"time"
)

// Defaults.
const (
	DefaultMaxCandidates       = 15
	DefaultDiversityCategories = 3
	DefaultRecommendationCount = 5
	DefaultMaxTokens           = 1000
	DefaultTemperature         = 0.7
)

// Config contains all configuration for the orchestrator and selector.
type Config struct {
	// MaxCandidates bounds the candidate set handed to the model.
	MaxCandidates int `json:"max_candidates"`

	// DiversityCategories is how many distinct categories the selector
	// tries to cover before filling by score.
	DiversityCategories int `json:"diversity_categories"`

	// RecommendationCount is the number of products the prompt asks for.
	RecommendationCount int `json:"recommendation_count"`

	// MaxTokens and Temperature are passed to the completion call.
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`

	// RequestTimeout bounds the completion call. Zero leaves it to the
	// client's own timeout.
	RequestTimeout time.Duration `json:"request_timeout"`

	// Weights are the scoring rule contributions.
	Weights Weights `json:"weights"`
}

// Weights holds the contribution of each scoring rule.
type Weights struct {
	PreferredCategory float64 `json:"preferred_category"`
	BrowsedCategory   float64 `json:"browsed_category"`
	PreferredBrand    float64 `json:"preferred_brand"`
	BrowsedBrand      float64 `json:"browsed_brand"`
	InPriceRange      float64 `json:"in_price_range"`
	NearPriceRange    float64 `json:"near_price_range"`
	PriceCloseToAvg   float64 `json:"price_close_to_avg"`
	PriceNearAvg      float64 `json:"price_near_avg"`
	RatingExcellent   float64 `json:"rating_excellent"`
	RatingGreat       float64 `json:"rating_great"`
	RatingGood        float64 `json:"rating_good"`
	TagMatch          float64 `json:"tag_match"`
	FeatureMatch      float64 `json:"feature_match"`
	Discovery         float64 `json:"discovery"`
}

// DefaultWeights returns the standard rule contributions.
func DefaultWeights() Weights {
	return Weights{
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
	}
}

// DefaultConfig returns production defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxCandidates:       DefaultMaxCandidates,
		DiversityCategories: DefaultDiversityCategories,
		RecommendationCount: DefaultRecommendationCount,
		MaxTokens:           DefaultMaxTokens,
		Temperature:         DefaultTemperature,
		RequestTimeout:      60 * time.Second,
		Weights:             DefaultWeights(),
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.MaxCandidates < 1 {
		return fmt.Errorf("max_candidates must be positive, got %d", c.MaxCandidates)
	}
	if c.DiversityCategories < 0 {
		return fmt.Errorf("diversity_categories must be non-negative, got %d", c.DiversityCategories)
	}
	if c.RecommendationCount < 1 {
		return fmt.Errorf("recommendation_count must be positive, got %d", c.RecommendationCount)
	}
	if c.MaxTokens < 1 {
		return fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be in [0, 2], got %f", c.Temperature)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must be non-negative, got %s", c.RequestTimeout)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	// All fields are value types.
	cp := *c
	return &cp
}
