// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package config

import (
	"github.com/tomtom215/shoprec/internal/llm"
	"github.com/tomtom215/shoprec/internal/recommend"
)

// ClientConfig converts the LLM settings for llm.NewClient.
func (c LLMConfig) ClientConfig() llm.Config {
	return llm.Config{
		Endpoint:          c.Endpoint,
		APIKey:            c.APIKey,
		Model:             c.Model,
		Timeout:           c.Timeout,
		RequestsPerSecond: c.RequestsPerSecond,
		Burst:             c.Burst,
	}
}

// RecommendConfig converts the recommend and LLM generation settings for
// recommend.NewOrchestrator. Settings without a config key keep
// recommend.DefaultConfig values.
func (c *Config) RecommendConfig() *recommend.Config {
	rc := recommend.DefaultConfig()
	rc.MaxCandidates = c.Recommend.MaxCandidates
	rc.RecommendationCount = c.Recommend.RecommendationCount
	rc.RequestTimeout = c.Recommend.RequestTimeout
	rc.MaxTokens = c.LLM.MaxTokens
	rc.Temperature = c.LLM.Temperature

	w := c.Recommend.Weights
	rc.Weights = recommend.Weights{
		PreferredCategory: w.PreferredCategory,
		BrowsedCategory:   w.BrowsedCategory,
		PreferredBrand:    w.PreferredBrand,
		BrowsedBrand:      w.BrowsedBrand,
		InPriceRange:      w.InPriceRange,
		NearPriceRange:    w.NearPriceRange,
		PriceCloseToAvg:   w.PriceCloseToAvg,
		PriceNearAvg:      w.PriceNearAvg,
		RatingExcellent:   w.RatingExcellent,
		RatingGreat:       w.RatingGreat,
		RatingGood:        w.RatingGood,
		TagMatch:          w.TagMatch,
		FeatureMatch:      w.FeatureMatch,
		Discovery:         w.Discovery,
	}
	return rc
}
