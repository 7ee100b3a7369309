// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package models

// Recommendation is one product chosen by the language model together with
// its explanation. ConfidenceScore is whatever the model reported; it is not
// range-checked.
type Recommendation struct {
	Product         Product `json:"product"`
	Explanation     string  `json:"explanation"`
	ConfidenceScore float64 `json:"confidence_score"`
}

// RecommendationResult is the outcome of one recommendation request.
//
// Error is set when the model's response could not be parsed; in that case
// Recommendations is empty. Cached is set only on results served from the
// response cache.
type RecommendationResult struct {
	Recommendations []Recommendation `json:"recommendations"`
	Count           int              `json:"count"`
	Error           string           `json:"error,omitempty"`
	Cached          bool             `json:"cached,omitempty"`
}

// RecommendationRequest is the HTTP request body for generating recommendations.
type RecommendationRequest struct {
	Preferences     UserPreferences `json:"preferences"`
	BrowsingHistory []string        `json:"browsing_history" validate:"omitempty,max=200,dive,required,max=128"`
}
