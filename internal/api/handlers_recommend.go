// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/shoprec/internal/llm"
	"github.com/tomtom215/shoprec/internal/logging"
	"github.com/tomtom215/shoprec/internal/models"
	"github.com/tomtom215/shoprec/internal/validation"
)

// decodeRecommendationRequest reads and validates a recommendation body.
// It writes the error response and returns false on failure.
func decodeRecommendationRequest(w http.ResponseWriter, r *http.Request) (models.RecommendationRequest, bool) {
	var req models.RecommendationRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, "Invalid JSON request body", nil)
		return req, false
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		respondErrorDetails(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details, nil)
		return req, false
	}
	return req, true
}

// Recommend generates recommendations for the posted preferences and
// browsing history.
//
// An unparseable model reply is still a 200 with result.error set. A failed
// model call is 502, or 503 while the circuit breaker is open.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, ok := decodeRecommendationRequest(w, r)
	if !ok {
		return
	}

	result, err := h.recommender.GenerateRecommendations(r.Context(), req.Preferences, req.BrowsingHistory, h.catalog)
	if err != nil {
		if errors.Is(err, llm.ErrCircuitOpen) {
			w.Header().Set("Retry-After", "60")
			respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable,
				"Recommendation service is temporarily unavailable", err)
			return
		}
		respondError(w, http.StatusBadGateway, ErrCodeExternalServiceFail,
			"Failed to generate recommendations", err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Int("count", result.Count).
		Bool("cached", result.Cached).
		Msg("Recommendations served")

	respondSuccess(w, result, start, result.Cached)
}

// RecommendCandidates returns the scored candidate ranking for a request
// without calling the model.
func (h *Handler) RecommendCandidates(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, ok := decodeRecommendationRequest(w, r)
	if !ok {
		return
	}

	candidates := h.recommender.Candidates(req.Preferences, req.BrowsingHistory, h.catalog)
	respondSuccess(w, candidates, start, false)
}

// RecommendStats returns the orchestrator's request counters.
func (h *Handler) RecommendStats(w http.ResponseWriter, _ *http.Request) {
	respondSuccess(w, h.recommender.GetMetrics(), time.Now(), false)
}
