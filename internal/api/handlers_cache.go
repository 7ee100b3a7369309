// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/shoprec/internal/cache"
	"github.com/tomtom215/shoprec/internal/events"
	"github.com/tomtom215/shoprec/internal/models"
)

const msgCacheDisabled = "Recommendation cache is disabled"

// CacheStats reports cache occupancy. A disabled cache is reported as
// enabled=false rather than an error.
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if !h.recommender.CacheEnabled() {
		respondSuccess(w, cache.Stats{Enabled: false}, start, false)
		return
	}

	stats, err := h.recommender.CacheStats(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Failed to read cache statistics", err)
		return
	}
	respondSuccess(w, stats, start, false)
}

// SweepCache removes expired and corrupt cache entries.
func (h *Handler) SweepCache(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if !h.recommender.CacheEnabled() {
		respondError(w, http.StatusConflict, ErrCodeConflict, msgCacheDisabled, nil)
		return
	}

	removed, err := h.recommender.SweepCache(r.Context(), events.SweepManual)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Failed to sweep cache", err)
		return
	}
	respondSuccess(w, models.CacheMutationResult{Removed: removed}, start, false)
}

// ClearCache removes every cache entry.
func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if !h.recommender.CacheEnabled() {
		respondError(w, http.StatusConflict, ErrCodeConflict, msgCacheDisabled, nil)
		return
	}

	removed, err := h.recommender.ClearCache(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError, "Failed to clear cache", err)
		return
	}
	respondSuccess(w, models.CacheMutationResult{Removed: removed}, start, false)
}
