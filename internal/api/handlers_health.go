// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/shoprec/internal/models"
)

// Health reports overall status. It is "degraded" while the LLM circuit
// breaker is open or the catalog is empty.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	start := time.Now()

	status := models.HealthStatus{
		Status:        "healthy",
		Version:       h.version,
		CatalogSize:   h.catalog.Len(),
		CacheEnabled:  h.recommender.CacheEnabled(),
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}
	if status.CacheEnabled {
		status.CacheBackend = h.backend
	}
	if h.circuit != nil {
		status.CircuitState = h.circuit.State()
		if status.CircuitState == "open" {
			status.Status = "degraded"
		}
	}
	if status.CatalogSize == 0 {
		status.Status = "degraded"
	}

	respondSuccess(w, status, start, false)
}

// Live always reports the process as alive.
func (h *Handler) Live(w http.ResponseWriter, _ *http.Request) {
	respondSuccess(w, map[string]string{"status": "alive"}, time.Now(), false)
}

// Ready reports whether the service can answer recommendation requests.
func (h *Handler) Ready(w http.ResponseWriter, _ *http.Request) {
	if h.catalog.Len() == 0 {
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Product catalog is empty", nil)
		return
	}
	respondSuccess(w, map[string]string{"status": "ready"}, time.Now(), false)
}
