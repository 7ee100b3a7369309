// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package models

import (
	"time"
)

// APIResponse is the envelope used by every HTTP endpoint.
//
//	{
//	  "status": "success",
//	  "data": {"recommendations": [...], "count": 5},
//	  "metadata": {"timestamp": "2026-01-02T12:00:00Z", "query_time_ms": 812}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata describes how the response was produced.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError carries a machine-readable code and a human-readable message.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ProductList is returned by the catalog listing endpoint.
type ProductList struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

// Facets lists the distinct values a client can offer as preferences.
type Facets struct {
	Categories []string `json:"categories"`
	Brands     []string `json:"brands"`
}

// CacheMutationResult is returned by cache sweep and clear endpoints.
type CacheMutationResult struct {
	Removed int `json:"removed"`
}

// HealthStatus is returned by the health endpoints.
type HealthStatus struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	CatalogSize   int     `json:"catalog_size"`
	CacheEnabled  bool    `json:"cache_enabled"`
	CacheBackend  string  `json:"cache_backend,omitempty"`
	CircuitState  string  `json:"llm_circuit_state,omitempty"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}
