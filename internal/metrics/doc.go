// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

// Package metrics declares the Prometheus collectors exposed on /metrics.
//
// Collectors are registered with the default registry through promauto, so
// importing the package is enough to make them visible. Groups:
//
//   - api_*: HTTP request counts, latency and in-flight requests
//   - recommendation_*: request outcomes, end-to-end latency, candidate counts
//   - llm_*: completion requests and latency
//   - cache_*: hits, misses, entries and evictions per backend
//   - circuit_breaker_*: breaker state and transitions
package metrics
