// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

// Package llm talks to an OpenAI-compatible chat-completions endpoint.
//
// Client performs a single completion with bearer authentication and an
// optional client-side token bucket (golang.org/x/time/rate). BreakerClient
// wraps any Completer in a sony/gobreaker circuit breaker:
//
//   - at most 3 trial requests while half-open
//   - counts reset every minute while closed
//   - opens at a 60% failure rate over at least 10 requests
//   - stays open for 2 minutes before trying again
//
// While open, calls fail fast with ErrCircuitOpen. Context cancellation by
// the caller is not counted as a failure.
package llm
