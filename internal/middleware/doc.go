// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

/*
Package middleware provides chi-compatible HTTP middleware shared by the API.

  - RequestID: assigns or propagates X-Request-ID and seeds the logging
    context (request_id, correlation_id, request-scoped logger)
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern

CORS, rate limiting, panic recovery and real-IP extraction come from the chi
ecosystem (go-chi/cors, go-chi/httprate, chi/middleware) and are composed in
the api package.
*/
package middleware
