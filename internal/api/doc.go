// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

/*
Package api provides the HTTP surface for recommendations, the product
catalog and cache administration.

Routes (all JSON, wrapped in models.APIResponse):

	POST   /api/v1/recommendations             generate recommendations
	POST   /api/v1/recommendations/candidates  scored candidates, no model call
	GET    /api/v1/recommendations/stats       orchestrator counters
	GET    /api/v1/products                    list with q/category/brand/price/rating filters
	GET    /api/v1/products/facets             distinct categories and brands
	GET    /api/v1/products/{id}               single product
	GET    /api/v1/cache/stats                 cache occupancy
	POST   /api/v1/cache/sweep                 remove expired entries (admin)
	DELETE /api/v1/cache                       remove all entries (admin)
	GET    /api/v1/health, /live, /ready       probes
	GET    /metrics                            Prometheus

Error mapping for recommendations:

  - invalid body or failed validation: 400 (VALIDATION_ERROR / BAD_REQUEST)
  - unparseable model reply: 200 with result.error set
  - model call failed: 502 EXTERNAL_SERVICE_FAILED
  - circuit breaker open: 503 SERVICE_UNAVAILABLE

Admin routes require "Authorization: Bearer <token>" when a token is
configured.
*/
package api
