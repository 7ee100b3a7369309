// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

/*
Package models defines the data structures shared across Shoprec.

Domain types:

  - Product: a catalog item
  - UserPreferences: explicit price range, categories and brands
  - Recommendation / RecommendationResult: what the recommender returns

API types:

  - APIResponse, Metadata, APIError: the JSON envelope for every endpoint
  - RecommendationRequest, ProductList, Facets, CacheMutationResult, HealthStatus

JSON tags follow the wire format clients already use, so field names mix
camelCase (priceRange) and snake_case (browsing_history, confidence_score).
*/
package models
