// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

// Package recommend produces LLM-assisted product recommendations.
//
// # Flow
//
// Orchestrator.GenerateRecommendations handles one request:
//
//  1. Look up the request fingerprint in the cache. A hit is returned with
//     Cached set, without selecting candidates or calling the model.
//  2. Resolve the browsing history against the catalog, dropping unknown ids.
//  3. Select up to MaxCandidates products with Selector.
//  4. Build the prompt and call the Completer once.
//  5. Parse the completion. Unparseable output yields an empty result with
//     Error set rather than a Go error.
//  6. Cache results with at least one recommendation.
//
// A failed completion call is the only request-level error; it wraps
// ErrUpstreamFailure.
//
// # Candidate Selection
//
// Selector scores every product the user has not browsed with an ordered
// list of additive rules (category, brand, price, rating, tags, features,
// discovery), each a pure function of the product and a ScoringContext.
// Contributions come from Weights; DefaultWeights are the standard values.
//
// Ranking is a stable descending sort, so ties keep catalog order. Selection
// takes the top product, then products from new categories until
// DiversityCategories are covered, then fills by score.
//
// # Usage
//
//	orch, err := recommend.NewOrchestrator(ctx, recommend.DefaultConfig(), recommend.Deps{
//		Completer: llmClient,
//		Cache:     store,
//		Events:    bus,
//	}, logger)
//	result, err := orch.GenerateRecommendations(ctx, prefs, history, catalog)
package recommend
