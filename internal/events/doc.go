// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

// Package events carries domain notifications over an in-process Watermill
// bus.
//
// Bus wraps a gochannel pub/sub and publishes JSON payloads with a uuid
// message id. Router wraps message.Router with the Recoverer middleware and
// is run as a supervised service. Recorder is the built-in consumer: it logs
// each event and counts it by topic and outcome.
//
// Topics:
//
//	recommendation.generated  RecommendationGenerated
//	cache.swept               CacheSwept (reason: startup, scheduled, manual)
//	cache.cleared             CacheCleared
package events
