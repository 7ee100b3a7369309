// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package events

import "time"

// Topics.
const (
	TopicRecommendationGenerated = "recommendation.generated"
	TopicCacheSwept              = "cache.swept"
	TopicCacheCleared            = "cache.cleared"
)

// Sweep reasons.
const (
	SweepStartup   = "startup"
	SweepScheduled = "scheduled"
	SweepManual    = "manual"
)

// MetadataEventType is the message metadata key holding the topic name.
const MetadataEventType = "event_type"

// RecommendationGenerated is published once per completed request,
// including cache hits and parse failures. Upstream failures publish with
// Error set and Count zero.
type RecommendationGenerated struct {
	Fingerprint string    `json:"fingerprint"`
	Count       int       `json:"count"`
	Cached      bool      `json:"cached"`
	Error       string    `json:"error,omitempty"`
	LatencyMS   int64     `json:"latency_ms"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// CacheSwept is published after expired and corrupt entries are removed.
type CacheSwept struct {
	Removed    int       `json:"removed"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}

// CacheCleared is published after every cache entry is removed.
type CacheCleared struct {
	Removed    int       `json:"removed"`
	OccurredAt time.Time `json:"occurred_at"`
}
