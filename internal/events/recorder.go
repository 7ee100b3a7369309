// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package events

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/shoprec/internal/metrics"
)

// Recorder logs every event and counts it in recommendation_events_total.
type Recorder struct {
	logger zerolog.Logger
}

// NewRecorder creates a recorder.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewRecorder(logger zerolog.Logger) *Recorder {
	return &Recorder{logger: logger.With().Str("component", "event-recorder").Logger()}
}

// Register subscribes the recorder to all topics on router.
func (r *Recorder) Register(router *Router, sub message.Subscriber) {
	router.AddConsumerHandler("record_recommendation_generated", TopicRecommendationGenerated, sub, r.handleGenerated)
	router.AddConsumerHandler("record_cache_swept", TopicCacheSwept, sub, r.handleSwept)
	router.AddConsumerHandler("record_cache_cleared", TopicCacheCleared, sub, r.handleCleared)
}

func (r *Recorder) handleGenerated(msg *message.Message) error {
	var ev RecommendationGenerated
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		r.malformed(TopicRecommendationGenerated, msg, err)
		return nil
	}

	outcome := "success"
	switch {
	case ev.Cached:
		outcome = "cached"
	case ev.Error != "":
		outcome = "error"
	}
	metrics.RecordEvent(TopicRecommendationGenerated, outcome)

	r.logger.Info().
		Str("event_id", msg.UUID).
		Str("fingerprint", ev.Fingerprint).
		Int("count", ev.Count).
		Bool("cached", ev.Cached).
		Str("error", ev.Error).
		Int64("latency_ms", ev.LatencyMS).
		Msg("Recommendation generated")
	return nil
}

func (r *Recorder) handleSwept(msg *message.Message) error {
	var ev CacheSwept
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		r.malformed(TopicCacheSwept, msg, err)
		return nil
	}
	metrics.RecordEvent(TopicCacheSwept, ev.Reason)
	r.logger.Info().Str("event_id", msg.UUID).Int("removed", ev.Removed).Str("reason", ev.Reason).Msg("Cache swept")
	return nil
}

func (r *Recorder) handleCleared(msg *message.Message) error {
	var ev CacheCleared
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		r.malformed(TopicCacheCleared, msg, err)
		return nil
	}
	metrics.RecordEvent(TopicCacheCleared, "success")
	r.logger.Info().Str("event_id", msg.UUID).Int("removed", ev.Removed).Msg("Cache cleared")
	return nil
}

// malformed counts an undecodable payload. The message is still acked.
func (r *Recorder) malformed(topic string, msg *message.Message, err error) {
	metrics.RecordEvent(topic, "malformed")
	r.logger.Warn().Err(err).Str("event_id", msg.UUID).Str("topic", topic).Msg("Dropping malformed event")
}
