// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package events

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/shoprec/internal/logging"
)

// DefaultBufferSize is the per-subscriber channel buffer.
const DefaultBufferSize = 256

// Bus is an in-process publish/subscribe channel for domain events.
//
// Messages published while no subscriber is attached are dropped; the bus
// carries notifications, not state.
type Bus struct {
	pubsub *gochannel.GoChannel
	logger zerolog.Logger
	now    func() time.Time
}

// NewBus creates a bus. bufferSize <= 0 uses DefaultBufferSize.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewBus(bufferSize int, logger zerolog.Logger) *Bus {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	logger = logger.With().Str("component", "event-bus").Logger()
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: int64(bufferSize),
		}, logging.NewWatermillAdapter(logger)),
		logger: logger,
		now:    time.Now,
	}
}

// Subscriber exposes the subscribing side for router handlers.
func (b *Bus) Subscriber() message.Subscriber {
	return b.pubsub
}

// Publisher exposes the raw publishing side.
func (b *Bus) Publisher() message.Publisher {
	return b.pubsub
}

// Close stops delivery to all subscribers.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}

// PublishRecommendationGenerated publishes ev, stamping OccurredAt when unset.
func (b *Bus) PublishRecommendationGenerated(ctx context.Context, ev RecommendationGenerated) error {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = b.now().UTC()
	}
	return b.publish(ctx, TopicRecommendationGenerated, ev)
}

// PublishCacheSwept publishes ev, stamping OccurredAt when unset.
func (b *Bus) PublishCacheSwept(ctx context.Context, ev CacheSwept) error {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = b.now().UTC()
	}
	return b.publish(ctx, TopicCacheSwept, ev)
}

// PublishCacheCleared publishes ev, stamping OccurredAt when unset.
func (b *Bus) PublishCacheCleared(ctx context.Context, ev CacheCleared) error {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = b.now().UTC()
	}
	return b.publish(ctx, TopicCacheCleared, ev)
}

func (b *Bus) publish(ctx context.Context, topic string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", topic, err)
	}

	msg := message.NewMessage(uuid.NewString(), data)
	msg.Metadata.Set(MetadataEventType, topic)
	if id := logging.RequestIDFromContext(ctx); id != "" {
		msg.Metadata.Set("request_id", id)
	}
	msg.SetContext(ctx)

	if err := b.pubsub.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}
	return nil
}
