// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package events

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/rs/zerolog"

	"github.com/tomtom215/shoprec/internal/logging"
)

// RouterConfig holds configuration for the event router.
type RouterConfig struct {
	// CloseTimeout is how long to wait for handlers to finish when closing.
	CloseTimeout time.Duration
}

// DefaultRouterConfig returns production defaults for the Router.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{CloseTimeout: 10 * time.Second}
}

// Router wraps the Watermill router with panic recovery.
type Router struct {
	router  *message.Router
	running atomic.Bool
}

// NewRouter creates a router. Handlers must be added before Run.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewRouter(cfg RouterConfig, logger zerolog.Logger) (*Router, error) {
	wmRouter, err := message.NewRouter(message.RouterConfig{
		CloseTimeout: cfg.CloseTimeout,
	}, logging.NewWatermillAdapter(logger.With().Str("component", "event-router").Logger()))
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	wmRouter.AddMiddleware(middleware.Recoverer)

	return &Router{router: wmRouter}, nil
}

// AddConsumerHandler registers a handler that produces no output messages.
func (r *Router) AddConsumerHandler(
	name string,
	topic string,
	subscriber message.Subscriber,
	handler message.NoPublishHandlerFunc,
) {
	r.router.AddNoPublisherHandler(name, topic, subscriber, handler)
}

// Run starts the router and blocks until ctx is cancelled or Close is called.
func (r *Router) Run(ctx context.Context) error {
	r.running.Store(true)
	defer r.running.Store(false)
	return r.router.Run(ctx)
}

// Running returns a channel that closes once every handler is subscribed.
func (r *Router) Running() <-chan struct{} {
	return r.router.Running()
}

// IsRunning reports whether Run is in progress.
func (r *Router) IsRunning() bool {
	return r.running.Load()
}

// Close stops the router, waiting up to CloseTimeout for in-flight handlers.
func (r *Router) Close() error {
	return r.router.Close()
}
