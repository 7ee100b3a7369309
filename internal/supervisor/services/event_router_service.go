// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

// EventRouter is the lifecycle of events.Router.
type EventRouter interface {
	Run(ctx context.Context) error
	Close() error
}

// EventRouterService runs the event router under supervision.
//
// A watermill router cannot be restarted once Run has returned, so an
// unexpected exit is reported with suture.ErrDoNotRestart and event
// recording stops while the rest of the tree keeps serving.
type EventRouterService struct {
	router EventRouter
	logger zerolog.Logger
}

// NewEventRouterService wraps router.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEventRouterService(router EventRouter, logger zerolog.Logger) *EventRouterService {
	return &EventRouterService{
		router: router,
		logger: logger.With().Str("service", "event-router").Logger(),
	}
}

// Serve implements suture.Service.
func (s *EventRouterService) Serve(ctx context.Context) error {
	err := s.router.Run(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("Event router stopped unexpectedly")
		return fmt.Errorf("event router: %w: %w", err, suture.ErrDoNotRestart)
	}
	s.logger.Warn().Msg("Event router exited without error")
	return suture.ErrDoNotRestart
}

func (s *EventRouterService) String() string {
	return "event-router"
}
