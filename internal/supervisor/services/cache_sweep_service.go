// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/shoprec/internal/events"
)

// CacheSweeper removes expired cache entries. Implemented by
// recommend.Orchestrator.
type CacheSweeper interface {
	SweepCache(ctx context.Context, reason string) (int, error)
}

// sweepTimeout bounds a single sweep pass.
const sweepTimeout = 5 * time.Minute

// CacheSweepService sweeps the recommendation cache on a fixed interval.
// The startup sweep is done by the orchestrator itself, so the first
// pass here happens one interval after start.
type CacheSweepService struct {
	sweeper  CacheSweeper
	interval time.Duration
	logger   zerolog.Logger
}

// NewCacheSweepService creates the service. An interval <= 0 makes Serve
// return suture.ErrDoNotRestart immediately.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCacheSweepService(sweeper CacheSweeper, interval time.Duration, logger zerolog.Logger) *CacheSweepService {
	return &CacheSweepService{
		sweeper:  sweeper,
		interval: interval,
		logger:   logger.With().Str("service", "cache-sweep").Logger(),
	}
}

// Serve implements suture.Service.
func (s *CacheSweepService) Serve(ctx context.Context) error {
	if s.interval <= 0 {
		s.logger.Info().Msg("Periodic cache sweep disabled")
		return suture.ErrDoNotRestart
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.interval).Msg("Cache sweep service started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *CacheSweepService) sweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()

	start := time.Now()
	removed, err := s.sweeper.SweepCache(sweepCtx, events.SweepScheduled)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		s.logger.Warn().Err(err).Msg("Scheduled cache sweep failed")
		return
	}
	s.logger.Debug().Int("removed", removed).Dur("duration", time.Since(start)).Msg("Scheduled cache sweep complete")
}

func (s *CacheSweepService) String() string {
	return "cache-sweep"
}
