// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/shoprec/internal/metrics"
)

// ErrCircuitOpen is returned while the breaker rejects calls.
var ErrCircuitOpen = errors.New("llm: circuit breaker open")

// Completer is the call the breaker protects.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error)
}

// BreakerSettings tunes the circuit breaker.
type BreakerSettings struct {
	Name string

	// MaxRequests is the number of trial calls allowed while half-open.
	MaxRequests uint32

	// Interval is the closed-state window after which counts reset.
	Interval time.Duration

	// Timeout is how long the breaker stays open before going half-open.
	Timeout time.Duration

	// MinRequests and FailureRatio decide when to trip.
	MinRequests  uint32
	FailureRatio float64
}

// DefaultBreakerSettings opens after 60% failures over at least 10 calls,
// and retries after two minutes.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		Name:         "llm-api",
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      2 * time.Minute,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// BreakerClient wraps a Completer with a circuit breaker so that a failing
// endpoint is not hammered by every incoming request.
type BreakerClient struct {
	next   Completer
	cb     *gobreaker.CircuitBreaker[string]
	name   string
	logger zerolog.Logger
}

// NewBreakerClient wraps next.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewBreakerClient(next Completer, s BreakerSettings, logger zerolog.Logger) *BreakerClient {
	logger = logger.With().Str("component", "circuit-breaker").Str("name", s.Name).Logger()

	metrics.CircuitBreakerState.WithLabelValues(s.Name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(s.Name).Set(0)

	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			trip := ratio >= s.FailureRatio
			if trip {
				logger.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", ratio*100).Msg("Opening circuit")
			}
			return trip
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logger.Info().Str("from", fromStr).Str("to", toStr).Msg("Circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
		// A caller giving up is not evidence that the endpoint is unhealthy.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &BreakerClient{next: next, cb: cb, name: s.Name, logger: logger}
}

// Complete forwards to the wrapped client unless the circuit is open.
func (b *BreakerClient) Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error) {
	out, err := b.cb.Execute(func() (string, error) {
		return b.next.Complete(ctx, systemPrompt, userPrompt, maxTokens, temperature)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			metrics.RecordLLMRequest("rejected", 0)
			b.logger.Warn().Err(err).Msg("Request rejected")
			return "", fmt.Errorf("%w: %w", ErrCircuitOpen, err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(b.cb.Counts().ConsecutiveFailures))
		return "", err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)
	return out, nil
}

// State returns the breaker state as "closed", "half-open" or "open".
func (b *BreakerClient) State() string {
	return stateToString(b.cb.State())
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
