// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package supervisor

import (
	"context"
	"log/slog"
	"time"

	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"
)

// TreeConfig holds supervisor tree configuration.
type TreeConfig struct {
	// FailureThreshold is the number of failures before entering backoff.
	// Default: 5
	FailureThreshold float64

	// FailureDecay is the rate at which failures decay in seconds.
	// Default: 30
	FailureDecay float64

	// FailureBackoff is the duration to wait when threshold is exceeded.
	// Default: 15s
	FailureBackoff time.Duration

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	// Default: 10s
	ShutdownTimeout time.Duration
}

// DefaultTreeConfig returns suture's own defaults.
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		FailureThreshold: 5.0,
		FailureDecay:     30.0,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
}

func (c TreeConfig) withDefaults() TreeConfig {
	d := DefaultTreeConfig()
	if c.FailureThreshold == 0 {
		c.FailureThreshold = d.FailureThreshold
	}
	if c.FailureDecay == 0 {
		c.FailureDecay = d.FailureDecay
	}
	if c.FailureBackoff == 0 {
		c.FailureBackoff = d.FailureBackoff
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	return c
}

// SupervisorTree is the process supervisor:
//
//	shoprec
//	├── cache-layer   periodic cache sweep
//	├── events-layer  event router
//	└── api-layer     HTTP server
//
// A failing sweep or event router restarts inside its own layer and never
// takes the HTTP server down with it.
type SupervisorTree struct {
	root   *suture.Supervisor
	cache  *suture.Supervisor
	events *suture.Supervisor
	api    *suture.Supervisor
	config TreeConfig
}

// NewSupervisorTree creates the tree. Zero config fields take defaults.
func NewSupervisorTree(logger *slog.Logger, config TreeConfig) (*SupervisorTree, error) {
	config = config.withDefaults()

	// MustHook has a pointer receiver.
	hook := (&sutureslog.Handler{Logger: logger}).MustHook()

	spec := func(eventHook suture.EventHook) suture.Spec {
		return suture.Spec{
			EventHook:        eventHook,
			FailureThreshold: config.FailureThreshold,
			FailureDecay:     config.FailureDecay,
			FailureBackoff:   config.FailureBackoff,
			Timeout:          config.ShutdownTimeout,
		}
	}

	// Children inherit the root's EventHook when added.
	t := &SupervisorTree{
		root:   suture.New("shoprec", spec(hook)),
		cache:  suture.New("cache-layer", spec(nil)),
		events: suture.New("events-layer", spec(nil)),
		api:    suture.New("api-layer", spec(nil)),
		config: config,
	}
	t.root.Add(t.cache)
	t.root.Add(t.events)
	t.root.Add(t.api)

	return t, nil
}

// Root returns the root supervisor.
func (t *SupervisorTree) Root() *suture.Supervisor {
	return t.root
}

// AddCacheService adds a service to the cache layer.
func (t *SupervisorTree) AddCacheService(svc suture.Service) suture.ServiceToken {
	return t.cache.Add(svc)
}

// AddEventsService adds a service to the events layer.
func (t *SupervisorTree) AddEventsService(svc suture.Service) suture.ServiceToken {
	return t.events.Add(svc)
}

// AddAPIService adds a service to the API layer.
func (t *SupervisorTree) AddAPIService(svc suture.Service) suture.ServiceToken {
	return t.api.Add(svc)
}

// Serve runs the tree until ctx is cancelled.
func (t *SupervisorTree) Serve(ctx context.Context) error {
	return t.root.Serve(ctx)
}

// ServeBackground runs the tree in a goroutine. The channel receives the
// result when the tree stops.
func (t *SupervisorTree) ServeBackground(ctx context.Context) <-chan error {
	return t.root.ServeBackground(ctx)
}

// UnstoppedServiceReport lists services that missed the shutdown timeout.
func (t *SupervisorTree) UnstoppedServiceReport() ([]suture.UnstoppedService, error) {
	return t.root.UnstoppedServiceReport()
}
