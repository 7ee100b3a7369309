// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

/*
Package supervisor provides the suture supervisor tree that runs shoprec's
long-lived services.

The tree has three layers so that a crash in one does not restart another:

	shoprec (root)
	├── cache-layer   services.CacheSweepService
	├── events-layer  services.EventRouterService
	└── api-layer     services.HTTPServerService

Supervisor events (restarts, backoff, timeouts) are logged through
sutureslog into the process slog logger, which logging.NewSlogLogger bridges
to zerolog.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddCacheService(services.NewCacheSweepService(orch, time.Hour, logger))
	tree.AddEventsService(services.NewEventRouterService(router, logger))
	tree.AddAPIService(services.NewHTTPServerService(srv, srv.Addr, 10*time.Second, logger))
	err = tree.Serve(ctx)

Services return ctx.Err() on cancellation. Services that cannot usefully
restart (a disabled sweep, a closed event router) return
suture.ErrDoNotRestart.
*/
package supervisor
