// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

/*
Package services adapts long-running components to suture.Service.

  - HTTPServerService: ListenAndServe with graceful Shutdown on cancel
  - CacheSweepService: periodic removal of expired recommendation cache entries
  - EventRouterService: runs the watermill event router

Every service returns ctx.Err() when its context is cancelled and implements
fmt.Stringer so suture logs a readable name.
*/
package services
