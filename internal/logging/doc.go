// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

// Package logging provides the zerolog-based structured logging used across
// Shoprec.
//
// A single global logger is configured once at startup:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("addr", addr).Msg("HTTP server listening")
//
// Components derive child loggers instead of formatting prefixes:
//
//	logger := logging.WithComponent("cache")
//
// Request-scoped logging picks up request_id and correlation_id from the
// context set by the HTTP middleware:
//
//	logging.Ctx(ctx).Warn().Err(err).Msg("Cache write failed")
//
// # Adapters
//
// Two libraries want their own logger interface:
//
//   - sutureslog takes a *slog.Logger: use NewSlogLogger.
//   - watermill takes a watermill.LoggerAdapter: use NewWatermillAdapter.
//
// Both write through zerolog, so all output shares one format.
//
// # Configuration
//
//	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - json, console (default: json)
//	LOG_CALLER  - include caller file:line (default: false)
package logging
