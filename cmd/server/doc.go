// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

/*
Command server runs the shoprec HTTP API.

Startup order:

 1. .env (optional) and configuration (koanf: defaults, YAML, environment)
 2. Logging
 3. Product catalog (fatal if unreadable)
 4. Recommendation cache, file or badger backend (skipped when disabled)
 5. Event bus, router and recorder
 6. LLM client behind a rate limiter and circuit breaker
 7. Orchestrator, which sweeps the cache once before serving
 8. Supervisor tree: cache sweep, event router, HTTP server

SIGINT or SIGTERM cancels the root context; the HTTP server drains within
server.shutdown_timeout.

Common environment variables:

	OPENAI_API_KEY   completion API key
	MODEL_NAME       model (default gpt-3.5-turbo)
	DATA_PATH        catalog JSON (default data/products.json)
	USE_CACHE        enable the response cache (default true)
	CACHE_DIR        cache directory (default cache)
	CACHE_TTL_HOURS  entry lifetime (default 24)
	CACHE_BACKEND    file or badger
	HTTP_PORT        listen port (default 5000)
	ADMIN_TOKEN      bearer token for cache sweep and clear
*/
package main
