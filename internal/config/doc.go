// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

/*
Package config loads and validates Shoprec configuration.

Configuration is layered with koanf: built-in defaults, then an optional YAML
file, then environment variables. Later layers win.

# Config File

The first file found is used: $CONFIG_PATH, config.yaml, config.yml,
/etc/shoprec/config.yaml, /etc/shoprec/config.yml.

	llm:
	  model: gpt-4o-mini
	  timeout: 45s
	cache:
	  backend: badger
	  dir: /var/lib/shoprec/cache
	  ttl_hours: 12
	recommend:
	  weights:
	    tag_match: 1.0

# Environment Variables

Language model:
  - OPENAI_API_KEY: bearer token for the completion endpoint
  - LLM_ENDPOINT: chat-completions URL (default: OpenAI)
  - MODEL_NAME: model identifier (default: gpt-3.5-turbo)
  - MAX_TOKENS: completion budget (default: 1000)
  - TEMPERATURE: sampling temperature (default: 0.7)
  - LLM_TIMEOUT: per-call timeout (default: 30s)
  - LLM_REQUESTS_PER_SECOND, LLM_BURST: outbound rate limit (default: 5, 10)

Cache:
  - USE_CACHE: enable the response cache (default: true)
  - CACHE_BACKEND: file or badger (default: file)
  - CACHE_DIR: storage directory (default: cache)
  - CACHE_TTL_HOURS: entry lifetime, fractional allowed (default: 24)
  - CACHE_SWEEP_INTERVAL: background expiry sweep, 0 disables (default: 1h)

Catalog and recommendations:
  - DATA_PATH: product catalog JSON (default: data/products.json)
  - RECOMMEND_MAX_CANDIDATES: products sent to the model (default: 15)
  - RECOMMEND_COUNT: products the model is asked to pick (default: 5)
  - RECOMMEND_REQUEST_TIMEOUT: end-to-end request timeout (default: 60s)

HTTP server and security:
  - HTTP_HOST, HTTP_PORT (default: 0.0.0.0:5000)
  - HTTP_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT
  - CORS_ORIGINS: comma-separated list (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - ADMIN_TOKEN: bearer token for cache sweep/clear endpoints

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER
*/
package config
