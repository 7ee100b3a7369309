// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

// MiddlewareConfig holds CORS, rate limiting and admin access settings.
type MiddlewareConfig struct {
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
	CORSExposedHeaders []string
	CORSMaxAge         int // seconds

	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool

	// AdminToken guards cache mutation. Empty leaves those routes open.
	AdminToken string
}

// DefaultMiddlewareConfig returns the default configuration.
// CORS origins default to empty and must be configured.
func DefaultMiddlewareConfig() *MiddlewareConfig {
	return &MiddlewareConfig{
		CORSAllowedOrigins: []string{},
		CORSAllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		CORSAllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
		CORSExposedHeaders: []string{"X-Request-ID"},
		CORSMaxAge:         86400,

		RateLimitRequests: 60,
		RateLimitWindow:   time.Minute,
	}
}

// healthRateLimitMultiplier gives health probes a looser limit than the API.
const healthRateLimitMultiplier = 10

// Middleware builds the router's chi-compatible middleware.
type Middleware struct {
	config *MiddlewareConfig
	cors   func(http.Handler) http.Handler
}

// NewMiddleware creates the middleware set for config.
func NewMiddleware(config *MiddlewareConfig) *Middleware {
	if config == nil {
		config = DefaultMiddlewareConfig()
	}

	return &Middleware{
		config: config,
		cors: cors.Handler(cors.Options{
			AllowedOrigins: config.CORSAllowedOrigins,
			AllowedMethods: config.CORSAllowedMethods,
			AllowedHeaders: config.CORSAllowedHeaders,
			ExposedHeaders: config.CORSExposedHeaders,
			MaxAge:         config.CORSMaxAge,
		}),
	}
}

// CORS returns the go-chi/cors handler.
func (m *Middleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// RateLimit limits API routes per client IP.
func (m *Middleware) RateLimit() func(http.Handler) http.Handler {
	return m.limit(m.config.RateLimitRequests)
}

// HealthRateLimit is a permissive per-IP limit for probes.
func (m *Middleware) HealthRateLimit() func(http.Handler) http.Handler {
	return m.limit(m.config.RateLimitRequests * healthRateLimitMultiplier)
}

func (m *Middleware) limit(requests int) func(http.Handler) http.Handler {
	if m.config.RateLimitDisabled || requests <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return httprate.Limit(
		requests,
		m.config.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			respondError(w, http.StatusTooManyRequests, ErrCodeTooManyRequests, "Rate limit exceeded", nil)
		}),
	)
}

// RequireAdmin checks "Authorization: Bearer <token>" in constant time.
func (m *Middleware) RequireAdmin() func(http.Handler) http.Handler {
	token := m.config.AdminToken
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				w.Header().Set("WWW-Authenticate", `Bearer realm="shoprec"`)
				respondError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "Admin token required", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
