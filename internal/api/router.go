// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/shoprec/internal/middleware"
)

// NewRouter builds the chi router.
//
// Global middleware, outermost first: request id with logging context,
// real IP, panic recovery, CORS and HTTP metrics.
func NewRouter(h *Handler, mw *Middleware) http.Handler {
	if mw == nil {
		mw = NewMiddleware(nil)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS())
	r.Use(middleware.PrometheusMetrics)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(mw.HealthRateLimit())
			r.Get("/health", h.Health)
			r.Get("/live", h.Live)
			r.Get("/ready", h.Ready)
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit())

			r.Route("/recommendations", func(r chi.Router) {
				r.Post("/", h.Recommend)
				r.Post("/candidates", h.RecommendCandidates)
				r.Get("/stats", h.RecommendStats)
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", h.ListProducts)
				r.Get("/facets", h.ProductFacets)
				r.Get("/{id}", h.GetProduct)
			})

			r.Route("/cache", func(r chi.Router) {
				r.Get("/stats", h.CacheStats)
				r.Group(func(r chi.Router) {
					r.Use(mw.RequireAdmin())
					r.Post("/sweep", h.SweepCache)
					r.Delete("/", h.ClearCache)
				})
			})
		})
	})

	return r
}
