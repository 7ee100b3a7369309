// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package middleware

import (
	"context"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tomtom215/shoprec/internal/logging"
)

// RequestIDHeader is read from and echoed to clients.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLen bounds client-supplied ids before they reach logs.
const maxRequestIDLen = 128

// RequestID assigns every request an id, taking a client-supplied
// X-Request-ID when present. The id is echoed in the response, stored for
// chi's middleware.GetReqID, and attached to the logging context together
// with a fresh correlation id and a request-scoped logger.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLen {
			requestID = logging.GenerateRequestID()
		}
		w.Header().Set(RequestIDHeader, requestID)

		ctx := context.WithValue(r.Context(), chimiddleware.RequestIDKey, requestID)
		ctx = logging.ContextWithRequestID(ctx, requestID)
		ctx = logging.ContextWithCorrelationID(ctx, logging.GenerateCorrelationID())
		ctx = logging.ContextWithLogger(ctx, logging.CtxWith(ctx).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Logger())

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID extracts the request ID from context.
func GetRequestID(ctx context.Context) string {
	return logging.RequestIDFromContext(ctx)
}
