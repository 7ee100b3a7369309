// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/shoprec/internal/logging"
	"github.com/tomtom215/shoprec/internal/models"
)

// Error codes for API responses
const (
	ErrCodeBadRequest          = "BAD_REQUEST"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeConflict            = "CONFLICT"
	ErrCodeTooManyRequests     = "TOO_MANY_REQUESTS"
	ErrCodeInternalError       = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable  = "SERVICE_UNAVAILABLE"
	ErrCodeExternalServiceFail = "EXTERNAL_SERVICE_FAILED"
)

// Response status values.
const (
	statusSuccess = "success"
	statusError   = "error"
)

// maxRequestBodyBytes bounds JSON request bodies.
const maxRequestBodyBytes = 1 << 20

func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondSuccess writes data with a metadata block timed from start.
func respondSuccess(w http.ResponseWriter, data interface{}, start time.Time, cached bool) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: statusSuccess,
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			Cached:      cached,
		},
	})
}

func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	respondErrorDetails(w, status, code, message, nil, err)
}

func respondErrorDetails(w http.ResponseWriter, status int, code, message string, details map[string]interface{}, err error) {
	if err != nil {
		logging.Error().Str("code", code).Str("error", sanitizeLogValue(err.Error())).Msg("API Error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status: statusError,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// sanitizeLogValue strips line breaks so error text cannot forge log lines.
func sanitizeLogValue(s string) string {
	return strings.NewReplacer("\n", " ", "\r", " ").Replace(s)
}

// decodeJSONBody decodes a bounded request body into dst.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}
