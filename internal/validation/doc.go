// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

// Package validation validates request bodies with go-playground/validator v10.
//
// A single validator instance is shared process-wide; it caches struct
// metadata and is safe for concurrent use. Field names in messages are the
// JSON names of the request body.
//
// Custom tags:
//
//	pricerange  "all" or "<min>-<max>" with 0 <= min <= max
package validation
