// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package recommend

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/shoprec/internal/models"
)

// Parse failure messages.
const (
	ErrMsgNoJSON      = "Could not parse recommendations from LLM response"
	errMsgParsePrefix = "Failed to parse recommendations: "
)

// DefaultConfidenceScore is used when the model omits a usable score.
const DefaultConfidenceScore = 5.0

var fencedBlock = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)\\s*```")

// ProductLookup resolves product ids.
type ProductLookup interface {
	Get(id string) (models.Product, bool)
}

// ParseResponse extracts recommendations from a completion.
//
// The JSON array is taken from the first fenced code block, or else from the
// first '[' to the last ']'. Entries whose product_id does not resolve are
// dropped. Failures produce an empty result with Error set; they are never
// returned as Go errors.
func ParseResponse(text string, lookup ProductLookup) *models.RecommendationResult {
	payload, ok := extractJSON(text)
	if !ok {
		return parseFailure(ErrMsgNoJSON)
	}

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(payload), &elements); err != nil {
		return parseFailure(errMsgParsePrefix + err.Error())
	}

	recs := make([]models.Recommendation, 0, len(elements))
	for i, raw := range elements {
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			return parseFailure(fmt.Sprintf("%selement %d is not an object", errMsgParsePrefix, i))
		}

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return parseFailure(errMsgParsePrefix + err.Error())
		}

		rawID, ok := fields["product_id"]
		if !ok {
			continue
		}
		var id string
		if err := json.Unmarshal(rawID, &id); err != nil || id == "" {
			continue
		}
		product, found := lookup.Get(id)
		if !found {
			continue
		}

		var explanation string
		if raw, ok := fields["explanation"]; ok {
			_ = json.Unmarshal(raw, &explanation)
		}

		recs = append(recs, models.Recommendation{
			Product:         product,
			Explanation:     explanation,
			ConfidenceScore: parseScore(fields["score"]),
		})
	}

	return &models.RecommendationResult{
		Recommendations: recs,
		Count:           len(recs),
	}
}

func extractJSON(text string) (string, bool) {
	if m := fencedBlock.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 {
		return "", false
	}
	if end < start {
		// Leaves a payload that fails to decode, reported as a parse error.
		return "", true
	}
	return text[start : end+1], true
}

// parseScore accepts a JSON number or a numeric string.
func parseScore(raw json.RawMessage) float64 {
	if len(raw) == 0 || string(bytes.TrimSpace(raw)) == "null" {
		return DefaultConfidenceScore
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return v
		}
	}
	return DefaultConfidenceScore
}

func parseFailure(msg string) *models.RecommendationResult {
	return &models.RecommendationResult{
		Recommendations: []models.Recommendation{},
		Error:           msg,
	}
}
