// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"

	"github.com/goccy/go-json"

	"github.com/tomtom215/shoprec/internal/models"
)

// FormatVersion is mixed into every fingerprint. Bump it when the stored
// record or the prompt changes so that old entries stop matching.
const FormatVersion = "1.0"

// Fingerprint derives the cache key for a request.
//
// The payload is serialized with sorted object keys. Categories and brands
// are sets, so they are deduplicated and sorted first. History keeps the
// caller's order. The key is the first 16 bytes of the SHA-256 digest, hex
// encoded.
func Fingerprint(prefs models.UserPreferences, history []string) string {
	if history == nil {
		history = []string{}
	}
	payload := map[string]interface{}{
		"browsing_history": history,
		"preferences": map[string]interface{}{
			"brands":     normalizeSet(prefs.Brands),
			"categories": normalizeSet(prefs.Categories),
			"priceRange": prefs.PriceRange,
		},
		"version": FormatVersion,
	}

	// Marshal cannot fail for maps of strings and string slices.
	data, _ := json.Marshal(payload)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:16])
}

func normalizeSet(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
