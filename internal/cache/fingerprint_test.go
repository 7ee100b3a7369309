// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package cache

import (
	"testing"

	"github.com/tomtom215/shoprec/internal/models"
)

func TestFingerprint_Deterministic(t *testing.T) {
	t.Parallel()

	prefs := models.UserPreferences{PriceRange: "10-50", Categories: []string{"electronics"}}
	a := Fingerprint(prefs, []string{"p1", "p2"})
	b := Fingerprint(prefs, []string{"p1", "p2"})

	if a != b {
		t.Errorf("Fingerprint() not deterministic: %s != %s", a, b)
	}
	if len(a) != 32 {
		t.Errorf("len(Fingerprint()) = %d, want 32", len(a))
	}
	if !validKey(a) {
		t.Errorf("Fingerprint() = %q is not a valid key", a)
	}
}

func TestFingerprint_SetFieldsAreOrderIndependent(t *testing.T) {
	t.Parallel()

	a := Fingerprint(models.UserPreferences{
		PriceRange: "all",
		Categories: []string{"home", "electronics"},
		Brands:     []string{"Acme", "Zed", "Acme"},
	}, nil)
	b := Fingerprint(models.UserPreferences{
		PriceRange: "all",
		Categories: []string{"electronics", "home"},
		Brands:     []string{"Zed", "Acme"},
	}, []string{})

	if a != b {
		t.Errorf("expected equal fingerprints for permuted sets, got %s and %s", a, b)
	}
}

func TestFingerprint_DistinguishesInputs(t *testing.T) {
	t.Parallel()

	base := models.UserPreferences{PriceRange: "all"}
	keys := map[string]string{
		"base":          Fingerprint(base, nil),
		"price":         Fingerprint(models.UserPreferences{PriceRange: "0-100"}, nil),
		"category":      Fingerprint(models.UserPreferences{PriceRange: "all", Categories: []string{"books"}}, nil),
		"brand":         Fingerprint(models.UserPreferences{PriceRange: "all", Brands: []string{"books"}}, nil),
		"history":       Fingerprint(base, []string{"p1"}),
		"history-order": Fingerprint(base, []string{"p2", "p1"}),
		"history-alt":   Fingerprint(base, []string{"p1", "p2"}),
	}

	seen := make(map[string]string)
	for name, key := range keys {
		if other, ok := seen[key]; ok {
			t.Errorf("fingerprint collision between %s and %s", name, other)
		}
		seen[key] = name
	}
}
