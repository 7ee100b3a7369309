// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package recommend

import (
	"strings"
	"testing"

	"github.com/tomtom215/shoprec/internal/models"
)

func TestBuildPrompt_Sections(t *testing.T) {
	seen := models.Product{
		ID: "h1", Name: "Studio Headphones", Category: "electronics", Price: 199.99, Brand: "Sonic", Rating: 4.6,
		Features: []string{"Noise cancelling", "40h battery", "USB-C", "Foldable"},
		Tags:     []string{"audio", "travel", "wireless", "premium"},
	}
	cand := models.Product{
		ID: "c1", Name: "Travel Case", Category: "accessories", Price: 25,
		Features: []string{"Hard shell", "Zip closure", "Mesh pocket"},
	}
	prefs := models.UserPreferences{PriceRange: "10-50", Categories: []string{"electronics", "accessories"}}

	got := BuildPrompt(prefs, []models.Product{seen}, []models.Product{cand}, 3)

	mustContain := []string{
		"recommend exactly 3 products",
		"Price Range: $10 to $50",
		"Preferred categories: electronics, accessories",
		"Preferred brands: No specific preference",
		"• Studio Headphones",
		"  - ID: h1",
		"  - Price: $199.99",
		"  - Brand: Sonic",
		"  - Rating: 4.6/5",
		"  - Features: Noise cancelling, 40h battery, USB-C\n",
		"  - Tags: audio, travel, wireless\n",
		"CANDIDATE PRODUCTS (1 selected)",
		"  - Price: $25\n",
		"  - Features: Hard shell, Zip closure\n",
		"Select EXACTLY 3 products",
		`"product_id": "prod123"`,
	}
	for _, s := range mustContain {
		if !strings.Contains(got, s) {
			t.Errorf("prompt missing %q", s)
		}
	}

	order := []string{"USER PREFERENCES", "BROWSING HISTORY", "CANDIDATE PRODUCTS", "RECOMMENDATION REQUIREMENTS", "FORMAT YOUR RESPONSE"}
	last := -1
	for _, s := range order {
		i := strings.Index(got, s)
		if i <= last {
			t.Errorf("section %q out of order", s)
		}
		last = i
	}
}

func TestBuildPrompt_Defaults(t *testing.T) {
	got := BuildPrompt(models.UserPreferences{PriceRange: "all"}, nil, nil, 0)

	for _, s := range []string{
		"Price Range: Any price",
		"Preferred categories: No specific preference",
		"User has not viewed any products yet.",
		"CANDIDATE PRODUCTS (0 selected)",
		"Select EXACTLY 5 products",
	} {
		if !strings.Contains(got, s) {
			t.Errorf("prompt missing %q", s)
		}
	}
}

func TestDescribePriceRange(t *testing.T) {
	cases := map[string]string{
		"all":    "Any price",
		"":       "Any price",
		"10-50":  "$10 to $50",
		"cheap":  "cheap",
		"1-2-3":  "1-2-3",
		"a-b":    "$a to $b",
		"5 - 10": "$5 to $10",
	}
	for in, want := range cases {
		if got := describePriceRange(in); got != want {
			t.Errorf("describePriceRange(%q) = %q, want %q", in, got, want)
		}
	}
}
