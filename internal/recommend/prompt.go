// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package recommend

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tomtom215/shoprec/internal/models"
)

// SystemPrompt is sent as the system message of every completion.
const SystemPrompt = "You are a helpful eCommerce product recommendation assistant."

const noPreference = "No specific preference"

// BuildPrompt renders the user message for a completion request.
func BuildPrompt(prefs models.UserPreferences, browsed, candidates []models.Product, count int) string {
	if count <= 0 {
		count = DefaultRecommendationCount
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert e-commerce recommendation system. Your task is to recommend exactly %d products that will genuinely interest this specific user.\n\n", count)

	b.WriteString("===== USER PREFERENCES =====\n")
	fmt.Fprintf(&b, "Price Range: %s\n", describePriceRange(prefs.PriceRange))
	fmt.Fprintf(&b, "Preferred categories: %s\n", joinOr(prefs.Categories, noPreference))
	fmt.Fprintf(&b, "Preferred brands: %s\n", joinOr(prefs.Brands, noPreference))

	b.WriteString("\n===== BROWSING HISTORY =====\n")
	if len(browsed) == 0 {
		b.WriteString("User has not viewed any products yet.\n")
	}
	for i := range browsed {
		p := &browsed[i]
		writeProduct(&b, p)
		if len(p.Features) > 0 {
			fmt.Fprintf(&b, "  - Features: %s\n", strings.Join(head(p.Features, 3), ", "))
		}
		if len(p.Tags) > 0 {
			fmt.Fprintf(&b, "  - Tags: %s\n", strings.Join(head(p.Tags, 3), ", "))
		}
	}

	fmt.Fprintf(&b, "\n===== CANDIDATE PRODUCTS (%d selected) =====\n", len(candidates))
	for i := range candidates {
		p := &candidates[i]
		writeProduct(&b, p)
		if len(p.Features) > 0 {
			fmt.Fprintf(&b, "  - Features: %s\n", strings.Join(head(p.Features, 2), ", "))
		}
	}

	b.WriteString("\n===== RECOMMENDATION REQUIREMENTS =====\n")
	fmt.Fprintf(&b, "Select EXACTLY %d products from the candidate list that make the most compelling, personalized recommendations for this user.\n\n", count)
	b.WriteString("Your recommendation mix should include:\n")
	b.WriteString("1. Core picks that closely match the browsing behavior and stated preferences.\n")
	b.WriteString("2. Complementary items that go well with products the user has viewed.\n")
	b.WriteString("3. One discovery item: unexpected, but still relevant to this user.\n\n")
	b.WriteString("For each product, explain specifically WHY it fits this user. Reference concrete aspects of their browsing or preferences and the product features that address them. Avoid generic praise such as \"highly rated and popular\".\n\n")

	b.WriteString("FORMAT YOUR RESPONSE AS A JSON ARRAY EXACTLY LIKE THIS:\n")
	b.WriteString(`[
  {
    "product_id": "prod123",
    "explanation": "Clear reasoning that connects this product to the user's specific interests",
    "score": 8
  },
  {
    "product_id": "prod456",
    "explanation": "Explanation for the second product",
    "score": 7
  }
]`)
	b.WriteString("\n")

	return b.String()
}

func writeProduct(b *strings.Builder, p *models.Product) {
	fmt.Fprintf(b, "• %s\n", p.Name)
	fmt.Fprintf(b, "  - ID: %s\n", p.ID)
	fmt.Fprintf(b, "  - Category: %s\n", p.Category)
	fmt.Fprintf(b, "  - Price: $%s\n", formatPrice(p.Price))
	if p.Brand != "" {
		fmt.Fprintf(b, "  - Brand: %s\n", p.Brand)
	}
	if p.Rating > 0 {
		fmt.Fprintf(b, "  - Rating: %s/5\n", strconv.FormatFloat(p.Rating, 'f', -1, 64))
	}
}

// describePriceRange renders "all" as "Any price", "a-b" as "$a to $b" and
// anything else verbatim.
func describePriceRange(raw string) string {
	if raw == "" || raw == models.PriceRangeAll {
		return "Any price"
	}
	parts := strings.Split(raw, "-")
	if len(parts) != 2 {
		return raw
	}
	return fmt.Sprintf("$%s to $%s", strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func joinOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ", ")
}

func head(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}
