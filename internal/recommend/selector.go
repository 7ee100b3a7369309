// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package recommend

import (
	"sort"

	"github.com/tomtom215/shoprec/internal/models"
)

// ScoredCandidate is a product with its relevance score for one request.
// Scores are only comparable within the request that produced them.
type ScoredCandidate struct {
	Product models.Product `json:"product"`
	Score   float64        `json:"score"`

	// Breakdown holds the non-zero contribution of each rule by name.
	Breakdown map[string]float64 `json:"breakdown,omitempty"`
}

// Selector narrows a catalog to a small, category-diverse candidate set.
type Selector struct {
	weights   Weights
	rules     []Rule
	diversity int
}

// NewSelector creates a selector with DefaultRules. diversity <= 0 uses
// DefaultDiversityCategories.
//
//nolint:gocritic // Weights is a small value type
func NewSelector(w Weights, diversity int) *Selector {
	if diversity <= 0 {
		diversity = DefaultDiversityCategories
	}
	return &Selector{weights: w, rules: DefaultRules(), diversity: diversity}
}

// Rank scores every product not in browsed and returns them in descending
// score order. Ties keep catalog order.
func (s *Selector) Rank(prefs models.UserPreferences, browsed, products []models.Product) []ScoredCandidate {
	sc := NewScoringContext(s.weights, prefs, browsed)

	ranked := make([]ScoredCandidate, 0, len(products))
	for i := range products {
		p := &products[i]
		if sc.BrowsedIDs.has(p.ID) {
			continue
		}

		cand := ScoredCandidate{Product: *p}
		for _, rule := range s.rules {
			v := rule.Score(p, sc)
			if v == 0 {
				continue
			}
			cand.Score += v
			if cand.Breakdown == nil {
				cand.Breakdown = make(map[string]float64, len(s.rules))
			}
			cand.Breakdown[rule.Name] = v
		}
		ranked = append(ranked, cand)
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score > ranked[b].Score
	})
	return ranked
}

// Select returns up to maxProducts candidates. maxProducts <= 0 uses
// DefaultMaxCandidates.
//
// The top-ranked product is always first. The next picks walk the ranking
// and take products from categories not yet covered until the diversity
// target is reached. Remaining slots are filled in score order.
func (s *Selector) Select(prefs models.UserPreferences, browsed, products []models.Product, maxProducts int) []models.Product {
	if maxProducts <= 0 {
		maxProducts = DefaultMaxCandidates
	}

	ranked := s.Rank(prefs, browsed, products)
	if len(ranked) == 0 {
		return []models.Product{}
	}

	selected := make([]models.Product, 0, min(maxProducts, len(ranked)))
	picked := make([]bool, len(ranked))
	categories := make(stringSet, s.diversity)

	take := func(i int) {
		selected = append(selected, ranked[i].Product)
		picked[i] = true
		if c := ranked[i].Product.Category; c != "" {
			categories[c] = struct{}{}
		}
	}

	take(0)

	for i := 1; i < len(ranked) && len(selected) < maxProducts; i++ {
		c := ranked[i].Product.Category
		if len(categories) >= s.diversity || c == "" || categories.has(c) {
			continue
		}
		take(i)
	}

	for i := 1; i < len(ranked) && len(selected) < maxProducts; i++ {
		if !picked[i] {
			take(i)
		}
	}

	return selected
}
