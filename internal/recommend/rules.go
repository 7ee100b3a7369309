// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package recommend

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/tomtom215/shoprec/internal/models"
)

// Price and rating thresholds.
const (
	nearRangeLow    = 0.8
	nearRangeHigh   = 1.2
	avgCloseRatio   = 0.2
	avgNearRatio    = 0.4
	ratingExcellent = 4.7
	ratingGreat     = 4.5
	ratingGood      = 4.0
)

// PriceRangeKind classifies a preference price range.
type PriceRangeKind int

const (
	// PriceAny is "all" (or no preference).
	PriceAny PriceRangeKind = iota
	// PriceBounded is a parsed "<min>-<max>".
	PriceBounded
	// PriceInvalid is anything else. It disables every price rule.
	PriceInvalid
)

// PriceRange is a parsed UserPreferences.PriceRange.
type PriceRange struct {
	Kind PriceRangeKind
	Min  float64
	Max  float64
	Raw  string
}

// ParsePriceRange parses "all" or "<min>-<max>". An empty string is treated
// as "all".
func ParsePriceRange(raw string) PriceRange {
	pr := PriceRange{Raw: raw}
	if raw == "" || raw == models.PriceRangeAll {
		pr.Kind = PriceAny
		return pr
	}

	parts := strings.Split(raw, "-")
	if len(parts) != 2 {
		pr.Kind = PriceInvalid
		return pr
	}
	lo, errLo := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	hi, errHi := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errLo != nil || errHi != nil {
		pr.Kind = PriceInvalid
		return pr
	}

	pr.Kind = PriceBounded
	pr.Min, pr.Max = lo, hi
	return pr
}

type stringSet map[string]struct{}

func (s stringSet) has(v string) bool {
	_, ok := s[v]
	return ok
}

func newStringSet(values []string) stringSet {
	s := make(stringSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// ScoringContext is everything the rules need about one request. It is
// built once per request and read-only afterwards.
type ScoringContext struct {
	Weights Weights
	Price   PriceRange

	PreferredCategories stringSet
	PreferredBrands     stringSet

	HasHistory        bool
	BrowsedIDs        stringSet
	BrowsedCategories stringSet
	BrowsedBrands     stringSet
	BrowsedTags       stringSet

	// BrowsedFeatureWords are the distinct lowercase words of every browsed
	// feature string.
	BrowsedFeatureWords []string

	// AvgBrowsedPrice is the mean over browsed products, duplicates included.
	AvgBrowsedPrice float64
}

// NewScoringContext derives a scoring context from the request.
//
//nolint:gocritic // Weights is a small value type
func NewScoringContext(w Weights, prefs models.UserPreferences, browsed []models.Product) *ScoringContext {
	sc := &ScoringContext{
		Weights:             w,
		Price:               ParsePriceRange(prefs.PriceRange),
		PreferredCategories: newStringSet(prefs.Categories),
		PreferredBrands:     newStringSet(prefs.Brands),
		HasHistory:          len(browsed) > 0,
		BrowsedIDs:          make(stringSet, len(browsed)),
		BrowsedCategories:   make(stringSet),
		BrowsedBrands:       make(stringSet),
		BrowsedTags:         make(stringSet),
	}

	words := make(stringSet)
	var priceSum float64
	for i := range browsed {
		p := &browsed[i]
		sc.BrowsedIDs[p.ID] = struct{}{}
		if p.Category != "" {
			sc.BrowsedCategories[p.Category] = struct{}{}
		}
		if p.Brand != "" {
			sc.BrowsedBrands[p.Brand] = struct{}{}
		}
		for _, tag := range p.Tags {
			sc.BrowsedTags[tag] = struct{}{}
		}
		for _, f := range p.Features {
			for _, word := range strings.Fields(strings.ToLower(f)) {
				words[word] = struct{}{}
			}
		}
		priceSum += p.Price
	}
	if sc.HasHistory {
		sc.AvgBrowsedPrice = priceSum / float64(len(browsed))
	}

	sc.BrowsedFeatureWords = make([]string, 0, len(words))
	for w := range words {
		sc.BrowsedFeatureWords = append(sc.BrowsedFeatureWords, w)
	}
	sort.Strings(sc.BrowsedFeatureWords)
	return sc
}

// Rule is one additive scoring term. Score must be a pure function of its
// arguments.
type Rule struct {
	Name  string
	Score func(p *models.Product, sc *ScoringContext) float64
}

// DefaultRules returns the scoring rules in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "category", Score: categoryScore},
		{Name: "brand", Score: brandScore},
		{Name: "price", Score: priceScore},
		{Name: "rating", Score: ratingScore},
		{Name: "tags", Score: tagScore},
		{Name: "features", Score: featureScore},
		{Name: "discovery", Score: discoveryScore},
	}
}

func categoryScore(p *models.Product, sc *ScoringContext) float64 {
	switch {
	case sc.PreferredCategories.has(p.Category):
		return sc.Weights.PreferredCategory
	case sc.BrowsedCategories.has(p.Category):
		return sc.Weights.BrowsedCategory
	}
	return 0
}

func brandScore(p *models.Product, sc *ScoringContext) float64 {
	if p.Brand == "" {
		return 0
	}
	switch {
	case sc.PreferredBrands.has(p.Brand):
		return sc.Weights.PreferredBrand
	case sc.BrowsedBrands.has(p.Brand):
		return sc.Weights.BrowsedBrand
	}
	return 0
}

// priceScore applies the explicit range when one is given. The browsing
// average is only consulted when the preference is "all".
func priceScore(p *models.Product, sc *ScoringContext) float64 {
	switch sc.Price.Kind {
	case PriceBounded:
		lo, hi := sc.Price.Min, sc.Price.Max
		switch {
		case lo <= p.Price && p.Price <= hi:
			return sc.Weights.InPriceRange
		case p.Price < lo && p.Price >= lo*nearRangeLow,
			p.Price > hi && p.Price <= hi*nearRangeHigh:
			return sc.Weights.NearPriceRange
		}
		return 0
	case PriceAny:
		if !sc.HasHistory {
			return 0
		}
		ratio := 1.0
		if sc.AvgBrowsedPrice > 0 {
			ratio = math.Abs(p.Price-sc.AvgBrowsedPrice) / sc.AvgBrowsedPrice
		}
		switch {
		case ratio <= avgCloseRatio:
			return sc.Weights.PriceCloseToAvg
		case ratio <= avgNearRatio:
			return sc.Weights.PriceNearAvg
		}
		return 0
	default:
		return 0
	}
}

func ratingScore(p *models.Product, sc *ScoringContext) float64 {
	switch {
	case p.Rating >= ratingExcellent:
		return sc.Weights.RatingExcellent
	case p.Rating >= ratingGreat:
		return sc.Weights.RatingGreat
	case p.Rating >= ratingGood:
		return sc.Weights.RatingGood
	}
	return 0
}

func tagScore(p *models.Product, sc *ScoringContext) float64 {
	if len(p.Tags) == 0 || len(sc.BrowsedTags) == 0 {
		return 0
	}
	common := make(stringSet, len(p.Tags))
	for _, tag := range p.Tags {
		if sc.BrowsedTags.has(tag) {
			common[tag] = struct{}{}
		}
	}
	return float64(len(common)) * sc.Weights.TagMatch
}

// featureScore counts candidate features containing any browsed feature
// word as a substring. Each candidate feature counts at most once. Short
// words match inside longer ones: "a" matches "headset".
func featureScore(p *models.Product, sc *ScoringContext) float64 {
	if !sc.HasHistory || len(p.Features) == 0 {
		return 0
	}
	matches := 0
	for _, f := range p.Features {
		lower := strings.ToLower(f)
		for _, word := range sc.BrowsedFeatureWords {
			if strings.Contains(lower, word) {
				matches++
				break
			}
		}
	}
	return float64(matches) * sc.Weights.FeatureMatch
}

// discoveryScore rewards preferred categories the user has not browsed yet.
// It stacks with categoryScore.
func discoveryScore(p *models.Product, sc *ScoringContext) float64 {
	if sc.PreferredCategories.has(p.Category) && !sc.BrowsedCategories.has(p.Category) {
		return sc.Weights.Discovery
	}
	return 0
}
