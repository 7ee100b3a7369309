// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package recommend

import (
	"fmt"
	"testing"

	"github.com/tomtom215/shoprec/internal/models"
)

func TestSelector_PreferredCategoryOutranksBrowsedCategory(t *testing.T) {
	catalogProducts := []models.Product{
		product("book-1", "books", 30, 4.8),
		product("elec-1", "electronics", 30, 4.8),
		product("home-1", "home", 30, 4.8),
		product("toys-1", "toys", 30, 4.8),
		product("gard-1", "garden", 30, 4.8),
		product("book-seen", "books", 30, 4.0),
	}
	browsed := []models.Product{catalogProducts[5]}
	prefs := models.UserPreferences{PriceRange: "10-50", Categories: []string{"electronics"}}

	ranked := NewSelector(DefaultWeights(), 0).Rank(prefs, browsed, catalogProducts)

	pos := make(map[string]int, len(ranked))
	for i, c := range ranked {
		pos[c.Product.ID] = i
	}
	if pos["elec-1"] >= pos["book-1"] {
		t.Fatalf("elec-1 at %d should outrank book-1 at %d", pos["elec-1"], pos["book-1"])
	}

	// 4 category + 3 price + 2 rating + 1 discovery
	if ranked[0].Product.ID != "elec-1" || ranked[0].Score != 10 {
		t.Errorf("top = %s (%v), want elec-1 (10)", ranked[0].Product.ID, ranked[0].Score)
	}
	if got := ranked[0].Breakdown["discovery"]; got != 1 {
		t.Errorf("discovery contribution = %v, want 1", got)
	}
	// 3 browsed category + 3 price + 2 rating
	if ranked[1].Product.ID != "book-1" || ranked[1].Score != 8 {
		t.Errorf("second = %s (%v), want book-1 (8)", ranked[1].Product.ID, ranked[1].Score)
	}
}

func TestSelector_ExcludesBrowsedProducts(t *testing.T) {
	products := []models.Product{
		product("a", "x", 10, 5),
		product("b", "x", 10, 5),
		product("c", "y", 10, 5),
	}
	browsed := []models.Product{products[0], products[0], products[2]}

	got := NewSelector(DefaultWeights(), 0).Select(models.UserPreferences{}, browsed, products, 15)
	if len(got) != 1 || got[0].ID != "b" {
		t.Errorf("Select() = %v, want [b]", ids(got))
	}
}

func TestSelector_DiversityBeforeFill(t *testing.T) {
	var products []models.Product
	for _, cat := range []string{"a", "a", "a", "b", "b", "c", "d", "e"} {
		products = append(products, product(fmt.Sprintf("%s-%d", cat, len(products)), cat, 10, 4))
	}

	got := NewSelector(DefaultWeights(), 0).Select(models.UserPreferences{}, nil, products, 15)
	if len(got) != len(products) {
		t.Fatalf("len = %d, want %d", len(got), len(products))
	}

	want := []string{"a-0", "b-3", "c-5", "a-1", "a-2", "b-4", "d-6", "e-7"}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("Select() = %v, want %v", ids(got), want)
		}
	}

	seen := map[string]bool{}
	for _, p := range got[:3] {
		if seen[p.Category] {
			t.Errorf("category %s repeated in first three picks", p.Category)
		}
		seen[p.Category] = true
	}
}

func TestSelector_SkipsEmptyCategoryInDiversityPass(t *testing.T) {
	products := []models.Product{
		product("top", "a", 10, 5),
		product("nocat", "", 10, 5),
		product("b1", "b", 10, 5),
	}
	got := NewSelector(DefaultWeights(), 0).Select(models.UserPreferences{}, nil, products, 15)
	want := []string{"top", "b1", "nocat"}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("Select() = %v, want %v", ids(got), want)
		}
	}
}

func TestSelector_UncategorisedTopPickDoesNotCountTowardDiversity(t *testing.T) {
	products := []models.Product{
		product("top", "", 10, 5),
		product("a1", "a", 10, 5),
		product("b1", "b", 10, 5),
		product("a2", "a", 10, 5),
		product("c1", "c", 10, 5),
	}
	got := NewSelector(DefaultWeights(), 3).Select(models.UserPreferences{}, nil, products, 15)
	want := []string{"top", "a1", "b1", "c1", "a2"}
	if len(got) != len(want) {
		t.Fatalf("Select() = %v, want %v", ids(got), want)
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("Select() = %v, want %v", ids(got), want)
		}
	}
}

func TestSelector_Bounds(t *testing.T) {
	var products []models.Product
	for i := 0; i < 40; i++ {
		products = append(products, product(fmt.Sprintf("p%02d", i), fmt.Sprintf("cat%d", i%7), float64(i), 4))
	}
	s := NewSelector(DefaultWeights(), 0)

	if got := s.Select(models.UserPreferences{}, nil, products, 5); len(got) != 5 {
		t.Errorf("max 5: len = %d", len(got))
	}
	if got := s.Select(models.UserPreferences{}, nil, products, 0); len(got) != DefaultMaxCandidates {
		t.Errorf("max 0: len = %d, want %d", len(got), DefaultMaxCandidates)
	}
	if got := s.Select(models.UserPreferences{}, nil, products, -3); len(got) != DefaultMaxCandidates {
		t.Errorf("max -3: len = %d, want %d", len(got), DefaultMaxCandidates)
	}
	if got := s.Select(models.UserPreferences{}, nil, nil, 5); len(got) != 0 {
		t.Errorf("empty catalog: len = %d", len(got))
	}
}

func TestSelector_TiesKeepCatalogOrder(t *testing.T) {
	products := []models.Product{
		product("first", "a", 10, 0),
		product("second", "a", 10, 0),
		product("third", "a", 10, 0),
	}
	ranked := NewSelector(DefaultWeights(), 0).Rank(models.UserPreferences{}, nil, products)
	for i, want := range []string{"first", "second", "third"} {
		if ranked[i].Product.ID != want {
			t.Errorf("ranked[%d] = %s, want %s", i, ranked[i].Product.ID, want)
		}
	}
	if ranked[0].Breakdown != nil {
		t.Errorf("zero score should have no breakdown, got %v", ranked[0].Breakdown)
	}
}

func TestSelector_CustomWeights(t *testing.T) {
	w := DefaultWeights()
	w.RatingExcellent = 100
	products := []models.Product{
		product("pref", "electronics", 30, 0),
		product("star", "books", 30, 4.9),
	}
	prefs := models.UserPreferences{Categories: []string{"electronics"}}

	ranked := NewSelector(w, 0).Rank(prefs, nil, products)
	if ranked[0].Product.ID != "star" {
		t.Errorf("top = %s, want star", ranked[0].Product.ID)
	}
}
