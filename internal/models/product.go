// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package models

// Product is a single catalog item. ID is the only field guaranteed unique.
//
// Brand, Rating, Features and Tags are optional and simply contribute nothing
// to scoring when empty. Description, Image and Inventory are carried through
// to clients but never scored.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Brand       string   `json:"brand,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	Features    []string `json:"features,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Description string   `json:"description,omitempty"`
	Image       string   `json:"image,omitempty"`
	Inventory   int      `json:"inventory,omitempty"`
}

// UserPreferences are the explicit preferences submitted with a request.
//
// PriceRange is either "all" or "<min>-<max>". Categories and Brands are
// treated as sets: order and duplicates carry no meaning.
type UserPreferences struct {
	PriceRange string   `json:"priceRange" validate:"omitempty,pricerange"`
	Categories []string `json:"categories" validate:"omitempty,max=50,dive,max=100"`
	Brands     []string `json:"brands" validate:"omitempty,max=50,dive,max=100"`
}

// PriceRangeAll disables price-bound scoring.
const PriceRangeAll = "all"
