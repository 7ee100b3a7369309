// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/shoprec/internal/catalog"
	"github.com/tomtom215/shoprec/internal/models"
)

// maxSearchLen bounds the q parameter.
const maxSearchLen = 200

// ListProducts returns the catalog, optionally filtered by
// q, category, brand, min_price, max_price and min_rating.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	filter, err := parseProductFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}

	products := h.catalog.Filter(filter)
	respondSuccess(w, models.ProductList{Products: products, Total: len(products)}, start, false)
}

// GetProduct returns a single product by id.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id := chi.URLParam(r, "id")
	product, ok := h.catalog.Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "Product not found", nil)
		return
	}
	respondSuccess(w, product, start, false)
}

// ProductFacets returns the distinct categories and brands.
func (h *Handler) ProductFacets(w http.ResponseWriter, _ *http.Request) {
	respondSuccess(w, h.catalog.Facets(), time.Now(), false)
}

func parseProductFilter(r *http.Request) (catalog.Filter, error) {
	q := r.URL.Query()
	f := catalog.Filter{
		Search:   q.Get("q"),
		Category: q.Get("category"),
		Brand:    q.Get("brand"),
	}
	if len(f.Search) > maxSearchLen {
		return f, fmt.Errorf("q must be at most %d characters", maxSearchLen)
	}

	var err error
	if f.MinPrice, err = floatParam(q.Get("min_price"), "min_price"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = floatParam(q.Get("max_price"), "max_price"); err != nil {
		return f, err
	}
	if f.MinRating, err = floatParam(q.Get("min_rating"), "min_rating"); err != nil {
		return f, err
	}
	if f.MaxPrice > 0 && f.MinPrice > f.MaxPrice {
		return f, fmt.Errorf("min_price must not exceed max_price")
	}
	return f, nil
}

func floatParam(raw, name string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s must be a non-negative number", name)
	}
	return v, nil
}
