// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

// Package catalog loads the product catalog and answers lookups and
// filtered listings against it. A Catalog is immutable after loading and is
// safe for concurrent use.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/shoprec/internal/models"
)

var (
	// ErrEmptyID is returned when a product has no id.
	ErrEmptyID = errors.New("catalog: product with empty id")

	// ErrDuplicateID is returned when two products share an id.
	ErrDuplicateID = errors.New("catalog: duplicate product id")
)

// Catalog is an ordered, indexed set of products.
type Catalog struct {
	products []models.Product
	byID     map[string]int
}

// Load reads a JSON array of products from path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", path, err)
	}
	return New(products)
}

// New builds a catalog from products, preserving their order.
func New(products []models.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]models.Product, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	copy(c.products, products)
	for i, p := range c.products {
		if p.ID == "" {
			return nil, fmt.Errorf("%w at index %d", ErrEmptyID, i)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, p.ID)
		}
		c.byID[p.ID] = i
	}
	return c, nil
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Products returns the products in catalog order. Callers must not modify
// the returned slice.
func (c *Catalog) Products() []models.Product {
	return c.products
}

// Get looks up a product by id.
func (c *Catalog) Get(id string) (models.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Product{}, false
	}
	return c.products[i], true
}

// Resolve maps ids to products in the given order, skipping unknown ids.
// Duplicates are kept.
func (c *Catalog) Resolve(ids []string) []models.Product {
	out := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := c.Get(id); ok {
			out = append(out, p)
		}
	}
	return out
}

// Filter narrows a listing. Zero values disable each criterion.
type Filter struct {
	// Search matches case-insensitively against name, description,
	// category and brand.
	Search    string
	Category  string
	Brand     string
	MinPrice  float64
	MaxPrice  float64
	MinRating float64
}

func (f Filter) matches(p *models.Product) bool {
	if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
		return false
	}
	if f.Brand != "" && !strings.EqualFold(p.Brand, f.Brand) {
		return false
	}
	if f.MinPrice > 0 && p.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && p.Price > f.MaxPrice {
		return false
	}
	if f.MinRating > 0 && p.Rating < f.MinRating {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		fields := []string{p.Name, p.Description, p.Category, p.Brand}
		found := false
		for _, field := range fields {
			if strings.Contains(strings.ToLower(field), q) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Filter returns the products matching f in catalog order.
func (c *Catalog) Filter(f Filter) []models.Product {
	out := make([]models.Product, 0)
	for i := range c.products {
		if f.matches(&c.products[i]) {
			out = append(out, c.products[i])
		}
	}
	return out
}

// Facets returns the sorted distinct categories and brands.
func (c *Catalog) Facets() models.Facets {
	categories := make(map[string]struct{})
	brands := make(map[string]struct{})
	for _, p := range c.products {
		if p.Category != "" {
			categories[p.Category] = struct{}{}
		}
		if p.Brand != "" {
			brands[p.Brand] = struct{}{}
		}
	}
	return models.Facets{
		Categories: sortedKeys(categories),
		Brands:     sortedKeys(brands),
	}
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
