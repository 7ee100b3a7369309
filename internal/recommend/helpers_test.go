// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package recommend

import (
	"testing"

	"github.com/tomtom215/shoprec/internal/catalog"
	"github.com/tomtom215/shoprec/internal/models"
)

func product(id, category string, price, rating float64) models.Product {
	return models.Product{ID: id, Name: "Product " + id, Category: category, Price: price, Rating: rating}
}

func ids(products []models.Product) []string {
	out := make([]string, len(products))
	for i := range products {
		out[i] = products[i].ID
	}
	return out
}

func newCatalog(t *testing.T, products ...models.Product) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(products)
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	return c
}
