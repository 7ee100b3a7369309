// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package recommend

import (
	"strings"
	"testing"
)

func TestParseResponse(t *testing.T) {
	cat := newCatalog(t,
		product("p1", "electronics", 30, 4.8),
		product("p2", "books", 12, 4.1),
	)

	tests := []struct {
		name      string
		text      string
		wantIDs   []string
		wantScore []float64
		wantExpl  []string
		wantErr   string
	}{
		{
			name:      "fenced json block",
			text:      "Here you go:\n```json\n[{\"product_id\":\"p1\",\"explanation\":\"fits\",\"score\":9}]\n```\nEnjoy!",
			wantIDs:   []string{"p1"},
			wantScore: []float64{9},
			wantExpl:  []string{"fits"},
		},
		{
			name:      "fence without language",
			text:      "```\n[{\"product_id\":\"p2\",\"explanation\":\"\",\"score\":\"7.5\"}]\n```",
			wantIDs:   []string{"p2"},
			wantScore: []float64{7.5},
			wantExpl:  []string{""},
		},
		{
			name:      "bare array with surrounding text",
			text:      `Sure! [{"product_id":"p2","explanation":"cheap"},{"product_id":"p1","score":null}] hope this helps`,
			wantIDs:   []string{"p2", "p1"},
			wantScore: []float64{5, 5},
			wantExpl:  []string{"cheap", ""},
		},
		{
			name:      "unknown and non-string ids dropped",
			text:      `[{"product_id":"nope"},{"product_id":42},{"explanation":"no id"},{"product_id":"p1","score":"high"}]`,
			wantIDs:   []string{"p1"},
			wantScore: []float64{5},
			wantExpl:  []string{""},
		},
		{
			name:    "empty array",
			text:    "[]",
			wantIDs: []string{},
		},
		{
			name:    "no brackets",
			text:    "I cannot help with that.",
			wantErr: ErrMsgNoJSON,
		},
		{
			name:    "only an opening bracket",
			text:    "[ oops",
			wantErr: ErrMsgNoJSON,
		},
		{
			name:    "invalid json",
			text:    "[{product_id: p1}]",
			wantErr: "Failed to parse recommendations: ",
		},
		{
			name:    "fenced object instead of array",
			text:    "```json\n{\"product_id\":\"p1\"}\n```",
			wantErr: "Failed to parse recommendations: ",
		},
		{
			name:    "non-object element",
			text:    `["p1", "p2"]`,
			wantErr: "Failed to parse recommendations: element 0 is not an object",
		},
		{
			name:    "closing bracket before opening",
			text:    "] and [",
			wantErr: "Failed to parse recommendations: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseResponse(tt.text, cat)
			if got == nil {
				t.Fatal("ParseResponse() returned nil")
			}

			if tt.wantErr != "" {
				if !strings.HasPrefix(got.Error, tt.wantErr) {
					t.Errorf("Error = %q, want prefix %q", got.Error, tt.wantErr)
				}
				if got.Recommendations == nil || len(got.Recommendations) != 0 || got.Count != 0 {
					t.Errorf("failure should carry an empty list, got %+v", got)
				}
				return
			}

			if got.Error != "" {
				t.Fatalf("unexpected Error %q", got.Error)
			}
			if got.Count != len(tt.wantIDs) || len(got.Recommendations) != len(tt.wantIDs) {
				t.Fatalf("Count = %d, len = %d, want %d", got.Count, len(got.Recommendations), len(tt.wantIDs))
			}
			for i, rec := range got.Recommendations {
				if rec.Product.ID != tt.wantIDs[i] {
					t.Errorf("[%d] id = %s, want %s", i, rec.Product.ID, tt.wantIDs[i])
				}
				if rec.ConfidenceScore != tt.wantScore[i] {
					t.Errorf("[%d] score = %v, want %v", i, rec.ConfidenceScore, tt.wantScore[i])
				}
				if rec.Explanation != tt.wantExpl[i] {
					t.Errorf("[%d] explanation = %q, want %q", i, rec.Explanation, tt.wantExpl[i])
				}
			}
		})
	}
}

func TestParseResponse_ResolvesFullProduct(t *testing.T) {
	p := product("p1", "electronics", 30, 4.8)
	p.Brand = "Sonic"
	p.Features = []string{"Bluetooth"}
	cat := newCatalog(t, p)

	got := ParseResponse(`[{"product_id":"p1","explanation":"x","score":8}]`, cat)
	if got.Count != 1 {
		t.Fatalf("Count = %d", got.Count)
	}
	rec := got.Recommendations[0].Product
	if rec.Brand != "Sonic" || rec.Price != 30 || len(rec.Features) != 1 {
		t.Errorf("product not resolved from catalog: %+v", rec)
	}
}
