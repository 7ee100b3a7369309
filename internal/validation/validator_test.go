// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package validation

import (
	"strings"
	"testing"

	"github.com/tomtom215/shoprec/internal/models"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() should not return nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
}

func TestValidateStruct_PriceRange(t *testing.T) {
	tests := []struct {
		priceRange string
		valid      bool
	}{
		{"all", true},
		{"", true},
		{"10-50", true},
		{"0-0", true},
		{"25.5-100", true},
		{"50-10", false},
		{"cheap", false},
		{"10-", false},
		{"1-2-3", false},
	}
	for _, tt := range tests {
		t.Run(tt.priceRange, func(t *testing.T) {
			req := models.RecommendationRequest{
				Preferences: models.UserPreferences{PriceRange: tt.priceRange},
			}
			verr := ValidateStruct(&req)
			if tt.valid && verr != nil {
				t.Errorf("unexpected error: %v", verr)
			}
			if !tt.valid {
				if verr == nil {
					t.Fatal("expected validation error")
				}
				if got := verr.Fields[0].Field; got != "preferences.priceRange" {
					t.Errorf("Field = %q", got)
				}
				if verr.Fields[0].Tag != "pricerange" {
					t.Errorf("Tag = %q", verr.Fields[0].Tag)
				}
			}
		})
	}
}

func TestValidateStruct_HistoryLimits(t *testing.T) {
	history := make([]string, 201)
	for i := range history {
		history[i] = "p"
	}
	verr := ValidateStruct(&models.RecommendationRequest{BrowsingHistory: history})
	if verr == nil {
		t.Fatal("expected error for oversized history")
	}
	if !strings.Contains(verr.Error(), "browsing_history must be at most 200 items") {
		t.Errorf("message = %q", verr.Error())
	}

	verr = ValidateStruct(&models.RecommendationRequest{BrowsingHistory: []string{"ok", ""}})
	if verr == nil || verr.Fields[0].Tag != "required" {
		t.Errorf("empty id should fail required, got %v", verr)
	}
}

func TestToAPIError(t *testing.T) {
	single := ValidateStruct(&models.RecommendationRequest{
		Preferences: models.UserPreferences{PriceRange: "nope"},
	}).ToAPIError()
	if single.Code != ErrorCode {
		t.Errorf("Code = %q", single.Code)
	}
	if single.Details["field"] != "preferences.priceRange" {
		t.Errorf("Details = %v", single.Details)
	}

	multi := ValidateStruct(&models.RecommendationRequest{
		Preferences:     models.UserPreferences{PriceRange: "nope"},
		BrowsingHistory: []string{""},
	}).ToAPIError()
	fields, ok := multi.Details["fields"].([]FieldError)
	if !ok || len(fields) != 2 {
		t.Fatalf("Details = %v", multi.Details)
	}
	if !strings.Contains(multi.Message, "; ") {
		t.Errorf("Message = %q", multi.Message)
	}

	empty := (&RequestValidationError{}).ToAPIError()
	if empty.Message != "Validation failed" {
		t.Errorf("empty Message = %q", empty.Message)
	}
}
