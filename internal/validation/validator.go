// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/shoprec/internal/recommend"
)

// ErrorCode is the API error code for every validation failure.
const ErrorCode = "VALIDATION_ERROR"

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is a single field validation failure.
type FieldError struct {
	Field   string      `json:"field"`
	Tag     string      `json:"tag"`
	Param   string      `json:"param,omitempty"`
	Value   interface{} `json:"value,omitempty"`
	Message string      `json:"message"`
}

// RequestValidationError collects every field failure of one request.
type RequestValidationError struct {
	Fields []FieldError
}

// Error implements the error interface, returning a combined error message.
func (ve *RequestValidationError) Error() string {
	if len(ve.Fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(ve.Fields))
	for i := range ve.Fields {
		messages[i] = ve.Fields[i].Message
	}
	return strings.Join(messages, "; ")
}

// APIError mirrors models.APIError without importing it.
type APIError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

// ToAPIError converts the failures to the API error format. A single failure
// is reported inline; several are listed under details.fields.
func (ve *RequestValidationError) ToAPIError() *APIError {
	switch len(ve.Fields) {
	case 0:
		return &APIError{Code: ErrorCode, Message: "Validation failed"}
	case 1:
		f := ve.Fields[0]
		return &APIError{
			Code:    ErrorCode,
			Message: f.Message,
			Details: map[string]interface{}{
				"field": f.Field,
				"tag":   f.Tag,
				"value": f.Value,
			},
		}
	default:
		messages := make([]string, len(ve.Fields))
		for i := range ve.Fields {
			messages[i] = fmt.Sprintf("%s: %s", ve.Fields[i].Field, ve.Fields[i].Message)
		}
		return &APIError{
			Code:    ErrorCode,
			Message: strings.Join(messages, "; "),
			Details: map[string]interface{}{"fields": ve.Fields},
		}
	}
}

// GetValidator returns the singleton validator instance.
// The validator is initialized once with custom validators and options.
// This function is thread-safe.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report JSON names so messages match the request body.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		// Registration only fails for an empty tag or nil func.
		_ = validate.RegisterValidation("pricerange", validatePriceRange)
	})

	return validate
}

// validatePriceRange accepts "all" or "<min>-<max>" with 0 <= min <= max.
func validatePriceRange(fl validator.FieldLevel) bool {
	pr := recommend.ParsePriceRange(fl.Field().String())
	switch pr.Kind {
	case recommend.PriceAny:
		return true
	case recommend.PriceBounded:
		return pr.Min >= 0 && pr.Min <= pr.Max
	default:
		return false
	}
}

// ValidateStruct validates a struct using the singleton validator.
// Returns nil if validation passes, or *RequestValidationError if validation fails.
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &RequestValidationError{
			Fields: []FieldError{{Field: "unknown", Tag: "unknown", Message: err.Error()}},
		}
	}

	fields := make([]FieldError, len(validationErrs))
	for i, fe := range validationErrs {
		fields[i] = FieldError{
			Field:   fieldPath(fe),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Value:   fe.Value(),
			Message: translateError(fe),
		}
	}
	return &RequestValidationError{Fields: fields}
}

// fieldPath drops the top-level struct name from the namespace, so
// "RecommendationRequest.preferences.priceRange" becomes "preferences.priceRange".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// errorMessageTemplates maps validation tags to message templates.
var errorMessageTemplates = map[string]string{
	"required":   "%s is required",
	"pricerange": "%s must be \"all\" or \"<min>-<max>\" with 0 <= min <= max",
	"url":        "%s must be a valid URL",
}

// errorMessageWithParam maps validation tags to templates that include param.
var errorMessageWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
}

func translateError(fe validator.FieldError) string {
	field := fieldPath(fe)
	tag := fe.Tag()
	param := fe.Param()

	if template, ok := errorMessageTemplates[tag]; ok {
		return fmt.Sprintf(template, field)
	}
	if template, ok := errorMessageWithParam[tag]; ok {
		return fmt.Sprintf(template, field, param)
	}
	return translateMinMax(fe, field, tag, param)
}

// translateMinMax handles min/max validation with type-specific messages.
func translateMinMax(fe validator.FieldError, field, tag, param string) string {
	var unit string
	switch fe.Kind().String() {
	case "string":
		unit = " characters"
	case "slice", "array", "map":
		unit = " items"
	}

	switch tag {
	case "min":
		return fmt.Sprintf("%s must be at least %s%s", field, param, unit)
	case "max":
		return fmt.Sprintf("%s must be at most %s%s", field, param, unit)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}
