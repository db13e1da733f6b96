// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package validation

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrorCode is the APIError code for every validation failure.
const ErrorCode = "VALIDATION_FAILED"

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// GetValidator returns the shared validator with the flightmap tags
// registered. Safe for concurrent use.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		for tag, fn := range customTags {
			// Registration only fails for empty tags or nil funcs.
			_ = validate.RegisterValidation(tag, fn)
		}
	})
	return validate
}

var customTags = map[string]validator.Func{
	"dataset_location": validateDatasetLocation,
	"sort_order":       validateSortOrder,
}

// validateDatasetLocation accepts local paths, file:// and http(s):// URLs
// with a host, and gs://bucket/object locations.
func validateDatasetLocation(fl validator.FieldLevel) bool {
	loc := strings.TrimSpace(fl.Field().String())
	if loc == "" {
		return false
	}
	scheme, rest, hasScheme := strings.Cut(loc, "://")
	if !hasScheme {
		return true
	}
	switch strings.ToLower(scheme) {
	case "gs":
		bucket, object, ok := strings.Cut(rest, "/")
		return ok && bucket != "" && object != ""
	case "http", "https":
		u, err := url.Parse(loc)
		return err == nil && u.Host != ""
	case "file":
		u, err := url.Parse(loc)
		return err == nil && u.Path != ""
	default:
		return false
	}
}

// validateSortOrder accepts asc/ascending/desc/descending in any case.
// Empty selects the default order.
func validateSortOrder(fl validator.FieldLevel) bool {
	switch strings.ToLower(strings.TrimSpace(fl.Field().String())) {
	case "", "asc", "ascending", "desc", "descending":
		return true
	}
	return false
}

// ValidationError is one failed constraint.
type ValidationError struct {
	field   string
	path    string
	tag     string
	param   string
	value   interface{}
	message string
}

// Field is the struct field name, e.g. "BandPadding".
func (e *ValidationError) Field() string { return e.field }

// Path is the field's location below the validated struct, e.g.
// "Chart.BandPadding".
func (e *ValidationError) Path() string { return e.path }

// Tag is the failed validation tag.
func (e *ValidationError) Tag() string { return e.tag }

// Param is the tag parameter, e.g. "10000" for max=10000.
func (e *ValidationError) Param() string { return e.param }

// Value is the rejected value.
func (e *ValidationError) Value() interface{} { return e.value }

func (e *ValidationError) Error() string { return e.message }

// RequestValidationError collects every failed constraint of one struct.
type RequestValidationError struct {
	errors []ValidationError
}

// Errors returns the individual failures in field order.
func (ve *RequestValidationError) Errors() []ValidationError {
	return ve.errors
}

func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(ve.errors))
	for i := range ve.errors {
		msgs[i] = ve.errors[i].message
	}
	return strings.Join(msgs, "; ")
}

// APIError mirrors api.APIError so this package does not import api.
type APIError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

// ToAPIError shapes the failures for the response envelope. One failure
// reports its field, tag and value; several are listed under "fields".
func (ve *RequestValidationError) ToAPIError() *APIError {
	apiErr := &APIError{Code: ErrorCode, Message: ve.Error()}
	switch len(ve.errors) {
	case 0:
		apiErr.Message = "Validation failed"
	case 1:
		e := ve.errors[0]
		apiErr.Details = map[string]interface{}{
			"field": e.field,
			"path":  e.path,
			"tag":   e.tag,
			"value": e.value,
		}
	default:
		fields := make([]map[string]interface{}, len(ve.errors))
		for i, e := range ve.errors {
			fields[i] = map[string]interface{}{
				"field":   e.field,
				"path":    e.path,
				"tag":     e.tag,
				"message": e.message,
			}
		}
		apiErr.Details = map[string]interface{}{"fields": fields}
	}
	return apiErr
}

// ValidateStruct checks s against its validate tags. It returns nil when
// every constraint holds.
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// InvalidValidationError: s was nil or not a struct.
		return &RequestValidationError{errors: []ValidationError{{
			field:   "unknown",
			path:    "unknown",
			tag:     "unknown",
			message: err.Error(),
		}}}
	}

	out := make([]ValidationError, len(fieldErrs))
	for i, fe := range fieldErrs {
		path := fieldPath(fe.Namespace())
		out[i] = ValidationError{
			field:   fe.Field(),
			path:    path,
			tag:     fe.Tag(),
			param:   fe.Param(),
			value:   fe.Value(),
			message: describe(fe, path),
		}
	}
	return &RequestValidationError{errors: out}
}

// fieldPath drops the root struct name from a validator namespace:
// "Config.Chart.BandPadding" becomes "Chart.BandPadding".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

// describe renders one failure as "<path> <reason>".
func describe(fe validator.FieldError, path string) string {
	p := fe.Param()
	var reason string
	switch fe.Tag() {
	case "required":
		reason = "is required"
	case "dataset_location":
		reason = "must be a file path, an http(s) URL or a gs://bucket/object location"
	case "sort_order":
		reason = "must be asc, ascending, desc or descending"
	case "latitude":
		reason = "must be a valid latitude (-90 to 90)"
	case "longitude":
		reason = "must be a valid longitude (-180 to 180)"
	case "oneof":
		reason = "must be one of: " + p
	case "gte", "gtefield":
		reason = "must be greater than or equal to " + p
	case "lte", "ltefield":
		reason = "must be less than or equal to " + p
	case "gt", "gtfield":
		reason = "must be greater than " + p
	case "lt", "ltfield":
		reason = "must be less than " + p
	case "min", "max":
		bound := "at least"
		if fe.Tag() == "max" {
			bound = "at most"
		}
		reason = fmt.Sprintf("must be %s %s", bound, p)
		if fe.Kind().String() == "string" {
			reason += " characters"
		}
	default:
		reason = "failed " + fe.Tag() + " validation"
	}
	return path + " " + reason
}
