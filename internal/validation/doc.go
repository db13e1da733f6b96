// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

// Package validation provides struct validation using go-playground/validator v10.
//
// It wraps a thread-safe singleton validator with the application's custom
// tags and translates failures into the API's VALIDATION_FAILED format.
//
// # Custom tags
//
//   - dataset_location: a local path, file:// or http(s):// URL, or a
//     gs://bucket/object location
//   - sort_order: asc, ascending, desc or descending (any case); empty is allowed
//
// # Usage
//
//	type AirportsQuery struct {
//	    West  float64 `validate:"gte=-180,lte=180"`
//	    North float64 `validate:"gte=-90,lte=90,gtefield=South"`
//	    Order string  `validate:"sort_order"`
//	}
//
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// Configuration structs are validated the same way by internal/config
// before any hand-written cross-field checks run.
package validation
