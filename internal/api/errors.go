// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/flightmap/internal/loader"
	"github.com/tomtom215/flightmap/internal/logging"
	"github.com/tomtom215/flightmap/internal/models"
	"github.com/tomtom215/flightmap/internal/validation"
)

// Common API errors
var (
	// ErrPartialViewport is returned when only some viewport bounds are given.
	ErrPartialViewport = errors.New("viewport requires west, south, east and north together")
)

// RespondRunError maps a pipeline error to the response envelope.
func RespondRunError(w http.ResponseWriter, r *http.Request, err error) {
	rw := NewResponseWriter(w, r)

	// Context errors come first: a load cut short by the run deadline is
	// still a LoadError.
	var le *loader.LoadError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Pipeline run timed out")
		rw.ServiceUnavailable("Pipeline run timed out")
	case errors.Is(err, context.Canceled):
		// The client went away; nobody reads this response.
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Pipeline run canceled")
		rw.ServiceUnavailable("Request canceled")
	case errors.As(err, &le):
		rw.ExternalServiceError(le.Dataset+" dataset", err)
	case errors.Is(err, loader.ErrLoadFailure):
		rw.ExternalServiceError("dataset", err)
	case errors.Is(err, models.ErrConfiguration):
		rw.ConfigurationError(err)
	default:
		logging.Ctx(r.Context()).Error().Err(err).Msg("Pipeline run failed")
		rw.InternalError("Pipeline run failed")
	}
}

// RespondValidationError writes a 400 for invalid query parameters.
func RespondValidationError(w http.ResponseWriter, r *http.Request, verr *validation.RequestValidationError) {
	apiErr := verr.ToAPIError()
	NewResponseWriter(w, r).ValidationError(apiErr.Message, apiErr.Details)
}
