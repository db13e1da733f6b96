// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

/*
Package middleware provides HTTP middleware for the flightmap API.

Every middleware here has the chi signature func(http.Handler) http.Handler
and is installed by the api router.

Key Components:

  - RequestID: UUID request IDs, echoed in X-Request-ID and carried in the
    logging context so handler and pipeline logs share a request_id field
  - PrometheusMetrics: api_requests_total, api_request_duration_seconds and
    api_active_requests, labelled by chi route pattern
  - Compression: gzip for JSON responses when the client accepts it

Typical stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.With(middleware.Compression).Get("/api/v1/scene", h.Scene)

The endpoint label uses the matched route pattern ("/api/v1/routes"), not
the raw path, so query strings and unknown paths cannot grow label
cardinality. Requests that match no route are labelled "unmatched".
*/
package middleware
