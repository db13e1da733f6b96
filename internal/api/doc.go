// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

/*
Package api serves the flightmap pipeline over HTTP.

Every data request runs the pipeline from scratch: both datasets are loaded,
re-aggregated and laid out, then the handler picks the part of the scene it
needs. Nothing is cached between requests, so a replaced dataset is picked
up by the next request.

Endpoints:

	GET /api/v1/health/live        liveness, always 200
	GET /api/v1/health/ready       503 until the routes dataset is reachable
	GET /api/v1/airlines           ranked airline summaries (order, limit)
	GET /api/v1/airports           airport summaries, optional viewport
	GET /api/v1/routes             routes of one airline with distances
	GET /api/v1/scene              the positioned scene (surfaces=true adds draw calls)
	GET /api/v1/render.pdf         the scene drawn as a PDF
	GET /metrics                   Prometheus

Responses:

JSON endpoints share the APIResponse envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "..."}}
	{"success": false, "error": {"code": "BAD_REQUEST", "message": "..."}}

Errors from a run map to status codes as follows:

  - dataset unreachable or malformed: 502 EXTERNAL_SERVICE_FAILED
  - scale or projection misconfigured: 422 CONFIGURATION_ERROR
  - invalid query parameters: 400 BAD_REQUEST or VALIDATION_FAILED
  - request deadline exceeded: 503 SERVICE_UNAVAILABLE

Middleware:

The router installs, in order: request ID, real IP, panic recovery, CORS,
Prometheus instrumentation, per-IP rate limiting (httprate) and API
security headers. JSON routes are gzip-compressed when the client accepts
it.
*/
package api
