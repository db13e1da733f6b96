// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:3857/metrics

# Available Metrics

Pipeline Metrics:
  - pipeline_runs_total: Completed runs (counter)
    Labels: result (success, load_failure, configuration_error, render_error)
  - pipeline_duration_seconds: Stage latency (histogram)
    Labels: stage (load, aggregate, layout, render, total)
  - pipeline_records_loaded: Records in the latest run (gauge)
  - pipeline_airlines: Distinct airlines in the latest run (gauge)
  - pipeline_airports: Distinct airports in the latest run (gauge)
    Labels: position (usable, unusable)
  - coercion_warnings_total: Coordinates that failed numeric coercion (counter)
    Labels: field

Loader Metrics:
  - loader_requests_total: Dataset fetches (counter)
    Labels: source (file, http, gcs), result (success, failure)
  - loader_bytes_total: Bytes read from dataset sources (counter)
    Labels: source

HTTP Metrics:
  - api_requests_total: Total HTTP requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: Active requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)

Circuit Breaker Metrics:
  - circuit_breaker_state: Current state (gauge)
    Labels: name
    Values: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total: Requests through the breaker (counter)
    Labels: name, result (success, failure, rejected)
  - circuit_breaker_consecutive_failures: Current failure streak (gauge)
  - circuit_breaker_state_transitions_total: State changes (counter)
    Labels: name, from_state, to_state

# Example Alerts

	groups:
	  - name: flightmap
	    rules:
	      - alert: DatasetUnreachable
	        expr: increase(pipeline_runs_total{result="load_failure"}[10m]) > 3
	        for: 5m
	      - alert: CircuitBreakerOpen
	        expr: circuit_breaker_state > 0
	        for: 5m
*/
package metrics
