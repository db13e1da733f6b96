// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.NewCounterVec(prometheus.CounterOpts{Name: name, Help: help}, labels)
}

func gaugeVec(name, help string, labels ...string) *prometheus.GaugeVec {
	return promauto.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: help}, labels)
}

func gauge(name, help string) prometheus.Gauge {
	return promauto.NewGauge(prometheus.GaugeOpts{Name: name, Help: help})
}

func histogramVec(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	return promauto.NewHistogramVec(prometheus.HistogramOpts{Name: name, Help: help, Buckets: buckets}, labels)
}

// Pipeline runs. result is success, load_failure, configuration_error or
// render_error; stage is load, aggregate, layout, render or total.
var (
	PipelineRuns = counterVec("pipeline_runs_total",
		"Total number of pipeline runs", "result")
	PipelineDuration = histogramVec("pipeline_duration_seconds",
		"Duration of pipeline stages in seconds",
		[]float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}, "stage")
	PipelineRecordsLoaded = gauge("pipeline_records_loaded",
		"Number of route records loaded by the most recent run")
	PipelineAirlines = gauge("pipeline_airlines",
		"Number of distinct airlines in the most recent run")
	PipelineAirports = gaugeVec("pipeline_airports",
		"Number of distinct airports in the most recent run, by usable position", "position")
	CoercionWarnings = counterVec("coercion_warnings_total",
		"Coordinate fields that could not be coerced to numbers", "field")
)

// Dataset sources. source is file, http or gcs.
var (
	LoaderRequests = counterVec("loader_requests_total",
		"Total number of dataset fetches", "source", "result")
	LoaderBytes = counterVec("loader_bytes_total",
		"Bytes read from dataset sources", "source")
	DatasetReachable = gaugeVec("dataset_reachable",
		"1 when the last background probe reached the dataset, else 0", "dataset")
)

// HTTP API. endpoint is the chi route pattern.
var (
	APIRequestsTotal = counterVec("api_requests_total",
		"Total number of API requests", "method", "endpoint", "status_code")
	APIRequestDuration = histogramVec("api_request_duration_seconds",
		"API request duration in seconds",
		[]float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}, "method", "endpoint")
	APIActiveRequests = gauge("api_active_requests",
		"API requests currently in flight")
	APIRateLimitHits = counterVec("api_rate_limit_hits_total",
		"Requests rejected by the rate limiter", "endpoint")
)

// Circuit breakers around remote sources. State is 0 closed, 1 half-open,
// 2 open; result is success, failure or rejected.
var (
	CircuitBreakerState = gaugeVec("circuit_breaker_state",
		"Circuit breaker state (0=closed, 1=half-open, 2=open)", "name")
	CircuitBreakerRequests = counterVec("circuit_breaker_requests_total",
		"Requests through the circuit breaker", "name", "result")
	CircuitBreakerConsecutiveFailures = gaugeVec("circuit_breaker_consecutive_failures",
		"Current run of consecutive failures", "name")
	CircuitBreakerTransitions = counterVec("circuit_breaker_state_transitions_total",
		"Circuit breaker state transitions", "name", "from_state", "to_state")
)

// Process.
var (
	AppInfo = gaugeVec("app_info",
		"Build information, always 1", "version", "go_version")
	AppUptime = gauge("app_uptime_seconds",
		"Seconds since the process started")
)

// RecordPipelineRun records the outcome and total duration of one run
func RecordPipelineRun(result string, duration time.Duration) {
	PipelineRuns.WithLabelValues(result).Inc()
	PipelineDuration.WithLabelValues("total").Observe(duration.Seconds())
}

// RecordStage records the duration of one pipeline stage
func RecordStage(stage string, duration time.Duration) {
	PipelineDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordDataset records the size of the dataset seen by the latest run
func RecordDataset(records, airlines, usableAirports, unusableAirports int) {
	PipelineRecordsLoaded.Set(float64(records))
	PipelineAirlines.Set(float64(airlines))
	PipelineAirports.WithLabelValues("usable").Set(float64(usableAirports))
	PipelineAirports.WithLabelValues("unusable").Set(float64(unusableAirports))
}

// RecordCoercionWarnings adds per-field coercion warning counts
func RecordCoercionWarnings(byField map[string]int) {
	for field, n := range byField {
		if n > 0 {
			CoercionWarnings.WithLabelValues(field).Add(float64(n))
		}
	}
}

// RecordLoaderRequest records a dataset fetch against a source kind
func RecordLoaderRequest(source string, bytes int64, err error) {
	if err != nil {
		LoaderRequests.WithLabelValues(source, "failure").Inc()
		return
	}
	LoaderRequests.WithLabelValues(source, "success").Inc()
	if bytes > 0 {
		LoaderBytes.WithLabelValues(source).Add(float64(bytes))
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest moves the in-flight gauge up on start and down on finish.
func TrackActiveRequest(start bool) {
	if start {
		APIActiveRequests.Inc()
		return
	}
	APIActiveRequests.Dec()
}

// RecordRateLimitHit records a request rejected by the rate limiter
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordDatasetProbe records the outcome of a background dataset probe
func RecordDatasetProbe(dataset string, reachable bool) {
	g := DatasetReachable.WithLabelValues(dataset)
	if reachable {
		g.Set(1)
		return
	}
	g.Set(0)
}

// SetAppInfo publishes the build version
func SetAppInfo(version, goVersion string) {
	AppInfo.WithLabelValues(version, goVersion).Set(1)
}

// SetUptime publishes the process uptime
func SetUptime(uptime time.Duration) {
	AppUptime.Set(uptime.Seconds())
}
