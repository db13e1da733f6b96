// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package logging

import (
	"context"
	"net/url"
	"sort"
	"time"

	"github.com/rs/zerolog"
)

// RunLogger logs the milestones of a pipeline run with a consistent set of
// fields. Every method takes the run's context so run_id and request_id
// are attached.
type RunLogger struct {
	logger zerolog.Logger
}

// NewRunLogger creates a RunLogger on the global logger.
func NewRunLogger() *RunLogger {
	return &RunLogger{logger: WithComponent("pipeline")}
}

// NewRunLoggerWithLogger creates a RunLogger on a custom logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewRunLoggerWithLogger(logger zerolog.Logger) *RunLogger {
	return &RunLogger{logger: logger.With().Str("component", "pipeline").Logger()}
}

func (r *RunLogger) with(ctx context.Context) zerolog.Logger {
	return withIDs(ctx, r.logger.With()).Logger()
}

// LogRunStarted logs the start of a run.
func (r *RunLogger) LogRunStarted(ctx context.Context, routes, boundaries string) {
	l := r.with(ctx)
	l.Info().
		Str("routes", SanitizeLocation(routes)).
		Str("boundaries", SanitizeLocation(boundaries)).
		Msg("pipeline run started")
}

// LogDatasetLoaded logs a completed load.
func (r *RunLogger) LogDatasetLoaded(ctx context.Context, kind, location string, items int, elapsed time.Duration) {
	l := r.with(ctx)
	l.Info().
		Str("dataset", kind).
		Str("location", SanitizeLocation(location)).
		Int("items", items).
		Dur("elapsed", elapsed).
		Msg("dataset loaded")
}

// LogCoercionWarnings logs one warning per coordinate field that had
// values which could not be coerced. Fields are logged in name order.
func (r *RunLogger) LogCoercionWarnings(ctx context.Context, byField map[string]int, sampleRows []int) {
	if len(byField) == 0 {
		return
	}
	fields := make([]string, 0, len(byField))
	for f := range byField {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	l := r.with(ctx)
	for _, f := range fields {
		if byField[f] == 0 {
			continue
		}
		l.Warn().
			Str("field", f).
			Int("count", byField[f]).
			Ints("sample_rows", sampleRows).
			Msg("coordinate values could not be coerced; affected airports will not be drawn")
	}
}

// LogRunFinished logs a successful run with its summary sizes.
func (r *RunLogger) LogRunFinished(ctx context.Context, airlines, airports, lines int, elapsed time.Duration) {
	l := r.with(ctx)
	l.Info().
		Int("airlines", airlines).
		Int("airports", airports).
		Int("lines", lines).
		Dur("elapsed", elapsed).
		Msg("pipeline run finished")
}

// LogRunFailed logs a terminal run failure.
func (r *RunLogger) LogRunFailed(ctx context.Context, stage string, err error) {
	l := r.with(ctx)
	l.Error().
		Str("stage", stage).
		Err(err).
		Msg("pipeline run failed")
}

// SanitizeLocation strips credentials and query strings from dataset URLs
// so signed links and basic-auth passwords never reach the logs. Plain
// file paths are returned unchanged.
func SanitizeLocation(location string) string {
	u, err := url.Parse(location)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return location
	}
	u.User = nil
	if u.RawQuery != "" {
		u.RawQuery = "REDACTED"
	}
	u.Fragment = ""
	return u.String()
}
