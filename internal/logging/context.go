// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type (
	runIDKey     struct{}
	requestIDKey struct{}
	loggerKey    struct{}
)

// GenerateRunID returns an 8 character ID, short enough to grep for in
// both logs and API meta.
func GenerateRunID() string {
	return uuid.NewString()[:8]
}

// GenerateRequestID returns a full UUID.
func GenerateRequestID() string {
	return uuid.NewString()
}

func ContextWithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

func ContextWithNewRunID(ctx context.Context) context.Context {
	return ContextWithRunID(ctx, GenerateRunID())
}

func RunIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// ContextWithLogger makes Ctx use logger instead of the global one.
//
//nolint:gocritic // zerolog.Logger is passed by value
func ContextWithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// withIDs adds run_id and request_id from ctx when they are set.
func withIDs(ctx context.Context, lc zerolog.Context) zerolog.Context {
	if id := RunIDFromContext(ctx); id != "" {
		lc = lc.Str("run_id", id)
	}
	if id := RequestIDFromContext(ctx); id != "" {
		lc = lc.Str("request_id", id)
	}
	return lc
}

// CtxWith starts a child logger of the context's logger (or the global one)
// carrying the context IDs, for callers that add their own fields.
func CtxWith(ctx context.Context) zerolog.Context {
	base, ok := ctx.Value(loggerKey{}).(zerolog.Logger)
	if !ok {
		base = Logger()
	}
	return withIDs(ctx, base.With())
}

// Ctx is CtxWith(ctx).Logger():
//
//	logging.Ctx(ctx).Info().Int("records", n).Msg("Routes loaded")
func Ctx(ctx context.Context) *zerolog.Logger {
	l := CtxWith(ctx).Logger()
	return &l
}

// WithComponent returns a child of the global logger tagged with
// component, e.g. "pipeline".
func WithComponent(component string) zerolog.Logger {
	return With().Str("component", component).Logger()
}
