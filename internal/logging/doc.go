// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

// Package logging provides centralized zerolog-based structured logging for Flightmap.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Str("routes", path).Msg("Loading dataset")
//	logging.Error().Err(err).Msg("Request failed")
//
// # Context Fields
//
// Every pipeline run carries a short run ID, and every HTTP request a full
// request ID. Ctx(ctx) returns a logger with both attached:
//
//	ctx = logging.ContextWithNewRunID(ctx)
//	logging.Ctx(ctx).Info().Int("records", n).Msg("Routes loaded")
//	// {"level":"info","run_id":"1f3a9c20","records":67663,"message":"Routes loaded"}
//
// # Run Logger
//
// RunLogger emits the fixed set of pipeline milestones (run started,
// dataset loaded, coercion warnings, run finished or failed) with
// consistent field names. Dataset URLs pass through SanitizeLocation so
// signed query strings and credentials never reach the log.
//
// # slog Adapter
//
// SlogHandler forwards log/slog records to zerolog. The supervisor tree uses
// it through sutureslog:
//
//	handler := &sutureslog.Handler{Logger: logging.NewSlogLogger()}
//
// # Configuration
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller info (default: false)
package logging
