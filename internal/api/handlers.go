// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package api

import (
	"context"
	"strings"
	"time"

	"github.com/tomtom215/flightmap/internal/aggregate"
	"github.com/tomtom215/flightmap/internal/pipeline"
	"github.com/tomtom215/flightmap/internal/render"
)

// SceneRunner runs the pipeline. *pipeline.Coordinator implements it.
type SceneRunner interface {
	Compute(ctx context.Context, opts pipeline.Options) (*pipeline.Scene, error)
	Run(ctx context.Context, opts pipeline.Options, r render.Renderer) (*pipeline.Scene, error)
}

// DatasetProbe checks that a dataset location is reachable without
// loading it. *loader.Loader implements it.
type DatasetProbe interface {
	Stat(ctx context.Context, dataset, location string) error
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor, option overrides (this file)
//   - handlers_health.go: liveness and readiness probes
//   - handlers_flights.go: airlines, airports, routes, scene and PDF
type Handler struct {
	runner    SceneRunner
	probe     DatasetProbe
	base      pipeline.Options
	timeout   time.Duration
	pdfTitle  string
	startTime time.Time
}

// NewHandler creates a handler that runs the pipeline with base options
// for every request. timeout bounds each run; zero means no bound beyond
// the request context.
//
// Example:
//
//	coord := pipeline.NewCoordinator(ld)
//	handler := api.NewHandler(coord, ld, opts, 30*time.Second)
//	router := api.NewRouter(handler, api.DefaultChiMiddlewareConfig())
//	http.ListenAndServe(":3857", router.SetupChi())
func NewHandler(runner SceneRunner, probe DatasetProbe, base pipeline.Options, timeout time.Duration) *Handler {
	return &Handler{
		runner:    runner,
		probe:     probe,
		base:      base,
		timeout:   timeout,
		pdfTitle:  "Flightmap",
		startTime: time.Now(),
	}
}

// runContext applies the run timeout to the request context.
func (h *Handler) runContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.timeout)
}

// options returns a copy of the base options with per-request overrides.
// order has already passed validation, so it parses.
func (h *Handler) options(order, airline string) pipeline.Options {
	opts := h.base
	if strings.TrimSpace(order) != "" {
		if o, err := aggregate.ParseSortOrder(order); err == nil {
			opts.Order = o
		}
	}
	if airline = strings.TrimSpace(airline); airline != "" {
		opts.Airline = airline
	}
	return opts
}
