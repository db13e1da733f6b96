// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/flightmap/internal/loader"
	"github.com/tomtom215/flightmap/internal/logging"
	"github.com/tomtom215/flightmap/internal/metrics"
)

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(h.startTime)
	metrics.SetUptime(uptime)
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": uptime.Seconds(),
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style).
// The service is ready once the routes dataset is reachable; the
// boundaries dataset is optional and only reported.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.runContext(r.Context())
	defer cancel()

	checks := map[string]string{"routes": "ok"}
	ready := true

	if h.probe == nil {
		checks["routes"] = "no loader"
		ready = false
	} else if err := h.probe.Stat(ctx, loader.DatasetRoutes, h.base.RoutesPath); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Routes dataset not reachable")
		checks["routes"] = err.Error()
		ready = false
	}

	if h.base.BoundariesPath != "" && h.probe != nil {
		checks["boundaries"] = "ok"
		if err := h.probe.Stat(ctx, loader.DatasetBoundaries, h.base.BoundariesPath); err != nil {
			checks["boundaries"] = err.Error()
		}
	}

	if !ready {
		NewResponseWriter(w, r).ErrorWithDetails(http.StatusServiceUnavailable,
			ErrCodeServiceUnavailable, "Routes dataset is not reachable", checks)
		return
	}

	NewResponseWriter(w, r).Success(map[string]interface{}{
		"ready":  true,
		"checks": checks,
	})
}
