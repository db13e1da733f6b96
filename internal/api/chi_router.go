// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/flightmap/internal/middleware"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router for handler with the given middleware config.
func NewRouter(handler *Handler, config *ChiMiddlewareConfig) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(config),
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)         // X-Request-ID and logging context
	r.Use(chimiddleware.RealIP)         // Extract real IP from X-Forwarded-For
	r.Use(chimiddleware.Recoverer)      // Recover from panics
	r.Use(router.chiMiddleware.CORS())  // CORS must be global to handle OPTIONS preflight
	r.Use(middleware.PrometheusMetrics) // labelled by route pattern

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, r, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).MethodNotAllowed()
	})

	// ========================
	// Health Endpoints
	// ========================
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// ========================
	// Data Endpoints
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())

		r.Group(func(r chi.Router) {
			r.Use(middleware.Compression)
			r.Get("/airlines", router.handler.Airlines)
			r.Get("/airports", router.handler.Airports)
			r.Get("/routes", router.handler.Routes)
			r.Get("/scene", router.handler.Scene)
		})

		r.With(router.chiMiddleware.RateLimitRender()).Get("/render.pdf", router.handler.RenderPDF)
	})

	// ========================
	// Metrics
	// ========================
	r.Handle("/metrics", promhttp.Handler())

	return r
}
