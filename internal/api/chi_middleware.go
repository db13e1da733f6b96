// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tomtom215/flightmap/internal/logging"
	"github.com/tomtom215/flightmap/internal/metrics"
)

// ChiMiddlewareConfig configures CORS and per-client rate limiting.
type ChiMiddlewareConfig struct {
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
	CORSExposedHeaders []string
	CORSMaxAge         int // seconds

	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool
	// RateLimitKeyFunc defaults to httprate.KeyByIP.
	RateLimitKeyFunc httprate.KeyFunc
}

// DefaultChiMiddlewareConfig allows no cross-origin callers and 100
// requests per minute per client. The API is read-only, so only safe
// methods are offered to browsers.
func DefaultChiMiddlewareConfig() *ChiMiddlewareConfig {
	return &ChiMiddlewareConfig{
		CORSAllowedOrigins: []string{},
		CORSAllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		CORSAllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		CORSExposedHeaders: []string{"X-Request-ID", "X-Run-ID"},
		CORSMaxAge:         int((24 * time.Hour).Seconds()),
		RateLimitRequests:  100,
		RateLimitWindow:    time.Minute,
	}
}

// NewChiMiddlewareConfig overlays the security settings on the defaults.
func NewChiMiddlewareConfig(corsOrigins []string, rateLimitReqs int, rateLimitWindow time.Duration, rateLimitDisabled bool) *ChiMiddlewareConfig {
	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = corsOrigins
	cfg.RateLimitRequests = rateLimitReqs
	cfg.RateLimitWindow = rateLimitWindow
	cfg.RateLimitDisabled = rateLimitDisabled
	return cfg
}

// RateLimitConfig is a request budget per client and window.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// Fixed budgets for endpoints that differ from the configured default.
var (
	RateLimitHealth = RateLimitConfig{Requests: 1000, Window: time.Minute}
	RateLimitRender = RateLimitConfig{Requests: 10, Window: time.Minute}
)

// ChiMiddleware builds the CORS and rate limit middleware for the router.
type ChiMiddleware struct {
	config *ChiMiddlewareConfig
	cors   func(http.Handler) http.Handler
}

// NewChiMiddleware uses DefaultChiMiddlewareConfig when config is nil.
func NewChiMiddleware(config *ChiMiddlewareConfig) *ChiMiddleware {
	if config == nil {
		config = DefaultChiMiddlewareConfig()
	}
	return &ChiMiddleware{
		config: config,
		cors: cors.Handler(cors.Options{
			AllowedOrigins: config.CORSAllowedOrigins,
			AllowedMethods: config.CORSAllowedMethods,
			AllowedHeaders: config.CORSAllowedHeaders,
			ExposedHeaders: config.CORSExposedHeaders,
			MaxAge:         config.CORSMaxAge,
		}),
	}
}

func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler { return m.cors }

// RateLimit applies the configured budget. Every data request runs the
// full pipeline, so this is the main guard against load.
func (m *ChiMiddleware) RateLimit() func(http.Handler) http.Handler {
	return m.limit(RateLimitConfig{Requests: m.config.RateLimitRequests, Window: m.config.RateLimitWindow})
}

func (m *ChiMiddleware) RateLimitHealth() func(http.Handler) http.Handler {
	return m.limit(RateLimitHealth)
}

// RateLimitRender guards PDF rendering, the most expensive endpoint.
func (m *ChiMiddleware) RateLimitRender() func(http.Handler) http.Handler {
	return m.limit(RateLimitRender)
}

func (m *ChiMiddleware) limit(budget RateLimitConfig) func(http.Handler) http.Handler {
	if m.config.RateLimitDisabled {
		return passthrough
	}
	key := m.config.RateLimitKeyFunc
	if key == nil {
		key = httprate.KeyByIP
	}
	return httprate.Limit(budget.Requests, budget.Window,
		httprate.WithKeyFuncs(key),
		httprate.WithLimitHandler(rateLimitExceeded),
	)
}

func passthrough(next http.Handler) http.Handler { return next }

func rateLimitExceeded(w http.ResponseWriter, r *http.Request) {
	endpoint := "unmatched"
	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
		endpoint = rctx.RoutePattern()
	}
	metrics.RecordRateLimitHit(endpoint)
	logging.Ctx(r.Context()).Debug().
		Str("endpoint", endpoint).
		Str("remote_addr", r.RemoteAddr).
		Msg("Rate limit exceeded")
	NewResponseWriter(w, r).TooManyRequests("Rate limit exceeded, retry later")
}

var securityHeaders = [][2]string{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"Referrer-Policy", "strict-origin-when-cross-origin"},
}

// APISecurityHeaders sets the fixed response hardening headers, plus HSTS
// when the request arrived over TLS directly or through a proxy.
func APISecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for _, kv := range securityHeaders {
				h.Set(kv[0], kv[1])
			}
			if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
				h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}
