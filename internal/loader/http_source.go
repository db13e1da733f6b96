// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/flightmap/internal/logging"
	"github.com/tomtom215/flightmap/internal/metrics"
)

// maxRemoteBytes bounds how much a remote dataset may contain.
const maxRemoteBytes = 512 << 20

// ErrHTTPStatus is returned for non-2xx responses.
var ErrHTTPStatus = errors.New("unexpected HTTP status")

// HTTPSource fetches datasets over HTTP(S). Requests pass through a
// circuit breaker so that a dead dataset host fails runs immediately
// instead of holding every request for the full timeout. The breaker
// never retries; a rejected request is an ordinary load failure.
type HTTPSource struct {
	client *http.Client
	cb     *gobreaker.CircuitBreaker[[]byte]
	name   string
}

// NewHTTPSource creates an HTTP source with the given per-request timeout.
// Circuit breaker configuration:
//   - 1 probe request in half-open state
//   - 1 minute measurement window
//   - 30 second open period before probing again
//   - opens after 5 consecutive failures
func NewHTTPSource(timeout time.Duration) *HTTPSource {
	return newHTTPSource(&http.Client{Timeout: timeout}, "dataset-http")
}

func newHTTPSource(client *http.Client, cbName string) *HTTPSource {
	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbName).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			trip := counts.ConsecutiveFailures >= 5
			if trip {
				logging.Warn().Str("breaker", cbName).Uint32("consecutive_failures", counts.ConsecutiveFailures).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return trip
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).
				Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &HTTPSource{client: client, cb: cb, name: cbName}
}

// Kind implements Source.
func (h *HTTPSource) Kind() string { return KindHTTP }

// Open implements Source. The whole body is read inside the breaker so a
// connection dropped mid-transfer counts as a failure.
func (h *HTTPSource) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	body, err := h.execute(func() ([]byte, error) {
		resp, err := h.do(ctx, http.MethodGet, location)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteBytes+1))
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
		if len(data) > maxRemoteBytes {
			return nil, fmt.Errorf("dataset exceeds %d bytes", maxRemoteBytes)
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}

// Stat implements Source with a HEAD request.
func (h *HTTPSource) Stat(ctx context.Context, location string) error {
	_, err := h.execute(func() ([]byte, error) {
		resp, err := h.do(ctx, http.MethodHead, location)
		if err != nil {
			return nil, err
		}
		resp.Body.Close()
		return nil, nil
	})
	return err
}

// State returns the breaker state name.
func (h *HTTPSource) State() string {
	return stateToString(h.cb.State())
}

func (h *HTTPSource) do(ctx context.Context, method, location string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, location, http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "flightmap-loader")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrHTTPStatus, resp.Status)
	}
	return resp, nil
}

// execute runs fn through the breaker and updates breaker metrics.
func (h *HTTPSource) execute(fn func() ([]byte, error)) ([]byte, error) {
	result, err := h.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(h.name, "rejected").Inc()
			logging.Warn().Err(err).Str("breaker", h.name).Msg("[CIRCUIT BREAKER] Request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(h.name, "failure").Inc()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(h.name).
				Set(float64(h.cb.Counts().ConsecutiveFailures))
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(h.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(h.name).Set(0)
	return result, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
