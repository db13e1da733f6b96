// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package supervisor

import (
	"context"
	"log/slog"
	"time"

	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"
)

// TreeConfig is the restart policy shared by every supervisor in the tree.
// Zero fields take the DefaultTreeConfig value.
type TreeConfig struct {
	// FailureThreshold failures within the decay window trigger backoff.
	FailureThreshold float64
	// FailureDecay is the failure half-life in seconds.
	FailureDecay float64
	// FailureBackoff is how long a supervisor pauses restarts.
	FailureBackoff time.Duration
	// ShutdownTimeout bounds how long each service gets to return from Serve.
	ShutdownTimeout time.Duration
}

// DefaultTreeConfig mirrors suture's own defaults.
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		FailureThreshold: 5,
		FailureDecay:     30,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
}

func (c TreeConfig) withDefaults() TreeConfig {
	d := DefaultTreeConfig()
	if c.FailureThreshold == 0 {
		c.FailureThreshold = d.FailureThreshold
	}
	if c.FailureDecay == 0 {
		c.FailureDecay = d.FailureDecay
	}
	if c.FailureBackoff == 0 {
		c.FailureBackoff = d.FailureBackoff
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	return c
}

func (c TreeConfig) spec(hook suture.EventHook) suture.Spec {
	return suture.Spec{
		EventHook:        hook,
		FailureThreshold: c.FailureThreshold,
		FailureDecay:     c.FailureDecay,
		FailureBackoff:   c.FailureBackoff,
		Timeout:          c.ShutdownTimeout,
	}
}

// SupervisorTree is the flightmap supervisor hierarchy:
//
//	flightmap
//	├── data-layer  (background dataset probes)
//	└── api-layer   (HTTP server)
//
// A probe that keeps failing backs off without taking the API down.
type SupervisorTree struct {
	root   *suture.Supervisor
	data   *suture.Supervisor
	api    *suture.Supervisor
	logger *slog.Logger
	config TreeConfig
}

// NewSupervisorTree builds the tree without starting it. Supervisor events
// go to logger, or slog.Default() when nil.
func NewSupervisorTree(logger *slog.Logger, config TreeConfig) (*SupervisorTree, error) {
	if logger == nil {
		logger = slog.Default()
	}
	config = config.withDefaults()

	events := &sutureslog.Handler{Logger: logger}
	t := &SupervisorTree{
		// Children pick up the root's EventHook when added.
		root:   suture.New("flightmap", config.spec(events.MustHook())),
		data:   suture.New("data-layer", config.spec(nil)),
		api:    suture.New("api-layer", config.spec(nil)),
		logger: logger,
		config: config,
	}
	t.root.Add(t.data)
	t.root.Add(t.api)
	return t, nil
}

func (t *SupervisorTree) Root() *suture.Supervisor { return t.root }

// AddDataService supervises svc next to the dataset probes.
func (t *SupervisorTree) AddDataService(svc suture.Service) suture.ServiceToken {
	return t.data.Add(svc)
}

// AddAPIService supervises svc next to the HTTP server.
func (t *SupervisorTree) AddAPIService(svc suture.Service) suture.ServiceToken {
	return t.api.Add(svc)
}

// Serve blocks until ctx is done and every service has stopped.
func (t *SupervisorTree) Serve(ctx context.Context) error { return t.root.Serve(ctx) }

// ServeBackground delivers exactly one value on the returned channel, which
// is never closed.
func (t *SupervisorTree) ServeBackground(ctx context.Context) <-chan error {
	return t.root.ServeBackground(ctx)
}

// UnstoppedServiceReport lists services still running after ShutdownTimeout.
func (t *SupervisorTree) UnstoppedServiceReport() ([]suture.UnstoppedService, error) {
	return t.root.UnstoppedServiceReport()
}
