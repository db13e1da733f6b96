// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/flightmap/internal/api"
	"github.com/tomtom215/flightmap/internal/config"
	"github.com/tomtom215/flightmap/internal/loader"
	"github.com/tomtom215/flightmap/internal/logging"
	"github.com/tomtom215/flightmap/internal/metrics"
	"github.com/tomtom215/flightmap/internal/pipeline"
	"github.com/tomtom215/flightmap/internal/supervisor"
	"github.com/tomtom215/flightmap/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(cfg.LoggingSettings())
	metrics.SetAppInfo(version, runtime.Version())

	logging.Info().
		Str("version", version).
		Str("routes", cfg.Data.RoutesPath).
		Str("boundaries", cfg.Data.BoundariesPath).
		Str("engine", cfg.Data.TableEngine).
		Msg("Starting flightmap")

	ld, err := loader.New(cfg.LoaderConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize loader")
	}
	defer func() {
		if err := ld.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing loader")
		}
	}()

	base, err := cfg.PipelineOptions()
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid pipeline options")
	}

	handler := api.NewHandler(pipeline.NewCoordinator(ld), ld, base, cfg.Server.Timeout)
	router := api.NewRouter(handler, api.NewChiMiddlewareConfig(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		// PDF rendering runs inside the request, so writes get headroom.
		WriteTimeout: cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if cfg.Data.ProbeInterval > 0 {
		tree.AddDataService(services.NewDatasetProbeService(ld, cfg.Data.ProbeInterval, cfg.Data.RemoteTimeout,
			services.DatasetTarget{Name: loader.DatasetRoutes, Location: cfg.Data.RoutesPath},
			services.DatasetTarget{Name: loader.DatasetBoundaries, Location: cfg.Data.BoundariesPath},
		))
		logging.Info().Dur("interval", cfg.Data.ProbeInterval).Msg("Dataset probe service added")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// errCh delivers exactly one value and is never closed.
	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish...")
		serveErr = <-errCh
	case serveErr = <-errCh:
	}
	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		logging.Error().Err(serveErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Flightmap stopped")
}
