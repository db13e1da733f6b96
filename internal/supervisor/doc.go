// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

/*
Package supervisor runs the long-lived flightmap services under suture v4.

	RootSupervisor ("flightmap")
	├── DataSupervisor ("data-layer")
	│   └── DatasetProbeService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's backoff. The layers count
failures independently, so a probe stuck against an unreachable bucket
does not restart the HTTP server.

Supervisor events (start, stop, panic, backoff) are logged through
sutureslog into the slog logger passed to NewSupervisorTree; cmd/server
passes logging.NewSlogLogger() so they end up in zerolog.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewDatasetProbeService(ld, time.Minute, 10*time.Second, targets...))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)
*/
package supervisor
