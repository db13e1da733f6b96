// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

/*
Package main is the entry point for the flightmap HTTP server.

Flightmap turns an airline route table into an airline bar chart and an
airport map. The server recomputes the scene on every request from the
configured datasets, so replacing the route file or bucket object takes
effect without a restart.

# Application Architecture

	RootSupervisor ("flightmap")
	├── DataSupervisor ("data-layer")
	│   └── DatasetProbeService (PROBE_INTERVAL > 0)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Initialization order:

 1. Configuration: Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog with JSON or console output
 3. Loader: file, http(s) (circuit breaker) and gs:// sources
 4. Pipeline coordinator and chi router
 5. Supervisor tree: suture v4, logged through sutureslog

# Configuration

The most used environment variables:

	ROUTES_PATH=routes.csv           route table (file, http(s)://, gs://)
	BOUNDARIES_PATH=world.geojson    optional country outlines
	TABLE_ENGINE=csv|duckdb
	ROUTES_AIRLINE=24                airline drawn as route lines
	HTTP_PORT=3857
	LOG_LEVEL=info LOG_FORMAT=json

# Signal Handling

SIGINT and SIGTERM cancel the supervisor context. The HTTP server drains
in-flight requests for up to 10s and services that fail to stop in time
are reported before exit.

# Port 3857

The default port references EPSG:3857, the Web Mercator projection the
airport map uses.
*/
package main
