// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

/*
Package services adapts flightmap components to suture.Service.

HTTPServerService turns the blocking ListenAndServe/Shutdown pair into a
context-aware Serve. A listen error is returned so the supervisor
restarts the server; context cancellation triggers a bounded graceful
shutdown.

DatasetProbeService stats the configured routes, airports and
boundaries locations on an interval and publishes
dataset_reachable{dataset}. It never returns an error for a
failed probe, so it is restarted only if it panics.

Return values drive the supervisor:

	nil        stopped cleanly, not restarted
	error      crashed, restarted with backoff
	ctx.Err()  shutdown requested

Every service implements fmt.Stringer; suture uses the name in its
events.
*/
package services
