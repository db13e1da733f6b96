// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

// Package spatial indexes positioned airports in an R-tree for viewport
// queries. Airports without a usable position are never indexed.
package spatial
