// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

/*
Package scale maps data values to pixel offsets for the airline chart.

  - Linear maps a numeric domain onto a pixel interval, exactly.
  - Band divides a pixel interval into equal bands, one per category, with
    optional inner and outer padding expressed as fractions of a step.
  - ChartLayout derives the chart body size from the surface size and
    margins.

Scales are immutable once built. Requests outside the declared domain
return a *models.ConfigurationError.
*/
package scale
