// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

/*
Package models defines the data structures shared by the Flightmap pipeline.

# Route data

RouteRecord is one row of the route table. Latitude and longitude columns
arrive as text and are coerced to Coordinate values; coercion is total, so
a malformed field produces the unusable sentinel instead of an error.

# Derived summaries

  - AirlineSummary: routes per airline (bar chart input)
  - AirportSummary: route endpoints per airport (map input)
  - RouteStats: one route of a highlighted airline with its length

# Positioned primitives

Bar, Point, Line and Axis carry final surface coordinates. Renderers draw
them as given and never look back at the source records.

# Boundaries

FeatureCollection holds GeoJSON features. Geometry coordinates stay as raw
JSON until a renderer decodes them.
*/
package models
