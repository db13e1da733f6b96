// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

/*
Package render draws positioned primitives onto surfaces.

A Renderer receives only fully computed positions: bars, points, lines and
axes arrive in surface units, and boundary polygons arrive with the
projection function that maps their coordinates. Two renderers ship with
the module:

  - SceneRecorder keeps every draw call in memory and serializes it as
    JSON. The HTTP API and the one-shot renderer use it for scene export.
  - PDF draws each surface as one page with gofpdf.

Boundary geometry is decoded by DecodeRings. Polygon and MultiPolygon are
supported; other geometry types are skipped.
*/
package render
