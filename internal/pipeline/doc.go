// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

/*
Package pipeline runs one end-to-end pass from datasets to drawn surfaces.

A run has four stages:

 1. load: the route table and the optional boundary collection load
    concurrently and join before anything else happens;
 2. aggregate: airline and airport summaries are computed from scratch;
 3. layout: scales and the projection turn summaries into positioned
    bars, points, lines and axes;
 4. draw: a render.Renderer receives the positioned primitives.

Compute performs stages 1-3 and returns a Scene without side effects on
any renderer. Run performs all four. Nothing is kept between runs; every
run carries its own run ID through the logs.
*/
package pipeline
