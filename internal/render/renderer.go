// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package render

import (
	"errors"

	"github.com/tomtom215/flightmap/internal/models"
	"github.com/tomtom215/flightmap/internal/projection"
)

// Surface names used by the pipeline.
const (
	SurfaceChart = "chart"
	SurfaceMap   = "map"
)

var (
	// ErrForeignSurface is returned when a surface is drawn on by a
	// renderer that did not create it.
	ErrForeignSurface = errors.New("surface belongs to another renderer")

	// ErrInvalidSurface is returned for surfaces with no area.
	ErrInvalidSurface = errors.New("surface has no area")
)

// Surface is a drawing target created by a Renderer.
type Surface interface {
	Spec() models.SurfaceSpec
}

// Renderer draws positioned primitives. Bars and axes are in chart body
// coordinates (offset by the surface origin); points, lines and polygons
// are in surface coordinates.
type Renderer interface {
	CreateSurface(spec models.SurfaceSpec) (Surface, error)
	DrawBars(s Surface, bars []models.Bar) error
	DrawPoints(s Surface, points []models.Point) error
	DrawLines(s Surface, lines []models.Line) error
	DrawAxis(s Surface, axis models.Axis) error
	DrawPolygons(s Surface, features []models.Feature, project projection.Func) error
}

func checkSpec(spec models.SurfaceSpec) error {
	if spec.Width <= 0 || spec.Height <= 0 {
		return models.NewConfigurationError("render", "create surface", ErrInvalidSurface)
	}
	return nil
}
