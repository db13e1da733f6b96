// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package models

// ScreenPoint is a projected position in surface pixels.
type ScreenPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Bar is one positioned bar of the airline chart, in chart body coordinates.
type Bar struct {
	Key    string  `json:"key"`   // AirlineID
	Label  string  `json:"label"` // AirlineName
	Count  int     `json:"count"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Point is one positioned airport marker on the map surface.
type Point struct {
	Key   string  `json:"key"` // AirportID
	Label string  `json:"label"`
	Count int     `json:"count"`
	CX    float64 `json:"cx"`
	CY    float64 `json:"cy"`
	R     float64 `json:"r"`
}

// Line is one positioned route segment on the map surface.
type Line struct {
	Key        string  `json:"key"` // "SRC-DST"
	X1         float64 `json:"x1"`
	Y1         float64 `json:"y1"`
	X2         float64 `json:"x2"`
	Y2         float64 `json:"y2"`
	DistanceKm float64 `json:"distance_km"`
}

// AxisOrientation says on which side of the chart body an axis is drawn.
type AxisOrientation string

const (
	AxisBottom AxisOrientation = "bottom"
	AxisLeft   AxisOrientation = "left"
)

// Tick is one labelled position along an axis, measured from the axis origin.
type Tick struct {
	Label  string  `json:"label"`
	Offset float64 `json:"offset"`
}

// Axis is a fully positioned axis. Cross is the distance of the axis line
// from the body origin, perpendicular to the axis; a bottom axis sits at
// the body height.
type Axis struct {
	Orientation AxisOrientation `json:"orientation"`
	Length      float64         `json:"length"`
	Cross       float64         `json:"cross"`
	Ticks       []Tick          `json:"ticks"`
}

// SurfaceSpec describes a drawing surface. OriginX/OriginY offset body
// coordinates (bars, axes) from the surface's top-left corner.
type SurfaceSpec struct {
	Name    string  `json:"name"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	OriginX float64 `json:"origin_x"`
	OriginY float64 `json:"origin_y"`
}
