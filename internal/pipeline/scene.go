// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package pipeline

import (
	"github.com/tomtom215/flightmap/internal/loader"
	"github.com/tomtom215/flightmap/internal/models"
	"github.com/tomtom215/flightmap/internal/projection"
)

// ChartScene is the positioned airline bar chart.
type ChartScene struct {
	Surface models.SurfaceSpec `json:"surface"`
	Bars    []models.Bar       `json:"bars"`
	XAxis   models.Axis        `json:"x_axis"`
	YAxis   models.Axis        `json:"y_axis"`
}

// MapScene is the positioned airport map.
type MapScene struct {
	Surface    models.SurfaceSpec        `json:"surface"`
	Projection projection.Mercator       `json:"projection"`
	Points     []models.Point            `json:"points"`
	Lines      []models.Line             `json:"lines"`
	Boundaries *models.FeatureCollection `json:"-"`
	// Unprojected counts airports with usable coordinates that the
	// projection rejected.
	Unprojected int `json:"unprojected"`
}

// Scene is everything one run computed.
type Scene struct {
	RunID    string                  `json:"run_id"`
	Records  int                     `json:"records"`
	Coercion loader.CoercionReport   `json:"coercion"`
	Airlines []models.AirlineSummary `json:"airlines"`
	Airports []models.AirportSummary `json:"airports"`
	// Unpositioned counts airports without usable coordinates.
	Unpositioned int                 `json:"unpositioned"`
	Airline      string              `json:"airline,omitempty"`
	Routes       []models.RouteStats `json:"routes,omitempty"`
	Chart        ChartScene          `json:"chart"`
	Map          MapScene            `json:"map"`
}
