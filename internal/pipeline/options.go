// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package pipeline

import (
	"github.com/tomtom215/flightmap/internal/aggregate"
	"github.com/tomtom215/flightmap/internal/projection"
	"github.com/tomtom215/flightmap/internal/scale"
)

// ChartOptions configures the airline bar chart.
type ChartOptions struct {
	Layout       scale.ChartLayout
	BandPadding  float64
	OuterPadding float64
	TickCount    int
	// MaxAirlines limits the chart to the first N ranked airlines; 0 keeps all.
	MaxAirlines int
}

// MapOptions configures the airport map.
type MapOptions struct {
	Width       float64
	Height      float64
	Projection  projection.Mercator
	PointRadius float64
}

// Options configures one run.
type Options struct {
	RoutesPath     string
	BoundariesPath string
	Order          aggregate.SortOrder
	// Airline selects the airline whose routes are drawn as lines; empty
	// draws no lines.
	Airline string
	Chart   ChartOptions
	Map     MapOptions
}

// DefaultOptions returns the default chart and map configuration.
func DefaultOptions() Options {
	return Options{
		RoutesPath: "routes.csv",
		Order:      aggregate.Descending,
		Chart: ChartOptions{
			Layout: scale.ChartLayout{
				Width:  800,
				Height: 600,
				Margin: scale.Margin{Top: 20, Right: 20, Bottom: 40, Left: 160},
			},
			BandPadding: 0.1,
			TickCount:   10,
		},
		Map: MapOptions{
			Width:       960,
			Height:      600,
			Projection:  projection.Mercator{Scale: 150, TranslateX: 480, TranslateY: 300},
			PointRadius: 1,
		},
	}
}
