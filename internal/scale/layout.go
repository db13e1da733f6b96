// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package scale

import (
	"errors"
	"fmt"

	"github.com/tomtom215/flightmap/internal/models"
)

// ErrEmptyBody is returned when margins leave no room for the chart body.
var ErrEmptyBody = errors.New("chart body has no area")

// Margin holds the space around the chart body, in pixels.
type Margin struct {
	Top    float64 `koanf:"top" json:"top"`
	Right  float64 `koanf:"right" json:"right"`
	Bottom float64 `koanf:"bottom" json:"bottom"`
	Left   float64 `koanf:"left" json:"left"`
}

// ChartLayout is the chart surface size and its margins.
type ChartLayout struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin Margin  `json:"margin"`
}

// BodyWidth is the width left for bars after horizontal margins.
func (l ChartLayout) BodyWidth() float64 {
	return l.Width - l.Margin.Left - l.Margin.Right
}

// BodyHeight is the height left for bars after vertical margins.
func (l ChartLayout) BodyHeight() float64 {
	return l.Height - l.Margin.Top - l.Margin.Bottom
}

// Validate rejects layouts whose body is empty or negative.
func (l ChartLayout) Validate() error {
	if l.BodyWidth() <= 0 || l.BodyHeight() <= 0 {
		return models.NewConfigurationError("layout", "validate",
			fmt.Errorf("%w: body %gx%g", ErrEmptyBody, l.BodyWidth(), l.BodyHeight()))
	}
	return nil
}

// Surface describes the chart surface, with the body origin at the top-left margin.
func (l ChartLayout) Surface(name string) models.SurfaceSpec {
	return models.SurfaceSpec{
		Name:    name,
		Width:   l.Width,
		Height:  l.Height,
		OriginX: l.Margin.Left,
		OriginY: l.Margin.Top,
	}
}
