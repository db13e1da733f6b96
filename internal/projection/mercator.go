// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package projection

import (
	"errors"
	"fmt"
	"math"

	"github.com/tomtom215/flightmap/internal/models"
)

// ErrOutOfDomain is returned for positions the projection cannot map.
var ErrOutOfDomain = errors.New("coordinate outside projection domain")

// ErrZeroScale is returned when inverting a projection with Scale == 0.
var ErrZeroScale = errors.New("projection scale is zero")

const degToRad = math.Pi / 180

// Func projects a longitude/latitude pair in degrees. Renderers receive
// one to draw boundary polygons.
type Func func(lon, lat float64) (models.ScreenPoint, error)

// Mercator is a spherical Mercator projection with a pixel scale and offset.
type Mercator struct {
	Scale      float64 `json:"scale"`
	TranslateX float64 `json:"translate_x"`
	TranslateY float64 `json:"translate_y"`
}

// Unprojected is the sentinel returned alongside projection errors.
func Unprojected() models.ScreenPoint {
	return models.ScreenPoint{X: math.NaN(), Y: math.NaN()}
}

// Project maps lon/lat in degrees to surface pixels.
func (m Mercator) Project(lon, lat float64) (models.ScreenPoint, error) {
	if math.IsNaN(lon) || math.IsNaN(lat) || lon < -180 || lon > 180 || lat <= -90 || lat >= 90 {
		return Unprojected(), models.NewConfigurationError("mercator", "project",
			fmt.Errorf("%w: lon=%v lat=%v", ErrOutOfDomain, lon, lat))
	}
	return models.ScreenPoint{
		X: m.TranslateX + m.Scale*lon*degToRad,
		Y: m.TranslateY - m.Scale*math.Atanh(math.Sin(lat*degToRad)),
	}, nil
}

// ProjectCoordinates projects coerced coordinates. Unusable coordinates
// fail with ErrOutOfDomain.
func (m Mercator) ProjectCoordinates(lon, lat models.Coordinate) (models.ScreenPoint, error) {
	return m.Project(lon.Float(), lat.Float())
}

// Func returns Project as a Func value.
func (m Mercator) Func() Func {
	return m.Project
}

// Invert maps surface pixels back to lon/lat in degrees.
func (m Mercator) Invert(x, y float64) (lon, lat float64, err error) {
	if m.Scale == 0 {
		return math.NaN(), math.NaN(), models.NewConfigurationError("mercator", "invert", ErrZeroScale)
	}
	lon = (x - m.TranslateX) / m.Scale / degToRad
	lat = math.Atan(math.Sinh((m.TranslateY-y)/m.Scale)) / degToRad
	return lon, lat, nil
}
