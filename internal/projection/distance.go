// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package projection

import (
	"math"

	"github.com/golang/geo/s2"

	"github.com/tomtom215/flightmap/internal/models"
)

// EarthRadiusKm is the mean Earth radius.
const EarthRadiusKm = 6371.0088

// GreatCircleKm returns the great-circle distance between two points given
// in degrees.
func GreatCircleKm(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// RouteDistanceKm returns the length of a route, and false when either
// endpoint is unusable.
func RouteDistanceKm(r *models.RouteRecord) (float64, bool) {
	if !r.HasSourcePosition() || !r.HasDestPosition() {
		return 0, false
	}
	d := GreatCircleKm(r.SourceLatitude.Value, r.SourceLongitude.Value, r.DestLatitude.Value, r.DestLongitude.Value)
	if math.IsNaN(d) {
		return 0, false
	}
	return d, true
}
