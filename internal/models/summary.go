// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package models

// AirlineSummary is the number of routes flown by one airline.
// AirlineName is the first name seen for the AirlineID.
type AirlineSummary struct {
	AirlineID   string `json:"airline_id"`
	AirlineName string `json:"airline_name"`
	Count       int    `json:"count"`
}

// AirportSummary is the number of route endpoints at one airport, counting
// source and destination roles alike. Name and position come from the
// first record that mentioned the airport.
type AirportSummary struct {
	AirportID string     `json:"airport_id"`
	Airport   string     `json:"airport"`
	Latitude  Coordinate `json:"latitude"`
	Longitude Coordinate `json:"longitude"`
	City      string     `json:"city"`
	Country   string     `json:"country"`
	Count     int        `json:"count"`
}

// HasPosition reports whether the airport can be placed on a map.
func (a *AirportSummary) HasPosition() bool {
	return a.Latitude.Valid && a.Longitude.Valid
}

// RouteStats describes a single route of a highlighted airline.
// Uses great-circle distance between the two endpoints when both are usable.
type RouteStats struct {
	AirlineID       string  `json:"airline_id"`
	SourceAirportID string  `json:"source_airport_id"`
	DestAirportID   string  `json:"dest_airport_id"`
	DistanceKm      float64 `json:"distance_km"` // 0 when either endpoint is unusable
	Positioned      bool    `json:"positioned"`
}

// ViewportBounds is a geographic bounding box for viewport queries.
// West > East selects a box that crosses the antimeridian.
type ViewportBounds struct {
	West  float64 `json:"west" validate:"gte=-180,lte=180"`
	South float64 `json:"south" validate:"gte=-90,lte=90"`
	East  float64 `json:"east" validate:"gte=-180,lte=180"`
	North float64 `json:"north" validate:"gte=-90,lte=90,gtefield=South"`
}
