// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package models

import (
	"math"
	"strconv"
	"strings"
)

// Route table column names, in file order.
const (
	ColAirlineID       = "AirlineID"
	ColAirlineName     = "AirlineName"
	ColSourceAirportID = "SourceAirportID"
	ColSourceAirport   = "SourceAirport"
	ColSourceLatitude  = "SourceLatitude"
	ColSourceLongitude = "SourceLongitude"
	ColSourceCity      = "SourceCity"
	ColSourceCountry   = "SourceCountry"
	ColDestAirportID   = "DestAirportID"
	ColDestAirport     = "DestAirport"
	ColDestLatitude    = "DestLatitude"
	ColDestLongitude   = "DestLongitude"
	ColDestCity        = "DestCity"
	ColDestCountry     = "DestCountry"
)

// RouteColumns lists every column a route table must carry.
var RouteColumns = []string{
	ColAirlineID, ColAirlineName,
	ColSourceAirportID, ColSourceAirport, ColSourceLatitude, ColSourceLongitude, ColSourceCity, ColSourceCountry,
	ColDestAirportID, ColDestAirport, ColDestLatitude, ColDestLongitude, ColDestCity, ColDestCountry,
}

// CoordinateFields lists the columns that are coerced to numbers.
var CoordinateFields = []string{ColSourceLatitude, ColSourceLongitude, ColDestLatitude, ColDestLongitude}

// Coordinate is a latitude or longitude value coerced from text.
// An unusable coordinate has Valid == false and Value == NaN; it still
// travels with its record so the airport keeps counting, but it is never
// positioned on a map.
type Coordinate struct {
	Value float64
	Valid bool
}

// NewCoordinate returns a usable coordinate for v, or the unusable
// sentinel when v is NaN or infinite.
func NewCoordinate(v float64) Coordinate {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Unusable()
	}
	return Coordinate{Value: v, Valid: true}
}

// Unusable returns the sentinel for a coordinate that could not be coerced.
func Unusable() Coordinate {
	return Coordinate{Value: math.NaN()}
}

// ParseCoordinate coerces a text field to a Coordinate. It never fails:
// empty, malformed, NaN and infinite inputs all yield the unusable sentinel.
func ParseCoordinate(s string) Coordinate {
	s = strings.TrimSpace(s)
	if s == "" {
		return Unusable()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Unusable()
	}
	return NewCoordinate(v)
}

// Float returns the numeric value, NaN when unusable.
func (c Coordinate) Float() float64 {
	if !c.Valid {
		return math.NaN()
	}
	return c.Value
}

// MarshalJSON encodes unusable coordinates as null.
func (c Coordinate) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, c.Value, 'f', -1, 64), nil
}

// UnmarshalJSON accepts a number, a numeric string or null.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		*c = Unusable()
		return nil
	}
	*c = ParseCoordinate(s)
	return nil
}

// RouteRecord is one directed route between two airports, operated by one airline.
type RouteRecord struct {
	AirlineID   string `json:"airline_id"`
	AirlineName string `json:"airline_name"`

	SourceAirportID string     `json:"source_airport_id"`
	SourceAirport   string     `json:"source_airport"`
	SourceLatitude  Coordinate `json:"source_latitude"`
	SourceLongitude Coordinate `json:"source_longitude"`
	SourceCity      string     `json:"source_city"`
	SourceCountry   string     `json:"source_country"`

	DestAirportID string     `json:"dest_airport_id"`
	DestAirport   string     `json:"dest_airport"`
	DestLatitude  Coordinate `json:"dest_latitude"`
	DestLongitude Coordinate `json:"dest_longitude"`
	DestCity      string     `json:"dest_city"`
	DestCountry   string     `json:"dest_country"`
}

// HasSourcePosition reports whether the source airport can be positioned.
func (r *RouteRecord) HasSourcePosition() bool {
	return r.SourceLatitude.Valid && r.SourceLongitude.Valid
}

// HasDestPosition reports whether the destination airport can be positioned.
func (r *RouteRecord) HasDestPosition() bool {
	return r.DestLatitude.Valid && r.DestLongitude.Valid
}

// IsSelfLoop reports whether the route starts and ends at the same airport.
func (r *RouteRecord) IsSelfLoop() bool {
	return r.SourceAirportID == r.DestAirportID
}

// RouteFromFields builds a RouteRecord from a column-name keyed row,
// coercing the coordinate columns. Missing columns read as empty strings.
func RouteFromFields(get func(column string) string) RouteRecord {
	return RouteRecord{
		AirlineID:       get(ColAirlineID),
		AirlineName:     get(ColAirlineName),
		SourceAirportID: get(ColSourceAirportID),
		SourceAirport:   get(ColSourceAirport),
		SourceLatitude:  ParseCoordinate(get(ColSourceLatitude)),
		SourceLongitude: ParseCoordinate(get(ColSourceLongitude)),
		SourceCity:      get(ColSourceCity),
		SourceCountry:   get(ColSourceCountry),
		DestAirportID:   get(ColDestAirportID),
		DestAirport:     get(ColDestAirport),
		DestLatitude:    ParseCoordinate(get(ColDestLatitude)),
		DestLongitude:   ParseCoordinate(get(ColDestLongitude)),
		DestCity:        get(ColDestCity),
		DestCountry:     get(ColDestCountry),
	}
}
