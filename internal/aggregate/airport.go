// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package aggregate

import (
	"github.com/tomtom215/flightmap/internal/models"
)

// GroupByAirport counts route endpoints per airport. Each record updates
// its destination airport first, then its source airport; name and
// position come from whichever role first introduced the airport.
func GroupByAirport(records []models.RouteRecord) []models.AirportSummary {
	index := make(map[string]int, 256)
	summaries := make([]models.AirportSummary, 0, 256)

	visit := func(s models.AirportSummary) {
		pos, ok := index[s.AirportID]
		if !ok {
			pos = len(summaries)
			index[s.AirportID] = pos
			summaries = append(summaries, s)
		}
		summaries[pos].Count++
	}

	for i := range records {
		r := &records[i]
		visit(models.AirportSummary{
			AirportID: r.DestAirportID,
			Airport:   r.DestAirport,
			Latitude:  r.DestLatitude,
			Longitude: r.DestLongitude,
			City:      r.DestCity,
			Country:   r.DestCountry,
		})
		visit(models.AirportSummary{
			AirportID: r.SourceAirportID,
			Airport:   r.SourceAirport,
			Latitude:  r.SourceLatitude,
			Longitude: r.SourceLongitude,
			City:      r.SourceCity,
			Country:   r.SourceCountry,
		})
	}
	return summaries
}

// RoutesForAirline returns the records operated by airlineID, in input order.
func RoutesForAirline(records []models.RouteRecord, airlineID string) []models.RouteRecord {
	var out []models.RouteRecord
	for i := range records {
		if records[i].AirlineID == airlineID {
			out = append(out, records[i])
		}
	}
	return out
}

// Positioned splits airports into those that can be drawn and the number
// that cannot.
func Positioned(airports []models.AirportSummary) (usable []models.AirportSummary, unusable int) {
	usable = make([]models.AirportSummary, 0, len(airports))
	for i := range airports {
		if airports[i].HasPosition() {
			usable = append(usable, airports[i])
		} else {
			unusable++
		}
	}
	return usable, unusable
}
