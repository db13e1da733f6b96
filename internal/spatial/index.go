// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package spatial

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/tomtom215/flightmap/internal/models"
)

// ErrInvalidBounds is returned for viewports outside valid lon/lat ranges.
var ErrInvalidBounds = errors.New("invalid viewport bounds")

// pointTolerance gives indexed points a non-zero extent, which rtreego requires.
const pointTolerance = 1e-9

// airportEntry adapts an airport to rtreego.Spatial.
type airportEntry struct {
	order   int // position in the input slice
	airport models.AirportSummary
	rect    rtreego.Rect
}

func (e *airportEntry) Bounds() rtreego.Rect {
	return e.rect
}

// AirportIndex answers bounding-box queries over airport summaries.
type AirportIndex struct {
	rtree   *rtreego.Rtree
	size    int
	skipped int
}

// NewAirportIndex indexes every airport with a usable position.
func NewAirportIndex(airports []models.AirportSummary) *AirportIndex {
	// 2D, min=25 children, max=50 children
	idx := &AirportIndex{rtree: rtreego.NewTree(2, 25, 50)}
	for i := range airports {
		a := airports[i]
		if !a.HasPosition() {
			idx.skipped++
			continue
		}
		point := rtreego.Point{a.Longitude.Value, a.Latitude.Value}
		idx.rtree.Insert(&airportEntry{order: i, airport: a, rect: point.ToRect(pointTolerance)})
		idx.size++
	}
	return idx
}

// Size returns the number of indexed airports.
func (idx *AirportIndex) Size() int { return idx.size }

// Skipped returns the number of airports left out for lacking a position.
func (idx *AirportIndex) Skipped() int { return idx.skipped }

// Query returns the airports inside b, edges included, in input order.
// A box with West > East wraps across the antimeridian.
func (idx *AirportIndex) Query(b models.ViewportBounds) ([]models.AirportSummary, error) {
	if err := checkBounds(b); err != nil {
		return nil, err
	}

	var boxes [][4]float64 // west, south, east, north
	if b.West > b.East {
		boxes = append(boxes, [4]float64{b.West, b.South, 180, b.North}, [4]float64{-180, b.South, b.East, b.North})
	} else {
		boxes = append(boxes, [4]float64{b.West, b.South, b.East, b.North})
	}

	seen := make(map[int]bool)
	var hits []*airportEntry
	for _, box := range boxes {
		rect, err := rtreego.NewRect(
			rtreego.Point{box[0] - pointTolerance, box[1] - pointTolerance},
			[]float64{box[2] - box[0] + 2*pointTolerance, box[3] - box[1] + 2*pointTolerance},
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBounds, err)
		}
		for _, s := range idx.rtree.SearchIntersect(rect) {
			e := s.(*airportEntry)
			if seen[e.order] || !inside(e.airport, box) {
				continue
			}
			seen[e.order] = true
			hits = append(hits, e)
		}
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].order < hits[j].order })
	out := make([]models.AirportSummary, len(hits))
	for i, e := range hits {
		out[i] = e.airport
	}
	return out, nil
}

func inside(a models.AirportSummary, box [4]float64) bool {
	lon, lat := a.Longitude.Value, a.Latitude.Value
	return lon >= box[0] && lon <= box[2] && lat >= box[1] && lat <= box[3]
}

func checkBounds(b models.ViewportBounds) error {
	for _, v := range []float64{b.West, b.South, b.East, b.North} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value", ErrInvalidBounds)
		}
	}
	if b.West < -180 || b.West > 180 || b.East < -180 || b.East > 180 {
		return fmt.Errorf("%w: longitude must be within [-180, 180]", ErrInvalidBounds)
	}
	if b.South < -90 || b.North > 90 || b.South > b.North {
		return fmt.Errorf("%w: latitude must satisfy -90 <= south <= north <= 90", ErrInvalidBounds)
	}
	return nil
}
