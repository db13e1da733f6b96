// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package render

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/flightmap/internal/models"
	"github.com/tomtom215/flightmap/internal/projection"
)

// ErrUnsupportedGeometry is returned for geometry types other than
// Polygon and MultiPolygon.
var ErrUnsupportedGeometry = errors.New("unsupported geometry type")

// Ring is a closed sequence of [lon, lat] positions.
type Ring [][]float64

// DecodeRings returns every ring of a Polygon or MultiPolygon, outer
// rings and holes alike, in file order.
func DecodeRings(g *models.Geometry) ([]Ring, error) {
	if g == nil {
		return nil, nil
	}
	switch g.Type {
	case "Polygon":
		var rings []Ring
		if err := json.Unmarshal(g.Coordinates, &rings); err != nil {
			return nil, fmt.Errorf("decode polygon: %w", err)
		}
		return rings, nil
	case "MultiPolygon":
		var polygons [][]Ring
		if err := json.Unmarshal(g.Coordinates, &polygons); err != nil {
			return nil, fmt.Errorf("decode multipolygon: %w", err)
		}
		var rings []Ring
		for _, p := range polygons {
			rings = append(rings, p...)
		}
		return rings, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedGeometry, g.Type)
	}
}

// Path is a projected ring.
type Path []models.ScreenPoint

// ProjectRings projects each ring with project. Positions the projection
// rejects (the poles, malformed pairs) are dropped; paths left with fewer
// than three vertices are dropped too.
func ProjectRings(rings []Ring, project projection.Func) []Path {
	paths := make([]Path, 0, len(rings))
	for _, ring := range rings {
		path := make(Path, 0, len(ring))
		for _, pos := range ring {
			if len(pos) < 2 {
				continue
			}
			pt, err := project(pos[0], pos[1])
			if err != nil {
				continue
			}
			path = append(path, pt)
		}
		if len(path) >= 3 {
			paths = append(paths, path)
		}
	}
	return paths
}

// featurePaths decodes and projects one feature. Unsupported geometry
// yields no paths and no error.
func featurePaths(f *models.Feature, project projection.Func) ([]Path, error) {
	rings, err := DecodeRings(f.Geometry)
	if errors.Is(err, ErrUnsupportedGeometry) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ProjectRings(rings, project), nil
}

// featureKey returns the feature id as text, or "".
func featureKey(f *models.Feature) string {
	if len(f.ID) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(f.ID, &s); err == nil {
		return s
	}
	return string(f.ID)
}
