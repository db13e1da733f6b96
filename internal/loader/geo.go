// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package loader

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/tomtom215/flightmap/internal/models"
)

// readFeatureCollection decodes a GeoJSON FeatureCollection.
func readFeatureCollection(r io.Reader) (*models.FeatureCollection, error) {
	var fc models.FeatureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("%w: type %q", ErrNotFeatureCollection, fc.Type)
	}
	if fc.Features == nil {
		fc.Features = []models.Feature{}
	}
	return &fc, nil
}
