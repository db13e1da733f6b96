// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package models

import (
	"github.com/goccy/go-json"
)

// FeatureCollection is a GeoJSON boundary dataset. The pipeline passes its
// features through to the renderer without interpreting their geometry.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a single GeoJSON feature.
type Feature struct {
	Type       string                 `json:"type"`
	ID         json.RawMessage        `json:"id,omitempty"`
	Properties map[string]interface{} `json:"properties"`
	Geometry   *Geometry              `json:"geometry"`
}

// Geometry keeps its coordinates raw; only renderers decode them.
type Geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}
