// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/tomtom215/flightmap/internal/models"
)

// maxListLimit bounds the limit query parameter.
const maxListLimit = 10000

// AirlinesRequest represents the validated query parameters for /airlines.
//
// Fields:
//   - Order: asc, ascending, desc or descending (default from config)
//   - Limit: Maximum summaries to return (0 = all)
type AirlinesRequest struct {
	Order string `validate:"sort_order"`
	Limit int    `validate:"min=0,max=10000"`
}

// RoutesRequest represents the validated query parameters for /routes.
// Airline falls back to the configured routes.airline.
type RoutesRequest struct {
	Airline string `validate:"required,max=64"`
}

// SceneRequest represents the validated query parameters for /scene and
// /render.pdf.
//
// Fields:
//   - Airline: Overrides the configured line batch airline
//   - Order: Overrides the configured chart order
//   - Surfaces: Include the recorded draw calls (scene only)
type SceneRequest struct {
	Airline  string `validate:"omitempty,max=64"`
	Order    string `validate:"sort_order"`
	Surfaces bool
}

// queryInt parses an optional integer parameter.
func queryInt(q url.Values, key string, defaultValue int) (int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return v, nil
}

// queryBool parses an optional boolean parameter.
func queryBool(q url.Values, key string) (bool, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be true or false", key)
	}
	return v, nil
}

// parseViewport reads west, south, east and north. It returns nil when
// none is given and ErrPartialViewport when only some are.
func parseViewport(q url.Values) (*models.ViewportBounds, error) {
	keys := [4]string{"west", "south", "east", "north"}
	var vals [4]float64
	present := 0
	for i, k := range keys {
		raw := strings.TrimSpace(q.Get(k))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%s must be a number", k)
		}
		vals[i] = v
		present++
	}
	switch present {
	case 0:
		return nil, nil
	case len(keys):
		return &models.ViewportBounds{West: vals[0], South: vals[1], East: vals[2], North: vals[3]}, nil
	default:
		return nil, ErrPartialViewport
	}
}
