// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package loader

import (
	"errors"
	"fmt"

	"github.com/tomtom215/flightmap/internal/logging"
)

var (
	// ErrLoadFailure matches every *LoadError via errors.Is.
	ErrLoadFailure = errors.New("dataset load failed")

	// ErrEmptyLocation is returned when no dataset location is configured.
	ErrEmptyLocation = errors.New("dataset location is empty")

	// ErrMissingColumns is returned when the route table lacks required columns.
	ErrMissingColumns = errors.New("route table is missing required columns")

	// ErrNotFeatureCollection is returned for boundary files of another GeoJSON type.
	ErrNotFeatureCollection = errors.New("boundary dataset is not a GeoJSON FeatureCollection")

	// ErrUnsupportedEngine is returned for unknown table engines.
	ErrUnsupportedEngine = errors.New("unsupported table engine")
)

// Dataset names used in errors, logs and metrics.
const (
	DatasetRoutes     = "routes"
	DatasetBoundaries = "boundaries"
)

// LoadError reports an unreachable or malformed dataset. It is terminal
// for the pipeline run that hit it.
type LoadError struct {
	Dataset  string
	Location string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s from %s: %v", e.Dataset, logging.SanitizeLocation(e.Location), e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrLoadFailure) match any LoadError.
func (e *LoadError) Is(target error) bool {
	return target == ErrLoadFailure
}

func loadError(dataset, location string, err error) error {
	var le *LoadError
	if errors.As(err, &le) {
		return err
	}
	return &LoadError{Dataset: dataset, Location: location, Err: err}
}
