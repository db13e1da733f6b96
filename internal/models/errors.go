// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package models

import (
	"errors"
	"fmt"
)

// ErrConfiguration matches every ConfigurationError via errors.Is.
var ErrConfiguration = errors.New("configuration error")

// ConfigurationError reports a scale or projection asked to work outside
// its declared domain. It is never retried.
type ConfigurationError struct {
	Component string // "band", "linear", "mercator", "layout"
	Op        string
	Err       error
}

func (e *ConfigurationError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Component, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Component, e.Op, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrConfiguration) match any ConfigurationError.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// NewConfigurationError wraps err for the given component and operation.
func NewConfigurationError(component, op string, err error) *ConfigurationError {
	return &ConfigurationError{Component: component, Op: op, Err: err}
}
