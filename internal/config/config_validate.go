// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/flightmap/internal/aggregate"
	"github.com/tomtom215/flightmap/internal/logging"
	"github.com/tomtom215/flightmap/internal/scale"
	"github.com/tomtom215/flightmap/internal/validation"
)

// Validate checks field constraints, then the cross-field rules the
// struct tags cannot express.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}

	if err := c.validateChart(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateChart checks that the margins leave room for bars and that the
// sort order parses.
func (c *Config) validateChart() error {
	layout := scale.ChartLayout{Width: c.Chart.Width, Height: c.Chart.Height, Margin: c.Chart.Margin}
	if err := layout.Validate(); err != nil {
		return fmt.Errorf("chart margins leave no drawing area: %w", err)
	}
	if _, err := aggregate.ParseSortOrder(c.Chart.SortOrder); err != nil {
		return fmt.Errorf("CHART_SORT_ORDER: %w", err)
	}
	return nil
}

// validateSecurity validates security configuration
func (c *Config) validateSecurity() error {
	return c.validateRateLimits()
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d, got %d",
			minRateLimitRequests, maxRateLimitRequests, c.Security.RateLimitReqs)
	}

	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v, got %v",
			minRateLimitWindow, maxRateLimitWindow, c.Security.RateLimitWindow)
	}

	return nil
}

// validateLogging validates the logging configuration
func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	return nil
}
