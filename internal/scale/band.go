// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package scale

import (
	"errors"
	"fmt"
	"math"

	"github.com/tomtom215/flightmap/internal/models"
)

// Band scale errors. Both are wrapped in *models.ConfigurationError.
var (
	ErrEmptyDomain     = errors.New("band scale has no categories")
	ErrUnknownCategory = errors.New("category not in band scale domain")
	ErrInvalidPadding  = errors.New("invalid band padding")
)

// BandOption customizes a Band scale.
type BandOption func(*Band)

// WithOuterPadding sets the padding before the first and after the last
// band, as a fraction of the step.
func WithOuterPadding(q float64) BandOption {
	return func(b *Band) {
		b.outer = q
	}
}

// Band assigns each category an equal-width band of a pixel range.
type Band struct {
	domain    []string
	index     map[string]int
	rng       Interval
	padding   float64
	outer     float64
	step      float64
	bandwidth float64
}

// NewBand builds a band scale over names in the given order. Duplicate
// names keep their first position. padding is the inner gap between bands
// as a fraction of the step and must lie in [0, 1).
func NewBand(names []string, rng Interval, padding float64, opts ...BandOption) (*Band, error) {
	b := &Band{
		index:   make(map[string]int, len(names)),
		rng:     rng,
		padding: padding,
	}
	for _, opt := range opts {
		opt(b)
	}

	if math.IsNaN(padding) || padding < 0 || padding >= 1 {
		return nil, models.NewConfigurationError("band", "new",
			fmt.Errorf("%w: inner padding %v must be in [0, 1)", ErrInvalidPadding, padding))
	}
	if math.IsNaN(b.outer) || b.outer < 0 {
		return nil, models.NewConfigurationError("band", "new",
			fmt.Errorf("%w: outer padding %v must be >= 0", ErrInvalidPadding, b.outer))
	}

	for _, name := range names {
		if _, seen := b.index[name]; seen {
			continue
		}
		b.index[name] = len(b.domain)
		b.domain = append(b.domain, name)
	}

	n := float64(len(b.domain))
	if n > 0 {
		b.step = rng.Span() / math.Max(1, n-b.padding+2*b.outer)
		b.bandwidth = b.step * (1 - b.padding)
	}
	return b, nil
}

// Position returns the starting pixel offset of name's band.
func (b *Band) Position(name string) (float64, error) {
	if len(b.domain) == 0 {
		return 0, models.NewConfigurationError("band", "position", ErrEmptyDomain)
	}
	i, ok := b.index[name]
	if !ok {
		return 0, models.NewConfigurationError("band", "position",
			fmt.Errorf("%w: %q", ErrUnknownCategory, name))
	}
	return b.rng.Low + b.outer*b.step + float64(i)*b.step, nil
}

// Bandwidth is the pixel size of every band.
func (b *Band) Bandwidth() float64 { return b.bandwidth }

// Step is the distance between the starts of adjacent bands.
func (b *Band) Step() float64 { return b.step }

// Domain returns a copy of the distinct categories in band order.
func (b *Band) Domain() []string {
	out := make([]string, len(b.domain))
	copy(out, b.domain)
	return out
}

// Len returns the number of categories.
func (b *Band) Len() int { return len(b.domain) }

// Axis returns a left axis with one tick centred on each band.
func (b *Band) Axis() models.Axis {
	ticks := make([]models.Tick, 0, len(b.domain))
	for _, name := range b.domain {
		pos, err := b.Position(name)
		if err != nil {
			continue
		}
		ticks = append(ticks, models.Tick{Label: name, Offset: pos + b.bandwidth/2})
	}
	return models.Axis{
		Orientation: models.AxisLeft,
		Length:      math.Abs(b.rng.Span()),
		Ticks:       ticks,
	}
}
