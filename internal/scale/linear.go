// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package scale

import (
	"math"
	"strconv"

	"github.com/tomtom215/flightmap/internal/models"
)

// Interval is a closed numeric interval. Low may exceed High for
// inverted pixel ranges.
type Interval struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Span returns High - Low.
func (i Interval) Span() float64 {
	return i.High - i.Low
}

// Linear maps a numeric domain onto a pixel range.
type Linear struct {
	domain Interval
	rng    Interval
}

// NewLinear builds a linear scale. A degenerate domain is allowed and
// maps every value to rng.Low.
func NewLinear(domain, rng Interval) *Linear {
	return &Linear{domain: domain, rng: rng}
}

// LinearFromCounts builds the [0, max(Count)] -> rng scale for airline summaries.
func LinearFromCounts(summaries []models.AirlineSummary, rng Interval) *Linear {
	maxCount := 0
	for i := range summaries {
		if summaries[i].Count > maxCount {
			maxCount = summaries[i].Count
		}
	}
	return NewLinear(Interval{Low: 0, High: float64(maxCount)}, rng)
}

// Domain returns the input interval.
func (l *Linear) Domain() Interval { return l.domain }

// Range returns the output interval.
func (l *Linear) Range() Interval { return l.rng }

// Map returns the pixel offset for v.
func (l *Linear) Map(v float64) float64 {
	d := l.domain.Span()
	if d == 0 {
		return l.rng.Low
	}
	return l.rng.Low + (v-l.domain.Low)/d*l.rng.Span()
}

// Ticks returns about n evenly spaced round values inside the domain,
// with steps of 1, 2 or 5 times a power of ten.
func (l *Linear) Ticks(n int) []float64 {
	start, stop := l.domain.Low, l.domain.High
	if n <= 0 || math.IsNaN(start) || math.IsNaN(stop) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}

	step := (stop - start) / float64(n)
	power := math.Floor(math.Log10(step))
	ratio := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case ratio >= math.Sqrt(50):
		factor = 10
	case ratio >= math.Sqrt(10):
		factor = 5
	case ratio >= math.Sqrt(2):
		factor = 2
	}

	var ticks []float64
	if power >= 0 {
		inc := factor * math.Pow(10, power)
		for i := math.Ceil(start / inc); i <= math.Floor(stop/inc); i++ {
			ticks = append(ticks, i*inc)
		}
	} else {
		// Divide by the reciprocal to keep decimal ticks exact.
		inv := math.Pow(10, -power) / factor
		for i := math.Ceil(start * inv); i <= math.Floor(stop*inv); i++ {
			ticks = append(ticks, i/inv)
		}
	}

	if reverse {
		for i, j := 0, len(ticks)-1; i < j; i, j = i+1, j-1 {
			ticks[i], ticks[j] = ticks[j], ticks[i]
		}
	}
	return ticks
}

// Axis returns a bottom axis with a labelled tick for each of Ticks(n).
func (l *Linear) Axis(n int) models.Axis {
	values := l.Ticks(n)
	ticks := make([]models.Tick, len(values))
	for i, v := range values {
		ticks[i] = models.Tick{
			Label:  strconv.FormatFloat(v, 'f', -1, 64),
			Offset: l.Map(v),
		}
	}
	return models.Axis{
		Orientation: models.AxisBottom,
		Length:      math.Abs(l.rng.Span()),
		Ticks:       ticks,
	}
}
