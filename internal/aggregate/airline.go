// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package aggregate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tomtom215/flightmap/internal/models"
)

// SortOrder selects the direction of the airline ranking.
type SortOrder string

const (
	Ascending  SortOrder = "ascending"
	Descending SortOrder = "descending"
)

// ParseSortOrder accepts "asc", "ascending", "desc" and "descending"
// in any case. Empty input selects Descending.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "desc", "descending":
		return Descending, nil
	case "asc", "ascending":
		return Ascending, nil
	default:
		return "", fmt.Errorf("invalid sort order %q: must be ascending or descending", s)
	}
}

// GroupByAirline counts records per AirlineID and returns the summaries
// ranked by Count in the given order. Ties keep first-encounter order.
func GroupByAirline(records []models.RouteRecord, order SortOrder) []models.AirlineSummary {
	index := make(map[string]int, 64)
	summaries := make([]models.AirlineSummary, 0, 64)

	for i := range records {
		r := &records[i]
		pos, ok := index[r.AirlineID]
		if !ok {
			pos = len(summaries)
			index[r.AirlineID] = pos
			summaries = append(summaries, models.AirlineSummary{
				AirlineID:   r.AirlineID,
				AirlineName: r.AirlineName,
			})
		}
		summaries[pos].Count++
	}

	if order == Ascending {
		sort.SliceStable(summaries, func(i, j int) bool {
			return summaries[i].Count < summaries[j].Count
		})
	} else {
		sort.SliceStable(summaries, func(i, j int) bool {
			return summaries[i].Count > summaries[j].Count
		})
	}
	return summaries
}

// TopAirlines returns at most n leading summaries. n <= 0 returns all.
// The returned slice is a copy.
func TopAirlines(summaries []models.AirlineSummary, n int) []models.AirlineSummary {
	if n <= 0 || n > len(summaries) {
		n = len(summaries)
	}
	out := make([]models.AirlineSummary, n)
	copy(out, summaries[:n])
	return out
}

// AirlineIDs returns the airline IDs of the summaries, in order.
func AirlineIDs(summaries []models.AirlineSummary) []string {
	ids := make([]string, len(summaries))
	for i := range summaries {
		ids[i] = summaries[i].AirlineID
	}
	return ids
}
