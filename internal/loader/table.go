// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tomtom215/flightmap/internal/models"
)

// maxSampleRows caps how many offending row numbers a CoercionReport keeps.
const maxSampleRows = 5

// RequiredColumns must be present in every route table. The remaining
// route columns are optional and read as empty when absent.
var RequiredColumns = []string{
	models.ColAirlineID,
	models.ColAirlineName,
	models.ColSourceAirportID,
	models.ColDestAirportID,
}

// CoercionReport counts coordinate fields that could not be read as numbers.
type CoercionReport struct {
	// Rows is the number of data rows read.
	Rows int `json:"rows"`
	// ByField maps a coordinate column to its unusable value count.
	ByField map[string]int `json:"by_field"`
	// SampleRows holds the first offending data row numbers (1-based).
	SampleRows []int `json:"sample_rows,omitempty"`
}

func newCoercionReport() CoercionReport {
	return CoercionReport{ByField: make(map[string]int, len(models.CoordinateFields))}
}

// Total returns the number of unusable coordinate values.
func (r CoercionReport) Total() int {
	total := 0
	for _, n := range r.ByField {
		total += n
	}
	return total
}

// recordBuilder turns rows of named fields into route records and keeps
// the coercion report current.
type recordBuilder struct {
	records []models.RouteRecord
	report  CoercionReport
}

func newRecordBuilder() *recordBuilder {
	return &recordBuilder{report: newCoercionReport()}
}

func (b *recordBuilder) add(get func(column string) string) {
	b.report.Rows++
	rec := models.RouteFromFields(get)

	bad := false
	for _, field := range models.CoordinateFields {
		var c models.Coordinate
		switch field {
		case models.ColSourceLatitude:
			c = rec.SourceLatitude
		case models.ColSourceLongitude:
			c = rec.SourceLongitude
		case models.ColDestLatitude:
			c = rec.DestLatitude
		case models.ColDestLongitude:
			c = rec.DestLongitude
		}
		if !c.Valid {
			b.report.ByField[field]++
			bad = true
		}
	}
	if bad && len(b.report.SampleRows) < maxSampleRows {
		b.report.SampleRows = append(b.report.SampleRows, b.report.Rows)
	}

	b.records = append(b.records, rec)
}

// checkColumns returns ErrMissingColumns naming any required column absent
// from header.
func checkColumns(header map[string]int) error {
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := header[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return nil
}

// headerIndex maps trimmed column names to their position. A UTF-8 byte
// order mark on the first column is dropped.
func headerIndex(cols []string) map[string]int {
	idx := make(map[string]int, len(cols))
	for i, c := range cols {
		if i == 0 {
			c = strings.TrimPrefix(c, "\ufeff")
		}
		c = strings.TrimSpace(c)
		if _, dup := idx[c]; !dup {
			idx[c] = i
		}
	}
	return idx
}

// readCSVTable parses a comma-separated route table with a header row.
func readCSVTable(r io.Reader) ([]models.RouteRecord, CoercionReport, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	head, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, CoercionReport{}, fmt.Errorf("%w: empty file", ErrMissingColumns)
	}
	if err != nil {
		return nil, CoercionReport{}, fmt.Errorf("read header: %w", err)
	}
	header := headerIndex(head)
	if err := checkColumns(header); err != nil {
		return nil, CoercionReport{}, err
	}

	b := newRecordBuilder()
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, CoercionReport{}, fmt.Errorf("read row %d: %w", b.report.Rows+1, err)
		}
		b.add(func(column string) string {
			i, ok := header[column]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		})
	}
	return b.records, b.report, nil
}
