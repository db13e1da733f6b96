// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package loader

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2" // DuckDB driver

	"github.com/tomtom215/flightmap/internal/logging"
	"github.com/tomtom215/flightmap/internal/models"
)

// duckDBDSN opens a throwaway in-memory database without extension
// autoloading, so the engine never reaches the network.
const duckDBDSN = ":memory:?autoinstall_known_extensions=false&autoload_known_extensions=false"

// DuckDBTable reads route tables through DuckDB's read_csv. Every column
// is read as VARCHAR so coordinate coercion matches the csv engine.
type DuckDBTable struct{}

// Read parses the CSV file at path.
func (DuckDBTable) Read(ctx context.Context, path string) ([]models.RouteRecord, CoercionReport, error) {
	db, err := sql.Open("duckdb", duckDBDSN)
	if err != nil {
		return nil, CoercionReport{}, fmt.Errorf("open duckdb: %w", err)
	}
	defer db.Close()

	query := fmt.Sprintf("SELECT * FROM read_csv(%s, header=true, all_varchar=true)", quoteLiteral(path))
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, CoercionReport{}, fmt.Errorf("read_csv: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, CoercionReport{}, fmt.Errorf("columns: %w", err)
	}
	header := headerIndex(cols)
	if err := checkColumns(header); err != nil {
		return nil, CoercionReport{}, err
	}

	values := make([]sql.NullString, len(cols))
	dest := make([]any, len(cols))
	for i := range values {
		dest[i] = &values[i]
	}

	b := newRecordBuilder()
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, CoercionReport{}, fmt.Errorf("scan row %d: %w", b.report.Rows+1, err)
		}
		b.add(func(column string) string {
			i, ok := header[column]
			if !ok {
				return ""
			}
			return values[i].String
		})
	}
	if err := rows.Err(); err != nil {
		return nil, CoercionReport{}, fmt.Errorf("iterate rows: %w", err)
	}
	return b.records, b.report, nil
}

// spool copies r to a temporary file for engines that need a path.
// The caller removes the returned file.
func spool(r io.Reader, suffix string) (string, error) {
	f, err := os.CreateTemp("", "flightmap-*"+suffix)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	logging.Debug().Str("path", f.Name()).Msg("Spooled dataset to temporary file")
	return f.Name(), nil
}

// quoteLiteral renders s as a SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
