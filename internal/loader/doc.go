// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

/*
Package loader fetches the route table and the optional boundary dataset.

# Locations

A dataset location selects its source by scheme:

  - plain paths and file:// URLs are read from disk (FileSource)
  - http:// and https:// URLs are fetched through a circuit breaker (HTTPSource)
  - gs://bucket/object is read from Google Cloud Storage (GCSSource)

A location ending in .gz is decompressed transparently.

# Table Engines

The route table is CSV with a header row. Two engines parse it:

  - csv: encoding/csv with a header-to-column map per row
  - duckdb: DuckDB's read_csv with every column read as VARCHAR; remote
    tables are spooled to a temporary file first

Both engines coerce the four coordinate columns the same way. Values that
cannot be coerced are recorded in a CoercionReport and the affected
coordinate becomes unusable; the row itself is kept.

# Join

LoadAll loads routes and boundaries concurrently and returns only after
both have finished. The first failure cancels the other load and is
returned as a *LoadError. Nothing is retried.
*/
package loader
