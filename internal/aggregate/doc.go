// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

/*
Package aggregate groups route records into airline and airport summaries.

All functions are pure: they read the record slice, never modify it, and
return freshly built summaries on every call.

# Counting Rules

  - GroupByAirline: one increment per record for its AirlineID. The first
    AirlineName seen for an ID becomes the display name.
  - GroupByAirport: one increment for the destination airport, then one for
    the source airport. A self-loop increments the same airport twice.

Consequently the airline counts sum to len(records) and the airport counts
sum to 2*len(records).

# Ordering

GroupByAirline sorts by Count with a stable sort, so airlines with equal
counts keep the order in which they were first encountered. GroupByAirport
has no ordering contract; it emits airports in first-encounter order.
*/
package aggregate
