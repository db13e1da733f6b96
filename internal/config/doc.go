// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

/*
Package config provides centralized configuration management for Flightmap.

# Configuration Sources

Configuration is layered with koanf, highest priority last:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file: CONFIG_PATH, else config.yaml, config.yml,
    /etc/flightmap/config.yaml or /etc/flightmap/config.yml
 3. Environment variables, through an explicit mapping table

Unmapped environment variables are ignored.

# Environment Variables

Data:
  - ROUTES_PATH: route table (path, file://, http(s)://, gs://) (default: routes.csv)
  - BOUNDARIES_PATH: GeoJSON FeatureCollection (default: none)
  - TABLE_ENGINE: csv or duckdb (default: csv)
  - REMOTE_TIMEOUT: http(s) request timeout (default: 30s)
  - GCS_ANONYMOUS: read public buckets without credentials (default: false)
  - PROBE_INTERVAL: dataset reachability probe period, 0 disables (default: 1m)

Chart:
  - CHART_WIDTH, CHART_HEIGHT (default: 800, 600)
  - CHART_MARGIN_TOP, CHART_MARGIN_RIGHT, CHART_MARGIN_BOTTOM, CHART_MARGIN_LEFT (default: 20, 20, 40, 160)
  - CHART_BAND_PADDING: inner band padding in [0, 1) (default: 0.1)
  - CHART_BAND_OUTER_PADDING: outer band padding (default: 0)
  - CHART_SORT_ORDER: ascending or descending (default: descending)
  - CHART_MAX_AIRLINES: bars to draw, 0 for all (default: 0)
  - CHART_TICK_COUNT: approximate count axis ticks (default: 10)

Map:
  - MAP_WIDTH, MAP_HEIGHT (default: 960, 600)
  - MAP_SCALE: Mercator scale in pixels per radian (default: 150)
  - MAP_TRANSLATE_X, MAP_TRANSLATE_Y: pixel position of lon 0 / lat 0 (default: 480, 300)
  - MAP_POINT_RADIUS (default: 1)
  - ROUTES_AIRLINE: airline ID whose routes are drawn (default: none)

Server and security:
  - HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT (default: 0.0.0.0, 3857, 30s)
  - CORS_ORIGINS: comma-separated allowed origins (default: none)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, RATE_LIMIT_DISABLED (default: 100, 1m, false)

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER (default: info, json, false)

# Validation

Field constraints are struct tags checked by internal/validation. Validate
then applies the cross-field rules: the chart margins must leave a drawing
area and rate limits must stay within bounds.
*/
package config
