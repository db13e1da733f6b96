// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/flightmap/internal/aggregate"
	"github.com/tomtom215/flightmap/internal/loader"
	"github.com/tomtom215/flightmap/internal/logging"
	"github.com/tomtom215/flightmap/internal/pipeline"
	"github.com/tomtom215/flightmap/internal/projection"
	"github.com/tomtom215/flightmap/internal/scale"
)

// Config holds all application configuration.
type Config struct {
	Data     DataConfig     `koanf:"data"`
	Chart    ChartConfig    `koanf:"chart"`
	Map      MapConfig      `koanf:"map"`
	Routes   RoutesConfig   `koanf:"routes"`
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// DataConfig locates the datasets.
//
// Environment Variables:
//   - ROUTES_PATH: route table location (default: routes.csv)
//   - BOUNDARIES_PATH: GeoJSON boundary location (default: none)
//   - TABLE_ENGINE: csv or duckdb (default: csv)
//   - REMOTE_TIMEOUT: per-request timeout for http(s) datasets (default: 30s)
//   - GCS_ANONYMOUS: read gs:// datasets without credentials (default: false)
//   - PROBE_INTERVAL: background reachability probe period, 0 disables (default: 1m)
type DataConfig struct {
	RoutesPath     string        `koanf:"routes_path" validate:"dataset_location"`
	BoundariesPath string        `koanf:"boundaries_path" validate:"omitempty,dataset_location"`
	TableEngine    string        `koanf:"table_engine" validate:"oneof=csv duckdb"`
	RemoteTimeout  time.Duration `koanf:"remote_timeout" validate:"min=1s"`
	GCSAnonymous   bool          `koanf:"gcs_anonymous"`
	ProbeInterval  time.Duration `koanf:"probe_interval" validate:"omitempty,min=1s"`
}

// ChartConfig holds the airline bar chart layout.
type ChartConfig struct {
	Width            float64      `koanf:"width" validate:"gt=0"`
	Height           float64      `koanf:"height" validate:"gt=0"`
	Margin           scale.Margin `koanf:"margin"`
	BandPadding      float64      `koanf:"band_padding" validate:"gte=0,lt=1"`
	BandOuterPadding float64      `koanf:"band_outer_padding" validate:"gte=0"`
	SortOrder        string       `koanf:"sort_order" validate:"sort_order"`
	MaxAirlines      int          `koanf:"max_airlines" validate:"gte=0"`
	TickCount        int          `koanf:"tick_count" validate:"gte=0,lte=100"`
}

// MapConfig holds the airport map surface and its Mercator projection.
type MapConfig struct {
	Width       float64 `koanf:"width" validate:"gt=0"`
	Height      float64 `koanf:"height" validate:"gt=0"`
	Scale       float64 `koanf:"scale" validate:"gt=0"`
	TranslateX  float64 `koanf:"translate_x"`
	TranslateY  float64 `koanf:"translate_y"`
	PointRadius float64 `koanf:"point_radius" validate:"gte=0"`
}

// RoutesConfig selects the airline whose routes are drawn as lines.
type RoutesConfig struct {
	Airline string `koanf:"airline"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port    int           `koanf:"port" validate:"min=1,max=65535"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout" validate:"min=1s"`
}

// Addr returns host:port for the listener.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Load is the entry point for configuration loading.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// LoaderConfig returns the dataset loader settings.
func (c *Config) LoaderConfig() loader.Config {
	return loader.Config{
		Engine:        c.Data.TableEngine,
		RemoteTimeout: c.Data.RemoteTimeout,
		GCSAnonymous:  c.Data.GCSAnonymous,
	}
}

// LoggingSettings returns the logger settings.
func (c *Config) LoggingSettings() logging.Config {
	return logging.Config{
		Level:     c.Logging.Level,
		Format:    c.Logging.Format,
		Caller:    c.Logging.Caller,
		Timestamp: true,
	}
}

// PipelineOptions returns the run options for the configured datasets,
// chart and map. Callers may override Order and Airline per run.
func (c *Config) PipelineOptions() (pipeline.Options, error) {
	order, err := aggregate.ParseSortOrder(c.Chart.SortOrder)
	if err != nil {
		return pipeline.Options{}, fmt.Errorf("chart.sort_order: %w", err)
	}
	return pipeline.Options{
		RoutesPath:     c.Data.RoutesPath,
		BoundariesPath: c.Data.BoundariesPath,
		Order:          order,
		Airline:        c.Routes.Airline,
		Chart: pipeline.ChartOptions{
			Layout: scale.ChartLayout{
				Width:  c.Chart.Width,
				Height: c.Chart.Height,
				Margin: c.Chart.Margin,
			},
			BandPadding:  c.Chart.BandPadding,
			OuterPadding: c.Chart.BandOuterPadding,
			TickCount:    c.Chart.TickCount,
			MaxAirlines:  c.Chart.MaxAirlines,
		},
		Map: pipeline.MapOptions{
			Width:  c.Map.Width,
			Height: c.Map.Height,
			Projection: projection.Mercator{
				Scale:      c.Map.Scale,
				TranslateX: c.Map.TranslateX,
				TranslateY: c.Map.TranslateY,
			},
			PointRadius: c.Map.PointRadius,
		},
	}, nil
}
