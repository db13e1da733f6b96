// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/flightmap/internal/scale"
)

// DefaultConfigPaths are tried in order when CONFIG_PATH is unset or points
// at a missing file.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/flightmap/config.yaml",
	"/etc/flightmap/config.yml",
}

// ConfigPathEnvVar names an explicit config file.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig is the bottom configuration layer.
func defaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			RoutesPath:     "routes.csv",
			BoundariesPath: "", // optional
			TableEngine:    "csv",
			RemoteTimeout:  30 * time.Second,
			GCSAnonymous:   false,
			ProbeInterval:  time.Minute,
		},
		Chart: ChartConfig{
			Width:            800,
			Height:           600,
			Margin:           scale.Margin{Top: 20, Right: 20, Bottom: 40, Left: 160},
			BandPadding:      0.1,
			BandOuterPadding: 0,
			SortOrder:        "descending",
			MaxAirlines:      0, // all
			TickCount:        10,
		},
		Map: MapConfig{
			Width:       960,
			Height:      600,
			Scale:       150,
			TranslateX:  480,
			TranslateY:  300,
			PointRadius: 1,
		},
		Routes: RoutesConfig{
			Airline: "", // no line batch
		},
		Server: ServerConfig{
			Port:    3857,
			Host:    "0.0.0.0",
			Timeout: 30 * time.Second,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{},
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf merges defaults, the optional YAML file, and mapped
// environment variables (later layers win), then validates the result.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}
	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}
	for _, path := range listPaths {
		if err := splitList(k, path); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func findConfigFile() string {
	candidates := DefaultConfigPaths
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		candidates = append([]string{p}, candidates...)
	}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// listPaths hold string slices that arrive from the environment as
// comma-separated values.
var listPaths = []string{"security.cors_origins"}

func splitList(k *koanf.Koanf, path string) error {
	raw, ok := k.Get(path).(string)
	if !ok {
		return nil
	}
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if items == nil {
		items = []string{}
	}
	if err := k.Set(path, items); err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	"routes_path":     "data.routes_path",
	"boundaries_path": "data.boundaries_path",
	"table_engine":    "data.table_engine",
	"remote_timeout":  "data.remote_timeout",
	"gcs_anonymous":   "data.gcs_anonymous",
	"probe_interval":  "data.probe_interval",
	"chart_width":              "chart.width",
	"chart_height":             "chart.height",
	"chart_margin_top":         "chart.margin.top",
	"chart_margin_right":       "chart.margin.right",
	"chart_margin_bottom":      "chart.margin.bottom",
	"chart_margin_left":        "chart.margin.left",
	"chart_band_padding":       "chart.band_padding",
	"chart_band_outer_padding": "chart.band_outer_padding",
	"chart_sort_order":         "chart.sort_order",
	"chart_max_airlines":       "chart.max_airlines",
	"chart_tick_count":         "chart.tick_count",

	"map_width":        "map.width",
	"map_height":       "map.height",
	"map_scale":        "map.scale",
	"map_translate_x":  "map.translate_x",
	"map_translate_y":  "map.translate_y",
	"map_point_radius": "map.point_radius",

	"routes_airline": "routes.airline",

	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",

	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_reqs":     "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"rate_limit_disabled": "security.rate_limit_disabled",
	"disable_rate_limit":  "security.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment key such as CHART_MARGIN_LEFT to
// its koanf path. Unmapped keys return "" and are dropped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
