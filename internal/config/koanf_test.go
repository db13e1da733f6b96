// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/flightmap/internal/aggregate"
	"github.com/tomtom215/flightmap/internal/models"
	"github.com/tomtom215/flightmap/internal/scale"
	"github.com/tomtom215/flightmap/internal/validation"
)

// clearConfigEnv unsets every mapped variable for the duration of the test.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	keys := []string{ConfigPathEnvVar}
	for k := range envMappings {
		keys = append(keys, strings.ToUpper(k))
	}
	for _, k := range keys {
		if orig, ok := os.LookupEnv(k); ok {
			t.Setenv(k, orig) // restores the value after the test
			os.Unsetenv(k)
		}
	}
}

// writeConfig writes content to a config file and points CONFIG_PATH at it.
func writeConfig(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
}

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Data.RoutesPath != "routes.csv" {
		t.Errorf("Data.RoutesPath = %q, want routes.csv", cfg.Data.RoutesPath)
	}
	if cfg.Data.BoundariesPath != "" {
		t.Errorf("Data.BoundariesPath = %q, want empty", cfg.Data.BoundariesPath)
	}
	if cfg.Data.TableEngine != "csv" || cfg.Data.RemoteTimeout != 30*time.Second || cfg.Data.ProbeInterval != time.Minute {
		t.Errorf("Data = %+v", cfg.Data)
	}
	if cfg.Chart.Width != 800 || cfg.Chart.Height != 600 {
		t.Errorf("Chart size = %vx%v, want 800x600", cfg.Chart.Width, cfg.Chart.Height)
	}
	if cfg.Chart.Margin != (scale.Margin{Top: 20, Right: 20, Bottom: 40, Left: 160}) {
		t.Errorf("Chart.Margin = %+v", cfg.Chart.Margin)
	}
	if cfg.Chart.BandPadding != 0.1 || cfg.Chart.TickCount != 10 || cfg.Chart.SortOrder != "descending" {
		t.Errorf("Chart = %+v", cfg.Chart)
	}
	if cfg.Map.Scale != 150 || cfg.Map.TranslateX != 480 || cfg.Map.TranslateY != 300 || cfg.Map.PointRadius != 1 {
		t.Errorf("Map = %+v", cfg.Map)
	}
	if cfg.Server.Port != 3857 || cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Security.RateLimitReqs != 100 || cfg.Security.RateLimitWindow != time.Minute {
		t.Errorf("Security = %+v", cfg.Security)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

// TestEnvTransformFunc verifies environment variable name transformation
func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"ROUTES_PATH", "data.routes_path"},
		{"BOUNDARIES_PATH", "data.boundaries_path"},
		{"TABLE_ENGINE", "data.table_engine"},
		{"CHART_MARGIN_LEFT", "chart.margin.left"},
		{"CHART_BAND_OUTER_PADDING", "chart.band_outer_padding"},
		{"MAP_TRANSLATE_Y", "map.translate_y"},
		{"ROUTES_AIRLINE", "routes.airline"},
		{"HTTP_PORT", "server.port"},
		{"RATE_LIMIT_REQUESTS", "security.rate_limit_reqs"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"log_level", "logging.level"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := envTransformFunc(tt.input); result != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

// TestFindConfigFile verifies config file discovery
func TestFindConfigFile(t *testing.T) {
	clearConfigEnv(t)
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	t.Run("no config file exists", func(t *testing.T) {
		if result := findConfigFile(); result != "" {
			t.Errorf("findConfigFile() = %q, want empty string", result)
		}
	})

	t.Run("config.yaml exists", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "config.yaml")
		if err := os.WriteFile(configPath, []byte("data: {}"), 0o600); err != nil {
			t.Fatalf("Failed to create config file: %v", err)
		}
		defer os.Remove(configPath)

		if result := findConfigFile(); result != "config.yaml" {
			t.Errorf("findConfigFile() = %q, want config.yaml", result)
		}
	})

	t.Run("CONFIG_PATH env var takes precedence", func(t *testing.T) {
		customPath := filepath.Join(tmpDir, "custom_config.yaml")
		if err := os.WriteFile(customPath, []byte("data: {}"), 0o600); err != nil {
			t.Fatalf("Failed to create custom config file: %v", err)
		}
		t.Setenv(ConfigPathEnvVar, customPath)

		if result := findConfigFile(); result != customPath {
			t.Errorf("findConfigFile() = %q, want %q", result, customPath)
		}
	})

	t.Run("CONFIG_PATH env var with non-existent file", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "/non/existent/config.yaml")
		if result := findConfigFile(); result != "" {
			t.Errorf("findConfigFile() = %q, want empty string", result)
		}
	})
}

// TestLoadWithKoanfEnvVars tests loading configuration from environment variables
func TestLoadWithKoanfEnvVars(t *testing.T) {
	clearConfigEnv(t)
	t.Chdir(t.TempDir())

	t.Setenv("ROUTES_PATH", "gs://open-data/routes.csv.gz")
	t.Setenv("TABLE_ENGINE", "duckdb")
	t.Setenv("REMOTE_TIMEOUT", "5s")
	t.Setenv("CHART_MARGIN_LEFT", "200")
	t.Setenv("CHART_BAND_PADDING", "0.25")
	t.Setenv("CHART_SORT_ORDER", "asc")
	t.Setenv("MAP_SCALE", "300")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PROBE_INTERVAL", "0s")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Data.RoutesPath != "gs://open-data/routes.csv.gz" || cfg.Data.TableEngine != "duckdb" {
		t.Errorf("Data = %+v", cfg.Data)
	}
	if cfg.Data.RemoteTimeout != 5*time.Second {
		t.Errorf("Data.RemoteTimeout = %v, want 5s", cfg.Data.RemoteTimeout)
	}
	if cfg.Data.ProbeInterval != 0 {
		t.Errorf("Data.ProbeInterval = %v, want 0 (disabled)", cfg.Data.ProbeInterval)
	}
	if cfg.Chart.Margin.Left != 200 || cfg.Chart.Margin.Top != 20 {
		t.Errorf("Chart.Margin = %+v", cfg.Chart.Margin)
	}
	if cfg.Chart.BandPadding != 0.25 {
		t.Errorf("Chart.BandPadding = %v, want 0.25", cfg.Chart.BandPadding)
	}
	if cfg.Map.Scale != 300 || cfg.Server.Port != 9000 || cfg.Logging.Level != "debug" {
		t.Errorf("Map.Scale=%v Server.Port=%d Logging.Level=%q", cfg.Map.Scale, cfg.Server.Port, cfg.Logging.Level)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.example" {
		t.Errorf("Security.CORSOrigins = %v", cfg.Security.CORSOrigins)
	}

	// Defaults still apply for unset values
	if cfg.Server.Host != "0.0.0.0" || cfg.Map.Width != 960 {
		t.Errorf("defaults lost: host=%q map.width=%v", cfg.Server.Host, cfg.Map.Width)
	}

	opts, err := cfg.PipelineOptions()
	if err != nil {
		t.Fatalf("PipelineOptions() error = %v", err)
	}
	if opts.Order != aggregate.Ascending || opts.Chart.Layout.Margin.Left != 200 || opts.Map.Projection.Scale != 300 {
		t.Errorf("PipelineOptions() = %+v", opts)
	}
	if lc := cfg.LoaderConfig(); lc.Engine != "duckdb" || lc.RemoteTimeout != 5*time.Second {
		t.Errorf("LoaderConfig() = %+v", lc)
	}
}

// TestLoadWithKoanfConfigFile tests loading configuration from a YAML file
func TestLoadWithKoanfConfigFile(t *testing.T) {
	clearConfigEnv(t)
	writeConfig(t, `
data:
  routes_path: "https://example.com/routes.csv"
  boundaries_path: "world.geojson"
chart:
  margin:
    bottom: 60
  max_airlines: 25
map:
  translate_x: 500
routes:
  airline: "4296"
server:
  port: 8888
  host: "127.0.0.1"
security:
  cors_origins:
    - "https://maps.example"
logging:
  level: "warn"
`)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Data.RoutesPath != "https://example.com/routes.csv" || cfg.Data.BoundariesPath != "world.geojson" {
		t.Errorf("Data = %+v", cfg.Data)
	}
	if cfg.Chart.Margin.Bottom != 60 || cfg.Chart.Margin.Left != 160 {
		t.Errorf("Chart.Margin = %+v", cfg.Chart.Margin)
	}
	if cfg.Chart.MaxAirlines != 25 || cfg.Map.TranslateX != 500 || cfg.Routes.Airline != "4296" {
		t.Errorf("Chart.MaxAirlines=%d Map.TranslateX=%v Routes.Airline=%q",
			cfg.Chart.MaxAirlines, cfg.Map.TranslateX, cfg.Routes.Airline)
	}
	if cfg.Server.Addr() != "127.0.0.1:8888" {
		t.Errorf("Server.Addr() = %q", cfg.Server.Addr())
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "https://maps.example" {
		t.Errorf("Security.CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
}

// TestLoadWithKoanfEnvOverridesFile tests that env vars override config file
func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	clearConfigEnv(t)
	writeConfig(t, `
server:
  port: 8888
logging:
  level: "warn"
`)
	t.Setenv("HTTP_PORT", "7777")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 7777 {
		t.Errorf("Server.Port = %d, want 7777 (env wins)", cfg.Server.Port)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn (from file)", cfg.Logging.Level)
	}
}

// TestLoadWithKoanfValidation tests that invalid configuration is rejected
func TestLoadWithKoanfValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"invalid port", map[string]string{"HTTP_PORT": "70000"}, "Port"},
		{"invalid engine", map[string]string{"TABLE_ENGINE": "sqlite"}, "TableEngine"},
		{"invalid routes location", map[string]string{"ROUTES_PATH": "s3://bucket/routes.csv"}, "RoutesPath"},
		{"padding too large", map[string]string{"CHART_BAND_PADDING": "1"}, "BandPadding"},
		{"negative outer padding", map[string]string{"CHART_BAND_OUTER_PADDING": "-0.5"}, "BandOuterPadding"},
		{"zero map scale", map[string]string{"MAP_SCALE": "0"}, "Scale"},
		{"invalid sort order", map[string]string{"CHART_SORT_ORDER": "random"}, "SortOrder"},
		{"margins too wide", map[string]string{"CHART_MARGIN_LEFT": "790"}, "drawing area"},
		{"invalid log level", map[string]string{"LOG_LEVEL": "verbose"}, "LOG_LEVEL"},
		{"invalid log format", map[string]string{"LOG_FORMAT": "xml"}, "Format"},
		{"rate limit too low", map[string]string{"RATE_LIMIT_REQUESTS": "0"}, "RATE_LIMIT_REQUESTS"},
		{"short remote timeout", map[string]string{"REMOTE_TIMEOUT": "10ms"}, "RemoteTimeout"},
		{"short probe interval", map[string]string{"PROBE_INTERVAL": "100ms"}, "ProbeInterval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			t.Chdir(t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadWithKoanf()
			if err == nil {
				t.Fatal("LoadWithKoanf() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ErrorTypes(t *testing.T) {
	cfg := defaultConfig()
	cfg.Map.Width = 0
	err := cfg.Validate()
	var verr *validation.RequestValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %T %v, want *validation.RequestValidationError", err, err)
	}
	if got := verr.Errors()[0].Path(); got != "Map.Width" {
		t.Errorf("Path() = %q, want Map.Width", got)
	}

	cfg = defaultConfig()
	cfg.Chart.Margin.Top = 590
	if err := cfg.Validate(); !errors.Is(err, models.ErrConfiguration) || !errors.Is(err, scale.ErrEmptyBody) {
		t.Errorf("err = %v, want wrapped configuration error", err)
	}

	cfg = defaultConfig()
	cfg.Security.RateLimitDisabled = true
	cfg.Security.RateLimitReqs = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled rate limit should skip bounds: %v", err)
	}
}
