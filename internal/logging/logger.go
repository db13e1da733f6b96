// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	// Level is one of trace, debug, info, warn, error, fatal, panic or
	// disabled. Unknown levels fall back to info.
	Level string

	// Format is json or console.
	Format string

	// Caller adds file:line to every entry.
	Caller bool

	// Timestamp adds an RFC 3339 "time" field.
	Timestamp bool

	// Output defaults to os.Stderr.
	Output io.Writer
}

// DefaultConfig is the configuration used before Init is called.
func DefaultConfig() Config {
	return Config{
		Level:     "info",
		Format:    "json",
		Timestamp: true,
		Output:    os.Stderr,
	}
}

// levels maps accepted level names to zerolog levels.
var levels = map[string]zerolog.Level{
	"trace":    zerolog.TraceLevel,
	"debug":    zerolog.DebugLevel,
	"info":     zerolog.InfoLevel,
	"warn":     zerolog.WarnLevel,
	"warning":  zerolog.WarnLevel,
	"error":    zerolog.ErrorLevel,
	"fatal":    zerolog.FatalLevel,
	"panic":    zerolog.PanicLevel,
	"disabled": zerolog.Disabled,
}

func parseLevel(level string) zerolog.Level {
	if l, ok := levels[strings.ToLower(strings.TrimSpace(level))]; ok {
		return l
	}
	return zerolog.InfoLevel
}

// ValidLevel reports whether level names a known log level.
func ValidLevel(level string) bool {
	_, ok := levels[strings.ToLower(strings.TrimSpace(level))]
	return ok
}

// global holds the process logger. Readers never block writers.
var global atomic.Pointer[zerolog.Logger]

//nolint:gochecknoinits // logging must work before Init is called
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFieldName = "time"
	zerolog.LevelFieldName = "level"
	zerolog.MessageFieldName = "message"
	zerolog.ErrorFieldName = "error"
	zerolog.CallerFieldName = "caller"
	Init(DefaultConfig())
}

// Init replaces the global logger. Safe to call more than once.
func Init(cfg Config) {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	ctx := zerolog.New(out).With()
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	SetLogger(ctx.Logger())
}

// Logger returns a copy of the global logger.
func Logger() zerolog.Logger {
	return *global.Load()
}

// SetLogger replaces the global logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func SetLogger(l zerolog.Logger) {
	global.Store(&l)
}

// With starts a child logger context:
//
//	l := logging.With().Str("component", "loader").Logger()
func With() zerolog.Context { return global.Load().With() }

// Debug starts a debug entry.
func Debug() *zerolog.Event { return global.Load().Debug() }

// Info starts an info entry.
//
//	logging.Info().Str("addr", addr).Msg("HTTP server listening")
func Info() *zerolog.Event { return global.Load().Info() }

// Warn starts a warn entry.
func Warn() *zerolog.Event { return global.Load().Warn() }

// Error starts an error entry.
func Error() *zerolog.Event { return global.Load().Error() }

// Fatal starts a fatal entry; Msg exits the process with status 1.
func Fatal() *zerolog.Event { return global.Load().Fatal() }

// Err starts an error entry carrying err, or an info entry when err is nil.
func Err(err error) *zerolog.Event { return global.Load().Err(err) }

// GetLevel returns the global minimum level.
func GetLevel() zerolog.Level {
	return zerolog.GlobalLevel()
}

// SetLevelString sets the global minimum level by name.
func SetLevelString(level string) {
	zerolog.SetGlobalLevel(parseLevel(level))
}
