// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package logging

import (
	"context"
	"log/slog"

	"github.com/rs/zerolog"
)

// SlogHandler is a slog.Handler writing to zerolog, for libraries such as
// sutureslog that only speak slog.
type SlogHandler struct {
	logger zerolog.Logger
	// prefix is the dotted group path ("a.b.") applied to new attributes.
	prefix string
	// attrs are already qualified with the prefix in effect when added.
	attrs []qualifiedAttr
}

type qualifiedAttr struct {
	prefix string
	attr   slog.Attr
}

// NewSlogHandler writes through the global logger.
func NewSlogHandler() *SlogHandler {
	return &SlogHandler{logger: Logger()}
}

//nolint:gocritic // zerolog.Logger is passed by value
func NewSlogHandlerWithLogger(logger zerolog.Logger) *SlogHandler {
	return &SlogHandler{logger: logger}
}

// NewSlogLogger is slog.New(NewSlogHandler()).
func NewSlogLogger() *slog.Logger {
	return slog.New(NewSlogHandler())
}

func (h *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	zl := slogToZerologLevel(level)
	return zl >= h.logger.GetLevel() && zl >= zerolog.GlobalLevel()
}

//nolint:gocritic // slog.Handler takes the record by value
func (h *SlogHandler) Handle(ctx context.Context, record slog.Record) error {
	event := h.logger.WithLevel(slogToZerologLevel(record.Level))
	if runID := RunIDFromContext(ctx); runID != "" {
		event = event.Str("run_id", runID)
	}
	for _, qa := range h.attrs {
		event = addAttr(event, qa.attr, qa.prefix)
	}
	record.Attrs(func(a slog.Attr) bool {
		event = addAttr(event, a, h.prefix)
		return true
	})
	event.Msg(record.Message)
	return nil
}

func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := h.clone(len(attrs))
	for _, a := range attrs {
		next.attrs = append(next.attrs, qualifiedAttr{prefix: h.prefix, attr: a})
	}
	return next
}

func (h *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.clone(0)
	next.prefix = h.prefix + name + "."
	return next
}

func (h *SlogHandler) clone(extra int) *SlogHandler {
	attrs := make([]qualifiedAttr, len(h.attrs), len(h.attrs)+extra)
	copy(attrs, h.attrs)
	return &SlogHandler{logger: h.logger, prefix: h.prefix, attrs: attrs}
}

// addAttr writes a under prefix+key. Group values flatten into dotted keys.
func addAttr(event *zerolog.Event, a slog.Attr, prefix string) *zerolog.Event {
	key := prefix + a.Key
	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindString:
		return event.Str(key, v.String())
	case slog.KindInt64:
		return event.Int64(key, v.Int64())
	case slog.KindUint64:
		return event.Uint64(key, v.Uint64())
	case slog.KindFloat64:
		return event.Float64(key, v.Float64())
	case slog.KindBool:
		return event.Bool(key, v.Bool())
	case slog.KindDuration:
		return event.Dur(key, v.Duration())
	case slog.KindTime:
		return event.Time(key, v.Time())
	case slog.KindGroup:
		for _, member := range v.Group() {
			event = addAttr(event, member, key+".")
		}
		return event
	default:
		return event.Interface(key, v.Any())
	}
}

// slogToZerologLevel rounds down to the nearest zerolog level.
func slogToZerologLevel(level slog.Level) zerolog.Level {
	switch {
	case level >= slog.LevelError:
		return zerolog.ErrorLevel
	case level >= slog.LevelWarn:
		return zerolog.WarnLevel
	case level >= slog.LevelInfo:
		return zerolog.InfoLevel
	case level >= slog.LevelDebug:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}
