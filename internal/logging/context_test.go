// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestGenerateRunID(t *testing.T) {
	t.Parallel()

	id1 := GenerateRunID()
	id2 := GenerateRunID()
	if len(id1) != 8 {
		t.Errorf("expected 8-character run ID, got %q", id1)
	}
	if id1 == id2 {
		t.Error("expected unique run IDs")
	}
}

func TestGenerateRequestID(t *testing.T) {
	t.Parallel()

	id := GenerateRequestID()
	if len(id) != 36 {
		t.Errorf("expected 36-character request ID, got %d", len(id))
	}
}

func TestRunIDContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if id := RunIDFromContext(ctx); id != "" {
		t.Errorf("expected empty run ID, got %s", id)
	}

	ctx = ContextWithRunID(ctx, "run12345")
	if id := RunIDFromContext(ctx); id != "run12345" {
		t.Errorf("expected run12345, got %s", id)
	}

	if id := RunIDFromContext(ContextWithNewRunID(context.Background())); len(id) != 8 {
		t.Errorf("expected generated run ID, got %q", id)
	}
}

func TestRequestIDContext(t *testing.T) {
	t.Parallel()

	ctx := ContextWithRequestID(context.Background(), "req-1")
	if id := RequestIDFromContext(ctx); id != "req-1" {
		t.Errorf("expected req-1, got %s", id)
	}
	if id := RequestIDFromContext(context.Background()); id != "" {
		t.Errorf("expected empty request ID, got %s", id)
	}
}

func TestCtx(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), zerolog.New(&buf))
	ctx = ContextWithRunID(ctx, "abcd1234")
	ctx = ContextWithRequestID(ctx, "req-42")

	Ctx(ctx).Info().Msg("with context")

	output := buf.String()
	if !strings.Contains(output, `"run_id":"abcd1234"`) {
		t.Errorf("expected run_id in output: %s", output)
	}
	if !strings.Contains(output, `"request_id":"req-42"`) {
		t.Errorf("expected request_id in output: %s", output)
	}
}

func TestCtxWithoutIDs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), zerolog.New(&buf))

	l := CtxWith(ctx).Str("stage", "load").Logger()
	l.Info().Msg("plain")

	output := buf.String()
	if strings.Contains(output, "run_id") || strings.Contains(output, "request_id") {
		t.Errorf("unexpected ID fields in output: %s", output)
	}
	if !strings.Contains(output, `"stage":"load"`) {
		t.Errorf("expected stage field in output: %s", output)
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	original := Logger()
	defer SetLogger(original)
	SetLogger(zerolog.New(&buf))

	l := WithComponent("render")
	l.Info().Msg("drawn")

	if !strings.Contains(buf.String(), `"component":"render"`) {
		t.Errorf("expected component in output: %s", buf.String())
	}
}
