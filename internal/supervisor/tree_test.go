// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package supervisor

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestSupervisorTreeConstruction(t *testing.T) {
	t.Run("applies default values for zero config", func(t *testing.T) {
		tree, err := NewSupervisorTree(quietLogger(), TreeConfig{})
		if err != nil {
			t.Fatalf("failed to create tree: %v", err)
		}
		if tree.Root() == nil {
			t.Fatal("root supervisor should not be nil")
		}
		if tree.config != DefaultTreeConfig() {
			t.Errorf("config = %+v, want defaults %+v", tree.config, DefaultTreeConfig())
		}
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		tree, err := NewSupervisorTree(quietLogger(), TreeConfig{FailureThreshold: 2, FailureBackoff: time.Second})
		if err != nil {
			t.Fatal(err)
		}
		if tree.config.FailureThreshold != 2 || tree.config.FailureBackoff != time.Second {
			t.Errorf("config = %+v", tree.config)
		}
		if tree.config.ShutdownTimeout != 10*time.Second {
			t.Errorf("ShutdownTimeout = %v, want default 10s", tree.config.ShutdownTimeout)
		}
	})

	t.Run("nil logger falls back to slog default", func(t *testing.T) {
		tree, err := NewSupervisorTree(nil, TreeConfig{})
		if err != nil || tree.logger == nil {
			t.Errorf("tree = %+v, err = %v", tree, err)
		}
	})
}

func TestSupervisorTreeLifecycle(t *testing.T) {
	tree, err := NewSupervisorTree(quietLogger(), TreeConfig{
		FailureBackoff:  100 * time.Millisecond,
		ShutdownTimeout: time.Second,
	})
	if err != nil {
		t.Fatalf("failed to create tree: %v", err)
	}

	dataSvc := NewMockService("mock-data")
	apiSvc := NewMockService("mock-api")
	tree.AddDataService(dataSvc)
	tree.AddAPIService(apiSvc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	deadline := time.After(time.Second)
	for dataSvc.StartCount() < 1 || apiSvc.StartCount() < 1 {
		select {
		case <-deadline:
			t.Fatal("services were not started")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("tree did not shut down in time")
	}

	if dataSvc.StopCount() != 1 || apiSvc.StopCount() != 1 {
		t.Errorf("stops = %d/%d, want 1/1", dataSvc.StopCount(), apiSvc.StopCount())
	}
	if report, err := tree.UnstoppedServiceReport(); err != nil || len(report) != 0 {
		t.Errorf("unstopped = %v, err = %v", report, err)
	}
}

func TestSupervisorTreeFailureIsolation(t *testing.T) {
	tree, _ := NewSupervisorTree(quietLogger(), TreeConfig{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})

	failingSvc := NewMockService("failing-probe")
	failingSvc.SetFailCount(2)
	stableSvc := NewMockService("stable-http")

	tree.AddDataService(failingSvc)
	tree.AddAPIService(stableSvc)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	errCh := tree.ServeBackground(ctx)
	<-errCh

	if failingSvc.StartCount() < 3 {
		t.Errorf("expected at least 3 starts for failing service, got %d", failingSvc.StartCount())
	}
	if stableSvc.StartCount() != 1 {
		t.Errorf("stable service started %d times, want 1", stableSvc.StartCount())
	}
}
