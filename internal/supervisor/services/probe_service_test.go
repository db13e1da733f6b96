// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/flightmap/internal/logging"
	"github.com/tomtom215/flightmap/internal/metrics"
)

type fakeProber struct {
	mu       sync.Mutex
	down     map[string]bool
	calls    map[string]int
	datasets map[string]string // location -> dataset name passed to Stat
}

func newFakeProber() *fakeProber {
	return &fakeProber{down: map[string]bool{}, calls: map[string]int{}, datasets: map[string]string{}}
}

func (f *fakeProber) Stat(_ context.Context, dataset, location string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[location]++
	f.datasets[location] = dataset
	if f.down[location] {
		return errors.New("no such object")
	}
	return nil
}

func (f *fakeProber) setDown(location string, down bool) {
	f.mu.Lock()
	f.down[location] = down
	f.mu.Unlock()
}

func (f *fakeProber) callCount(location string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[location]
}

func TestDatasetProbeService_Interface(t *testing.T) {
	var _ suture.Service = (*DatasetProbeService)(nil)
}

func TestNewDatasetProbeService_Defaults(t *testing.T) {
	svc := NewDatasetProbeService(newFakeProber(), 0, -1)
	if svc.interval != time.Minute {
		t.Errorf("interval = %v, want 1m", svc.interval)
	}
	if svc.timeout != 10*time.Second {
		t.Errorf("timeout = %v, want 10s", svc.timeout)
	}
	if svc.String() != "dataset-probe" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestDatasetProbeService_ProbeAll(t *testing.T) {
	prober := newFakeProber()
	prober.setDown("gs://bucket/airports.csv", true)

	svc := NewDatasetProbeService(prober, time.Hour, time.Second,
		DatasetTarget{Name: "probe-routes", Location: "data/routes.csv"},
		DatasetTarget{Name: "probe-airports", Location: "gs://bucket/airports.csv"},
		DatasetTarget{Name: "probe-boundaries", Location: ""},
	)
	svc.probeAll(context.Background())

	status := svc.Status()
	if len(status) != 2 {
		t.Fatalf("status has %d entries, want 2 (empty location skipped): %v", len(status), status)
	}
	if !status["probe-routes"].Reachable {
		t.Error("routes should be reachable")
	}
	if st := status["probe-airports"]; st.Reachable || st.Err == "" || st.CheckedAt.IsZero() {
		t.Errorf("airports status = %+v, want unreachable with error", st)
	}

	if got := prober.datasets["gs://bucket/airports.csv"]; got != "probe-airports" {
		t.Errorf("Stat got dataset %q, want probe-airports", got)
	}

	if got := testutil.ToFloat64(metrics.DatasetReachable.WithLabelValues("probe-routes")); got != 1 {
		t.Errorf("routes gauge = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.DatasetReachable.WithLabelValues("probe-airports")); got != 0 {
		t.Errorf("airports gauge = %v, want 0", got)
	}

	prober.setDown("gs://bucket/airports.csv", false)
	svc.probeAll(context.Background())
	if !svc.Status()["probe-airports"].Reachable {
		t.Error("airports should recover after the object reappears")
	}
	if got := testutil.ToFloat64(metrics.DatasetReachable.WithLabelValues("probe-airports")); got != 1 {
		t.Errorf("airports gauge after recovery = %v, want 1", got)
	}
}

func TestDatasetProbeService_LogsRedactedLocation(t *testing.T) {
	var buf bytes.Buffer
	prev := logging.Logger()
	logging.SetLogger(zerolog.New(&buf))
	t.Cleanup(func() { logging.SetLogger(prev) })

	signed := "https://storage.example/routes.csv?X-Goog-Signature=s3cr3t&X-Goog-Expires=900"
	prober := newFakeProber()
	prober.setDown(signed, true)
	svc := NewDatasetProbeService(prober, time.Hour, time.Second,
		DatasetTarget{Name: "signed-routes", Location: signed})

	svc.probeAll(context.Background()) // unreachable
	prober.setDown(signed, false)
	svc.probeAll(context.Background()) // reachable again

	out := buf.String()
	if strings.Contains(out, "s3cr3t") {
		t.Errorf("signature leaked into logs: %s", out)
	}
	if strings.Count(out, "storage.example/routes.csv?REDACTED") != 2 {
		t.Errorf("want both transitions logged with a redacted query: %s", out)
	}
}

func TestDatasetProbeService_Serve(t *testing.T) {
	prober := newFakeProber()
	svc := NewDatasetProbeService(prober, 20*time.Millisecond, time.Second,
		DatasetTarget{Name: "serve-routes", Location: "routes.csv"},
	)

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	err := svc.Serve(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want context.DeadlineExceeded", err)
	}
	// One immediate probe plus several ticks.
	if n := prober.callCount("routes.csv"); n < 3 {
		t.Errorf("probed %d times, want at least 3", n)
	}
}

func TestDatasetProbeService_CanceledBeforeStart(t *testing.T) {
	prober := newFakeProber()
	svc := NewDatasetProbeService(prober, time.Hour, time.Second,
		DatasetTarget{Name: "cancel-routes", Location: "routes.csv"},
	)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
	if n := prober.callCount("routes.csv"); n != 0 {
		t.Errorf("probed %d times after cancellation, want 0", n)
	}
}
