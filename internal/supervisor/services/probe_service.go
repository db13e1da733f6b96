// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package services

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/flightmap/internal/logging"
	"github.com/tomtom215/flightmap/internal/metrics"
)

// Prober checks that a dataset location is readable. *loader.Loader
// satisfies it.
type Prober interface {
	Stat(ctx context.Context, dataset, location string) error
}

// DatasetTarget is one dataset to probe.
type DatasetTarget struct {
	Name     string // metric label, e.g. "routes"
	Location string // file path, http(s):// or gs:// URL
}

// DatasetStatus is the last probe outcome for one target.
type DatasetStatus struct {
	Reachable bool
	CheckedAt time.Time
	Err       string
}

// DatasetProbeService periodically stats each dataset and publishes the
// result on the dataset_reachable gauge. Probe failures are logged, never
// returned: an unreachable bucket is a state to report, not a crash.
type DatasetProbeService struct {
	prober   Prober
	interval time.Duration
	timeout  time.Duration
	targets  []DatasetTarget

	mu     sync.RWMutex
	status map[string]DatasetStatus
}

// NewDatasetProbeService creates a probe service. Non-positive interval
// and timeout default to one minute and ten seconds.
func NewDatasetProbeService(p Prober, interval, timeout time.Duration, targets ...DatasetTarget) *DatasetProbeService {
	if interval <= 0 {
		interval = time.Minute
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &DatasetProbeService{
		prober:   p,
		interval: interval,
		timeout:  timeout,
		targets:  targets,
		status:   make(map[string]DatasetStatus, len(targets)),
	}
}

// Serve implements suture.Service. The first probe runs immediately.
func (s *DatasetProbeService) Serve(ctx context.Context) error {
	s.probeAll(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.probeAll(ctx)
		}
	}
}

func (s *DatasetProbeService) probeAll(ctx context.Context) {
	for _, target := range s.targets {
		if target.Location == "" {
			continue
		}
		if ctx.Err() != nil {
			return
		}
		s.probe(ctx, target)
	}
}

func (s *DatasetProbeService) probe(ctx context.Context, target DatasetTarget) {
	probeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	err := s.prober.Stat(probeCtx, target.Name, target.Location)
	cancel()

	next := DatasetStatus{Reachable: err == nil, CheckedAt: time.Now()}
	if err != nil {
		next.Err = err.Error()
	}

	s.mu.Lock()
	prev, seen := s.status[target.Name]
	s.status[target.Name] = next
	s.mu.Unlock()

	metrics.RecordDatasetProbe(target.Name, next.Reachable)

	// Only transitions are logged.
	if seen && prev.Reachable == next.Reachable {
		return
	}
	if err != nil {
		logging.Warn().Err(err).
			Str("dataset", target.Name).
			Str("location", logging.SanitizeLocation(target.Location)).
			Msg("Dataset unreachable")
		return
	}
	logging.Info().
		Str("dataset", target.Name).
		Str("location", logging.SanitizeLocation(target.Location)).
		Msg("Dataset reachable")
}

// Status returns a copy of the last probe outcome per dataset name.
func (s *DatasetProbeService) Status() map[string]DatasetStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]DatasetStatus, len(s.status))
	for k, v := range s.status {
		out[k] = v
	}
	return out
}

func (s *DatasetProbeService) String() string {
	return "dataset-probe"
}
