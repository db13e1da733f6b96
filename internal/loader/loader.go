// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/flightmap/internal/logging"
	"github.com/tomtom215/flightmap/internal/metrics"
	"github.com/tomtom215/flightmap/internal/models"
)

// Table engines.
const (
	EngineCSV    = "csv"
	EngineDuckDB = "duckdb"
)

// Config configures a Loader.
type Config struct {
	// Engine selects the route table parser: "csv" or "duckdb".
	Engine string
	// RemoteTimeout bounds each HTTP request.
	RemoteTimeout time.Duration
	// GCSAnonymous reads gs:// locations without credentials.
	GCSAnonymous bool
}

// DatasetLoader is what the pipeline needs from a loader.
type DatasetLoader interface {
	LoadTable(ctx context.Context, location string) ([]models.RouteRecord, CoercionReport, error)
	LoadGeo(ctx context.Context, location string) (*models.FeatureCollection, error)
}

// Loader resolves dataset locations to sources and parses what they return.
// It is safe for concurrent use.
type Loader struct {
	engine string
	file   FileSource
	http   *HTTPSource
	gcs    *GCSSource
}

// New creates a Loader.
func New(cfg Config) (*Loader, error) {
	engine := strings.ToLower(strings.TrimSpace(cfg.Engine))
	if engine == "" {
		engine = EngineCSV
	}
	if engine != EngineCSV && engine != EngineDuckDB {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEngine, cfg.Engine)
	}
	timeout := cfg.RemoteTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Loader{
		engine: engine,
		http:   NewHTTPSource(timeout),
		gcs:    NewGCSSource(cfg.GCSAnonymous),
	}, nil
}

// Engine returns the configured table engine.
func (l *Loader) Engine() string { return l.engine }

// Close releases remote clients.
func (l *Loader) Close() error {
	return l.gcs.Close()
}

func (l *Loader) source(location string) Source {
	switch KindOf(location) {
	case KindHTTP:
		return l.http
	case KindGCS:
		return l.gcs
	default:
		return l.file
	}
}

// Stat checks that location is reachable without reading it. Failures are
// LoadErrors naming dataset.
func (l *Loader) Stat(ctx context.Context, dataset, location string) error {
	if strings.TrimSpace(location) == "" {
		return loadError(dataset, location, ErrEmptyLocation)
	}
	if err := l.source(location).Stat(ctx, location); err != nil {
		return loadError(dataset, location, err)
	}
	return nil
}

// open returns a decompressed, byte-counting reader for location.
func (l *Loader) open(ctx context.Context, location string) (*countingReader, io.ReadCloser, error) {
	src := l.source(location)
	rc, err := src.Open(ctx, location)
	if err != nil {
		return nil, nil, err
	}
	counter := &countingReader{ReadCloser: rc}
	body, err := maybeDecompress(location, counter)
	if err != nil {
		return nil, nil, err
	}
	return counter, body, nil
}

// LoadTable reads the route table at location. Coordinate fields that are
// not numbers do not fail the load; they are counted in the report.
func (l *Loader) LoadTable(ctx context.Context, location string) (records []models.RouteRecord, report CoercionReport, err error) {
	if strings.TrimSpace(location) == "" {
		return nil, CoercionReport{}, loadError(DatasetRoutes, location, ErrEmptyLocation)
	}
	kind := KindOf(location)

	if l.engine == EngineDuckDB && kind == KindFile && !strings.HasSuffix(strings.ToLower(location), ".gz") {
		records, report, err = DuckDBTable{}.Read(ctx, filePath(location))
		l.recordRequest(kind, location, 0, err)
		if err != nil {
			return nil, CoercionReport{}, loadError(DatasetRoutes, location, err)
		}
		return records, report, nil
	}

	counter, body, err := l.open(ctx, location)
	if err != nil {
		l.recordRequest(kind, location, 0, err)
		return nil, CoercionReport{}, loadError(DatasetRoutes, location, err)
	}
	defer body.Close()

	switch l.engine {
	case EngineDuckDB:
		records, report, err = l.readDuckDBStream(ctx, body)
	default:
		records, report, err = readCSVTable(body)
	}
	l.recordRequest(kind, location, counter.n, err)
	if err != nil {
		return nil, CoercionReport{}, loadError(DatasetRoutes, location, err)
	}
	return records, report, nil
}

func (l *Loader) readDuckDBStream(ctx context.Context, r io.Reader) ([]models.RouteRecord, CoercionReport, error) {
	path, err := spool(r, ".csv")
	if err != nil {
		return nil, CoercionReport{}, fmt.Errorf("spool: %w", err)
	}
	defer os.Remove(path)
	return DuckDBTable{}.Read(ctx, path)
}

// LoadGeo reads the GeoJSON FeatureCollection at location.
func (l *Loader) LoadGeo(ctx context.Context, location string) (*models.FeatureCollection, error) {
	if strings.TrimSpace(location) == "" {
		return nil, loadError(DatasetBoundaries, location, ErrEmptyLocation)
	}
	kind := KindOf(location)

	counter, body, err := l.open(ctx, location)
	if err != nil {
		l.recordRequest(kind, location, 0, err)
		return nil, loadError(DatasetBoundaries, location, err)
	}
	defer body.Close()

	fc, err := readFeatureCollection(body)
	l.recordRequest(kind, location, counter.n, err)
	if err != nil {
		return nil, loadError(DatasetBoundaries, location, err)
	}
	return fc, nil
}

func (l *Loader) recordRequest(kind, location string, n int64, err error) {
	metrics.RecordLoaderRequest(kind, n, err)
	if err != nil {
		logging.Debug().Err(err).Str("source", kind).
			Str("location", logging.SanitizeLocation(location)).Msg("Dataset request failed")
	}
}

// Dataset is the joined result of one load stage.
type Dataset struct {
	Routes     []models.RouteRecord
	Coercion   CoercionReport
	Boundaries *models.FeatureCollection

	RoutesElapsed     time.Duration
	BoundariesElapsed time.Duration
}

// LoadAll loads the route table and, when boundariesLocation is set, the
// boundary collection concurrently. It returns once both have finished or
// one has failed; a failure cancels the other load.
func LoadAll(ctx context.Context, dl DatasetLoader, routesLocation, boundariesLocation string) (*Dataset, error) {
	if dl == nil {
		return nil, errors.New("loader is nil")
	}

	var ds Dataset
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		start := time.Now()
		records, report, err := dl.LoadTable(gctx, routesLocation)
		if err != nil {
			return err
		}
		ds.Routes, ds.Coercion, ds.RoutesElapsed = records, report, time.Since(start)
		return nil
	})

	if strings.TrimSpace(boundariesLocation) != "" {
		g.Go(func() error {
			start := time.Now()
			fc, err := dl.LoadGeo(gctx, boundariesLocation)
			if err != nil {
				return err
			}
			ds.Boundaries, ds.BoundariesElapsed = fc, time.Since(start)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ds, nil
}
