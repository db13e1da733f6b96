// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/flightmap/internal/aggregate"
	"github.com/tomtom215/flightmap/internal/loader"
	"github.com/tomtom215/flightmap/internal/logging"
	"github.com/tomtom215/flightmap/internal/metrics"
	"github.com/tomtom215/flightmap/internal/models"
	"github.com/tomtom215/flightmap/internal/projection"
	"github.com/tomtom215/flightmap/internal/render"
	"github.com/tomtom215/flightmap/internal/scale"
)

// Stage names, used in logs and the pipeline_duration_seconds metric.
const (
	StageLoad      = "load"
	StageAggregate = "aggregate"
	StageLayout    = "layout"
	StageDraw      = "draw"
)

// ErrNilRenderer is returned by Run without a renderer.
var ErrNilRenderer = errors.New("renderer is nil")

// Coordinator runs the pipeline against a loader. It holds no per-run
// state and is safe for concurrent use.
type Coordinator struct {
	loader loader.DatasetLoader
	log    *logging.RunLogger
}

// NewCoordinator creates a Coordinator.
func NewCoordinator(dl loader.DatasetLoader) *Coordinator {
	return &Coordinator{loader: dl, log: logging.NewRunLogger()}
}

// withRunID returns ctx carrying a run ID, creating one if needed.
func withRunID(ctx context.Context) context.Context {
	if logging.RunIDFromContext(ctx) != "" {
		return ctx
	}
	return logging.ContextWithNewRunID(ctx)
}

// Compute loads, aggregates and lays out one run without drawing.
func (c *Coordinator) Compute(ctx context.Context, opts Options) (*Scene, error) {
	ctx = withRunID(ctx)
	start := time.Now()

	scene, stage, err := c.compute(ctx, &opts)
	if err != nil {
		c.log.LogRunFailed(ctx, stage, err)
		metrics.RecordPipelineRun("failure", time.Since(start))
		return nil, err
	}
	c.log.LogRunFinished(ctx, len(scene.Airlines), len(scene.Airports), len(scene.Map.Lines), time.Since(start))
	metrics.RecordPipelineRun("success", time.Since(start))
	return scene, nil
}

// Run computes a scene and draws it with r. Nothing is drawn unless every
// position was computed.
func (c *Coordinator) Run(ctx context.Context, opts Options, r render.Renderer) (*Scene, error) {
	if r == nil {
		return nil, ErrNilRenderer
	}
	ctx = withRunID(ctx)
	start := time.Now()

	scene, stage, err := c.compute(ctx, &opts)
	if err == nil {
		stage = StageDraw
		drawStart := time.Now()
		err = Draw(r, scene)
		metrics.RecordStage(StageDraw, time.Since(drawStart))
	}
	if err != nil {
		c.log.LogRunFailed(ctx, stage, err)
		metrics.RecordPipelineRun("failure", time.Since(start))
		return nil, err
	}

	c.log.LogRunFinished(ctx, len(scene.Airlines), len(scene.Airports), len(scene.Map.Lines), time.Since(start))
	metrics.RecordPipelineRun("success", time.Since(start))
	return scene, nil
}

// compute returns the scene, or the failing stage and its error.
func (c *Coordinator) compute(ctx context.Context, opts *Options) (*Scene, string, error) {
	if c.loader == nil {
		return nil, StageLoad, errors.New("coordinator has no loader")
	}
	if err := opts.Chart.Layout.Validate(); err != nil {
		return nil, StageLayout, err
	}
	if opts.Order == "" {
		opts.Order = aggregate.Descending
	}

	c.log.LogRunStarted(ctx, opts.RoutesPath, opts.BoundariesPath)

	// Load.
	t := time.Now()
	ds, err := loader.LoadAll(ctx, c.loader, opts.RoutesPath, opts.BoundariesPath)
	metrics.RecordStage(StageLoad, time.Since(t))
	if err != nil {
		return nil, StageLoad, err
	}
	c.log.LogDatasetLoaded(ctx, loader.DatasetRoutes, opts.RoutesPath, len(ds.Routes), ds.RoutesElapsed)
	if ds.Boundaries != nil {
		c.log.LogDatasetLoaded(ctx, loader.DatasetBoundaries, opts.BoundariesPath, len(ds.Boundaries.Features), ds.BoundariesElapsed)
	}
	if ds.Coercion.Total() > 0 {
		c.log.LogCoercionWarnings(ctx, ds.Coercion.ByField, ds.Coercion.SampleRows)
		metrics.RecordCoercionWarnings(ds.Coercion.ByField)
	}

	// Aggregate.
	t = time.Now()
	scene := &Scene{
		RunID:    logging.RunIDFromContext(ctx),
		Records:  len(ds.Routes),
		Coercion: ds.Coercion,
		Airlines: aggregate.GroupByAirline(ds.Routes, opts.Order),
		Airports: aggregate.GroupByAirport(ds.Routes),
		Airline:  opts.Airline,
	}
	usable, unusable := aggregate.Positioned(scene.Airports)
	scene.Unpositioned = unusable
	var selected []models.RouteRecord
	if opts.Airline != "" {
		selected = aggregate.RoutesForAirline(ds.Routes, opts.Airline)
	}
	metrics.RecordStage(StageAggregate, time.Since(t))
	metrics.RecordDataset(len(ds.Routes), len(scene.Airlines), len(usable), unusable)

	// Layout.
	t = time.Now()
	chart, err := LayoutChart(scene.Airlines, opts.Chart)
	if err != nil {
		return nil, StageLayout, err
	}
	scene.Chart = *chart
	scene.Map = LayoutMap(usable, opts.Map)
	scene.Map.Boundaries = ds.Boundaries
	scene.Map.Lines, scene.Routes = LayoutRoutes(selected, opts.Map.Projection)
	metrics.RecordStage(StageLayout, time.Since(t))

	return scene, "", nil
}

// LayoutChart positions one bar per airline summary. Bars start at the
// left edge of the body; their length follows the count. Bands are keyed by
// AirlineID so airlines sharing a display name get separate slots; the
// left axis still labels each band with the name.
func LayoutChart(airlines []models.AirlineSummary, opts ChartOptions) (*ChartScene, error) {
	layout := opts.Layout
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	shown := aggregate.TopAirlines(airlines, opts.MaxAirlines)

	x := scale.LinearFromCounts(shown, scale.Interval{Low: 0, High: layout.BodyWidth()})
	y, err := scale.NewBand(aggregate.AirlineIDs(shown), scale.Interval{Low: 0, High: layout.BodyHeight()},
		opts.BandPadding, scale.WithOuterPadding(opts.OuterPadding))
	if err != nil {
		return nil, err
	}

	bars := make([]models.Bar, 0, len(shown))
	for _, a := range shown {
		pos, err := y.Position(a.AirlineID)
		if err != nil {
			return nil, fmt.Errorf("airline %s: %w", a.AirlineID, err)
		}
		bars = append(bars, models.Bar{
			Key:    a.AirlineID,
			Label:  a.AirlineName,
			Count:  a.Count,
			X:      0,
			Y:      pos,
			Width:  x.Map(float64(a.Count)),
			Height: y.Bandwidth(),
		})
	}

	xAxis := x.Axis(opts.TickCount)
	xAxis.Cross = layout.BodyHeight()
	// Band ticks are labelled with AirlineIDs; show the airline names.
	names := make(map[string]string, len(bars))
	for _, b := range bars {
		names[b.Key] = b.Label
	}
	yAxis := y.Axis()
	for i := range yAxis.Ticks {
		yAxis.Ticks[i].Label = names[yAxis.Ticks[i].Label]
	}
	return &ChartScene{
		Surface: layout.Surface(render.SurfaceChart),
		Bars:    bars,
		XAxis:   xAxis,
		YAxis:   yAxis,
	}, nil
}

// LayoutMap projects positioned airports to points. Airports the
// projection rejects are counted, not drawn.
func LayoutMap(airports []models.AirportSummary, opts MapOptions) MapScene {
	scene := MapScene{
		Surface:    models.SurfaceSpec{Name: render.SurfaceMap, Width: opts.Width, Height: opts.Height},
		Projection: opts.Projection,
		Points:     make([]models.Point, 0, len(airports)),
	}
	for i := range airports {
		a := &airports[i]
		if !a.HasPosition() {
			continue
		}
		pt, err := opts.Projection.ProjectCoordinates(a.Longitude, a.Latitude)
		if err != nil {
			scene.Unprojected++
			continue
		}
		scene.Points = append(scene.Points, models.Point{
			Key:   a.AirportID,
			Label: a.Airport,
			Count: a.Count,
			CX:    pt.X,
			CY:    pt.Y,
			R:     opts.PointRadius,
		})
	}
	return scene
}

// LayoutRoutes projects route endpoints to lines and computes per-route
// statistics. Routes with an unusable endpoint get stats but no line.
func LayoutRoutes(routes []models.RouteRecord, m projection.Mercator) ([]models.Line, []models.RouteStats) {
	lines := make([]models.Line, 0, len(routes))
	var stats []models.RouteStats
	for i := range routes {
		r := &routes[i]
		st := models.RouteStats{
			AirlineID:       r.AirlineID,
			SourceAirportID: r.SourceAirportID,
			DestAirportID:   r.DestAirportID,
		}
		if km, ok := projection.RouteDistanceKm(r); ok {
			st.DistanceKm = km
		}

		src, errSrc := m.ProjectCoordinates(r.SourceLongitude, r.SourceLatitude)
		dst, errDst := m.ProjectCoordinates(r.DestLongitude, r.DestLatitude)
		if errSrc == nil && errDst == nil {
			st.Positioned = true
			lines = append(lines, models.Line{
				Key:        r.SourceAirportID + "-" + r.DestAirportID,
				X1:         src.X,
				Y1:         src.Y,
				X2:         dst.X,
				Y2:         dst.Y,
				DistanceKm: st.DistanceKm,
			})
		}
		stats = append(stats, st)
	}
	return lines, stats
}

// Draw sends a computed scene to r: the chart surface with bars and axes,
// then the map surface with boundaries, points and lines.
func Draw(r render.Renderer, scene *Scene) error {
	chart, err := r.CreateSurface(scene.Chart.Surface)
	if err != nil {
		return fmt.Errorf("create chart surface: %w", err)
	}
	if err := r.DrawBars(chart, scene.Chart.Bars); err != nil {
		return fmt.Errorf("draw bars: %w", err)
	}
	if err := r.DrawAxis(chart, scene.Chart.XAxis); err != nil {
		return fmt.Errorf("draw x axis: %w", err)
	}
	if err := r.DrawAxis(chart, scene.Chart.YAxis); err != nil {
		return fmt.Errorf("draw y axis: %w", err)
	}

	world, err := r.CreateSurface(scene.Map.Surface)
	if err != nil {
		return fmt.Errorf("create map surface: %w", err)
	}
	if scene.Map.Boundaries != nil {
		if err := r.DrawPolygons(world, scene.Map.Boundaries.Features, scene.Map.Projection.Func()); err != nil {
			return fmt.Errorf("draw boundaries: %w", err)
		}
	}
	if err := r.DrawPoints(world, scene.Map.Points); err != nil {
		return fmt.Errorf("draw points: %w", err)
	}
	if len(scene.Map.Lines) > 0 {
		if err := r.DrawLines(world, scene.Map.Lines); err != nil {
			return fmt.Errorf("draw lines: %w", err)
		}
	}
	return nil
}
