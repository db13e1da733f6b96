// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package render

import (
	"fmt"
	"io"
	"sync"

	"github.com/goccy/go-json"

	"github.com/tomtom215/flightmap/internal/models"
	"github.com/tomtom215/flightmap/internal/projection"
)

// Polygon is a projected boundary feature.
type Polygon struct {
	Key   string `json:"key,omitempty"`
	Paths []Path `json:"paths"`
}

// RecordedSurface holds everything drawn on one surface.
type RecordedSurface struct {
	Surface  models.SurfaceSpec `json:"surface"`
	Polygons []Polygon          `json:"polygons,omitempty"`
	Bars     []models.Bar       `json:"bars,omitempty"`
	Points   []models.Point     `json:"points,omitempty"`
	Lines    []models.Line      `json:"lines,omitempty"`
	Axes     []models.Axis      `json:"axes,omitempty"`

	owner *SceneRecorder
}

// Spec implements Surface.
func (s *RecordedSurface) Spec() models.SurfaceSpec { return s.Surface }

// SceneRecorder is a Renderer that records draw calls.
type SceneRecorder struct {
	mu       sync.Mutex
	surfaces []*RecordedSurface
}

// NewSceneRecorder creates an empty recorder.
func NewSceneRecorder() *SceneRecorder {
	return &SceneRecorder{}
}

// CreateSurface implements Renderer.
func (r *SceneRecorder) CreateSurface(spec models.SurfaceSpec) (Surface, error) {
	if err := checkSpec(spec); err != nil {
		return nil, err
	}
	s := &RecordedSurface{Surface: spec, owner: r}
	r.mu.Lock()
	r.surfaces = append(r.surfaces, s)
	r.mu.Unlock()
	return s, nil
}

func (r *SceneRecorder) own(s Surface) (*RecordedSurface, error) {
	rs, ok := s.(*RecordedSurface)
	if !ok || rs.owner != r {
		return nil, ErrForeignSurface
	}
	return rs, nil
}

// DrawBars implements Renderer.
func (r *SceneRecorder) DrawBars(s Surface, bars []models.Bar) error {
	rs, err := r.own(s)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rs.Bars = append(rs.Bars, bars...)
	return nil
}

// DrawPoints implements Renderer.
func (r *SceneRecorder) DrawPoints(s Surface, points []models.Point) error {
	rs, err := r.own(s)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rs.Points = append(rs.Points, points...)
	return nil
}

// DrawLines implements Renderer.
func (r *SceneRecorder) DrawLines(s Surface, lines []models.Line) error {
	rs, err := r.own(s)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rs.Lines = append(rs.Lines, lines...)
	return nil
}

// DrawAxis implements Renderer.
func (r *SceneRecorder) DrawAxis(s Surface, axis models.Axis) error {
	rs, err := r.own(s)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rs.Axes = append(rs.Axes, axis)
	return nil
}

// DrawPolygons implements Renderer.
func (r *SceneRecorder) DrawPolygons(s Surface, features []models.Feature, project projection.Func) error {
	rs, err := r.own(s)
	if err != nil {
		return err
	}
	polygons := make([]Polygon, 0, len(features))
	for i := range features {
		paths, err := featurePaths(&features[i], project)
		if err != nil {
			return fmt.Errorf("feature %d: %w", i, err)
		}
		if len(paths) == 0 {
			continue
		}
		polygons = append(polygons, Polygon{Key: featureKey(&features[i]), Paths: paths})
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rs.Polygons = append(rs.Polygons, polygons...)
	return nil
}

// Surfaces returns the recorded surfaces in creation order.
func (r *SceneRecorder) Surfaces() []*RecordedSurface {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*RecordedSurface, len(r.surfaces))
	copy(out, r.surfaces)
	return out
}

// Surface returns the first recorded surface with name, or nil.
func (r *SceneRecorder) Surface(name string) *RecordedSurface {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.surfaces {
		if s.Surface.Name == name {
			return s
		}
	}
	return nil
}

// WriteJSON writes the recorded surfaces as a JSON object.
func (r *SceneRecorder) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Surfaces []*RecordedSurface `json:"surfaces"`
	}{Surfaces: r.Surfaces()})
}
