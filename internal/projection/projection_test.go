// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package projection

import (
	"errors"
	"math"
	"testing"

	"github.com/tomtom215/flightmap/internal/models"
)

func TestMercator_OriginMapsToTranslation(t *testing.T) {
	t.Parallel()

	m := Mercator{Scale: 150, TranslateX: 480, TranslateY: 300}
	p, err := m.Project(0, 0)
	if err != nil {
		t.Fatalf("Project(0,0): %v", err)
	}
	if p.X != 480 || p.Y != 300 {
		t.Errorf("Project(0,0) = (%v,%v), want exactly (480,300)", p.X, p.Y)
	}
}

func TestMercator_ReferencePoints(t *testing.T) {
	t.Parallel()

	m := Mercator{Scale: 100, TranslateX: 0, TranslateY: 0}

	tests := []struct {
		name  string
		lon   float64
		lat   float64
		wantX float64
		wantY float64
	}{
		{"antimeridian east", 180, 0, 100 * math.Pi, 0},
		{"antimeridian west", -180, 0, -100 * math.Pi, 0},
		{"45 north", 0, 45, 0, -100 * math.Log(math.Tan(math.Pi/4+math.Pi/8))},
		{"45 south", 0, -45, 0, 100 * math.Log(math.Tan(math.Pi/4+math.Pi/8))},
		{"sydney", 151.177, -33.946, 100 * 151.177 * math.Pi / 180,
			-100 * math.Log(math.Tan(math.Pi/4+(-33.946*math.Pi/180)/2))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := m.Project(tt.lon, tt.lat)
			if err != nil {
				t.Fatalf("Project: %v", err)
			}
			if math.Abs(p.X-tt.wantX) > 1e-9 || math.Abs(p.Y-tt.wantY) > 1e-9 {
				t.Errorf("Project(%v,%v) = (%v,%v), want (%v,%v)", tt.lon, tt.lat, p.X, p.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestMercator_NorthIsUp(t *testing.T) {
	t.Parallel()

	m := Mercator{Scale: 150, TranslateX: 480, TranslateY: 300}
	north, _ := m.Project(0, 60)
	south, _ := m.Project(0, -60)
	if !(north.Y < 300 && south.Y > 300) {
		t.Errorf("north.Y=%v south.Y=%v, want north above origin and south below", north.Y, south.Y)
	}
}

func TestMercator_OutOfDomain(t *testing.T) {
	t.Parallel()

	m := Mercator{Scale: 150, TranslateX: 480, TranslateY: 300}

	tests := []struct {
		name string
		lon  float64
		lat  float64
	}{
		{"north pole", 0, 90},
		{"south pole", 0, -90},
		{"lat too large", 0, 91},
		{"lon too large", 180.5, 0},
		{"lon too small", -181, 0},
		{"nan lat", 0, math.NaN()},
		{"nan lon", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := m.Project(tt.lon, tt.lat)
			if !errors.Is(err, ErrOutOfDomain) {
				t.Fatalf("expected ErrOutOfDomain, got %v", err)
			}
			if !errors.Is(err, models.ErrConfiguration) {
				t.Errorf("expected a configuration error, got %T", err)
			}
			if !math.IsNaN(p.X) || !math.IsNaN(p.Y) {
				t.Errorf("expected sentinel point, got %+v", p)
			}
		})
	}
}

func TestMercator_ProjectCoordinates(t *testing.T) {
	t.Parallel()

	m := Mercator{Scale: 1}
	if _, err := m.ProjectCoordinates(models.ParseCoordinate("x"), models.NewCoordinate(0)); !errors.Is(err, ErrOutOfDomain) {
		t.Errorf("unusable longitude: expected ErrOutOfDomain, got %v", err)
	}
	if _, err := m.ProjectCoordinates(models.NewCoordinate(10), models.NewCoordinate(10)); err != nil {
		t.Errorf("usable pair: %v", err)
	}
}

func TestMercator_InvertRoundTrip(t *testing.T) {
	t.Parallel()

	m := Mercator{Scale: 150, TranslateX: 480, TranslateY: 300}
	for _, pt := range [][2]float64{{0, 0}, {-73.78, 40.64}, {151.18, -33.95}, {179.9, 85}} {
		p, err := m.Project(pt[0], pt[1])
		if err != nil {
			t.Fatalf("Project(%v): %v", pt, err)
		}
		lon, lat, err := m.Invert(p.X, p.Y)
		if err != nil {
			t.Fatalf("Invert: %v", err)
		}
		if math.Abs(lon-pt[0]) > 1e-9 || math.Abs(lat-pt[1]) > 1e-9 {
			t.Errorf("round trip %v -> (%v,%v)", pt, lon, lat)
		}
	}

	if _, _, err := (Mercator{}).Invert(1, 1); !errors.Is(err, ErrZeroScale) {
		t.Errorf("expected ErrZeroScale, got %v", err)
	}
}

func TestGreatCircleKm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want, tolerance        float64
	}{
		{"same point", 51.47, -0.45, 51.47, -0.45, 0, 1e-9},
		{"quarter meridian", 0, 0, 90, 0, math.Pi / 2 * EarthRadiusKm, 1e-6},
		{"LHR to JFK", 51.4706, -0.461941, 40.6398, -73.7789, 5539.65, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GreatCircleKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("GreatCircleKm = %v, want %v ± %v", got, tt.want, tt.tolerance)
			}
		})
	}
}

func TestRouteDistanceKm(t *testing.T) {
	t.Parallel()

	r := models.RouteRecord{
		SourceLatitude: models.NewCoordinate(0), SourceLongitude: models.NewCoordinate(0),
		DestLatitude: models.NewCoordinate(0), DestLongitude: models.NewCoordinate(90),
	}
	d, ok := RouteDistanceKm(&r)
	if !ok || math.Abs(d-math.Pi/2*EarthRadiusKm) > 1e-6 {
		t.Errorf("RouteDistanceKm = %v,%v", d, ok)
	}

	r.DestLatitude = models.Unusable()
	if _, ok := RouteDistanceKm(&r); ok {
		t.Error("expected unusable route distance")
	}
}
