// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

package models

import (
	"math"
	"testing"

	"github.com/goccy/go-json"
)

func TestParseCoordinate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		valid bool
		want  float64
	}{
		{"integer", "12", true, 12},
		{"decimal", "-33.946098", true, -33.946098},
		{"padded", "  151.177002 ", true, 151.177002},
		{"empty", "", false, 0},
		{"whitespace", "   ", false, 0},
		{"text", "abc", false, 0},
		{"null marker", "\\N", false, 0},
		{"nan literal", "NaN", false, 0},
		{"infinity", "Inf", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCoordinate(tt.input)
			if got.Valid != tt.valid {
				t.Fatalf("ParseCoordinate(%q).Valid = %v, want %v", tt.input, got.Valid, tt.valid)
			}
			if tt.valid && got.Value != tt.want {
				t.Errorf("ParseCoordinate(%q) = %v, want %v", tt.input, got.Value, tt.want)
			}
			if !tt.valid && !math.IsNaN(got.Float()) {
				t.Errorf("unusable coordinate Float() = %v, want NaN", got.Float())
			}
		})
	}
}

func TestCoordinateJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(struct {
		A Coordinate `json:"a"`
		B Coordinate `json:"b"`
	}{A: NewCoordinate(1.5), B: Unusable()})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"a":1.5,"b":null}` {
		t.Errorf("got %s", data)
	}

	var decoded struct {
		A Coordinate `json:"a"`
		B Coordinate `json:"b"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !decoded.A.Valid || decoded.A.Value != 1.5 {
		t.Errorf("A = %+v", decoded.A)
	}
	if decoded.B.Valid {
		t.Errorf("B should be unusable, got %+v", decoded.B)
	}
}

func TestRouteFromFields(t *testing.T) {
	t.Parallel()

	row := map[string]string{
		ColAirlineID:       "24",
		ColAirlineName:     "American Airlines",
		ColSourceAirportID: "3830",
		ColSourceAirport:   "Chicago O'Hare International Airport",
		ColSourceLatitude:  "41.9786",
		ColSourceLongitude: "-87.9048",
		ColDestAirportID:   "3830",
		ColDestLatitude:    "bad",
		ColDestLongitude:   "-87.9048",
	}
	r := RouteFromFields(func(c string) string { return row[c] })

	if r.AirlineID != "24" || r.SourceAirportID != "3830" {
		t.Errorf("unexpected ids: %+v", r)
	}
	if !r.HasSourcePosition() {
		t.Error("expected usable source position")
	}
	if r.HasDestPosition() {
		t.Error("expected unusable destination position")
	}
	if !r.IsSelfLoop() {
		t.Error("expected self loop")
	}
	if r.DestCity != "" {
		t.Errorf("missing column should read empty, got %q", r.DestCity)
	}
}
