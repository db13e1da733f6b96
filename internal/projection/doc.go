// Flightmap - Airline Route Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flightmap

/*
Package projection converts longitude/latitude pairs to surface pixels.

Mercator implements the spherical Mercator projection:

	x = TranslateX + Scale * λ
	y = TranslateY - Scale * atanh(sin φ)

with λ and φ in radians. atanh(sin φ) equals ln(tan(π/4 + φ/2)), the
inverse Gudermannian, and is exactly zero at the equator, so the origin
(0, 0) projects onto (TranslateX, TranslateY) without rounding. Screen y
grows downwards, so northern latitudes get smaller y values.

Positions outside latitude (-90, 90) or longitude [-180, 180], and NaN
inputs, fail with ErrOutOfDomain and the unusable sentinel point.

GreatCircleKm measures route length on the sphere using golang/geo s2.
*/
package projection
