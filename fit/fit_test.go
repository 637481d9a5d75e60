/*
DESCRIPTION
  fit_test.go provides testing for functionality in fit.go.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean)

  It is free software: you can redistribute it and/or modify them
  under the terms of the GNU General Public License as published by the
  Free Software Foundation, either version 3 of the License, or (at your
  option) any later version.

  It is distributed in the hope that it will be useful, but WITHOUT
  ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
  FITNESS FOR A PARTICULAR PURPOSE. See the GNU General Public License
  for more details.

  You should have received a copy of the GNU General Public License
  in gpl.txt.  If not, see http://www.gnu.org/licenses.
*/

package fit

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

const tol = 1e-9

// TestLinear checks that a straight line is recovered from exact and noisy
// data.
func TestLinear(t *testing.T) {
	tests := []struct {
		x, y                    []float64
		slope, intercept, rSqrd float64
	}{
		{
			x:         []float64{1, 2, 3, 4},
			y:         []float64{3, 5, 7, 9},
			slope:     2,
			intercept: 1,
			rSqrd:     1,
		},
		{
			x:         []float64{0, 0, 1, 1},
			y:         []float64{1, 3, 2, 4},
			slope:     1,
			intercept: 2,
			rSqrd:     0.2,
		},
		{
			x:         []float64{-1, 0, 1},
			y:         []float64{4, 1, -2},
			slope:     -3,
			intercept: 1,
			rSqrd:     1,
		},
	}

	for i, test := range tests {
		l, err := Linear(test.x, test.y)
		if err != nil {
			t.Errorf("could not fit data for test %d: %v", i, err)
			continue
		}
		if !scalar.EqualWithinAbs(l.Slope, test.slope, tol) {
			t.Errorf("did not get expected slope for test %d. Got: %v, Want: %v", i, l.Slope, test.slope)
		}
		if !scalar.EqualWithinAbs(l.Intercept, test.intercept, tol) {
			t.Errorf("did not get expected intercept for test %d. Got: %v, Want: %v", i, l.Intercept, test.intercept)
		}
		if !scalar.EqualWithinAbs(l.RSquared, test.rSqrd, tol) {
			t.Errorf("did not get expected R² for test %d. Got: %v, Want: %v", i, l.RSquared, test.rSqrd)
		}
	}
}

// TestIdenticalValues checks that R² is exactly zero when every y value is
// the same, rather than the result of dividing by zero.
func TestIdenticalValues(t *testing.T) {
	for _, v := range []float64{0, 3, 0.1, -7.25} {
		x := []float64{1, 1, 2, 2, 3, 3}
		y := []float64{v, v, v, v, v, v}

		l, err := Linear(x, y)
		if err != nil {
			t.Fatalf("could not fit data: %v", err)
		}
		if l.RSquared != 0 {
			t.Errorf("expected R² of exactly zero for y=%v, got: %v", v, l.RSquared)
		}
		if math.IsNaN(l.Slope) || !scalar.EqualWithinAbs(l.Slope, 0, tol) {
			t.Errorf("expected zero slope for y=%v, got: %v", v, l.Slope)
		}
	}
}

// TestPoly checks a quadratic fit against known coefficients.
func TestPoly(t *testing.T) {
	x := []float64{-2, -1, 0, 1, 2, 3}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = 0.5*v*v - 2*v + 1
	}

	fitted, coeffs, err := Poly(x, y, 2)
	if err != nil {
		t.Fatalf("could not fit data: %v", err)
	}

	want := mat.NewVecDense(3, []float64{1, -2, 0.5})
	if !mat.EqualApprox(coeffs, want, tol) {
		t.Errorf("did not get expected coefficients. Got: %v, Want: %v", mat.Formatted(coeffs.T()), mat.Formatted(want.T()))
	}
	for i := range y {
		if !scalar.EqualWithinAbs(fitted[i], y[i], tol) {
			t.Errorf("did not get expected fitted value %d. Got: %v, Want: %v", i, fitted[i], y[i])
		}
	}
}

// TestFitErrors checks that fits that cannot be solved give errors.
func TestFitErrors(t *testing.T) {
	tests := []struct {
		name string
		x, y []float64
	}{
		{name: "mismatch", x: []float64{1, 2, 3}, y: []float64{1, 2}},
		{name: "too few", x: []float64{1}, y: []float64{1}},
		{name: "constant x", x: []float64{1, 1, 1}, y: []float64{1, 2, 3}},
	}

	for _, test := range tests {
		_, err := Linear(test.x, test.y)
		if err == nil {
			t.Errorf("expected error for test %q", test.name)
		}
	}
}
