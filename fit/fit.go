/*
DESCRIPTION
  fit.go provides functions for fitting a polynomial to a dataset, including
  the straight line regression drawn over boxplots.

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

// Package fit provides least squares polynomial fitting and the coefficient
// of determination of a fit.
package fit

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Line is a straight line fit y = Slope*x + Intercept.
type Line struct {
	Slope, Intercept float64

	// RSquared is the coefficient of determination of the fit. It is zero
	// when the fitted values have no variance.
	RSquared float64
}

// At returns the value of the line at x.
func (l Line) At(x float64) float64 {
	return l.Slope*x + l.Intercept
}

// Linear fits a straight line to the data provided in x and y using ordinary
// least squares.
func Linear(x, y []float64) (Line, error) {
	fitted, c, err := Poly(x, y, 1)
	if err != nil {
		return Line{}, err
	}
	return Line{
		Slope:     c.AtVec(1),
		Intercept: c.AtVec(0),
		RSquared:  RSquared(y, fitted),
	}, nil
}

// Poly fits a polynomial of degree to the data provided in x and y. The y
// values corresponding to the fit, along with the coefficients of the
// matched polynomial in increasing order of power, are returned.
func Poly(x, y []float64, degree int) ([]float64, *mat.VecDense, error) {
	if degree < 0 {
		return nil, nil, fmt.Errorf("invalid polynomial degree: %d", degree)
	}
	if len(x) != len(y) {
		return nil, nil, fmt.Errorf("length mismatch: %d x values, %d y values", len(x), len(y))
	}
	if len(x) <= degree {
		return nil, nil, fmt.Errorf("need more than %d points, have %d", degree, len(x))
	}
	if n := distinct(x); n <= degree {
		return nil, nil, fmt.Errorf("need more than %d distinct x values, have %d", degree, n)
	}

	a := vandermonde(x, degree)
	b := mat.NewVecDense(len(y), y)
	c := mat.NewVecDense(degree+1, nil)

	qr := new(mat.QR)
	qr.Factorize(a)

	err := qr.SolveVecTo(c, false, b)
	if err != nil {
		return nil, nil, fmt.Errorf("could not solve QR: %w", err)
	}
	if floats.HasNaN(c.RawVector().Data) {
		return nil, nil, errors.New("could not solve QR: singular system")
	}

	fitted := make([]float64, len(x))
	for i, v := range x {
		// Horner's rule.
		for j := degree; j >= 0; j-- {
			fitted[i] = fitted[i]*v + c.AtVec(j)
		}
	}
	return fitted, c, nil
}

// RSquared returns 1 - SSres/SStot for observed values y and fitted values.
// When all of y are identical SStot is zero and RSquared returns zero.
func RSquared(y, fitted []float64) float64 {
	if len(y) == 0 || floats.Max(y) == floats.Min(y) {
		return 0
	}
	mean := stat.Mean(y, nil)
	var ssRes, ssTot float64
	for i, v := range y {
		r := v - fitted[i]
		ssRes += r * r
		d := v - mean
		ssTot += d * d
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}

// distinct returns the number of distinct values in s.
func distinct(s []float64) int {
	sorted := make([]float64, len(s))
	copy(sorted, s)
	sort.Float64s(sorted)
	n := 0
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			n++
		}
	}
	return n
}

// vandermonde calculates the vandermonde matrix for set a and the given degree.
func vandermonde(a []float64, degree int) *mat.Dense {
	x := mat.NewDense(len(a), degree+1, nil)
	for i := range a {
		for j, p := 0, 1.0; j <= degree; j, p = j+1, p*a[i] {
			x.Set(i, j, p)
		}
	}
	return x
}
