/*
DESCRIPTION
  clean.go provides the input sanitation applied to requests: non-finite
  value filtering, group selection for boxplots, and image extent selection.

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

package figure

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Errors returned when a request has nothing to draw.
var (
	ErrNoData      = errors.New("no data")
	ErrNoValidData = errors.New("no valid data found (all NaNs or empty)")
	ErrRagged      = errors.New("matrix rows have different lengths")
)

// finite reports whether v is neither NaN nor infinite.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Finite returns the finite values of s in order.
func Finite(s []float64) []float64 {
	out := make([]float64, 0, len(s))
	for _, v := range s {
		if finite(v) {
			out = append(out, v)
		}
	}
	return out
}

// FinitePairs returns the (x, y) pairs in which both values are finite. Pairs
// beyond the shorter of x and y are dropped; truncated reports whether that
// happened.
func FinitePairs(x, y []float64) (xs, ys []float64, truncated bool) {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	truncated = len(x) != len(y)
	xs = make([]float64, 0, n)
	ys = make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if finite(x[i]) && finite(y[i]) {
			xs = append(xs, x[i])
			ys = append(ys, y[i])
		}
	}
	return xs, ys, truncated
}

// CleanGroups removes non-finite values from each group and drops groups left
// empty. The positions of surviving groups are kept; positions past the end
// of the positions slice are skipped. The returned positions are usable only
// if usable is true, which requires one position per surviving group.
// ErrNoData is returned for no groups, and ErrNoValidData if none survive.
func CleanGroups(groups [][]float64, positions []float64) (boxes []Box, usable bool, err error) {
	if len(groups) == 0 {
		return nil, false, ErrNoData
	}

	var pos []float64
	for i, g := range groups {
		c := Finite(g)
		if len(c) == 0 {
			continue
		}
		boxes = append(boxes, Box{Values: c})
		if positions != nil && i < len(positions) {
			pos = append(pos, positions[i])
		}
	}
	if len(boxes) == 0 {
		return nil, false, ErrNoValidData
	}

	usable = positions != nil && len(pos) == len(boxes) && len(Finite(pos)) == len(pos)
	for i := range boxes {
		if usable {
			boxes[i].Position = pos[i]
		} else {
			boxes[i].Position = float64(i + 1)
		}
	}
	return boxes, usable, nil
}

// Flatten returns parallel coordinate and value slices holding every point
// of every box.
func Flatten(boxes []Box) (x, y []float64) {
	for _, b := range boxes {
		for _, v := range b.Values {
			x = append(x, b.Position)
			y = append(y, v)
		}
	}
	return x, y
}

// Span returns n evenly spaced values covering the range of s.
func Span(s []float64, n int) []float64 {
	return floats.Span(make([]float64, n), floats.Min(s), floats.Max(s))
}

// CheckMatrix returns the dimensions of z, or ErrRagged if its rows differ
// in length. An empty matrix gives ErrNoData.
func CheckMatrix(z [][]float64) (rows, cols int, err error) {
	if len(z) == 0 || len(z[0]) == 0 {
		return 0, 0, ErrNoData
	}
	cols = len(z[0])
	for i, r := range z {
		if len(r) != cols {
			return 0, 0, fmt.Errorf("row %d has %d values, want %d: %w", i, len(r), cols, ErrRagged)
		}
	}
	return len(z), cols, nil
}

// ImageExtent selects how an image is placed. When both axis vectors have
// more than one element the extent runs from their first to last elements
// and row 0 is drawn at the bottom. Otherwise the image is drawn on matrix
// indices with row 0 at the top, and the returned extent is nil. Extents with
// non-finite corners are treated as absent.
func ImageExtent(x, y []float64) (*Extent, Origin) {
	if len(x) <= 1 || len(y) <= 1 {
		return nil, OriginUpper
	}
	e := Extent{X0: x[0], X1: x[len(x)-1], Y0: y[0], Y1: y[len(y)-1]}
	a := e.Array()
	if len(Finite(a[:])) != len(a) {
		return nil, OriginUpper
	}
	return &e, OriginLower
}
