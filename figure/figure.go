/*
DESCRIPTION
  figure.go describes a chart independently of the library used to draw it.
  The engine builds a Figure from a request and a renderer draws it.

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

// Package figure provides a library independent description of a chart,
// and the data cleaning applied to requests before they are described.
package figure

import (
	"fmt"
	"math"

	"github.com/ausocean/labplot/style"
)

// Kind identifies the type of chart.
type Kind string

// Chart kinds.
const (
	KindLine              Kind = "line"
	KindMultiLine         Kind = "multi_line"
	KindBoxplotRegression Kind = "boxplot_regression"
	KindColormap          Kind = "colormap"
)

// Origin says where row 0 of an image matrix is drawn.
type Origin int

// Origin modes.
const (
	OriginUpper Origin = iota // Row 0 at the top; matrix reading order.
	OriginLower               // Row 0 at the bottom; y increases upward.
)

func (o Origin) String() string {
	if o == OriginLower {
		return "lower"
	}
	return "upper"
}

// Default figure size in inches.
const (
	DefaultWidth  = 6.4
	DefaultHeight = 4.8
)

// Layout holds the figure wide options.
type Layout struct {
	Title  string
	XLabel string
	YLabel string
	XLim   []float64 // nil, or [left, right].
	YLim   []float64 // nil, or [bottom, top].
	Grid   bool

	Width, Height float64 // Inches.

	ShowLegend bool
	LegendLoc  string

	FontSize float64 // Points; zero uses the renderer default.
}

// Series is one line sharing the figure axes.
type Series struct {
	Label string
	X, Y  []float64
	Style style.Line
}

// Box is the sample of one boxplot.
type Box struct {
	Position float64
	Values   []float64
}

// Boxes is a set of boxplots.
type Boxes struct {
	Groups []Box
	Color  string
	Width  float64 // Data units.
}

// Regression is a fitted straight line drawn over a boxplot.
type Regression struct {
	Slope, Intercept, RSquared float64

	// X and Y sample the fitted line across the observed x range.
	X, Y []float64

	Style     style.Line
	ShowStats bool
	FontSize  float64
}

// Equation returns the fitted line formatted as "y = mx ± c".
func (r Regression) Equation() string {
	sign := "+"
	if r.Intercept < 0 {
		sign = "-"
	}
	return fmt.Sprintf("y = %.2fx %s %.2f", r.Slope, sign, math.Abs(r.Intercept))
}

// Stats returns the equation and coefficient of determination on two lines.
func (r Regression) Stats() string {
	return fmt.Sprintf("%s\nR² = %.3f", r.Equation(), r.RSquared)
}

// Extent maps image cells to axis coordinates. X0 is the left edge of the
// first column and X1 the right edge of the last; likewise Y0 and Y1 for
// rows. X1 < X0 or Y1 < Y0 means the axis runs backwards.
type Extent struct {
	X0, X1, Y0, Y1 float64
}

// Array returns the extent in [xmin, xmax, ymin, ymax] order.
func (e Extent) Array() [4]float64 {
	return [4]float64{e.X0, e.X1, e.Y0, e.Y1}
}

// Image is a matrix drawn as a colormap.
type Image struct {
	Z [][]float64 // Rows of equal length.

	// Extent is nil when the image is drawn on matrix indices.
	Extent *Extent
	Origin Origin

	ColorMap      string
	Colorbar      bool
	ColorbarLabel string
}

// Dims returns the number of rows and columns of the image.
func (im *Image) Dims() (rows, cols int) {
	if len(im.Z) == 0 {
		return 0, 0
	}
	return len(im.Z), len(im.Z[0])
}

// Figure is a complete chart description.
type Figure struct {
	Kind Kind
	Layout

	Series     []Series
	Boxes      *Boxes
	Regression *Regression
	Image      *Image
}
