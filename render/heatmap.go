/*
DESCRIPTION
  heatmap.go draws matrices as colormaps with an optional colorbar, and
  provides the named colour maps.

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

package render

import (
	"errors"
	"image/color"
	"math"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"

	"github.com/ausocean/labplot/figure"
)

// Colormap defaults.
const (
	DefaultColorMap  = "viridis"
	colorbarFraction = 0.15 // Share of the figure width given to the colorbar.
	paletteSize      = 256
	reversedSuffix   = "_r"
)

// luminanceControls are control colours for maps with monotonically
// increasing luminance.
var luminanceControls = map[string][]string{
	"viridis": {"#440154", "#3b528b", "#21918c", "#5ec962", "#fde725"},
	"inferno": {"#000004", "#420a68", "#932667", "#dd513a", "#fca50a", "#fcffa4"},
	"magma":   {"#000004", "#3b0f70", "#8c2981", "#de4968", "#fe9f6d", "#fcfdbf"},
	"plasma":  {"#0d0887", "#7e03a8", "#cc4778", "#f89540", "#f0f921"},
	"cividis": {"#00204d", "#414d6b", "#7c7b78", "#bcaf6f", "#ffea46"},
	"gray":    {"#000000", "#ffffff"},
	"grey":    {"#000000", "#ffffff"},
	"greys":   {"#ffffff", "#000000"},
}

// builtin are the colour maps provided by moreland.
var builtin = map[string]func() palette.ColorMap{
	"blackbody":         moreland.BlackBody,
	"hot":               moreland.ExtendedBlackBody,
	"kindlmann":         moreland.Kindlmann,
	"extendedkindlmann": moreland.ExtendedKindlmann,
	"coolwarm":          func() palette.ColorMap { return moreland.SmoothBlueRed() },
	"puor":              func() palette.ColorMap { return moreland.SmoothPurpleOrange() },
	"prgn":              func() palette.ColorMap { return palette.Reverse(moreland.SmoothGreenPurple()) },
	"bluetan":           func() palette.ColorMap { return moreland.SmoothBlueTan() },
	"greenred":          func() palette.ColorMap { return moreland.SmoothGreenRed() },
}

// ColorMap returns a new colour map for name. A name ending in "_r" gives
// the reversed map. ok is false if name is not known.
func ColorMap(name string) (cm palette.ColorMap, ok bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	reversed := strings.HasSuffix(n, reversedSuffix)
	n = strings.TrimSuffix(n, reversedSuffix)

	if ctl, ok := luminanceControls[n]; ok {
		// Greys luminance decreases, so it is built as a reversed grey map.
		if ctl[0] == "#ffffff" {
			ctl = []string{ctl[1], ctl[0]}
			reversed = !reversed
		}
		cm = luminanceMap(ctl)
	} else if fn, ok := builtin[n]; ok {
		cm = fn()
	}
	if cm == nil {
		return nil, false
	}
	if reversed {
		cm = palette.Reverse(cm)
	}
	return cm, true
}

// luminanceMap builds a luminance colour map from hex control colours. It
// returns nil if the controls are not in increasing luminance.
func luminanceMap(ctl []string) palette.ColorMap {
	cols := make([]color.Color, len(ctl))
	for i, h := range ctl {
		c, err := parseHex(strings.TrimPrefix(h, "#"))
		if err != nil {
			return nil
		}
		cols[i] = c
	}
	cm, err := moreland.NewLuminance(cols)
	if err != nil {
		return nil
	}
	return cm
}

// drawImage adds the colormap of f to p and returns the colorbar plot, or
// nil if no colorbar is wanted.
func (r *Plotter) drawImage(p *plot.Plot, f *figure.Figure) (*plot.Plot, error) {
	im := f.Image
	if im == nil {
		return nil, errors.New("no image to draw")
	}
	rows, cols := im.Dims()
	if rows == 0 || cols == 0 {
		return nil, figure.ErrNoData
	}

	name := im.ColorMap
	if name == "" {
		name = DefaultColorMap
	}
	cm, ok := ColorMap(name)
	if !ok {
		r.log.Warning("unknown colour map, using default", "cmap", name, "default", DefaultColorMap)
		cm, _ = ColorMap(DefaultColorMap)
	}

	lo, hi := zRange(im.Z)
	cm.SetMax(hi)
	cm.SetMin(lo)

	g := newGrid(im)
	h := plotter.NewHeatMap(g, cm.Palette(paletteSize))
	h.Min, h.Max = lo, hi
	h.NaN = color.Transparent
	p.Add(h)

	xmin, xmax, ymin, ymax := h.DataRange()
	p.X.Min, p.X.Max = xmin, xmax
	p.Y.Min, p.Y.Max = ymin, ymax
	if g.invertX {
		p.X.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	}
	if g.invertY {
		p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	}
	r.log.Debug("drew colormap", "rows", rows, "cols", cols, "min", lo, "max", hi, "origin", im.Origin.String())

	if !im.Colorbar {
		return nil, nil
	}
	bar := plot.New()
	bar.Add(&plotter.ColorBar{ColorMap: cm, Vertical: true})
	bar.HideX()
	bar.Y.Label.Text = im.ColorbarLabel
	return bar, nil
}

// zRange returns the colour range for z. A constant matrix is given a unit
// range around its value, and a matrix with no finite values the range 0-1.
func zRange(z [][]float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range z {
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	switch {
	case lo > hi:
		return 0, 1
	case lo == hi:
		return lo - 0.5, hi + 0.5
	}
	return lo, hi
}

// grid implements plotter.GridXYZ for an image. Cells are laid out in
// increasing coordinate order; flipC and flipR map them back to matrix
// columns and rows.
type grid struct {
	z              [][]float64
	x0, dx, y0, dy float64
	flipC, flipR   bool

	invertX, invertY bool
}

func newGrid(im *figure.Image) grid {
	rows, cols := im.Dims()
	g := grid{z: im.Z}

	e := im.Extent
	if e == nil {
		g.x0, g.dx = -0.5, 1
		g.y0, g.dy = -0.5, 1
		g.invertY = im.Origin == figure.OriginUpper
		return g
	}

	g.x0 = math.Min(e.X0, e.X1)
	g.dx = math.Abs(e.X1-e.X0) / float64(cols)
	g.flipC = e.X0 > e.X1
	g.invertX = e.X0 > e.X1

	g.y0 = math.Min(e.Y0, e.Y1)
	g.dy = math.Abs(e.Y1-e.Y0) / float64(rows)
	g.flipR = (im.Origin == figure.OriginUpper) != (e.Y0 > e.Y1)
	g.invertY = e.Y0 > e.Y1
	return g
}

// Dims implements the plotter.GridXYZ interface.
func (g grid) Dims() (c, r int) {
	return len(g.z[0]), len(g.z)
}

// Z implements the plotter.GridXYZ interface.
func (g grid) Z(c, r int) float64 {
	cols, rows := g.Dims()
	if g.flipC {
		c = cols - 1 - c
	}
	if g.flipR {
		r = rows - 1 - r
	}
	return g.z[r][c]
}

// X implements the plotter.GridXYZ interface.
func (g grid) X(c int) float64 {
	return g.x0 + (float64(c)+0.5)*g.dx
}

// Y implements the plotter.GridXYZ interface.
func (g grid) Y(r int) float64 {
	return g.y0 + (float64(r)+0.5)*g.dy
}
