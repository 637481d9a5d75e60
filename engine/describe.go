/*
DESCRIPTION
  describe.go builds figure descriptions from call data and style
  configuration.

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

package engine

import (
	"fmt"

	"github.com/ausocean/labplot/figure"
	"github.com/ausocean/labplot/fit"
	"github.com/ausocean/labplot/snapshot"
	"github.com/ausocean/labplot/style"
)

// describe returns the figure for a call of the given kind.
func (e *Engine) describe(kind figure.Kind, d snapshot.Data, cfg style.Config) (*figure.Figure, error) {
	f := &figure.Figure{Kind: kind, Layout: layout(cfg)}

	var err error
	switch kind {
	case figure.KindLine:
		e.describeLine(f, d, cfg)
	case figure.KindMultiLine:
		e.describeMultiLine(f, d, cfg)
	case figure.KindBoxplotRegression:
		err = e.describeBoxes(f, d, cfg)
	case figure.KindColormap:
		err = e.describeImage(f, d, cfg)
	default:
		err = fmt.Errorf("unknown plot kind: %q", kind)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// layout returns the figure wide options of cfg.
func layout(cfg style.Config) figure.Layout {
	l := figure.Layout{
		Title:      cfg.Title,
		XLabel:     cfg.XLabel,
		YLabel:     cfg.YLabel,
		XLim:       cfg.XLim,
		YLim:       cfg.YLim,
		Grid:       style.BoolOr(cfg.Grid, false),
		ShowLegend: style.BoolOr(cfg.ShowLegend, false),
		LegendLoc:  cfg.LegendLoc,
		FontSize:   style.FloatOr(cfg.FontSize, 0),
	}
	if cfg.Figsize != nil {
		l.Width, l.Height = cfg.Figsize.Width, cfg.Figsize.Height
	}
	return l
}

func (e *Engine) describeLine(f *figure.Figure, d snapshot.Data, cfg style.Config) {
	var y []float64
	if len(d.Y) != 0 {
		y = d.Y[0]
	}
	s := e.series(d.X, y, 0)
	if len(cfg.Labels) != 0 {
		s.Label = cfg.Labels[0]
	}
	s.Style = cfg.LineStyle(style.PrimaryPrefix)
	f.Series = []figure.Series{s}
}

func (e *Engine) describeMultiLine(f *figure.Figure, d snapshot.Data, cfg style.Config) {
	f.ShowLegend = style.BoolOr(cfg.ShowLegend, true)
	ls := cfg.LineStyle(style.PrimaryPrefix)
	for i, row := range d.Y {
		s := e.series(d.X, row, i)
		s.Label = fmt.Sprintf("Line %d", i+1)
		if i < len(cfg.Labels) && cfg.Labels[i] != "" {
			s.Label = cfg.Labels[i]
		}
		s.Style = ls
		f.Series = append(f.Series, s)
	}
}

// series returns the finite points of a series, logging any truncation.
func (e *Engine) series(x, y []float64, i int) figure.Series {
	xs, ys, truncated := figure.FinitePairs(x, y)
	if truncated {
		e.log.Warning("x and y lengths differ, truncating series", "series", i, "x", len(x), "y", len(y))
	}
	if dropped := min(len(x), len(y)) - len(xs); dropped > 0 {
		e.log.Debug("dropped non-finite points", "series", i, "dropped", dropped)
	}
	return figure.Series{X: xs, Y: ys}
}

func (e *Engine) describeBoxes(f *figure.Figure, d snapshot.Data, cfg style.Config) error {
	boxes, usable, err := figure.CleanGroups(d.Groups, d.Positions)
	if err != nil {
		return err
	}
	if d.Positions != nil && !usable {
		e.log.Warning("positions do not match groups, using 1..n", "groups", len(boxes), "positions", len(d.Positions))
	}
	f.Boxes = &figure.Boxes{
		Groups: boxes,
		Color:  cfg.BoxColor,
		Width:  style.FloatOr(cfg.BoxWidth, defaultBoxWidth),
	}
	if !usable {
		return nil
	}

	x, y := figure.Flatten(boxes)
	if len(x) < 2 {
		return nil
	}
	l, err := fit.Linear(x, y)
	if err != nil {
		e.log.Warning("skipping regression line", "error", err.Error())
		return nil
	}

	xs := figure.Span(x, regressionSamples)
	ys := make([]float64, len(xs))
	for i, v := range xs {
		ys[i] = l.At(v)
	}
	f.Regression = &figure.Regression{
		Slope:     l.Slope,
		Intercept: l.Intercept,
		RSquared:  l.RSquared,
		X:         xs,
		Y:         ys,
		Style:     cfg.LineStyle(style.RegressionPrefix),
		ShowStats: style.BoolOr(cfg.ShowStats, true),
		FontSize:  style.FloatOr(cfg.FontSize, defaultStatsFont),
	}
	e.log.Debug("fitted regression", "slope", l.Slope, "intercept", l.Intercept, "r2", l.RSquared)
	return nil
}

func (e *Engine) describeImage(f *figure.Figure, d snapshot.Data, cfg style.Config) error {
	rows, cols, err := figure.CheckMatrix(d.Z)
	if err != nil {
		return err
	}
	var y []float64
	if len(d.Y) != 0 {
		y = d.Y[0]
	}
	ext, origin := figure.ImageExtent(d.X, y)
	if ext != nil && (len(d.X) != cols || len(y) != rows) {
		e.log.Debug("axis vectors differ from matrix shape", "rows", rows, "cols", cols, "x", len(d.X), "y", len(y))
	}
	f.Image = &figure.Image{
		Z:             d.Z,
		Extent:        ext,
		Origin:        origin,
		ColorMap:      cfg.Cmap,
		Colorbar:      style.BoolOr(cfg.ShowColorbar, true),
		ColorbarLabel: cfg.ZLabel,
	}
	return nil
}
