/*
DESCRIPTION
  boxplot.go draws boxplots with an optional regression line and a box of
  fit statistics.

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
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ausocean/labplot/figure"
	"github.com/ausocean/labplot/style"
)

// Boxplot defaults.
const (
	defaultBoxColor   = "black"
	defaultBoxWidth   = 0.5 // Data units.
	defaultStatsFont  = 10  // Points.
	defaultRegWidth   = 1.5 // Points.
	statsX, statsY    = 0.05, 0.95
	dataAreaFraction  = 0.8
	minDataSpan       = 1.0
	statsBoxOpacity   = 0.8
	statsBoxBorderPts = 0.5
)

var (
	medianColor    = rgb(0xff, 0x7f, 0x0e)
	defaultRegLine = style.Line{Color: "red", LineStyle: "--"}
)

// drawBoxes adds the boxplots of f, followed by its regression line.
func (r *Plotter) drawBoxes(p *plot.Plot, f *figure.Figure) error {
	if f.Boxes == nil || len(f.Boxes.Groups) == 0 {
		return errors.New("no boxes to draw")
	}

	c, err := ParseColor(style.StringOr(f.Boxes.Color, defaultBoxColor))
	if err != nil {
		return fmt.Errorf("invalid box colour: %w", err)
	}

	w, _ := size(f.Layout)
	bw := boxWidth(f.Boxes, w)
	for i, g := range f.Boxes.Groups {
		b, err := plotter.NewBoxPlot(bw, g.Position, plotter.Values(g.Values))
		if err != nil {
			return fmt.Errorf("could not create boxplot %d: %w", i, err)
		}
		b.BoxStyle.Color = c
		b.WhiskerStyle.Color = c
		b.MedianStyle.Color = medianColor
		b.GlyphStyle.Shape = draw.RingGlyph{}
		p.Add(b)
	}

	if f.Regression != nil {
		return r.drawRegression(p, f.Regression)
	}
	return nil
}

// boxWidth converts the configured box width from data units to a length,
// using the spread of the box positions and the share of the figure width
// taken by the data area.
func boxWidth(b *figure.Boxes, figWidth vg.Length) vg.Length {
	width := b.Width
	if width <= 0 {
		width = defaultBoxWidth
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, g := range b.Groups {
		lo = math.Min(lo, g.Position)
		hi = math.Max(hi, g.Position)
	}
	span := math.Max(hi-lo, minDataSpan) + width
	return vg.Length(width/span*dataAreaFraction) * figWidth
}

// drawRegression adds the fitted line and, if requested, the statistics box.
func (r *Plotter) drawRegression(p *plot.Plot, reg *figure.Regression) error {
	s := reg.Style
	if s.IsZero() {
		s = defaultRegLine
	}
	ls, err := r.lineStyle(s, color.NRGBA{R: 255, A: 255}, defaultRegWidth)
	if err != nil {
		return fmt.Errorf("could not style regression line: %w", err)
	}

	l, err := plotter.NewLine(plotterXY(reg.X, reg.Y))
	if err != nil {
		return fmt.Errorf("could not create regression line: %w", err)
	}
	l.LineStyle = ls.line
	if !ls.noLine {
		p.Add(l)
	}
	if ls.glyph.Shape != nil {
		sc, err := plotter.NewScatter(plotterXY(reg.X, reg.Y))
		if err != nil {
			return fmt.Errorf("could not create regression markers: %w", err)
		}
		sc.GlyphStyle = ls.glyph
		p.Add(sc)
	}

	if reg.ShowStats {
		fs := reg.FontSize
		if fs <= 0 {
			fs = defaultStatsFont
		}
		p.Add(&statsBox{text: reg.Stats(), size: vg.Points(fs), x: statsX, y: statsY})
	}
	r.log.Debug("drew regression", "slope", reg.Slope, "intercept", reg.Intercept, "r2", reg.RSquared)
	return nil
}

// statsBox draws text in a white box whose top left corner is placed at a
// fraction of the data area, independent of the axis ranges.
type statsBox struct {
	text string
	size vg.Length
	x, y float64
}

// Plot implements the plot.Plotter interface.
func (s *statsBox) Plot(c draw.Canvas, p *plot.Plot) {
	sty := text.Style{
		Color:   color.Black,
		Font:    font.From(plot.DefaultFont, s.size),
		XAlign:  draw.XLeft,
		YAlign:  draw.YTop,
		Handler: p.TextHandler,
	}

	pt := vg.Point{
		X: c.Min.X + vg.Length(s.x)*(c.Max.X-c.Min.X),
		Y: c.Min.Y + vg.Length(s.y)*(c.Max.Y-c.Min.Y),
	}
	w, h := sty.Width(s.text), sty.Height(s.text)
	pad := s.size / 2
	box := []vg.Point{
		{X: pt.X - pad, Y: pt.Y + pad},
		{X: pt.X + w + pad, Y: pt.Y + pad},
		{X: pt.X + w + pad, Y: pt.Y - h - pad},
		{X: pt.X - pad, Y: pt.Y - h - pad},
	}
	c.FillPolygon(withAlpha(color.White, statsBoxOpacity), box)
	c.StrokeLines(draw.LineStyle{Color: color.Gray{Y: 128}, Width: vg.Points(statsBoxBorderPts)}, append(box, box[0]))
	c.FillText(sty, pt, s.text)
}
