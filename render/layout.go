/*
DESCRIPTION
  layout.go applies the figure wide options of a figure to a plot: title,
  axis labels and limits, font sizes and legend placement.

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
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ausocean/labplot/figure"
)

// legendInset is the gap between the legend and the edge of the data area.
const legendInset = 5 // Points.

// applyLayout sets the options of f that are set on p. bar, if not nil, is
// the colorbar plot drawn alongside p.
func (r *Plotter) applyLayout(p, bar *plot.Plot, f *figure.Figure) {
	l := f.Layout
	if l.Title != "" {
		p.Title.Text = l.Title
	}
	if l.XLabel != "" {
		p.X.Label.Text = l.XLabel
	}
	if l.YLabel != "" {
		p.Y.Label.Text = l.YLabel
	}
	if len(l.XLim) == 2 {
		setLimits(&p.X, l.XLim[0], l.XLim[1])
	}
	if len(l.YLim) == 2 {
		setLimits(&p.Y, l.YLim[0], l.YLim[1])
	}
	if l.FontSize > 0 {
		setFontSize(p, l.FontSize)
		if bar != nil {
			setFontSize(bar, l.FontSize)
		}
	}
}

// setLimits sets the range of an axis. A range given in decreasing order
// inverts the axis.
func setLimits(a *plot.Axis, from, to float64) {
	if from > to {
		from, to = to, from
		a.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	} else {
		a.Scale = plot.LinearScale{}
	}
	a.Min, a.Max = from, to
}

// setFontSize sets every text size of p from a base size in points. Titles
// are drawn slightly larger.
func setFontSize(p *plot.Plot, pt float64) {
	size := vg.Points(pt)
	p.Title.TextStyle.Font.Size = size * 1.2
	p.X.Label.TextStyle.Font.Size = size
	p.Y.Label.TextStyle.Font.Size = size
	p.X.Tick.Label.Font.Size = size * 0.9
	p.Y.Tick.Label.Font.Size = size * 0.9
	p.Legend.TextStyle.Font.Size = size
}

// legendPlacement is the position of the legend within the data area.
type legendPlacement struct {
	top, left        bool
	vcenter, hcenter bool
}

// legendLoc returns the placement for a legend location name. Unknown names,
// and "best", place the legend in the upper right corner.
func legendLoc(name string) legendPlacement {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "upper left":
		return legendPlacement{top: true, left: true}
	case "lower left":
		return legendPlacement{left: true}
	case "lower right":
		return legendPlacement{}
	case "right", "center right":
		return legendPlacement{top: true, vcenter: true}
	case "center left":
		return legendPlacement{top: true, left: true, vcenter: true}
	case "lower center":
		return legendPlacement{left: true, hcenter: true}
	case "upper center":
		return legendPlacement{top: true, left: true, hcenter: true}
	case "center":
		return legendPlacement{top: true, left: true, vcenter: true, hcenter: true}
	}
	return legendPlacement{top: true}
}

// place positions l within the canvas the plot will be drawn to.
func (lp legendPlacement) place(l *plot.Legend, c draw.Canvas) {
	l.Top, l.Left = lp.top, lp.left

	inset := vg.Points(legendInset)
	l.XOffs, l.YOffs = -inset, -inset
	if lp.left {
		l.XOffs = inset
	}
	if !lp.top {
		l.YOffs = inset
	}
	if !lp.vcenter && !lp.hcenter {
		return
	}

	// The legend is drawn within the area left after the axes, which is
	// approximated as a fixed share of the canvas.
	const dataShare = 0.85
	r := l.Rectangle(c)
	if lp.vcenter {
		h := vg.Length(dataShare) * (c.Max.Y - c.Min.Y)
		l.YOffs = -(h - (r.Max.Y - r.Min.Y)) / 2
	}
	if lp.hcenter {
		w := vg.Length(dataShare) * (c.Max.X - c.Min.X)
		l.XOffs = (w - (r.Max.X - r.Min.X)) / 2
	}
}
