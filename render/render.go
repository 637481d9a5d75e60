/*
DESCRIPTION
  render.go draws figure descriptions with gonum/plot and saves them to
  image files.

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

// Package render draws figure descriptions using gonum/plot.
package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ausocean/utils/logging"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ausocean/labplot/figure"
)

// defaultFormat is used for output paths without an extension.
const defaultFormat = "png"

// Plotter renders figures to image files. A Plotter holds no per figure
// state and may be used concurrently.
type Plotter struct {
	log logging.Logger
}

// New returns a new Plotter logging to l.
func New(l logging.Logger) *Plotter {
	return &Plotter{log: l}
}

// Render draws f and writes it to path. The image format is taken from the
// path's extension.
func (r *Plotter) Render(f *figure.Figure, path string) error {
	if f == nil {
		return errors.New("nil figure")
	}

	p := plot.New()
	if f.Grid {
		p.Add(plotter.NewGrid())
	}

	var bar *plot.Plot
	var err error
	switch f.Kind {
	case figure.KindLine, figure.KindMultiLine:
		err = r.drawSeries(p, f)
	case figure.KindBoxplotRegression:
		err = r.drawBoxes(p, f)
	case figure.KindColormap:
		bar, err = r.drawImage(p, f)
	default:
		err = fmt.Errorf("unknown figure kind: %q", f.Kind)
	}
	if err != nil {
		return fmt.Errorf("could not draw plot contents: %w", err)
	}

	r.applyLayout(p, bar, f)

	w, h := size(f.Layout)
	r.log.Debug("saving plot", "path", path, "width", w, "height", h)
	err = save(p, bar, w, h, path, legendLoc(f.LegendLoc))
	if err != nil {
		return fmt.Errorf("could not save plot: %w", err)
	}
	return nil
}

// drawSeries adds a line per series.
func (r *Plotter) drawSeries(p *plot.Plot, f *figure.Figure) error {
	for i, s := range f.Series {
		if len(s.X) == 0 {
			r.log.Warning("skipping series with no finite points", "series", i, "label", s.Label)
			continue
		}
		ls, err := r.lineStyle(s.Style, defaultColor(i), defaultLineWidth)
		if err != nil {
			return fmt.Errorf("could not style series %d: %w", i, err)
		}

		l, err := plotter.NewLine(plotterXY(s.X, s.Y))
		if err != nil {
			return fmt.Errorf("could not create line %d: %w", i, err)
		}
		l.LineStyle = ls.line
		var thumbs []plot.Thumbnailer
		if !ls.noLine {
			p.Add(l)
			thumbs = append(thumbs, l)
		}

		if ls.glyph.Shape != nil {
			sc, err := plotter.NewScatter(plotterXY(s.X, s.Y))
			if err != nil {
				return fmt.Errorf("could not create markers %d: %w", i, err)
			}
			sc.GlyphStyle = ls.glyph
			p.Add(sc)
			thumbs = append(thumbs, sc)
		}

		if f.ShowLegend && s.Label != "" && len(thumbs) != 0 {
			p.Legend.Add(s.Label, thumbs...)
		}
	}
	return nil
}

// size returns the figure size, using the defaults for unset dimensions.
func size(l figure.Layout) (w, h vg.Length) {
	wi, hi := l.Width, l.Height
	if wi <= 0 || hi <= 0 {
		wi, hi = figure.DefaultWidth, figure.DefaultHeight
	}
	return vg.Length(wi) * vg.Inch, vg.Length(hi) * vg.Inch
}

// save draws p, and the optional colorbar plot to its right, to a canvas of
// the given size and writes it to path.
func save(p, bar *plot.Plot, w, h vg.Length, path string, loc legendPlacement) (err error) {
	format := Format(path)
	c, err := draw.NewFormattedCanvas(w, h, format)
	if err != nil {
		return fmt.Errorf("could not create %s canvas: %w", format, err)
	}

	dc := draw.New(c)
	if bar != nil {
		bw := w * colorbarFraction
		bar.Draw(draw.Crop(dc, w-bw, 0, 0, 0))
		dc = draw.Crop(dc, 0, -bw, 0, 0)
	}
	loc.place(&p.Legend, dc)
	p.Draw(dc)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if err == nil {
			err = e
		}
	}()

	_, err = c.WriteTo(f)
	return err
}

// Format returns the image format for path, taken from its extension.
func Format(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" || ext == "." {
		return defaultFormat
	}
	return ext[1:]
}

// plotterXY provides a plotter.XYs type value based on the given x and y data.
func plotterXY(x, y []float64) plotter.XYs {
	xy := make(plotter.XYs, len(x))
	for i := range x {
		xy[i].X = x[i]
		xy[i].Y = y[i]
	}
	return xy
}
