/*
DESCRIPTION
  engine.go provides the Engine, which turns numeric arrays and a JSON style
  configuration into a chart image and reports the outcome as a status
  string.

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

// Package engine provides the plotting call surface. Each operation draws
// one chart to an image file and returns "Success" or a string starting with
// "Error: ".
package engine

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/labplot/figure"
	"github.com/ausocean/labplot/render"
	"github.com/ausocean/labplot/snapshot"
	"github.com/ausocean/labplot/style"
)

// Status strings.
const (
	StatusSuccess     = "Success"
	StatusNoData      = "Error: No Data"
	StatusNoValidData = "Error: No valid data found (all NaNs or empty)"
	errorPrefix       = "Error: "
)

// Plot defaults.
const (
	regressionSamples = 100
	defaultBoxWidth   = 0.5
	defaultStatsFont  = 10
)

// Renderer draws a figure description to an image file.
type Renderer interface {
	Render(f *figure.Figure, path string) error
}

// Engine renders charts. An Engine is safe for concurrent use.
type Engine struct {
	log      logging.Logger
	renderer Renderer
	style    style.Config // Applied beneath each call's configuration.
	snapDir  string       // Empty when snapshots are disabled.
}

// New returns a new Engine configured by opts. By default nothing is logged
// and figures are drawn with render.Plotter.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		log:   logging.New(int8(logging.Info), io.Discard, true),
		style: style.FromMap(nil),
	}
	for i, opt := range opts {
		err := opt(e)
		if err != nil {
			return nil, fmt.Errorf("could not apply option %d: %w", i, err)
		}
	}
	if e.renderer == nil {
		e.renderer = render.New(e.log)
	}
	return e, nil
}

// IsError reports whether status reports a failure.
func IsError(status string) bool {
	return strings.HasPrefix(status, errorPrefix)
}

// PlotLine draws y against x as a single line.
func (e *Engine) PlotLine(x, y []float64, config, path string) string {
	return e.plot(figure.KindLine, snapshot.Data{X: x, Y: [][]float64{y}}, config, path, true)
}

// PlotMultiLine draws each row of y against x.
func (e *Engine) PlotMultiLine(x []float64, y [][]float64, config, path string) string {
	return e.plot(figure.KindMultiLine, snapshot.Data{X: x, Y: y}, config, path, true)
}

// PlotBoxplotRegression draws a boxplot per group, with a least squares line
// through every point when positions match the usable groups. Groups may be
// padded with NaNs.
func (e *Engine) PlotBoxplotRegression(groups [][]float64, positions []float64, config, path string) string {
	return e.plot(figure.KindBoxplotRegression, snapshot.Data{Groups: groups, Positions: positions}, config, path, true)
}

// PlotColormap draws z as a colormap. Rows of z are drawn along y and
// columns along x. When both x and y have more than one value they give the
// axis extent and row 0 is drawn at the bottom; otherwise cells are placed
// at their indices with row 0 at the top.
func (e *Engine) PlotColormap(z [][]float64, x, y []float64, config, path string) string {
	return e.plot(figure.KindColormap, snapshot.Data{X: x, Y: [][]float64{y}, Z: z}, config, path, true)
}

// Replay draws the render recorded in st to path.
func (e *Engine) Replay(st *snapshot.State, path string) string {
	if st == nil {
		return errorPrefix + "nil snapshot"
	}
	e.log.Debug("replaying snapshot", "id", st.ID, "kind", string(st.Kind), "created", st.Created.String())
	return e.plot(st.Kind, st.Data, st.Config, path, false)
}

// plot describes, renders and optionally snapshots a single chart.
func (e *Engine) plot(kind figure.Kind, d snapshot.Data, config, path string, record bool) (status string) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("recovered from panic while plotting", "kind", string(kind), "path", path, "panic", fmt.Sprint(r))
			status = errorPrefix + fmt.Sprint(r)
		}
	}()

	cfg := e.config(config)
	f, err := e.describe(kind, d, cfg)
	if err != nil {
		return e.fail(kind, path, err)
	}

	e.log.Debug("rendering figure", "kind", string(kind), "path", path)
	err = e.renderer.Render(f, path)
	if err != nil {
		return e.fail(kind, path, err)
	}
	e.log.Info("wrote plot", "kind", string(kind), "path", path)

	if record && e.snapDir != "" {
		e.writeSnapshot(kind, d, config, path)
	}
	return StatusSuccess
}

// fail logs err and returns its status string.
func (e *Engine) fail(kind figure.Kind, path string, err error) string {
	switch {
	case errors.Is(err, figure.ErrNoValidData):
		e.log.Warning("no valid data", "kind", string(kind), "path", path)
		return StatusNoValidData
	case errors.Is(err, figure.ErrNoData):
		e.log.Warning("no data", "kind", string(kind), "path", path)
		return StatusNoData
	}
	e.log.Error("could not plot", "kind", string(kind), "path", path, "error", err.Error())
	return errorPrefix + err.Error()
}

// config parses a call's style configuration and applies it over the
// engine's default style. Malformed configuration is logged and ignored.
func (e *Engine) config(s string) style.Config {
	c, err := style.Parse(s)
	if err != nil {
		e.log.Warning("ignoring style config", "error", err.Error())
	}
	c = style.Merge(e.style, c)
	if len(c.Invalid) != 0 {
		e.log.Warning("ignoring invalid style values", "keys", strings.Join(c.Invalid, ","))
	}
	return c
}

// writeSnapshot writes the state of a render to the snapshot directory,
// named after the output file. Failures are only logged.
func (e *Engine) writeSnapshot(kind figure.Kind, d snapshot.Data, config, path string) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	sp := filepath.Join(e.snapDir, name+snapshot.Ext)
	st := snapshot.New(kind, d, config)
	err := snapshot.Write(sp, st)
	if err != nil {
		e.log.Error("could not write snapshot", "path", sp, "error", err.Error())
		return
	}
	e.log.Debug("wrote snapshot", "path", sp, "id", st.ID)
}
