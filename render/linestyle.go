/*
DESCRIPTION
  linestyle.go converts configured line options (colours, dash patterns,
  markers, widths and opacity) into gonum/plot drawing styles.

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
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ausocean/labplot/style"
)

// Line defaults, in points.
const (
	defaultLineWidth   = 1.5
	defaultMarkerSize  = 6.0
	defaultPointRadius = 1.5
)

// cycle is the default series colour cycle.
var cycle = []color.Color{
	rgb(0x1f, 0x77, 0xb4), // Blue.
	rgb(0xff, 0x7f, 0x0e), // Orange.
	rgb(0x2c, 0xa0, 0x2c), // Green.
	rgb(0xd6, 0x27, 0x28), // Red.
	rgb(0x94, 0x67, 0xbd), // Purple.
	rgb(0x8c, 0x56, 0x4b), // Brown.
	rgb(0xe3, 0x77, 0xc2), // Pink.
	rgb(0x7f, 0x7f, 0x7f), // Grey.
	rgb(0xbc, 0xbd, 0x22), // Olive.
	rgb(0x17, 0xbe, 0xcf), // Cyan.
}

var cycleNames = []string{"blue", "orange", "green", "red", "purple", "brown", "pink", "gray", "olive", "cyan"}

// shortColors are the single letter colour codes.
var shortColors = map[string]color.Color{
	"b": rgb(0, 0, 255),
	"g": rgb(0, 128, 0),
	"r": rgb(255, 0, 0),
	"c": rgb(0, 191, 191),
	"m": rgb(191, 0, 191),
	"y": rgb(191, 191, 0),
	"k": rgb(0, 0, 0),
	"w": rgb(255, 255, 255),
}

func rgb(r, g, b uint8) color.Color {
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// defaultColor returns the colour of the i'th series when none is configured.
func defaultColor(i int) color.Color {
	return cycle[i%len(cycle)]
}

// ParseColor parses a colour given by name, single letter code, cycle
// reference ("C0"-"C9", "tab:blue"), hex string ("#rgb", "#rrggbb",
// "#rrggbbaa") or grey level ("0" black to "1" white).
func ParseColor(s string) (color.Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := shortColors[name]; ok {
		return c, nil
	}
	if strings.HasPrefix(name, "#") {
		return parseHex(name[1:])
	}
	if len(name) == 2 && name[0] == 'c' && name[1] >= '0' && name[1] <= '9' {
		return cycle[name[1]-'0'], nil
	}
	if strings.HasPrefix(name, "tab:") {
		for i, n := range cycleNames {
			if name[4:] == n || (n == "gray" && name[4:] == "grey") {
				return cycle[i], nil
			}
		}
		return nil, fmt.Errorf("unknown colour: %q", s)
	}
	if g, err := strconv.ParseFloat(name, 64); err == nil {
		if g < 0 || g > 1 {
			return nil, fmt.Errorf("grey level out of range [0,1]: %v", g)
		}
		return color.Gray{Y: uint8(g*255 + 0.5)}, nil
	}
	if c, ok := colornames.Map[strings.ReplaceAll(name, " ", "")]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("unknown colour: %q", s)
}

func parseHex(h string) (color.Color, error) {
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return nil, fmt.Errorf("invalid hex colour: #%s", h)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid hex colour: #%s: %w", h, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// withAlpha returns c with its opacity scaled by a.
func withAlpha(c color.Color, a float64) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(float64(n.A)*a + 0.5)
	return n
}

// dashes returns the dash pattern for a line style name, scaled by the line
// width. none reports that no line should be drawn.
func dashes(name string, width vg.Length) (d []vg.Length, none bool, err error) {
	var pattern []float64
	switch strings.TrimSpace(name) {
	case "", "-", "solid":
		return nil, false, nil
	case "--", "dashed":
		pattern = []float64{3.7, 1.6}
	case ":", "dotted":
		pattern = []float64{1, 1.65}
	case "-.", "dashdot":
		pattern = []float64{6.4, 1.6, 1, 1.6}
	case "None", "none":
		return nil, true, nil
	default:
		return nil, false, fmt.Errorf("unknown line style: %q", name)
	}
	if width <= 0 {
		width = vg.Points(1)
	}
	d = make([]vg.Length, len(pattern))
	for i, v := range pattern {
		d[i] = vg.Length(v) * width
	}
	return d, false, nil
}

// glyph returns the glyph drawer and radius for a marker code.
func glyph(marker string) (draw.GlyphDrawer, vg.Length, error) {
	r := vg.Points(defaultMarkerSize / 2)
	switch strings.TrimSpace(marker) {
	case "", "None", "none":
		return nil, 0, nil
	case "o":
		return draw.CircleGlyph{}, r, nil
	case ".":
		return draw.CircleGlyph{}, vg.Points(defaultPointRadius), nil
	case "s":
		return draw.BoxGlyph{}, r, nil
	case "D", "d":
		return draw.SquareGlyph{}, r, nil
	case "^":
		return draw.TriangleGlyph{}, r, nil
	case "v":
		return draw.PyramidGlyph{}, r, nil
	case "+":
		return draw.PlusGlyph{}, r, nil
	case "x", "X":
		return draw.CrossGlyph{}, r, nil
	case "O":
		return draw.RingGlyph{}, r, nil
	}
	return nil, 0, fmt.Errorf("unknown marker: %q", marker)
}

// resolvedLine holds the drawing styles for a configured line.
type resolvedLine struct {
	line   draw.LineStyle
	glyph  draw.GlyphStyle
	noLine bool
}

// lineStyle resolves configured line options against the given defaults.
func (r *Plotter) lineStyle(s style.Line, def color.Color, defWidth float64) (resolvedLine, error) {
	var rl resolvedLine

	c := def
	if s.Color != "" {
		var err error
		c, err = ParseColor(s.Color)
		if err != nil {
			return rl, err
		}
	}
	if s.Alpha != nil {
		a := *s.Alpha
		if a < 0 || a > 1 {
			return rl, fmt.Errorf("alpha out of range [0,1]: %v", a)
		}
		c = withAlpha(c, a)
	}

	w := vg.Points(style.FloatOr(s.Width, defWidth))
	if w < 0 {
		return rl, fmt.Errorf("negative line width: %v", w)
	}
	d, none, err := dashes(s.LineStyle, w)
	if err != nil {
		return rl, err
	}
	rl.line = draw.LineStyle{Color: c, Width: w, Dashes: d}
	rl.noLine = none || w == 0

	shape, radius, err := glyph(s.Marker)
	if err != nil {
		return rl, err
	}
	rl.glyph = draw.GlyphStyle{Color: c, Radius: radius, Shape: shape}
	return rl, nil
}
