/*
DESCRIPTION
  style.go provides the typed style configuration used by every plot
  operation, along with parsing from the JSON documents sent by callers.

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

// Package style provides the typed style configuration for labplot charts.
//
// Callers send configuration as a flat JSON object. Callers cannot send null,
// so the empty string means "unset" for every key and never overrides a
// default. Unknown keys are ignored.
package style

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Prefixes used to select line styles from a configuration.
const (
	PrimaryPrefix    = ""
	RegressionPrefix = "reg_"
)

// Figsize is a figure size in inches.
type Figsize struct {
	Width, Height float64
}

// Line holds line styling options. Empty strings and nil pointers are unset.
type Line struct {
	Color     string
	LineStyle string
	Width     *float64
	Marker    string
	Alpha     *float64
}

// IsZero reports whether no option of l is set.
func (l Line) IsZero() bool {
	return l.Color == "" && l.LineStyle == "" && l.Width == nil && l.Marker == "" && l.Alpha == nil
}

// Config is a parsed style configuration. Fields left at their zero value
// are unset and the renderer falls back to its defaults for them.
type Config struct {
	Title  string
	XLabel string
	YLabel string
	XLim   []float64 // Length 2 when set.
	YLim   []float64 // Length 2 when set.
	Grid   *bool

	Figsize    *Figsize
	ShowLegend *bool
	LegendLoc  string
	Labels     []string

	Line       Line
	Regression Line

	BoxColor  string
	BoxWidth  *float64
	ShowStats *bool
	FontSize  *float64

	Cmap         string
	ShowColorbar *bool
	ZLabel       string

	// Raw holds the decoded document with unset (empty string) values removed.
	Raw map[string]interface{}

	// Invalid lists keys that were present but could not be interpreted.
	// Such keys are treated as unset.
	Invalid []string
}

// Parse parses a JSON style document. A blank document yields the default
// configuration. A malformed document also yields the default configuration,
// together with an error describing why it was rejected; callers are
// expected to carry on with the returned Config.
func Parse(s string) (Config, error) {
	if strings.TrimSpace(s) == "" {
		return FromMap(nil), nil
	}
	var m map[string]interface{}
	err := json.Unmarshal([]byte(s), &m)
	if err != nil {
		return FromMap(nil), fmt.Errorf("could not unmarshal style config: %w", err)
	}
	return FromMap(m), nil
}

// FromMap builds a Config from a decoded JSON object.
func FromMap(m map[string]interface{}) Config {
	d := decoder{raw: clean(m)}
	c := Config{
		Title:  d.str("title"),
		XLabel: d.str("xlabel"),
		YLabel: d.str("ylabel"),
		XLim:   d.limits("xlim"),
		YLim:   d.limits("ylim"),
		Grid:   d.boolean("grid"),

		Figsize:    d.figsize("figsize"),
		ShowLegend: d.boolean("show_legend"),
		LegendLoc:  d.str("legend_loc"),
		Labels:     d.strs("labels"),

		Line:       d.line(PrimaryPrefix),
		Regression: d.line(RegressionPrefix),

		BoxColor:  d.str("box_color"),
		BoxWidth:  d.num("box_width"),
		ShowStats: d.boolean("show_stats"),
		FontSize:  d.num("font_size"),

		Cmap:         d.str("cmap"),
		ShowColorbar: d.boolean("show_colorbar"),
		ZLabel:       d.str("zlabel"),

		Raw: d.raw,
	}
	sort.Strings(d.invalid)
	c.Invalid = d.invalid
	return c
}

// LineStyle extracts the line options stored under the given key prefix,
// e.g. "reg_" for the regression overlay.
func (c Config) LineStyle(prefix string) Line {
	d := decoder{raw: c.Raw}
	return d.line(prefix)
}

// Merge returns the configuration formed by applying the set keys of over on
// top of base.
func Merge(base, over Config) Config {
	m := make(map[string]interface{}, len(base.Raw)+len(over.Raw))
	for k, v := range base.Raw {
		m[k] = v
	}
	for k, v := range over.Raw {
		m[k] = v
	}
	return FromMap(m)
}

// JSON returns the canonical JSON encoding of the set keys of c.
func (c Config) JSON() string {
	if len(c.Raw) == 0 {
		return "{}"
	}
	b, err := json.Marshal(c.Raw)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BoolOr returns *p, or def if p is nil.
func BoolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// FloatOr returns *p, or def if p is nil.
func FloatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// StringOr returns s, or def if s is empty.
func StringOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// clean returns a copy of m without the keys whose value is unset.
func clean(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		if unset(v) {
			continue
		}
		out[k] = v
	}
	return out
}

func unset(v interface{}) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// decoder extracts typed values from a cleaned configuration map, recording
// keys whose values have the wrong type.
type decoder struct {
	raw     map[string]interface{}
	invalid []string
}

func (d *decoder) bad(key string) {
	for _, k := range d.invalid {
		if k == key {
			return
		}
	}
	d.invalid = append(d.invalid, key)
}

func (d *decoder) str(key string) string {
	v, ok := d.raw[key]
	if !ok {
		return ""
	}
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	d.bad(key)
	return ""
}

func (d *decoder) num(key string) *float64 {
	v, ok := d.raw[key]
	if !ok {
		return nil
	}
	f, ok := toFloat(v)
	if !ok {
		d.bad(key)
		return nil
	}
	return &f
}

func (d *decoder) boolean(key string) *bool {
	v, ok := d.raw[key]
	if !ok {
		return nil
	}
	var b bool
	switch v := v.(type) {
	case bool:
		b = v
	case float64:
		b = v != 0
	case string:
		var err error
		b, err = strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			d.bad(key)
			return nil
		}
	default:
		d.bad(key)
		return nil
	}
	return &b
}

// limits returns an axis range. Anything other than two numbers is unset.
func (d *decoder) limits(key string) []float64 {
	v, ok := d.raw[key]
	if !ok {
		return nil
	}
	a, ok := v.([]interface{})
	if !ok {
		d.bad(key)
		return nil
	}
	if len(a) == 0 {
		return nil
	}
	if len(a) != 2 {
		d.bad(key)
		return nil
	}
	lim := make([]float64, 2)
	for i, e := range a {
		f, ok := toFloat(e)
		if !ok {
			d.bad(key)
			return nil
		}
		lim[i] = f
	}
	return lim
}

func (d *decoder) strs(key string) []string {
	v, ok := d.raw[key]
	if !ok {
		return nil
	}
	a, ok := v.([]interface{})
	if !ok {
		d.bad(key)
		return nil
	}
	out := make([]string, len(a))
	for i, e := range a {
		switch e := e.(type) {
		case string:
			out[i] = e
		case float64:
			out[i] = strconv.FormatFloat(e, 'g', -1, 64)
		case nil:
		default:
			d.bad(key)
			return nil
		}
	}
	return out
}

// figsize returns the figure size; both dimensions must be positive.
func (d *decoder) figsize(key string) *Figsize {
	v, ok := d.raw[key]
	if !ok {
		return nil
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		d.bad(key)
		return nil
	}
	w, okw := toFloat(m["width"])
	h, okh := toFloat(m["height"])
	if !okw || !okh {
		d.bad(key)
		return nil
	}
	if w <= 0 || h <= 0 {
		return nil
	}
	return &Figsize{Width: w, Height: h}
}

func (d *decoder) line(prefix string) Line {
	return Line{
		Color:     d.str(prefix + "color"),
		LineStyle: d.str(prefix + "linestyle"),
		Width:     d.num(prefix + "linewidth"),
		Marker:    d.str(prefix + "marker"),
		Alpha:     d.num(prefix + "alpha"),
	}
}

// toFloat accepts JSON numbers and numeric strings.
func toFloat(v interface{}) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
