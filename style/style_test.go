/*
DESCRIPTION
  style_test.go provides testing for style configuration parsing.

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

package style

import (
	"reflect"
	"testing"
)

// TestParseMalformed checks that malformed documents give the default
// configuration along with an error.
func TestParseMalformed(t *testing.T) {
	tests := []string{
		`{"title": "unterminated`,
		`not json at all`,
		`[1, 2, 3]`,
		`{"title": }`,
	}

	for i, test := range tests {
		c, err := Parse(test)
		if err == nil {
			t.Errorf("expected error for test %d", i)
		}
		if c.Title != "" || c.Grid != nil || len(c.Raw) != 0 {
			t.Errorf("did not get default config for test %d: %+v", i, c)
		}
	}
}

// TestParseBlank checks that blank documents are not treated as errors.
func TestParseBlank(t *testing.T) {
	for _, s := range []string{"", "   ", "null"} {
		c, err := Parse(s)
		if err != nil {
			t.Errorf("did not expect error for %q: %v", s, err)
		}
		if c.JSON() != "{}" {
			t.Errorf("did not get empty config for %q, got: %s", s, c.JSON())
		}
	}
}

// TestParse checks that recognised keys are decoded into their typed fields.
func TestParse(t *testing.T) {
	const doc = `{
		"title": "Depth profile",
		"xlabel": "Time (s)",
		"ylabel": "Depth (m)",
		"xlim": [0, 10],
		"ylim": ["-1", 1],
		"grid": true,
		"figsize": {"width": 8, "height": 6},
		"show_legend": "false",
		"legend_loc": "upper left",
		"labels": ["a", "b"],
		"color": "red",
		"linewidth": 0,
		"alpha": "0.5",
		"reg_linestyle": "--",
		"box_width": 0.3,
		"show_stats": false,
		"font_size": 12,
		"cmap": "viridis",
		"show_colorbar": 1,
		"zlabel": "Temperature",
		"unknown": {"ignored": true}
	}`

	c, err := Parse(doc)
	if err != nil {
		t.Fatalf("did not expect error: %v", err)
	}

	if c.Title != "Depth profile" || c.XLabel != "Time (s)" || c.YLabel != "Depth (m)" {
		t.Errorf("did not get expected labels: %q %q %q", c.Title, c.XLabel, c.YLabel)
	}
	if !reflect.DeepEqual(c.XLim, []float64{0, 10}) {
		t.Errorf("did not get expected xlim: %v", c.XLim)
	}
	if !reflect.DeepEqual(c.YLim, []float64{-1, 1}) {
		t.Errorf("did not get expected ylim: %v", c.YLim)
	}
	if !BoolOr(c.Grid, false) {
		t.Error("expected grid to be set")
	}
	if c.Figsize == nil || *c.Figsize != (Figsize{Width: 8, Height: 6}) {
		t.Errorf("did not get expected figsize: %v", c.Figsize)
	}
	if BoolOr(c.ShowLegend, true) {
		t.Error("expected show_legend to be false")
	}
	if c.LegendLoc != "upper left" {
		t.Errorf("did not get expected legend_loc: %q", c.LegendLoc)
	}
	if !reflect.DeepEqual(c.Labels, []string{"a", "b"}) {
		t.Errorf("did not get expected labels: %v", c.Labels)
	}
	if c.Line.Color != "red" {
		t.Errorf("did not get expected line color: %q", c.Line.Color)
	}
	if c.Line.Width == nil || *c.Line.Width != 0 {
		t.Errorf("expected zero linewidth to be kept, got: %v", c.Line.Width)
	}
	if FloatOr(c.Line.Alpha, 1) != 0.5 {
		t.Errorf("did not get expected alpha: %v", c.Line.Alpha)
	}
	if c.Regression.LineStyle != "--" || c.Regression.Color != "" {
		t.Errorf("did not get expected regression style: %+v", c.Regression)
	}
	if FloatOr(c.BoxWidth, 0.5) != 0.3 {
		t.Errorf("did not get expected box_width: %v", c.BoxWidth)
	}
	if BoolOr(c.ShowStats, true) {
		t.Error("expected show_stats to be false")
	}
	if FloatOr(c.FontSize, 10) != 12 {
		t.Errorf("did not get expected font_size: %v", c.FontSize)
	}
	if c.Cmap != "viridis" || c.ZLabel != "Temperature" || !BoolOr(c.ShowColorbar, false) {
		t.Errorf("did not get expected colormap options: %q %q %v", c.Cmap, c.ZLabel, c.ShowColorbar)
	}
	if len(c.Invalid) != 0 {
		t.Errorf("did not expect invalid keys: %v", c.Invalid)
	}
}

// TestEmptyStringIsUnset checks that empty string values never override a
// default, whether from the renderer or an engine default style.
func TestEmptyStringIsUnset(t *testing.T) {
	c, err := Parse(`{"title": "", "color": "", "linewidth": "", "grid": "", "reg_color": "", "cmap": ""}`)
	if err != nil {
		t.Fatalf("did not expect error: %v", err)
	}
	if !c.Line.IsZero() || !c.Regression.IsZero() {
		t.Errorf("expected line styles to be unset: %+v %+v", c.Line, c.Regression)
	}
	if c.Grid != nil || c.Title != "" || c.Cmap != "" {
		t.Errorf("expected keys to be unset: %+v", c)
	}
	if len(c.Raw) != 0 {
		t.Errorf("expected empty raw map, got: %v", c.Raw)
	}

	base, err := Parse(`{"title": "Default", "color": "blue", "cmap": "gray"}`)
	if err != nil {
		t.Fatalf("did not expect error: %v", err)
	}
	got := Merge(base, c)
	if got.Title != "Default" || got.Line.Color != "blue" || got.Cmap != "gray" {
		t.Errorf("empty strings overrode defaults: %+v", got)
	}
}

// TestMerge checks that set keys of the override win.
func TestMerge(t *testing.T) {
	base, _ := Parse(`{"title": "Default", "grid": true, "font_size": 8}`)
	over, _ := Parse(`{"title": "Call", "grid": false}`)

	got := Merge(base, over)
	if got.Title != "Call" {
		t.Errorf("did not get expected title: %q", got.Title)
	}
	if BoolOr(got.Grid, true) {
		t.Error("expected grid override to be false")
	}
	if FloatOr(got.FontSize, 0) != 8 {
		t.Errorf("expected font size from base, got: %v", got.FontSize)
	}
}

// TestLineStyle checks prefixed line style extraction.
func TestLineStyle(t *testing.T) {
	c, err := Parse(`{"color": "k", "marker": "o", "reg_color": "red", "reg_linewidth": 2, "reg_marker": ""}`)
	if err != nil {
		t.Fatalf("did not expect error: %v", err)
	}

	primary := c.LineStyle(PrimaryPrefix)
	if primary.Color != "k" || primary.Marker != "o" || primary.Width != nil {
		t.Errorf("did not get expected primary style: %+v", primary)
	}

	reg := c.LineStyle(RegressionPrefix)
	if reg.Color != "red" || reg.Marker != "" || FloatOr(reg.Width, 0) != 2 {
		t.Errorf("did not get expected regression style: %+v", reg)
	}
}

// TestInvalidValues checks that wrongly typed values are reported and unset.
func TestInvalidValues(t *testing.T) {
	c, err := Parse(`{"grid": "maybe", "linewidth": "thick", "xlim": [1], "figsize": {"width": 0, "height": 3}, "labels": 5}`)
	if err != nil {
		t.Fatalf("did not expect error: %v", err)
	}
	if c.Grid != nil || c.Line.Width != nil || c.XLim != nil || c.Figsize != nil || c.Labels != nil {
		t.Errorf("expected invalid values to be unset: %+v", c)
	}

	want := []string{"grid", "labels", "linewidth", "xlim"}
	if !reflect.DeepEqual(c.Invalid, want) {
		t.Errorf("did not get expected invalid keys. Got: %v, Want: %v", c.Invalid, want)
	}
}
