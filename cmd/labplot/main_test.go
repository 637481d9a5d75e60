/*
DESCRIPTION
  main_test.go provides testing for request decoding and the labplot
  commands.

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

package main

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ausocean/utils/logging"
)

// TestReadRequest checks decoding of numbers, missing values and config.
func TestReadRequest(t *testing.T) {
	in := `{
		"x": [0, 1, "2", null],
		"y": [[1, "NaN"], [3, "-inf"]],
		"groups": [[1, 2], [null]],
		"config": "{\"title\":\"Quoted\"}",
		"path": "out.png"
	}`
	req, err := readRequest("", strings.NewReader(in))
	if err != nil {
		t.Fatalf("could not read request: %v", err)
	}

	if len(req.X) != 4 || req.X[2] != 2 || !math.IsNaN(req.X[3]) {
		t.Errorf("did not get expected x. Got: %v", req.X)
	}
	y, err := req.matrixY()
	if err != nil {
		t.Fatalf("could not decode y: %v", err)
	}
	if len(y) != 2 || !math.IsNaN(y[0][1]) || !math.IsInf(y[1][1], -1) {
		t.Errorf("did not get expected y. Got: %v", y)
	}
	if g := req.Groups.rows(); len(g) != 2 || !math.IsNaN(g[1][0]) {
		t.Errorf("did not get expected groups. Got: %v", g)
	}
	c, err := req.config()
	if err != nil || c != `{"title":"Quoted"}` {
		t.Errorf("did not get expected config. Got: %q, %v", c, err)
	}
	if req.Path != "out.png" {
		t.Errorf("did not get expected path. Got: %q", req.Path)
	}
}

// TestRequestConfig checks the accepted forms of the config field.
func TestRequestConfig(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: `{}`, want: ""},
		{in: `{"config": null}`, want: ""},
		{in: `{"config": {"grid": true}}`, want: `{"grid": true}`},
		{in: `{"config": "not json"}`, want: "not json"},
	}
	for _, test := range tests {
		req, err := readRequest("-", strings.NewReader(test.in))
		if err != nil {
			t.Errorf("could not read request %s: %v", test.in, err)
			continue
		}
		got, err := req.config()
		if err != nil || got != test.want {
			t.Errorf("did not get expected config for %s. Got: %q, Want: %q", test.in, got, test.want)
		}
	}
}

// TestVectorY checks that y may be a vector or a matrix.
func TestVectorY(t *testing.T) {
	req, err := readRequest("", strings.NewReader(`{"y": [1, 2, 3]}`))
	if err != nil {
		t.Fatalf("could not read request: %v", err)
	}
	v, err := req.vectorY()
	if err != nil || !reflect.DeepEqual(v, []float64{1, 2, 3}) {
		t.Errorf("did not get expected vector. Got: %v, %v", v, err)
	}
	m, err := req.matrixY()
	if err != nil || !reflect.DeepEqual(m, [][]float64{{1, 2, 3}}) {
		t.Errorf("did not get expected matrix. Got: %v, %v", m, err)
	}
}

// TestBadRequest checks that malformed requests are rejected.
func TestBadRequest(t *testing.T) {
	_, err := readRequest("", strings.NewReader(`{"x": [1, "one"]}`))
	if !errors.Is(err, errNotNumber) {
		t.Errorf("did not get expected error. Got: %v, Want: %v", err, errNotNumber)
	}
	_, err = readRequest("", strings.NewReader(`{"x": `))
	if err == nil {
		t.Error("expected error for truncated request")
	}
	_, err = readRequest(filepath.Join(t.TempDir(), "missing.json"), nil)
	if err == nil {
		t.Error("expected error for missing request file")
	}
}

// TestParseLevel checks log level names.
func TestParseLevel(t *testing.T) {
	lvl, err := parseLevel(" Warning ")
	if err != nil || lvl != int8(logging.Warning) {
		t.Errorf("did not get expected level. Got: %v, %v", lvl, err)
	}
	_, err = parseLevel("loud")
	if err == nil {
		t.Error("expected error for unknown level")
	}
}

// run executes the root command with args and stdin, returning stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &out)
	dir := t.TempDir()
	cfg := filepath.Join(dir, "labplot.yaml")
	err := os.WriteFile(cfg, []byte("log-level: debug\n"), 0o644)
	if err != nil {
		t.Fatalf("could not write config: %v", err)
	}
	cmd.SetArgs(append([]string{"--config", cfg, "--log-path", filepath.Join(dir, "labplot.log")}, args...))
	err = cmd.Execute()
	return strings.TrimSpace(out.String()), err
}

// TestCommands checks that each subcommand renders its request.
func TestCommands(t *testing.T) {
	dir := t.TempDir()
	snaps := filepath.Join(dir, "snaps")

	tests := []struct {
		cmd, req, out string
	}{
		{cmd: "line", req: `{"x":[0,1,2],"y":[1,4,9],"config":{"title":"Squares"}}`, out: "line.png"},
		{cmd: "multiline", req: `{"x":[0,1,2],"y":[[1,4,9],[9,4,1]],"config":"{\"labels\":[\"up\"]}"}`, out: "multi.svg"},
		{cmd: "boxplot", req: `{"groups":[[1,2,3],[2,4,null]],"positions":[10,20]}`, out: "box.png"},
		{cmd: "colormap", req: `{"z":[[1,2],[3,4]],"x":[0,10],"y":[0,5],"config":{"cmap":"magma"}}`, out: "map.bmp"},
	}

	for _, test := range tests {
		path := filepath.Join(dir, test.out)
		got, err := run(t, test.req, test.cmd, "--out", path, "--snapshots", snaps)
		if err != nil {
			t.Errorf("unexpected error for %s: %v", test.cmd, err)
			continue
		}
		if got != "Success" {
			t.Errorf("did not get expected status for %s. Got: %q, Want: %q", test.cmd, got, "Success")
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected %s to be written: %v", path, err)
		}
	}

	replayed := filepath.Join(dir, "again.png")
	got, err := run(t, "", "replay", filepath.Join(snaps, "box.snap"), "--out", replayed)
	if err != nil || got != "Success" {
		t.Errorf("did not get expected replay result. Got: %q, %v", got, err)
	}
	if _, err := os.Stat(replayed); err != nil {
		t.Errorf("expected replayed file to be written: %v", err)
	}
}

// TestCommandFailure checks that an error status is printed and reported.
func TestCommandFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "box.png")
	got, err := run(t, `{"groups":[[null,null]],"positions":[1]}`, "boxplot", "--out", path)
	if !errors.Is(err, errPlotFailed) {
		t.Errorf("did not get expected error. Got: %v, Want: %v", err, errPlotFailed)
	}
	want := "Error: No valid data found (all NaNs or empty)"
	if got != want {
		t.Errorf("did not get expected status. Got: %q, Want: %q", got, want)
	}

	_, err = run(t, `{"x":[0,1],"y":[0,1]}`, "line")
	if err == nil {
		t.Error("expected error for missing output path")
	}
}
