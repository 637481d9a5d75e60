/*
DESCRIPTION
  snapshot_test.go provides testing for snapshot reading and writing.

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

package snapshot

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/ausocean/labplot/figure"
)

// TestWriteRead checks that a written snapshot is read back intact,
// including NaN values.
func TestWriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "box"+Ext)
	in := New(figure.KindBoxplotRegression, Data{
		Groups:    [][]float64{{1, 2, math.NaN()}, {3}},
		Positions: []float64{10, 20},
	}, `{"title":"Boxes"}`)

	if _, err := uuid.Parse(in.ID); err != nil {
		t.Errorf("did not get a valid ID: %v", err)
	}

	err := Write(path, in)
	if err != nil {
		t.Fatalf("could not write snapshot: %v", err)
	}
	out, err := Read(path)
	if err != nil {
		t.Fatalf("could not read snapshot: %v", err)
	}

	if out.ID != in.ID || out.Kind != in.Kind || out.Config != in.Config || !out.Created.Equal(in.Created) {
		t.Errorf("did not get expected state. Got: %+v, Want: %+v", out, in)
	}
	if len(out.Data.Groups) != 2 || !math.IsNaN(out.Data.Groups[0][2]) || out.Data.Positions[1] != 20 {
		t.Errorf("did not get expected data. Got: %+v", out.Data)
	}
}

// TestBadHeader checks that files that are not snapshots are rejected.
func TestBadHeader(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{name: "empty", data: nil, want: ErrBadMagic},
		{name: "short", data: []byte("LP"), want: ErrBadMagic},
		{name: "png", data: []byte("\x89PNG\r\n\x1a\n"), want: ErrBadMagic},
		{name: "version", data: append([]byte("LPSNAP"), 9), want: ErrBadVersion},
	}

	for _, test := range tests {
		_, err := Decode(bytes.NewReader(test.data))
		if !errors.Is(err, test.want) {
			t.Errorf("did not get expected error for test %q. Got: %v, Want: %v", test.name, err, test.want)
		}
	}
}

// TestReadMissing checks that a missing file is reported.
func TestReadMissing(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing"+Ext))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("did not get expected error. Got: %v, Want: %v", err, os.ErrNotExist)
	}
}
