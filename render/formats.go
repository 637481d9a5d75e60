/*
DESCRIPTION
  formats.go registers the image formats plots may be saved as.

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
	"bufio"
	"io"

	"golang.org/x/image/bmp"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	// Vector formats register themselves on import.
	_ "gonum.org/v1/plot/vg/vgeps"
	_ "gonum.org/v1/plot/vg/vgpdf"
	_ "gonum.org/v1/plot/vg/vgsvg"
)

func init() {
	draw.RegisterFormat("bmp", func(w, h vg.Length) vg.CanvasWriterTo {
		return bmpCanvas{Canvas: vgimg.New(w, h)}
	})
}

// bmpCanvas is an image canvas that writes a bmp image.
type bmpCanvas struct {
	*vgimg.Canvas
}

// WriteTo implements the io.WriterTo interface, writing a bmp image.
func (c bmpCanvas) WriteTo(w io.Writer) (int64, error) {
	wc := &countWriter{w: w}
	b := bufio.NewWriter(wc)
	err := bmp.Encode(b, c.Image())
	if err != nil {
		return wc.n, err
	}
	err = b.Flush()
	return wc.n, err
}

// countWriter counts the bytes written to w.
type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
