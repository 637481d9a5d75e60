/*
DESCRIPTION
  options.go provides functional options for use in the Engine initialiser.

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

package engine

import (
	"errors"
	"fmt"
	"os"

	"github.com/ausocean/utils/logging"

	"github.com/ausocean/labplot/style"
)

// Option is the function signature returned by option functions below for
// use in the Engine initialiser.
type Option func(*Engine) error

// WithStyle returns an Option that sets the default style, given as a JSON
// style document. Keys set in a call's configuration take precedence.
func WithStyle(s string) Option {
	return func(e *Engine) error {
		c, err := style.Parse(s)
		if err != nil {
			return fmt.Errorf("invalid default style: %w", err)
		}
		e.style = c
		return nil
	}
}

// WithLogger returns an Option that sets the Engine's logger.
func WithLogger(l logging.Logger) Option {
	return func(e *Engine) error {
		if l == nil {
			return errors.New("nil logger")
		}
		e.log = l
		return nil
	}
}

// WithRenderer returns an Option that sets the Renderer figures are drawn
// with.
func WithRenderer(r Renderer) Option {
	return func(e *Engine) error {
		if r == nil {
			return errors.New("nil renderer")
		}
		e.renderer = r
		return nil
	}
}

// WithSnapshots returns an Option that enables writing a state snapshot to
// dir after each successful render. The directory is created if needed.
func WithSnapshots(dir string) Option {
	return func(e *Engine) error {
		if dir == "" {
			return nil
		}
		err := os.MkdirAll(dir, 0o755)
		if err != nil {
			return fmt.Errorf("could not create snapshot directory: %w", err)
		}
		e.snapDir = dir
		return nil
	}
}
