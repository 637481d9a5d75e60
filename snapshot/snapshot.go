/*
DESCRIPTION
  snapshot.go provides reading and writing of render state snapshots, which
  record the data and configuration of a render so it may be replayed.

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

// Package snapshot reads and writes render state snapshots.
//
// A snapshot file is the magic header "LPSNAP", a version byte and the
// gob encoding of a State.
package snapshot

import (
	"bufio"
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/ausocean/labplot/figure"
)

// Ext is the file extension of snapshot files.
const Ext = ".snap"

// Version is the snapshot format version written by Write.
const Version = 1

var magic = []byte("LPSNAP")

// Errors returned when reading snapshots.
var (
	ErrBadMagic   = errors.New("not a snapshot file")
	ErrBadVersion = errors.New("unsupported snapshot version")
)

// Data holds the arrays passed to a render. Only the fields used by the
// state's kind are set.
type Data struct {
	X         []float64
	Y         [][]float64 // A single row for line plots.
	Groups    [][]float64
	Positions []float64
	Z         [][]float64
}

// State is a snapshot of a single render.
type State struct {
	ID      string
	Kind    figure.Kind
	Created time.Time
	Data    Data
	Config  string // JSON style configuration as given.
}

// New returns a new State with a fresh ID and creation time.
func New(kind figure.Kind, d Data, config string) *State {
	return &State{
		ID:      uuid.NewString(),
		Kind:    kind,
		Created: time.Now().UTC(),
		Data:    d,
		Config:  config,
	}
}

// Encode writes s to w.
func Encode(w io.Writer, s *State) error {
	if s == nil {
		return errors.New("nil state")
	}
	_, err := w.Write(append(append([]byte{}, magic...), Version))
	if err != nil {
		return fmt.Errorf("could not write header: %w", err)
	}
	err = gob.NewEncoder(w).Encode(s)
	if err != nil {
		return fmt.Errorf("could not encode state: %w", err)
	}
	return nil
}

// Decode reads a State from r.
func Decode(r io.Reader) (*State, error) {
	hdr := make([]byte, len(magic)+1)
	_, err := io.ReadFull(r, hdr)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrBadMagic
		}
		return nil, fmt.Errorf("could not read header: %w", err)
	}
	if !bytes.Equal(hdr[:len(magic)], magic) {
		return nil, ErrBadMagic
	}
	if v := hdr[len(magic)]; v != Version {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, v)
	}

	var s State
	err = gob.NewDecoder(r).Decode(&s)
	if err != nil {
		return nil, fmt.Errorf("could not decode state: %w", err)
	}
	return &s, nil
}

// Write writes s to the file at path, replacing any existing file.
func Write(path string, s *State) (err error) {
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

	w := bufio.NewWriter(f)
	err = Encode(w, s)
	if err != nil {
		return err
	}
	return w.Flush()
}

// Read reads the snapshot file at path.
func Read(path string) (*State, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(bufio.NewReader(f))
}
