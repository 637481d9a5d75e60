/*
DESCRIPTION
  request.go provides decoding of JSON render requests.

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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// request is a JSON render request.
type request struct {
	X         vector          `json:"x"`
	Y         json.RawMessage `json:"y"` // A vector, or a matrix for multi-line plots.
	Groups    matrix          `json:"groups"`
	Positions vector          `json:"positions"`
	Z         matrix          `json:"z"`
	Config    json.RawMessage `json:"config"`
	Path      string          `json:"path"`
}

// readRequest decodes a request from the file at path, or from r if path is
// empty or "-".
func readRequest(path string, r io.Reader) (*request, error) {
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("could not open request: %w", err)
		}
		defer f.Close()
		r = f
	}

	var req request
	err := json.NewDecoder(r).Decode(&req)
	if err != nil {
		return nil, fmt.Errorf("could not decode request: %w", err)
	}
	return &req, nil
}

// config returns the style configuration as a JSON document. It may be given
// in the request as an object or as a JSON encoded string.
func (r *request) config() (string, error) {
	raw := bytes.TrimSpace(r.Config)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		err := json.Unmarshal(raw, &s)
		if err != nil {
			return "", fmt.Errorf("could not decode config string: %w", err)
		}
		return s, nil
	}
	return string(raw), nil
}

// vectorY returns y as a vector.
func (r *request) vectorY() ([]float64, error) {
	if len(r.Y) == 0 {
		return nil, nil
	}
	var v vector
	err := json.Unmarshal(r.Y, &v)
	if err != nil {
		return nil, fmt.Errorf("could not decode y vector: %w", err)
	}
	return v, nil
}

// matrixY returns y as a matrix. A vector is taken as a single row.
func (r *request) matrixY() ([][]float64, error) {
	if len(r.Y) == 0 {
		return nil, nil
	}
	var m matrix
	err := json.Unmarshal(r.Y, &m)
	if err == nil {
		return m.rows(), nil
	}
	v, verr := r.vectorY()
	if verr != nil {
		return nil, fmt.Errorf("could not decode y matrix: %w", err)
	}
	return [][]float64{v}, nil
}

// vector is a slice of numbers which may hold null or "NaN" for missing
// values, and "Inf" or "-Inf".
type vector []float64

// UnmarshalJSON implements the json.Unmarshaler interface.
func (v *vector) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*v = nil
		return nil
	}
	var raw []json.RawMessage
	err := json.Unmarshal(b, &raw)
	if err != nil {
		return err
	}
	out := make(vector, len(raw))
	for i, r := range raw {
		out[i], err = number(r)
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	*v = out
	return nil
}

// matrix is a slice of vectors.
type matrix []vector

func (m matrix) rows() [][]float64 {
	if m == nil {
		return nil
	}
	out := make([][]float64, len(m))
	for i, r := range m {
		out[i] = r
	}
	return out
}

var errNotNumber = errors.New("not a number")

// number decodes a JSON number, null (NaN) or numeric string.
func number(b []byte) (float64, error) {
	s := string(bytes.TrimSpace(b))
	if s == "null" {
		return math.NaN(), nil
	}
	if strings.HasPrefix(s, `"`) {
		err := json.Unmarshal(b, &s)
		if err != nil {
			return 0, err
		}
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "nan", "":
			return math.NaN(), nil
		case "inf", "+inf", "infinity":
			return math.Inf(1), nil
		case "-inf", "-infinity":
			return math.Inf(-1), nil
		}
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errNotNumber, s)
	}
	return f, nil
}
