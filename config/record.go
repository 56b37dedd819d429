// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config reads the fractal parameter record and validates the run
// options gathered by the command line.
//
// A parameter record is free text up to the first '$', followed by
// "key = value" lines:
//
//	Seahorse valley, close up.
//	$
//	iters_cnt = 512
//	r_circle_inf = 10
//	scale = 4000
//	x_offset = 3400
//	y_offset = 300
//
// iters_cnt, r_circle_inf and scale are required. x_offset and y_offset
// default to the centre of the screen. Every problem is reported as a
// *FieldError wrapping fractal.ErrConfiguration.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/ajroetker/hwybrot/fractal"
)

// Record keys.
const (
	KeyIterations = "iters_cnt"
	KeyRadius     = "r_circle_inf"
	KeyScale      = "scale"
	KeyOffsetX    = "x_offset"
	KeyOffsetY    = "y_offset"
)

// FieldError reports a bad, missing or malformed configuration value.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("config: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config: %s = %q: %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

func fieldErr(field, value string, format string, args ...any) *FieldError {
	return &FieldError{
		Field: field,
		Value: value,
		Err:   fmt.Errorf("%w: "+format, append([]any{fractal.ErrConfiguration}, args...)...),
	}
}

// Record is a parsed parameter record.
type Record struct {
	// Header is the free text before the '$' line, trimmed.
	Header        string
	MaxIterations uint32
	EscapeRadius  float64
	Scale         float64
	// OffsetX and OffsetY are nil when the record leaves them to default.
	OffsetX *float64
	OffsetY *float64
}

// DefaultRecord is used when no record file is given: the whole set at
// 200 pixels per unit.
func DefaultRecord() *Record {
	return &Record{
		Header:        "default view",
		MaxIterations: 256,
		EscapeRadius:  10,
		Scale:         200,
	}
}

// LoadRecord parses the record file at path.
func LoadRecord(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FieldError{Field: "params", Value: path, Err: fmt.Errorf("%w: %w", fractal.ErrConfiguration, err)}
	}
	defer f.Close()
	return ParseRecord(f)
}

// ParseRecord parses a record from r.
func ParseRecord(r io.Reader) (*Record, error) {
	sc := bufio.NewScanner(r)
	var header strings.Builder
	found := false
	for sc.Scan() {
		line := sc.Text()
		before, after, ok := strings.Cut(line, "$")
		header.WriteString(before)
		if ok {
			if strings.TrimSpace(after) != "" {
				return nil, fieldErr("$", after, "unexpected text after the header terminator")
			}
			found = true
			break
		}
		header.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("config: read record: %w", err)
	}
	if !found {
		return nil, fieldErr("$", "", "missing header terminator")
	}

	rec := &Record{Header: strings.TrimSpace(header.String())}
	seen := map[string]bool{}
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fieldErr(line, "", "expected key = value")
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if seen[key] {
			return nil, fieldErr(key, value, "duplicate key")
		}
		seen[key] = true
		if err := rec.set(key, value); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("config: read record: %w", err)
	}

	for _, key := range []string{KeyIterations, KeyRadius, KeyScale} {
		if !seen[key] {
			return nil, fieldErr(key, "", "missing")
		}
	}
	return rec, nil
}

func (rec *Record) set(key, value string) error {
	switch key {
	case KeyIterations:
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return fieldErr(key, value, "not an unsigned integer")
		}
		if n == 0 || n > fractal.MaxIterationsLimit {
			return fieldErr(key, value, "must be in [1, %d]", fractal.MaxIterationsLimit)
		}
		rec.MaxIterations = uint32(n)
	case KeyRadius:
		f, err := parseFinite(key, value)
		if err != nil {
			return err
		}
		if f <= 0 {
			return fieldErr(key, value, "must be positive")
		}
		rec.EscapeRadius = f
	case KeyScale:
		f, err := parseFinite(key, value)
		if err != nil {
			return err
		}
		if f == 0 {
			return &FieldError{Field: key, Value: value, Err: fractal.ErrDegenerateScale}
		}
		rec.Scale = f
	case KeyOffsetX:
		f, err := parseFinite(key, value)
		if err != nil {
			return err
		}
		rec.OffsetX = &f
	case KeyOffsetY:
		f, err := parseFinite(key, value)
		if err != nil {
			return err
		}
		rec.OffsetY = &f
	default:
		return fieldErr(key, value, "unknown key")
	}
	return nil
}

func parseFinite(key, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange) {
			return 0, fieldErr(key, value, "out of range")
		}
		return 0, fieldErr(key, value, "not a number")
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fieldErr(key, value, "must be finite")
	}
	return f, nil
}

// Offsets returns the record's offsets, defaulting each missing one to the
// centre of a width x height screen.
func (rec *Record) Offsets(width, height int) (x, y float64) {
	x, y = float64(width>>1), float64(height>>1)
	if rec.OffsetX != nil {
		x = *rec.OffsetX
	}
	if rec.OffsetY != nil {
		y = *rec.OffsetY
	}
	return x, y
}

// Params converts the record to validated parameters at precision T for a
// width x height screen.
func Params[T fractal.Float](rec *Record, width, height int) (fractal.Params[T], error) {
	x, y := rec.Offsets(width, height)
	p := fractal.Convert[T](rec.MaxIterations, rec.EscapeRadius, rec.Scale, x, y)
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("config: %w", err)
	}
	return p, nil
}
