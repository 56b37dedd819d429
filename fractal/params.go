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

package fractal

import (
	"fmt"
	"math"
	"strings"
)

// Float is the set of lane types a strategy can be instantiated with.
type Float interface {
	float32 | float64
}

// MaxIterationsLimit bounds Params.MaxIterations. Packed strategies keep
// their per-lane counts in the lane's float type, and 2^24 is the largest
// count a float32 holds exactly.
const MaxIterationsLimit = 1 << 24

// Precision selects the float width used for the whole computation.
type Precision int

const (
	// Single computes in float32.
	Single Precision = iota
	// Double computes in float64.
	Double
)

func (p Precision) String() string {
	switch p {
	case Single:
		return "single"
	case Double:
		return "double"
	default:
		return fmt.Sprintf("Precision(%d)", int(p))
	}
}

// ParsePrecision accepts "single"/"float32" and "double"/"float64".
func ParsePrecision(s string) (Precision, error) {
	switch strings.ToLower(s) {
	case "single", "float32", "f32":
		return Single, nil
	case "double", "float64", "f64":
		return Double, nil
	}
	return 0, fmt.Errorf("%w: unknown precision %q", ErrConfiguration, s)
}

// Params holds the numeric parameters shared by every sample in a frame.
// A pixel (px, py) maps to c = ((px-OffsetX)/Scale, (py-OffsetY)/Scale).
type Params[T Float] struct {
	MaxIterations uint32
	EscapeRadius  T
	Scale         T
	OffsetX       T
	OffsetY       T
}

// Convert builds Params at precision T from double-precision inputs, which
// is how the configuration layer stores them.
func Convert[T Float](maxIter uint32, radius, scale, offX, offY float64) Params[T] {
	return Params[T]{
		MaxIterations: maxIter,
		EscapeRadius:  T(radius),
		Scale:         T(scale),
		OffsetX:       T(offX),
		OffsetY:       T(offY),
	}
}

// Radius2 returns EscapeRadius² rounded to T. Every strategy compares
// against this exact value.
func (p *Params[T]) Radius2() T {
	return T(p.EscapeRadius * p.EscapeRadius)
}

// Validate checks the parameters at precision T. A zero scale yields
// ErrDegenerateScale; every other problem wraps ErrConfiguration.
func (p *Params[T]) Validate() error {
	if p.MaxIterations == 0 {
		return fmt.Errorf("%w: max iterations must be positive", ErrConfiguration)
	}
	if p.MaxIterations > MaxIterationsLimit {
		return fmt.Errorf("%w: max iterations %d exceeds %d", ErrConfiguration, p.MaxIterations, MaxIterationsLimit)
	}
	if p.Scale == 0 {
		return ErrDegenerateScale
	}
	r := float64(p.EscapeRadius)
	if !(r > 0) || math.IsInf(r, 0) {
		return fmt.Errorf("%w: escape radius must be positive and finite, got %v", ErrConfiguration, r)
	}
	if math.IsInf(float64(p.Radius2()), 0) {
		return fmt.Errorf("%w: escape radius %v overflows when squared", ErrConfiguration, r)
	}
	for name, v := range map[string]T{"scale": p.Scale, "x offset": p.OffsetX, "y offset": p.OffsetY} {
		if f := float64(v); math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrConfiguration, name, f)
		}
	}
	return nil
}

// Viewport is the pixel grid a frame covers and how many times each frame
// recomputes it.
type Viewport struct {
	Width  int
	Height int
	// Repeat is the number of full passes per frame, at least 1. Every pass
	// produces identical output; extra passes only add work.
	Repeat int
}

// Validate checks that the grid is non-empty and Repeat is at least 1.
func (v Viewport) Validate() error {
	if v.Width <= 0 || v.Height <= 0 {
		return fmt.Errorf("%w: viewport %dx%d must be positive", ErrConfiguration, v.Width, v.Height)
	}
	if v.Repeat < 1 {
		return fmt.Errorf("%w: repeat count must be at least 1, got %d", ErrConfiguration, v.Repeat)
	}
	return nil
}

// Pixels returns Width*Height.
func (v Viewport) Pixels() int {
	return v.Width * v.Height
}
