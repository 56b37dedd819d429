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

// Package fractal renders the escape-time picture of the quadratic map
// z -> z² + c into a pixel grid.
//
// The work is split the same way for every build:
//
//   - Map turns a pixel coordinate into a sample point c = (x0, y0).
//   - A Kernel evaluates a batch of sample points and returns one
//     iteration count per point. Escape is the scalar reference; the other
//     strategies (portable lane loops, 128-bit and 256-bit packed, and
//     four-way unrolled packed) must agree with it bit for bit at the same
//     precision.
//   - Renderer walks the grid row by row, optionally across a worker pool,
//     repeats the whole pass Viewport.Repeat times, and hands each count to
//     an injected palette.Colorizer when a frame buffer is attached.
//
// Packed strategies are compiled in with GOEXPERIMENT=simd on amd64 and
// usable only when the CPU supports them. Best returns the fastest one
// available; Lookup selects one by name.
//
// Example:
//
//	p := fractal.Params[float32]{MaxIterations: 256, EscapeRadius: 10, Scale: 200, OffsetX: 400, OffsetY: 300}
//	s := fractal.Best()
//	r, err := fractal.NewRenderer(p, fractal.Viewport{Width: 800, Height: 600, Repeat: 1},
//	    fractal.KernelFor[float32](s), fractal.WithSink(buf, palette.Classic))
//	if err != nil {
//	    return err
//	}
//	err = r.RunFrame()
package fractal
