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

// Escape returns the number of iterations of z -> z² + c, starting from
// z = c = (x0, y0), completed before |z|² exceeds Radius2, capped at
// MaxIterations. The comparison is strict: a magnitude exactly equal to the
// radius still counts as bounded. A NaN magnitude counts as escaped.
//
// This is the reference every other strategy must match.
func Escape[T Float](p *Params[T], x0, y0 T) uint32 {
	r2 := p.Radius2()
	x, y := x0, y0
	var n uint32
	for ; n < p.MaxIterations; n++ {
		xx := T(x * x)
		yy := T(y * y)
		xy := T(x * y)
		if !(T(xx+yy) <= r2) {
			break
		}
		x = T(T(xx-yy) + x0)
		y = T(T(xy+xy) + y0)
	}
	return n
}

type scalarKernel[T Float] struct{}

func (scalarKernel[T]) Name() string { return "scalar" }
func (scalarKernel[T]) Lanes() int   { return 1 }

func (scalarKernel[T]) EscapeBatch(p *Params[T], x0, y0 []T, counts []uint32) {
	for i := range x0 {
		counts[i] = Escape(p, x0[i], y0[i])
	}
}
