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

// Map returns the sample point for pixel (px, py). Each step is rounded to
// T so every strategy sees the same inputs regardless of how the compiler
// would otherwise fuse the arithmetic.
func Map[T Float](p *Params[T], px, py int) (x0, y0 T) {
	x0 = T(T(T(px)-p.OffsetX) / p.Scale)
	y0 = T(T(T(py)-p.OffsetY) / p.Scale)
	return x0, y0
}

// MapRow fills x0[i] with the abscissa of pixel (i, py) and every entry of
// y0 with the row's ordinate. len(y0) may exceed len(x0) so padded lanes
// share the row's y.
func MapRow[T Float](p *Params[T], py int, x0, y0 []T) {
	for i := range x0 {
		x0[i] = T(T(T(i)-p.OffsetX) / p.Scale)
	}
	y := T(T(T(py)-p.OffsetY) / p.Scale)
	for i := range y0 {
		y0[i] = y
	}
}
