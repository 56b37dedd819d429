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

package main

import "github.com/ajroetker/hwybrot/fractal"

const (
	panFraction = 0.1
	zoomFactor  = 1.25
)

// pan shifts the view by dx, dy pixels: a positive dx brings content from
// the right edge into view.
func pan[T fractal.Float](p fractal.Params[T], dx, dy float64) fractal.Params[T] {
	p.OffsetX -= T(dx)
	p.OffsetY -= T(dy)
	return p
}

// zoom scales the view by factor around pixel (cx, cy), which keeps
// sampling the same point.
func zoom[T fractal.Float](p fractal.Params[T], factor, cx, cy float64) fractal.Params[T] {
	p.Scale *= T(factor)
	p.OffsetX = T(cx) - (T(cx)-p.OffsetX)*T(factor)
	p.OffsetY = T(cy) - (T(cy)-p.OffsetY)*T(factor)
	return p
}
