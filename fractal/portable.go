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

import "github.com/ajroetker/hwybrot/hwy"

// portableKernel runs the lane-parallel masked iteration on hwy's portable
// vectors. It needs no special instructions and produces the same counts as
// the packed strategies, at a fraction of their speed.
type portableKernel[T Float] struct{}

func (portableKernel[T]) Name() string { return "portable" }

func (portableKernel[T]) Lanes() int { return hwy.MaxLanes[T]() }

func (portableKernel[T]) EscapeBatch(p *Params[T], x0, y0 []T, counts []uint32) {
	lanes := hwy.MaxLanes[T]()
	r2 := hwy.Set(p.Radius2())
	one := hwy.Set(T(1))
	for i := 0; i+lanes <= len(x0); i += lanes {
		cx := hwy.Load(x0[i:])
		cy := hwy.Load(y0[i:])
		x, y := cx, cy
		n := hwy.Zero[T]()
		// A lane leaves the active set once it escapes and never rejoins,
		// so its count freezes exactly where the scalar loop would stop.
		active := hwy.MaskAll[T](lanes)
		for it := uint32(0); it < p.MaxIterations; it++ {
			xx := hwy.Mul(x, x)
			yy := hwy.Mul(y, y)
			xy := hwy.Mul(x, y)
			active = hwy.MaskAnd(active, hwy.LessEqual(hwy.Add(xx, yy), r2))
			if !active.AnyTrue() {
				break
			}
			n = hwy.Add(n, hwy.IfThenElseZero(active, one))
			x = hwy.Add(hwy.Sub(xx, yy), cx)
			y = hwy.Add(hwy.Add(xy, xy), cy)
		}
		storeCounts(n.Data(), counts[i:i+lanes])
	}
}
