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

//go:build amd64 && goexperiment.simd

package fractal

import (
	"simd/archsimd"

	"github.com/ajroetker/hwybrot/hwy"
)

// The packed kernels below all follow the same shape: square the orbit,
// clear the lanes whose |z|² exceeds the radius from the sticky active
// mask, stop when no lane is active, add 1.0 to the active lanes' counts,
// and advance z. Each archsimd op rounds to the lane type, which keeps the
// counts identical to Escape.

func init() {
	register(Strategy{
		Name:      "sse",
		Level:     hwy.DispatchSSE2,
		Priority:  10,
		available: hwy.HasAVX,
		f32:       packedKernel[float32]{name: "sse", lanes: 4, fn: escapeF32x4},
		f64:       packedKernel[float64]{name: "sse", lanes: 2, fn: escapeF64x2},
	})
	register(Strategy{
		Name:      "sse-x4",
		Level:     hwy.DispatchSSE2,
		Priority:  12,
		Unrolled:  true,
		available: hwy.HasAVX,
		f32:       packedKernel[float32]{name: "sse-x4", lanes: 16, fn: escapeF32x4Unrolled},
		f64:       packedKernel[float64]{name: "sse-x4", lanes: 8, fn: escapeF64x2Unrolled},
	})
	register(Strategy{
		Name:      "avx2",
		Level:     hwy.DispatchAVX2,
		Priority:  20,
		available: hwy.HasAVX2,
		f32:       packedKernel[float32]{name: "avx2", lanes: 8, fn: escapeF32x8},
		f64:       packedKernel[float64]{name: "avx2", lanes: 4, fn: escapeF64x4},
	})
	register(Strategy{
		Name:      "avx2-x4",
		Level:     hwy.DispatchAVX2,
		Priority:  25,
		Unrolled:  true,
		available: hwy.HasAVX2,
		f32:       packedKernel[float32]{name: "avx2-x4", lanes: 32, fn: escapeF32x8Unrolled},
		f64:       packedKernel[float64]{name: "avx2-x4", lanes: 16, fn: escapeF64x4Unrolled},
	})
}

type packedKernel[T Float] struct {
	name  string
	lanes int
	fn    func(p *Params[T], x0, y0 []T, counts []uint32)
}

func (k packedKernel[T]) Name() string { return k.name }
func (k packedKernel[T]) Lanes() int   { return k.lanes }

func (k packedKernel[T]) EscapeBatch(p *Params[T], x0, y0 []T, counts []uint32) {
	k.fn(p, x0, y0, counts)
}

func escapeF32x8(p *Params[float32], x0, y0 []float32, counts []uint32) {
	r2 := archsimd.BroadcastFloat32x8(p.Radius2())
	one := archsimd.BroadcastFloat32x8(1)
	zero := archsimd.BroadcastFloat32x8(0)
	var buf [8]float32
	for i := 0; i+8 <= len(x0); i += 8 {
		cx := archsimd.LoadFloat32x8Slice(x0[i:])
		cy := archsimd.LoadFloat32x8Slice(y0[i:])
		x, y, n := cx, cy, zero
		active := zero.Equal(zero)
		for it := uint32(0); it < p.MaxIterations; it++ {
			xx := x.Mul(x)
			yy := y.Mul(y)
			xy := x.Mul(y)
			active = active.And(xx.Add(yy).LessEqual(r2))
			if active.ToBits() == 0 {
				break
			}
			n = n.Add(one.Merge(zero, active))
			x = xx.Sub(yy).Add(cx)
			y = xy.Add(xy).Add(cy)
		}
		n.StoreSlice(buf[:])
		storeCounts(buf[:], counts[i:i+8])
	}
}

func escapeF64x4(p *Params[float64], x0, y0 []float64, counts []uint32) {
	r2 := archsimd.BroadcastFloat64x4(p.Radius2())
	one := archsimd.BroadcastFloat64x4(1)
	zero := archsimd.BroadcastFloat64x4(0)
	var buf [4]float64
	for i := 0; i+4 <= len(x0); i += 4 {
		cx := archsimd.LoadFloat64x4Slice(x0[i:])
		cy := archsimd.LoadFloat64x4Slice(y0[i:])
		x, y, n := cx, cy, zero
		active := zero.Equal(zero)
		for it := uint32(0); it < p.MaxIterations; it++ {
			xx := x.Mul(x)
			yy := y.Mul(y)
			xy := x.Mul(y)
			active = active.And(xx.Add(yy).LessEqual(r2))
			if active.ToBits() == 0 {
				break
			}
			n = n.Add(one.Merge(zero, active))
			x = xx.Sub(yy).Add(cx)
			y = xy.Add(xy).Add(cy)
		}
		n.StoreSlice(buf[:])
		storeCounts(buf[:], counts[i:i+4])
	}
}

func escapeF32x4(p *Params[float32], x0, y0 []float32, counts []uint32) {
	r2 := archsimd.BroadcastFloat32x4(p.Radius2())
	one := archsimd.BroadcastFloat32x4(1)
	zero := archsimd.BroadcastFloat32x4(0)
	var buf [4]float32
	for i := 0; i+4 <= len(x0); i += 4 {
		cx := archsimd.LoadFloat32x4Slice(x0[i:])
		cy := archsimd.LoadFloat32x4Slice(y0[i:])
		x, y, n := cx, cy, zero
		active := zero.Equal(zero)
		for it := uint32(0); it < p.MaxIterations; it++ {
			xx := x.Mul(x)
			yy := y.Mul(y)
			xy := x.Mul(y)
			active = active.And(xx.Add(yy).LessEqual(r2))
			if active.ToBits() == 0 {
				break
			}
			n = n.Add(one.Merge(zero, active))
			x = xx.Sub(yy).Add(cx)
			y = xy.Add(xy).Add(cy)
		}
		n.StoreSlice(buf[:])
		storeCounts(buf[:], counts[i:i+4])
	}
}

func escapeF64x2(p *Params[float64], x0, y0 []float64, counts []uint32) {
	r2 := archsimd.BroadcastFloat64x2(p.Radius2())
	one := archsimd.BroadcastFloat64x2(1)
	zero := archsimd.BroadcastFloat64x2(0)
	var buf [2]float64
	for i := 0; i+2 <= len(x0); i += 2 {
		cx := archsimd.LoadFloat64x2Slice(x0[i:])
		cy := archsimd.LoadFloat64x2Slice(y0[i:])
		x, y, n := cx, cy, zero
		active := zero.Equal(zero)
		for it := uint32(0); it < p.MaxIterations; it++ {
			xx := x.Mul(x)
			yy := y.Mul(y)
			xy := x.Mul(y)
			active = active.And(xx.Add(yy).LessEqual(r2))
			if active.ToBits() == 0 {
				break
			}
			n = n.Add(one.Merge(zero, active))
			x = xx.Sub(yy).Add(cx)
			y = xy.Add(xy).Add(cy)
		}
		n.StoreSlice(buf[:])
		storeCounts(buf[:], counts[i:i+2])
	}
}
