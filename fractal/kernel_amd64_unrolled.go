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

import "simd/archsimd"

// The unrolled kernels advance four independent vector groups per
// iteration so the multiply latency of one group hides behind the others.
// A group whose lanes have all escaped keeps its frozen mask; the loop runs
// until every group is done.

func escapeF32x8Unrolled(p *Params[float32], x0, y0 []float32, counts []uint32) {
	r2 := archsimd.BroadcastFloat32x8(p.Radius2())
	one := archsimd.BroadcastFloat32x8(1)
	zero := archsimd.BroadcastFloat32x8(0)
	var buf [8]float32
	for i := 0; i+32 <= len(x0); i += 32 {
		cx0 := archsimd.LoadFloat32x8Slice(x0[i:])
		cx1 := archsimd.LoadFloat32x8Slice(x0[i+8:])
		cx2 := archsimd.LoadFloat32x8Slice(x0[i+16:])
		cx3 := archsimd.LoadFloat32x8Slice(x0[i+24:])
		cy0 := archsimd.LoadFloat32x8Slice(y0[i:])
		cy1 := archsimd.LoadFloat32x8Slice(y0[i+8:])
		cy2 := archsimd.LoadFloat32x8Slice(y0[i+16:])
		cy3 := archsimd.LoadFloat32x8Slice(y0[i+24:])
		xa, xb, xc, xd := cx0, cx1, cx2, cx3
		ya, yb, yc, yd := cy0, cy1, cy2, cy3
		na, nb, nc, nd := zero, zero, zero, zero
		all := zero.Equal(zero)
		ma, mb, mc, md := all, all, all, all
		for it := uint32(0); it < p.MaxIterations; it++ {
			xxa, yya, xya := xa.Mul(xa), ya.Mul(ya), xa.Mul(ya)
			xxb, yyb, xyb := xb.Mul(xb), yb.Mul(yb), xb.Mul(yb)
			xxc, yyc, xyc := xc.Mul(xc), yc.Mul(yc), xc.Mul(yc)
			xxd, yyd, xyd := xd.Mul(xd), yd.Mul(yd), xd.Mul(yd)
			ma = ma.And(xxa.Add(yya).LessEqual(r2))
			mb = mb.And(xxb.Add(yyb).LessEqual(r2))
			mc = mc.And(xxc.Add(yyc).LessEqual(r2))
			md = md.And(xxd.Add(yyd).LessEqual(r2))
			if ma.Or(mb).Or(mc).Or(md).ToBits() == 0 {
				break
			}
			na = na.Add(one.Merge(zero, ma))
			nb = nb.Add(one.Merge(zero, mb))
			nc = nc.Add(one.Merge(zero, mc))
			nd = nd.Add(one.Merge(zero, md))
			xa, ya = xxa.Sub(yya).Add(cx0), xya.Add(xya).Add(cy0)
			xb, yb = xxb.Sub(yyb).Add(cx1), xyb.Add(xyb).Add(cy1)
			xc, yc = xxc.Sub(yyc).Add(cx2), xyc.Add(xyc).Add(cy2)
			xd, yd = xxd.Sub(yyd).Add(cx3), xyd.Add(xyd).Add(cy3)
		}
		for g, n := range [4]archsimd.Float32x8{na, nb, nc, nd} {
			n.StoreSlice(buf[:])
			storeCounts(buf[:], counts[i+8*g:i+8*g+8])
		}
	}
}

func escapeF64x4Unrolled(p *Params[float64], x0, y0 []float64, counts []uint32) {
	r2 := archsimd.BroadcastFloat64x4(p.Radius2())
	one := archsimd.BroadcastFloat64x4(1)
	zero := archsimd.BroadcastFloat64x4(0)
	var buf [4]float64
	for i := 0; i+16 <= len(x0); i += 16 {
		cx0 := archsimd.LoadFloat64x4Slice(x0[i:])
		cx1 := archsimd.LoadFloat64x4Slice(x0[i+4:])
		cx2 := archsimd.LoadFloat64x4Slice(x0[i+8:])
		cx3 := archsimd.LoadFloat64x4Slice(x0[i+12:])
		cy0 := archsimd.LoadFloat64x4Slice(y0[i:])
		cy1 := archsimd.LoadFloat64x4Slice(y0[i+4:])
		cy2 := archsimd.LoadFloat64x4Slice(y0[i+8:])
		cy3 := archsimd.LoadFloat64x4Slice(y0[i+12:])
		xa, xb, xc, xd := cx0, cx1, cx2, cx3
		ya, yb, yc, yd := cy0, cy1, cy2, cy3
		na, nb, nc, nd := zero, zero, zero, zero
		all := zero.Equal(zero)
		ma, mb, mc, md := all, all, all, all
		for it := uint32(0); it < p.MaxIterations; it++ {
			xxa, yya, xya := xa.Mul(xa), ya.Mul(ya), xa.Mul(ya)
			xxb, yyb, xyb := xb.Mul(xb), yb.Mul(yb), xb.Mul(yb)
			xxc, yyc, xyc := xc.Mul(xc), yc.Mul(yc), xc.Mul(yc)
			xxd, yyd, xyd := xd.Mul(xd), yd.Mul(yd), xd.Mul(yd)
			ma = ma.And(xxa.Add(yya).LessEqual(r2))
			mb = mb.And(xxb.Add(yyb).LessEqual(r2))
			mc = mc.And(xxc.Add(yyc).LessEqual(r2))
			md = md.And(xxd.Add(yyd).LessEqual(r2))
			if ma.Or(mb).Or(mc).Or(md).ToBits() == 0 {
				break
			}
			na = na.Add(one.Merge(zero, ma))
			nb = nb.Add(one.Merge(zero, mb))
			nc = nc.Add(one.Merge(zero, mc))
			nd = nd.Add(one.Merge(zero, md))
			xa, ya = xxa.Sub(yya).Add(cx0), xya.Add(xya).Add(cy0)
			xb, yb = xxb.Sub(yyb).Add(cx1), xyb.Add(xyb).Add(cy1)
			xc, yc = xxc.Sub(yyc).Add(cx2), xyc.Add(xyc).Add(cy2)
			xd, yd = xxd.Sub(yyd).Add(cx3), xyd.Add(xyd).Add(cy3)
		}
		for g, n := range [4]archsimd.Float64x4{na, nb, nc, nd} {
			n.StoreSlice(buf[:])
			storeCounts(buf[:], counts[i+4*g:i+4*g+4])
		}
	}
}

func escapeF32x4Unrolled(p *Params[float32], x0, y0 []float32, counts []uint32) {
	r2 := archsimd.BroadcastFloat32x4(p.Radius2())
	one := archsimd.BroadcastFloat32x4(1)
	zero := archsimd.BroadcastFloat32x4(0)
	var buf [4]float32
	for i := 0; i+16 <= len(x0); i += 16 {
		cx0 := archsimd.LoadFloat32x4Slice(x0[i:])
		cx1 := archsimd.LoadFloat32x4Slice(x0[i+4:])
		cx2 := archsimd.LoadFloat32x4Slice(x0[i+8:])
		cx3 := archsimd.LoadFloat32x4Slice(x0[i+12:])
		cy0 := archsimd.LoadFloat32x4Slice(y0[i:])
		cy1 := archsimd.LoadFloat32x4Slice(y0[i+4:])
		cy2 := archsimd.LoadFloat32x4Slice(y0[i+8:])
		cy3 := archsimd.LoadFloat32x4Slice(y0[i+12:])
		xa, xb, xc, xd := cx0, cx1, cx2, cx3
		ya, yb, yc, yd := cy0, cy1, cy2, cy3
		na, nb, nc, nd := zero, zero, zero, zero
		all := zero.Equal(zero)
		ma, mb, mc, md := all, all, all, all
		for it := uint32(0); it < p.MaxIterations; it++ {
			xxa, yya, xya := xa.Mul(xa), ya.Mul(ya), xa.Mul(ya)
			xxb, yyb, xyb := xb.Mul(xb), yb.Mul(yb), xb.Mul(yb)
			xxc, yyc, xyc := xc.Mul(xc), yc.Mul(yc), xc.Mul(yc)
			xxd, yyd, xyd := xd.Mul(xd), yd.Mul(yd), xd.Mul(yd)
			ma = ma.And(xxa.Add(yya).LessEqual(r2))
			mb = mb.And(xxb.Add(yyb).LessEqual(r2))
			mc = mc.And(xxc.Add(yyc).LessEqual(r2))
			md = md.And(xxd.Add(yyd).LessEqual(r2))
			if ma.Or(mb).Or(mc).Or(md).ToBits() == 0 {
				break
			}
			na = na.Add(one.Merge(zero, ma))
			nb = nb.Add(one.Merge(zero, mb))
			nc = nc.Add(one.Merge(zero, mc))
			nd = nd.Add(one.Merge(zero, md))
			xa, ya = xxa.Sub(yya).Add(cx0), xya.Add(xya).Add(cy0)
			xb, yb = xxb.Sub(yyb).Add(cx1), xyb.Add(xyb).Add(cy1)
			xc, yc = xxc.Sub(yyc).Add(cx2), xyc.Add(xyc).Add(cy2)
			xd, yd = xxd.Sub(yyd).Add(cx3), xyd.Add(xyd).Add(cy3)
		}
		for g, n := range [4]archsimd.Float32x4{na, nb, nc, nd} {
			n.StoreSlice(buf[:])
			storeCounts(buf[:], counts[i+4*g:i+4*g+4])
		}
	}
}

func escapeF64x2Unrolled(p *Params[float64], x0, y0 []float64, counts []uint32) {
	r2 := archsimd.BroadcastFloat64x2(p.Radius2())
	one := archsimd.BroadcastFloat64x2(1)
	zero := archsimd.BroadcastFloat64x2(0)
	var buf [2]float64
	for i := 0; i+8 <= len(x0); i += 8 {
		cx0 := archsimd.LoadFloat64x2Slice(x0[i:])
		cx1 := archsimd.LoadFloat64x2Slice(x0[i+2:])
		cx2 := archsimd.LoadFloat64x2Slice(x0[i+4:])
		cx3 := archsimd.LoadFloat64x2Slice(x0[i+6:])
		cy0 := archsimd.LoadFloat64x2Slice(y0[i:])
		cy1 := archsimd.LoadFloat64x2Slice(y0[i+2:])
		cy2 := archsimd.LoadFloat64x2Slice(y0[i+4:])
		cy3 := archsimd.LoadFloat64x2Slice(y0[i+6:])
		xa, xb, xc, xd := cx0, cx1, cx2, cx3
		ya, yb, yc, yd := cy0, cy1, cy2, cy3
		na, nb, nc, nd := zero, zero, zero, zero
		all := zero.Equal(zero)
		ma, mb, mc, md := all, all, all, all
		for it := uint32(0); it < p.MaxIterations; it++ {
			xxa, yya, xya := xa.Mul(xa), ya.Mul(ya), xa.Mul(ya)
			xxb, yyb, xyb := xb.Mul(xb), yb.Mul(yb), xb.Mul(yb)
			xxc, yyc, xyc := xc.Mul(xc), yc.Mul(yc), xc.Mul(yc)
			xxd, yyd, xyd := xd.Mul(xd), yd.Mul(yd), xd.Mul(yd)
			ma = ma.And(xxa.Add(yya).LessEqual(r2))
			mb = mb.And(xxb.Add(yyb).LessEqual(r2))
			mc = mc.And(xxc.Add(yyc).LessEqual(r2))
			md = md.And(xxd.Add(yyd).LessEqual(r2))
			if ma.Or(mb).Or(mc).Or(md).ToBits() == 0 {
				break
			}
			na = na.Add(one.Merge(zero, ma))
			nb = nb.Add(one.Merge(zero, mb))
			nc = nc.Add(one.Merge(zero, mc))
			nd = nd.Add(one.Merge(zero, md))
			xa, ya = xxa.Sub(yya).Add(cx0), xya.Add(xya).Add(cy0)
			xb, yb = xxb.Sub(yyb).Add(cx1), xyb.Add(xyb).Add(cy1)
			xc, yc = xxc.Sub(yyc).Add(cx2), xyc.Add(xyc).Add(cy2)
			xd, yd = xxd.Sub(yyd).Add(cx3), xyd.Add(xyd).Add(cy3)
		}
		for g, n := range [4]archsimd.Float64x2{na, nb, nc, nd} {
			n.StoreSlice(buf[:])
			storeCounts(buf[:], counts[i+2*g:i+2*g+2])
		}
	}
}
