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

import (
	"math"
	"testing"

	"github.com/ajroetker/hwybrot/fractal"
)

func TestPan(t *testing.T) {
	p := fractal.Params[float64]{MaxIterations: 1, EscapeRadius: 2, Scale: 100, OffsetX: 400, OffsetY: 300}
	x0, y0 := fractal.Map(&p, 480, 300)

	moved := pan(p, 80, 0)
	gx, gy := fractal.Map(&moved, 400, 300)
	if gx != x0 || gy != y0 {
		t.Errorf("after pan(80, 0), pixel 400 shows (%v, %v), want (%v, %v)", gx, gy, x0, y0)
	}
}

func TestZoomKeepsCentre(t *testing.T) {
	p := fractal.Params[float64]{MaxIterations: 1, EscapeRadius: 2, Scale: 100, OffsetX: 250, OffsetY: 310}
	cx, cy := fractal.Map(&p, 400, 300)

	for _, factor := range []float64{zoomFactor, 1 / zoomFactor} {
		z := zoom(p, factor, 400, 300)
		if z.Scale != p.Scale*factor {
			t.Errorf("zoom(%v): scale = %v, want %v", factor, z.Scale, p.Scale*factor)
		}
		gx, gy := fractal.Map(&z, 400, 300)
		if math.Abs(gx-cx) > 1e-12 || math.Abs(gy-cy) > 1e-12 {
			t.Errorf("zoom(%v): centre moved from (%v, %v) to (%v, %v)", factor, cx, cy, gx, gy)
		}
	}
}
