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

// Package palette maps escape counts to packed pixels.
//
// A Colorizer receives the count and the frame's maximum and returns a pixel
// packed as frame.Pack does (R | G<<8 | B<<16 | A<<24). Points that never
// escaped (iter == maxIter) are painted opaque black by every built-in rule.
package palette

import (
	"fmt"
	"image/color"
	"slices"

	"github.com/ajroetker/hwybrot/frame"
	"github.com/samber/lo"
)

// Colorizer turns an escape count into a packed pixel. It must be safe for
// concurrent use; the renderer calls it from every worker.
type Colorizer func(iter, maxIter uint32) uint32

var black = frame.Pack(color.RGBA{A: 0xff})

// Classic shades escaped points with smooth Bernstein polynomials of
// t = iter/maxIter: dark blue near the set, through orange, to white-ish far
// away.
func Classic(iter, maxIter uint32) uint32 {
	if iter >= maxIter {
		return black
	}
	t := float64(iter) / float64(maxIter)
	u := 1 - t
	return frame.Pack(color.RGBA{
		R: channel(9 * u * t * t * t),
		G: channel(15 * u * u * t * t),
		B: channel(8.5 * u * u * u * t),
		A: 0xff,
	})
}

// Grayscale maps the count linearly to a gray level.
func Grayscale(iter, maxIter uint32) uint32 {
	if iter >= maxIter {
		return black
	}
	v := uint8(uint64(iter) * 255 / uint64(maxIter))
	return frame.Pack(color.RGBA{R: v, G: v, B: v, A: 0xff})
}

// bandColors is the sixteen-step gradient used by Bands.
var bandColors = [16]color.RGBA{
	{66, 30, 15, 0xff}, {25, 7, 26, 0xff}, {9, 1, 47, 0xff}, {4, 4, 73, 0xff},
	{0, 7, 100, 0xff}, {12, 44, 138, 0xff}, {24, 82, 177, 0xff}, {57, 125, 209, 0xff},
	{134, 181, 229, 0xff}, {211, 236, 248, 0xff}, {241, 233, 191, 0xff}, {248, 201, 95, 0xff},
	{255, 170, 0, 0xff}, {204, 128, 0, 0xff}, {153, 87, 0, 0xff}, {106, 52, 3, 0xff},
}

// Bands cycles through sixteen colors by iter mod 16, which makes the level
// sets stand out regardless of maxIter.
func Bands(iter, maxIter uint32) uint32 {
	if iter >= maxIter {
		return black
	}
	return frame.Pack(bandColors[iter%uint32(len(bandColors))])
}

// Fire ramps from red through yellow to white.
func Fire(iter, maxIter uint32) uint32 {
	if iter >= maxIter {
		return black
	}
	t := 3 * float64(iter) / float64(maxIter)
	return frame.Pack(color.RGBA{
		R: channel(t),
		G: channel(t - 1),
		B: channel(t - 2),
		A: 0xff,
	})
}

func channel(f float64) uint8 {
	return uint8(min(max(f, 0), 1) * 255)
}

var rules = map[string]Colorizer{
	"classic":   Classic,
	"grayscale": Grayscale,
	"bands":     Bands,
	"fire":      Fire,
}

// ByName returns the built-in rule with the given name.
func ByName(name string) (Colorizer, error) {
	c, ok := rules[name]
	if !ok {
		return nil, fmt.Errorf("palette: unknown rule %q (have %v)", name, Names())
	}
	return c, nil
}

// Names lists the built-in rules in sorted order.
func Names() []string {
	names := lo.Keys(rules)
	slices.Sort(names)
	return names
}
