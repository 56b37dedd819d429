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

package overlay

import (
	"image/color"

	"github.com/ajroetker/hwybrot/frame"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// TinyRenderer draws text with a tinyfont bitmap font.
type TinyRenderer struct {
	target frame.Target
	font   tinyfont.Fonter
	height int16
}

// NewTinyRenderer draws onto target with f. A nil f selects ProggyTiny.
func NewTinyRenderer(target frame.Target, f tinyfont.Fonter) *TinyRenderer {
	if f == nil {
		f = &proggy.TinySZ8pt7b
	}
	return &TinyRenderer{target: target, font: f, height: int16(f.GetYAdvance())}
}

// DrawText draws s with the top of its line box at (x, y).
func (r *TinyRenderer) DrawText(s string, x, y int, c color.RGBA) error {
	if s == "" {
		return nil
	}
	d, err := lock(r.target)
	if err != nil {
		return err
	}
	defer r.target.Unlock()

	// tinyfont positions text by its baseline.
	tinyfont.WriteLine(d, r.font, int16(x), int16(y)+r.height, s, c)
	return nil
}

// LineHeight returns the font's line advance in pixels.
func (r *TinyRenderer) LineHeight() int {
	return int(r.height)
}
