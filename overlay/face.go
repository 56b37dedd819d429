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
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/ajroetker/hwybrot/frame"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultFontSize is the point size used when a TrueType font is loaded
// without an explicit size.
const DefaultFontSize = 16

// FaceRenderer draws text with a font.Face.
type FaceRenderer struct {
	target frame.Target
	face   font.Face
	ascent int
}

// NewFaceRenderer draws onto target with face. A nil face selects
// basicfont.Face7x13.
func NewFaceRenderer(target frame.Target, face font.Face) *FaceRenderer {
	if face == nil {
		face = basicfont.Face7x13
	}
	return &FaceRenderer{
		target: target,
		face:   face,
		ascent: face.Metrics().Ascent.Ceil(),
	}
}

// LoadFace parses a TrueType or OpenType file and returns a face at size
// points (72 DPI, so one point is one pixel).
func LoadFace(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return ParseFace(data, size)
}

// ParseFace is LoadFace for font data already in memory.
func ParseFace(data []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	if size <= 0 {
		size = DefaultFontSize
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	return face, nil
}

// DrawText draws s with the top of its line box at (x, y).
func (r *FaceRenderer) DrawText(s string, x, y int, c color.RGBA) error {
	if s == "" {
		return nil
	}
	dst, err := lock(r.target)
	if err != nil {
		return err
	}
	defer r.target.Unlock()

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: r.face,
		Dot:  fixed.P(x, y+r.ascent),
	}
	d.DrawString(s)
	return nil
}

// LineHeight returns the face's line height in pixels, the offset between
// stacked readouts.
func (r *FaceRenderer) LineHeight() int {
	return r.face.Metrics().Height.Ceil()
}
