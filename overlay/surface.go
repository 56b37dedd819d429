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

// Package overlay draws short status strings, such as the frame-rate
// readouts of package timing, onto a frame buffer.
//
// FaceRenderer rasterizes with golang.org/x/image/font (a TrueType file or
// the built-in 7x13 bitmap face); TinyRenderer uses tinyfont's bitmap
// fonts. Both lock the target for the duration of one DrawText call, clip
// to the visible area, and never touch row padding.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/ajroetker/hwybrot/frame"
	"tinygo.org/x/drivers"
)

var (
	_ draw.Image        = (*surface)(nil)
	_ drivers.Displayer = (*surface)(nil)
)

// surface is a locked view of a frame.Target. It satisfies draw.Image for
// font.Drawer and drivers.Displayer for tinyfont.
type surface struct {
	pix    []uint32
	width  int
	height int
	stride int
}

func lock(t frame.Target) (*surface, error) {
	if t == nil {
		return nil, fmt.Errorf("overlay: no target")
	}
	pix, err := t.Lock()
	if err != nil {
		return nil, fmt.Errorf("overlay: %w", err)
	}
	return &surface{pix: pix, width: t.Width(), height: t.Height(), stride: t.Stride()}, nil
}

func (s *surface) ColorModel() color.Model { return color.RGBAModel }

func (s *surface) Bounds() image.Rectangle { return image.Rect(0, 0, s.width, s.height) }

func (s *surface) At(x, y int) color.Color {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return color.RGBA{}
	}
	return frame.Unpack(s.pix[y*s.stride+x])
}

func (s *surface) Set(x, y int, c color.Color) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.pix[y*s.stride+x] = frame.Pack(color.RGBAModel.Convert(c).(color.RGBA))
}

// Size, SetPixel and Display make surface a drivers.Displayer.

func (s *surface) Size() (x, y int16) {
	return int16(s.width), int16(s.height)
}

func (s *surface) SetPixel(x, y int16, c color.RGBA) {
	s.Set(int(x), int(y), c)
}

func (s *surface) Display() error { return nil }
