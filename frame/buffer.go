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

// Package frame provides the pixel surface the escape-time driver writes
// into: a row-major uint32 buffer whose rows are padded to a multiple of a
// caller-chosen alignment, guarded by a scoped Lock/Unlock pair.
//
// Pixels are stored as R | G<<8 | B<<16 | A<<24, which in little-endian
// memory is the byte order R, G, B, A (SDL's RGBA32 and image.RGBA's Pix).
//
// Code that writes pixels must index with Stride, never Width:
//
//	pix, err := buf.Lock()
//	if err != nil {
//	    return err
//	}
//	defer buf.Unlock()
//	for y := 0; y < buf.Height(); y++ {
//	    row := pix[y*buf.Stride() : y*buf.Stride()+buf.Width()]
//	    // ...
//	}
package frame

import (
	"errors"
	"image"
	"image/color"
	"sync"
)

// ErrLocked is returned by Lock when the buffer is already held.
var ErrLocked = errors.New("frame: buffer already locked")

// Target is the write side of a frame buffer as the renderer sees it.
// Lock returns a view of Height()*Stride() pixels valid until Unlock.
type Target interface {
	Width() int
	Height() int
	Stride() int
	Lock() ([]uint32, error)
	Unlock()
}

// Buffer is a 2D pixel surface with padded rows.
// Each row holds Stride() pixels of which the first Width() are visible.
type Buffer struct {
	mu     sync.Mutex
	pix    []uint32
	width  int
	height int
	stride int // pixels per row (includes padding)
}

var _ Target = (*Buffer)(nil)

// New creates a buffer of the given size whose stride is width rounded up
// to a multiple of align pixels. align <= 1 means no padding.
func New(width, height, align int) *Buffer {
	if width <= 0 || height <= 0 {
		return &Buffer{}
	}
	if align < 1 {
		align = 1
	}

	stride := ((width + align - 1) / align) * align

	return &Buffer{
		pix:    make([]uint32, stride*height),
		width:  width,
		height: height,
		stride: stride,
	}
}

// Width returns the visible width in pixels.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the height in pixels.
func (b *Buffer) Height() int {
	return b.height
}

// Stride returns the number of pixels per row (including padding).
func (b *Buffer) Stride() int {
	return b.stride
}

// BytesPerRow returns the row pitch in bytes.
func (b *Buffer) BytesPerRow() int {
	return b.stride * 4
}

// Lock acquires the buffer for writing and returns the whole pixel slice.
// It does not block: a second Lock before Unlock returns ErrLocked.
func (b *Buffer) Lock() ([]uint32, error) {
	if !b.mu.TryLock() {
		return nil, ErrLocked
	}
	return b.pix, nil
}

// Unlock releases a buffer acquired with Lock.
func (b *Buffer) Unlock() {
	b.mu.Unlock()
}

// Row returns the pixels of row y including padding.
// The caller must hold the lock or otherwise own the buffer.
func (b *Buffer) Row(y int) []uint32 {
	if y < 0 || y >= b.height || b.pix == nil {
		return nil
	}
	start := y * b.stride
	return b.pix[start : start+b.stride]
}

// RowSlice returns the visible pixels of row y (excluding padding).
func (b *Buffer) RowSlice(y int) []uint32 {
	if y < 0 || y >= b.height || b.pix == nil {
		return nil
	}
	start := y * b.stride
	return b.pix[start : start+b.width]
}

// At returns the packed pixel at (x, y), or 0 outside the visible area.
func (b *Buffer) At(x, y int) uint32 {
	if x < 0 || x >= b.width || y < 0 || y >= b.height || b.pix == nil {
		return 0
	}
	return b.pix[y*b.stride+x]
}

// Set stores a packed pixel at (x, y). Writes outside the visible area are
// dropped.
func (b *Buffer) Set(x, y int, p uint32) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height || b.pix == nil {
		return
	}
	b.pix[y*b.stride+x] = p
}

// Fill sets every pixel, padding included, to p.
func (b *Buffer) Fill(p uint32) {
	for i := range b.pix {
		b.pix[i] = p
	}
}

// Clone creates a deep copy of the buffer with the same stride.
func (b *Buffer) Clone() *Buffer {
	c := &Buffer{
		pix:    make([]uint32, len(b.pix)),
		width:  b.width,
		height: b.height,
		stride: b.stride,
	}
	copy(c.pix, b.pix)
	return c
}

// Equal reports whether both buffers have the same size and the same
// visible pixels. Padding is ignored, so buffers with different strides can
// compare equal.
func Equal(a, b *Buffer) bool {
	if a.width != b.width || a.height != b.height {
		return false
	}
	for y := 0; y < a.height; y++ {
		ra, rb := a.RowSlice(y), b.RowSlice(y)
		for x := range ra {
			if ra[x] != rb[x] {
				return false
			}
		}
	}
	return true
}

// Bounds returns the visible rectangle.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// RGBA copies the visible pixels into a new image.RGBA.
func (b *Buffer) RGBA() *image.RGBA {
	img := image.NewRGBA(b.Bounds())
	b.CopyTo(img.Pix)
	return img
}

// CopyTo writes the visible pixels as tightly packed RGBA bytes into dst,
// which must hold at least 4*Width()*Height() bytes.
func (b *Buffer) CopyTo(dst []byte) {
	i := 0
	for y := 0; y < b.height; y++ {
		for _, p := range b.RowSlice(y) {
			dst[i+0] = byte(p)
			dst[i+1] = byte(p >> 8)
			dst[i+2] = byte(p >> 16)
			dst[i+3] = byte(p >> 24)
			i += 4
		}
	}
}

// Pack converts a color to the buffer's pixel layout.
func Pack(c color.RGBA) uint32 {
	return uint32(c.R) | uint32(c.G)<<8 | uint32(c.B)<<16 | uint32(c.A)<<24
}

// Unpack converts a packed pixel back to a color.
func Unpack(p uint32) color.RGBA {
	return color.RGBA{R: uint8(p), G: uint8(p >> 8), B: uint8(p >> 16), A: uint8(p >> 24)}
}
