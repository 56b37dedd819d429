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

package frame

import (
	"errors"
	"image/color"
	"testing"
)

func TestNew(t *testing.T) {
	buf := New(100, 50, 32)

	if buf.Width() != 100 {
		t.Errorf("Width: got %d, want 100", buf.Width())
	}
	if buf.Height() != 50 {
		t.Errorf("Height: got %d, want 50", buf.Height())
	}
	if buf.Stride() != 128 {
		t.Errorf("Stride: got %d, want 128", buf.Stride())
	}
	if buf.BytesPerRow() != 512 {
		t.Errorf("BytesPerRow: got %d, want 512", buf.BytesPerRow())
	}
}

func TestNew_Alignment(t *testing.T) {
	tests := []struct {
		width, align, want int
	}{
		{640, 32, 640},
		{641, 32, 672},
		{7, 1, 7},
		{7, 0, 7},
		{7, 4, 8},
	}
	for _, tt := range tests {
		if got := New(tt.width, 1, tt.align).Stride(); got != tt.want {
			t.Errorf("New(%d, 1, %d).Stride() = %d, want %d", tt.width, tt.align, got, tt.want)
		}
	}
}

func TestNew_ZeroDimensions(t *testing.T) {
	buf := New(0, 0, 8)
	if buf.Width() != 0 || buf.Height() != 0 {
		t.Errorf("Zero dimensions: got %dx%d, want 0x0", buf.Width(), buf.Height())
	}

	buf = New(-1, 10, 8)
	if buf.Width() != 0 || buf.Height() != 0 {
		t.Errorf("Negative width: got %dx%d, want 0x0", buf.Width(), buf.Height())
	}
	if buf.Row(0) != nil || buf.RowSlice(0) != nil {
		t.Error("empty buffer should return nil rows")
	}
}

func TestLock(t *testing.T) {
	buf := New(4, 4, 8)

	pix, err := buf.Lock()
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	if len(pix) != buf.Height()*buf.Stride() {
		t.Errorf("Lock view: got %d pixels, want %d", len(pix), buf.Height()*buf.Stride())
	}

	if _, err := buf.Lock(); !errors.Is(err, ErrLocked) {
		t.Errorf("second Lock: got %v, want ErrLocked", err)
	}

	buf.Unlock()
	if _, err := buf.Lock(); err != nil {
		t.Errorf("Lock after Unlock: %v", err)
	}
	buf.Unlock()
}

func TestRows(t *testing.T) {
	buf := New(10, 5, 16)

	row0 := buf.Row(0)
	if len(row0) != 16 {
		t.Fatalf("Row length: got %d, want 16", len(row0))
	}
	for i := range 10 {
		row0[i] = uint32(i)
	}

	row1 := buf.Row(1)
	row1[0] = 999
	if row0[0] == 999 {
		t.Error("rows overlap")
	}

	if got := len(buf.RowSlice(2)); got != 10 {
		t.Errorf("RowSlice length: got %d, want 10", got)
	}
	if buf.Row(-1) != nil || buf.Row(5) != nil {
		t.Error("out of range Row should be nil")
	}
}

func TestAtSet(t *testing.T) {
	buf := New(3, 3, 4)
	buf.Set(1, 2, 0xdeadbeef)
	if got := buf.At(1, 2); got != 0xdeadbeef {
		t.Errorf("At(1, 2) = %#x, want 0xdeadbeef", got)
	}

	// Padding column and out of range writes are dropped.
	buf.Set(3, 0, 1)
	buf.Set(-1, 0, 1)
	if buf.Row(0)[3] != 0 {
		t.Error("Set wrote into padding")
	}
	if buf.At(3, 0) != 0 || buf.At(0, -1) != 0 {
		t.Error("At outside visible area should be 0")
	}
}

func TestEqualIgnoresPadding(t *testing.T) {
	a := New(5, 2, 1)
	b := New(5, 2, 8)
	a.Fill(7)
	b.Fill(7)
	b.Row(0)[6] = 99

	if !Equal(a, b) {
		t.Error("buffers with equal visible pixels should be Equal")
	}

	b.Set(4, 1, 1)
	if Equal(a, b) {
		t.Error("buffers differ at (4, 1) but compare Equal")
	}
	if Equal(a, New(5, 3, 1)) {
		t.Error("buffers of different size compare Equal")
	}
}

func TestClone(t *testing.T) {
	buf := New(4, 4, 8)
	buf.Set(2, 2, 42)

	c := buf.Clone()
	if c.Stride() != buf.Stride() || !Equal(c, buf) {
		t.Fatal("clone differs from source")
	}
	c.Set(2, 2, 0)
	if buf.At(2, 2) != 42 {
		t.Error("clone shares pixel memory with source")
	}
}

func TestRGBA(t *testing.T) {
	buf := New(2, 2, 4)
	want := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	buf.Set(1, 1, Pack(want))

	img := buf.RGBA()
	if img.Bounds() != buf.Bounds() {
		t.Fatalf("Bounds: got %v, want %v", img.Bounds(), buf.Bounds())
	}
	if got := img.RGBAAt(1, 1); got != want {
		t.Errorf("RGBAAt(1, 1) = %v, want %v", got, want)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{}) {
		t.Errorf("RGBAAt(0, 0) = %v, want zero", got)
	}
}

func TestPackUnpack(t *testing.T) {
	c := color.RGBA{R: 1, G: 2, B: 3, A: 4}
	p := Pack(c)
	if p != 0x04030201 {
		t.Errorf("Pack(%v) = %#x, want 0x04030201", c, p)
	}
	if got := Unpack(p); got != c {
		t.Errorf("Unpack(%#x) = %v, want %v", p, got, c)
	}
}
