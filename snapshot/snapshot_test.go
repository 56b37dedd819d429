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

package snapshot

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"github.com/google/go-cmp/cmp"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 7, 5))
	for y := range 5 {
		for x := range 7 {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 50), B: 200, A: 0xff})
		}
	}
	return img
}

func pixels(t *testing.T, img image.Image) []color.RGBA {
	t.Helper()
	var out []color.RGBA
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out = append(out, color.RGBAModel.Convert(img.At(x, y)).(color.RGBA))
		}
	}
	return out
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := Write(path, testImage()); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, format, err := image.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if format != "png" {
		t.Errorf("format = %q, want png", format)
	}
	if diff := cmp.Diff(pixels(t, testImage()), pixels(t, got)); diff != "" {
		t.Errorf("pixels mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeTGA(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, ".TGA", testImage()); err != nil {
		t.Fatal(err)
	}
	got, err := tga.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(pixels(t, testImage()), pixels(t, got)); diff != "" {
		t.Errorf("pixels mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeWebP(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, ".webp", testImage()); err != nil {
		t.Fatal(err)
	}
	b := buf.Bytes()
	if len(b) < 12 || string(b[:4]) != "RIFF" || string(b[8:12]) != "WEBP" {
		t.Errorf("output does not start with a RIFF/WEBP header: % x", b[:min(len(b), 12)])
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.bmp")
	err := Write(path, testImage())
	if !errors.Is(err, ErrFormat) {
		t.Errorf("Write(.bmp) = %v, want ErrFormat", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("Write(.bmp) should not create a file")
	}
}

func TestWriteBadDirectory(t *testing.T) {
	if err := Write(filepath.Join(t.TempDir(), "missing", "frame.png"), testImage()); err == nil {
		t.Error("Write into a missing directory should fail")
	}
}

func TestFormats(t *testing.T) {
	if diff := cmp.Diff([]string{".png", ".tga", ".webp"}, Formats()); diff != "" {
		t.Errorf("Formats() mismatch (-want +got):\n%s", diff)
	}
}
