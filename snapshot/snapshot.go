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

// Package snapshot saves a rendered frame as an image file.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"github.com/samber/lo"
)

// ErrFormat is returned for a file extension with no encoder.
var ErrFormat = errors.New("snapshot: unsupported format")

type encoder func(w io.Writer, img image.Image) error

var encoders = map[string]encoder{
	".png":  png.Encode,
	".webp": encodeWebP,
	".tga":  tga.Encode,
}

// encodeWebP writes a lossless WebP with default options.
func encodeWebP(w io.Writer, img image.Image) error {
	return nativewebp.Encode(w, img, nil)
}

// Formats lists the supported extensions.
func Formats() []string {
	exts := lo.Keys(encoders)
	slices.Sort(exts)
	return exts
}

// Encode writes img to w in the format named by ext (".png", ".webp" or
// ".tga", case-insensitive).
func Encode(w io.Writer, ext string, img image.Image) error {
	enc, ok := encoders[strings.ToLower(ext)]
	if !ok {
		return fmt.Errorf("%w: %q (have %v)", ErrFormat, ext, Formats())
	}
	return enc(w, img)
}

// Write encodes img into the file at path, choosing the format from the
// extension. A partially written file is removed.
func Write(path string, img image.Image) (err error) {
	ext := filepath.Ext(path)
	if _, ok := encoders[strings.ToLower(ext)]; !ok {
		return fmt.Errorf("%w: %q (have %v)", ErrFormat, ext, Formats())
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("snapshot: %w", cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()
	if err := Encode(f, ext, img); err != nil {
		return fmt.Errorf("snapshot: encode %s: %w", path, err)
	}
	return nil
}
