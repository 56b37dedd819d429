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

package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ajroetker/hwybrot/fractal"
	"github.com/ajroetker/hwybrot/fractal/palette"
	"github.com/samber/lo"
)

// CenteredWindow asks the window system to center the window.
const CenteredWindow = -1

// Text renderer names.
const (
	TextXFont    = "xfont"
	TextTinyFont = "tinyfont"
)

// Options is the complete run configuration.
type Options struct {
	LogDir string
	// Output is the per-frame cycle record file. Empty disables it.
	Output string

	Width   int
	Height  int
	WindowX int
	WindowY int

	Graphics bool
	// Repeat is the number of grid passes per displayed frame.
	Repeat int
	// Frames stops the loop after this many frames; 0 runs until the
	// window closes.
	Frames int

	Font     string
	FontSize float64
	Text     string

	ParamsPath string
	Strategy   string
	Precision  string
	Palette    string
	Workers    int
	Schedule   string
	Snapshot   string

	UpdateInterval time.Duration
	Verbose        bool
}

// Default returns the options used when no flags are given.
func Default() Options {
	return Options{
		LogDir:         "./log/",
		Width:          800,
		Height:         600,
		WindowX:        CenteredWindow,
		WindowY:        CenteredWindow,
		Repeat:         1,
		FontSize:       16,
		Text:           TextXFont,
		Precision:      fractal.Single.String(),
		Palette:        "classic",
		Schedule:       fractal.Dynamic.String(),
		UpdateInterval: 500 * time.Millisecond,
	}
}

// SetScreen applies a "WxHxXxY" screen geometry: width, height and window
// position.
func (o *Options) SetScreen(geom string) error {
	parts := strings.Split(geom, "x")
	if len(parts) != 4 {
		return fieldErr("screen", geom, "want WIDTHxHEIGHTxXxY")
	}
	vals := make([]int, 4)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return fieldErr("screen", geom, "%q is not an integer", p)
		}
		vals[i] = n
	}
	o.Width, o.Height, o.WindowX, o.WindowY = vals[0], vals[1], vals[2], vals[3]
	return nil
}

// Validate rejects inconsistent options before anything is started.
func (o *Options) Validate() error {
	if o.Width <= 0 {
		return fieldErr("width", strconv.Itoa(o.Width), "must be positive")
	}
	if o.Height <= 0 {
		return fieldErr("height", strconv.Itoa(o.Height), "must be positive")
	}
	if o.Repeat < 1 {
		return fieldErr("repeat", strconv.Itoa(o.Repeat), "must be at least 1")
	}
	if o.Frames < 0 {
		return fieldErr("frames", strconv.Itoa(o.Frames), "must not be negative")
	}
	if !o.Graphics && o.Frames == 0 {
		return fieldErr("frames", "0", "headless runs need a frame count")
	}
	if o.UpdateInterval <= 0 {
		return fieldErr("update-interval", o.UpdateInterval.String(), "must be positive")
	}
	if o.FontSize <= 0 {
		return fieldErr("font-size", strconv.FormatFloat(o.FontSize, 'g', -1, 64), "must be positive")
	}
	if _, err := fractal.ParsePrecision(o.Precision); err != nil {
		return &FieldError{Field: "precision", Value: o.Precision, Err: err}
	}
	if _, err := fractal.ParseSchedule(o.Schedule); err != nil {
		return &FieldError{Field: "schedule", Value: o.Schedule, Err: err}
	}
	if _, err := palette.ByName(o.Palette); err != nil {
		return fieldErr("palette", o.Palette, "have %v", palette.Names())
	}
	if !lo.Contains([]string{TextXFont, TextTinyFont}, o.Text) {
		return fieldErr("text", o.Text, "want %s or %s", TextXFont, TextTinyFont)
	}
	if o.Strategy != "" {
		if _, err := fractal.Lookup(o.Strategy); err != nil {
			return &FieldError{Field: "strategy", Value: o.Strategy, Err: err}
		}
	}
	return nil
}

// ResolveStrategy resolves the requested strategy, or the best available one when
// none was named.
func (o *Options) ResolveStrategy() (fractal.Strategy, error) {
	if o.Strategy == "" {
		return fractal.Best(), nil
	}
	s, err := fractal.Lookup(o.Strategy)
	if err != nil {
		return s, &FieldError{Field: "strategy", Value: o.Strategy, Err: err}
	}
	return s, nil
}

// Viewport returns the grid described by the options.
func (o *Options) Viewport() fractal.Viewport {
	return fractal.Viewport{Width: o.Width, Height: o.Height, Repeat: o.Repeat}
}

// Record loads ParamsPath, or returns DefaultRecord when it is empty.
func (o *Options) Record() (*Record, error) {
	if o.ParamsPath == "" {
		return DefaultRecord(), nil
	}
	return LoadRecord(o.ParamsPath)
}

func (o *Options) String() string {
	return fmt.Sprintf("%dx%d repeat=%d frames=%d graphics=%v precision=%s strategy=%q workers=%d",
		o.Width, o.Height, o.Repeat, o.Frames, o.Graphics, o.Precision, o.Strategy, o.Workers)
}
