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
	"bytes"
	"context"
	"errors"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ajroetker/hwybrot/config"
	"github.com/ajroetker/hwybrot/fractal"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestHeadlessRun(t *testing.T) {
	dir := t.TempDir()
	params := filepath.Join(dir, "params.txt")
	record := "test view\n$\niters_cnt = 64\nr_circle_inf = 2\nscale = 20\n"
	if err := os.WriteFile(params, []byte(record), 0o644); err != nil {
		t.Fatal(err)
	}
	shot := filepath.Join(dir, "frame.png")
	ticks := filepath.Join(dir, "ticks.txt")

	out, err := execute(t, "-w", "48", "-h", "32", "-c", "3", "-r", "2",
		"-l", dir, "-o", ticks, "--snapshot", shot, "--strategy", "scalar", params)
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	if !strings.Contains(out, "strategy scalar") || !strings.Contains(out, "3 frames of 48x32 x2") {
		t.Errorf("summary = %q", out)
	}

	f, err := os.Open(shot)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 48 || b.Dy() != 32 {
		t.Errorf("snapshot is %v, want 48x32", b)
	}

	lines, err := os.ReadFile(ticks)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(lines), "\n"); n != 3 {
		t.Errorf("tick record has %d lines, want 3:\n%s", n, lines)
	}
	if _, err := os.Stat(filepath.Join(dir, logFileName)); err != nil {
		t.Errorf("log file: %v", err)
	}
}

func TestHeadlessSkipsPresentation(t *testing.T) {
	opts := config.Default()
	opts.Width, opts.Height, opts.Frames = 64, 48, 2
	opts.Strategy = "scalar"

	a, err := newApp[float32](opts, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatal(err)
	}
	defer a.close()
	if a.buf != nil {
		t.Fatal("headless run without a snapshot allocated a frame buffer")
	}
	var out bytes.Buffer
	if err := a.runHeadless(context.Background(), &out); err != nil {
		t.Fatal(err)
	}
	if a.cycles.Frames() != 2 {
		t.Errorf("cycle tracker saw %d frames, want 2", a.cycles.Frames())
	}

	opts.Snapshot = filepath.Join(t.TempDir(), "frame.png")
	b, err := newApp[float32](opts, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatal(err)
	}
	defer b.close()
	if b.buf == nil {
		t.Fatal("snapshot run has no frame buffer")
	}
}

func TestHeadlessPrecisionsAgree(t *testing.T) {
	// Both precisions must run end to end with a worker pool.
	for _, prec := range []string{"single", "double"} {
		dir := t.TempDir()
		out, err := execute(t, "-w", "40", "-h", "20", "-c", "1", "-l", dir,
			"--precision", prec, "--workers", "3", "--schedule", "static", "--text", "tinyfont")
		if err != nil {
			t.Fatalf("%s: %v\n%s", prec, err, out)
		}
		if !strings.Contains(out, "precision "+prec) {
			t.Errorf("%s: summary = %q", prec, out)
		}
	}
}

func TestRunRejects(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
	}{
		{"headless without frames", []string{"-l", dir}},
		{"zero repeat", []string{"-l", dir, "-c", "1", "-r", "0"}},
		{"bad screen", []string{"-l", dir, "-c", "1", "-s", "800x600"}},
		{"unknown strategy", []string{"-l", dir, "-c", "1", "--strategy", "mmx"}},
		{"missing params", []string{"-l", dir, "-c", "1", filepath.Join(dir, "nope.txt")}},
		{"params twice", []string{"-l", dir, "-c", "1", "--params", "a.txt", "b.txt"}},
		{"missing font", []string{"-l", dir, "-c", "1", "-f", filepath.Join(dir, "nope.ttf"),
			"--snapshot", filepath.Join(dir, "shot.png")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if !errors.Is(err, fractal.ErrConfiguration) {
				t.Errorf("run = %v, want ErrConfiguration", err)
			}
		})
	}
}

func TestHelpIsLongOnly(t *testing.T) {
	cmd := newRootCmd()
	if f := cmd.Flags().ShorthandLookup("h"); f == nil || f.Name != "height" {
		t.Errorf("-h should be --height, got %v", f)
	}
	out, err := execute(t, "--help")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "--update-interval") {
		t.Errorf("help output is missing flags:\n%s", out)
	}
}

func TestSetScreenFlag(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "-s", "24x12x0x0", "-c", "1", "-l", dir)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "of 24x12") {
		t.Errorf("summary = %q, want a 24x12 run", out)
	}
}

func TestStrategiesCommand(t *testing.T) {
	out, err := execute(t, "strategies")
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range fractal.Strategies() {
		if !strings.Contains(out, s.Name) {
			t.Errorf("strategies output is missing %s:\n%s", s.Name, out)
		}
	}
	if !strings.Contains(out, fractal.Best().Name+" *") {
		t.Errorf("strategies output does not mark the best strategy:\n%s", out)
	}
}

func TestDefaultOptionsMatchFlags(t *testing.T) {
	cmd := newRootCmd()
	def := config.Default()
	w, _ := cmd.Flags().GetInt("width")
	d, _ := cmd.Flags().GetDuration("update-interval")
	if w != def.Width || d != def.UpdateInterval {
		t.Errorf("flag defaults = %d, %v; want %d, %v", w, d, def.Width, def.UpdateInterval)
	}
}
