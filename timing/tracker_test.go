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

package timing

import (
	"bytes"
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/ajroetker/hwybrot/fractal"
	"github.com/google/go-cmp/cmp"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

type fakeCounter struct{ n uint64 }

func (c *fakeCounter) read() uint64 { return c.n }

type drawCall struct {
	S    string
	X, Y int
	C    color.RGBA
}

type fakeText struct {
	calls []drawCall
	err   error
}

func (f *fakeText) DrawText(s string, x, y int, c color.RGBA) error {
	f.calls = append(f.calls, drawCall{s, x, y, c})
	return f.err
}

func TestFPSTrackerRate(t *testing.T) {
	clk := &fakeClock{t: time.Unix(100, 0)}
	text := &fakeText{}
	fps := NewFPSTracker(500*time.Millisecond, text, WithClock(clk.now))

	// Four frames 100ms apart: the interval is not yet reached.
	for range 4 {
		clk.advance(100 * time.Millisecond)
		if err := fps.Update(); err != nil {
			t.Fatal(err)
		}
	}
	if fps.Rate() != 0 {
		t.Errorf("Rate() = %v before the first interval, want 0", fps.Rate())
	}

	clk.advance(100 * time.Millisecond)
	if err := fps.Update(); err != nil {
		t.Fatal(err)
	}
	if fps.Rate() != 10 {
		t.Errorf("Rate() = %v, want 10", fps.Rate())
	}

	want := []drawCall{
		{"0.00", 0, 0, Black},
		{"0.00", 0, 0, Black},
		{"0.00", 0, 0, Black},
		{"0.00", 0, 0, Black},
		{"10.00", 0, 0, Black},
	}
	if diff := cmp.Diff(want, text.calls); diff != "" {
		t.Errorf("draw calls mismatch (-want +got):\n%s", diff)
	}
}

func TestFPSTrackerResetsWindow(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	fps := NewFPSTracker(time.Second, nil, WithClock(clk.now))
	clk.advance(2 * time.Second)
	fps.Update()
	if fps.Rate() != 0.5 {
		t.Fatalf("Rate() = %v, want 0.5", fps.Rate())
	}
	for range 31 {
		clk.advance(time.Second / 30)
		fps.Update()
	}
	if got := fps.Rate(); got < 29.9 || got > 30.1 {
		t.Errorf("Rate() = %v after a fresh window, want about 30", got)
	}
}

func TestCycleTrackerTicks(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	ctr := &fakeCounter{n: 1000}
	var out bytes.Buffer
	rec := NewRecorder(&out)
	cyc := NewCycleTracker(time.Second, nil,
		WithClock(clk.now), WithCounter(ctr.read), WithRecorder(rec))

	for _, step := range []uint64{500, 700, 300} {
		ctr.n += step
		if err := cyc.Update(); err != nil {
			t.Fatal(err)
		}
		if cyc.Ticks() != step {
			t.Errorf("Ticks() = %d, want %d", cyc.Ticks(), step)
		}
	}
	if cyc.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", cyc.Frames())
	}
	if cyc.MeanTicks() != 500 {
		t.Errorf("MeanTicks() = %v, want 500", cyc.MeanTicks())
	}
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("1 500\n2 700\n3 300\n", out.String()); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestCycleTrackerDrawsWhite(t *testing.T) {
	text := &fakeText{}
	cyc := NewCycleTracker(time.Second, text, WithPosition(0, 16), WithCounter((&fakeCounter{}).read))
	if err := cyc.Update(); err != nil {
		t.Fatal(err)
	}
	want := []drawCall{{"0.00", 0, 16, White}}
	if diff := cmp.Diff(want, text.calls); diff != "" {
		t.Errorf("draw calls mismatch (-want +got):\n%s", diff)
	}
}

func TestWithColor(t *testing.T) {
	text := &fakeText{}
	red := color.RGBA{R: 0xff, A: 0xff}
	NewFPSTracker(time.Second, text, WithColor(red)).Update()
	if len(text.calls) != 1 || text.calls[0].C != red {
		t.Errorf("draw calls = %+v, want one red", text.calls)
	}
}

func TestTrackerDrawError(t *testing.T) {
	boom := errors.New("no font")
	text := &fakeText{err: boom}
	for name, update := range map[string]func() error{
		"fps":   NewFPSTracker(time.Second, text).Update,
		"cycle": NewCycleTracker(time.Second, text).Update,
	} {
		err := update()
		if !errors.Is(err, fractal.ErrPresentation) || !errors.Is(err, boom) {
			t.Errorf("%s Update() = %v, want ErrPresentation wrapping %v", name, err, boom)
		}
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestCycleTrackerRecordError(t *testing.T) {
	// bufio holds small writes, so the failure surfaces once the buffer fills.
	rec := NewRecorder(failWriter{})
	cyc := NewCycleTracker(time.Second, nil, WithRecorder(rec))
	var err error
	for i := 0; i < 10000 && err == nil; i++ {
		err = cyc.Update()
	}
	if !errors.Is(err, fractal.ErrPresentation) {
		t.Errorf("Update() = %v, want ErrPresentation", err)
	}
}

func TestCyclesMonotonic(t *testing.T) {
	a := Cycles()
	b := Cycles()
	if b < a {
		t.Errorf("Cycles() went backwards: %d then %d", a, b)
	}
}

func BenchmarkCycles(b *testing.B) {
	for b.Loop() {
		Cycles()
	}
}
