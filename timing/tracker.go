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
	"fmt"
	"image/color"
	"time"

	"github.com/ajroetker/hwybrot/fractal"
)

// TextRenderer draws a short overlay string with its top-left corner at
// (x, y). An empty string draws nothing.
type TextRenderer interface {
	DrawText(s string, x, y int, c color.RGBA) error
}

var (
	// Black is the FPS tracker's default text color.
	Black = color.RGBA{A: 0xff}
	// White is the cycle tracker's default text color.
	White = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

type config struct {
	now     func() time.Time
	counter func() uint64
	x, y    int
	color   *color.RGBA
	rec     *Recorder
}

// Option configures a tracker.
type Option func(*config)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

// WithCounter replaces Cycles. Only CycleTracker reads it.
func WithCounter(counter func() uint64) Option {
	return func(c *config) { c.counter = counter }
}

// WithPosition moves the overlay text. The default is (0, 0).
func WithPosition(x, y int) Option {
	return func(c *config) { c.x, c.y = x, y }
}

// WithColor overrides the tracker's text color.
func WithColor(col color.RGBA) Option {
	return func(c *config) { c.color = &col }
}

// WithRecorder appends every frame's tick count to rec. Only CycleTracker
// records.
func WithRecorder(rec *Recorder) Option {
	return func(c *config) { c.rec = rec }
}

func newConfig(opts []Option) config {
	c := config{now: time.Now, counter: Cycles}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// rateCounter counts frames and turns them into a rate once the update
// interval has elapsed.
type rateCounter struct {
	interval time.Duration
	frames   int
	last     time.Time
	rate     float64
}

func newRateCounter(interval time.Duration, now time.Time) rateCounter {
	return rateCounter{interval: interval, last: now}
}

// tick counts one frame and reports whether the rate was recomputed.
func (r *rateCounter) tick(now time.Time) bool {
	r.frames++
	elapsed := now.Sub(r.last)
	if elapsed < r.interval || elapsed <= 0 {
		return false
	}
	r.rate = float64(r.frames) / elapsed.Seconds()
	r.frames = 0
	r.last = now
	return true
}

func drawRate(text TextRenderer, what string, rate float64, x, y int, c color.RGBA) error {
	if text == nil {
		return nil
	}
	if err := text.DrawText(fmt.Sprintf("%.2f", rate), x, y, c); err != nil {
		return fmt.Errorf("%w: draw %s text: %w", fractal.ErrPresentation, what, err)
	}
	return nil
}

// FPSTracker reports displayed frames per second.
type FPSTracker struct {
	cfg  config
	rc   rateCounter
	text TextRenderer
	col  color.RGBA
}

// NewFPSTracker starts a tracker that recomputes its rate every interval
// and draws it with text, which may be nil when nothing is displayed.
func NewFPSTracker(interval time.Duration, text TextRenderer, opts ...Option) *FPSTracker {
	cfg := newConfig(opts)
	t := &FPSTracker{cfg: cfg, rc: newRateCounter(interval, cfg.now()), text: text, col: Black}
	if cfg.color != nil {
		t.col = *cfg.color
	}
	return t
}

// Update counts a displayed frame and redraws the rate. A drawing failure is
// returned wrapped in fractal.ErrPresentation.
func (t *FPSTracker) Update() error {
	if t.rc.tick(t.cfg.now()) {
		Logger().Debug("fps", "rate", t.rc.rate)
	}
	return drawRate(t.text, "fps", t.rc.rate, t.cfg.x, t.cfg.y, t.col)
}

// Rate returns the last computed frame rate, 0 before the first interval
// has elapsed.
func (t *FPSTracker) Rate() float64 { return t.rc.rate }

// CycleTracker reports the ticks spent between consecutive updates, along
// with its own frame rate.
type CycleTracker struct {
	cfg  config
	rc   rateCounter
	text TextRenderer
	col  color.RGBA

	frame int
	last  uint64
	ticks uint64
	total uint64
}

// NewCycleTracker starts a tracker whose first frame is measured from now.
func NewCycleTracker(interval time.Duration, text TextRenderer, opts ...Option) *CycleTracker {
	cfg := newConfig(opts)
	t := &CycleTracker{
		cfg:  cfg,
		rc:   newRateCounter(interval, cfg.now()),
		text: text,
		col:  White,
		last: cfg.counter(),
	}
	if cfg.color != nil {
		t.col = *cfg.color
	}
	return t
}

// Update samples the counter, records the ticks since the previous call and
// redraws the rate. Recorder and drawing failures are returned wrapped in
// fractal.ErrPresentation.
func (t *CycleTracker) Update() error {
	now := t.cfg.counter()
	t.ticks = now - t.last
	t.last = now
	t.total += t.ticks
	t.frame++
	Logger().Debug("frame cycles", "frame", t.frame, "ticks", t.ticks, "counter", CounterName)

	if t.cfg.rec != nil {
		if err := t.cfg.rec.Record(t.frame, t.ticks); err != nil {
			return fmt.Errorf("%w: record frame %d: %w", fractal.ErrPresentation, t.frame, err)
		}
	}
	if t.rc.tick(t.cfg.now()) {
		Logger().Debug("cycle tracker rate", "rate", t.rc.rate)
	}
	return drawRate(t.text, "cycle", t.rc.rate, t.cfg.x, t.cfg.y, t.col)
}

// Frames returns the number of updates so far.
func (t *CycleTracker) Frames() int { return t.frame }

// Ticks returns the ticks between the last two updates. It is not smoothed.
func (t *CycleTracker) Ticks() uint64 { return t.ticks }

// MeanTicks returns the average ticks per frame over all updates.
func (t *CycleTracker) MeanTicks() float64 {
	if t.frame == 0 {
		return 0
	}
	return float64(t.total) / float64(t.frame)
}

// Rate returns the last computed frame rate.
func (t *CycleTracker) Rate() float64 { return t.rc.rate }
