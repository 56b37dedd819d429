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

package fractal

import (
	"fmt"
	"strings"

	"github.com/ajroetker/hwybrot/fractal/palette"
	"github.com/ajroetker/hwybrot/frame"
	"github.com/ajroetker/hwybrot/hwy"
	"github.com/ajroetker/hwybrot/hwy/contrib/workerpool"
)

// Schedule decides how rows are split across a worker pool.
type Schedule int

const (
	// Static gives each worker one contiguous block of rows.
	Static Schedule = iota
	// Dynamic hands out small row batches through a shared cursor, which
	// balances the uneven cost of rows near the set boundary.
	Dynamic
)

// rowBatch is the number of rows a worker claims at a time under Dynamic.
const rowBatch = 4

func (s Schedule) String() string {
	switch s {
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	default:
		return fmt.Sprintf("Schedule(%d)", int(s))
	}
}

// ParseSchedule accepts "static" and "dynamic".
func ParseSchedule(s string) (Schedule, error) {
	switch strings.ToLower(s) {
	case "static":
		return Static, nil
	case "dynamic":
		return Dynamic, nil
	}
	return 0, fmt.Errorf("%w: unknown schedule %q", ErrConfiguration, s)
}

type options struct {
	target     frame.Target
	colorize   palette.Colorizer
	pool       *workerpool.Pool
	schedule   Schedule
	keepCounts bool
}

// Option configures a Renderer.
type Option func(*options)

// WithSink attaches a frame buffer and the rule that colors it. Without a
// sink the renderer runs headless: it computes every count and writes no
// pixels.
func WithSink(t frame.Target, c palette.Colorizer) Option {
	return func(o *options) {
		o.target = t
		o.colorize = c
	}
}

// WithPool splits each pass across the pool's workers. The pool is not
// owned by the renderer and may be shared.
func WithPool(p *workerpool.Pool) Option {
	return func(o *options) { o.pool = p }
}

// WithSchedule selects how rows are distributed over the pool.
func WithSchedule(s Schedule) Option {
	return func(o *options) { o.schedule = s }
}

// WithCounts keeps the raw escape counts of the last pass, readable through
// Counts.
func WithCounts() Option {
	return func(o *options) { o.keepCounts = true }
}

// rowScratch is one worker's reusable row storage, padded to a whole number
// of kernel batches.
type rowScratch[T Float] struct {
	x0, y0 []T
	counts []uint32
}

// Renderer drives one escape-time frame: for each pass it maps every pixel,
// evaluates the counts with its kernel, and colors the attached buffer.
type Renderer[T Float] struct {
	params   Params[T]
	viewport Viewport
	kernel   Kernel[T]
	opts     options

	padded  int
	scratch []rowScratch[T]
	counts  []uint32
}

// NewRenderer validates the parameters and allocates per-worker scratch.
// It fails with ErrConfiguration (or ErrDegenerateScale) on bad input, and
// when the sink's dimensions differ from the viewport.
func NewRenderer[T Float](p Params[T], vp Viewport, k Kernel[T], opts ...Option) (*Renderer[T], error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := vp.Validate(); err != nil {
		return nil, err
	}
	if k == nil || k.Lanes() <= 0 {
		return nil, fmt.Errorf("%w: no kernel", ErrConfiguration)
	}
	r := &Renderer[T]{params: p, viewport: vp, kernel: k}
	for _, opt := range opts {
		opt(&r.opts)
	}
	if t := r.opts.target; t != nil {
		if t.Width() != vp.Width || t.Height() != vp.Height || t.Stride() < vp.Width {
			return nil, fmt.Errorf("%w: frame buffer %dx%d (stride %d) does not match viewport %dx%d",
				ErrConfiguration, t.Width(), t.Height(), t.Stride(), vp.Width, vp.Height)
		}
		if r.opts.colorize == nil {
			return nil, fmt.Errorf("%w: frame buffer attached without a colorizer", ErrConfiguration)
		}
	}

	lanes := k.Lanes()
	r.padded = hwy.AlignedSize(vp.Width, lanes)
	workers := 1
	if r.opts.pool != nil {
		workers = r.opts.pool.NumWorkers()
	}
	r.scratch = make([]rowScratch[T], workers)
	for i := range r.scratch {
		r.scratch[i] = rowScratch[T]{
			x0:     make([]T, r.padded),
			y0:     make([]T, r.padded),
			counts: make([]uint32, r.padded),
		}
	}
	if r.opts.keepCounts {
		r.counts = make([]uint32, vp.Pixels())
	}

	Logger().Debug("renderer ready",
		"kernel", k.Name(), "lanes", lanes,
		"width", vp.Width, "height", vp.Height, "repeat", vp.Repeat,
		"workers", workers, "schedule", r.opts.schedule.String(),
		"headless", r.opts.target == nil)
	return r, nil
}

// Params returns the current parameters.
func (r *Renderer[T]) Params() Params[T] { return r.params }

// Viewport returns the grid the renderer covers.
func (r *Renderer[T]) Viewport() Viewport { return r.viewport }

// Kernel returns the evaluation strategy in use.
func (r *Renderer[T]) Kernel() Kernel[T] { return r.kernel }

// SetParams replaces the parameters used by later frames, as an
// interactive view does when panning or zooming. It must not be called
// while RunFrame is running.
func (r *Renderer[T]) SetParams(p Params[T]) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.params = p
	return nil
}

// Counts returns the escape counts of the last pass in row-major order
// (Width per row, no padding), or nil unless WithCounts was given. The slice
// is overwritten by the next frame.
func (r *Renderer[T]) Counts() []uint32 { return r.counts }

// RunFrame computes Viewport.Repeat full passes over the grid. With a sink
// attached the buffer is locked for the whole frame and every pass writes
// every visible pixel; the padding columns are never touched. Samples are
// recomputed on every pass.
func (r *Renderer[T]) RunFrame() error {
	var pix []uint32
	stride := 0
	if t := r.opts.target; t != nil {
		var err error
		pix, err = t.Lock()
		if err != nil {
			return fmt.Errorf("%w: lock frame buffer: %w", ErrPresentation, err)
		}
		defer t.Unlock()
		stride = t.Stride()
	}
	for range r.viewport.Repeat {
		r.pass(pix, stride)
	}
	return nil
}

func (r *Renderer[T]) pass(pix []uint32, stride int) {
	rows := func(worker, start, end int) {
		s := &r.scratch[worker]
		for y := start; y < end; y++ {
			r.row(s, y, pix, stride)
		}
	}
	pool := r.opts.pool
	switch {
	case pool == nil:
		rows(0, 0, r.viewport.Height)
	case r.opts.schedule == Dynamic:
		pool.ParallelForAtomicBatched(r.viewport.Height, rowBatch, rows)
	default:
		pool.ParallelFor(r.viewport.Height, rows)
	}
}

func (r *Renderer[T]) row(s *rowScratch[T], y int, pix []uint32, stride int) {
	w := r.viewport.Width
	MapRow(&r.params, y, s.x0[:w], s.y0)
	// Padding lanes repeat the last real sample: they finish exactly when it
	// does, so they never extend a batch's loop, and their counts are
	// dropped.
	hwy.PadTail(s.x0, w)
	r.kernel.EscapeBatch(&r.params, s.x0, s.y0, s.counts)

	if r.counts != nil {
		copy(r.counts[y*w:(y+1)*w], s.counts[:w])
	}
	if pix == nil {
		return
	}
	out := pix[y*stride : y*stride+w]
	maxIter := r.params.MaxIterations
	for x, n := range s.counts[:w] {
		out[x] = r.opts.colorize(n, maxIter)
	}
}
