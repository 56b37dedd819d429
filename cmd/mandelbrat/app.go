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
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/ajroetker/hwybrot/config"
	"github.com/ajroetker/hwybrot/fractal"
	"github.com/ajroetker/hwybrot/fractal/palette"
	"github.com/ajroetker/hwybrot/frame"
	"github.com/ajroetker/hwybrot/hwy"
	"github.com/ajroetker/hwybrot/hwy/contrib/workerpool"
	"github.com/ajroetker/hwybrot/overlay"
	"github.com/ajroetker/hwybrot/snapshot"
	"github.com/ajroetker/hwybrot/timing"
)

// bufferAlign pads rows to 64 bytes.
const bufferAlign = 16

type textRenderer interface {
	timing.TextRenderer
	LineHeight() int
}

// app owns everything one run needs at precision T.
type app[T fractal.Float] struct {
	opts     config.Options
	log      *slog.Logger
	strategy fractal.Strategy
	buf      *frame.Buffer
	pool     *workerpool.Pool
	renderer *fractal.Renderer[T]
	fps      *timing.FPSTracker
	cycles   *timing.CycleTracker
	rec      *timing.Recorder
}

func newApp[T fractal.Float](opts config.Options, log *slog.Logger) (*app[T], error) {
	a := &app[T]{opts: opts, log: log}
	if err := a.setup(); err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

func (a *app[T]) setup() error {
	opts := a.opts
	var err error
	if a.strategy, err = opts.ResolveStrategy(); err != nil {
		return err
	}
	rec, err := opts.Record()
	if err != nil {
		return err
	}
	params, err := config.Params[T](rec, opts.Width, opts.Height)
	if err != nil {
		return err
	}
	colorize, err := palette.ByName(opts.Palette)
	if err != nil {
		return fmt.Errorf("%w: %w", fractal.ErrConfiguration, err)
	}
	schedule, err := fractal.ParseSchedule(opts.Schedule)
	if err != nil {
		return err
	}

	// A headless run without a snapshot measures compute alone, so nothing
	// is colorized or drawn.
	present := opts.Graphics || opts.Snapshot != ""
	ropts := []fractal.Option{fractal.WithSchedule(schedule)}
	if present {
		a.buf = frame.New(opts.Width, opts.Height, bufferAlign)
		ropts = append(ropts, fractal.WithSink(a.buf, colorize))
	}
	if opts.Workers != 0 {
		workers := opts.Workers
		if workers < 0 {
			workers = runtime.GOMAXPROCS(0)
		}
		a.pool = workerpool.New(workers)
		ropts = append(ropts, fractal.WithPool(a.pool))
	}
	a.renderer, err = fractal.NewRenderer(params, opts.Viewport(), fractal.KernelFor[T](a.strategy), ropts...)
	if err != nil {
		return err
	}

	var text timing.TextRenderer
	var topts []timing.Option
	if present {
		tr, err := newTextRenderer(opts, a.buf)
		if err != nil {
			return err
		}
		text = tr
		topts = append(topts, timing.WithPosition(0, tr.LineHeight()))
	}
	if opts.Output != "" {
		if a.rec, err = timing.CreateRecorder(opts.Output); err != nil {
			return fmt.Errorf("%w: %w", fractal.ErrConfiguration, err)
		}
		topts = append(topts, timing.WithRecorder(a.rec))
	}
	a.fps = timing.NewFPSTracker(opts.UpdateInterval, text)
	a.cycles = timing.NewCycleTracker(opts.UpdateInterval, text, topts...)

	a.log.Info("started",
		"presenting", present, "strategy", a.strategy.Name, "lanes", a.renderer.Kernel().Lanes(),
		"precision", opts.Precision, "target", hwy.CurrentName(),
		"cpu", hwy.CPUFeatures(), "counter", timing.CounterName,
		"params", rec.Header, "options", opts.String())
	return nil
}

func newTextRenderer(opts config.Options, buf *frame.Buffer) (textRenderer, error) {
	if opts.Text == config.TextTinyFont {
		return overlay.NewTinyRenderer(buf, nil), nil
	}
	if opts.Font == "" {
		return overlay.NewFaceRenderer(buf, nil), nil
	}
	face, err := overlay.LoadFace(opts.Font, opts.FontSize)
	if err != nil {
		return nil, &config.FieldError{Field: "font", Value: opts.Font, Err: fmt.Errorf("%w: %w", fractal.ErrConfiguration, err)}
	}
	return overlay.NewFaceRenderer(buf, face), nil
}

// step renders one displayed frame and its overlays.
func (a *app[T]) step() error {
	if err := a.renderer.RunFrame(); err != nil {
		return err
	}
	if err := a.fps.Update(); err != nil {
		return err
	}
	return a.cycles.Update()
}

// runHeadless renders opts.Frames frames without a window. Cancelling ctx
// stops the loop between frames.
func (a *app[T]) runHeadless(ctx context.Context, out io.Writer) error {
	for n := range a.opts.Frames {
		if err := ctx.Err(); err != nil {
			a.log.Info("interrupted", "frames", n)
			break
		}
		if err := a.step(); err != nil {
			return err
		}
	}
	if err := a.saveSnapshot(); err != nil {
		return err
	}
	fmt.Fprintf(out, "strategy %s, precision %s, %d frames of %dx%d x%d: mean %.0f %s ticks/frame\n",
		a.strategy.Name, a.opts.Precision, a.cycles.Frames(),
		a.opts.Width, a.opts.Height, a.opts.Repeat,
		a.cycles.MeanTicks(), timing.CounterName)
	return nil
}

func (a *app[T]) saveSnapshot() error {
	if a.opts.Snapshot == "" {
		return nil
	}
	if err := snapshot.Write(a.opts.Snapshot, a.buf.RGBA()); err != nil {
		return fmt.Errorf("%w: %w", fractal.ErrPresentation, err)
	}
	a.log.Info("snapshot written", "path", a.opts.Snapshot)
	return nil
}

func (a *app[T]) close() error {
	var errs []error
	if a.pool != nil {
		a.pool.Close()
	}
	if a.rec != nil {
		if err := a.rec.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%w: close cycle record: %w", fractal.ErrPresentation, err))
		}
	}
	return errors.Join(errs...)
}
