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

// Command mandelbrat renders the Mandelbrot set with a selectable evaluation
// strategy and reports frame rate and per-frame cycle cost.
//
// Usage:
//
//	mandelbrat [flags] [params-file]
//
// Without -g it runs headless for -c frames and prints the mean ticks per
// frame. With -g it opens a window: arrow keys pan, = and - zoom, Esc quits.
//
// Examples:
//
//	mandelbrat -c 100 -r 10 --strategy avx2-x4 -o assets/avx2-x4.txt assets/params.txt
//	mandelbrat -g -s 1280x720x0x0 --palette bands --workers -1
//	mandelbrat strategies
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"text/tabwriter"

	"github.com/ajroetker/hwybrot/config"
	"github.com/ajroetker/hwybrot/fractal"
	"github.com/ajroetker/hwybrot/fractal/palette"
	"github.com/ajroetker/hwybrot/hwy"
	"github.com/ajroetker/hwybrot/timing"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const logFileName = "logout.log"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "mandelbrat: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := config.Default()
	var screen string

	cmd := &cobra.Command{
		Use:           "mandelbrat [params-file]",
		Short:         "Escape-time Mandelbrot renderer and SIMD strategy benchmark",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if cmd.Flags().Changed("params") {
					return &config.FieldError{Field: "params", Value: args[0],
						Err: fmt.Errorf("%w: given both as --params and as an argument", fractal.ErrConfiguration)}
				}
				opts.ParamsPath = args[0]
			}
			if cmd.Flags().Changed("screen") {
				if err := opts.SetScreen(screen); err != nil {
					return err
				}
			}
			return run(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}
	addFlags(cmd.Flags(), &opts, &screen)
	cmd.AddCommand(newStrategiesCmd())
	return cmd
}

// addFlags registers the run options. -h is height, so help is --help only.
func addFlags(f *pflag.FlagSet, o *config.Options, screen *string) {
	f.SortFlags = false
	f.StringVarP(&o.LogDir, "log-dir", "l", o.LogDir, "directory for "+logFileName)
	f.StringVarP(&o.Output, "output", "o", o.Output, "append \"frame ticks\" lines to this file")
	f.IntVarP(&o.Width, "width", "w", o.Width, "frame width in pixels")
	f.IntVarP(&o.Height, "height", "h", o.Height, "frame height in pixels")
	f.IntVarP(&o.WindowX, "x-offset", "x", o.WindowX, "window x position (-1 centers)")
	f.IntVarP(&o.WindowY, "y-offset", "y", o.WindowY, "window y position (-1 centers)")
	f.StringVarP(screen, "screen", "s", "", "screen as WIDTHxHEIGHTxXxY")
	f.BoolVarP(&o.Graphics, "graphics", "g", o.Graphics, "open a window")
	f.IntVarP(&o.Repeat, "repeat", "r", o.Repeat, "grid passes per displayed frame")
	f.StringVarP(&o.Font, "font", "f", o.Font, "TrueType font for the overlay (default built-in bitmap)")
	f.IntVarP(&o.Frames, "frames", "c", o.Frames, "stop after this many frames (0: until the window closes)")
	f.StringVar(&o.ParamsPath, "params", o.ParamsPath, "parameter record file")
	f.StringVar(&o.Strategy, "strategy", o.Strategy, "evaluation strategy (default: best available)")
	f.StringVar(&o.Precision, "precision", o.Precision, "single or double")
	f.StringVar(&o.Palette, "palette", o.Palette, fmt.Sprintf("coloring rule %v", palette.Names()))
	f.IntVar(&o.Workers, "workers", o.Workers, "row workers (0: none, -1: one per CPU)")
	f.StringVar(&o.Schedule, "schedule", o.Schedule, "row distribution across workers: static or dynamic")
	f.StringVar(&o.Snapshot, "snapshot", o.Snapshot, "write the last frame to this .png, .webp or .tga file")
	f.DurationVar(&o.UpdateInterval, "update-interval", o.UpdateInterval, "frame rate update interval")
	f.StringVar(&o.Text, "text", o.Text, "overlay text renderer: xfont or tinyfont")
	f.Float64Var(&o.FontSize, "font-size", o.FontSize, "overlay font size in points")
	f.BoolVar(&o.Verbose, "verbose", o.Verbose, "log debug events")
}

func run(ctx context.Context, opts config.Options, out io.Writer) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	log, closeLog, err := openLog(opts)
	if err != nil {
		return err
	}
	defer closeLog()

	prec, err := fractal.ParsePrecision(opts.Precision)
	if err != nil {
		return err
	}
	if prec == fractal.Double {
		return runAt[float64](ctx, opts, log, out)
	}
	return runAt[float32](ctx, opts, log, out)
}

func runAt[T fractal.Float](ctx context.Context, opts config.Options, log *slog.Logger, out io.Writer) (err error) {
	a, err := newApp[T](opts, log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.close(); err == nil {
			err = cerr
		}
	}()
	if opts.Graphics {
		return a.runWindow()
	}
	return a.runHeadless(ctx, out)
}

// openLog creates <log-dir>/logout.log and routes the library loggers to it.
func openLog(opts config.Options) (*slog.Logger, func(), error) {
	if err := os.MkdirAll(opts.LogDir, 0o755); err != nil {
		return nil, nil, &config.FieldError{Field: "log-dir", Value: opts.LogDir, Err: fmt.Errorf("%w: %w", fractal.ErrConfiguration, err)}
	}
	path := filepath.Join(opts.LogDir, logFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, &config.FieldError{Field: "log-dir", Value: opts.LogDir, Err: fmt.Errorf("%w: %w", fractal.ErrConfiguration, err)}
	}
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	fractal.SetLogger(log.With("pkg", "fractal"))
	timing.SetLogger(log.With("pkg", "timing"))
	return log, func() {
		fractal.SetLogger(nil)
		timing.SetLogger(nil)
		f.Close()
	}, nil
}

func newStrategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List the evaluation strategies compiled into this binary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listStrategies(cmd.OutOrStdout())
		},
	}
}

func listStrategies(out io.Writer) error {
	fmt.Fprintf(out, "target: %s, cpu: %v, counter: %s\n\n", hwy.CurrentName(), hwy.CPUFeatures(), timing.CounterName)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tLEVEL\tLANES f32/f64\tUNROLLED\tAVAILABLE")
	best := fractal.Best().Name
	for _, s := range fractal.Strategies() {
		name := s.Name
		if name == best {
			name += " *"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%v\t%v\n", name, s.Level,
			fractal.KernelFor[float32](s).Lanes(), fractal.KernelFor[float64](s).Lanes(),
			s.Unrolled, s.Available())
	}
	return tw.Flush()
}
