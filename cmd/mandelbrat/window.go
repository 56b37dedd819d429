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
	"github.com/ajroetker/hwybrot/config"
	"github.com/ajroetker/hwybrot/fractal"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// game presents the app's frame buffer in an ebiten window.
type game[T fractal.Float] struct {
	app    *app[T]
	pixels []byte
	frames int
	err    error
}

func (a *app[T]) runWindow() error {
	w, h := a.opts.Width, a.opts.Height
	ebiten.SetWindowTitle("mandelbrat (" + a.strategy.Name + ")")
	ebiten.SetWindowSize(w, h)
	if a.opts.WindowX != config.CenteredWindow || a.opts.WindowY != config.CenteredWindow {
		ebiten.SetWindowPosition(a.opts.WindowX, a.opts.WindowY)
	}
	// Frame rate is what is being measured, so do not cap it.
	ebiten.SetVsyncEnabled(false)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	g := &game[T]{app: a, pixels: make([]byte, 4*w*h)}
	if err := ebiten.RunGame(g); err != nil {
		return err
	}
	a.log.Info("window closed", "frames", g.frames)
	return a.saveSnapshot()
}

func (g *game[T]) Update() error {
	if g.err != nil {
		return g.err
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if n := g.app.opts.Frames; n > 0 && g.frames >= n {
		return ebiten.Termination
	}

	r := g.app.renderer
	w, h := float64(g.app.opts.Width), float64(g.app.opts.Height)
	p := r.Params()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		p = pan(p, -w*panFraction, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		p = pan(p, w*panFraction, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		p = pan(p, 0, -h*panFraction)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		p = pan(p, 0, h*panFraction)
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd):
		p = zoom(p, zoomFactor, w/2, h/2)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract):
		p = zoom(p, 1/zoomFactor, w/2, h/2)
	default:
		return nil
	}
	if err := r.SetParams(p); err != nil {
		// A view that no longer validates, such as a scale that underflowed,
		// is ignored rather than ending the session.
		g.app.log.Warn("view change rejected", "err", err)
	}
	return nil
}

func (g *game[T]) Draw(screen *ebiten.Image) {
	if g.err != nil {
		return
	}
	if err := g.app.step(); err != nil {
		g.err = err
		return
	}
	g.frames++
	g.app.buf.CopyTo(g.pixels)
	screen.WritePixels(g.pixels)
}

func (g *game[T]) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.app.opts.Width, g.app.opts.Height
}
