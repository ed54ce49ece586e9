// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package terminal runs the collision demo in a text terminal.
//
// Terminal is both the input source and the presenter: mouse motion over
// the terminal moves the pointer, and every presented frame is downscaled
// onto the cell grid using upper half blocks, two pixels per cell.
package terminal

import (
	"fmt"
	"image"
	"log/slog"
	"sync"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/draw"

	"github.com/gogpu/collide"
)

// halfBlock shows the foreground in the top half of a cell and the
// background in the bottom half.
const halfBlock = '▀'

// eventBuffer is the capacity of the channel between the event pump and Poll.
const eventBuffer = 256

// Option configures a Terminal.
type Option func(*Terminal)

// WithScreen uses s instead of the process terminal. Tests pass a
// tcell.SimulationScreen.
func WithScreen(s tcell.Screen) Option {
	return func(t *Terminal) { t.screen = s }
}

// WithLogger sets the terminal's logger. By default it logs through
// collide.Logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Terminal) { t.logger = l }
}

// Terminal is a tcell backed input source and presenter.
//
// Events are read by a pump goroutine and drained by Poll, so Poll never
// blocks. Poll and Present must be called from the frame loop goroutine.
type Terminal struct {
	screen tcell.Screen
	pixels collide.Size
	logger *slog.Logger

	events chan tcell.Event
	quit   chan struct{}
	once   sync.Once

	scaled *image.NRGBA
}

// New initializes the terminal for a frame of pixels.W by pixels.H and
// starts reading events. All errors wrap collide.ErrInitialization.
func New(pixels collide.Size, opts ...Option) (*Terminal, error) {
	if pixels.Empty() {
		return nil, fmt.Errorf("%w: terminal frame size %v", collide.ErrInitialization, pixels)
	}

	t := &Terminal{
		pixels: pixels,
		events: make(chan tcell.Event, eventBuffer),
		quit:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("%w: open terminal: %w", collide.ErrInitialization, err)
		}
		t.screen = s
	}
	if err := t.screen.Init(); err != nil {
		return nil, fmt.Errorf("%w: init terminal: %w", collide.ErrInitialization, err)
	}

	t.screen.EnableMouse(tcell.MouseMotionEvents)
	t.screen.HideCursor()
	t.screen.Clear()

	go t.screen.ChannelEvents(t.events, t.quit)

	w, h := t.screen.Size()
	t.log().Info("terminal: ready", "cells", fmt.Sprintf("%dx%d", w, h), "frame", pixels)
	return t, nil
}

// Poll drains pending events, moving pointer to the last mouse position.
// It reports true on Esc, q, Ctrl-C or when the terminal is gone.
func (t *Terminal) Poll(pointer *collide.Point) bool {
	for {
		select {
		case ev, ok := <-t.events:
			if !ok {
				return true
			}
			if t.handle(ev, pointer) {
				return true
			}
		default:
			return false
		}
	}
}

func (t *Terminal) handle(ev tcell.Event, pointer *collide.Point) (quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		*pointer = t.ToPixel(ev.Position())
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return true
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
			return true
		}
	case *tcell.EventResize:
		t.screen.Sync()
	case nil:
		return true
	}
	return false
}

// ToPixel maps the centre of cell (cx, cy) to frame pixel coordinates.
func (t *Terminal) ToPixel(cx, cy int) collide.Point {
	w, h := t.screen.Size()
	if w <= 0 || h <= 0 {
		return collide.Point{}
	}
	return collide.Pt(
		(2*cx+1)*t.pixels.W/(2*w),
		(2*cy+1)*t.pixels.H/(2*h),
	)
}

// Present draws frame onto the cell grid and shows it.
func (t *Terminal) Present(frame *image.NRGBA) error {
	w, h := t.screen.Size()
	if w <= 0 || h <= 0 {
		return nil
	}

	bounds := image.Rect(0, 0, w, 2*h)
	if t.scaled == nil || t.scaled.Rect != bounds {
		t.scaled = image.NewNRGBA(bounds)
	}
	draw.ApproxBiLinear.Scale(t.scaled, bounds, frame, frame.Bounds(), draw.Src, nil)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			style := tcell.StyleDefault.
				Foreground(rgb(t.scaled, x, 2*y)).
				Background(rgb(t.scaled, x, 2*y+1))
			t.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
	t.screen.Show()
	return nil
}

// Close stops the event pump and restores the terminal. Close is
// idempotent.
func (t *Terminal) Close() error {
	t.once.Do(func() {
		close(t.quit)
		t.screen.Fini()
	})
	return nil
}

func (t *Terminal) log() *slog.Logger {
	if t.logger != nil {
		return t.logger
	}
	return collide.Logger()
}

func rgb(img *image.NRGBA, x, y int) tcell.Color {
	c := img.NRGBAAt(x, y)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
