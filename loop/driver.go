// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package loop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/collide"
	"github.com/gogpu/collide/surface"
)

// Renderer draws one frame of the debug panel layout to the screen.
type Renderer interface {
	Render(pointer collide.Point, collided bool) error
}

// Decider answers the per-frame collision question. *collide.Collider
// implements it.
type Decider interface {
	HasCollided(pointer collide.Point) bool
}

// Driver runs the frame cycle.
type Driver struct {
	decider  Decider
	provider surface.Provider
	input    InputSource
	renderer Renderer

	opts     driverOptions
	pointer  collide.Point
	frames   uint64
	collided bool
}

// NewDriver returns a driver that polls input, asks decider for a
// collision, renders with renderer and presents through provider.
func NewDriver(decider Decider, provider surface.Provider, input InputSource, renderer Renderer, opts ...Option) (*Driver, error) {
	switch {
	case decider == nil:
		return nil, fmt.Errorf("%w: nil decider", collide.ErrInitialization)
	case provider == nil:
		return nil, fmt.Errorf("%w: nil provider", collide.ErrInitialization)
	case input == nil:
		return nil, fmt.Errorf("%w: nil input source", collide.ErrInitialization)
	case renderer == nil:
		return nil, fmt.Errorf("%w: nil renderer", collide.ErrInitialization)
	}

	o := defaultDriverOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Driver{
		decider:  decider,
		provider: provider,
		input:    input,
		renderer: renderer,
		opts:     o,
		pointer:  o.pointer,
	}, nil
}

// Step runs one frame: poll, decide, render, present. It does not sleep.
// quit is true when the input source asked to stop; no frame is rendered
// in that case.
func (d *Driver) Step() (quit bool, err error) {
	if d.input.Poll(&d.pointer) {
		return true, nil
	}

	d.collided = d.decider.HasCollided(d.pointer)

	if err := d.renderer.Render(d.pointer, d.collided); err != nil {
		return false, fmt.Errorf("loop: render frame %d: %w", d.frames, err)
	}
	if err := d.provider.Present(); err != nil {
		return false, fmt.Errorf("loop: present frame %d: %w", d.frames, err)
	}

	d.frames++
	d.logger().Debug("loop: frame",
		"frame", d.frames,
		"pointer", d.pointer,
		"collided", d.collided)
	return false, nil
}

// Run steps frames until the input source quits, a frame fails or ctx is
// cancelled. ctx is checked between frames only; a started frame always
// completes. Run returns nil on quit and ctx.Err() on cancellation.
func (d *Driver) Run(ctx context.Context) error {
	pacer := NewPacer(d.opts.clock, d.opts.frame)
	d.logger().Info("loop: running", "frame", d.opts.frame)

	for {
		if err := ctx.Err(); err != nil {
			d.logger().Info("loop: cancelled", "frames", d.frames)
			return err
		}

		quit, err := d.Step()
		if err != nil {
			return err
		}
		if quit {
			d.logger().Info("loop: quit", "frames", d.frames)
			return nil
		}

		pacer.Wait()
	}
}

// Pointer returns the last pointer position.
func (d *Driver) Pointer() collide.Point { return d.pointer }

// Frames returns the number of completed frames.
func (d *Driver) Frames() uint64 { return d.frames }

// Collided returns the decision of the last completed frame.
func (d *Driver) Collided() bool { return d.collided }

func (d *Driver) logger() *slog.Logger {
	if d.opts.logger != nil {
		return d.opts.logger
	}
	return collide.Logger()
}

// IsCancellation reports whether err is the result of a cancelled or
// expired context passed to Run.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
