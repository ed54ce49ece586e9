// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package loop

import (
	"log/slog"
	"time"

	"github.com/gogpu/collide"
)

// Option configures a Driver.
type Option func(*driverOptions)

type driverOptions struct {
	frame   time.Duration
	clock   Clock
	logger  *slog.Logger
	pointer collide.Point
}

func defaultDriverOptions() driverOptions {
	return driverOptions{
		frame: DefaultFrameDuration,
		clock: SystemClock{},
	}
}

// WithFrameDuration sets the frame budget. Non-positive values keep the
// default.
func WithFrameDuration(d time.Duration) Option {
	return func(o *driverOptions) {
		if d > 0 {
			o.frame = d
		}
	}
}

// WithClock replaces the system clock, typically with a fake in tests.
func WithClock(c Clock) Option {
	return func(o *driverOptions) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithDriverLogger sets the driver's logger. By default the driver logs
// through collide.Logger.
func WithDriverLogger(l *slog.Logger) Option {
	return func(o *driverOptions) {
		o.logger = l
	}
}

// WithStartPointer sets the pointer position used until the first motion
// event arrives.
func WithStartPointer(p collide.Point) Option {
	return func(o *driverOptions) {
		o.pointer = p
	}
}
