// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package loop

import "time"

// DefaultFrameDuration holds the demo at roughly 60 frames per second.
const DefaultFrameDuration = 16 * time.Millisecond

// Delay returns how long to sleep before the frame boundary target when the
// clock reads now:
//
//	min(frame, max(0, target-now))
//
// The result is never negative and never longer than one frame.
func Delay(target, now time.Time, frame time.Duration) time.Duration {
	d := target.Sub(now)
	if d <= 0 {
		return 0
	}
	return min(d, frame)
}

// Pacer sleeps until successive frame boundaries.
//
// Boundaries advance by one frame per Wait. When the loop has fallen
// behind, the next boundary is placed one frame after the current time so
// missed frames are dropped instead of run back to back.
type Pacer struct {
	clock  Clock
	frame  time.Duration
	target time.Time
}

// NewPacer returns a pacer whose first boundary is one frame from now.
func NewPacer(clock Clock, frame time.Duration) *Pacer {
	if clock == nil {
		clock = SystemClock{}
	}
	if frame <= 0 {
		frame = DefaultFrameDuration
	}
	return &Pacer{
		clock:  clock,
		frame:  frame,
		target: clock.Now().Add(frame),
	}
}

// Wait sleeps until the current boundary and advances to the next one.
// It returns the time slept.
func (p *Pacer) Wait() time.Duration {
	d := Delay(p.target, p.clock.Now(), p.frame)
	if d > 0 {
		p.clock.Sleep(d)
	}

	p.target = p.target.Add(p.frame)
	if now := p.clock.Now(); p.target.Before(now) {
		p.target = now.Add(p.frame)
	}
	return d
}

// Target returns the next frame boundary.
func (p *Pacer) Target() time.Time { return p.target }

// Frame returns the frame duration.
func (p *Pacer) Frame() time.Duration { return p.frame }
