// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package loop

import "github.com/gogpu/collide"

// InputSource delivers pointer samples to the frame driver.
//
// Poll drains every pending event without blocking, writes the latest
// pointer position to pointer and reports whether the user asked to quit.
// The pointer is left unchanged when no motion arrived.
type InputSource interface {
	Poll(pointer *collide.Point) (quit bool)
}

// InputFunc adapts a function to InputSource.
type InputFunc func(pointer *collide.Point) bool

// Poll calls f(pointer).
func (f InputFunc) Poll(pointer *collide.Point) bool {
	return f(pointer)
}

// ScriptedInput replays a fixed pointer path, one point per frame, and
// requests quit once the path is exhausted.
type ScriptedInput struct {
	path []collide.Point
	next int
}

// NewScriptedInput returns an input source replaying path.
func NewScriptedInput(path ...collide.Point) *ScriptedInput {
	return &ScriptedInput{path: path}
}

// Poll moves the pointer to the next point of the path.
func (s *ScriptedInput) Poll(pointer *collide.Point) bool {
	if s.next >= len(s.path) {
		return true
	}
	*pointer = s.path[s.next]
	s.next++
	return false
}

// Remaining returns how many points are left to replay.
func (s *ScriptedInput) Remaining() int {
	return len(s.path) - s.next
}

// Sweep returns the points of a raster scan over r, stepping step pixels
// along each row and between rows.
func Sweep(r collide.Rect, step int) []collide.Point {
	if step <= 0 {
		step = 1
	}
	var pts []collide.Point
	for y := r.Min.Y; y < r.Min.Y+r.Size.H; y += step {
		for x := r.Min.X; x < r.Min.X+r.Size.W; x += step {
			pts = append(pts, collide.Pt(x, y))
		}
	}
	return pts
}
