// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/collide"

// Screen dimensions of the demo.
const (
	ScreenWidth  = 1024
	ScreenHeight = 768
)

// Layout holds the top-left corner of every panel.
type Layout struct {
	Screen   collide.Size
	Board    collide.Point
	Mask     collide.Point
	Player   collide.Point
	Result   collide.Point
	Readback collide.Point
	Status   collide.Point
}

// DefaultLayout returns the panel positions of the demo.
func DefaultLayout() Layout {
	return Layout{
		Screen:   collide.Size{W: ScreenWidth, H: ScreenHeight},
		Board:    collide.Pt(47, 50),
		Mask:     collide.Pt(707, 64),
		Player:   collide.Pt(794, 64),
		Result:   collide.Pt(708, 146),
		Readback: collide.Pt(793, 147),
		Status:   collide.Pt(47, 740),
	}
}
