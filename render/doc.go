// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render draws the collision debug panels.
//
// Every frame the screen is cleared to a tint that reflects the last
// decision, then the Board, the scratch surfaces and the Player are blitted
// unscaled at fixed offsets, each with a caption, followed by a status line.
//
// Default layout on a 1024x768 screen:
//
//	Board         (47, 50)
//	BoardAtPlayer (707, 64)   Player       (794, 64)
//	Multiply      (708, 146)  PixelReading (793, 147)
//	Player        at the pointer
package render
