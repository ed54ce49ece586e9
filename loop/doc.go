// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package loop drives the per-frame cycle of the collision demo.
//
// Each frame polls the input source, asks the Collider for a decision,
// renders the debug panels, presents the screen and sleeps until the next
// frame boundary. Everything runs on the calling goroutine; cancellation
// is only observed between frames.
package loop
