// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package loop

import (
	"testing"

	"github.com/gogpu/collide"
)

func TestScriptedInput(t *testing.T) {
	in := NewScriptedInput(collide.Pt(1, 2), collide.Pt(3, 4))
	var p collide.Point

	if in.Remaining() != 2 {
		t.Errorf("Remaining() = %d, want 2", in.Remaining())
	}
	if in.Poll(&p) || p != collide.Pt(1, 2) {
		t.Errorf("first Poll -> %v", p)
	}
	if in.Poll(&p) || p != collide.Pt(3, 4) {
		t.Errorf("second Poll -> %v", p)
	}
	if !in.Poll(&p) {
		t.Error("Poll past the end should quit")
	}
	if p != collide.Pt(3, 4) {
		t.Errorf("pointer changed on quit: %v", p)
	}
}

func TestSweep(t *testing.T) {
	got := Sweep(collide.RectAt(collide.Pt(10, 20), collide.Size{W: 5, H: 3}), 2)
	want := []collide.Point{
		{X: 10, Y: 20}, {X: 12, Y: 20}, {X: 14, Y: 20},
		{X: 10, Y: 22}, {X: 12, Y: 22}, {X: 14, Y: 22},
	}
	if len(got) != len(want) {
		t.Fatalf("Sweep returned %d points, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, got[i], want[i])
		}
	}

	if n := len(Sweep(collide.RectAt(collide.Point{}, collide.Size{W: 2, H: 2}), 0)); n != 4 {
		t.Errorf("step 0 should behave like 1, got %d points", n)
	}
}
