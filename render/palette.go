// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette holds the colours used by the Renderer.
type Palette struct {
	Collided color.NRGBA // screen tint after a collision
	Clear    color.NRGBA // screen tint otherwise
	Caption  color.NRGBA
}

// DefaultPalette returns the demo colours: dark red on collision, dark blue
// otherwise.
func DefaultPalette() Palette {
	return Palette{
		Collided: hex("#640000"),
		Clear:    hex("#000064"),
		Caption:  hex("#e8e8e8"),
	}
}

// hex parses a compiled-in colour constant. It panics on a malformed
// constant.
func hex(s string) color.NRGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("render: bad palette colour " + s + ": " + err.Error())
	}
	return nrgba(c)
}

// Tint returns the screen clear colour for a decision.
func (p Palette) Tint(collided bool) color.NRGBA {
	if collided {
		return p.Collided
	}
	return p.Clear
}

// Status returns the status line colour for a decision: the tint lightened
// in HCL space so it stays readable on the tinted background.
func (p Palette) Status(collided bool) color.NRGBA {
	return lighten(p.Tint(collided), 0.6)
}

func lighten(c color.Color, amount float64) color.NRGBA {
	cf, _ := colorful.MakeColor(c)
	h, ch, l := cf.Hcl()
	return nrgba(colorful.Hcl(h, ch, l+amount).Clamped())
}

func nrgba(c colorful.Color) color.NRGBA {
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
