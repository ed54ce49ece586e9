// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultCaptionSize is the caption font size in pixels.
const DefaultCaptionSize = 11

// Captioner renders single-line captions in Go Regular.
//
// Widths come from HarfBuzz shaping so kerning is accounted for; glyphs are
// rasterized with golang.org/x/image/font. A Captioner is not safe for
// concurrent use.
type Captioner struct {
	size   float64
	face   font.Face
	shape  *gotext.Face
	shaper shaping.HarfbuzzShaper
}

// NewCaptioner returns a Captioner for the given pixel size.
func NewCaptioner(size float64) (*Captioner, error) {
	if size <= 0 {
		size = DefaultCaptionSize
	}

	otf, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("render: parse caption font: %w", err)
	}
	face, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("render: caption face: %w", err)
	}

	shape, err := gotext.ParseTTF(bytes.NewReader(goregular.TTF))
	if err != nil {
		_ = face.Close()
		return nil, fmt.Errorf("render: parse caption font for shaping: %w", err)
	}

	return &Captioner{size: size, face: face, shape: shape}, nil
}

// Size returns the font size in pixels.
func (c *Captioner) Size() float64 { return c.size }

// Height returns the line height in pixels.
func (c *Captioner) Height() int {
	m := c.face.Metrics()
	return (m.Ascent + m.Descent).Ceil()
}

// Measure returns the advance width of text in whole pixels.
func (c *Captioner) Measure(text string) int {
	if text == "" {
		return 0
	}
	runes := []rune(text)
	out := c.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      c.shape,
		Size:      fixed.Int26_6(c.size * 64),
		Script:    language.Latin,
		Language:  language.NewLanguage("en"),
	})
	return out.Advance.Ceil()
}

// Render draws text in col onto a transparent image just large enough to
// hold it. Empty text yields nil.
func (c *Captioner) Render(text string, col color.Color) *image.NRGBA {
	w := c.Measure(text)
	if w <= 0 {
		return nil
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, c.Height()))
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: c.face,
		Dot:  fixed.Point26_6{Y: c.face.Metrics().Ascent},
	}
	d.DrawString(text)
	return img
}

// Close releases the rasterizer face.
func (c *Captioner) Close() error {
	return c.face.Close()
}
