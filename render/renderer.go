// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/collide"
	"github.com/gogpu/collide/internal/cache"
	"github.com/gogpu/collide/surface"
)

// captionCacheLimit bounds the number of caption surfaces kept alive.
const captionCacheLimit = 32

// Panels exposes the surfaces shown by the Renderer. *collide.Collider
// implements it.
type Panels interface {
	Board() surface.Surface
	Player() surface.Surface
	Mask() surface.Surface
	Result() surface.Surface
	Readback() surface.Streaming
}

// statser is implemented by panels that count decisions.
type statser interface {
	Stats() collide.Stats
}

// Option configures a Renderer.
type Option func(*rendererOptions)

type rendererOptions struct {
	layout      Layout
	palette     Palette
	captions    bool
	captionSize float64
}

// WithLayout overrides the panel positions.
func WithLayout(l Layout) Option {
	return func(o *rendererOptions) { o.layout = l }
}

// WithPalette overrides the colours.
func WithPalette(p Palette) Option {
	return func(o *rendererOptions) { o.palette = p }
}

// WithCaptions enables or disables panel captions and the status line.
// Captions are on by default.
func WithCaptions(on bool) Option {
	return func(o *rendererOptions) { o.captions = on }
}

// WithCaptionSize sets the caption font size in pixels.
func WithCaptionSize(size float64) Option {
	return func(o *rendererOptions) { o.captionSize = size }
}

type captionKey struct {
	text string
	col  color.NRGBA
}

// Renderer draws the debug panel layout through a surface provider.
type Renderer struct {
	provider surface.Provider
	panels   Panels
	opts     rendererOptions

	captioner *Captioner
	captions  *cache.Cache[captionKey, surface.Surface]
}

// New returns a Renderer drawing panels through p.
func New(p surface.Provider, panels Panels, opts ...Option) (*Renderer, error) {
	if p == nil || panels == nil {
		return nil, fmt.Errorf("%w: renderer needs a provider and panels", collide.ErrInitialization)
	}

	o := rendererOptions{
		layout:      DefaultLayout(),
		palette:     DefaultPalette(),
		captions:    true,
		captionSize: DefaultCaptionSize,
	}
	for _, opt := range opts {
		opt(&o)
	}

	r := &Renderer{
		provider: p,
		panels:   panels,
		opts:     o,
		captions: cache.New(captionCacheLimit, func(_ captionKey, s surface.Surface) {
			if s != nil {
				_ = s.Close()
			}
		}),
	}

	if o.captions {
		c, err := NewCaptioner(o.captionSize)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", collide.ErrInitialization, err)
		}
		r.captioner = c
	}
	return r, nil
}

// Layout returns the panel positions in use.
func (r *Renderer) Layout() Layout { return r.opts.layout }

// Render draws one frame to the screen. The player is drawn a second time
// with its top-left corner at pointer.
func (r *Renderer) Render(pointer collide.Point, collided bool) error {
	if err := r.provider.SetTarget(nil); err != nil {
		return err
	}
	if err := r.provider.Clear(r.opts.palette.Tint(collided)); err != nil {
		return err
	}

	l := r.opts.layout
	panels := []struct {
		src     surface.Surface
		at      collide.Point
		caption string
	}{
		{r.panels.Board(), l.Board, "Board"},
		{r.panels.Mask(), l.Mask, collide.MaskLabel},
		{r.panels.Result(), l.Result, collide.ResultLabel},
		{r.panels.Player(), l.Player, "Player"},
		{r.panels.Player(), pointer, ""},
		{r.panels.Readback(), l.Readback, collide.ReadbackLabel},
	}

	for _, p := range panels {
		err := r.blit(p.src, p.at)
		if errors.Is(err, surface.ErrLocked) {
			// A streaming panel still held by its owner is left out of
			// this frame.
			collide.Logger().Debug("render: skipped locked panel", "panel", p.src.Label())
			continue
		}
		if err != nil {
			return fmt.Errorf("render: draw %s: %w", p.src.Label(), err)
		}
	}

	if r.captioner == nil {
		return nil
	}
	for _, p := range panels {
		if p.caption == "" {
			continue
		}
		below := collide.Pt(p.at.X, p.at.Y+p.src.Height()+2)
		if err := r.caption(p.caption, r.opts.palette.Caption, below); err != nil {
			return err
		}
	}
	return r.status(pointer, collided)
}

// Close releases cached caption surfaces.
func (r *Renderer) Close() error {
	r.captions.Clear()
	if r.captioner != nil {
		err := r.captioner.Close()
		r.captioner = nil
		return err
	}
	return nil
}

// blit draws src unscaled with its top-left corner at at. Panels are shown
// source-over on the tint so their transparent pixels stay visible as
// background; the mask blend only ever applies inside the Collider.
func (r *Renderer) blit(src surface.Surface, at collide.Point) error {
	tl := at.ImagePoint()
	dst := image.Rectangle{Min: tl, Max: tl.Add(image.Pt(src.Width(), src.Height()))}
	return r.provider.Draw(src, &surface.DrawOptions{DstRect: &dst, Blend: surface.BlendAlpha})
}

// caption draws a cached caption surface at at.
func (r *Renderer) caption(text string, col color.NRGBA, at collide.Point) error {
	s, err := r.captions.GetOrCreate(captionKey{text, col}, func() (surface.Surface, error) {
		img := r.captioner.Render(text, col)
		if img == nil {
			return nil, nil
		}
		s, err := r.provider.Upload(img, "caption:"+text)
		if err != nil {
			return nil, fmt.Errorf("render: upload caption %q: %w", text, err)
		}
		return s, nil
	})
	if err != nil || s == nil {
		return err
	}
	return r.blit(s, at)
}

// status draws the per-frame status line. It changes every frame, so it
// is uploaded and released immediately.
func (r *Renderer) status(pointer collide.Point, collided bool) error {
	line := fmt.Sprintf("pointer %v  collided %v", pointer, collided)
	if st, ok := r.panels.(statser); ok {
		s := st.Stats()
		line += fmt.Sprintf("  frames %d  hits %d  readback failures %d", s.Frames, s.Collisions, s.ReadbackFailures)
	}

	img := r.captioner.Render(line, r.opts.palette.Status(collided))
	if img == nil {
		return nil
	}
	s, err := r.provider.Upload(img, "status")
	if err != nil {
		return fmt.Errorf("render: upload status: %w", err)
	}
	defer func() { _ = s.Close() }()

	return r.blit(s, r.opts.layout.Status)
}
