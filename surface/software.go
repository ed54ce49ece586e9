// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"

	"github.com/gogpu/collide/internal/blend"
)

// SoftwareProvider is a CPU Provider backed by *image.NRGBA surfaces.
//
// Every operation completes before it returns, so ReadPixels needs no
// synchronization with earlier draws. Blend modes are evaluated per pixel
// from their gputypes.BlendState tables.
//
// Example:
//
//	p, err := surface.NewSoftwareProvider(surface.Options{Width: 1024, Height: 768})
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
type SoftwareProvider struct {
	screen    *softSurface
	target    *softSurface // nil while drawing to the screen
	presenter Presenter
	surfaces  []*softSurface
	closed    bool
}

// NewSoftwareProvider creates a provider with a screen of opts.Width by
// opts.Height pixels.
func NewSoftwareProvider(opts Options) (*SoftwareProvider, error) {
	p := &SoftwareProvider{presenter: opts.Presenter}

	screen, err := p.create(Descriptor{
		Label:  "screen",
		Width:  opts.Width,
		Height: opts.Height,
		Format: FormatRGBA8,
		Access: AccessTarget,
	})
	if err != nil {
		return nil, err
	}
	screen.screen = true
	p.screen = screen

	return p, nil
}

// NewSurface creates an offscreen surface.
func (p *SoftwareProvider) NewSurface(desc Descriptor) (Surface, error) {
	s, err := p.create(desc)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Upload creates a static surface holding a copy of img.
func (p *SoftwareProvider) Upload(img image.Image, label string) (Surface, error) {
	if img == nil {
		return nil, fmt.Errorf("surface: upload %q: nil image", label)
	}

	b := img.Bounds()
	s, err := p.create(Descriptor{
		Label:  label,
		Width:  b.Dx(),
		Height: b.Dy(),
		Format: FormatRGBA8,
		Access: AccessStatic,
	})
	if err != nil {
		return nil, err
	}

	draw.Copy(s.img, image.Point{}, img, b, draw.Src, nil)
	return s, nil
}

// Screen returns the default render target.
func (p *SoftwareProvider) Screen() Surface {
	return p.screen
}

// SetTarget redirects drawing to s, or back to the screen when s is nil.
func (p *SoftwareProvider) SetTarget(s Surface) error {
	if p.closed {
		return ErrClosed
	}
	if s == nil {
		p.target = nil
		return nil
	}

	ss, err := p.own(s)
	if err != nil {
		return err
	}
	if !ss.desc.Access.Usage().Contains(gputypes.TextureUsageRenderAttachment) {
		return fmt.Errorf("%w: %q has %v access", ErrNotTarget, ss.desc.Label, ss.desc.Access)
	}

	if ss == p.screen {
		p.target = nil
	} else {
		p.target = ss
	}
	return nil
}

// Target returns the bound offscreen target, or nil for the screen.
func (p *SoftwareProvider) Target() Surface {
	if p.target == nil {
		return nil
	}
	return p.target
}

// Clear fills the current target with c.
func (p *SoftwareProvider) Clear(c color.Color) error {
	if p.closed {
		return ErrClosed
	}

	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	pix := p.current().img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i+0] = n.R
		pix[i+1] = n.G
		pix[i+2] = n.B
		pix[i+3] = n.A
	}
	return nil
}

// Draw draws src onto the current target.
//
// The source region is mapped onto the destination region with nearest
// neighbour sampling. Source samples outside src read as transparent
// black, and destination pixels outside the target are clipped.
func (p *SoftwareProvider) Draw(src Surface, opts *DrawOptions) error {
	if p.closed {
		return ErrClosed
	}

	ss, err := p.own(src)
	if err != nil {
		return err
	}
	if ss.locked {
		return fmt.Errorf("%w: draw %q", ErrLocked, ss.desc.Label)
	}

	dst := p.current()
	if ss == dst {
		return ErrSelfDraw
	}

	var o DrawOptions
	if opts != nil {
		o = *opts
	}

	sr := ss.Bounds()
	if o.SrcRect != nil {
		sr = *o.SrcRect
	}
	dr := dst.Bounds()
	if o.DstRect != nil {
		dr = *o.DstRect
	}
	if sr.Empty() || dr.Empty() {
		return nil
	}

	clip := dr.Intersect(dst.Bounds())
	if clip.Empty() {
		return nil
	}

	state := o.Blend.State()
	sw, sh := sr.Dx(), sr.Dy()
	dw, dh := dr.Dx(), dr.Dy()

	if sw == dw && sh == dh && sr.In(ss.Bounds()) {
		// Unscaled with every sample inside src: blend whole rows.
		n := clip.Dx() * 4
		for y := clip.Min.Y; y < clip.Max.Y; y++ {
			so := ss.img.PixOffset(sr.Min.X+clip.Min.X-dr.Min.X, sr.Min.Y+y-dr.Min.Y)
			do := dst.img.PixOffset(clip.Min.X, y)
			blend.Row(state, ss.img.Pix[so:so+n], dst.img.Pix[do:do+n])
		}
		return nil
	}

	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		sy := sr.Min.Y + (y-dr.Min.Y)*sh/dh
		row := dst.img.Pix[dst.img.PixOffset(clip.Min.X, y):]

		for x := clip.Min.X; x < clip.Max.X; x++ {
			sx := sr.Min.X + (x-dr.Min.X)*sw/dw
			i := (x - clip.Min.X) * 4

			out := blend.Apply(state, ss.pixel(sx, sy), blend.Pixel{row[i], row[i+1], row[i+2], row[i+3]})
			row[i+0] = out[blend.R]
			row[i+1] = out[blend.G]
			row[i+2] = out[blend.B]
			row[i+3] = out[blend.A]
		}
	}
	return nil
}

// ReadPixels copies rect of the current target into dst.
func (p *SoftwareProvider) ReadPixels(rect image.Rectangle, dst []byte, pitch int) error {
	if p.closed {
		return ErrClosed
	}
	if rect.Empty() {
		return nil
	}

	cur := p.current()
	if !cur.desc.Access.Usage().Contains(gputypes.TextureUsageCopySrc) {
		return fmt.Errorf("surface: %q has %v access and cannot be read back", cur.desc.Label, cur.desc.Access)
	}
	if !rect.In(cur.Bounds()) {
		return fmt.Errorf("surface: read rect %v outside %q bounds %v", rect, cur.desc.Label, cur.Bounds())
	}

	rowBytes := rect.Dx() * 4
	if pitch < rowBytes || len(dst) < pitch*(rect.Dy()-1)+rowBytes {
		return fmt.Errorf("%w: need %d rows of %d bytes with pitch %d, have %d bytes",
			ErrShortBuffer, rect.Dy(), rowBytes, pitch, len(dst))
	}

	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		off := cur.img.PixOffset(rect.Min.X, y)
		copy(dst[(y-rect.Min.Y)*pitch:], cur.img.Pix[off:off+rowBytes])
	}
	return nil
}

// Snapshot returns a copy of the pixels of s.
func (p *SoftwareProvider) Snapshot(s Surface) (*image.NRGBA, error) {
	if p.closed {
		return nil, ErrClosed
	}

	ss, err := p.own(s)
	if err != nil {
		return nil, err
	}

	out := image.NewNRGBA(ss.img.Rect)
	copy(out.Pix, ss.img.Pix)
	return out, nil
}

// Present hands the screen to the presenter, if any.
func (p *SoftwareProvider) Present() error {
	if p.closed {
		return ErrClosed
	}
	if p.presenter == nil {
		return nil
	}
	if err := p.presenter.Present(p.screen.img); err != nil {
		return fmt.Errorf("surface: present: %w", err)
	}
	return nil
}

// Close releases every surface. Close is idempotent.
func (p *SoftwareProvider) Close() error {
	if p.closed {
		return nil
	}
	for _, s := range p.surfaces {
		s.release()
	}
	p.surfaces = nil
	p.target = nil
	p.closed = true
	return nil
}

// current returns the surface drawing goes to.
func (p *SoftwareProvider) current() *softSurface {
	if p.target != nil {
		return p.target
	}
	return p.screen
}

func (p *SoftwareProvider) create(desc Descriptor) (*softSurface, error) {
	if p.closed {
		return nil, ErrClosed
	}
	if desc.Format == gputypes.TextureFormatUndefined {
		desc.Format = FormatRGBA8
	}
	if err := desc.validate(); err != nil {
		return nil, err
	}

	s := &softSurface{
		owner: p,
		desc:  desc,
		img:   image.NewNRGBA(image.Rect(0, 0, desc.Width, desc.Height)),
	}
	p.surfaces = append(p.surfaces, s)
	return s, nil
}

// own checks that s is a live surface created by p.
func (p *SoftwareProvider) own(s Surface) (*softSurface, error) {
	ss, ok := s.(*softSurface)
	if !ok || ss == nil {
		return nil, ErrForeignSurface
	}
	if ss.owner != p {
		return nil, ErrForeignSurface
	}
	if ss.closed {
		return nil, fmt.Errorf("%w: %q", ErrClosed, ss.desc.Label)
	}
	return ss, nil
}

func (p *SoftwareProvider) forget(s *softSurface) {
	for i, o := range p.surfaces {
		if o == s {
			p.surfaces = append(p.surfaces[:i], p.surfaces[i+1:]...)
			break
		}
	}
	if p.target == s {
		p.target = nil
	}
}

// softSurface is a surface created by SoftwareProvider.
type softSurface struct {
	owner  *SoftwareProvider
	desc   Descriptor
	img    *image.NRGBA
	locked bool
	closed bool
	screen bool
}

func (s *softSurface) Label() string                  { return s.desc.Label }
func (s *softSurface) Width() int                     { return s.desc.Width }
func (s *softSurface) Height() int                    { return s.desc.Height }
func (s *softSurface) Format() gputypes.TextureFormat { return s.desc.Format }
func (s *softSurface) Access() Access                 { return s.desc.Access }

func (s *softSurface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.desc.Width, s.desc.Height)
}

// Close releases the surface. The screen is owned by the provider and is
// only released by Provider.Close.
func (s *softSurface) Close() error {
	if s.closed || s.screen {
		return nil
	}
	s.owner.forget(s)
	s.release()
	return nil
}

// Lock gives CPU access to a streaming surface.
func (s *softSurface) Lock(rect *image.Rectangle) (*Lock, error) {
	if s.closed {
		return nil, fmt.Errorf("%w: %q", ErrClosed, s.desc.Label)
	}
	if s.desc.Access != AccessStreaming {
		return nil, fmt.Errorf("%w: %q has %v access", ErrNotStreaming, s.desc.Label, s.desc.Access)
	}
	if s.locked {
		return nil, fmt.Errorf("%w: %q", ErrLocked, s.desc.Label)
	}

	r := s.Bounds()
	if rect != nil {
		if rect.Empty() || !rect.In(r) {
			return nil, errors.New("surface: lock rect outside surface bounds")
		}
		r = *rect
	}

	s.locked = true
	return &Lock{
		Pixels:  s.img.Pix[s.img.PixOffset(r.Min.X, r.Min.Y):],
		Pitch:   s.img.Stride,
		Rect:    r,
		release: func() { s.locked = false },
	}, nil
}

func (s *softSurface) release() {
	s.closed = true
	s.locked = false
	s.img = nil
}

// pixel returns the pixel at (x, y), or transparent black outside bounds.
func (s *softSurface) pixel(x, y int) blend.Pixel {
	if x < 0 || y < 0 || x >= s.desc.Width || y >= s.desc.Height {
		return blend.Pixel{}
	}
	i := s.img.PixOffset(x, y)
	return blend.Pixel{s.img.Pix[i], s.img.Pix[i+1], s.img.Pix[i+2], s.img.Pix[i+3]}
}

// Ensure SoftwareProvider implements Provider.
var _ Provider = (*SoftwareProvider)(nil)

// Ensure softSurface implements Streaming.
var _ Streaming = (*softSurface)(nil)
