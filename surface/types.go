// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
)

// FormatRGBA8 is the only pixel format surfaces store and read back:
// four bytes per pixel in R, G, B, A order, straight alpha.
const FormatRGBA8 = gputypes.TextureFormatRGBA8Unorm

// Access describes how a surface may be used.
type Access uint8

const (
	// AccessStatic surfaces are uploaded once and only drawn from.
	AccessStatic Access = iota

	// AccessTarget surfaces may be bound as the render target.
	AccessTarget

	// AccessStreaming surfaces expose their pixels through Lock.
	AccessStreaming
)

// String returns the access mode name.
func (a Access) String() string {
	switch a {
	case AccessStatic:
		return "static"
	case AccessTarget:
		return "target"
	case AccessStreaming:
		return "streaming"
	default:
		return fmt.Sprintf("Access(%d)", a)
	}
}

// Usage returns the WebGPU texture usage a hardware provider would
// request for this access mode.
func (a Access) Usage() gputypes.TextureUsage {
	switch a {
	case AccessTarget:
		return gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopySrc
	case AccessStreaming:
		return gputypes.TextureUsageCopyDst | gputypes.TextureUsageTextureBinding
	default:
		return gputypes.TextureUsageCopyDst | gputypes.TextureUsageTextureBinding
	}
}

// Descriptor describes a surface to create.
type Descriptor struct {
	// Label is an optional debug name.
	Label string

	// Width and Height are the surface size in pixels.
	Width, Height int

	// Format is the pixel format. The zero value selects FormatRGBA8.
	Format gputypes.TextureFormat

	// Access selects how the surface may be used.
	Access Access
}

func (d Descriptor) validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("%w: %q is %dx%d", ErrInvalidSize, d.Label, d.Width, d.Height)
	}
	if d.Format != FormatRGBA8 {
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, d.Format)
	}
	if d.Access > AccessStreaming {
		return fmt.Errorf("surface: unknown access mode %v", d.Access)
	}
	return nil
}

// BlendMode specifies how a drawn surface is combined with the target.
type BlendMode uint8

const (
	// BlendAlpha is straight-alpha source-over, the default for drawing.
	BlendAlpha BlendMode = iota

	// BlendReplace overwrites the destination with the source.
	BlendReplace

	// BlendModulate multiplies destination color by source color and keeps
	// destination alpha (SDL "mod").
	BlendModulate

	// BlendMask scales every destination channel by source alpha
	// (Porter-Duff destination-in).
	BlendMask
)

// String returns the blend mode name.
func (m BlendMode) String() string {
	switch m {
	case BlendAlpha:
		return "alpha"
	case BlendReplace:
		return "replace"
	case BlendModulate:
		return "modulate"
	case BlendMask:
		return "mask"
	default:
		return fmt.Sprintf("BlendMode(%d)", m)
	}
}

// State returns the blend factor table for the mode.
func (m BlendMode) State() gputypes.BlendState {
	switch m {
	case BlendReplace:
		return gputypes.BlendState{
			Color: component(gputypes.BlendFactorOne, gputypes.BlendFactorZero),
			Alpha: component(gputypes.BlendFactorOne, gputypes.BlendFactorZero),
		}
	case BlendModulate:
		return gputypes.BlendState{
			Color: component(gputypes.BlendFactorDst, gputypes.BlendFactorZero),
			Alpha: component(gputypes.BlendFactorZero, gputypes.BlendFactorOne),
		}
	case BlendMask:
		return gputypes.BlendState{
			Color: component(gputypes.BlendFactorZero, gputypes.BlendFactorSrcAlpha),
			Alpha: component(gputypes.BlendFactorZero, gputypes.BlendFactorSrcAlpha),
		}
	default:
		return gputypes.BlendState{
			Color: component(gputypes.BlendFactorSrcAlpha, gputypes.BlendFactorOneMinusSrcAlpha),
			Alpha: component(gputypes.BlendFactorOne, gputypes.BlendFactorOneMinusSrcAlpha),
		}
	}
}

func component(src, dst gputypes.BlendFactor) gputypes.BlendComponent {
	return gputypes.BlendComponent{
		SrcFactor: src,
		DstFactor: dst,
		Operation: gputypes.BlendOperationAdd,
	}
}

// DrawOptions controls Provider.Draw.
type DrawOptions struct {
	// SrcRect is the region of the source to draw. nil means the whole
	// source. It may extend past the source bounds; samples outside read
	// as transparent black.
	SrcRect *image.Rectangle

	// DstRect is the region of the target to draw into. nil means the
	// whole target. The source region is scaled to fit with nearest
	// neighbour sampling.
	DstRect *image.Rectangle

	// Blend selects how source and destination are combined.
	Blend BlendMode
}

// Options configures a Provider.
type Options struct {
	// Width and Height are the screen size in pixels.
	Width, Height int

	// Presenter receives the screen on every Present. May be nil.
	Presenter Presenter
}

// Presenter displays a finished screen image.
// The image is only valid for the duration of the call.
type Presenter interface {
	Present(screen *image.NRGBA) error
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(screen *image.NRGBA) error

// Present calls f(screen).
func (f PresenterFunc) Present(screen *image.NRGBA) error {
	return f(screen)
}
