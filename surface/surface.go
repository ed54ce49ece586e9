// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
)

// Errors returned by providers and surfaces.
var (
	// ErrClosed is returned when using a closed surface or provider.
	ErrClosed = errors.New("surface: closed")

	// ErrInvalidSize is returned for non-positive dimensions.
	ErrInvalidSize = errors.New("surface: invalid size")

	// ErrUnsupportedFormat is returned for pixel formats other than RGBA8.
	ErrUnsupportedFormat = errors.New("surface: unsupported format")

	// ErrNotTarget is returned when binding a surface without AccessTarget.
	ErrNotTarget = errors.New("surface: not a render target")

	// ErrNotStreaming is returned when locking a surface without AccessStreaming.
	ErrNotStreaming = errors.New("surface: not a streaming surface")

	// ErrLocked is returned when a streaming surface is already locked, or
	// when a locked surface is drawn.
	ErrLocked = errors.New("surface: locked")

	// ErrForeignSurface is returned for surfaces created by another provider.
	ErrForeignSurface = errors.New("surface: surface belongs to another provider")

	// ErrShortBuffer is returned when a readback buffer is too small.
	ErrShortBuffer = errors.New("surface: buffer too small")

	// ErrSelfDraw is returned when drawing the bound target onto itself.
	ErrSelfDraw = errors.New("surface: cannot draw the render target onto itself")
)

// Surface is a rectangle of pixels owned by a Provider.
type Surface interface {
	// Label returns the debug name given at creation.
	Label() string

	// Width returns the surface width in pixels.
	Width() int

	// Height returns the surface height in pixels.
	Height() int

	// Bounds returns image.Rect(0, 0, Width(), Height()).
	Bounds() image.Rectangle

	// Format returns the pixel format.
	Format() gputypes.TextureFormat

	// Access returns how the surface may be used.
	Access() Access

	// Close releases the surface. Close is idempotent.
	Close() error
}

// Streaming is a surface whose pixels can be written by the CPU.
type Streaming interface {
	Surface

	// Lock gives CPU access to rect, or to the whole surface when rect is
	// nil. The returned Lock must be released with Unlock before the
	// surface is drawn or locked again.
	Lock(rect *image.Rectangle) (*Lock, error)
}

// Provider creates surfaces, redirects drawing and presents the screen.
type Provider interface {
	// NewSurface creates an offscreen surface.
	NewSurface(desc Descriptor) (Surface, error)

	// Upload creates a static surface holding a copy of img.
	Upload(img image.Image, label string) (Surface, error)

	// Screen returns the default render target.
	Screen() Surface

	// SetTarget redirects subsequent drawing to s. nil restores the screen.
	SetTarget(s Surface) error

	// Target returns the bound offscreen target, or nil for the screen.
	Target() Surface

	// Clear fills the current target with c.
	Clear(c color.Color) error

	// Draw draws src onto the current target.
	Draw(src Surface, opts *DrawOptions) error

	// ReadPixels copies rect of the current target into dst as RGBA8 rows
	// of pitch bytes. This is a synchronous readback.
	ReadPixels(rect image.Rectangle, dst []byte, pitch int) error

	// Snapshot returns a copy of any surface's pixels.
	Snapshot(s Surface) (*image.NRGBA, error)

	// Present hands the screen to the presenter.
	Present() error

	// Close releases the provider and every surface it created.
	Close() error
}
