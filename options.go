package collide

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/gogpu/collide/surface"
)

// Sentinel is the packed 0xRRGGBBAA value that marks a colliding pixel.
const Sentinel uint32 = 0xFFFFFFFF

// Option configures a Collider during creation.
//
// Example:
//
//	c, err := collide.NewCollider(p, board, player, origin,
//	    collide.WithMaskBlend(surface.BlendModulate),
//	    collide.WithLogger(slog.Default()),
//	)
type Option func(*options)

// options holds optional configuration for Collider creation.
type options struct {
	logger    *slog.Logger
	maskBlend surface.BlendMode
	outside   color.NRGBA
	sentinel  uint32
}

// defaultOptions returns the default collider options.
func defaultOptions() options {
	return options{
		logger:    nil, // falls back to Logger()
		maskBlend: surface.BlendMask,
		outside:   color.NRGBA{R: 255, A: 255},
		sentinel:  Sentinel,
	}
}

// WithLogger sets a logger for one Collider instead of the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMaskBlend selects how the Board crop is combined with the Player.
// The default, surface.BlendMask, collides wherever an opaque Player pixel
// meets an opaque Board pixel. surface.BlendModulate collides only where
// the Board is opaque white.
func WithMaskBlend(m surface.BlendMode) Option {
	return func(o *options) {
		o.maskBlend = m
	}
}

// WithOutsideColor sets the colour scratch surfaces are cleared to while
// the pointer is off the Board. It must differ from the sentinel.
func WithOutsideColor(c color.Color) Option {
	return func(o *options) {
		o.outside = color.NRGBAModel.Convert(c).(color.NRGBA)
	}
}

// WithSentinel overrides the packed 0xRRGGBBAA value searched for in the
// read back pixels.
func WithSentinel(v uint32) Option {
	return func(o *options) {
		o.sentinel = v
	}
}

func (o *options) validate() error {
	switch o.maskBlend {
	case surface.BlendModulate, surface.BlendMask:
	default:
		return fmt.Errorf("%w: mask blend %v", ErrInvalidOption, o.maskBlend)
	}
	if pack(o.outside) == o.sentinel {
		return fmt.Errorf("%w: outside colour %v equals the sentinel", ErrInvalidOption, o.outside)
	}
	return nil
}

// pack returns c as a big-endian 0xRRGGBBAA value.
func pack(c color.NRGBA) uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}
