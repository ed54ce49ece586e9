package collide

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/collide/surface"
)

// Composite renders the mask and result scratch surfaces for pointer.
//
// While pointer is off the Board both surfaces are cleared to the outside
// colour. Otherwise the Board crop beneath the Player is copied into the
// mask and combined with the Player in the result using the mask blend.
// The crop is anchored at pointer minus the Board origin even when it
// extends past the Board; samples outside the Board are transparent.
//
// The screen is the render target again when Composite returns, on every
// path.
func (c *Collider) Composite(pointer Point) (err error) {
	if c.closed {
		return ErrClosed
	}

	defer func() {
		if rerr := c.provider.SetTarget(nil); rerr != nil && err == nil {
			err = fmt.Errorf("collide: restore screen target: %w", rerr)
		}
	}()

	if !PointInRect(pointer, c.boardOrigin, c.boardSize) {
		return c.clearOutside()
	}

	local := pointer.Sub(c.boardOrigin).ImagePoint()
	crop := image.Rectangle{Min: local, Max: local.Add(c.playerRect().Max)}

	if err := c.provider.SetTarget(c.mask); err != nil {
		return &SurfaceError{Op: "composite", Surface: MaskLabel, Err: err}
	}
	if err := c.provider.Clear(color.Transparent); err != nil {
		return &SurfaceError{Op: "composite", Surface: MaskLabel, Err: err}
	}
	if err := c.provider.Draw(c.board, &surface.DrawOptions{SrcRect: &crop, Blend: surface.BlendReplace}); err != nil {
		return &SurfaceError{Op: "composite", Surface: MaskLabel, Err: err}
	}

	if err := c.provider.SetTarget(c.result); err != nil {
		return &SurfaceError{Op: "composite", Surface: ResultLabel, Err: err}
	}
	if err := c.provider.Draw(c.player, &surface.DrawOptions{Blend: surface.BlendReplace}); err != nil {
		return &SurfaceError{Op: "composite", Surface: ResultLabel, Err: err}
	}
	if err := c.provider.Draw(c.mask, &surface.DrawOptions{Blend: c.opts.maskBlend}); err != nil {
		return &SurfaceError{Op: "composite", Surface: ResultLabel, Err: err}
	}
	return nil
}

func (c *Collider) clearOutside() error {
	for _, s := range []surface.Surface{c.result, c.mask} {
		if err := c.provider.SetTarget(s); err != nil {
			return &SurfaceError{Op: "composite", Surface: s.Label(), Err: err}
		}
		if err := c.provider.Clear(c.opts.outside); err != nil {
			return &SurfaceError{Op: "composite", Surface: s.Label(), Err: err}
		}
	}
	return nil
}
