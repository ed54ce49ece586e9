package collide

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/collide/surface"
)

// HasCollided reports whether the Player at pointer overlaps the Board.
//
// It composites the scratch surfaces, reads the result into the locked
// readback buffer and returns true on the first pixel equal to the
// sentinel. Any failure is logged as a warning, counted in
// Stats.ReadbackFailures and reported as false; it never panics.
func (c *Collider) HasCollided(pointer Point) bool {
	c.stats.Frames++

	hit, err := c.decide(pointer)
	if err != nil {
		c.stats.ReadbackFailures++
		c.lastErr = err
		c.logger().Warn("collide: collision check failed, reporting no collision",
			"pointer", pointer,
			"err", err)
		return false
	}

	if hit {
		c.stats.Collisions++
	}
	c.logger().Debug("collide: decision", "pointer", pointer, "collided", hit)
	return hit
}

func (c *Collider) decide(pointer Point) (bool, error) {
	if c.closed {
		return false, ErrClosed
	}
	if err := c.Composite(pointer); err != nil {
		return false, err
	}

	lk, err := c.readback.Lock(nil)
	if err != nil {
		return false, &SurfaceError{Op: "readback", Surface: ReadbackLabel, Err: err}
	}
	defer lk.Unlock()

	if err := c.readResult(lk); err != nil {
		return false, &SurfaceError{Op: "readback", Surface: ResultLabel, Err: err}
	}
	return scan(lk, c.playerSize, c.opts.sentinel), nil
}

// readResult copies the result surface into the locked readback memory.
func (c *Collider) readResult(lk *surface.Lock) (err error) {
	if err := c.provider.SetTarget(c.result); err != nil {
		return err
	}
	defer func() {
		if rerr := c.provider.SetTarget(nil); rerr != nil && err == nil {
			err = fmt.Errorf("restore screen target: %w", rerr)
		}
	}()

	return c.provider.ReadPixels(c.playerRect(), lk.Pixels, lk.Pitch)
}

// scan reports whether any RGBA8 pixel in lk packs to sentinel.
func scan(lk *surface.Lock, size Size, sentinel uint32) bool {
	for y := 0; y < size.H; y++ {
		row := lk.Pixels[y*lk.Pitch:]
		for x := 0; x < size.W; x++ {
			if binary.BigEndian.Uint32(row[x*4:]) == sentinel {
				return true
			}
		}
	}
	return false
}
