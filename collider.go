package collide

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/gogpu/collide/surface"
)

// Scratch surface labels, shown as panel captions by the debug renderer.
const (
	MaskLabel     = "BoardAtPlayer"
	ResultLabel   = "Multiply"
	ReadbackLabel = "PixelReading"
)

// Stats counts collision decisions made by a Collider.
type Stats struct {
	Frames           uint64 // calls to HasCollided
	Collisions       uint64 // decisions that returned true
	ReadbackFailures uint64 // decisions reported as false because of an error
}

// Collider decides whether the Player sprite overlaps the Board at a given
// pointer position.
//
// A Collider owns three scratch surfaces with the Player's dimensions: the
// mask (Board crop beneath the Player), the composited result and a
// streaming readback buffer. The Board and Player textures stay owned by
// the caller.
//
// Collider is not safe for concurrent use. It shares the provider's render
// target with the caller and always restores the screen before returning.
type Collider struct {
	provider surface.Provider
	board    surface.Surface
	player   surface.Surface

	boardOrigin Point
	boardSize   Size
	playerSize  Size

	mask     surface.Surface
	result   surface.Surface
	readback surface.Streaming

	opts    options
	stats   Stats
	lastErr error
	closed  bool
}

// NewCollider creates a Collider for board placed at boardOrigin on screen
// and the player sprite.
//
// All errors wrap ErrInitialization, except invalid options which wrap
// ErrInvalidOption.
func NewCollider(p surface.Provider, board, player surface.Surface, boardOrigin Point, opts ...Option) (*Collider, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	switch {
	case p == nil:
		return nil, fmt.Errorf("%w: nil provider", ErrInitialization)
	case board == nil:
		return nil, fmt.Errorf("%w: nil board texture", ErrInitialization)
	case player == nil:
		return nil, fmt.Errorf("%w: nil player texture", ErrInitialization)
	}

	c := &Collider{
		provider:    p,
		board:       board,
		player:      player,
		boardOrigin: boardOrigin,
		boardSize:   sizeOf(board),
		playerSize:  sizeOf(player),
		opts:        o,
	}
	if c.playerSize.Empty() || c.boardSize.Empty() {
		return nil, fmt.Errorf("%w: board %v, player %v", ErrInitialization, c.boardSize, c.playerSize)
	}

	if err := c.createScratch(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
	}

	c.logger().Info("collide: collider ready",
		"board", RectAt(boardOrigin, c.boardSize),
		"player", c.playerSize,
		"mask_blend", o.maskBlend)
	return c, nil
}

func (c *Collider) createScratch() error {
	desc := func(label string, access surface.Access) surface.Descriptor {
		return surface.Descriptor{
			Label:  label,
			Width:  c.playerSize.W,
			Height: c.playerSize.H,
			Format: surface.FormatRGBA8,
			Access: access,
		}
	}

	var err error
	if c.mask, err = c.provider.NewSurface(desc(MaskLabel, surface.AccessTarget)); err != nil {
		return &SurfaceError{Op: "create", Surface: MaskLabel, Err: err}
	}
	if c.result, err = c.provider.NewSurface(desc(ResultLabel, surface.AccessTarget)); err != nil {
		return &SurfaceError{Op: "create", Surface: ResultLabel, Err: err}
	}

	rb, err := c.provider.NewSurface(desc(ReadbackLabel, surface.AccessStreaming))
	if err != nil {
		return &SurfaceError{Op: "create", Surface: ReadbackLabel, Err: err}
	}
	s, ok := rb.(surface.Streaming)
	if !ok {
		_ = rb.Close()
		return &SurfaceError{Op: "create", Surface: ReadbackLabel, Err: surface.ErrNotStreaming}
	}
	c.readback = s
	return nil
}

// Board returns the Board texture.
func (c *Collider) Board() surface.Surface { return c.board }

// Player returns the Player texture.
func (c *Collider) Player() surface.Surface { return c.player }

// Mask returns the scratch surface holding the Board crop.
func (c *Collider) Mask() surface.Surface { return c.mask }

// Result returns the scratch surface holding the composited Player.
func (c *Collider) Result() surface.Surface { return c.result }

// Readback returns the streaming buffer the result is read into.
func (c *Collider) Readback() surface.Streaming { return c.readback }

// BoardRect returns the Board's placement on screen.
func (c *Collider) BoardRect() Rect { return RectAt(c.boardOrigin, c.boardSize) }

// PlayerSize returns the Player's dimensions.
func (c *Collider) PlayerSize() Size { return c.playerSize }

// Stats returns the decision counters.
func (c *Collider) Stats() Stats { return c.stats }

// LastError returns the error behind the most recent failed decision, or
// nil if none has failed.
func (c *Collider) LastError() error { return c.lastErr }

// Close releases the scratch surfaces. The Board and Player are left open.
// Close is idempotent.
func (c *Collider) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	for _, s := range []surface.Surface{c.mask, c.result, c.readback} {
		if s != nil {
			_ = s.Close()
		}
	}
	c.mask, c.result, c.readback = nil, nil, nil
	return nil
}

func (c *Collider) logger() *slog.Logger {
	if c.opts.logger != nil {
		return c.opts.logger
	}
	return Logger()
}

// playerRect returns the Player-sized rectangle at the origin.
func (c *Collider) playerRect() image.Rectangle {
	return image.Rect(0, 0, c.playerSize.W, c.playerSize.H)
}
