// Package collide detects pixel-accurate collisions between a sprite and a
// background image by compositing them on scratch surfaces and reading the
// result back.
//
// # Overview
//
// The Player sprite follows the pointer over the Board. Instead of
// intersecting shapes on the CPU, a Collider crops the Board beneath the
// Player's bounding box, combines the crop with the Player using a mask
// blend and scans the composited pixels for the sentinel value
// 0xFFFFFFFF. A single sentinel pixel means the opaque parts of both
// images overlap.
//
// # Quick Start
//
//	p, err := surface.NewProvider(surface.Options{Width: 1024, Height: 768})
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	board, err := collide.LoadTexture(p, "Board.png")
//	if err != nil {
//	    return err
//	}
//	player, err := collide.LoadTexture(p, "PlayerTriangle.png")
//	if err != nil {
//	    return err
//	}
//
//	c, err := collide.NewCollider(p, board, player, collide.Pt(47, 50))
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	hit := c.HasCollided(collide.Pt(120, 200))
//
// # Coordinate System
//
// Screen coordinates have their origin at the top-left, X grows right and
// Y grows down. The pointer is the top-left corner of the Player sprite.
//
// # Sub-packages
//
//   - surface: render surface providers (software, registry)
//   - loop: frame driver, pacing and scripted input
//   - render: debug panel layout and captions
//   - terminal: tcell input source and presenter
package collide
