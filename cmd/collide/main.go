// Command collide runs the pixel-accurate collision demo in the terminal.
//
// Move the mouse over the terminal to drag the player triangle across the
// board. The background turns red while the triangle overlaps opaque board
// pixels and blue otherwise. Press Esc, q or Ctrl-C to quit.
//
// Assets are read from assets/ relative to the working directory.
package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/collide"
	"github.com/gogpu/collide/loop"
	"github.com/gogpu/collide/render"
	"github.com/gogpu/collide/surface"
	"github.com/gogpu/collide/terminal"
)

const (
	boardPath  = "assets/Board.png"
	playerPath = "assets/PlayerTriangle.png"
)

func main() {
	os.Exit(run())
}

func run() int {
	// The terminal owns the screen while the demo runs, so log records are
	// held back and written to stderr once it is restored.
	var session bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&session, &slog.HandlerOptions{Level: slog.LevelInfo}))
	collide.SetLogger(logger)
	defer func() { _, _ = os.Stderr.Write(session.Bytes()) }()

	if err := play(logger); err != nil {
		logger.Error("collide: aborted", "err", err)
		return 1
	}
	return 0
}

func play(logger *slog.Logger) error {
	layout := render.DefaultLayout()

	term, err := terminal.New(layout.Screen)
	if err != nil {
		return err
	}
	defer term.Close()

	p, err := surface.NewProvider(surface.Options{
		Width:     layout.Screen.W,
		Height:    layout.Screen.H,
		Presenter: term,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", collide.ErrInitialization, err)
	}
	defer p.Close()

	board, err := collide.LoadTexture(p, boardPath)
	if err != nil {
		return err
	}
	player, err := collide.LoadTexture(p, playerPath)
	if err != nil {
		return err
	}

	c, err := collide.NewCollider(p, board, player, layout.Board)
	if err != nil {
		return err
	}
	defer c.Close()

	r, err := render.New(p, c, render.WithLayout(layout))
	if err != nil {
		return err
	}
	defer r.Close()

	d, err := loop.NewDriver(c, p, term, r, loop.WithFrameDuration(loop.DefaultFrameDuration))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := d.Run(ctx); err != nil && !loop.IsCancellation(err) {
		return err
	}

	s := c.Stats()
	logger.Info("collide: done",
		"frames", s.Frames,
		"collisions", s.Collisions,
		"readback_failures", s.ReadbackFailures)
	return nil
}
