// Command collide-trace sweeps the player across the board without a
// terminal and records the collision decision at every step.
//
// A frame is written as a PNG to collide-trace/ whenever the decision
// changes, and every decision is logged to stderr.
package main

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/collide"
	"github.com/gogpu/collide/internal/imageio"
	"github.com/gogpu/collide/loop"
	"github.com/gogpu/collide/render"
	"github.com/gogpu/collide/surface"
)

const (
	boardPath  = "assets/Board.png"
	playerPath = "assets/PlayerTriangle.png"
	outputDir  = "collide-trace"

	// sweepStep is the distance in pixels between pointer samples.
	sweepStep = 16
	// sweepMargin extends the sweep past the board edges.
	sweepMargin = 32
)

// instantClock never sleeps, so the sweep runs as fast as it can render.
type instantClock struct{}

func (instantClock) Now() time.Time      { return time.Now() }
func (instantClock) Sleep(time.Duration) {}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	collide.SetLogger(logger)

	if err := trace(logger); err != nil {
		logger.Error("collide-trace: aborted", "err", err)
		os.Exit(1)
	}
}

// frameWriter presents frames by writing a PNG whenever the decision
// differs from the previously written frame.
type frameWriter struct {
	driver  *loop.Driver
	dir     string
	last    *bool
	written int
	logger  *slog.Logger
}

func (w *frameWriter) Present(frame *image.NRGBA) error {
	collided := w.driver.Collided()
	if w.last != nil && *w.last == collided {
		return nil
	}
	w.last = &collided

	// The driver counts a frame once it has been presented.
	name := filepath.Join(w.dir, fmt.Sprintf("frame-%04d.png", w.driver.Frames()+1))
	if err := imageio.SavePNG(name, frame); err != nil {
		return err
	}
	w.written++
	w.logger.Info("collide-trace: decision changed",
		"pointer", w.driver.Pointer(),
		"collided", collided,
		"file", name)
	return nil
}

func trace(logger *slog.Logger) error {
	layout := render.DefaultLayout()

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", collide.ErrInitialization, err)
	}

	writer := &frameWriter{dir: outputDir, logger: logger}
	p, err := surface.NewProviderByName("software", surface.Options{
		Width:     layout.Screen.W,
		Height:    layout.Screen.H,
		Presenter: writer,
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

	area := c.BoardRect()
	area.Min = area.Min.Sub(collide.Pt(sweepMargin, sweepMargin))
	area.Size.W += 2 * sweepMargin
	area.Size.H += 2 * sweepMargin
	input := loop.NewScriptedInput(loop.Sweep(area, sweepStep)...)

	d, err := loop.NewDriver(c, p, input, r, loop.WithClock(instantClock{}))
	if err != nil {
		return err
	}
	writer.driver = d

	if err := d.Run(context.Background()); err != nil {
		return err
	}

	s := c.Stats()
	logger.Info("collide-trace: done",
		"frames", s.Frames,
		"collisions", s.Collisions,
		"readback_failures", s.ReadbackFailures,
		"written", writer.written)
	return nil
}
