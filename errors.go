package collide

import (
	"errors"
	"fmt"
)

// Sentinel errors for the collide package.
var (
	// ErrInitialization is returned when a collider or one of its
	// collaborators cannot be set up.
	ErrInitialization = errors.New("collide: initialization failed")

	// ErrImageLoad is returned when an image file cannot be opened or decoded.
	ErrImageLoad = errors.New("collide: image load failed")

	// ErrInvalidOption is returned when an option carries an unusable value.
	ErrInvalidOption = errors.New("collide: invalid option")

	// ErrClosed is returned when a closed Collider is used.
	ErrClosed = errors.New("collide: collider closed")
)

// SurfaceError records which scratch surface an operation failed on.
type SurfaceError struct {
	Op      string // "create", "composite", "readback"
	Surface string
	Err     error
}

func (e *SurfaceError) Error() string {
	return fmt.Sprintf("collide: %s %s: %v", e.Op, e.Surface, e.Err)
}

func (e *SurfaceError) Unwrap() error {
	return e.Err
}
