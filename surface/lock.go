// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import "image"

// Lock is scoped CPU access to a streaming surface.
//
// Pixels holds RGBA8 rows of Pitch bytes starting at Rect.Min. The slice is
// only valid until Unlock. Release it with a deferred Unlock:
//
//	lk, err := s.Lock(nil)
//	if err != nil {
//	    return err
//	}
//	defer lk.Unlock()
type Lock struct {
	// Pixels is the locked pixel memory.
	Pixels []byte

	// Pitch is the number of bytes per row.
	Pitch int

	// Rect is the locked region in surface coordinates.
	Rect image.Rectangle

	release func()
}

// Unlock releases the lock. Unlock is idempotent and safe on a nil Lock.
func (l *Lock) Unlock() {
	if l == nil || l.release == nil {
		return
	}
	l.release()
	l.release = nil
	l.Pixels = nil
}

// Held reports whether the lock has not been released yet.
func (l *Lock) Held() bool {
	return l != nil && l.release != nil
}
