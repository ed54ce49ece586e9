// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides the render surface abstraction used for
// collision compositing.
//
// A Provider owns a screen surface of fixed size and creates offscreen
// surfaces on demand. Drawing is redirected to an offscreen surface with
// SetTarget and returned to the screen with SetTarget(nil), the same model
// SDL and WebGPU render passes use:
//
//	p, _ := surface.NewSoftwareProvider(surface.Options{Width: 1024, Height: 768})
//	defer p.Close()
//
//	mask, _ := p.NewSurface(surface.Descriptor{Width: 64, Height: 64, Access: surface.AccessTarget})
//	_ = p.SetTarget(mask)
//	_ = p.Clear(color.Transparent)
//	_ = p.Draw(board, &surface.DrawOptions{SrcRect: &crop, Blend: surface.BlendReplace})
//	_ = p.SetTarget(nil)
//
// # Access modes
//
//   - AccessStatic: uploaded once from an image, only ever drawn from.
//   - AccessTarget: may be bound as the render target.
//   - AccessStreaming: CPU-writable through a scoped Lock.
//
// # Blend modes
//
// Every BlendMode is described by a gputypes.BlendState so a hardware
// pipeline and the software path agree on the same factor table. All
// pixels are straight (non-premultiplied) RGBA8.
//
// # Registry
//
// Providers register themselves by name and priority:
//
//	surface.Register("software", 10, factory, nil)
//	p, err := surface.NewProvider(surface.Options{Width: 1024, Height: 768})
//
// Providers and their surfaces are NOT thread-safe.
package surface
