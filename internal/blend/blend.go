// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package blend evaluates fixed-function blend states on 8-bit pixels.
//
// Pixels are straight (non-premultiplied) RGBA, the same convention a
// texture uploaded from a decoded image file uses. A blend state is
// described with the WebGPU factor vocabulary from gputypes so that the
// software path and a hardware pipeline agree on the same table:
//
//	result = src * SrcFactor  (op)  dst * DstFactor
//
// evaluated separately for the color channels and for alpha.
package blend

import "github.com/gogpu/gputypes"

// Pixel is a single straight-alpha RGBA8 pixel.
type Pixel [4]byte

// Channel indices into a Pixel.
const (
	R = iota
	G
	B
	A
)

// Apply composites src onto dst according to state and returns the result.
//
// Only the additive blend operation is evaluated; other operations are
// treated as add. Unsupported factors evaluate as one.
func Apply(state gputypes.BlendState, src, dst Pixel) Pixel {
	return Pixel{
		component(state.Color, src, dst, R),
		component(state.Color, src, dst, G),
		component(state.Color, src, dst, B),
		component(state.Alpha, src, dst, A),
	}
}

// Row applies state to every pixel of a packed RGBA8 row pair.
// src and dst must have the same length, a multiple of four.
func Row(state gputypes.BlendState, src, dst []byte) {
	for i := 0; i+3 < len(dst) && i+3 < len(src); i += 4 {
		out := Apply(state,
			Pixel{src[i], src[i+1], src[i+2], src[i+3]},
			Pixel{dst[i], dst[i+1], dst[i+2], dst[i+3]})
		dst[i], dst[i+1], dst[i+2], dst[i+3] = out[R], out[G], out[B], out[A]
	}
}

func component(c gputypes.BlendComponent, src, dst Pixel, ch int) byte {
	s := mulDiv255(src[ch], factor(c.SrcFactor, src, dst, ch))
	d := mulDiv255(dst[ch], factor(c.DstFactor, src, dst, ch))
	return addClamp(s, d)
}

// factor returns the 0-255 weight a blend factor selects for channel ch.
func factor(f gputypes.BlendFactor, src, dst Pixel, ch int) byte {
	switch f {
	case gputypes.BlendFactorZero:
		return 0
	case gputypes.BlendFactorOne:
		return 255
	case gputypes.BlendFactorSrcAlpha:
		return src[A]
	case gputypes.BlendFactorOneMinusSrcAlpha:
		return inv255(src[A])
	case gputypes.BlendFactorDst:
		return dst[ch]
	default:
		return 255
	}
}
