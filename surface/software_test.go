// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"
)

func newTestProvider(t *testing.T, w, h int) *SoftwareProvider {
	t.Helper()
	p, err := NewSoftwareProvider(Options{Width: w, Height: h})
	if err != nil {
		t.Fatalf("NewSoftwareProvider: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func newTarget(t *testing.T, p *SoftwareProvider, label string, w, h int) Surface {
	t.Helper()
	s, err := p.NewSurface(Descriptor{Label: label, Width: w, Height: h, Access: AccessTarget})
	if err != nil {
		t.Fatalf("NewSurface(%s): %v", label, err)
	}
	return s
}

func uniform(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func pixelAt(t *testing.T, p *SoftwareProvider, s Surface, x, y int) color.NRGBA {
	t.Helper()
	img, err := p.Snapshot(s)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	return img.NRGBAAt(x, y)
}

var (
	opaqueWhite = color.NRGBA{255, 255, 255, 255}
	opaqueRed   = color.NRGBA{255, 0, 0, 255}
	opaqueBlack = color.NRGBA{0, 0, 0, 255}
)

func TestNewSoftwareProviderInvalidSize(t *testing.T) {
	for _, opts := range []Options{{Width: 0, Height: 10}, {Width: 10, Height: -1}} {
		if _, err := NewSoftwareProvider(opts); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("NewSoftwareProvider(%+v) error = %v, want ErrInvalidSize", opts, err)
		}
	}
}

func TestNewSurfaceDescriptor(t *testing.T) {
	p := newTestProvider(t, 32, 32)

	s, err := p.NewSurface(Descriptor{Label: "mask", Width: 8, Height: 4, Access: AccessTarget})
	if err != nil {
		t.Fatalf("NewSurface: %v", err)
	}
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("size = %dx%d, want 8x4", s.Width(), s.Height())
	}
	if s.Format() != FormatRGBA8 {
		t.Errorf("Format() = %v, want RGBA8", s.Format())
	}
	if s.Access() != AccessTarget {
		t.Errorf("Access() = %v, want target", s.Access())
	}
	if s.Label() != "mask" {
		t.Errorf("Label() = %q, want mask", s.Label())
	}

	if _, err := p.NewSurface(Descriptor{Width: 0, Height: 4}); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("zero width error = %v, want ErrInvalidSize", err)
	}
}

func TestSetTarget(t *testing.T) {
	p := newTestProvider(t, 16, 16)
	target := newTarget(t, p, "target", 4, 4)

	if p.Target() != nil {
		t.Fatal("new provider should draw to the screen")
	}
	if err := p.SetTarget(target); err != nil {
		t.Fatalf("SetTarget: %v", err)
	}
	if p.Target() != target {
		t.Error("Target() did not return the bound surface")
	}
	if err := p.SetTarget(nil); err != nil {
		t.Fatalf("SetTarget(nil): %v", err)
	}
	if p.Target() != nil {
		t.Error("SetTarget(nil) should restore the screen")
	}

	if err := p.SetTarget(p.Screen()); err != nil || p.Target() != nil {
		t.Errorf("binding the screen should behave like nil, err = %v", err)
	}
}

func TestSetTargetRejectsNonTargets(t *testing.T) {
	p := newTestProvider(t, 16, 16)

	static, err := p.Upload(uniform(2, 2, opaqueRed), "static")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if err := p.SetTarget(static); !errors.Is(err, ErrNotTarget) {
		t.Errorf("SetTarget(static) error = %v, want ErrNotTarget", err)
	}

	other := newTestProvider(t, 4, 4)
	foreign := newTarget(t, other, "foreign", 2, 2)
	if err := p.SetTarget(foreign); !errors.Is(err, ErrForeignSurface) {
		t.Errorf("SetTarget(foreign) error = %v, want ErrForeignSurface", err)
	}
}

func TestClearCurrentTarget(t *testing.T) {
	p := newTestProvider(t, 8, 8)
	target := newTarget(t, p, "target", 2, 2)

	if err := p.Clear(opaqueBlack); err != nil {
		t.Fatal(err)
	}
	_ = p.SetTarget(target)
	if err := p.Clear(opaqueRed); err != nil {
		t.Fatal(err)
	}
	_ = p.SetTarget(nil)

	if got := pixelAt(t, p, target, 1, 1); got != opaqueRed {
		t.Errorf("target pixel = %v, want red", got)
	}
	if got := pixelAt(t, p, p.Screen(), 1, 1); got != opaqueBlack {
		t.Errorf("screen pixel = %v, want black", got)
	}
}

func TestDrawCropOutOfRangeIsTransparent(t *testing.T) {
	p := newTestProvider(t, 8, 8)
	board, _ := p.Upload(uniform(4, 4, opaqueBlack), "board")
	mask := newTarget(t, p, "mask", 4, 4)

	_ = p.SetTarget(mask)
	_ = p.Clear(opaqueWhite)

	// Crop hangs two pixels off the right and bottom edges of the board.
	crop := image.Rect(2, 2, 6, 6)
	if err := p.Draw(board, &DrawOptions{SrcRect: &crop, Blend: BlendReplace}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	_ = p.SetTarget(nil)

	tests := []struct {
		x, y int
		want color.NRGBA
	}{
		{0, 0, opaqueBlack},
		{1, 1, opaqueBlack},
		{2, 0, color.NRGBA{}},
		{0, 2, color.NRGBA{}},
		{3, 3, color.NRGBA{}},
	}
	for _, tt := range tests {
		if got := pixelAt(t, p, mask, tt.x, tt.y); got != tt.want {
			t.Errorf("mask(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDrawNegativeCrop(t *testing.T) {
	p := newTestProvider(t, 8, 8)
	board, _ := p.Upload(uniform(4, 4, opaqueRed), "board")
	mask := newTarget(t, p, "mask", 2, 2)

	_ = p.SetTarget(mask)
	crop := image.Rect(-1, -1, 1, 1)
	if err := p.Draw(board, &DrawOptions{SrcRect: &crop, Blend: BlendReplace}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	_ = p.SetTarget(nil)

	if got := pixelAt(t, p, mask, 0, 0); got != (color.NRGBA{}) {
		t.Errorf("mask(0,0) = %v, want transparent", got)
	}
	if got := pixelAt(t, p, mask, 1, 1); got != opaqueRed {
		t.Errorf("mask(1,1) = %v, want red", got)
	}
}

func TestDrawDstRectClipsToTarget(t *testing.T) {
	p := newTestProvider(t, 4, 4)
	sprite, _ := p.Upload(uniform(2, 2, opaqueRed), "sprite")

	dst := image.Rect(3, 3, 5, 5)
	if err := p.Draw(sprite, &DrawOptions{DstRect: &dst}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if got := pixelAt(t, p, p.Screen(), 3, 3); got != opaqueRed {
		t.Errorf("screen(3,3) = %v, want red", got)
	}
	if got := pixelAt(t, p, p.Screen(), 2, 2); got != (color.NRGBA{}) {
		t.Errorf("screen(2,2) = %v, want untouched", got)
	}
}

func TestDrawScalesNearest(t *testing.T) {
	p := newTestProvider(t, 4, 4)
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, opaqueRed)
	src.SetNRGBA(1, 0, opaqueWhite)
	s, _ := p.Upload(src, "src")

	if err := p.Draw(s, &DrawOptions{Blend: BlendReplace}); err != nil {
		t.Fatal(err)
	}
	if got := pixelAt(t, p, p.Screen(), 1, 3); got != opaqueRed {
		t.Errorf("screen(1,3) = %v, want red", got)
	}
	if got := pixelAt(t, p, p.Screen(), 2, 0); got != opaqueWhite {
		t.Errorf("screen(2,0) = %v, want white", got)
	}
}

func TestDrawBlendModes(t *testing.T) {
	tests := []struct {
		name string
		mode BlendMode
		src  color.NRGBA
		dst  color.NRGBA
		want color.NRGBA
	}{
		{"alpha transparent", BlendAlpha, color.NRGBA{}, opaqueRed, opaqueRed},
		{"replace transparent", BlendReplace, color.NRGBA{}, opaqueRed, color.NRGBA{}},
		{"modulate black", BlendModulate, opaqueBlack, opaqueWhite, opaqueBlack},
		{"modulate white", BlendModulate, opaqueWhite, opaqueRed, opaqueRed},
		{"mask opaque", BlendMask, opaqueBlack, opaqueWhite, opaqueWhite},
		{"mask transparent", BlendMask, color.NRGBA{}, opaqueWhite, color.NRGBA{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProvider(t, 2, 2)
			src, _ := p.Upload(uniform(2, 2, tt.src), "src")
			_ = p.Clear(tt.dst)

			if err := p.Draw(src, &DrawOptions{Blend: tt.mode}); err != nil {
				t.Fatal(err)
			}
			if got := pixelAt(t, p, p.Screen(), 0, 0); got != tt.want {
				t.Errorf("%v: got %v, want %v", tt.mode, got, tt.want)
			}
		})
	}
}

func TestDrawSelf(t *testing.T) {
	p := newTestProvider(t, 4, 4)
	target := newTarget(t, p, "target", 2, 2)
	_ = p.SetTarget(target)

	if err := p.Draw(target, nil); !errors.Is(err, ErrSelfDraw) {
		t.Errorf("Draw(target) error = %v, want ErrSelfDraw", err)
	}
}

func TestReadPixels(t *testing.T) {
	p := newTestProvider(t, 8, 8)
	target := newTarget(t, p, "result", 3, 2)
	_ = p.SetTarget(target)
	_ = p.Clear(color.NRGBA{1, 2, 3, 4})

	pitch := 3*4 + 4 // padded rows
	buf := make([]byte, pitch*2)
	if err := p.ReadPixels(image.Rect(0, 0, 3, 2), buf, pitch); err != nil {
		t.Fatalf("ReadPixels: %v", err)
	}

	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			i := y*pitch + x*4
			if buf[i] != 1 || buf[i+1] != 2 || buf[i+2] != 3 || buf[i+3] != 4 {
				t.Fatalf("pixel (%d,%d) = %v, want [1 2 3 4]", x, y, buf[i:i+4])
			}
		}
	}
	if buf[12] != 0 {
		t.Error("ReadPixels wrote into row padding")
	}
}

func TestReadPixelsErrors(t *testing.T) {
	p := newTestProvider(t, 4, 4)

	if err := p.ReadPixels(image.Rect(0, 0, 4, 4), make([]byte, 10), 16); !errors.Is(err, ErrShortBuffer) {
		t.Errorf("short buffer error = %v, want ErrShortBuffer", err)
	}
	if err := p.ReadPixels(image.Rect(0, 0, 5, 5), make([]byte, 100), 20); err == nil {
		t.Error("expected error for rect outside the target")
	}
}

func TestLockDiscipline(t *testing.T) {
	p := newTestProvider(t, 4, 4)
	s, err := p.NewSurface(Descriptor{Label: "readback", Width: 2, Height: 2, Access: AccessStreaming})
	if err != nil {
		t.Fatal(err)
	}
	streaming := s.(Streaming)

	lk, err := streaming.Lock(nil)
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	if !lk.Held() {
		t.Error("new lock should be held")
	}
	if lk.Pitch != 8 || lk.Rect != image.Rect(0, 0, 2, 2) {
		t.Errorf("lock pitch=%d rect=%v", lk.Pitch, lk.Rect)
	}

	if _, err := streaming.Lock(nil); !errors.Is(err, ErrLocked) {
		t.Errorf("second Lock error = %v, want ErrLocked", err)
	}
	if err := p.Draw(s, nil); !errors.Is(err, ErrLocked) {
		t.Errorf("Draw(locked) error = %v, want ErrLocked", err)
	}

	copy(lk.Pixels, []byte{9, 9, 9, 255})
	lk.Unlock()
	lk.Unlock() // idempotent

	if lk.Held() {
		t.Error("lock should be released")
	}
	if got := pixelAt(t, p, s, 0, 0); got != (color.NRGBA{9, 9, 9, 255}) {
		t.Errorf("written pixel = %v, want {9 9 9 255}", got)
	}

	lk2, err := streaming.Lock(nil)
	if err != nil {
		t.Fatalf("Lock after Unlock: %v", err)
	}
	lk2.Unlock()

	var nilLock *Lock
	nilLock.Unlock()
}

func TestLockRequiresStreaming(t *testing.T) {
	p := newTestProvider(t, 4, 4)
	target := newTarget(t, p, "target", 2, 2)

	if _, err := target.(Streaming).Lock(nil); !errors.Is(err, ErrNotStreaming) {
		t.Errorf("Lock(target) error = %v, want ErrNotStreaming", err)
	}
}

func TestPresent(t *testing.T) {
	var presented *image.NRGBA
	p, err := NewSoftwareProvider(Options{
		Width:  2,
		Height: 2,
		Presenter: PresenterFunc(func(screen *image.NRGBA) error {
			presented = screen
			return nil
		}),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	_ = p.Clear(opaqueRed)
	if err := p.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if presented == nil || presented.NRGBAAt(1, 1) != opaqueRed {
		t.Error("presenter did not receive the screen")
	}

	failing := errors.New("display gone")
	p.presenter = PresenterFunc(func(*image.NRGBA) error { return failing })
	if err := p.Present(); !errors.Is(err, failing) {
		t.Errorf("Present error = %v, want wrapped presenter error", err)
	}
}

func TestCloseSurfaceAndProvider(t *testing.T) {
	p, _ := NewSoftwareProvider(Options{Width: 4, Height: 4})
	target := newTarget(t, p, "target", 2, 2)
	_ = p.SetTarget(target)

	if err := target.Close(); err != nil {
		t.Fatal(err)
	}
	if p.Target() != nil {
		t.Error("closing the bound target should restore the screen")
	}
	if err := p.SetTarget(target); !errors.Is(err, ErrClosed) {
		t.Errorf("SetTarget(closed) error = %v, want ErrClosed", err)
	}
	if err := p.Screen().Close(); err != nil {
		t.Errorf("closing the screen should be a no-op, got %v", err)
	}

	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("second Close = %v, want nil", err)
	}
	if err := p.Clear(opaqueRed); !errors.Is(err, ErrClosed) {
		t.Errorf("Clear after Close error = %v, want ErrClosed", err)
	}
	if _, err := p.NewSurface(Descriptor{Width: 1, Height: 1}); !errors.Is(err, ErrClosed) {
		t.Errorf("NewSurface after Close error = %v, want ErrClosed", err)
	}
}

func TestAccessUsage(t *testing.T) {
	tests := []struct {
		access     Access
		attachable bool
		readable   bool
	}{
		{AccessStatic, false, false},
		{AccessTarget, true, true},
		{AccessStreaming, false, false},
	}
	for _, tt := range tests {
		u := tt.access.Usage()
		if got := u.Contains(gputypes.TextureUsageRenderAttachment); got != tt.attachable {
			t.Errorf("%v render attachment = %v, want %v", tt.access, got, tt.attachable)
		}
		if got := u.Contains(gputypes.TextureUsageCopySrc); got != tt.readable {
			t.Errorf("%v copy source = %v, want %v", tt.access, got, tt.readable)
		}
		if !u.Contains(gputypes.TextureUsageTextureBinding) {
			t.Errorf("%v cannot be sampled", tt.access)
		}
	}
}

func TestDrawUnscaledClippedOffset(t *testing.T) {
	p := newTestProvider(t, 4, 4)
	dst := newTarget(t, p, "dst", 4, 4)

	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.SetNRGBA(x, y, color.NRGBA{uint8(x * 60), uint8(y * 60), 7, 255})
		}
	}
	tex, err := p.Upload(src, "gradient")
	if err != nil {
		t.Fatal(err)
	}

	if err := p.SetTarget(dst); err != nil {
		t.Fatal(err)
	}
	dr := image.Rect(-2, -1, 2, 3)
	if err := p.Draw(tex, &DrawOptions{DstRect: &dr, Blend: BlendReplace}); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	tests := []struct {
		x, y int
		want color.NRGBA
	}{
		{0, 0, src.NRGBAAt(2, 1)},
		{1, 2, src.NRGBAAt(3, 3)},
		{2, 0, color.NRGBA{}}, // outside dr
	}
	for _, tt := range tests {
		if got := pixelAt(t, p, dst, tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}
