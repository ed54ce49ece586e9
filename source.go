package collide

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/gogpu/collide/internal/imageio"
	"github.com/gogpu/collide/surface"
)

// LoadTexture decodes the image file at path and uploads it to p as a
// static texture labelled with the file's base name.
//
// PNG, JPEG, GIF, BMP, WebP and TIFF files are supported. A missing or
// malformed file is logged and returned as an error wrapping ErrImageLoad;
// LoadTexture never returns a nil texture with a nil error.
func LoadTexture(p surface.Provider, path string) (surface.Surface, error) {
	img, err := imageio.Load(path)
	if err != nil {
		Logger().Error("collide: load image", "path", path, "err", err)
		return nil, fmt.Errorf("%w: %s: %w", ErrImageLoad, path, err)
	}

	tex, err := UploadTexture(p, img, filepath.Base(path))
	if err != nil {
		return nil, err
	}

	Logger().Info("collide: texture loaded", "path", path, "size", sizeOf(tex))
	return tex, nil
}

// UploadTexture uploads an already decoded image to p as a static texture.
func UploadTexture(p surface.Provider, img image.Image, label string) (surface.Surface, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil provider", ErrInitialization)
	}
	tex, err := p.Upload(img, label)
	if err != nil {
		return nil, fmt.Errorf("%w: upload %s: %w", ErrInitialization, label, err)
	}
	return tex, nil
}
