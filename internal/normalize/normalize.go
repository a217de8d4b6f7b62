// Package normalize post-processes generated images: center-crop to the
// largest square, optionally resize, and overwrite the file in place.
package normalize

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/pmorgner/imagine/internal/log"
	"golang.org/x/image/draw"
)

// Square crops the image at path to a centered square and, when both width and
// height are positive, resizes the result to exactly those dimensions. The
// file is overwritten as PNG; no backup of the original is kept. The processed
// image is returned for further use.
func Square(ctx context.Context, path string, width, height int) (image.Image, error) {
	logger := log.FromContextOrDiscard(ctx).WithGroup("normalize").With("path", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	img, _, err := image.Decode(f)
	_ = f.Close()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	size := min(w, h)
	left := (w - size) / 2
	top := (h - size) / 2

	logger.Info("cropping to square", "width", w, "height", h, "size", size)

	cropped := image.NewRGBA(image.Rect(0, 0, size, size))
	crop := image.Rect(bounds.Min.X+left, bounds.Min.Y+top, bounds.Min.X+left+size, bounds.Min.Y+top+size)
	draw.Copy(cropped, image.Point{}, img, crop, draw.Src, nil)

	out := image.Image(cropped)
	if width > 0 && height > 0 {
		logger.Info("resizing", "target_width", width, "target_height", height)
		resized := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(resized, resized.Bounds(), cropped, cropped.Bounds(), draw.Src, nil)
		out = resized
	}

	f, err = os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, out); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	return out, nil
}
