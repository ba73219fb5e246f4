package frames

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"
)

var ErrFormat = errors.New("frames: unsupported format")

// Encode writes img in the named format: "webp" (lossless), "tga" or "png".
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "webp":
		return nativewebp.Encode(w, img, nil)
	case "tga":
		return tga.Encode(w, img)
	case "png":
		return png.Encode(w, img)
	}
	return fmt.Errorf("%w: %q", ErrFormat, format)
}

// Upscale enlarges img by an integer factor with nearest-neighbour
// sampling, so single-pixel stars stay crisp squares.
func Upscale(img *image.RGBA, factor int) *image.RGBA {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// fillBackground makes every pixel opaque. Cleared pixels are zero, so the
// background turns black and star colours are unchanged.
func fillBackground(img *image.RGBA) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xFF
	}
}

func writeFile(path string, img image.Image, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Encode(f, img, format); err != nil {
		f.Close()
		return fmt.Errorf("%s encode: %w", format, err)
	}
	return f.Close()
}

// writeAnimation stores the frames as one looping animated WebP.
func writeAnimation(path string, imgs []image.Image, fps int) error {
	ms := uint(1000 / fps)
	if ms == 0 {
		ms = 1
	}
	ani := &nativewebp.Animation{
		Images:    imgs,
		Durations: make([]uint, len(imgs)),
		Disposals: make([]uint, len(imgs)),
	}
	for i := range ani.Durations {
		ani.Durations[i] = ms
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := nativewebp.EncodeAll(f, ani, nil); err != nil {
		f.Close()
		return fmt.Errorf("webp animation: %w", err)
	}
	return f.Close()
}
