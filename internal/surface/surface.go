package surface

import (
	"errors"
	"fmt"
	"image"
)

var (
	ErrBadSize     = errors.New("surface: width and height must be positive")
	ErrBadStride   = errors.New("surface: stride smaller than width*4")
	ErrShortBuffer = errors.New("surface: pixel buffer shorter than stride*height")
)

// Surface is a rectangular buffer of 32-bit RGBA pixels.
// Rows may be padded: Stride is the distance in bytes between rows.
type Surface struct {
	Width  int
	Height int
	Stride int
	Pix    []uint8 // R, G, B, A per pixel, len >= Stride*Height
}

// New allocates a zeroed, tightly packed surface.
func New(w, h int) *Surface {
	return &Surface{
		Width:  w,
		Height: h,
		Stride: w * 4,
		Pix:    make([]uint8, w*h*4),
	}
}

// Wrap adopts an externally owned buffer, e.g. a locked streaming texture.
// The surface never reallocates pix.
func Wrap(w, h, stride int, pix []uint8) (*Surface, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadSize, w, h)
	}
	if stride < w*4 {
		return nil, fmt.Errorf("%w: stride %d, width %d", ErrBadStride, stride, w)
	}
	if len(pix) < stride*h {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", ErrShortBuffer, len(pix), stride*h)
	}
	return &Surface{Width: w, Height: h, Stride: stride, Pix: pix}, nil
}

// Clear zero-fills every row, padding included.
func (s *Surface) Clear() {
	clear(s.Pix[:s.Stride*s.Height])
}

// Set writes a packed 0xRRGGBBAA colour at (x, y). Bounds are the caller's job.
func (s *Surface) Set(x, y int, c uint32) {
	i := y*s.Stride + x*4
	p := s.Pix[i : i+4 : i+4]
	p[0] = uint8(c >> 24)
	p[1] = uint8(c >> 16)
	p[2] = uint8(c >> 8)
	p[3] = uint8(c)
}

// At returns the packed colour at (x, y), or 0 outside the surface.
func (s *Surface) At(x, y int) uint32 {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height {
		return 0
	}
	i := y*s.Stride + x*4
	p := s.Pix[i : i+4 : i+4]
	return uint32(p[0])<<24 | uint32(p[1])<<16 | uint32(p[2])<<8 | uint32(p[3])
}

// RGBA returns an image view sharing the surface's pixels.
// Star pixels are opaque and cleared pixels are zero, so the
// non-premultiplied contents are also valid premultiplied RGBA.
func (s *Surface) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    s.Pix[:s.Stride*s.Height],
		Stride: s.Stride,
		Rect:   image.Rect(0, 0, s.Width, s.Height),
	}
}

// Snapshot copies the current frame into a tightly packed image.
func (s *Surface) Snapshot() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	row := s.Width * 4
	for y := 0; y < s.Height; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+row], s.Pix[y*s.Stride:y*s.Stride+row])
	}
	return img
}
