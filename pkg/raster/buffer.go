package raster

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/matzehuels/texatlas/pkg/errors"
)

// Transparent is the zero pixel every new buffer is filled with.
var Transparent = color.NRGBA{}

// Buffer is an owned 2D grid of NRGBA pixels.
type Buffer struct {
	img *image.NRGBA
}

// New returns a fully transparent buffer. Negative dimensions are treated
// as zero.
func New(width, height int) *Buffer {
	return &Buffer{img: image.NewNRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))}
}

// FromImage copies img into a new buffer whose origin is (0, 0).
func FromImage(img image.Image) *Buffer {
	b := img.Bounds()
	buf := New(b.Dx(), b.Dy())
	draw.Draw(buf.img, buf.img.Bounds(), img, b.Min, draw.Src)
	return buf
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int { return b.img.Rect.Dx() }

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int { return b.img.Rect.Dy() }

// Bounds returns the buffer rectangle, always anchored at (0, 0).
func (b *Buffer) Bounds() image.Rectangle { return b.img.Rect }

// Empty reports whether the buffer has no pixels.
func (b *Buffer) Empty() bool { return b.Width() == 0 || b.Height() == 0 }

// Image exposes the backing image for encoding and drawing. Writes to the
// returned image are writes to the buffer.
func (b *Buffer) Image() *image.NRGBA { return b.img }

// At returns the pixel at (x, y), or Transparent outside the buffer.
func (b *Buffer) At(x, y int) color.NRGBA {
	if !(image.Point{x, y}.In(b.img.Rect)) {
		return Transparent
	}
	return b.img.NRGBAAt(x, y)
}

// Set writes a single pixel. Writes outside the buffer are ignored.
func (b *Buffer) Set(x, y int, c color.NRGBA) {
	b.img.SetNRGBA(x, y, c)
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	c := New(b.Width(), b.Height())
	copy(c.img.Pix, b.img.Pix)
	return c
}

// Equal reports whether both buffers have the same size and pixels. A nil
// buffer only equals another nil buffer.
func (b *Buffer) Equal(o *Buffer) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.Width() != o.Width() || b.Height() != o.Height() {
		return false
	}
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if b.img.NRGBAAt(x, y) != o.img.NRGBAAt(x, y) {
				return false
			}
		}
	}
	return true
}

// Region returns the w×h block at (x, y) in row-major order.
func (b *Buffer) Region(x, y, w, h int) ([]color.NRGBA, error) {
	if err := b.checkRegion(x, y, w, h); err != nil {
		return nil, err
	}
	px := make([]color.NRGBA, 0, w*h)
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			px = append(px, b.img.NRGBAAt(x+i, y+j))
		}
	}
	return px, nil
}

// SetRegion overwrites the w×h block at (x, y) with pixels in row-major
// order. len(pixels) must equal w*h.
func (b *Buffer) SetRegion(x, y, w, h int, pixels []color.NRGBA) error {
	if len(pixels) != w*h {
		return errors.New(errors.ErrCodeSizeMismatch, "region %dx%d needs %d pixels, got %d", w, h, w*h, len(pixels))
	}
	if err := b.checkRegion(x, y, w, h); err != nil {
		return err
	}
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			b.img.SetNRGBA(x+i, y+j, pixels[j*w+i])
		}
	}
	return nil
}

// Blit copies all of src into b with its top-left corner at (x, y),
// replacing the destination pixels. It fails with OUT_OF_BOUNDS when src
// does not fit.
func (b *Buffer) Blit(x, y int, src *Buffer) error {
	if err := b.checkRegion(x, y, src.Width(), src.Height()); err != nil {
		return err
	}
	r := image.Rect(x, y, x+src.Width(), y+src.Height())
	draw.Draw(b.img, r, src.img, image.Point{}, draw.Src)
	return nil
}

func (b *Buffer) checkRegion(x, y, w, h int) error {
	if x < 0 || y < 0 || w < 0 || h < 0 || x+w > b.Width() || y+h > b.Height() {
		return errors.New(errors.ErrCodeOutOfBounds,
			"region (%d,%d %dx%d) exceeds buffer %dx%d", x, y, w, h, b.Width(), b.Height())
	}
	return nil
}
