// Package outline draws a solid halo around the opaque silhouette of an
// image, optionally softened with a Gaussian blur.
//
// The halo is built in a separate layer: every pixel with alpha > 0 in the
// source stamps the outline color onto its (2·thickness+1)² neighbourhood,
// first writer wins. In [Gaussian] mode the layer is blurred three times
// with a 3×3 binomial kernel. The layer is then composited under the source,
// so an opaque source pixel is never altered.
//
// Cost is O(width · height · thickness²), which dominates an atlas build
// whenever outlines are enabled.
package outline

import (
	"image/color"
	"math"

	"github.com/matzehuels/texatlas/pkg/errors"
	"github.com/matzehuels/texatlas/pkg/raster"
)

// MaxThickness is the largest accepted outline thickness.
const MaxThickness = 20

// blurPasses is the number of kernel applications in Gaussian mode.
const blurPasses = 3

// Mode selects how the outline edge is rendered.
type Mode int

const (
	// Pixel renders a hard-edged ring.
	Pixel Mode = iota
	// Gaussian softens the ring with a blur.
	Gaussian
)

// String returns the lower-case mode name used in config files.
func (m Mode) String() string {
	switch m {
	case Pixel:
		return "pixel"
	case Gaussian:
		return "gaussian"
	default:
		return "unknown"
	}
}

// ParseMode parses "pixel" or "gaussian".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "pixel", "":
		return Pixel, nil
	case "gaussian":
		return Gaussian, nil
	}
	return Pixel, errors.New(errors.ErrCodeInvalidConfig, "invalid outline mode: %q (must be 'pixel' or 'gaussian')", s)
}

// Options configures Apply.
type Options struct {
	Thickness int
	Color     color.NRGBA
	Mode      Mode
}

// Validate checks the thickness range.
func (o Options) Validate() error {
	return errors.ValidateRange("outline thickness", o.Thickness, 0, MaxThickness)
}

// Apply returns a new buffer with the outline drawn around src. A thickness
// of zero returns an identical copy.
func Apply(src *raster.Buffer, opts Options) (*raster.Buffer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Thickness == 0 {
		return src.Clone(), nil
	}

	w, h := src.Width(), src.Height()
	layer := stamp(src, opts.Thickness, opts.Color)
	if opts.Mode == Gaussian {
		for i := 0; i < blurPasses; i++ {
			layer = blur(layer, w, h)
		}
	}

	out := src.Clone()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if out.At(x, y).A != 0 {
				continue
			}
			if c := quantize(layer[y*w+x]); c.A > 0 {
				out.Set(x, y, c)
			}
		}
	}
	return out, nil
}

// rgba is one outline-layer pixel with straight (non-premultiplied)
// channels in [0, 1].
type rgba struct{ r, g, b, a float64 }

func stamp(src *raster.Buffer, t int, c color.NRGBA) []rgba {
	w, h := src.Width(), src.Height()
	fill := rgba{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255, float64(c.A) / 255}
	layer := make([]rgba, w*h)
	marked := make([]bool, w*h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if src.At(x, y).A == 0 {
				continue
			}
			for oy := -t; oy <= t; oy++ {
				ny := y + oy
				if ny < 0 || ny >= h {
					continue
				}
				for ox := -t; ox <= t; ox++ {
					nx := x + ox
					if nx < 0 || nx >= w || (ox == 0 && oy == 0) {
						continue
					}
					if i := ny*w + nx; !marked[i] {
						marked[i] = true
						layer[i] = fill
					}
				}
			}
		}
	}
	return layer
}

// kernel is the 3×3 binomial approximation of a Gaussian, normalised by 16.
var kernel = [3][3]float64{
	{1.0 / 16, 2.0 / 16, 1.0 / 16},
	{2.0 / 16, 4.0 / 16, 2.0 / 16},
	{1.0 / 16, 2.0 / 16, 1.0 / 16},
}

// blur convolves all four channels with kernel, sampling clamped to edge.
func blur(px []rgba, w, h int) []rgba {
	out := make([]rgba, len(px))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum rgba
			for ky := -1; ky <= 1; ky++ {
				sy := clamp(y+ky, 0, h-1)
				for kx := -1; kx <= 1; kx++ {
					sx := clamp(x+kx, 0, w-1)
					k := kernel[ky+1][kx+1]
					p := px[sy*w+sx]
					sum.r += p.r * k
					sum.g += p.g * k
					sum.b += p.b * k
					sum.a += p.a * k
				}
			}
			out[y*w+x] = sum
		}
	}
	return out
}

func quantize(p rgba) color.NRGBA {
	return color.NRGBA{R: to8(p.r), G: to8(p.g), B: to8(p.b), A: to8(p.a)}
}

func to8(v float64) uint8 {
	return uint8(clamp(int(math.Round(v*255)), 0, 255))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
