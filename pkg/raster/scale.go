package raster

import (
	xdraw "golang.org/x/image/draw"

	"github.com/matzehuels/texatlas/pkg/errors"
)

// Scale percentage bounds.
const (
	MinScale = 1
	MaxScale = 100
)

// ScaledSize returns the dimensions Scale produces, using integer
// truncation.
func ScaledSize(w, h, percent int) (int, int) {
	return w * percent / 100, h * percent / 100
}

// Scale returns a copy of src resized to percent of its dimensions with
// bilinear filtering. 100 returns an identical copy.
func Scale(src *Buffer, percent int) (*Buffer, error) {
	if err := errors.ValidateRange("scale", percent, MinScale, MaxScale); err != nil {
		return nil, err
	}
	if percent == MaxScale {
		return src.Clone(), nil
	}
	w, h := ScaledSize(src.Width(), src.Height(), percent)
	dst := New(w, h)
	if dst.Empty() || src.Empty() {
		return dst, nil
	}
	xdraw.BiLinear.Scale(dst.img, dst.img.Bounds(), src.img, src.img.Bounds(), xdraw.Src, nil)
	return dst, nil
}
