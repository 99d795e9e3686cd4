package outline

import (
	"image/color"
	"testing"

	"github.com/matzehuels/texatlas/pkg/errors"
	"github.com/matzehuels/texatlas/pkg/raster"
)

var (
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.NRGBA{A: 255}
)

// dot returns a w×h transparent buffer with one opaque pixel at (x, y).
func dot(w, h, x, y int) *raster.Buffer {
	b := raster.New(w, h)
	b.Set(x, y, white)
	return b
}

func TestThicknessZeroIsIdentity(t *testing.T) {
	src := dot(5, 5, 2, 2)
	src.Set(0, 4, color.NRGBA{R: 10, A: 40})

	for _, mode := range []Mode{Pixel, Gaussian} {
		out, err := Apply(src, Options{Thickness: 0, Color: black, Mode: mode})
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if !out.Equal(src) {
			t.Errorf("%s: thickness 0 changed the image", mode)
		}
	}
}

func TestPixelRing(t *testing.T) {
	src := dot(7, 7, 3, 3)
	out, err := Apply(src, Options{Thickness: 1, Color: black, Mode: Pixel})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if out.At(3, 3) != white {
		t.Errorf("center = %v, want source pixel", out.At(3, 3))
	}
	for y := 2; y <= 4; y++ {
		for x := 2; x <= 4; x++ {
			if x == 3 && y == 3 {
				continue
			}
			if out.At(x, y) != black {
				t.Errorf("ring (%d,%d) = %v, want outline color", x, y, out.At(x, y))
			}
		}
	}
	if out.At(1, 3) != raster.Transparent || out.At(5, 5) != raster.Transparent {
		t.Error("pixels beyond thickness must stay transparent")
	}
}

func TestChebyshevSquare(t *testing.T) {
	src := dot(9, 9, 4, 4)
	out, err := Apply(src, Options{Thickness: 2, Color: black})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	// Corners of the 5×5 square are included.
	for _, p := range [][2]int{{2, 2}, {6, 2}, {2, 6}, {6, 6}} {
		if out.At(p[0], p[1]) != black {
			t.Errorf("corner %v not outlined", p)
		}
	}
	if out.At(1, 4) != raster.Transparent {
		t.Error("distance 3 must not be outlined")
	}
}

func TestEdgeClipping(t *testing.T) {
	src := dot(3, 3, 0, 0)
	out, err := Apply(src, Options{Thickness: 5, Color: black})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if out.Width() != 3 || out.Height() != 3 {
		t.Fatalf("size changed to %dx%d", out.Width(), out.Height())
	}
	if out.At(2, 2) != black {
		t.Error("outline should fill the clipped neighbourhood")
	}
}

func TestAlphaMonotonic(t *testing.T) {
	src := raster.New(8, 8)
	for y := 2; y < 6; y++ {
		for x := 2; x < 6; x++ {
			src.Set(x, y, color.NRGBA{R: uint8(x * 20), G: 10, B: 10, A: uint8(40 * (y - 1))})
		}
	}

	for _, mode := range []Mode{Pixel, Gaussian} {
		for _, thickness := range []int{1, 3, 20} {
			out, err := Apply(src, Options{Thickness: thickness, Color: black, Mode: mode})
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			for y := 0; y < 8; y++ {
				for x := 0; x < 8; x++ {
					if before, after := src.At(x, y), out.At(x, y); after.A < before.A {
						t.Fatalf("%s/%d: alpha at (%d,%d) dropped %d → %d", mode, thickness, x, y, before.A, after.A)
					}
					if src.At(x, y).A > 0 && out.At(x, y) != src.At(x, y) {
						t.Fatalf("%s/%d: opaque pixel (%d,%d) was overwritten", mode, thickness, x, y)
					}
				}
			}
		}
	}
}

func TestGaussianSoftensEdge(t *testing.T) {
	src := dot(11, 11, 5, 5)
	red := color.NRGBA{R: 255, A: 255}

	out, err := Apply(src, Options{Thickness: 2, Color: red, Mode: Gaussian})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	inner := out.At(4, 4)
	edge := out.At(3, 3)
	outside := out.At(1, 5)
	if !(inner.A > edge.A && edge.A > outside.A) {
		t.Errorf("alpha should fall off: inner %d, edge %d, outside %d", inner.A, edge.A, outside.A)
	}
	if outside.A == 0 {
		t.Error("blur should spread beyond the hard ring")
	}
	if out.At(5, 5) != white {
		t.Error("source pixel must win over the blurred layer")
	}
}

func TestBlurPreservesUniformLayer(t *testing.T) {
	c := rgba{0.5, 0.25, 1, 1}
	px := make([]rgba, 12)
	for i := range px {
		px[i] = c
	}
	out := blur(px, 4, 3)
	for i, p := range out {
		if quantize(p) != quantize(c) {
			t.Fatalf("pixel %d = %v, want %v (clamped edges keep uniform input)", i, p, c)
		}
	}
}

func TestDoesNotMutateSource(t *testing.T) {
	src := dot(5, 5, 2, 2)
	before := src.Clone()
	if _, err := Apply(src, Options{Thickness: 2, Color: black, Mode: Gaussian}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !src.Equal(before) {
		t.Error("Apply modified its input")
	}
}

func TestThicknessRange(t *testing.T) {
	for _, th := range []int{-1, 21} {
		_, err := Apply(raster.New(2, 2), Options{Thickness: th})
		if !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("thickness %d: error = %v, want INVALID_CONFIG", th, err)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"pixel", Pixel, false},
		{"", Pixel, false},
		{"gaussian", Gaussian, false},
		{"box", Pixel, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseMode(%q) = %v, %v", tt.in, got, err)
		}
		if err == nil && tt.in != "" && got.String() != tt.in {
			t.Errorf("String() = %q, want %q", got.String(), tt.in)
		}
	}
}
