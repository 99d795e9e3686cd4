package raster

import (
	"image/color"
	"testing"

	"github.com/matzehuels/texatlas/pkg/errors"
)

func TestScaleFullIsCopy(t *testing.T) {
	src := checker(5, 5)
	out, err := Scale(src, 100)
	if err != nil {
		t.Fatalf("Scale: %v", err)
	}
	if !out.Equal(src) {
		t.Error("100% scale should reproduce the source")
	}
	out.Set(0, 0, color.NRGBA{})
	if src.At(0, 0) == (color.NRGBA{}) {
		t.Error("100% scale must return a copy")
	}
}

func TestScaleSize(t *testing.T) {
	tests := []struct {
		w, h, percent int
		wantW, wantH  int
	}{
		{100, 50, 50, 50, 25},
		{33, 10, 10, 3, 1},
		{3, 3, 1, 0, 0},
	}
	for _, tt := range tests {
		out, err := Scale(New(tt.w, tt.h), tt.percent)
		if err != nil {
			t.Fatalf("Scale(%d%%): %v", tt.percent, err)
		}
		if out.Width() != tt.wantW || out.Height() != tt.wantH {
			t.Errorf("Scale(%dx%d, %d%%) = %dx%d, want %dx%d",
				tt.w, tt.h, tt.percent, out.Width(), out.Height(), tt.wantW, tt.wantH)
		}
	}
}

func TestScaleUniformColor(t *testing.T) {
	src := New(8, 8)
	c := color.NRGBA{R: 200, G: 100, B: 50, A: 255}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			src.Set(x, y, c)
		}
	}
	out, err := Scale(src, 50)
	if err != nil {
		t.Fatalf("Scale: %v", err)
	}
	if got := out.At(2, 2); got != c {
		t.Errorf("uniform image should stay uniform, got %v", got)
	}
}

func TestScaleRejectsOutOfRange(t *testing.T) {
	for _, p := range []int{0, 101, -5} {
		if _, err := Scale(New(2, 2), p); !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("Scale(%d) error = %v, want INVALID_CONFIG", p, err)
		}
	}
}
