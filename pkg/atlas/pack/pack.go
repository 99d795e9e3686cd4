// Package pack writes processed images onto an atlas canvas.
//
// Two strategies are provided:
//
//   - [Grid] copies each image to the rectangle the layout engine computed
//     for it. It preserves input order and is linear in the number of
//     images.
//   - [Tight] ignores the layout rectangles and places the largest images
//     first at the first free row-major position. It stops at the first
//     image that does not fit, leaving a valid partial canvas. Its worst case
//     is O(images · canvas area), so it is only suitable for small atlases.
package pack

import (
	"fmt"
	"sort"

	"github.com/matzehuels/texatlas/pkg/atlas/layout"
	"github.com/matzehuels/texatlas/pkg/errors"
	"github.com/matzehuels/texatlas/pkg/raster"
)

// Strategy selects the packing algorithm.
type Strategy int

const (
	// StrategyGrid places images at their layout rectangles.
	StrategyGrid Strategy = iota
	// StrategyTight first-fit packs images by decreasing area.
	StrategyTight
)

// String returns the lower-case strategy name.
func (s Strategy) String() string {
	if s == StrategyTight {
		return "tight"
	}
	return "grid"
}

// ParseStrategy parses "grid" or "tight".
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "grid", "":
		return StrategyGrid, nil
	case "tight":
		return StrategyTight, nil
	}
	return StrategyGrid, errors.New(errors.ErrCodeInvalidConfig, "invalid packing: %q (must be 'grid' or 'tight')", s)
}

// Item is one processed image ready to be packed.
type Item struct {
	Index int    // position of the source image in the caller's list
	Name  string // used in failure messages
	Image *raster.Buffer
}

// Grid writes items[i] at rects[i]. Both slices must be in the same order
// and every image must match its rectangle's size.
func Grid(canvas *raster.Buffer, items []Item, rects []layout.Rect) error {
	if len(items) != len(rects) {
		return errors.New(errors.ErrCodeSizeMismatch, "%d items for %d rects", len(items), len(rects))
	}
	for i, it := range items {
		r := rects[i]
		if it.Image.Width() != r.Width || it.Image.Height() != r.Height {
			return errors.New(errors.ErrCodeSizeMismatch, "%s is %dx%d but its rect is %dx%d",
				label(it), it.Image.Width(), it.Image.Height(), r.Width, r.Height)
		}
		if err := canvas.Blit(r.X, r.Y, it.Image); err != nil {
			return err
		}
	}
	return nil
}

// Tight packs items onto canvas and returns the rectangles it used, in
// packing order. When an item does not fit, packing stops and the rects so
// far are returned with a PACKING_EXHAUSTED error naming that item.
func Tight(canvas *raster.Buffer, items []Item) ([]layout.Rect, error) {
	order := make([]Item, len(items))
	copy(order, items)
	sort.SliceStable(order, func(i, j int) bool {
		return area(order[i]) > area(order[j])
	})

	grid := newOccupancy(canvas.Width(), canvas.Height())
	rects := make([]layout.Rect, 0, len(order))
	for _, it := range order {
		w, h := it.Image.Width(), it.Image.Height()
		x, y, ok := grid.firstFit(w, h)
		if !ok {
			return rects, errors.New(errors.ErrCodePackingExhausted,
				"Texture %s could not be packed within the atlas size %dx%d.",
				label(it), canvas.Width(), canvas.Height())
		}
		if err := canvas.Blit(x, y, it.Image); err != nil {
			return rects, err
		}
		grid.mark(x, y, w, h)
		rects = append(rects, layout.Rect{Index: it.Index, X: x, Y: y, Width: w, Height: h})
	}
	return rects, nil
}

func area(it Item) int { return it.Image.Width() * it.Image.Height() }

func label(it Item) string {
	if it.Name != "" {
		return it.Name
	}
	return fmt.Sprintf("#%d", it.Index)
}

// occupancy records which canvas cells hold a packed image.
type occupancy struct {
	w, h  int
	cells []bool
}

func newOccupancy(w, h int) *occupancy {
	return &occupancy{w: w, h: h, cells: make([]bool, w*h)}
}

// firstFit scans top-left positions row by row and returns the first one
// where a w×h footprint touches no occupied cell.
func (o *occupancy) firstFit(w, h int) (int, int, bool) {
	for y := 0; y <= o.h-h; y++ {
		for x := 0; x <= o.w-w; x++ {
			if o.free(x, y, w, h) {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

func (o *occupancy) free(x, y, w, h int) bool {
	for j := y; j < y+h; j++ {
		row := o.cells[j*o.w : j*o.w+o.w]
		for i := x; i < x+w; i++ {
			if row[i] {
				return false
			}
		}
	}
	return true
}

func (o *occupancy) mark(x, y, w, h int) {
	for j := y; j < y+h; j++ {
		for i := x; i < x+w; i++ {
			o.cells[j*o.w+i] = true
		}
	}
}
