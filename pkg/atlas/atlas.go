package atlas

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/matzehuels/texatlas/pkg/atlas/layout"
	"github.com/matzehuels/texatlas/pkg/atlas/pack"
	"github.com/matzehuels/texatlas/pkg/errors"
	"github.com/matzehuels/texatlas/pkg/raster"
	"github.com/matzehuels/texatlas/pkg/raster/outline"
)

// SourceImage is one input image. It is never modified by a build.
type SourceImage struct {
	Name  string
	Image *raster.Buffer
}

// Width returns the source width.
func (s *SourceImage) Width() int { return s.Image.Width() }

// Height returns the source height.
func (s *SourceImage) Height() int { return s.Image.Height() }

// Placement locates one processed image on the canvas.
type Placement struct {
	layout.Rect
	Name string
}

// Process applies the per-image transform chain of a build: outline first,
// then padding or crop. It returns a new buffer.
func Process(img *raster.Buffer, cfg Config) (*raster.Buffer, error) {
	out := img
	if cfg.Outline.Thickness > 0 {
		var err error
		if out, err = outline.Apply(img, cfg.Outline); err != nil {
			return nil, err
		}
	}
	return raster.Pad(out, cfg.Padding), nil
}

// Sizes returns the processed footprint of every image without touching
// pixels. Outlines never change dimensions, so only padding matters. nil
// entries stay nil.
func Sizes(images []*SourceImage, padding int) []*layout.Size {
	sizes := make([]*layout.Size, len(images))
	for i, img := range images {
		if img == nil || img.Image == nil {
			continue
		}
		w, h := raster.PaddedSize(img.Width(), img.Height(), padding)
		sizes[i] = &layout.Size{W: w, H: h}
	}
	return sizes
}

// RawSizes returns the unpadded sizes, the input the layout query helpers
// expect for padding bounds.
func RawSizes(images []*SourceImage) []*layout.Size {
	return Sizes(images, 0)
}

// Build assembles images into an atlas according to cfg. nil entries are
// skipped.
func Build(images []*SourceImage, cfg Config) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Status: Status{Code: errors.ErrCodeInternal, Message: fmt.Sprintf("internal error: %v", r)}}
		}
	}()

	present := 0
	for _, img := range images {
		if img != nil && img.Image != nil {
			present++
		}
	}
	if present == 0 {
		return failed(errors.New(errors.ErrCodeEmptyInput, "No textures selected!"))
	}
	if err := cfg.Validate(); err != nil {
		return failed(err)
	}
	if err := CheckCrop(images, cfg.Padding); err != nil {
		return failed(err)
	}

	l, err := layout.Compute(Sizes(images, cfg.Padding), cfg.LayoutOptions())
	if err != nil {
		return Result{Width: l.Width, Height: l.Height, Status: statusFrom(err)}
	}

	items := make([]pack.Item, 0, present)
	for i, img := range images {
		if img == nil || img.Image == nil {
			continue
		}
		buf, err := Process(img.Image, cfg)
		if err != nil {
			return failed(err)
		}
		items = append(items, pack.Item{Index: i, Name: img.Name, Image: buf})
	}

	canvas := raster.New(l.Width, l.Height)
	res = Result{Canvas: canvas, Width: l.Width, Height: l.Height}

	var rects []layout.Rect
	switch cfg.Packing {
	case pack.StrategyTight:
		rects, err = pack.Tight(canvas, items)
	default:
		rects, err = l.Rects, pack.Grid(canvas, items, l.Rects)
		if err != nil {
			rects = nil
		}
	}

	res.Placements = placements(rects, images)
	if err != nil {
		res.Status = statusFrom(err)
		if !errors.Is(err, errors.ErrCodePackingExhausted) {
			res.Canvas = nil
		}
		return res
	}
	res.Status = Status{Code: StatusOK, Message: "Texture atlas generated successfully."}
	return res
}

// CheckCrop rejects a crop that would leave any image with less than one
// pixel on an axis.
func CheckCrop(images []*SourceImage, padding int) error {
	if padding >= 0 {
		return nil
	}
	for i, img := range images {
		if img == nil || img.Image == nil {
			continue
		}
		w, h := img.Width()+2*padding, img.Height()+2*padding
		if w < 1 || h < 1 {
			return errors.New(errors.ErrCodeInvalidConfig,
				"crop of %d leaves %s with no pixels (%dx%d source)", -padding, label(img, i), img.Width(), img.Height())
		}
	}
	return nil
}

// CheckImages validates images that are processed on their own rather than
// packed: the crop must leave pixels and no processed image may exceed the
// canvas limit on either axis.
func CheckImages(images []*SourceImage, cfg Config) error {
	if err := CheckCrop(images, cfg.Padding); err != nil {
		return err
	}
	limit := cfg.Limit()
	for i, img := range images {
		if img == nil || img.Image == nil {
			continue
		}
		w, h := raster.PaddedSize(img.Width(), img.Height(), cfg.Padding)
		if w > limit || h > limit {
			return errors.New(errors.ErrCodeCanvasTooLarge,
				"Texture %s would be %dx%d, exceeding maximum allowed size %dx%d.", label(img, i), w, h, limit, limit)
		}
	}
	return nil
}

func label(img *SourceImage, i int) string {
	if img.Name != "" {
		return img.Name
	}
	return "#" + strconv.Itoa(i)
}

func placements(rects []layout.Rect, images []*SourceImage) []Placement {
	out := make([]Placement, len(rects))
	for i, r := range rects {
		out[i] = Placement{Rect: r, Name: images[r.Index].Name}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}
