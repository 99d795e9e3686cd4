package layout

import (
	"image"

	"github.com/matzehuels/texatlas/pkg/errors"
)

// MaxSize is the largest canvas dimension on either axis.
const MaxSize = 8192

// Mode chooses which count bounds a row.
type Mode int

const (
	// Columns fixes the number of items per row.
	Columns Mode = iota
	// Rows fixes the number of rows.
	Rows
)

// String returns the lower-case mode name.
func (m Mode) String() string {
	if m == Rows {
		return "rows"
	}
	return "columns"
}

// ParseMode parses "columns" or "rows".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "columns", "":
		return Columns, nil
	case "rows":
		return Rows, nil
	}
	return Columns, errors.New(errors.ErrCodeInvalidConfig, "invalid measurement mode: %q (must be 'columns' or 'rows')", s)
}

// Size is the footprint of one image, already including padding or crop.
// A nil *Size in an input slice marks an absent image.
type Size struct {
	W, H int
}

// Options configures Compute.
type Options struct {
	Mode    Mode
	Columns int // items per row in Columns mode
	Rows    int // row count in Rows mode
	MaxSize int // canvas limit; zero means MaxSize
}

func (o Options) limit() int {
	if o.MaxSize <= 0 {
		return MaxSize
	}
	return o.MaxSize
}

// Validate checks that the count for the active mode is at least one.
func (o Options) Validate() error {
	switch o.Mode {
	case Columns:
		if o.Columns < 1 {
			return errors.New(errors.ErrCodeInvalidConfig, "columns must be at least 1, got %d", o.Columns)
		}
	case Rows:
		if o.Rows < 1 {
			return errors.New(errors.ErrCodeInvalidConfig, "rows must be at least 1, got %d", o.Rows)
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown measurement mode %d", o.Mode)
	}
	return nil
}

// PerRow returns how many items a row holds for count input entries.
func (o Options) PerRow(count int) int {
	if o.Mode == Rows {
		return ceilDiv(count, o.Rows)
	}
	return o.Columns
}

// Rect is the placement of one image on the canvas.
type Rect struct {
	Index         int // position in the input slice
	X, Y          int
	Width, Height int
}

// Bounds returns r as an image.Rectangle.
func (r Rect) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Layout is the outcome of Compute.
type Layout struct {
	Width, Height int
	Rects         []Rect // one per present input entry, in input order
}

// Compute places sizes in row-major order. Absent (nil) entries are skipped
// without moving the cursor but still count towards the Rows-mode row
// length.
func Compute(sizes []*Size, opts Options) (Layout, error) {
	if err := opts.Validate(); err != nil {
		return Layout{}, err
	}

	perRow := opts.PerRow(len(sizes))
	var (
		l                     Layout
		curX, curY, rowHeight int
		counter               int
	)
	for i, s := range sizes {
		if s == nil {
			continue
		}
		if counter >= perRow {
			counter = 0
			curX = 0
			curY += rowHeight
			rowHeight = 0
		}
		l.Rects = append(l.Rects, Rect{Index: i, X: curX, Y: curY, Width: s.W, Height: s.H})
		curX += s.W
		rowHeight = max(rowHeight, s.H)
		counter++

		l.Width = max(l.Width, curX)
		l.Height = curY + rowHeight
	}

	limit := opts.limit()
	if l.Width > limit || l.Height > limit {
		return Layout{Width: min(l.Width, limit), Height: min(l.Height, limit), Rects: l.Rects},
			errors.New(errors.ErrCodeCanvasTooLarge,
				"Cannot generate texture atlas. Calculated size %dx%d exceeds maximum allowed size %dx%d.",
				l.Width, l.Height, limit, limit)
	}
	return l, nil
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
