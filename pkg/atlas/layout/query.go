package layout

// MinColumns returns how many strips of at most limit pixels wide the
// present images need when laid out side by side. It is the lower bound a
// UI offers for the column count.
func MinColumns(sizes []*Size, limit int) int {
	return minStrips(sizes, limit, func(s *Size) int { return s.W })
}

// MinRows is MinColumns along the vertical axis.
func MinRows(sizes []*Size, limit int) int {
	return minStrips(sizes, limit, func(s *Size) int { return s.H })
}

func minStrips(sizes []*Size, limit int, extent func(*Size) int) int {
	if limit <= 0 {
		limit = MaxSize
	}
	strips, cur := 1, 0
	for _, s := range sizes {
		if s == nil {
			continue
		}
		e := extent(s)
		if cur+e > limit {
			strips++
			cur = 0
		}
		cur += e
	}
	return strips
}

// MaxPadding returns the largest non-negative padding that keeps the canvas
// within the limit, given unpadded sizes. It splits the free space evenly
// over the items of the widest row and over the rows.
func MaxPadding(sizes []*Size, opts Options) int {
	if opts.Validate() != nil {
		return 0
	}
	l, err := Compute(sizes, opts)
	if err != nil || len(l.Rects) == 0 {
		return 0
	}

	perRow := max(opts.PerRow(len(sizes)), 1)
	rows := max(ceilDiv(len(l.Rects), perRow), 1)
	limit := opts.limit()

	padX := (limit - l.Width) / (2 * min(perRow, len(l.Rects)))
	padY := (limit - l.Height) / (2 * rows)
	return max(min(padX, padY), 0)
}

// cropMargin is the number of pixels a maximal crop leaves on each side of
// the centre of the smallest image.
const cropMargin = 5

// MaxCropping returns the largest crop (as a positive number) that leaves
// every present image with a visible centre. It is zero when any image is
// too small to crop.
func MaxCropping(sizes []*Size) int {
	best, found := 0, false
	for _, s := range sizes {
		if s == nil {
			continue
		}
		c := min(s.W/2, s.H/2) - cropMargin
		if !found || c < best {
			best, found = c, true
		}
	}
	return max(best, 0)
}
