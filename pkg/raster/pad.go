package raster

// Pad returns a new buffer with a transparent border of padding pixels on
// every side when padding ≥ 0, or with |padding| pixels cropped from every
// side when padding < 0.
//
// A crop keeps the centre of the source and places it at the top-left of a
// (w+2·padding) × (h+2·padding) buffer, each axis clamped to zero. When the
// crop consumes a whole axis the result is fully transparent.
func Pad(src *Buffer, padding int) *Buffer {
	w, h := src.Width(), src.Height()
	dst := New(w+2*padding, h+2*padding)

	if padding >= 0 {
		// The destination is exactly large enough.
		_ = dst.Blit(padding, padding, src)
		return dst
	}

	p := -padding
	cropW := max(w-2*p, 0)
	cropH := max(h-2*p, 0)
	if cropW == 0 || cropH == 0 {
		return dst
	}
	px, err := src.Region(p, p, cropW, cropH)
	if err != nil {
		return dst
	}
	_ = dst.SetRegion(0, 0, cropW, cropH, px)
	return dst
}

// PaddedSize returns the dimensions Pad produces for a w×h source.
func PaddedSize(w, h, padding int) (int, int) {
	return max(w+2*padding, 0), max(h+2*padding, 0)
}
