package layout

import (
	"testing"

	"github.com/matzehuels/texatlas/pkg/errors"
)

func squares(n, s int) []*Size {
	out := make([]*Size, n)
	for i := range out {
		out[i] = &Size{W: s, H: s}
	}
	return out
}

func TestComputeColumns(t *testing.T) {
	const s = 32
	l, err := Compute(squares(5, s), Options{Mode: Columns, Columns: 3})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if l.Width != 3*s || l.Height != 2*s {
		t.Errorf("canvas = %dx%d, want %dx%d", l.Width, l.Height, 3*s, 2*s)
	}

	want := []Rect{
		{0, 0, 0, s, s},
		{1, s, 0, s, s},
		{2, 2 * s, 0, s, s},
		{3, 0, s, s, s},
		{4, s, s, s, s},
	}
	if len(l.Rects) != len(want) {
		t.Fatalf("got %d rects, want %d", len(l.Rects), len(want))
	}
	for i := range want {
		if l.Rects[i] != want[i] {
			t.Errorf("rect %d = %+v, want %+v", i, l.Rects[i], want[i])
		}
	}
}

func TestComputeRows(t *testing.T) {
	// 7 items in 3 rows → ceil(7/3) = 3 per row → rows of 3, 3, 1.
	l, err := Compute(squares(7, 10), Options{Mode: Rows, Rows: 3})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if l.Width != 30 || l.Height != 30 {
		t.Errorf("canvas = %dx%d, want 30x30", l.Width, l.Height)
	}
	if last := l.Rects[6]; last.X != 0 || last.Y != 20 {
		t.Errorf("last rect at (%d,%d), want (0,20)", last.X, last.Y)
	}
}

func TestComputeMixedHeights(t *testing.T) {
	sizes := []*Size{{W: 10, H: 5}, {W: 20, H: 15}, {W: 5, H: 8}}
	l, err := Compute(sizes, Options{Mode: Columns, Columns: 2})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if l.Width != 30 || l.Height != 23 {
		t.Errorf("canvas = %dx%d, want 30x23", l.Width, l.Height)
	}
	if r := l.Rects[2]; r.Y != 15 {
		t.Errorf("second row should start below the tallest item, got y=%d", r.Y)
	}
}

func TestComputeSkipsAbsent(t *testing.T) {
	sizes := []*Size{{W: 4, H: 4}, nil, {W: 4, H: 4}, nil}
	l, err := Compute(sizes, Options{Mode: Columns, Columns: 2})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(l.Rects) != 2 {
		t.Fatalf("got %d rects, want 2", len(l.Rects))
	}
	if l.Rects[1].Index != 2 || l.Rects[1].X != 4 || l.Rects[1].Y != 0 {
		t.Errorf("absent entry advanced the cursor: %+v", l.Rects[1])
	}
	if l.Width != 8 || l.Height != 4 {
		t.Errorf("canvas = %dx%d, want 8x4", l.Width, l.Height)
	}
}

func TestComputeZeroSized(t *testing.T) {
	sizes := []*Size{{W: 0, H: 0}, {W: 6, H: 3}}
	l, err := Compute(sizes, Options{Mode: Columns, Columns: 1})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if l.Rects[1].Y != 0 {
		t.Errorf("zero-height row should not push the next row down, got y=%d", l.Rects[1].Y)
	}
	if l.Width != 6 || l.Height != 3 {
		t.Errorf("canvas = %dx%d, want 6x3", l.Width, l.Height)
	}
}

func TestComputeCanvasTooLarge(t *testing.T) {
	// One column, 3 images each taller than 8192/3.
	sizes := squares(3, 3000)
	l, err := Compute(sizes, Options{Mode: Columns, Columns: 1})
	if !errors.Is(err, errors.ErrCodeCanvasTooLarge) {
		t.Fatalf("error = %v, want CANVAS_TOO_LARGE", err)
	}
	if l.Height != MaxSize {
		t.Errorf("reported height should be clamped to %d, got %d", MaxSize, l.Height)
	}
	want := "Cannot generate texture atlas. Calculated size 3000x9000 exceeds maximum allowed size 8192x8192."
	if got := errors.UserMessage(err); got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
}

func TestComputeCustomLimit(t *testing.T) {
	_, err := Compute(squares(2, 10), Options{Mode: Columns, Columns: 2, MaxSize: 19})
	if !errors.Is(err, errors.ErrCodeCanvasTooLarge) {
		t.Errorf("error = %v, want CANVAS_TOO_LARGE", err)
	}
}

func TestComputeInvalidOptions(t *testing.T) {
	tests := []Options{
		{Mode: Columns, Columns: 0},
		{Mode: Rows, Rows: -1},
		{Mode: Mode(7), Columns: 1},
	}
	for _, o := range tests {
		if _, err := Compute(squares(1, 1), o); !errors.Is(err, errors.ErrCodeInvalidConfig) {
			t.Errorf("Compute(%+v) error = %v, want INVALID_CONFIG", o, err)
		}
	}
}

func TestComputeEmpty(t *testing.T) {
	l, err := Compute(nil, Options{Mode: Rows, Rows: 2})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if l.Width != 0 || l.Height != 0 || len(l.Rects) != 0 {
		t.Errorf("empty input should give an empty layout, got %+v", l)
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("rows"); err != nil || m != Rows {
		t.Errorf("ParseMode(rows) = %v, %v", m, err)
	}
	if m, err := ParseMode("columns"); err != nil || m != Columns {
		t.Errorf("ParseMode(columns) = %v, %v", m, err)
	}
	if _, err := ParseMode("diagonal"); err == nil {
		t.Error("ParseMode(diagonal) should fail")
	}
}
