package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/texatlas/pkg/atlas"
	"github.com/matzehuels/texatlas/pkg/atlas/layout"
	"github.com/matzehuels/texatlas/pkg/pipeline"
)

func TestComputeBounds(t *testing.T) {
	images := testImages(4, 20)
	opts := pipeline.DefaultOptions()

	b := computeBounds(images, opts)
	if b.MinColumns != 1 || b.MinRows != 1 {
		t.Errorf("min columns/rows = %d/%d, want 1/1", b.MinColumns, b.MinRows)
	}
	if b.MaxCropping != 5 {
		t.Errorf("MaxCropping = %d, want 5", b.MaxCropping)
	}
	// 3 per row: (8192-60)/6 and two rows: (8192-40)/4.
	if b.MaxPadding != (layout.MaxSize-60)/6 {
		t.Errorf("MaxPadding = %d, want %d", b.MaxPadding, (layout.MaxSize-60)/6)
	}
}

func TestComputeBoundsInvalidOptions(t *testing.T) {
	opts := pipeline.DefaultOptions()
	opts.Mode = "diagonal"
	if b := computeBounds(testImages(2, 20), opts); b.MaxPadding != 0 {
		t.Errorf("MaxPadding = %d, want 0 for invalid options", b.MaxPadding)
	}
}

func TestPlacementTable(t *testing.T) {
	placements := []atlas.Placement{
		{Rect: layout.Rect{Index: 0, X: 0, Y: 0, Width: 4, Height: 4}, Name: "grass"},
		{Rect: layout.Rect{Index: 2, X: 4, Y: 0, Width: 2, Height: 8}, Name: "tree"},
	}
	out := placementTable(placements).Render()
	for _, want := range []string{"Image", "grass", "tree", "4,0", "2x8"} {
		if !strings.Contains(out, want) {
			t.Errorf("table is missing %q:\n%s", want, out)
		}
	}
}

func TestCoverage(t *testing.T) {
	res := atlas.Result{
		Width:  10,
		Height: 10,
		Placements: []atlas.Placement{
			{Rect: layout.Rect{Width: 5, Height: 10}},
		},
	}
	if got := coverage(res); got != 0.5 {
		t.Errorf("coverage = %v, want 0.5", got)
	}
	if got := coverage(atlas.Result{}); got != 0 {
		t.Errorf("coverage of empty result = %v, want 0", got)
	}
}
