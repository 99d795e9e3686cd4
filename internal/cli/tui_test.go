package cli

import (
	"context"
	"image/color"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/texatlas/pkg/atlas"
	"github.com/matzehuels/texatlas/pkg/pipeline"
	"github.com/matzehuels/texatlas/pkg/raster"
)

func testImages(n, size int) []*atlas.SourceImage {
	images := make([]*atlas.SourceImage, n)
	for i := range images {
		b := raster.New(size, size)
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				b.Set(x, y, color.NRGBA{R: uint8(50 * i), G: 120, B: 200, A: 255})
			}
		}
		images[i] = &atlas.SourceImage{Name: string(rune('a' + i)), Image: b}
	}
	return images
}

func newTestEditor(t *testing.T, images []*atlas.SourceImage) editorModel {
	t.Helper()
	runner := pipeline.NewRunner(newLogger(io.Discard, LogInfo))
	opts := pipeline.DefaultOptions()
	opts.Logger = runner.Logger
	opts.Output = t.TempDir() + "/atlas.png"
	return newEditorModel(context.Background(), runner, images, opts)
}

func press(m editorModel, keys ...tea.KeyMsg) editorModel {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(editorModel)
	}
	return m
}

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestEditorInitialBuild(t *testing.T) {
	m := newTestEditor(t, testImages(5, 10))

	if !m.result.OK() {
		t.Fatalf("initial build status = %v", m.result.Status)
	}
	if m.result.Width != 30 || m.result.Height != 20 {
		t.Errorf("canvas = %dx%d, want 30x20", m.result.Width, m.result.Height)
	}
	if m.status != "5 images loaded." {
		t.Errorf("status = %q", m.status)
	}
}

func TestEditorAdjustColumns(t *testing.T) {
	m := newTestEditor(t, testImages(5, 10))

	m = press(m, keyDown, keyRight) // columns 3 -> 4
	if m.opts.Columns != 4 {
		t.Fatalf("Columns = %d, want 4", m.opts.Columns)
	}
	if m.result.Width != 40 || m.result.Height != 20 {
		t.Errorf("canvas = %dx%d, want 40x20", m.result.Width, m.result.Height)
	}
	if m.status != "Texture atlas generated successfully." {
		t.Errorf("status = %q", m.status)
	}

	m = press(m, keyRight, keyRight, keyRight) // capped at image count
	if m.opts.Columns != 5 {
		t.Errorf("Columns = %d, want 5", m.opts.Columns)
	}
	m = press(m, keyLeft, keyLeft, keyLeft, keyLeft, keyLeft, keyLeft)
	if m.opts.Columns != 1 {
		t.Errorf("Columns = %d, want 1", m.opts.Columns)
	}
}

func TestEditorCursorWraps(t *testing.T) {
	m := newTestEditor(t, testImages(1, 4))
	m = press(m, keyUp)
	if m.cursor != settingScale {
		t.Errorf("cursor = %d, want last setting", m.cursor)
	}
	m = press(m, keyDown)
	if m.cursor != settingMode {
		t.Errorf("cursor = %d, want first setting", m.cursor)
	}
}

func TestEditorToggles(t *testing.T) {
	m := newTestEditor(t, testImages(3, 8))

	m = press(m, keyRight) // mode
	if m.opts.Mode != pipeline.ModeRows {
		t.Errorf("Mode = %q, want rows", m.opts.Mode)
	}

	m.cursor = settingPacking
	m = press(m, keyRight)
	if !m.opts.IsTight() {
		t.Errorf("Packing = %q, want tight", m.opts.Packing)
	}
	if !m.result.OK() {
		t.Errorf("tight build status = %v", m.result.Status)
	}
}

func TestEditorPaddingBounds(t *testing.T) {
	m := newTestEditor(t, testImages(2, 20))
	m.cursor = settingPadding

	// MaxCropping for 20x20 images is 5.
	for i := 0; i < 10; i++ {
		m = press(m, keyLeft)
	}
	if m.opts.Padding != -5 {
		t.Errorf("Padding = %d, want -5", m.opts.Padding)
	}
	if !m.result.OK() || m.result.Width != 20 {
		t.Errorf("cropped build = %v, width %d", m.result.Status, m.result.Width)
	}
}

func TestEditorReset(t *testing.T) {
	m := newTestEditor(t, testImages(4, 6))
	m.cursor = settingOutline
	m = press(m, keyRight, keyRight)
	if m.opts.OutlineThickness != 2 {
		t.Fatalf("OutlineThickness = %d, want 2", m.opts.OutlineThickness)
	}

	m = press(m, runeKey('r'))
	if m.opts.OutlineThickness != 0 || m.opts.Columns != 3 {
		t.Errorf("reset opts = %s", m.opts)
	}
	if m.status != "Settings reset to defaults." {
		t.Errorf("status = %q", m.status)
	}
}

func TestEditorSave(t *testing.T) {
	m := newTestEditor(t, testImages(2, 4))
	m = press(m, runeKey('s'))
	if m.statusKind != statusOK || !strings.HasPrefix(m.status, "Texture saved to: ") {
		t.Errorf("status = %q", m.status)
	}
}

func TestEditorSaveWithoutAtlas(t *testing.T) {
	m := newTestEditor(t, testImages(2, 4))
	m.result = atlas.Result{}
	m = press(m, runeKey('s'))
	if m.status != "No texture atlas to save!" {
		t.Errorf("status = %q", m.status)
	}
}

func TestEditorExport(t *testing.T) {
	m := newTestEditor(t, testImages(2, 4))
	m.opts.IndividualDir = t.TempDir()
	m = press(m, runeKey('e'))
	if m.status != "All textures saved individually." {
		t.Errorf("status = %q", m.status)
	}
}

func TestEditorQuit(t *testing.T) {
	m := newTestEditor(t, testImages(1, 4))
	_, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestEditorView(t *testing.T) {
	m := newTestEditor(t, testImages(3, 4))
	view := m.View()
	for _, want := range []string{appName, "Columns", "Packing", "3 images loaded.", "quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view is missing %q", want)
		}
	}
}

func TestFitPreview(t *testing.T) {
	tests := []struct {
		w, h, maxW, maxH int
		wantW, wantH     int
	}{
		{10, 10, 40, 40, 10, 10},
		{100, 50, 40, 40, 40, 20},
		{50, 100, 40, 40, 20, 40},
		{1000, 1, 40, 40, 40, 1},
	}
	for _, tt := range tests {
		w, h := fitPreview(tt.w, tt.h, tt.maxW, tt.maxH)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("fitPreview(%d,%d,%d,%d) = %d,%d, want %d,%d",
				tt.w, tt.h, tt.maxW, tt.maxH, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct{ v, lo, hi, want int }{
		{5, 1, 10, 5},
		{0, 1, 10, 1},
		{11, 1, 10, 10},
		{3, 4, 2, 4}, // empty range collapses to lo
	}
	for _, tt := range tests {
		if got := clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("clamp(%d,%d,%d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}
