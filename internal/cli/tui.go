package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	progressbar "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/texatlas/pkg/atlas"
	"github.com/matzehuels/texatlas/pkg/atlas/layout"
	texio "github.com/matzehuels/texatlas/pkg/io"
	"github.com/matzehuels/texatlas/pkg/pipeline"
	"github.com/matzehuels/texatlas/pkg/raster"
	"github.com/matzehuels/texatlas/pkg/raster/outline"
)

// tuiCommand creates the interactive editor.
func (c *CLI) tuiCommand() *cobra.Command {
	var flags atlasFlags

	cmd := &cobra.Command{
		Use:   "tui [folder | image...]",
		Short: "Adjust atlas settings interactively",
		Long: `Adjust atlas settings interactively.

The atlas is rebuilt after every change and previewed in the terminal. Press
s to save the atlas, e to export every image on its own, r to reset all
settings, and ? for the full key list.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd, args)
			if err != nil {
				return err
			}
			return c.runTUI(cmd.Context(), opts)
		},
	}

	flags.register(cmd)
	flags.registerExport(cmd)
	return cmd
}

func (c *CLI) runTUI(ctx context.Context, opts pipeline.Options) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	images, err := c.newRunner().Load(ctx, &opts)
	if err != nil {
		return err
	}

	// The alt screen owns the terminal; keep the pipeline quiet.
	quiet := pipeline.NewRunner(newLogger(io.Discard, LogInfo))
	opts.Logger = quiet.Logger
	m := newEditorModel(ctx, quiet, images, opts)

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// =============================================================================
// Settings
// =============================================================================

type setting int

const (
	settingMode setting = iota
	settingColumns
	settingRows
	settingPadding
	settingOutline
	settingOutlineMode
	settingPacking
	settingScale
	settingCount
)

var settingNames = [settingCount]string{
	"Mode", "Columns", "Rows", "Padding", "Outline", "Outline mode", "Packing", "Scale",
}

// scaleStep is how far left/right moves the export scale.
const scaleStep = 5

// =============================================================================
// Key bindings
// =============================================================================

type editorKeys struct {
	Up     key.Binding
	Down   key.Binding
	Dec    key.Binding
	Inc    key.Binding
	Save   key.Binding
	Export key.Binding
	Reset  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultEditorKeys() editorKeys {
	return editorKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next")),
		Dec:    key.NewBinding(key.WithKeys("left", "h", "-"), key.WithHelp("←/h", "decrease")),
		Inc:    key.NewBinding(key.WithKeys("right", "l", "+"), key.WithHelp("→/l", "increase")),
		Save:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save atlas")),
		Export: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export images")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k editorKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Inc, k.Dec, k.Save, k.Help, k.Quit}
}

func (k editorKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Dec, k.Inc},
		{k.Save, k.Export, k.Reset},
		{k.Help, k.Quit},
	}
}

// =============================================================================
// editorModel
// =============================================================================

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusErr
)

// editorModel is the bubbletea model for the interactive editor. Only the
// latest status message is kept.
type editorModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	images []*atlas.SourceImage

	opts     pipeline.Options
	defaults pipeline.Options
	result   atlas.Result
	bounds   bounds

	cursor     setting
	status     string
	statusKind statusKind

	keys editorKeys
	help help.Model
	fill progressbar.Model

	width, height int
}

func newEditorModel(ctx context.Context, runner *pipeline.Runner, images []*atlas.SourceImage, opts pipeline.Options) editorModel {
	defaults := pipeline.DefaultOptions()
	defaults.Input, defaults.Files = opts.Input, opts.Files
	defaults.Output, defaults.Manifest, defaults.IndividualDir = opts.Output, opts.Manifest, opts.IndividualDir
	defaults.Logger = opts.Logger
	if defaults.ShouldAutoRaise() {
		defaults.Raise(images)
	}

	m := editorModel{
		ctx:      ctx,
		runner:   runner,
		images:   images,
		opts:     opts,
		defaults: defaults,
		keys:     defaultEditorKeys(),
		help:     help.New(),
		fill:     progressbar.New(progressbar.WithDefaultGradient(), progressbar.WithWidth(24), progressbar.WithoutPercentage()),
		width:    80,
		height:   24,
	}
	m.rebuild()
	m.setStatus(statusInfo, fmt.Sprintf("%d images loaded.", len(images)))
	return m
}

func (m editorModel) Init() tea.Cmd {
	return nil
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Up):
			m.cursor = (m.cursor + settingCount - 1) % settingCount
		case key.Matches(msg, m.keys.Down):
			m.cursor = (m.cursor + 1) % settingCount
		case key.Matches(msg, m.keys.Dec):
			if m.adjust(-1) {
				m.rebuild()
			}
		case key.Matches(msg, m.keys.Inc):
			if m.adjust(+1) {
				m.rebuild()
			}
		case key.Matches(msg, m.keys.Reset):
			m.opts = m.defaults
			m.rebuild()
			m.setStatus(statusInfo, "Settings reset to defaults.")
		case key.Matches(msg, m.keys.Save):
			m.save()
		case key.Matches(msg, m.keys.Export):
			m.export()
		}
	}
	return m, nil
}

// adjust moves the selected setting by delta and reports whether it changed.
func (m *editorModel) adjust(delta int) bool {
	o := &m.opts
	before := *o
	switch m.cursor {
	case settingMode:
		o.Mode = toggle(o.Mode, pipeline.ModeColumns, pipeline.ModeRows)
	case settingColumns:
		o.Columns = clamp(o.Columns+delta, m.minColumns(), max(len(m.images), m.minColumns()))
	case settingRows:
		o.Rows = clamp(o.Rows+delta, m.minRows(), max(len(m.images), m.minRows()))
	case settingPadding:
		o.Padding = clamp(o.Padding+delta, -m.bounds.MaxCropping, max(m.bounds.MaxPadding, o.Padding))
	case settingOutline:
		o.OutlineThickness = clamp(o.OutlineThickness+delta, 0, outline.MaxThickness)
	case settingOutlineMode:
		o.OutlineMode = toggle(o.OutlineMode, outline.Pixel.String(), outline.Gaussian.String())
	case settingPacking:
		o.Packing = toggle(o.Packing, pipeline.PackingGrid, pipeline.PackingTight)
	case settingScale:
		o.Scale = clamp(o.Scale+delta*scaleStep, raster.MinScale, raster.MaxScale)
	}
	return o.String() != before.String()
}

func (m *editorModel) minColumns() int {
	if m.opts.ShouldAutoRaise() {
		return max(m.bounds.MinColumns, 1)
	}
	return 1
}

func (m *editorModel) minRows() int {
	if m.opts.ShouldAutoRaise() {
		return max(m.bounds.MinRows, 1)
	}
	return 1
}

// rebuild runs a fresh build with the current settings.
func (m *editorModel) rebuild() {
	m.result = m.runner.Build(m.images, m.opts)
	m.bounds = computeBounds(m.images, m.opts)
	switch {
	case m.result.OK() && m.opts.IsTight() && len(m.images) > tightWarnThreshold:
		m.setStatus(statusWarn, m.result.Status.Message+" Tight packing is slow with this many images.")
	case m.result.OK():
		m.setStatus(statusOK, m.result.Status.Message)
	case m.result.Canvas != nil:
		m.setStatus(statusWarn, m.result.Status.Message)
	default:
		m.setStatus(statusErr, m.result.Status.Message)
	}
}

func (m *editorModel) save() {
	if m.result.Canvas == nil {
		m.setStatus(statusErr, "No texture atlas to save!")
		return
	}
	opts := m.opts
	opts.IndividualDir = ""
	outputs, err := m.runner.Export(m.ctx, m.result, m.images, opts)
	if err != nil {
		m.setStatus(statusErr, err.Error())
		return
	}
	m.setStatus(statusOK, "Texture saved to: "+outputs[0])
}

func (m *editorModel) export() {
	dir := m.opts.IndividualDir
	if dir == "" {
		dir = "."
	}
	cfg, err := m.opts.Config()
	if err != nil {
		m.setStatus(statusErr, err.Error())
		return
	}
	if _, err := texio.ExportIndividually(dir, m.images, cfg, m.opts.Scale); err != nil {
		m.setStatus(statusErr, err.Error())
		return
	}
	m.setStatus(statusOK, "All textures saved individually.")
}

func (m *editorModel) setStatus(kind statusKind, msg string) {
	m.statusKind, m.status = kind, msg
}

// =============================================================================
// View
// =============================================================================

var (
	editorSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	editorLabelStyle    = lipgloss.NewStyle().Foreground(colorGray).Width(14)
	editorPanelStyle    = lipgloss.NewStyle().Padding(0, 2, 0, 0)
)

func (m editorModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(appName))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d images", len(m.images))))
	b.WriteString("\n\n")

	left := editorPanelStyle.Render(m.settingsView())
	right := m.previewView(max(m.width-lipgloss.Width(left)-2, 16), max(m.height-14, 4))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	b.WriteString("\n\n")

	b.WriteString(m.statusView())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m editorModel) settingsView() string {
	var b strings.Builder
	for s := setting(0); s < settingCount; s++ {
		cursor := "  "
		label := editorLabelStyle.Render(settingNames[s])
		value := StyleValue.Render(m.settingValue(s))
		if s == m.cursor {
			cursor = editorSelectedStyle.Render("▸ ")
			value = editorSelectedStyle.Render("‹ " + m.settingValue(s) + " ›")
		}
		b.WriteString(cursor + label + value + "\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("min columns %d · min rows %d", m.bounds.MinColumns, m.bounds.MinRows)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("padding %d..%d", -m.bounds.MaxCropping, m.bounds.MaxPadding)))
	b.WriteString("\n\n")

	size := max(m.result.Width, m.result.Height)
	b.WriteString(editorLabelStyle.Render("Canvas"))
	b.WriteString(StyleNumber.Render(fmt.Sprintf("%dx%d", m.result.Width, m.result.Height)))
	b.WriteString("\n")
	b.WriteString(editorLabelStyle.Render("Limit"))
	b.WriteString(m.fill.ViewAs(float64(size) / float64(layout.MaxSize)))
	b.WriteString("\n")
	b.WriteString(editorLabelStyle.Render("Coverage"))
	b.WriteString(m.fill.ViewAs(coverage(m.result)))
	return b.String()
}

func (m editorModel) settingValue(s setting) string {
	o := m.opts
	switch s {
	case settingMode:
		return o.Mode
	case settingColumns:
		return fmt.Sprint(o.Columns)
	case settingRows:
		return fmt.Sprint(o.Rows)
	case settingPadding:
		return fmt.Sprint(o.Padding)
	case settingOutline:
		return fmt.Sprintf("%d %s", o.OutlineThickness, o.OutlineColor)
	case settingOutlineMode:
		return o.OutlineMode
	case settingPacking:
		return o.Packing
	case settingScale:
		return fmt.Sprintf("%d%%", o.Scale)
	}
	return ""
}

func (m editorModel) statusView() string {
	switch m.statusKind {
	case statusOK:
		return styleIconSuccess.Render(iconSuccess) + " " + m.status
	case statusWarn:
		return styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(m.status)
	case statusErr:
		return styleIconError.Render(iconError) + " " + StyleError.Render(m.status)
	}
	return styleIconInfo.Render(iconInfo) + " " + m.status
}

// previewView draws the canvas with half-block characters, two pixels rows
// per terminal line, sampled nearest-neighbour to fit cols x lines.
func (m editorModel) previewView(cols, lines int) string {
	canvas := m.result.Canvas
	if canvas == nil || canvas.Empty() {
		return StyleDim.Render("(no preview)")
	}

	w, h := canvas.Width(), canvas.Height()
	pw, ph := fitPreview(w, h, cols, lines*2)
	var b strings.Builder
	for py := 0; py < ph; py += 2 {
		for px := 0; px < pw; px++ {
			top := previewColor(canvas, px*w/pw, py*h/ph, px, py)
			var bottom lipgloss.TerminalColor = lipgloss.NoColor{}
			if py+1 < ph {
				bottom = previewColor(canvas, px*w/pw, (py+1)*h/ph, px, py+1)
			}
			b.WriteString(lipgloss.NewStyle().Foreground(top).Background(bottom).Render("▀"))
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// fitPreview scales w x h down to fit within maxW x maxH, keeping the aspect
// ratio. It never scales up.
func fitPreview(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	if w*maxH > h*maxW {
		return maxW, max(h*maxW/w, 1)
	}
	return max(w*maxH/h, 1), maxH
}

// previewColor blends a pixel over a checkerboard so transparency shows.
func previewColor(canvas *raster.Buffer, x, y, cx, cy int) lipgloss.Color {
	c := canvas.At(x, y)
	bg := 48.0
	if (cx/2+cy/2)%2 == 0 {
		bg = 72.0
	}
	a := float64(c.A) / 255
	blend := func(v uint8) uint8 { return uint8(float64(v)*a + bg*(1-a) + 0.5) }
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", blend(c.R), blend(c.G), blend(c.B)))
}

func toggle(v, a, b string) string {
	if v == a {
		return b
	}
	return a
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	return min(max(v, lo), hi)
}
