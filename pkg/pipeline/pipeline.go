// Package pipeline provides the texture atlas pipeline shared by every
// texatlas command.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Decode source images from a directory or a file list
//  2. Build: Process, lay out, and pack the images into an atlas
//  3. Export: Write the scaled atlas, an optional JSON manifest, and
//     optionally every processed image on its own
//
// Each stage can be run independently or as part of the complete pipeline.
// Nothing is cached between runs; every build starts from the source images.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Input:   "textures/",
//	    Columns: 4,
//	    Output:  "atlas.png",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Atlas.Status.Message)
//
// Options can also be read from a TOML, YAML, or JSON file with
// [LoadOptions].
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/texatlas/pkg/atlas"
	"github.com/matzehuels/texatlas/pkg/atlas/layout"
	"github.com/matzehuels/texatlas/pkg/atlas/pack"
	"github.com/matzehuels/texatlas/pkg/errors"
	"github.com/matzehuels/texatlas/pkg/raster"
	"github.com/matzehuels/texatlas/pkg/raster/outline"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and TUI
// =============================================================================

const (
	// DefaultColumns is the column count of a fresh session.
	DefaultColumns = 3

	// DefaultRows is the row count of a fresh session.
	DefaultRows = 3

	// DefaultScale is the export resize percentage.
	DefaultScale = 100

	// DefaultOutlineColor is opaque black.
	DefaultOutlineColor = "#000000"

	// DefaultOutput is the atlas file written when no output is given.
	DefaultOutput = "atlas.png"
)

// Mode and packing names accepted in options.
const (
	ModeColumns = "columns"
	ModeRows    = "rows"

	PackingGrid  = "grid"
	PackingTight = "tight"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the atlas pipeline.
// Zero values mean "use the default", so a partially filled config file only
// overrides what it names.
type Options struct {
	// Load options
	Input string   `json:"input,omitempty" toml:"input" yaml:"input"` // directory to scan
	Files []string `json:"files,omitempty" toml:"files" yaml:"files"` // explicit image list, used when Input is empty

	// Build options
	Mode             string `json:"mode,omitempty" toml:"mode" yaml:"mode"`
	Columns          int    `json:"columns,omitempty" toml:"columns" yaml:"columns"`
	Rows             int    `json:"rows,omitempty" toml:"rows" yaml:"rows"`
	Padding          int    `json:"padding,omitempty" toml:"padding" yaml:"padding"` // negative crops
	OutlineThickness int    `json:"outline_thickness,omitempty" toml:"outline_thickness" yaml:"outline_thickness"`
	OutlineColor     string `json:"outline_color,omitempty" toml:"outline_color" yaml:"outline_color"` // #rrggbb or #rrggbbaa
	OutlineMode      string `json:"outline_mode,omitempty" toml:"outline_mode" yaml:"outline_mode"`
	Packing          string `json:"packing,omitempty" toml:"packing" yaml:"packing"`
	NoAutoRaise      bool   `json:"no_auto_raise,omitempty" toml:"no_auto_raise" yaml:"no_auto_raise"` // keep counts below the minimum

	// Export options
	Output        string `json:"output,omitempty" toml:"output" yaml:"output"`
	Manifest      string `json:"manifest,omitempty" toml:"manifest" yaml:"manifest"`
	IndividualDir string `json:"individual_dir,omitempty" toml:"individual_dir" yaml:"individual_dir"`
	Scale         int    `json:"scale,omitempty" toml:"scale" yaml:"scale"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-" yaml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// DefaultOptions returns the settings a fresh session starts with.
func DefaultOptions() Options {
	var o Options
	o.SetDefaults()
	return o
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Images are the loaded source images.
	Images []*atlas.SourceImage

	// Atlas is the build result, including its status.
	Atlas atlas.Result

	// Outputs lists every file written, atlas first.
	Outputs []string

	// Stats contains timing information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ImageCount int
	LoadTime   time.Duration
	BuildTime  time.Duration
	ExportTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateMode checks that a measurement mode is valid.
func ValidateMode(mode string) error {
	_, err := layout.ParseMode(mode)
	return err
}

// ValidatePacking checks that a packing strategy is valid.
func ValidatePacking(packing string) error {
	_, err := pack.ParseStrategy(packing)
	return err
}

// ValidateOutlineMode checks that an outline mode is valid.
func ValidateOutlineMode(mode string) error {
	_, err := outline.ParseMode(mode)
	return err
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills every zero-valued field with its default.
func (o *Options) SetDefaults() {
	if o.Mode == "" {
		o.Mode = ModeColumns
	}
	if o.Columns == 0 {
		o.Columns = DefaultColumns
	}
	if o.Rows == 0 {
		o.Rows = DefaultRows
	}
	if o.OutlineColor == "" {
		o.OutlineColor = DefaultOutlineColor
	}
	if o.OutlineMode == "" {
		o.OutlineMode = outline.Pixel.String()
	}
	if o.Packing == "" {
		o.Packing = PackingGrid
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks every option that can be checked without images.
func (o *Options) Validate() error {
	if _, err := o.Config(); err != nil {
		return err
	}
	if err := errors.ValidateRange("scale", o.Scale, raster.MinScale, raster.MaxScale); err != nil {
		return err
	}
	if o.Output != "" {
		if err := errors.ValidateOutputPath(o.Output); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults applies defaults and validates.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that an input was given.
func (o *Options) ValidateForLoad() error {
	if o.Input == "" && len(o.Files) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "an input directory or image files are required")
	}
	return nil
}

// ShouldAutoRaise reports whether column and row counts are raised to the
// minimum the loaded images need.
func (o *Options) ShouldAutoRaise() bool {
	return !o.NoAutoRaise
}

// Config converts the options to an atlas build configuration.
func (o *Options) Config() (atlas.Config, error) {
	mode, err := layout.ParseMode(o.Mode)
	if err != nil {
		return atlas.Config{}, err
	}
	strategy, err := pack.ParseStrategy(o.Packing)
	if err != nil {
		return atlas.Config{}, err
	}
	omode, err := outline.ParseMode(o.OutlineMode)
	if err != nil {
		return atlas.Config{}, err
	}
	color, err := ParseColor(o.OutlineColor)
	if err != nil {
		return atlas.Config{}, err
	}

	cfg := atlas.Config{
		Mode:    mode,
		Columns: o.Columns,
		Rows:    o.Rows,
		Padding: o.Padding,
		Outline: outline.Options{Thickness: o.OutlineThickness, Color: color, Mode: omode},
		Packing: strategy,
		MaxSize: layout.MaxSize,
	}
	if err := cfg.Validate(); err != nil {
		return atlas.Config{}, err
	}
	return cfg, nil
}

// Raise lifts Columns and Rows to the minimum the padded images need, as a
// fresh import does. It returns true when anything changed.
func (o *Options) Raise(images []*atlas.SourceImage) bool {
	sizes := atlas.Sizes(images, o.Padding)
	cols := max(o.Columns, layout.MinColumns(sizes, layout.MaxSize))
	rows := max(o.Rows, layout.MinRows(sizes, layout.MaxSize))
	changed := cols != o.Columns || rows != o.Rows
	o.Columns, o.Rows = cols, rows
	return changed
}

// IsTight reports whether tight packing is selected. Tight packing scans
// the whole canvas per image and is much slower on large atlases.
func (o *Options) IsTight() bool {
	return o.Packing == PackingTight
}

func (o Options) String() string {
	return fmt.Sprintf("%s=%d/%d padding=%d outline=%d/%s packing=%s scale=%d%%",
		o.Mode, o.Columns, o.Rows, o.Padding, o.OutlineThickness, o.OutlineMode, o.Packing, o.Scale)
}
