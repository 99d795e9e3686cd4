package atlas

import (
	"image/color"

	"github.com/matzehuels/texatlas/pkg/atlas/layout"
	"github.com/matzehuels/texatlas/pkg/atlas/pack"
	"github.com/matzehuels/texatlas/pkg/errors"
	"github.com/matzehuels/texatlas/pkg/raster/outline"
)

// Config holds every setting of an atlas build.
type Config struct {
	Mode    layout.Mode
	Columns int
	Rows    int

	// Padding extends (positive) or crops (negative) every image on all
	// four sides.
	Padding int

	Outline outline.Options
	Packing pack.Strategy

	// MaxSize bounds the canvas on both axes. Zero means layout.MaxSize;
	// it may lower the limit but never raise it.
	MaxSize int
}

// DefaultConfig returns the settings a fresh session starts with.
func DefaultConfig() Config {
	return Config{
		Mode:    layout.Columns,
		Columns: 3,
		Rows:    3,
		Outline: outline.Options{Color: color.NRGBA{A: 255}, Mode: outline.Pixel},
		Packing: pack.StrategyGrid,
		MaxSize: layout.MaxSize,
	}
}

// LayoutOptions returns the layout-engine view of c.
func (c Config) LayoutOptions() layout.Options {
	return layout.Options{Mode: c.Mode, Columns: c.Columns, Rows: c.Rows, MaxSize: c.MaxSize}
}

// Limit returns the effective canvas limit.
func (c Config) Limit() int {
	if c.MaxSize <= 0 {
		return layout.MaxSize
	}
	return c.MaxSize
}

// Validate checks ranges that do not depend on the images.
func (c Config) Validate() error {
	if c.MaxSize > layout.MaxSize {
		return errors.New(errors.ErrCodeInvalidConfig, "max size %d exceeds the %d limit", c.MaxSize, layout.MaxSize)
	}
	if err := c.LayoutOptions().Validate(); err != nil {
		return err
	}
	if err := c.Outline.Validate(); err != nil {
		return err
	}
	limit := c.Limit()
	if err := errors.ValidateRange("padding", c.Padding, -limit/2, limit/2); err != nil {
		return err
	}
	switch c.Packing {
	case pack.StrategyGrid, pack.StrategyTight:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown packing strategy %d", c.Packing)
	}
	return nil
}
