package pipeline

import (
	"encoding/json"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/texatlas/pkg/errors"
)

// LoadOptions reads options from a .toml, .yaml, .yml, or .json file.
// Defaults are not applied; fields the file does not set stay zero.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Options{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return Options{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "read config %s", path)
	}

	var opts Options
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &opts)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &opts)
	case ".json":
		err = json.Unmarshal(data, &opts)
	default:
		return Options{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported config format %q (must be toml, yaml or json)", ext)
	}
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}

	// Relative paths in a config file are relative to the file.
	base := filepath.Dir(path)
	opts.Input = resolve(base, opts.Input)
	opts.Output = resolve(base, opts.Output)
	opts.Manifest = resolve(base, opts.Manifest)
	opts.IndividualDir = resolve(base, opts.IndividualDir)
	for i, f := range opts.Files {
		opts.Files[i] = resolve(base, f)
	}
	return opts, nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// ParseColor parses #rrggbb or #rrggbbaa. The short form is fully opaque.
func ParseColor(s string) (color.NRGBA, error) {
	hex := s
	alpha := uint64(255)
	if len(s) == 9 && s[0] == '#' {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid color %q", s)
		}
		hex, alpha = s[:7], a
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid color %q (want #rrggbb or #rrggbbaa)", s)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(alpha)}, nil
}

// FormatColor is the inverse of ParseColor. Opaque colours use the short
// form.
func FormatColor(c color.NRGBA) string {
	hex := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
	if c.A == 255 {
		return hex
	}
	return hex + strconv.FormatUint(uint64(c.A)|0x100, 16)[1:]
}
