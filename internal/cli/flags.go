package cli

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/texatlas/pkg/pipeline"
)

// atlasFlags binds the build settings shared by build, export, layout, and
// tui to a pipeline.Options.
type atlasFlags struct {
	opts   pipeline.Options
	config string
}

// optionFlag copies one setting from a config file unless its flag was set.
type optionFlag struct {
	name string
	copy func(dst, src *pipeline.Options)
}

var buildFlags = []optionFlag{
	{"mode", func(d, s *pipeline.Options) { d.Mode = s.Mode }},
	{"columns", func(d, s *pipeline.Options) { d.Columns = s.Columns }},
	{"rows", func(d, s *pipeline.Options) { d.Rows = s.Rows }},
	{"padding", func(d, s *pipeline.Options) { d.Padding = s.Padding }},
	{"outline", func(d, s *pipeline.Options) { d.OutlineThickness = s.OutlineThickness }},
	{"outline-color", func(d, s *pipeline.Options) { d.OutlineColor = s.OutlineColor }},
	{"outline-mode", func(d, s *pipeline.Options) { d.OutlineMode = s.OutlineMode }},
	{"packing", func(d, s *pipeline.Options) { d.Packing = s.Packing }},
	{"no-auto-raise", func(d, s *pipeline.Options) { d.NoAutoRaise = s.NoAutoRaise }},
	{"scale", func(d, s *pipeline.Options) { d.Scale = s.Scale }},
}

var exportFlags = []optionFlag{
	{"output", func(d, s *pipeline.Options) { d.Output = s.Output }},
	{"manifest", func(d, s *pipeline.Options) { d.Manifest = s.Manifest }},
	{"individual", func(d, s *pipeline.Options) { d.IndividualDir = s.IndividualDir }},
}

// register adds the build flags to cmd.
func (f *atlasFlags) register(cmd *cobra.Command) {
	f.opts = pipeline.DefaultOptions()
	f.opts.Logger = nil

	fs := cmd.Flags()
	fs.StringVarP(&f.config, "config", "c", "", "config file (toml, yaml or json; default: $"+envConfig+")")
	fs.StringVar(&f.opts.Mode, "mode", f.opts.Mode, "measurement mode: columns (default), rows")
	fs.IntVar(&f.opts.Columns, "columns", f.opts.Columns, "images per row in columns mode")
	fs.IntVar(&f.opts.Rows, "rows", f.opts.Rows, "number of rows in rows mode")
	fs.IntVarP(&f.opts.Padding, "padding", "p", f.opts.Padding, "pixels added around each image (negative crops)")
	fs.IntVar(&f.opts.OutlineThickness, "outline", f.opts.OutlineThickness, "outline thickness in pixels (0-20)")
	fs.StringVar(&f.opts.OutlineColor, "outline-color", f.opts.OutlineColor, "outline color as #rrggbb or #rrggbbaa")
	fs.StringVar(&f.opts.OutlineMode, "outline-mode", f.opts.OutlineMode, "outline mode: pixel (default), gaussian")
	fs.StringVar(&f.opts.Packing, "packing", f.opts.Packing, "packing: grid (default), tight")
	fs.BoolVar(&f.opts.NoAutoRaise, "no-auto-raise", false, "keep columns/rows below the minimum the images need")
	fs.IntVarP(&f.opts.Scale, "scale", "s", f.opts.Scale, "export size in percent (1-100)")
}

// registerExport adds the output flags to cmd.
func (f *atlasFlags) registerExport(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.opts.Output, "output", "o", "", "atlas file (default: "+pipeline.DefaultOutput+")")
	fs.StringVarP(&f.opts.Manifest, "manifest", "m", "", "also write a JSON manifest of placements")
	fs.StringVar(&f.opts.IndividualDir, "individual", "", "also save every processed image into this directory")
}

// resolve merges the config file (if any) under the flags the user set and
// fills in the input from args.
func (f *atlasFlags) resolve(cmd *cobra.Command, args []string) (pipeline.Options, error) {
	opts := f.opts

	path := f.config
	if path == "" {
		path = configFromEnv()
	}
	if path != "" {
		file, err := pipeline.LoadOptions(path)
		if err != nil {
			return pipeline.Options{}, err
		}
		merge(cmd.Flags(), &opts, &file, buildFlags)
		merge(cmd.Flags(), &opts, &file, exportFlags)
		if len(args) == 0 {
			opts.Input, opts.Files = file.Input, file.Files
		}
	}

	if len(args) > 0 {
		opts.Input, opts.Files = inputFromArgs(args)
	}
	if ctx := cmd.Context(); ctx != nil {
		opts.Logger = loggerFromContext(ctx)
	}
	return opts, nil
}

// merge copies every setting whose flag exists on fs but was not changed.
// Zero values in the file leave the flag default in place.
func merge(fs *pflag.FlagSet, dst, file *pipeline.Options, flags []optionFlag) {
	for _, f := range flags {
		if fs.Lookup(f.name) == nil || fs.Changed(f.name) {
			continue
		}
		merged := *dst
		f.copy(&merged, file)
		merged.SetDefaults()
		f.copy(dst, &merged)
	}
}

// inputFromArgs treats a single directory argument as the input folder and
// anything else as a list of image files.
func inputFromArgs(args []string) (string, []string) {
	if len(args) == 1 && isDir(args[0]) {
		return args[0], nil
	}
	return "", args
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
