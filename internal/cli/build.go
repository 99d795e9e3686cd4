package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/texatlas/pkg/errors"
	"github.com/matzehuels/texatlas/pkg/pipeline"
)

// buildCommand creates the build command, which runs the whole pipeline.
func (c *CLI) buildCommand() *cobra.Command {
	var flags atlasFlags

	cmd := &cobra.Command{
		Use:   "build [folder | image...]",
		Short: "Build a texture atlas and save it as PNG",
		Long: `Build a texture atlas and save it as PNG.

Pass a folder to use every .png, .jpg and .jpeg file directly inside it, sorted
by name, or list image files explicitly. Without arguments the input comes from
the config file.

Each image is outlined first, then padded (or cropped for negative padding),
then placed. Grid packing follows the column/row layout; tight packing places
the largest images first wherever they fit. Columns and rows are raised to the
minimum the images need unless --no-auto-raise is given.`,
		Example: `  texatlas build sprites/ -o atlas.png --columns 4 --padding 2
  texatlas build a.png b.png c.png --packing tight --manifest atlas.json
  texatlas build --config atlas.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd, args)
			if err != nil {
				return err
			}
			return c.runBuild(cmd.Context(), opts)
		},
	}

	flags.register(cmd)
	flags.registerExport(cmd)
	return cmd
}

// runBuild executes the pipeline and reports the outcome.
func (c *CLI) runBuild(ctx context.Context, opts pipeline.Options) error {
	if opts.IsTight() {
		c.Logger.Debug("tight packing selected")
	}

	spinner := newSpinnerWithContext(ctx, "Building atlas...")
	spinner.Start()
	result, err := c.newRunner().Execute(ctx, opts)
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		if result != nil && result.Atlas.Status.Code != "" && !result.Atlas.OK() {
			printStatus(result.Atlas.Status)
			return fmt.Errorf("build failed: %s", result.Atlas.Status.Code)
		}
		return err
	}

	if opts.IsTight() {
		printTightWarning(result.Stats.ImageCount)
	}
	printStatus(result.Atlas.Status)
	for _, path := range result.Outputs {
		printFile(path)
	}
	printAtlasStats(result.Atlas)
	printDetail("loaded in %s · built in %s · exported in %s",
		result.Stats.LoadTime.Round(time.Millisecond), result.Stats.BuildTime.Round(time.Millisecond), result.Stats.ExportTime.Round(time.Millisecond))

	if errors.Is(result.Atlas.Status.Err(), errors.ErrCodePackingExhausted) {
		printNewline()
		printNextStep("Try a grid layout", appName+" build "+quoteArgs(inputArgs(opts))+" --packing grid")
	}
	return nil
}

// inputArgs returns the positional arguments that reproduce opts' input.
func inputArgs(opts pipeline.Options) []string {
	if opts.Input != "" {
		return []string{opts.Input}
	}
	return opts.Files
}
