package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/texatlas/pkg/errors"
	texio "github.com/matzehuels/texatlas/pkg/io"
	"github.com/matzehuels/texatlas/pkg/pipeline"
)

// exportCommand creates the export command, which saves every processed
// image on its own instead of building an atlas.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		flags atlasFlags
		dir   string
	)

	cmd := &cobra.Command{
		Use:   "export [folder | image...]",
		Short: "Save every processed image as its own PNG",
		Long: `Save every processed image as its own PNG.

Each image goes through the same outline and padding steps as in an atlas
build, is resized by --scale, and is written as Texture_<n>.png where n is
its position in the input.`,
		Example: `  texatlas export sprites/ -d out/ --outline 2 --outline-color "#ff0000"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd, args)
			if err != nil {
				return err
			}
			return c.runExport(cmd.Context(), opts, dir)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "output directory")
	return cmd
}

func (c *CLI) runExport(ctx context.Context, opts pipeline.Options, dir string) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	runner := c.newRunner()
	prog := newProgress(c.Logger)

	images, err := runner.Load(ctx, &opts)
	if err != nil {
		return err
	}
	cfg, err := opts.Config()
	if err != nil {
		return err
	}

	if opts.Scale < pipeline.DefaultScale {
		printInfo("Scaling each image to %d%%", opts.Scale)
	}
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Exporting %d images...", len(images)))
	spinner.Start()
	paths, err := texio.ExportIndividually(dir, images, cfg, opts.Scale)
	if err != nil {
		spinner.StopWithError(errors.UserMessage(err))
		for _, p := range paths {
			printFile(p)
		}
		return err
	}
	spinner.StopWithSuccess("All textures saved individually.")
	for _, p := range paths {
		printFile(p)
	}
	prog.done(fmt.Sprintf("Exported %d images", len(paths)))
	return nil
}
