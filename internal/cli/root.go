package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/texatlas/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Texatlas packs images into texture atlases",
		Long: `Texatlas combines a folder of images into a single texture atlas.

Images can be outlined, padded or cropped, laid out on a column or row grid,
or tightly packed, and the result is exported as PNG together with an optional
JSON manifest of where every image ended up.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.completionCommand())

	return root
}
