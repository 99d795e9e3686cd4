package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/texatlas/pkg/atlas"
	"github.com/matzehuels/texatlas/pkg/atlas/layout"
	texio "github.com/matzehuels/texatlas/pkg/io"
	"github.com/matzehuels/texatlas/pkg/pipeline"
)

// bounds are the limits a UI offers for the grid and padding settings.
type bounds struct {
	MinColumns  int
	MinRows     int
	MaxPadding  int
	MaxCropping int
}

func computeBounds(images []*atlas.SourceImage, opts pipeline.Options) bounds {
	raw := atlas.RawSizes(images)
	padded := atlas.Sizes(images, opts.Padding)
	cfg, err := opts.Config()
	b := bounds{
		MinColumns:  layout.MinColumns(padded, layout.MaxSize),
		MinRows:     layout.MinRows(padded, layout.MaxSize),
		MaxCropping: layout.MaxCropping(raw),
	}
	if err == nil {
		b.MaxPadding = layout.MaxPadding(raw, cfg.LayoutOptions())
	}
	return b
}

// layoutCommand creates the layout command for previewing placements
// without writing an atlas.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  atlasFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "layout [folder | image...]",
		Short: "Show where every image would be placed",
		Long: `Show where every image would be placed.

Runs the build without saving anything and prints the canvas size, the
placement of every image, and the bounds for the grid and padding settings:
the minimum columns and rows the images need, the largest padding that keeps
the atlas within 8192x8192, and the largest crop.

With --json the placement manifest is written to stdout instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd, args)
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), opts, asJSON)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the placement manifest as JSON")
	return cmd
}

func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, asJSON bool) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	runner := c.newRunner()
	images, err := runner.Load(ctx, &opts)
	if err != nil {
		return err
	}
	res := runner.Build(images, opts)

	if asJSON {
		if res.Canvas == nil {
			printStatus(res.Status)
			return res.Status.Err()
		}
		return texio.WriteManifest(res, opts.Scale, os.Stdout)
	}

	printStatus(res.Status)
	b := computeBounds(images, opts)
	printKeyValue("canvas", fmt.Sprintf("%dx%d", res.Width, res.Height))
	printKeyValue("settings", opts.String())
	printKeyValue("min columns", strconv.Itoa(b.MinColumns))
	printKeyValue("min rows", strconv.Itoa(b.MinRows))
	printKeyValue("max padding", strconv.Itoa(b.MaxPadding))
	printKeyValue("max cropping", strconv.Itoa(b.MaxCropping))
	if opts.IsTight() {
		printTightWarning(len(images))
	}
	if len(res.Placements) > 0 {
		printNewline()
		fmt.Println(placementTable(res.Placements).Render())
		printAtlasStats(res)
	}
	if !res.OK() {
		return res.Status.Err()
	}
	return nil
}

// placementTable renders placements as a bordered table.
func placementTable(placements []atlas.Placement) *table.Table {
	rows := make([][]string, len(placements))
	for i, p := range placements {
		rows[i] = []string{
			strconv.Itoa(p.Index),
			p.Name,
			fmt.Sprintf("%d,%d", p.X, p.Y),
			fmt.Sprintf("%dx%d", p.Width, p.Height),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Image", "Position", "Size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)
			}
			return lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1)
		})
}
