package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/texatlas/pkg/atlas"
	"github.com/matzehuels/texatlas/pkg/errors"
	"github.com/matzehuels/texatlas/pkg/observability"
	texio "github.com/matzehuels/texatlas/pkg/io"
)

// Runner executes the pipeline stages and logs their timings.
//
// The Runner is stateless except for the logger - it doesn't store pipeline
// results. Multiple goroutines can safely use the same Runner with different
// options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger uses log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete load → build → export pipeline.
//
// A tight-packing failure is not returned as an error: the partial atlas is
// still exported and Result.Atlas.Status carries the reason. Every other
// build failure is returned as an error, with the result describing how far
// the run got.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	images, err := r.Load(ctx, &opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Images = images
	result.Stats.ImageCount = len(images)
	result.Stats.LoadTime = time.Since(loadStart)

	// Stage 2: Build
	if err := ctx.Err(); err != nil {
		return result, err
	}
	buildStart := time.Now()
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, len(images), opts.Packing)
	result.Atlas = r.Build(images, opts)
	result.Stats.BuildTime = time.Since(buildStart)
	buildErr := result.Atlas.Status.Err()
	hooks.OnBuildComplete(ctx, result.Atlas.Width, result.Atlas.Height, result.Stats.BuildTime, buildErr)
	if buildErr != nil && !errors.Is(buildErr, errors.ErrCodePackingExhausted) {
		return result, fmt.Errorf("build: %w", buildErr)
	}

	// Stage 3: Export
	if err := ctx.Err(); err != nil {
		return result, err
	}
	exportStart := time.Now()
	outputs, err := r.Export(ctx, result.Atlas, images, opts)
	result.Outputs = outputs
	result.Stats.ExportTime = time.Since(exportStart)
	if err != nil {
		return result, fmt.Errorf("export: %w", err)
	}

	return result, nil
}

// Load decodes the configured images and, unless disabled, raises the
// column and row counts in opts to what the images need.
func (r *Runner) Load(ctx context.Context, opts *Options) ([]*atlas.SourceImage, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	r.applyLogger(opts)

	source := opts.Input
	if source == "" {
		source = fmt.Sprintf("%d files", len(opts.Files))
	}
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, source)

	start := time.Now()
	var (
		images []*atlas.SourceImage
		err    error
	)
	if opts.Input != "" {
		images, err = texio.LoadDir(opts.Input)
	} else {
		images, err = texio.LoadFiles(opts.Files)
	}
	hooks.OnLoadComplete(ctx, source, len(images), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	opts.Logger.Info(fmt.Sprintf("%d images loaded.", len(images)), "duration", time.Since(start))

	if opts.ShouldAutoRaise() {
		before := [2]int{opts.Columns, opts.Rows}
		if opts.Raise(images) {
			opts.Logger.Debug("raised grid to fit images",
				"columns", fmt.Sprintf("%d→%d", before[0], opts.Columns),
				"rows", fmt.Sprintf("%d→%d", before[1], opts.Rows))
		}
	}
	return images, ctx.Err()
}

// Build assembles the atlas. Internal errors are logged at error level;
// everything else is left to the caller via the result status.
func (r *Runner) Build(images []*atlas.SourceImage, opts Options) atlas.Result {
	r.applyLogger(&opts)
	opts.SetDefaults()
	cfg, err := opts.Config()
	if err != nil {
		return atlas.Result{Status: atlas.Status{Code: errors.GetCode(err), Message: errors.UserMessage(err)}}
	}

	start := time.Now()
	res := atlas.Build(images, cfg)
	switch {
	case res.OK():
		opts.Logger.Info("built atlas",
			"images", len(res.Placements),
			"size", fmt.Sprintf("%dx%d", res.Width, res.Height),
			"packing", cfg.Packing,
			"duration", time.Since(start))
	case res.Status.Code == errors.ErrCodeInternal:
		opts.Logger.Error("atlas build failed", "err", res.Status.Message)
	default:
		opts.Logger.Debug("atlas build rejected", "code", res.Status.Code, "reason", res.Status.Message)
	}
	return res
}

// Export writes the atlas at opts.Scale percent, then the manifest and the
// individual images when configured. It returns the written paths.
func (r *Runner) Export(ctx context.Context, res atlas.Result, images []*atlas.SourceImage, opts Options) (outputs []string, err error) {
	r.applyLogger(&opts)
	opts.SetDefaults()

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnExportStart(ctx, opts.targets())
	defer func() {
		hooks.OnExportComplete(ctx, outputs, time.Since(start), err)
	}()
	return r.export(ctx, res, images, opts)
}

func (r *Runner) export(ctx context.Context, res atlas.Result, images []*atlas.SourceImage, opts Options) ([]string, error) {
	output := opts.output()
	scaled, err := res.Scaled(opts.Scale)
	if err != nil {
		return nil, err
	}
	if err := texio.SavePNG(output, scaled); err != nil {
		return nil, err
	}
	outputs := []string{output}
	opts.Logger.Info("Texture saved to: "+output, "size", fmt.Sprintf("%dx%d", scaled.Width(), scaled.Height()))

	if opts.Manifest != "" {
		if err := texio.ExportManifest(res, opts.Scale, opts.Manifest); err != nil {
			return outputs, err
		}
		outputs = append(outputs, opts.Manifest)
		opts.Logger.Debug("wrote manifest", "path", opts.Manifest)
	}

	if opts.IndividualDir != "" {
		if err := ctx.Err(); err != nil {
			return outputs, err
		}
		cfg, err := opts.Config()
		if err != nil {
			return outputs, err
		}
		paths, err := texio.ExportIndividually(opts.IndividualDir, images, cfg, opts.Scale)
		outputs = append(outputs, paths...)
		if err != nil {
			return outputs, err
		}
		opts.Logger.Info("All textures saved individually.", "count", len(paths), "dir", opts.IndividualDir)
	}
	return outputs, nil
}

func (o Options) output() string {
	if o.Output == "" {
		return DefaultOutput
	}
	return o.Output
}

// targets lists the paths an export will write, individual images excluded.
func (o Options) targets() []string {
	t := []string{o.output()}
	if o.Manifest != "" {
		t = append(t, o.Manifest)
	}
	if o.IndividualDir != "" {
		t = append(t, o.IndividualDir)
	}
	return t
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
