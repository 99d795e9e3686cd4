// Package pkg provides the core libraries for texatlas texture atlas
// generation.
//
// # Overview
//
// texatlas combines a set of sprite images into one atlas image plus an
// optional JSON manifest of where each sprite landed. The pkg directory is
// organized into these areas:
//
//  1. [raster] - RGBA pixel buffers: padding, cropping, scaling, outlines
//  2. [atlas] - Domain logic (layout, packing, atlas assembly)
//  3. [io] - Image decoding, PNG and manifest export
//  4. [pipeline] - Orchestration (load → build → export)
//  5. [errors] - Coded errors shared by every stage
//
// # Architecture
//
// The typical data flow through texatlas:
//
//	Image folder or file list
//	         ↓
//	    [io] package (decode to RGBA buffers)
//	         ↓
//	    [raster/outline] + [raster] (outline, pad or crop)
//	         ↓
//	    [atlas/layout] package (row-major rectangles)
//	         ↓
//	    [atlas/pack] package (grid or tight placement)
//	         ↓
//	    PNG atlas / JSON manifest / individual PNGs
//
// # Quick Start
//
// Build an atlas from a folder:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/texatlas/pkg/pipeline"
//	)
//
//	opts := pipeline.DefaultOptions()
//	opts.Input = "sprites/"
//	opts.Output = "atlas.png"
//	opts.Manifest = "atlas.json"
//	result, err := pipeline.NewRunner(nil).Execute(context.Background(), opts)
//
// Or drive the stages yourself:
//
//	images, _ := io.LoadDir("sprites/")
//	cfg := atlas.DefaultConfig()
//	cfg.Padding = 2
//	res := atlas.Build(images, cfg)
//	if res.OK() {
//	    _ = io.SavePNG("atlas.png", res.Canvas)
//	}
//
// [raster]: https://pkg.go.dev/github.com/matzehuels/texatlas/pkg/raster
// [raster/outline]: https://pkg.go.dev/github.com/matzehuels/texatlas/pkg/raster/outline
// [atlas]: https://pkg.go.dev/github.com/matzehuels/texatlas/pkg/atlas
// [atlas/layout]: https://pkg.go.dev/github.com/matzehuels/texatlas/pkg/atlas/layout
// [atlas/pack]: https://pkg.go.dev/github.com/matzehuels/texatlas/pkg/atlas/pack
// [io]: https://pkg.go.dev/github.com/matzehuels/texatlas/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/texatlas/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/texatlas/pkg/errors
package pkg
