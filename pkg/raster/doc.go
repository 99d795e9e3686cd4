// Package raster provides the owned RGBA pixel buffer that every atlas stage
// operates on, plus the per-image geometric transforms.
//
// # Buffer
//
// A [Buffer] is a width × height grid of non-premultiplied RGBA pixels with
// its origin at the top-left corner. [New] returns a fully transparent
// buffer. [Buffer.Region] and [Buffer.SetRegion] read and write rectangular
// blocks and fail with OUT_OF_BOUNDS or SIZE_MISMATCH (see pkg/errors) when
// the caller breaks the contract. Buffers never resize; transforms allocate
// a fresh buffer and leave their input untouched, so a source image can be
// reused across any number of atlas builds.
//
// # Transforms
//
//   - [Pad] adds a transparent border (positive extent) or crops a border
//     symmetrically (negative extent).
//   - [Scale] resamples a buffer by a percentage for preview and export.
//
// Outline generation lives in the outline subpackage.
package raster
