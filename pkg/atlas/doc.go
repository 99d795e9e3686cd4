// Package atlas combines several source images into one texture atlas.
//
// A build runs four stages, all synchronously and without caching:
//
//  1. Process: every present source image gets its outline (if any) and is
//     then padded or cropped. See [Process].
//  2. Layout: the processed sizes go through the flow layout in
//     pkg/atlas/layout, which fixes the canvas size.
//  3. Pack: the processed images are written to a fresh transparent canvas,
//     either at their layout rectangles or by tight first-fit packing.
//  4. The caller may downscale the canvas with [Result.Scaled].
//
// [Build] never returns a Go error. It returns a [Result] whose [Status]
// says whether the build succeeded and, if not, why. A tight-packing failure
// still carries the partial canvas.
//
// Source images are only read. Every call rebuilds everything from scratch,
// so the same images can be rebuilt with any number of configurations.
package atlas
