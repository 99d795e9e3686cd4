// Package io reads source images from disk and writes atlases, processed
// images, and placement manifests back out.
//
// # Import
//
// [LoadDir] loads every .png, .jpg, and .jpeg file directly inside a
// directory (subdirectories are not searched), sorted by file name.
// [LoadFiles] loads an explicit list. Decoding goes through
// github.com/disintegration/imaging with EXIF auto-orientation, so rotated
// camera JPEGs come in upright. Each image is named after its file without
// the extension.
//
// # Export
//
// [SavePNG] encodes a buffer as PNG. The file is written to a temporary
// sibling first and renamed into place, so a failed write never leaves a
// truncated atlas behind.
//
// [ExportIndividually] runs every source image through the same transform
// chain as the atlas build and saves each one as Texture_<i>.png, where i is
// the image's position in the input.
//
// # Manifest
//
// [WriteManifest] and [ExportManifest] describe a built atlas as JSON:
//
//	{
//	  "width": 30,
//	  "height": 20,
//	  "scale": 100,
//	  "images": [
//	    {"index": 0, "name": "grass", "x": 0, "y": 0, "width": 10, "height": 10}
//	  ]
//	}
//
// Coordinates are in unscaled canvas pixels with the origin at the top-left.
// [ReadManifest] decodes the same format.
package io
