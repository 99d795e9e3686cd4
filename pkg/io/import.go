package io

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/texatlas/pkg/atlas"
	"github.com/matzehuels/texatlas/pkg/errors"
	"github.com/matzehuels/texatlas/pkg/raster"
)

// LoadDir loads the supported images directly inside dir, sorted by name.
// A directory without images is an EMPTY_INPUT error.
func LoadDir(dir string) ([]*atlas.SourceImage, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "directory not found: %s", dir)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read directory %s", dir)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !errors.IsImageFile(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	if len(paths) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyInput, "No image files found in the selected folder.")
	}
	return LoadFiles(paths)
}

// LoadFiles loads the given image files in order.
func LoadFiles(paths []string) ([]*atlas.SourceImage, error) {
	images := make([]*atlas.SourceImage, 0, len(paths))
	for _, p := range paths {
		img, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

// LoadFile decodes a single image.
func LoadFile(path string) (*atlas.SourceImage, error) {
	if err := errors.ValidateImagePath(path); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "image not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "stat %s", path)
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", path)
	}
	return &atlas.SourceImage{Name: baseName(path), Image: raster.FromImage(img)}, nil
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
