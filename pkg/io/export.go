package io

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/matzehuels/texatlas/pkg/atlas"
	"github.com/matzehuels/texatlas/pkg/errors"
	"github.com/matzehuels/texatlas/pkg/raster"
)

// SavePNG writes buf to path as PNG, creating parent directories as needed.
func SavePNG(path string, buf *raster.Buffer) error {
	if buf == nil {
		return errors.New(errors.ErrCodeInvalidInput, "No texture atlas to save!")
	}
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	return writeAtomic(path, func(f *os.File) error {
		return imaging.Encode(f, buf.Image(), imaging.PNG)
	})
}

// ExportIndividually processes every image with cfg, scales it to percent,
// and saves it as dir/Texture_<i>.png. It returns the written paths.
func ExportIndividually(dir string, images []*atlas.SourceImage, cfg atlas.Config, percent int) ([]string, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := errors.ValidateRange("scale", percent, raster.MinScale, raster.MaxScale); err != nil {
		return nil, err
	}
	if err := atlas.CheckImages(images, cfg); err != nil {
		return nil, err
	}

	var written []string
	for i, img := range images {
		if img == nil || img.Image == nil {
			continue
		}
		processed, err := atlas.Process(img.Image, cfg)
		if err != nil {
			return written, err
		}
		scaled, err := raster.Scale(processed, percent)
		if err != nil {
			return written, err
		}
		path := filepath.Join(dir, fmt.Sprintf("Texture_%d.png", i))
		if err := SavePNG(path, scaled); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	if len(written) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyInput, "No textures selected!")
	}
	return written, nil
}

// writeAtomic calls write on a temporary file next to path and renames it
// into place once write and close succeed.
func writeAtomic(path string, write func(*os.File) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
