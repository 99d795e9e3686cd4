package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/texatlas/pkg/atlas"
	"github.com/matzehuels/texatlas/pkg/errors"
)

// Manifest is the JSON description of a built atlas.
type Manifest struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Scale  int     `json:"scale"`
	Images []Entry `json:"images"`
}

// Entry is one placed image.
type Entry struct {
	Index  int    `json:"index"`
	Name   string `json:"name,omitempty"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// NewManifest describes res. scale records the percentage the atlas image
// was exported at; coordinates stay unscaled.
func NewManifest(res atlas.Result, scale int) Manifest {
	m := Manifest{
		Width:  res.Width,
		Height: res.Height,
		Scale:  scale,
		Images: make([]Entry, len(res.Placements)),
	}
	for i, p := range res.Placements {
		m.Images[i] = Entry{Index: p.Index, Name: p.Name, X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}
	}
	return m
}

// WriteManifest encodes the manifest of res as indented JSON to w.
func WriteManifest(res atlas.Result, scale int, w io.Writer) error {
	if res.Canvas == nil {
		return errors.New(errors.ErrCodeInvalidInput, "No texture atlas to save!")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewManifest(res, scale)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportManifest writes the manifest of res to path.
func ExportManifest(res atlas.Result, scale int, path string) error {
	if res.Canvas == nil {
		return errors.New(errors.ErrCodeInvalidInput, "No texture atlas to save!")
	}
	return writeAtomic(path, func(f *os.File) error {
		return WriteManifest(res, scale, f)
	})
}

// ReadManifest decodes a manifest from r.
func ReadManifest(r io.Reader) (Manifest, error) {
	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return Manifest{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode manifest")
	}
	return m, nil
}
