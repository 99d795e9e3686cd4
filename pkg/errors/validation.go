package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// imageExts lists the file extensions accepted for import.
var imageExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

// IsImageFile reports whether path has an importable image extension.
// The check is case-insensitive.
func IsImageFile(path string) bool {
	return imageExts[strings.ToLower(filepath.Ext(path))]
}

// ValidateImagePath validates a source image path for import.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Extension must be .png, .jpg or .jpeg
func ValidateImagePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "image path cannot be empty")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "image path contains invalid characters")
		}
	}
	if !IsImageFile(path) {
		return New(ErrCodeInvalidFormat, "unsupported image format %q (must be png, jpg or jpeg)", filepath.Ext(path))
	}
	return nil
}

// ValidateOutputPath validates a PNG output path.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".png" {
		return New(ErrCodeInvalidFormat, "output must be a .png file, got %q", ext)
	}
	return nil
}

// ValidateRange checks that v lies within [min, max] and names the setting
// in the error.
func ValidateRange(name string, v, min, max int) error {
	if v < min || v > max {
		return New(ErrCodeInvalidConfig, "%s must be between %d and %d, got %d", name, min, max, v)
	}
	return nil
}
