// Package image provides utilities for loading and processing images.
package image

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP format
)

// ErrImageLoad is returned when an image is missing, unreadable or cannot be
// decoded. The underlying cause is wrapped.
var ErrImageLoad = errors.New("failed to load image")

// Loader handles loading images from various sources.
type Loader interface {
	// Load loads an image from the given path.
	Load(path string) (image.Image, error)
}

// FileLoader loads images from the local filesystem.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load loads an image from a file path.
// Supported formats: JPEG, PNG, GIF, WebP.
func (l *FileLoader) Load(path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: image path cannot be empty", ErrImageLoad)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: image file not found: %s", ErrImageLoad, path)
		}
		return nil, fmt.Errorf("%w: %w", ErrImageLoad, err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("%w: path is a directory, not a file: %s", ErrImageLoad, path)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImageLoad, err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s (format: %q): %w", ErrImageLoad, path, format, err)
	}

	return img, nil
}

// ValidateImagePath checks that path is a readable file in a supported format
// without decoding the pixel data.
func ValidateImagePath(path string) error {
	if path == "" {
		return fmt.Errorf("%w: image path cannot be empty", ErrImageLoad)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: image file not found: %s", ErrImageLoad, path)
		}
		return fmt.Errorf("%w: %w", ErrImageLoad, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: path is a directory, not a file: %s", ErrImageLoad, path)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return fmt.Errorf("%w: %w", ErrImageLoad, err)
	}
	defer file.Close()

	if _, _, err := image.DecodeConfig(file); err != nil {
		return fmt.Errorf("%w: unsupported or invalid image format: %w", ErrImageLoad, err)
	}
	return nil
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
}

// IsImageFile checks if a file has a supported image extension.
func IsImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(SupportedImageExtensions(), ext)
}

// Downscale returns img scaled so its longer side is at most maxSide pixels,
// or img itself if it is already small enough. Scaling uses an approximate
// bilinear filter, which keeps colour clusters intact.
func Downscale(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return img
	}

	if w >= h {
		h = max(h*maxSide/w, 1)
		w = maxSide
	} else {
		w = max(w*maxSide/h, 1)
		h = maxSide
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
