package theme

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path"
	"time"

	"golang.org/x/image/draw"

	"github.com/jmylchreest/base16gen/internal/base16"
	"github.com/jmylchreest/base16gen/internal/bundle"
	"github.com/jmylchreest/base16gen/internal/render"
)

// ManifestFilename is the bundle entry describing the theme's palette.
const ManifestFilename = "theme.json"

// ErrInvalidBundle is returned when an archive holds no usable theme manifest.
var ErrInvalidBundle = errors.New("invalid theme bundle")

// manifest is the palette record stored alongside the rendered files.
type manifest struct {
	Name    string          `json:"name"`
	Variant base16.Variant  `json:"variant"`
	Palette *base16.Palette `json:"palette"`
}

// manifestIn mirrors manifest for decoding; slots arrive as hex strings.
type manifestIn struct {
	Name    string            `json:"name"`
	Variant base16.Variant    `json:"variant"`
	Palette map[string]string `json:"palette"`
}

// Bundle writes every rendered file into an archive at path, together with
// a theme.json manifest holding the palette. The archive format follows the
// extension (.tar.xz, .tar.gz or .zip) and entries live under a directory
// named after the theme.
func (t *Theme) Bundle(archivePath string) error {
	return t.BundleAt(archivePath, time.Now())
}

// BundleAt is Bundle with a fixed modification time for every entry.
func (t *Theme) BundleAt(archivePath string, modTime time.Time) error {
	files := make([]bundle.File, 0, len(t.outputs)+1)
	for _, o := range t.outputs {
		files = append(files, bundle.File{
			Name:    path.Join(t.name, o.Filename),
			Content: []byte(o.Content),
		})
	}
	data, err := json.MarshalIndent(manifest{Name: t.name, Variant: t.Variant(), Palette: t.palette}, "", "  ")
	if err != nil {
		return &FileWriteError{Format: "bundle", Path: archivePath, Err: err}
	}
	files = append(files, bundle.File{
		Name:    path.Join(t.name, ManifestFilename),
		Content: append(data, '\n'),
	})
	if err := bundle.WriteFile(archivePath, files, modTime); err != nil {
		return &FileWriteError{Format: "bundle", Path: archivePath, Err: err}
	}
	return nil
}

// LoadBundle reads an archive written by Bundle and rebuilds the theme from
// its manifest, rendering it again through renderer (nil uses the built-in
// templates). The padded slot count is not stored and reads back as zero.
func LoadBundle(archivePath string, renderer *render.Renderer) (*Theme, error) {
	format, err := bundle.FormatFromPath(archivePath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(archivePath) // #nosec G304 - user-specified bundle path
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle: %w", err)
	}
	files, err := bundle.Read(data, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBundle, err)
	}

	for _, f := range files {
		if path.Base(f.Name) != ManifestFilename {
			continue
		}
		var m manifestIn
		if err := json.Unmarshal(f.Content, &m); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidBundle, f.Name, err)
		}
		palette, err := base16.NewPaletteFromHex(m.Palette, m.Variant)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidBundle, f.Name, err)
		}
		return New(m.Name, palette, renderer)
	}
	return nil, fmt.Errorf("%w: no %s in %s", ErrInvalidBundle, ManifestFilename, archivePath)
}

// Quantize redraws img using only the sixteen theme colours.
func (t *Theme) Quantize(img image.Image, dither bool) *image.Paletted {
	pal := make(color.Palette, 0, len(t.palette.Colours()))
	for _, c := range t.palette.Colours() {
		pal = append(pal, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
	}

	bounds := img.Bounds()
	dst := image.NewPaletted(image.Rect(0, 0, bounds.Dx(), bounds.Dy()), pal)
	var drawer draw.Drawer = draw.Src
	if dither {
		drawer = draw.FloydSteinberg
	}
	drawer.Draw(dst, dst.Bounds(), img, bounds.Min)
	return dst
}

// PreviewImage writes img, re-quantised to the theme colours, as a PNG.
func (t *Theme) PreviewImage(img image.Image, pngPath string, dither bool) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, t.Quantize(img, dither)); err != nil {
		return fmt.Errorf("failed to encode preview image: %w", err)
	}
	if _, err := writeFileAtomic(pngPath, buf.Bytes(), false); err != nil {
		return &FileWriteError{Format: "preview", Path: pngPath, Err: err}
	}
	return nil
}
