package image

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, dir string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}

	path := filepath.Join(dir, "test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileLoader_Load(t *testing.T) {
	dir := t.TempDir()
	good := writePNG(t, dir, 10, 6)

	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"valid png", good, false},
		{"empty path", "", true},
		{"missing file", filepath.Join(dir, "missing.png"), true},
		{"directory", dir, true},
		{"corrupt file", garbage, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := NewFileLoader().Load(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrImageLoad) {
					t.Errorf("Load() error = %v, want ErrImageLoad", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if b := img.Bounds(); b.Dx() != 10 || b.Dy() != 6 {
				t.Errorf("Load() bounds = %v", b)
			}
		})
	}
}

func TestValidateImagePath(t *testing.T) {
	dir := t.TempDir()
	if err := ValidateImagePath(writePNG(t, dir, 2, 2)); err != nil {
		t.Errorf("ValidateImagePath(valid) error = %v", err)
	}
	if err := ValidateImagePath(filepath.Join(dir, "nope.jpg")); !errors.Is(err, ErrImageLoad) {
		t.Errorf("ValidateImagePath(missing) error = %v", err)
	}
}

func TestIsImageFile(t *testing.T) {
	for path, want := range map[string]bool{
		"a.PNG":  true,
		"b.webp": true,
		"c.txt":  false,
		"noext":  false,
	} {
		if got := IsImageFile(path); got != want {
			t.Errorf("IsImageFile(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestDownscale(t *testing.T) {
	tests := []struct {
		name         string
		w, h, max    int
		wantW, wantH int
	}{
		{"already small", 100, 50, 200, 100, 50},
		{"landscape", 400, 200, 100, 100, 50},
		{"portrait", 200, 400, 100, 50, 100},
		{"disabled", 400, 200, 0, 400, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := image.NewRGBA(image.Rect(0, 0, tt.w, tt.h))
			got := Downscale(src, tt.max).Bounds()
			if got.Dx() != tt.wantW || got.Dy() != tt.wantH {
				t.Errorf("Downscale() = %dx%d, want %dx%d", got.Dx(), got.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}
