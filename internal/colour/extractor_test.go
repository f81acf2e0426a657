package colour

import (
	"image"
	"image/color"
	"testing"
)

// stripes builds a width x height image of equal vertical bands.
func stripes(width, height int, bands ...color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		c := bands[x*len(bands)/width]
		for y := 0; y < height; y++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// gradient builds an image with many distinct colours.
func gradient(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{
				R: uint8(x * 255 / width),
				G: uint8(y * 255 / height),
				B: uint8((x + y) * 255 / (width + height)),
				A: 255,
			})
		}
	}
	return img
}

func TestNewExtractor(t *testing.T) {
	tests := []struct {
		alg     Algorithm
		wantErr bool
	}{
		{AlgorithmKMeans, false},
		{AlgorithmProminent, false},
		{Algorithm("median-cut"), true},
	}

	for _, tt := range tests {
		t.Run(string(tt.alg), func(t *testing.T) {
			ex, err := NewExtractor(tt.alg, ExtractorOptions{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewExtractor() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && ex == nil {
				t.Fatal("NewExtractor() returned nil extractor")
			}
		})
	}
}

func TestExtractorConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ExtractorConfig
		wantErr bool
	}{
		{"default", DefaultExtractorConfig(), false},
		{"zero count", ExtractorConfig{Algorithm: AlgorithmKMeans}, true},
		{"too many", ExtractorConfig{Algorithm: AlgorithmKMeans, ColorCount: MaxColourCount + 1}, true},
		{"bad algorithm", ExtractorConfig{Algorithm: "nope", ColorCount: 8}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestKMeansReturnsAllUniqueColours(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	img := stripes(30, 10, red, red, blue)

	palette, err := NewKMeansExtractor(nil).Extract(img, 8)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if palette.Len() != 2 {
		t.Fatalf("Extract() returned %d colours, want 2", palette.Len())
	}
	if got := ToRGB(palette.Colors[0]); got != (RGB{R: 255}) {
		t.Errorf("heaviest colour = %s, want #ff0000", got.Hex())
	}
	if palette.Weights[0] <= palette.Weights[1] {
		t.Errorf("weights not descending: %v", palette.Weights)
	}
}

func TestKMeansSeededIsDeterministic(t *testing.T) {
	img := gradient(64, 64)
	seed := ContentSeed(img)

	first, err := NewKMeansExtractor(&seed).Extract(img, 12)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	second, err := NewKMeansExtractor(&seed).Extract(img, 12)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	a, b := first.ToHex(), second.ToHex()
	if len(a) != 12 || len(b) != 12 {
		t.Fatalf("got %d and %d colours, want 12", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("colour %d differs between seeded runs: %s vs %s", i, a[i], b[i])
		}
	}
}

func TestKMeansRejectsBadInput(t *testing.T) {
	ex := NewKMeansExtractor(nil)
	if _, err := ex.Extract(nil, 4); err == nil {
		t.Error("Extract(nil) should fail")
	}
	if _, err := ex.Extract(gradient(4, 4), 0); err == nil {
		t.Error("Extract(count=0) should fail")
	}
	if _, err := ex.Extract(image.NewRGBA(image.Rect(0, 0, 0, 0)), 4); err == nil {
		t.Error("Extract(empty image) should fail")
	}
}

func TestContentSeed(t *testing.T) {
	a := gradient(32, 32)
	b := gradient(32, 32)
	c := stripes(32, 32, color.Black, color.White)

	if ContentSeed(a) != ContentSeed(b) {
		t.Error("identical images produced different seeds")
	}
	if ContentSeed(a) == ContentSeed(c) {
		t.Error("different images produced the same seed")
	}
}
