package colour

import (
	"fmt"
	"image"
	"image/color"

	"github.com/EdlinOrg/prominentcolor"

	"github.com/jmylchreest/base16gen/internal/security"
)

// ProminentExtractor delegates extraction to the prominentcolor library.
// It clusters in Lab space without background masking so dark and light
// backdrops stay available for the background slots.
type ProminentExtractor struct {
	arguments  int
	resizeSize uint
}

// NewProminentExtractor creates a ProminentExtractor with default settings.
func NewProminentExtractor() *ProminentExtractor {
	return &ProminentExtractor{
		arguments:  prominentcolor.ArgumentNoCropping | prominentcolor.ArgumentLAB,
		resizeSize: prominentcolor.DefaultSize,
	}
}

// Extract returns up to count prominent colours ordered by pixel count.
func (e *ProminentExtractor) Extract(img image.Image, count int) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if count < 1 || count > MaxColourCount {
		return nil, fmt.Errorf("color count must be between 1 and %d, got %d", MaxColourCount, count)
	}

	items, err := prominentcolor.KmeansWithAll(count, img, e.arguments, e.resizeSize, []prominentcolor.ColorBackgroundMask{})
	if err != nil {
		return nil, fmt.Errorf("prominentcolor: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no colours found in image")
	}

	total := 0
	for _, item := range items {
		total += item.Cnt
	}

	colors := make([]color.Color, len(items))
	weights := make([]float64, len(items))
	for i, item := range items {
		colors[i] = RGB{
			R: security.SafeUint8FromUint32(item.Color.R),
			G: security.SafeUint8FromUint32(item.Color.G),
			B: security.SafeUint8FromUint32(item.Color.B),
		}
		if total > 0 {
			weights[i] = float64(item.Cnt) / float64(total)
		}
	}

	return NewPaletteWithWeights(colors, weights), nil
}
