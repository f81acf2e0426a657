package theme

import (
	"fmt"
	"image"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/base16gen/internal/base16"
	"github.com/jmylchreest/base16gen/internal/colour"
	imageutil "github.com/jmylchreest/base16gen/internal/image"
	"github.com/jmylchreest/base16gen/internal/render"
)

// Options configures a Generator.
type Options struct {
	// Algorithm selects the colour extractor. Defaults to k-means.
	Algorithm colour.Algorithm
	// Colours is the number of candidates extracted from the image.
	Colours int
	// Intensity narrows candidates to a band of brightness: 100 keeps
	// everything, lower values keep only the darkest (dark) or lightest
	// (light) colours.
	Intensity int
	// Strict fails with base16.ErrInsufficientPalette instead of padding.
	Strict bool
	// AccentOrder lays out base08-base0F.
	AccentOrder base16.AccentOrder
	// MaxImageSide downscales larger images before extraction. Zero disables.
	MaxImageSide int
	// Seed overrides the content-derived k-means seed.
	Seed *int64
	// Registry supplies templates. Nil uses the built-in templates.
	Registry *render.Registry
	// Logger receives warnings and debug output. Nil discards them.
	Logger hclog.Logger
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	cfg := colour.DefaultExtractorConfig()
	return Options{
		Algorithm:    cfg.Algorithm,
		Colours:      cfg.ColorCount,
		Intensity:    100,
		AccentOrder:  base16.AccentOrderLuminance,
		MaxImageSide: 512,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Algorithm == "" {
		o.Algorithm = def.Algorithm
	}
	if o.Colours == 0 {
		o.Colours = def.Colours
	}
	if o.Intensity == 0 {
		o.Intensity = def.Intensity
	}
	if o.AccentOrder == "" {
		o.AccentOrder = def.AccentOrder
	}
	if o.Logger == nil {
		o.Logger = hclog.NewNullLogger()
	}
	return o
}

// Validate checks option ranges.
func (o Options) Validate() error {
	cfg := colour.ExtractorConfig{Algorithm: o.Algorithm, ColorCount: o.Colours}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if o.Intensity < 1 || o.Intensity > 100 {
		return fmt.Errorf("intensity must be between 1 and 100, got %d", o.Intensity)
	}
	if _, err := base16.ParseAccentOrder(string(o.AccentOrder)); err != nil {
		return err
	}
	if o.MaxImageSide < 0 {
		return fmt.Errorf("max image side cannot be negative, got %d", o.MaxImageSide)
	}
	return nil
}

// Generator holds an image and its extracted colours and creates themes
// from them.
type Generator struct {
	img      image.Image
	palette  *colour.Palette
	opts     Options
	renderer *render.Renderer
	logger   hclog.Logger
}

// NewGenerator loads the image at imagePath and extracts its palette. Load
// failures wrap imageutil.ErrImageLoad.
func NewGenerator(imagePath string, opts Options) (*Generator, error) {
	if !imageutil.IsImageFile(imagePath) && opts.Logger != nil {
		opts.Logger.Named("generator").Warn("unrecognised image extension, decoding anyway",
			"path", imagePath, "supported", imageutil.SupportedImageExtensions())
	}
	img, err := imageutil.NewFileLoader().Load(imagePath)
	if err != nil {
		return nil, err
	}
	return NewGeneratorFromImage(img, opts)
}

// NewGeneratorFromImage extracts the palette of an already decoded image.
func NewGeneratorFromImage(img image.Image, opts Options) (*Generator, error) {
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger.Named("generator")

	// The seed comes from the full image so it does not depend on MaxImageSide.
	seed := colour.ContentSeed(img)
	if opts.Seed != nil {
		seed = *opts.Seed
	}

	src := img
	if opts.MaxImageSide > 0 {
		src = imageutil.Downscale(img, opts.MaxImageSide)
	}

	extractor, err := colour.NewExtractor(opts.Algorithm, colour.ExtractorOptions{Seed: &seed})
	if err != nil {
		return nil, err
	}
	palette, err := extractor.Extract(src, opts.Colours)
	if err != nil {
		return nil, fmt.Errorf("failed to extract colours: %w", err)
	}
	logger.Debug("extracted palette", "algorithm", opts.Algorithm, "colours", palette.Len(), "seed", seed, "hex", palette.ToHex())

	return &Generator{
		img:      img,
		palette:  palette,
		opts:     opts,
		renderer: render.NewRenderer(opts.Registry),
		logger:   logger,
	}, nil
}

// Image returns the source image.
func (g *Generator) Image() image.Image { return g.img }

// Palette returns the raw extracted palette.
func (g *Generator) Palette() *colour.Palette { return g.palette }

// ResolveVariant turns VariantAuto into dark or light from the image's
// dominant colour. Other variants are returned unchanged.
func (g *Generator) ResolveVariant(variant base16.Variant) base16.Variant {
	if variant != base16.VariantAuto {
		return variant
	}
	dominant, ok := colour.Dominant(g.palette)
	if ok && !colour.IsDark(dominant) {
		return base16.VariantLight
	}
	return base16.VariantDark
}

// CreateTheme maps the extracted colours onto a base16 palette for variant
// and renders it under name.
func (g *Generator) CreateTheme(name string, variant base16.Variant) (*Theme, error) {
	if err := render.ValidateName(name); err != nil {
		return nil, err
	}
	if variant == "" {
		variant = base16.VariantDark
	}
	resolved := g.ResolveVariant(variant)
	if resolved != variant {
		g.logger.Info("resolved variant from image", "variant", resolved)
	}

	colours := g.palette.ToRGBSlice()
	candidates := colour.FilterBand(colours, resolved.IsDark(), g.opts.Intensity)
	if variant == base16.VariantAuto {
		// The dominant colour chose the variant, so it also bounds the band.
		if dominant, ok := colour.Dominant(g.palette); ok {
			candidates = colour.FilterBandAround(colours, dominant, resolved.IsDark(), g.opts.Intensity)
		}
	}
	selected := colour.SelectDistinct(candidates, base16.SlotCount, resolved.IsDark())
	g.logger.Debug("selected colours", "candidates", len(candidates), "selected", len(selected))

	mapper := base16.Mapper{Strict: g.opts.Strict, AccentOrder: g.opts.AccentOrder}
	palette, err := mapper.Map(selected, resolved)
	if err != nil {
		return nil, err
	}
	if n := palette.Padded(); n > 0 {
		g.logger.Warn("palette padded with repeated colours", "distinct", base16.SlotCount-n, "padded", n)
	}

	return New(name, palette, g.renderer)
}
