package colour

import (
	"fmt"
	"image"
)

// Extractor defines the interface for colour extraction algorithms.
type Extractor interface {
	// Extract extracts a colour palette from an image.
	// The count parameter specifies the number of colours to extract.
	Extract(img image.Image, count int) (*Palette, error)
}

// Algorithm represents the colour extraction algorithm type.
type Algorithm string

const (
	// AlgorithmKMeans uses the built-in seeded k-means clustering.
	AlgorithmKMeans Algorithm = "kmeans"

	// AlgorithmProminent uses the prominentcolor library (k-means++ in Lab space).
	AlgorithmProminent Algorithm = "prominent"
)

// MaxColourCount is the largest palette an extractor will produce.
const MaxColourCount = 256

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{
		AlgorithmKMeans,
		AlgorithmProminent,
	}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	for _, valid := range ValidAlgorithms() {
		if alg == valid {
			return true
		}
	}
	return false
}

// ExtractorOptions tunes extractor construction.
type ExtractorOptions struct {
	// Seed makes k-means deterministic. Nil means a random seed.
	Seed *int64
}

// NewExtractor creates a new Extractor based on the specified algorithm.
// Returns an error if the algorithm is not recognised.
func NewExtractor(alg Algorithm, opts ExtractorOptions) (Extractor, error) {
	switch alg {
	case AlgorithmKMeans:
		return NewKMeansExtractor(opts.Seed), nil
	case AlgorithmProminent:
		return NewProminentExtractor(), nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", alg, ValidAlgorithms())
	}
}

// ExtractorConfig holds configuration for colour extraction.
type ExtractorConfig struct {
	Algorithm  Algorithm
	ColorCount int
}

// DefaultExtractorConfig returns the default extractor configuration.
// Fifty candidates leave the distinctness filter room to pick sixteen.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		Algorithm:  AlgorithmKMeans,
		ColorCount: 50,
	}
}

// Validate validates the extractor configuration.
func (c ExtractorConfig) Validate() error {
	if !IsValidAlgorithm(c.Algorithm) {
		return fmt.Errorf("invalid algorithm: %s", c.Algorithm)
	}
	if c.ColorCount < 1 {
		return fmt.Errorf("color count must be at least 1, got %d", c.ColorCount)
	}
	if c.ColorCount > MaxColourCount {
		return fmt.Errorf("color count too large: %d (maximum: %d)", c.ColorCount, MaxColourCount)
	}
	return nil
}
