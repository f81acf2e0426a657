package colour

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const defaultSwatchWidth = 8

// ColourMode selects whether swatches carry terminal colour codes.
type ColourMode string

const (
	// ColourAuto detects colour support from the output writer.
	ColourAuto ColourMode = "auto"
	// ColourAlways forces 24-bit colour output.
	ColourAlways ColourMode = "always"
	// ColourNever emits plain text.
	ColourNever ColourMode = "never"
)

// ParseColourMode parses a --color flag value. Empty means auto.
func ParseColourMode(s string) (ColourMode, error) {
	switch m := ColourMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "", ColourAuto:
		return ColourAuto, nil
	case ColourAlways, ColourNever:
		return m, nil
	default:
		return "", fmt.Errorf("invalid colour mode %q (valid: auto, always, never)", s)
	}
}

// Swatcher renders colour blocks for a particular output.
type Swatcher struct {
	renderer *lipgloss.Renderer
}

// NewSwatcher creates a Swatcher writing to w in the given mode.
func NewSwatcher(w io.Writer, mode ColourMode) *Swatcher {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case ColourAlways:
		r.SetColorProfile(termenv.TrueColor)
	case ColourNever:
		r.SetColorProfile(termenv.Ascii)
	}
	return &Swatcher{renderer: r}
}

// Swatch returns a solid block of the colour, width cells wide.
func (s *Swatcher) Swatch(c RGB, width int) string {
	if width <= 0 {
		width = defaultSwatchWidth
	}
	return s.renderer.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Render(strings.Repeat(" ", width))
}

// SwatchWithText returns a block of the colour with text centred on it.
// The text colour is black or white, whichever contrasts more.
func (s *Swatcher) SwatchWithText(c RGB, text string, width int) string {
	if width <= 0 {
		width = defaultSwatchWidth
	}
	if len(text) > width {
		text = text[:width]
	}

	fg := lipgloss.Color("#ffffff")
	if ContrastRatio(c, RGB{}) > ContrastRatio(c, RGB{R: 255, G: 255, B: 255}) {
		fg = lipgloss.Color("#000000")
	}

	return s.renderer.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Foreground(fg).
		Width(width).
		Align(lipgloss.Center).
		Render(text)
}

// Text renders text in the given foreground colour.
func (s *Swatcher) Text(c RGB, text string) string {
	return s.renderer.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(text)
}

// FormatColourWithLabel formats a colour as a swatch, a padded label and its hex code.
func (s *Swatcher) FormatColourWithLabel(rgb RGB, label string, width int) string {
	return fmt.Sprintf("%s  %-8s %s", s.Swatch(rgb, width), label, rgb.Hex())
}
