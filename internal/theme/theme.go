// Package theme ties a mapped base16 palette to its rendered files and
// provides preview and save operations.
package theme

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/jmylchreest/base16gen/internal/base16"
	"github.com/jmylchreest/base16gen/internal/colour"
	"github.com/jmylchreest/base16gen/internal/render"
)

// Theme is a named palette together with its rendered files.
// It does not change after creation.
type Theme struct {
	name    string
	palette *base16.Palette
	outputs []render.Output
}

// New renders palette through every format of renderer and returns the
// resulting theme. A nil renderer uses the built-in templates.
func New(name string, palette *base16.Palette, renderer *render.Renderer) (*Theme, error) {
	if renderer == nil {
		renderer = render.NewRenderer(nil)
	}
	outputs, err := renderer.RenderAll(palette, name)
	if err != nil {
		return nil, err
	}
	for _, required := range []string{render.FormatShell, render.FormatVim} {
		if !hasFormat(outputs, required) {
			return nil, fmt.Errorf("%w: %q is required", render.ErrUnknownFormat, required)
		}
	}
	return &Theme{name: name, palette: palette, outputs: outputs}, nil
}

func hasFormat(outputs []render.Output, format string) bool {
	for _, o := range outputs {
		if o.Format == format {
			return true
		}
	}
	return false
}

// Name returns the theme name.
func (t *Theme) Name() string { return t.name }

// Palette returns the mapped palette.
func (t *Theme) Palette() *base16.Palette { return t.palette }

// Variant returns the palette variant.
func (t *Theme) Variant() base16.Variant { return t.palette.Variant() }

// Shell returns the rendered shell script.
func (t *Theme) Shell() string {
	o, _ := t.Output(render.FormatShell)
	return o.Content
}

// Editor returns the rendered Vim colour scheme.
func (t *Theme) Editor() string {
	o, _ := t.Output(render.FormatVim)
	return o.Content
}

// Output returns the rendered file for a format.
func (t *Theme) Output(format string) (render.Output, bool) {
	for _, o := range t.outputs {
		if o.Format == format {
			return o, true
		}
	}
	return render.Output{}, false
}

// Outputs returns every rendered file in registration order.
func (t *Theme) Outputs() []render.Output {
	out := make([]render.Output, len(t.outputs))
	copy(out, t.outputs)
	return out
}

// Render writes a preview of the sixteen slots to w, colouring swatches when
// w is a colour-capable terminal.
func (t *Theme) Render(w io.Writer) error {
	return t.RenderWithMode(w, colour.ColourAuto)
}

// RenderWithMode writes the preview with an explicit colour mode.
func (t *Theme) RenderWithMode(w io.Writer, mode colour.ColourMode) error {
	sw := colour.NewSwatcher(w, mode)
	width := terminalWidth(w)
	swatchWidth, stripWidth := 8, 4
	showDescriptions := width >= 60
	if width < 40 {
		swatchWidth = 4
	}
	if width < 16*stripWidth {
		stripWidth = 2
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Theme: %s (%s)\n", t.name, t.palette.Variant())
	if n := t.palette.Padded(); n > 0 {
		fmt.Fprintf(&sb, "Note: %d slots repeat colours; the image had too few distinct colours\n", n)
	}
	for s, c := range t.palette.All() {
		sb.WriteString(sw.SwatchWithText(c, s.Index(), stripWidth))
	}
	sb.WriteString("\n\n")

	for s, c := range t.palette.All() {
		line := sw.FormatColourWithLabel(c, s.String(), swatchWidth)
		if showDescriptions {
			line += "  " + s.Description()
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(sampleLine(sw, t.palette))
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// sampleLine renders a short code snippet using the accent slots the way an
// editor would.
func sampleLine(sw *colour.Swatcher, p *base16.Palette) string {
	parts := []struct {
		slot base16.Slot
		text string
	}{
		{base16.Base0E, "func "},
		{base16.Base0D, "main"},
		{base16.Base05, "() { "},
		{base16.Base08, "x"},
		{base16.Base05, " := "},
		{base16.Base09, "42"},
		{base16.Base05, "; "},
		{base16.Base0A, "fmt"},
		{base16.Base05, "."},
		{base16.Base0D, "Println"},
		{base16.Base05, "("},
		{base16.Base0B, `"hello"`},
		{base16.Base05, ") } "},
		{base16.Base03, "// comment"},
	}

	var sb strings.Builder
	for _, part := range parts {
		sb.WriteString(sw.Text(p.Get(part.slot), part.text))
	}
	return sb.String()
}

// terminalWidth returns the width of w if it is a terminal, else 80.
func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		fd := int(f.Fd()) // #nosec G115 - file descriptors fit in int
		if term.IsTerminal(fd) {
			if width, _, err := term.GetSize(fd); err == nil && width > 0 {
				return width
			}
		}
	}
	return 80
}
