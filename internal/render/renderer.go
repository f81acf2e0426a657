package render

import (
	"errors"
	"fmt"

	"github.com/jmylchreest/base16gen/internal/base16"
	"github.com/jmylchreest/base16gen/internal/security"
)

// ErrInvalidName is returned for theme names that cannot be used as a
// filename component.
var ErrInvalidName = errors.New("invalid theme name")

// ValidateName checks that a theme name is non-empty and contains only
// letters, digits, '-' and '_'.
func ValidateName(name string) error {
	if err := security.ValidateNameComponent(name); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidName, err)
	}
	return nil
}

// Output is one rendered file.
type Output struct {
	Format   string
	Filename string
	Content  string
}

// Renderer renders palettes through the templates of a registry.
// Rendering is pure: the same palette and name give identical output.
type Renderer struct {
	registry *Registry
}

// NewRenderer creates a renderer. A nil registry uses DefaultRegistry.
func NewRenderer(registry *Registry) *Renderer {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Renderer{registry: registry}
}

// RenderFormat renders one format.
func (r *Renderer) RenderFormat(format string, palette *base16.Palette, name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	if palette == nil {
		return "", fmt.Errorf("palette cannot be nil")
	}
	return r.registry.execute(format, NewThemeData(palette, name))
}

// Render renders the shell script and the Vim colour scheme.
func (r *Renderer) Render(palette *base16.Palette, name string) (shell, editor string, err error) {
	shell, err = r.RenderFormat(FormatShell, palette, name)
	if err != nil {
		return "", "", err
	}
	editor, err = r.RenderFormat(FormatVim, palette, name)
	if err != nil {
		return "", "", err
	}
	return shell, editor, nil
}

// RenderAll renders every registered format, in registration order.
// Nothing is returned unless every format renders.
func (r *Renderer) RenderAll(palette *base16.Palette, name string) ([]Output, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if palette == nil {
		return nil, fmt.Errorf("palette cannot be nil")
	}

	data := NewThemeData(palette, name)
	outputs := make([]Output, 0, len(r.registry.order))
	for _, t := range r.registry.Templates() {
		content, err := r.registry.execute(t.Format, data)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, Output{
			Format:   t.Format,
			Filename: t.OutputFilename(name),
			Content:  content,
		})
	}
	return outputs, nil
}
