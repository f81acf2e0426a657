// Package render turns a base16 palette into theme files using named
// text/template sources.
package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/jmylchreest/base16gen/internal/security"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// embeddedDir is the directory inside embeddedTemplates holding the sources.
const embeddedDir = "templates"

// Built-in format names.
const (
	FormatShell = "shell"
	FormatVim   = "vim"
)

// ErrUnknownFormat is returned when no template is registered for a format.
var ErrUnknownFormat = errors.New("unknown template format")

// Template describes one output format.
type Template struct {
	// Format is the registry key, e.g. "shell".
	Format string
	// Filename is the template source filename, e.g. "shell.sh.tmpl".
	Filename string
	// Extension is appended to the theme name for the output file, e.g. ".sh".
	Extension string
	// Description is shown by "templates list".
	Description string
	// Source is the text/template source.
	Source string
	// Custom is true when Source came from a user override.
	Custom bool
}

// OutputFilename returns the output filename for a theme name.
func (t Template) OutputFilename(themeName string) string {
	return themeName + t.Extension
}

// Builtins returns the built-in templates without their sources.
func Builtins() []Template {
	return []Template{
		{
			Format:      FormatShell,
			Filename:    "shell.sh.tmpl",
			Extension:   ".sh",
			Description: "base16-shell script exporting the palette",
		},
		{
			Format:      FormatVim,
			Filename:    "vim.vim.tmpl",
			Extension:   ".vim",
			Description: "base16-vim colour scheme",
		},
	}
}

type registered struct {
	Template
	tmpl *template.Template
}

// Registry holds templates by format name, in registration order.
// It is not safe for concurrent registration.
type Registry struct {
	order   []string
	entries map[string]*registered
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*registered)}
}

// DefaultRegistry returns a registry holding the embedded built-in templates.
func DefaultRegistry() *Registry {
	reg, err := NewLoader().WithCustomBase("").Registry()
	if err != nil {
		// The embedded sources are fixed at build time.
		panic(fmt.Sprintf("built-in templates: %v", err))
	}
	return reg
}

// Register parses a template and adds it, replacing any template already
// registered for the same format.
func (r *Registry) Register(t Template) error {
	if err := security.ValidateNameComponent(t.Format); err != nil {
		return fmt.Errorf("invalid format name: %w", err)
	}
	if t.Extension != "" && !strings.HasPrefix(t.Extension, ".") {
		return fmt.Errorf("extension for %s must start with '.', got %q", t.Format, t.Extension)
	}

	tmpl, err := template.New(t.Format).
		Funcs(TemplateFuncs()).
		Option("missingkey=error").
		Parse(t.Source)
	if err != nil {
		return fmt.Errorf("failed to parse %s template: %w", t.Format, err)
	}

	if _, exists := r.entries[t.Format]; !exists {
		r.order = append(r.order, t.Format)
	}
	r.entries[t.Format] = &registered{Template: t, tmpl: tmpl}
	return nil
}

// Get returns the template registered for a format.
func (r *Registry) Get(format string) (Template, bool) {
	e, ok := r.entries[format]
	if !ok {
		return Template{}, false
	}
	return e.Template, true
}

// Formats returns the registered format names in registration order.
func (r *Registry) Formats() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Templates returns the registered templates in registration order.
func (r *Registry) Templates() []Template {
	out := make([]Template, 0, len(r.order))
	for _, f := range r.order {
		out = append(out, r.entries[f].Template)
	}
	return out
}

func (r *Registry) execute(format string, data *ThemeData) (string, error) {
	e, ok := r.entries[format]
	if !ok {
		return "", fmt.Errorf("%w: %q (registered: %s)", ErrUnknownFormat, format, strings.Join(r.order, ", "))
	}

	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute %s template: %w", format, err)
	}
	return buf.String(), nil
}
