package render

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/base16gen/internal/security"
)

// Loader reads template sources, preferring user overrides in
// <customBase>/<format>/<filename> over the embedded defaults.
type Loader struct {
	embedFS    fs.FS
	customBase string // empty disables overrides
	logger     hclog.Logger
}

// DefaultCustomBase returns $XDG_CONFIG_HOME/base16gen/templates (or the
// platform equivalent), or "" if no config directory is available.
func DefaultCustomBase() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "base16gen", "templates")
}

// NewLoader creates a loader over the embedded templates with overrides read
// from DefaultCustomBase.
func NewLoader() *Loader {
	sub, err := fs.Sub(embeddedTemplates, embeddedDir)
	if err != nil {
		panic(fmt.Sprintf("embedded templates: %v", err))
	}
	return &Loader{
		embedFS:    sub,
		customBase: DefaultCustomBase(),
		logger:     hclog.NewNullLogger(),
	}
}

// WithCustomBase sets the override directory. An empty string disables
// overrides.
func (l *Loader) WithCustomBase(customBase string) *Loader {
	l.customBase = customBase
	return l
}

// WithLogger sets the logger used to report which source was chosen.
func (l *Loader) WithLogger(logger hclog.Logger) *Loader {
	if logger != nil {
		l.logger = logger
	}
	return l
}

// CustomBase returns the override directory.
func (l *Loader) CustomBase() string {
	return l.customBase
}

// Load returns the source for a template and whether it came from an override.
func (l *Loader) Load(t Template) (content []byte, fromCustom bool, err error) {
	if l.customBase != "" {
		customPath, err := l.customPath(t)
		if err != nil {
			return nil, false, err
		}
		if content, err := os.ReadFile(customPath); err == nil { // #nosec G304 - user template override
			l.logger.Debug("using custom template", "format", t.Format, "path", customPath)
			return content, true, nil
		}
	}

	l.logger.Trace("using embedded template", "format", t.Format, "file", t.Filename)
	content, err = fs.ReadFile(l.embedFS, t.Filename)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load template %q: %w", t.Filename, err)
	}
	return content, false, nil
}

// Registry builds a registry of the built-in templates, applying overrides.
func (l *Loader) Registry() (*Registry, error) {
	reg := NewRegistry()
	for _, t := range Builtins() {
		content, custom, err := l.Load(t)
		if err != nil {
			return nil, err
		}
		t.Source = string(content)
		t.Custom = custom
		if err := reg.Register(t); err != nil {
			if custom {
				return nil, fmt.Errorf("custom template %s: %w", l.CustomPath(t), err)
			}
			return nil, err
		}
	}
	return reg, nil
}

// CustomPath returns where an override for t would be located.
func (l *Loader) CustomPath(t Template) string {
	return filepath.Join(l.customBase, t.Format, t.Filename)
}

func (l *Loader) customPath(t Template) (string, error) {
	rel := filepath.Join(t.Format, t.Filename)
	if err := security.ValidateFilePath(rel, l.customBase); err != nil {
		return "", fmt.Errorf("invalid template override path for %s: %w", t.Format, err)
	}
	return filepath.Join(l.customBase, rel), nil
}

// CustomDir returns the override directory for a format.
func (l *Loader) CustomDir(format string) string {
	return filepath.Join(l.customBase, format)
}

// HasCustomTemplate reports whether an override exists for t.
func (l *Loader) HasCustomTemplate(t Template) bool {
	if l.customBase == "" {
		return false
	}
	_, err := os.Stat(l.CustomPath(t))
	return err == nil
}

// DumpTemplate writes the embedded source for t to its override path so it
// can be edited. Without force an existing override is left untouched.
func (l *Loader) DumpTemplate(t Template, force bool) (string, error) {
	if l.customBase == "" {
		return "", fmt.Errorf("no template directory configured")
	}

	content, err := fs.ReadFile(l.embedFS, t.Filename)
	if err != nil {
		return "", fmt.Errorf("failed to read embedded template %q: %w", t.Filename, err)
	}

	outputPath, err := l.customPath(t)
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return "", fmt.Errorf("custom template already exists: %s (use --force to overwrite)", outputPath)
		}
	}

	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory %q: %w", outputDir, err)
	}

	if err := os.WriteFile(outputPath, content, 0o644); err != nil { // #nosec G306 - templates are not secret
		return "", fmt.Errorf("failed to write template to %q: %w", outputPath, err)
	}

	l.logger.Debug("dumped template", "format", t.Format, "path", outputPath)
	return outputPath, nil
}

// DumpAll dumps every given template. Existing overrides are skipped (and
// reported in the returned error) unless force is set; other failures stop
// the dump.
func (l *Loader) DumpAll(templates []Template, force bool) ([]string, error) {
	var dumped []string
	var skipped []string

	for _, t := range templates {
		p, err := l.DumpTemplate(t, force)
		if err != nil {
			if !force && strings.Contains(err.Error(), "already exists") {
				skipped = append(skipped, err.Error())
				continue
			}
			return dumped, err
		}
		dumped = append(dumped, p)
	}

	if len(skipped) > 0 {
		return dumped, fmt.Errorf("%s", strings.Join(skipped, "; "))
	}
	return dumped, nil
}

// TemplateInfo describes where a template's source comes from.
type TemplateInfo struct {
	Format         string
	Filename       string
	EmbeddedExists bool
	CustomExists   bool
	CustomPath     string
}

// GetInfo returns information about a template's sources.
func (l *Loader) GetInfo(t Template) TemplateInfo {
	_, embeddedErr := fs.Stat(l.embedFS, t.Filename)
	return TemplateInfo{
		Format:         t.Format,
		Filename:       t.Filename,
		EmbeddedExists: embeddedErr == nil,
		CustomExists:   l.HasCustomTemplate(t),
		CustomPath:     l.CustomPath(t),
	}
}
