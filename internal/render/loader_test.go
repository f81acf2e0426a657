package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/base16gen/internal/base16"
)

func shellTemplate() Template {
	return Builtins()[0]
}

func TestLoader_Load(t *testing.T) {
	tmpDir := t.TempDir()
	loader := NewLoader().WithCustomBase(tmpDir)

	t.Run("loads embedded template when no custom exists", func(t *testing.T) {
		content, fromCustom, err := loader.Load(shellTemplate())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fromCustom {
			t.Error("expected embedded template, got custom")
		}
		if !strings.Contains(string(content), "BASE16_COLOR_") {
			t.Error("embedded shell template looks wrong")
		}
	})

	t.Run("loads custom template when it exists", func(t *testing.T) {
		customPath := loader.CustomPath(shellTemplate())
		if err := os.MkdirAll(filepath.Dir(customPath), 0o755); err != nil {
			t.Fatalf("failed to create custom dir: %v", err)
		}
		customContent := []byte("# custom {{ .Name }}\n")
		if err := os.WriteFile(customPath, customContent, 0o644); err != nil {
			t.Fatalf("failed to write custom template: %v", err)
		}

		content, fromCustom, err := loader.Load(shellTemplate())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !fromCustom {
			t.Error("expected custom template, got embedded")
		}
		if string(content) != string(customContent) {
			t.Errorf("expected custom content %q, got %q", customContent, content)
		}
	})

	t.Run("returns error for non-existent template", func(t *testing.T) {
		_, _, err := loader.Load(Template{Format: "nope", Filename: "nope.tmpl"})
		if err == nil {
			t.Error("expected error for non-existent template")
		}
	})
}

func TestLoader_RegistryUsesOverride(t *testing.T) {
	tmpDir := t.TempDir()
	loader := NewLoader().WithCustomBase(tmpDir)

	override := filepath.Join(tmpDir, FormatVim, "vim.vim.tmpl")
	if err := os.MkdirAll(filepath.Dir(override), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(override, []byte(`" {{ .Name }} {{ .Slot.base00.Hash }}`), 0o644); err != nil {
		t.Fatal(err)
	}

	reg, err := loader.Registry()
	if err != nil {
		t.Fatalf("Registry() error = %v", err)
	}
	if tmpl, _ := reg.Get(FormatVim); !tmpl.Custom {
		t.Error("vim template should be marked custom")
	}
	if tmpl, _ := reg.Get(FormatShell); tmpl.Custom {
		t.Error("shell template should be embedded")
	}

	p, err := base16.NewPaletteFromHex(fullPalette("#102030"), base16.VariantDark)
	if err != nil {
		t.Fatal(err)
	}
	out, err := NewRenderer(reg).RenderFormat(FormatVim, p, "custom")
	if err != nil {
		t.Fatal(err)
	}
	if out != `" custom #102030` {
		t.Errorf("RenderFormat() = %q", out)
	}
}

func TestLoader_RegistryRejectsBrokenOverride(t *testing.T) {
	tmpDir := t.TempDir()
	loader := NewLoader().WithCustomBase(tmpDir)

	override := loader.CustomPath(shellTemplate())
	if err := os.MkdirAll(filepath.Dir(override), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(override, []byte("{{ if }"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := loader.Registry()
	if err == nil || !strings.Contains(err.Error(), override) {
		t.Errorf("Registry() error = %v, want it to name %s", err, override)
	}
}

func TestLoader_CustomPath(t *testing.T) {
	loader := NewLoader().WithCustomBase("/home/user/.config/base16gen/templates")

	expected := "/home/user/.config/base16gen/templates/shell/shell.sh.tmpl"
	if got := loader.CustomPath(shellTemplate()); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
	if got := loader.CustomDir("vim"); got != "/home/user/.config/base16gen/templates/vim" {
		t.Errorf("CustomDir() = %q", got)
	}
}

func TestLoader_DisabledOverrides(t *testing.T) {
	loader := NewLoader().WithCustomBase("")
	if loader.HasCustomTemplate(shellTemplate()) {
		t.Error("HasCustomTemplate() should be false with overrides disabled")
	}
	if _, err := loader.DumpTemplate(shellTemplate(), false); err == nil {
		t.Error("DumpTemplate() should fail without a template directory")
	}
}

func TestLoader_BuiltinsAreEmbedded(t *testing.T) {
	for _, b := range Builtins() {
		info := NewLoader().GetInfo(b)
		if !info.EmbeddedExists {
			t.Errorf("built-in %s has no embedded source", b.Filename)
		}
	}
}

func TestLoader_DumpTemplate(t *testing.T) {
	tmpDir := t.TempDir()
	loader := NewLoader().WithCustomBase(tmpDir)

	t.Run("dumps template successfully", func(t *testing.T) {
		path, err := loader.DumpTemplate(shellTemplate(), false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("custom template not created: %v", err)
		}
		if !loader.GetInfo(shellTemplate()).CustomExists {
			t.Error("GetInfo() should report the dumped override")
		}
	})

	t.Run("fails without force when template exists", func(t *testing.T) {
		if _, err := loader.DumpTemplate(shellTemplate(), false); err == nil {
			t.Error("expected error when dumping existing template without force")
		}
	})

	t.Run("overwrites with force flag", func(t *testing.T) {
		if _, err := loader.DumpTemplate(shellTemplate(), true); err != nil {
			t.Fatalf("unexpected error with force flag: %v", err)
		}
	})

	t.Run("rejects traversal in format name", func(t *testing.T) {
		if _, err := loader.DumpTemplate(Template{Format: "..", Filename: "shell.sh.tmpl"}, true); err == nil {
			t.Error("expected error for traversal")
		}
	})
}

func TestLoader_DumpAll_WithExisting(t *testing.T) {
	tmpDir := t.TempDir()
	loader := NewLoader().WithCustomBase(tmpDir)

	if _, err := loader.DumpTemplate(shellTemplate(), false); err != nil {
		t.Fatal(err)
	}

	dumped, err := loader.DumpAll(Builtins(), false)
	if err == nil {
		t.Error("expected an error naming the skipped template")
	}
	if len(dumped) != 1 || !strings.HasSuffix(dumped[0], "vim.vim.tmpl") {
		t.Errorf("dumped = %v, want only the vim template", dumped)
	}

	dumped, err = loader.DumpAll(Builtins(), true)
	if err != nil || len(dumped) != 2 {
		t.Errorf("DumpAll(force) = %v, %v", dumped, err)
	}
}

func fullPalette(hex string) map[string]string {
	m := make(map[string]string, base16.SlotCount)
	for _, s := range base16.Slots() {
		m[s.String()] = hex
	}
	return m
}
