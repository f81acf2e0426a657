package theme

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmylchreest/base16gen/internal/base16"
	"github.com/jmylchreest/base16gen/internal/colour"
	"github.com/jmylchreest/base16gen/internal/render"
)

func testPalette(t *testing.T) *base16.Palette {
	t.Helper()
	values := map[string]string{
		"base00": "#000000", "base01": "#0a0f0a", "base02": "#142014", "base03": "#1f331f",
		"base04": "#3d663d", "base05": "#5c995c", "base06": "#7acc7a", "base07": "#00ff00",
		"base08": "#ff3333", "base09": "#ff8833", "base0A": "#ffee33", "base0B": "#33ff66",
		"base0C": "#33ffee", "base0D": "#3388ff", "base0E": "#cc33ff", "base0F": "#996633",
	}
	p, err := base16.NewPaletteFromHex(values, base16.VariantDark)
	if err != nil {
		t.Fatalf("NewPaletteFromHex() error = %v", err)
	}
	return p
}

func testTheme(t *testing.T, name string) *Theme {
	t.Helper()
	th, err := New(name, testPalette(t), nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return th
}

func TestNew(t *testing.T) {
	th := testTheme(t, "matrix")

	if th.Name() != "matrix" {
		t.Errorf("Name() = %q", th.Name())
	}
	if th.Variant() != base16.VariantDark {
		t.Errorf("Variant() = %q", th.Variant())
	}
	if !strings.Contains(th.Shell(), `export BASE16_COLOR_00_HEX="000000"`) {
		t.Error("Shell() missing base00 export")
	}
	if !strings.Contains(th.Editor(), `let s:gui07 = "00FF00"`) {
		t.Error("Editor() missing base07 definition")
	}

	var formats []string
	for _, o := range th.Outputs() {
		formats = append(formats, o.Format)
	}
	if diff := cmp.Diff([]string{render.FormatShell, render.FormatVim}, formats); diff != "" {
		t.Errorf("Outputs() formats (-want +got):\n%s", diff)
	}
}

func TestNewInvalidName(t *testing.T) {
	for _, name := range []string{"", "../x", "has space", "a/b"} {
		if _, err := New(name, testPalette(t), nil); !errors.Is(err, render.ErrInvalidName) {
			t.Errorf("New(%q) error = %v, want ErrInvalidName", name, err)
		}
	}
}

func TestRenderPreview(t *testing.T) {
	th := testTheme(t, "matrix")

	var buf bytes.Buffer
	if err := th.RenderWithMode(&buf, colour.ColourNever); err != nil {
		t.Fatalf("RenderWithMode() error = %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "Theme: matrix (dark)\n") {
		t.Errorf("preview header = %q", strings.SplitN(out, "\n", 2)[0])
	}
	for _, s := range base16.Slots() {
		if !strings.Contains(out, s.String()) {
			t.Errorf("preview missing slot %s", s)
		}
	}
	for _, want := range []string{"#000000", "#00ff00", "#996633", "Default Background"} {
		if !strings.Contains(out, want) {
			t.Errorf("preview missing %q", want)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("preview contains escape sequences with colour disabled")
	}
	if strings.Contains(out, "Note:") {
		t.Error("preview reports padding for a full palette")
	}
}

func TestRenderPreviewForcedColour(t *testing.T) {
	th := testTheme(t, "matrix")

	var buf bytes.Buffer
	if err := th.RenderWithMode(&buf, colour.ColourAlways); err != nil {
		t.Fatalf("RenderWithMode() error = %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Error("preview has no escape sequences with colour forced")
	}
}

func TestRenderPreviewPadded(t *testing.T) {
	p, err := base16.Map([]colour.RGB{{R: 10, G: 10, B: 10}, {R: 200, G: 50, B: 50}, {R: 240, G: 240, B: 240}}, base16.VariantDark)
	if err != nil {
		t.Fatal(err)
	}
	th, err := New("sparse", p, nil)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := th.Render(&buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Note: 13 slots repeat colours") {
		t.Errorf("preview missing padding note:\n%s", buf.String())
	}
}
