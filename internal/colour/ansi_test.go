package colour

import (
	"bytes"
	"strings"
	"testing"
)

func TestSwatcherNeverEmitsPlainText(t *testing.T) {
	var buf bytes.Buffer
	s := NewSwatcher(&buf, ColourNever)

	got := s.FormatColourWithLabel(RGB{R: 255}, "base08", 4)
	if strings.Contains(got, "\x1b[") {
		t.Errorf("ColourNever output contains escape codes: %q", got)
	}
	if !strings.Contains(got, "#ff0000") || !strings.Contains(got, "base08") {
		t.Errorf("FormatColourWithLabel() = %q", got)
	}
}

func TestSwatcherAlwaysEmitsColour(t *testing.T) {
	var buf bytes.Buffer
	s := NewSwatcher(&buf, ColourAlways)
	if got := s.Swatch(RGB{R: 255}, 2); !strings.Contains(got, "\x1b[") {
		t.Errorf("ColourAlways output has no escape codes: %q", got)
	}
}

func TestSwatchWithText(t *testing.T) {
	var buf bytes.Buffer
	s := NewSwatcher(&buf, ColourNever)

	if got := s.SwatchWithText(RGB{B: 255}, "0D", 4); got != " 0D " {
		t.Errorf("SwatchWithText() = %q, want centred label", got)
	}
	if got := s.SwatchWithText(RGB{B: 255}, "base0D", 4); got != "base" {
		t.Errorf("SwatchWithText() = %q, want truncated label", got)
	}
}

func TestParseColourMode(t *testing.T) {
	for in, want := range map[string]ColourMode{"": ColourAuto, "ALWAYS": ColourAlways, "never": ColourNever} {
		got, err := ParseColourMode(in)
		if err != nil || got != want {
			t.Errorf("ParseColourMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseColourMode("sometimes"); err == nil {
		t.Error("ParseColourMode(sometimes) should fail")
	}
}
