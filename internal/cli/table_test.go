package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/go-cmp/cmp"
	"github.com/muesli/termenv"
)

func TestTableRender(t *testing.T) {
	table := NewTable([]string{"Format", "File", "Source"})
	table.AddRow([]string{"shell", "shell.sh.tmpl", "embedded"})
	table.AddRow([]string{"vim", "vim.vim.tmpl"})

	want := strings.Join([]string{
		"Format  File           Source",
		"------  -------------  --------",
		"shell   shell.sh.tmpl  embedded",
		"vim     vim.vim.tmpl",
		"",
	}, "\n")
	if diff := cmp.Diff(want, table.Render()); diff != "" {
		t.Errorf("Render() (-want +got):\n%s", diff)
	}
}

func TestTableAddRowFitsHeaders(t *testing.T) {
	table := NewTable([]string{"A", "B"})
	table.AddRow([]string{"1"})
	table.AddRow([]string{"1", "2", "3"})

	for i, row := range table.rows {
		if len(row) != 2 {
			t.Errorf("row %d has %d cells, want 2", i, len(row))
		}
	}
}

func TestTableRenderEmpty(t *testing.T) {
	if got := NewTable(nil).Render(); got != "" {
		t.Errorf("Render() with no headers = %q, want empty", got)
	}

	got := NewTable([]string{"Only"}).Render()
	if got != "Only\n----\n" {
		t.Errorf("Render() with no rows = %q", got)
	}
}

func TestTableAlignsStyledCells(t *testing.T) {
	r := lipgloss.NewRenderer(&strings.Builder{})
	r.SetColorProfile(termenv.TrueColor)
	swatch := r.NewStyle().Background(lipgloss.Color("#ff0000")).Render("    ")

	table := NewTable([]string{"Colour", "Hex"})
	table.AddRow([]string{swatch, "#ff0000"})
	table.AddRow([]string{"none", "-"})

	lines := strings.Split(table.Render(), "\n")
	if !strings.Contains(lines[2], "\x1b[") {
		t.Fatal("styled cell lost its escape sequences")
	}
	if got, want := lipgloss.Width(lines[2]), len("Colour  #ff0000"); got != want {
		t.Errorf("styled row is %d cells wide, want %d", got, want)
	}
}

func TestTableWrapsColumns(t *testing.T) {
	table := NewTable([]string{"Name", "Description"})
	table.SetColumnMaxWidth(1, 10)
	table.AddRow([]string{"vim", "Vim colour scheme file"})

	want := strings.Join([]string{
		"Name  Description",
		"----  -----------",
		"vim   Vim colour",
		"      scheme",
		"      file",
		"",
	}, "\n")
	if diff := cmp.Diff(want, table.Render()); diff != "" {
		t.Errorf("Render() (-want +got):\n%s", diff)
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input string
		width int
		want  string
	}{
		{"test", 10, "test      "},
		{"hello", 5, "hello"},
		{"world", 3, "world"},
		{"", 5, "     "},
	}
	for _, tt := range tests {
		if got := padRight(tt.input, tt.width); got != tt.want {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
		}
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  []string
	}{
		{"short", 10, []string{"short"}},
		{"one two three", 7, []string{"one two", "three"}},
		{"abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"anything", 0, []string{"anything"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, wrapText(tt.text, tt.width)); diff != "" {
			t.Errorf("wrapText(%q, %d) (-want +got):\n%s", tt.text, tt.width, diff)
		}
	}
}
