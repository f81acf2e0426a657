package security

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestValidateNameComponent(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"matrix-theme", false},
		{"Ocean_2", false},
		{"a", false},
		{"", true},
		{"has space", true},
		{"../etc", true},
		{"dots.not.allowed", true},
		{"slash/name", true},
		{"ünïcode", true},
		{strings.Repeat("x", maxNameLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNameComponent(tt.name)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNameComponent(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFilePath(t *testing.T) {
	tests := []struct {
		name     string
		filePath string
		wantErr  bool
	}{
		{"simple", "shell/shell.sh.tmpl", false},
		{"empty", "", true},
		{"traversal", "../outside.tmpl", true},
		{"absolute", "/etc/passwd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilePath(tt.filePath, "/tmp/base")
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilePath(%q) error = %v, wantErr %v", tt.filePath, err, tt.wantErr)
			}
		})
	}
}

func TestSafeUint8FromUint32(t *testing.T) {
	if got := SafeUint8FromUint32(12); got != 12 {
		t.Errorf("SafeUint8FromUint32(12) = %d", got)
	}
	if got := SafeUint8FromUint32(70000); got != 255 {
		t.Errorf("SafeUint8FromUint32(70000) = %d, want 255", got)
	}
}

func TestLimitedReader(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		limit   int64
		wantErr bool
	}{
		{"under the limit", "ok", 10, false},
		{"exactly the limit", "0123456789", 10, false},
		{"one byte over", "0123456789A", 10, true},
		{"far over", "0123456789", 4, true},
		{"empty input", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := io.ReadAll(NewLimitedReader(strings.NewReader(tt.input), tt.limit))
			if tt.wantErr {
				if !errors.Is(err, ErrSizeLimit) {
					t.Fatalf("ReadAll() error = %v, want ErrSizeLimit", err)
				}
				if int64(len(data)) > tt.limit {
					t.Errorf("read %d bytes past a limit of %d", len(data), tt.limit)
				}
				return
			}
			if err != nil || string(data) != tt.input {
				t.Errorf("ReadAll() = %q, %v; want %q", data, err, tt.input)
			}
		})
	}
}

func TestLimitedReaderStaysFailed(t *testing.T) {
	r := NewLimitedReader(strings.NewReader("0123456789"), 4)
	if _, err := io.ReadAll(r); !errors.Is(err, ErrSizeLimit) {
		t.Fatalf("ReadAll() error = %v, want ErrSizeLimit", err)
	}
	if n, err := r.Read(make([]byte, 4)); n != 0 || !errors.Is(err, ErrSizeLimit) {
		t.Errorf("Read() after the limit = %d, %v", n, err)
	}
}
