package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	oldCommit, oldDate := Commit, Date
	t.Cleanup(func() { Commit, Date = oldCommit, oldDate })

	Commit, Date = "unknown", "unknown"
	if got := String(); !strings.HasPrefix(got, "base16gen version dev") {
		t.Errorf("String() = %q", got)
	}

	Commit, Date = "abc", "2026-01-02T03:04:05Z"
	if got := String(); !strings.Contains(got, "commit: abc,") {
		t.Errorf("String() with short commit = %q", got)
	}

	Commit = "0123456789abcdef"
	if got := String(); !strings.Contains(got, "commit: 01234567,") {
		t.Errorf("String() = %q, want commit trimmed to eight characters", got)
	}
}

func TestGetInfo(t *testing.T) {
	info := GetInfo()
	if info.Version != Version || info.Platform == "" || info.GoVersion == "" {
		t.Errorf("GetInfo() = %+v", info)
	}
}
