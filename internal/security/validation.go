// Package security provides input validation for names and paths that end up
// on the filesystem.
package security

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
)

// maxNameLength keeps generated filenames well under common filesystem limits.
const maxNameLength = 128

var nameComponent = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateNameComponent checks that name can be used as a single filename
// component: non-empty, ASCII letters, digits, hyphen and underscore only.
func ValidateNameComponent(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("name too long: %d characters (maximum: %d)", len(name), maxNameLength)
	}
	if !nameComponent.MatchString(name) {
		return fmt.Errorf("name %q may only contain letters, digits, '-' and '_'", name)
	}
	return nil
}

// ValidateFilePath validates a relative path that will be joined onto baseDir
// (an archive entry, a template override) to prevent directory traversal.
func ValidateFilePath(filePath, baseDir string) error {
	if filePath == "" {
		return fmt.Errorf("empty file path")
	}

	if strings.Contains(filePath, "..") {
		return fmt.Errorf("file path contains directory traversal (..) - not allowed")
	}

	if filepath.IsAbs(filePath) {
		return fmt.Errorf("absolute paths are not allowed: %s", filePath)
	}

	cleanFinal := filepath.Clean(filepath.Join(baseDir, filePath))
	cleanBase := filepath.Clean(baseDir)

	if !strings.HasPrefix(cleanFinal, cleanBase+string(filepath.Separator)) &&
		cleanFinal != cleanBase {
		return fmt.Errorf("file path would escape base directory")
	}

	return nil
}

// SafeUint8FromUint32 converts uint32 to uint8, clamping at 255.
func SafeUint8FromUint32(val uint32) uint8 {
	if val > 255 {
		return 255
	}
	return uint8(val)
}

// ErrSizeLimit is returned by LimitedReader once its limit is exceeded.
var ErrSizeLimit = errors.New("decompression size limit exceeded")

// LimitedReader wraps an io.Reader and fails once more than a fixed number of
// bytes is available, guarding archive reads against decompression bombs.
// A stream of exactly the limit reads through to EOF.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

// Read implements io.Reader with size limits. It asks for one byte past the
// limit so an oversized stream is detected rather than silently truncated.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Remaining < 0 {
		return 0, ErrSizeLimit
	}
	if int64(len(p)) > l.Remaining+1 {
		p = p[:l.Remaining+1]
	}
	n, err := l.R.Read(p)
	if int64(n) > l.Remaining {
		n = int(l.Remaining)
		l.Remaining = -1
		return n, ErrSizeLimit
	}
	l.Remaining -= int64(n)
	return n, err
}

// NewLimitedReader creates a new LimitedReader with the specified size limit.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{
		R:         r,
		Remaining: maxBytes,
	}
}
