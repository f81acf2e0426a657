package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/base16gen/internal/render"
)

// ErrFileWrite matches every *FileWriteError.
var ErrFileWrite = errors.New("failed to write theme file")

// FileWriteError reports a single destination that could not be written.
type FileWriteError struct {
	Format string
	Path   string
	Err    error
}

func (e *FileWriteError) Error() string {
	return fmt.Sprintf("write %s file %s: %v", e.Format, e.Path, e.Err)
}

func (e *FileWriteError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrFileWrite) true for any FileWriteError.
func (e *FileWriteError) Is(target error) bool { return target == ErrFileWrite }

// SaveError is returned when at least one file could not be written. Files
// listed in Written were saved and are left in place.
type SaveError struct {
	Written []string
	Failed  []*FileWriteError
}

func (e *SaveError) Error() string {
	failed := make([]string, len(e.Failed))
	for i, f := range e.Failed {
		failed[i] = f.Error()
	}
	msg := "save failed: " + strings.Join(failed, "; ")
	if len(e.Written) > 0 {
		msg += " (written: " + strings.Join(e.Written, ", ") + ")"
	}
	return msg
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *SaveError) Unwrap() []error {
	errs := make([]error, len(e.Failed))
	for i, f := range e.Failed {
		errs[i] = f
	}
	return errs
}

// SaveOptions chooses where rendered files go.
type SaveOptions struct {
	// ShellPath overrides the shell script destination.
	ShellPath string
	// EditorPath overrides the Vim colour scheme destination.
	EditorPath string
	// OutputDir holds files without an explicit path. Defaults to ".".
	OutputDir string
	// Backup copies an existing destination to <path>.backup before replacing it.
	Backup bool
}

// SaveResult lists what Save wrote.
type SaveResult struct {
	// Written holds the destination path of every saved file, in format order.
	Written []string
	// Backups holds the backup files created.
	Backups []string
}

// Paths returns the destination for every rendered format under opts.
func (t *Theme) Paths(opts SaveOptions) map[string]string {
	dir := opts.OutputDir
	if dir == "" {
		dir = "."
	}

	paths := make(map[string]string, len(t.outputs))
	for _, o := range t.outputs {
		paths[o.Format] = filepath.Join(dir, o.Filename)
	}
	if opts.ShellPath != "" {
		paths[render.FormatShell] = opts.ShellPath
	}
	if opts.EditorPath != "" {
		paths[render.FormatVim] = opts.EditorPath
	}
	return paths
}

// Save writes every rendered file. By default the shell script goes to
// ./<name>.sh and the Vim scheme to ./<name>.vim. Parent directories must
// already exist. A failure for one file does not stop the others; in that
// case the returned error is a *SaveError and the result lists what was
// written. Nothing is rolled back.
func (t *Theme) Save(opts SaveOptions) (*SaveResult, error) {
	paths := t.Paths(opts)
	result := &SaveResult{}
	var failed []*FileWriteError

	for _, o := range t.outputs {
		path := paths[o.Format]
		backup, err := writeFileAtomic(path, []byte(o.Content), opts.Backup)
		if err != nil {
			failed = append(failed, &FileWriteError{Format: o.Format, Path: path, Err: err})
			continue
		}
		if backup != "" {
			result.Backups = append(result.Backups, backup)
		}
		result.Written = append(result.Written, path)
	}

	if len(failed) > 0 {
		return result, &SaveError{Written: result.Written, Failed: failed}
	}
	return result, nil
}

// writeFileAtomic writes content to a temporary file beside path and renames
// it into place. An existing file keeps its permissions and, with backup set,
// is first copied to path+".backup", whose name is returned.
func writeFileAtomic(path string, content []byte, backup bool) (string, error) {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("parent directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("parent %s is not a directory", dir)
	}

	mode := fs.FileMode(0o644)
	existing, statErr := os.Stat(path)
	if statErr == nil {
		if existing.IsDir() {
			return "", fmt.Errorf("%s is a directory", path)
		}
		mode = existing.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return "", err
	}

	var backupPath string
	if backup && statErr == nil {
		backupPath = path + ".backup"
		if err := copyFile(path, backupPath, mode); err != nil {
			return "", fmt.Errorf("backup: %w", err)
		}
	}

	if err := os.Rename(tmpName, path); err != nil {
		return "", err
	}
	return backupPath, nil
}

func copyFile(src, dst string, mode fs.FileMode) error {
	data, err := os.ReadFile(src) // #nosec G304 - existing theme file being backed up
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, mode)
}
