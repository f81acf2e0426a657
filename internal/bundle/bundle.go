// Package bundle writes and reads small archives of rendered theme files.
package bundle

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ulikunitz/xz"

	"github.com/jmylchreest/base16gen/internal/security"
)

// Format is an archive format.
type Format string

const (
	FormatTarXz Format = "tar.xz"
	FormatTarGz Format = "tar.gz"
	FormatZip   Format = "zip"
)

// archiveRoot is a nominal directory entry names are checked against.
const archiveRoot = "bundle"

// maxEntrySize caps each file read back from an archive.
const maxEntrySize = 16 * 1024 * 1024

// File is one archive entry.
type File struct {
	Name    string
	Content []byte
}

// FormatFromPath detects the archive format from a filename extension.
func FormatFromPath(path string) (Format, error) {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(name, ".tar.xz"), strings.HasSuffix(name, ".txz"):
		return FormatTarXz, nil
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		return FormatTarGz, nil
	case strings.HasSuffix(name, ".zip"):
		return FormatZip, nil
	default:
		return "", fmt.Errorf("unsupported bundle extension for %q (use .tar.xz, .tar.gz or .zip)", path)
	}
}

// Write encodes files into w. Entry names must be relative and stay within
// the archive root. modTime is stamped on every entry.
func Write(w io.Writer, format Format, files []File, modTime time.Time) error {
	for _, f := range files {
		if err := security.ValidateFilePath(f.Name, archiveRoot); err != nil {
			return fmt.Errorf("invalid bundle entry %q: %w", f.Name, err)
		}
	}

	switch format {
	case FormatTarXz:
		xzw, err := xz.NewWriter(w)
		if err != nil {
			return fmt.Errorf("failed to create xz writer: %w", err)
		}
		if err := writeTar(xzw, files, modTime); err != nil {
			return err
		}
		if err := xzw.Close(); err != nil {
			return fmt.Errorf("failed to finish xz stream: %w", err)
		}
		return nil
	case FormatTarGz:
		gzw := gzip.NewWriter(w)
		gzw.ModTime = modTime
		if err := writeTar(gzw, files, modTime); err != nil {
			return err
		}
		if err := gzw.Close(); err != nil {
			return fmt.Errorf("failed to finish gzip stream: %w", err)
		}
		return nil
	case FormatZip:
		return writeZip(w, files, modTime)
	default:
		return fmt.Errorf("unsupported bundle format: %q", format)
	}
}

// WriteFile writes an archive to path, choosing the format from its
// extension. The archive is written to a temporary sibling and renamed into
// place, so a failed write never leaves a truncated archive behind.
func WriteFile(path string, files []File, modTime time.Time) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create bundle %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if err := Write(tmp, format, files, modTime); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write bundle %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write bundle %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil { // #nosec G302 - bundles are not secret
		return fmt.Errorf("failed to set permissions on bundle %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to write bundle %s: %w", path, err)
	}
	return nil
}

func writeTar(w io.Writer, files []File, modTime time.Time) error {
	tw := tar.NewWriter(w)
	for _, f := range files {
		hdr := &tar.Header{
			Name:     f.Name,
			Mode:     0o644,
			Size:     int64(len(f.Content)),
			ModTime:  modTime,
			Typeflag: tar.TypeReg,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("failed to write tar header for %s: %w", f.Name, err)
		}
		if _, err := tw.Write(f.Content); err != nil {
			return fmt.Errorf("failed to write %s to tar: %w", f.Name, err)
		}
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("failed to finish tar archive: %w", err)
	}
	return nil
}

func writeZip(w io.Writer, files []File, modTime time.Time) error {
	zw := zip.NewWriter(w)
	for _, f := range files {
		hdr := &zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Deflate,
			Modified: modTime,
		}
		hdr.SetMode(0o644)
		fw, err := zw.CreateHeader(hdr)
		if err != nil {
			return fmt.Errorf("failed to add %s to zip: %w", f.Name, err)
		}
		if _, err := fw.Write(f.Content); err != nil {
			return fmt.Errorf("failed to write %s to zip: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish zip archive: %w", err)
	}
	return nil
}

// Read decodes every regular file from an archive. Entries that would escape
// the archive root are rejected.
func Read(data []byte, format Format) ([]File, error) {
	switch format {
	case FormatTarXz:
		xzr, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		return readTar(xzr)
	case FormatTarGz:
		gzr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzr.Close()
		return readTar(gzr)
	case FormatZip:
		return readZip(data)
	default:
		return nil, fmt.Errorf("unsupported bundle format: %q", format)
	}
}

func readTar(r io.Reader) ([]File, error) {
	tr := tar.NewReader(r)
	var files []File
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tar archive: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}
		if err := security.ValidateFilePath(header.Name, archiveRoot); err != nil {
			return nil, fmt.Errorf("invalid archive entry %q: %w", header.Name, err)
		}

		content, err := io.ReadAll(security.NewLimitedReader(tr, maxEntrySize))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", header.Name, err)
		}
		files = append(files, File{Name: header.Name, Content: content})
	}
	return files, nil
}

func readZip(data []byte) ([]File, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to create zip reader: %w", err)
	}

	var files []File
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if err := security.ValidateFilePath(f.Name, archiveRoot); err != nil {
			return nil, fmt.Errorf("invalid archive entry %q: %w", f.Name, err)
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(security.NewLimitedReader(rc, maxEntrySize))
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.Name, err)
		}
		files = append(files, File{Name: f.Name, Content: content})
	}
	return files, nil
}
