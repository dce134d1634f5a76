// Package archive writes a set of walked files into a zip archive
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"

	"github.com/bethropolis/gitree/internal/walker"
)

// Extension is appended to the stem given to CreateZip
const Extension = ".zip"

// WriteZip writes files to w. Member names are the entries' root-relative,
// forward-slash paths.
func WriteZip(w io.Writer, files []walker.Entry) error {
	zw := zip.NewWriter(w)
	for _, f := range files {
		if f.IsDir {
			continue
		}
		if err := addFile(zw, f); err != nil {
			_ = zw.Close()
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("archive: finalizing zip: %w", err)
	}
	return nil
}

// CreateZip writes files to stem + ".zip" and returns the path written
func CreateZip(stem string, files []walker.Entry) (string, error) {
	path := stem + Extension
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("archive: failed to create '%s': %w", path, err)
	}

	if err := WriteZip(out, files); err != nil {
		out.Close()
		_ = os.Remove(path) // No partial archives
		return "", err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("archive: failed to close '%s': %w", path, err)
	}
	return path, nil
}

func addFile(zw *zip.Writer, f walker.Entry) error {
	info, err := os.Stat(f.Path)
	if err != nil {
		return fmt.Errorf("archive: failed to stat '%s': %w", f.RelPath, err)
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("archive: failed to build header for '%s': %w", f.RelPath, err)
	}
	header.Name = f.RelPath
	header.Method = zip.Deflate

	dst, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("archive: failed to add '%s': %w", f.RelPath, err)
	}

	src, err := os.Open(f.Path)
	if err != nil {
		return fmt.Errorf("archive: failed to open '%s': %w", f.RelPath, err)
	}
	defer src.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("archive: failed to write '%s': %w", f.RelPath, err)
	}
	return nil
}
