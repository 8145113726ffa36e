// Package archive builds Walk abstraction on top of "archive/zip".
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"path"
	"strings"
)

// WalkFunc is the type of the function called for each file in the archive
// visited by Walk. The name argument is the label passed to Walk. The file
// argument is the zip.File structure for a file which satisfies the match
// condition. If an error is returned, processing stops.
type WalkFunc func(name string, file *zip.File) error

// Walk walks all files of an in-memory zip archive whose path starts with
// pattern, calling walkFn for each. The name argument only labels the
// archive in errors, request payloads never touch the filesystem. Entries
// with path traversal components ("..") or absolute paths fail the walk to
// prevent Zip Slip attacks.
func Walk(name string, data []byte, pattern string, walkFn WalkFunc) error {

	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("opening %s: %w", name, err)
	}

	for _, f := range r.File {
		fname := f.FileHeader.Name
		if !isSafePath(fname) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", fname)
		}
		if !f.FileInfo().IsDir() && strings.HasPrefix(fname, pattern) {
			if err := walkFn(name, f); err != nil {
				return err
			}
		}
	}
	return nil
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
