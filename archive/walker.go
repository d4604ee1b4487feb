// Package archive builds Walk abstraction on top of "archive/zip", so
// stylesheets may be listed directly from theme bundles and packaged sites.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern selects stylesheets anywhere in archive.
const DefaultPattern = "**/*.css"

// WalkFunc is the type of the function called for each file in archive
// visited by Walk. The archive argument contains path to archive passed to
// Walk, name is the path of the file inside of archive and data is its
// content. If an error is returned, processing stops.
type WalkFunc func(archive, name string, data []byte) error

// Walk walks all files in the archive whose path matches glob pattern (with
// "**" support, case insensitive), calling walkFn for each in archive order.
// Entries with path traversal components ("..") or absolute paths make the
// whole archive suspicious and are reported as an error.
func Walk(archive, pattern string, walkFn WalkFunc) error {
	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("bad pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}
	pattern = strings.ToLower(pattern)

	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() {
			continue
		}
		if ok, _ := doublestar.Match(pattern, strings.ToLower(name)); !ok {
			continue
		}

		data, err := readFile(f)
		if err != nil {
			return fmt.Errorf("zip entry %q: %w", name, err)
		}
		if err := walkFn(archive, name, data); err != nil {
			return err
		}
	}
	return nil
}

func readFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
