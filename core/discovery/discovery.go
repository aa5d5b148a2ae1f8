// Package discovery implements C1: walking one root and emitting paths
// whose extension is in the configured image-extension set.
package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/halvard/duplifind/core/infrastructure/log"
)

// ImageExtensions is the default set of recognized image extensions
// (§4.1), matched case-insensitively.
var ImageExtensions = []string{
	".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".tif", ".webp",
	".heic", ".heif", ".avif", ".jxl",
	".cr2", ".nef", ".arw", ".dng", ".raf", ".orf", ".rw2",
}

// Walker finds image files under a root directory.
type Walker struct {
	extensions map[string]bool
	logger     log.Logger
}

// New creates a Walker over the given extension set (defaults to
// ImageExtensions when nil/empty). Extensions are matched without regard
// to case.
func New(extensions []string, logger log.Logger) *Walker {
	if len(extensions) == 0 {
		extensions = ImageExtensions
	}
	set := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		set[strings.ToLower(ext)] = true
	}
	return &Walker{extensions: set, logger: logger}
}

// Walk emits the absolute paths of matching files under root. When
// recursive is false, only files directly inside root are considered.
// Symlinks to regular files are followed; symlink cycles are detected via
// a visited-real-path guard and skipped. Unreadable directories are logged and
// traversal continues.
func (w *Walker) Walk(root string, recursive bool) ([]string, error) {
	var paths []string
	visited := make(map[string]bool)

	walkFn := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if w.logger != nil {
				w.logger.Warnf("discovery: cannot access %s: %v", path, err)
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if !recursive && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		info, err := resolveEntry(path, d, visited)
		if err != nil {
			if w.logger != nil {
				w.logger.Warnf("discovery: cannot resolve %s: %v", path, err)
			}
			return nil
		}
		if info == nil {
			// Symlink target already visited: skip silently.
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		if w.extensions[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	}

	if err := filepath.WalkDir(root, walkFn); err != nil {
		return nil, err
	}
	return paths, nil
}

// resolveEntry follows a symlink (if path is one) and returns the target's
// FileInfo, guarding against cycles by tracking resolved real paths. It
// returns (nil, nil) when a cycle is detected so the caller can skip the
// entry without treating it as an error.
func resolveEntry(path string, d fs.DirEntry, visited map[string]bool) (os.FileInfo, error) {
	if d.Type()&os.ModeSymlink == 0 {
		return d.Info()
	}

	real, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil, err
	}
	if visited[real] {
		return nil, nil
	}
	visited[real] = true

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return info, nil
}
