// Package fs defines the filesystem boundary used for local file access.
//
// Dfop uploads and text-file operations read whole files through this
// interface, and the CLI writes dfop output through it, so tests can run
// against an in-memory filesystem.
package fs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Filesystem is the subset of filesystem operations the client depends on.
// Implementations should behave consistently with the standard library.
type Filesystem interface {
	ReadFile(path string) ([]byte, error)
	Stat(name string) (os.FileInfo, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// GetAbs returns the absolute form of path.
func GetAbs(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("fs: abs %q: %w", path, err)
	}
	return abs, nil
}

// IsRegularFile reports whether path names an existing regular file.
// A missing path is not an error.
func IsRegularFile(fsys Filesystem, path string) (bool, error) {
	info, err := fsys.Stat(path)
	switch {
	case err == nil:
		return info.Mode().IsRegular(), nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}
