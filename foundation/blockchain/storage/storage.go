// Package storage handles reading and writing exported chains on disk. An
// exported chain is kept whole in a single file in its exchange format.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when no exported chain exists at the path.
var ErrNotFound = errors.New("exported chain not found")

// File represents an exported chain stored in a file on disk.
type File struct {
	path string
}

// NewFile constructs a File for the specified path. The parent directory is
// created if it does not exist.
func NewFile(path string) (*File, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("path must be provided")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	return &File{path: path}, nil
}

// Path returns the location of the file.
func (f *File) Path() string {
	return f.path
}

// Save writes the exported chain to disk, replacing any previous content.
// The data is written to a temporary file first and then renamed so a
// reader never sees a partial export.
func (f *File) Save(exported string) error {
	tmp := f.path + ".tmp"

	if err := os.WriteFile(tmp, []byte(exported), 0600); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, f.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming %s: %w", tmp, err)
	}

	return nil
}

// Load reads the exported chain from disk.
func (f *File) Load() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", err
	}

	return strings.TrimSpace(string(data)), nil
}
