// Package asset resolves image-reference names against the image directory.
//
// A name is always joined onto a single base directory. Manifests written by
// one installation stay valid for another as long as both use the same
// directory layout.
package asset

import (
	"os"
	"path/filepath"
)

type Library struct {
	baseDir string
}

func NewLibrary(baseDir string) *Library {
	return &Library{baseDir: baseDir}
}

func (l *Library) BaseDir() string {
	return l.baseDir
}

// Path returns the on-disk location of the named asset.
func (l *Library) Path(name string) string {
	return filepath.Join(l.baseDir, name)
}

// Exists reports whether name refers to a regular file in the base directory.
func (l *Library) Exists(name string) bool {
	if name == "" {
		return false
	}
	info, err := os.Stat(l.Path(name))
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
