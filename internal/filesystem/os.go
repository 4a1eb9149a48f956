// Package filesystem provides the operating system backed implementation of
// the read-only file access used by the license auditor.
package filesystem

import (
	"io/fs"
	"os"
)

// OSFileSystem implements read-only file access using the operating system primitives.
type OSFileSystem struct{}

// ReadFile reads file contents.
func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// ReadDir lists directory entries sorted by file name.
func (OSFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}
