// Package fs defines the filesystem abstraction the uploader reads sources through.
package fs

import (
	"os"
	"path/filepath"
)

// Filesystem is the subset of filesystem operations needed to enumerate and
// read upload sources. Implementations should behave consistently with the
// standard library.
type Filesystem interface {
	Exists(path string) (bool, error)
	Lstat(name string) (os.FileInfo, error)
	MkdirAll(path string, perm os.FileMode) error
	Open(name string) (File, error)
	ReadDir(path string) ([]os.FileInfo, error)
	ReadFile(path string) ([]byte, error)
	Readlink(link string) (string, error)
	Stat(name string) (os.FileInfo, error)
	Symlink(target, link string) error
	Walk(root string, walkFn filepath.WalkFunc) error
	WriteFile(filename string, data []byte, perm os.FileMode) error
}
