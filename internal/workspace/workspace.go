// Package workspace resolves request paths against the working directory
// the coordinator was configured with.
package workspace

import (
	"path/filepath"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/fs"
)

// Resolver maps request paths onto a filesystem.
type Resolver struct {
	root string
	fs   fs.Filesystem
}

// NewResolver creates a resolver rooted at root. An empty root leaves
// relative paths relative to the filesystem's own working directory.
func NewResolver(filesystem fs.Filesystem, root string) *Resolver {
	return &Resolver{root: root, fs: filesystem}
}

// Resolve returns the path a request's SourcePath refers to. Absolute paths
// are cleaned and returned as is.
func (r *Resolver) Resolve(path string) string {
	if filepath.IsAbs(path) || r.root == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(r.root, path)
}

// Root returns the working-directory root.
func (r *Resolver) Root() string {
	return r.root
}

// Filesystem returns the filesystem paths resolve onto.
//
//nolint:ireturn // callers take the fs.Filesystem interface.
func (r *Resolver) Filesystem() fs.Filesystem {
	return r.fs
}

// URI renders a resolved path as a file URI for log lines.
func URI(path string) string {
	return "file://" + filepath.ToSlash(path)
}
