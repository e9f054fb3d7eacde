// Package fstest provides a conformance test suite for fs.Filesystem
// implementations.
//
// Example usage:
//
//	func TestMyProvider(t *testing.T) {
//	    fstest.TestSuite(t, func(t *testing.T) (fs.Filesystem, string) {
//	        return myprovider.New(), "/"
//	    })
//	}
package fstest

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/fs"
)

// Factory returns a fresh, empty filesystem and the root directory tests
// should create files under.
type Factory func(t *testing.T) (fs.Filesystem, string)

// TestSuite runs every conformance test against filesystems from newFS.
// Each subtest gets its own filesystem.
func TestSuite(t *testing.T, newFS Factory) {
	tests := []struct {
		name string
		run  func(*testing.T, fs.Filesystem, string)
	}{
		{"MkdirAllStat", testMkdirAllStat},
		{"WriteReadExists", testWriteReadExists},
		{"OpenRead", testOpenRead},
		{"OpenNotExist", testOpenNotExist},
		{"StatNotExist", testStatNotExist},
		{"Walk", testWalk},
		{"WalkStop", testWalkStop},
		{"ReadDir", testReadDir},
		{"Symlink", testSymlink},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filesystem, root := newFS(t)
			tt.run(t, filesystem, root)
		})
	}
}

func testMkdirAllStat(t *testing.T, filesystem fs.Filesystem, root string) {
	require.NoError(t, filesystem.MkdirAll(filepath.Join(root, "a/b/c"), 0o755))

	info, err := filesystem.Stat(filepath.Join(root, "a/b"))
	require.NoError(t, err)
	assert.True(t, info.IsDir(), "expected directory, got file: %v", info.Name())

	ok, err := filesystem.Exists(filepath.Join(root, "a/b/c"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func testWriteReadExists(t *testing.T, filesystem fs.Filesystem, root string) {
	p := filepath.Join(root, "file.txt")

	ok, err := filesystem.Exists(p)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, filesystem.WriteFile(p, []byte("hello"), 0o644))

	ok, err = filesystem.Exists(p)
	require.NoError(t, err)
	assert.True(t, ok)

	b, err := filesystem.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))

	info, err := filesystem.Stat(p)
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())
	assert.Equal(t, int64(5), info.Size())
}

func testOpenRead(t *testing.T, filesystem fs.Filesystem, root string) {
	p := filepath.Join(root, "open.txt")
	require.NoError(t, filesystem.WriteFile(p, []byte("abcdef"), 0o644))

	f, err := filesystem.Open(p)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	require.NoError(t, err)
	assert.Equal(t, int64(6), info.Size())

	buf := make([]byte, 3)
	n, err := f.ReadAt(buf, 3)
	require.NoError(t, err)
	assert.Equal(t, "def", string(buf[:n]))

	_, err = f.Seek(0, io.SeekStart)
	require.NoError(t, err)
	all, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "abcdef", string(all))
}

func testOpenNotExist(t *testing.T, filesystem fs.Filesystem, root string) {
	_, err := filesystem.Open(filepath.Join(root, "missing.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func testStatNotExist(t *testing.T, filesystem fs.Filesystem, root string) {
	_, err := filesystem.Stat(filepath.Join(root, "missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func testWalk(t *testing.T, filesystem fs.Filesystem, root string) {
	dir := filepath.Join(root, "walk")
	require.NoError(t, filesystem.MkdirAll(filepath.Join(dir, "x/y"), 0o755))
	require.NoError(t, filesystem.WriteFile(filepath.Join(dir, "top.txt"), []byte("t"), 0o644))
	require.NoError(t, filesystem.WriteFile(filepath.Join(dir, "x/y/z.txt"), []byte("z"), 0o644))

	var files []string
	err := filesystem.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return err
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	require.NoError(t, err)

	sort.Strings(files)
	assert.Equal(t, []string{"top.txt", "x/y/z.txt"}, files)
}

func testWalkStop(t *testing.T, filesystem fs.Filesystem, root string) {
	dir := filepath.Join(root, "stop")
	require.NoError(t, filesystem.MkdirAll(dir, 0o755))
	require.NoError(t, filesystem.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))

	stop := io.ErrUnexpectedEOF
	err := filesystem.Walk(dir, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
}

func testReadDir(t *testing.T, filesystem fs.Filesystem, root string) {
	dir := filepath.Join(root, "list")
	require.NoError(t, filesystem.MkdirAll(filepath.Join(dir, "b"), 0o755))
	require.NoError(t, filesystem.WriteFile(filepath.Join(dir, "c.txt"), []byte("c"), 0o644))
	require.NoError(t, filesystem.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))

	entries, err := filesystem.ReadDir(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"a.txt", "b", "c.txt"}, names)
	assert.True(t, entries[1].IsDir())

	_, err = filesystem.ReadDir(filepath.Join(root, "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func testSymlink(t *testing.T, filesystem fs.Filesystem, root string) {
	dir := filepath.Join(root, "links")
	require.NoError(t, filesystem.MkdirAll(dir, 0o755))
	require.NoError(t, filesystem.WriteFile(filepath.Join(dir, "target.txt"), []byte("abc"), 0o644))

	link := filepath.Join(dir, "link.txt")
	require.NoError(t, filesystem.Symlink("target.txt", link))

	info, err := filesystem.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)

	target, err := filesystem.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, "target.txt", target)

	info, err = filesystem.Stat(link)
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())
	assert.Equal(t, int64(3), info.Size())

	entries, err := filesystem.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "link.txt", entries[0].Name())
	assert.NotZero(t, entries[0].Mode()&os.ModeSymlink)
}
