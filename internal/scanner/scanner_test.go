package scanner

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/errors"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/fs/billy"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/uploadtypes"
)

func newTestFS(t *testing.T, files map[string]string) *billy.FS {
	t.Helper()
	fs := billy.NewInMemoryFS()
	for path, content := range files {
		require.NoError(t, fs.WriteFile(path, []byte(content), 0o644))
	}
	return fs
}

func keys(items []*uploadtypes.TransferItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.RemoteKey)
	}
	sort.Strings(out)
	return out
}

func TestScan_SingleFile(t *testing.T) {
	fs := newTestFS(t, map[string]string{"/ws/a.txt": "hello"})
	s := NewScanner(fs, nil, nil)

	kind, items, err := s.Scan(context.Background(), "/ws/a.txt", "k/a.txt")
	require.NoError(t, err)

	assert.Equal(t, KindFile, kind)
	require.Len(t, items, 1)
	assert.Equal(t, "k/a.txt", items[0].RemoteKey)
	assert.Equal(t, "/ws/a.txt", items[0].LocalPath)
	assert.Equal(t, int64(5), items[0].Size)
	assert.Equal(t, uploadtypes.ItemPending, items[0].State)
	assert.NotEmpty(t, items[0].ID)
}

func TestScan_SingleFileKeyIsVerbatim(t *testing.T) {
	fs := newTestFS(t, map[string]string{"/ws/a.txt": "x"})
	s := NewScanner(fs, []string{"*.go"}, []string{"*.txt"})

	_, items, err := s.Scan(context.Background(), "/ws/a.txt", "prefix/")
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "prefix/", items[0].RemoteKey)
}

func TestScan_Directory(t *testing.T) {
	fs := newTestFS(t, map[string]string{
		"/ws/dir/x.txt":        "x",
		"/ws/dir/sub/y.txt":    "yy",
		"/ws/dir/sub/z/w.bin":  "www",
		"/ws/other/ignored.go": "no",
	})
	s := NewScanner(fs, nil, nil)

	tests := []struct {
		name   string
		prefix string
		want   []string
	}{
		{
			name:   "plain prefix",
			prefix: "p",
			want:   []string{"p/sub/y.txt", "p/sub/z/w.bin", "p/x.txt"},
		},
		{
			name:   "trailing slash is not doubled",
			prefix: "p/",
			want:   []string{"p/sub/y.txt", "p/sub/z/w.bin", "p/x.txt"},
		},
		{
			name:   "nested prefix",
			prefix: "a/b",
			want:   []string{"a/b/sub/y.txt", "a/b/sub/z/w.bin", "a/b/x.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, items, err := s.Scan(context.Background(), "/ws/dir", tt.prefix)
			require.NoError(t, err)
			assert.Equal(t, KindDirectory, kind)
			assert.Equal(t, tt.want, keys(items))

			ids := map[string]bool{}
			for _, item := range items {
				assert.False(t, ids[item.ID], "duplicate item id %s", item.ID)
				ids[item.ID] = true
				assert.True(t, strings.HasPrefix(item.LocalPath, "/ws/dir/"))
			}
		})
	}
}

func TestScan_EmptyDirectory(t *testing.T) {
	fs := billy.NewInMemoryFS()
	require.NoError(t, fs.MkdirAll("/ws/empty", 0o755))
	s := NewScanner(fs, nil, nil)

	kind, items, err := s.Scan(context.Background(), "/ws/empty", "p")
	require.NoError(t, err)
	assert.Equal(t, KindDirectory, kind)
	assert.Empty(t, items)
}

func TestScan_MissingSource(t *testing.T) {
	s := NewScanner(billy.NewInMemoryFS(), nil, nil)

	_, items, err := s.Scan(context.Background(), "/ws/missing.txt", "k")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Empty(t, items)
}

func TestScan_Patterns(t *testing.T) {
	fs := newTestFS(t, map[string]string{
		"/ws/dir/main.go":       "",
		"/ws/dir/main_test.go":  "",
		"/ws/dir/README.md":     "",
		"/ws/dir/build/out.bin": "",
		"/ws/dir/pkg/lib.go":    "",
		"/ws/dir/pkg/tmp.tmp":   "",
	})

	tests := []struct {
		name    string
		include []string
		exclude []string
		want    []string
	}{
		{
			name: "no patterns",
			want: []string{"p/README.md", "p/build/out.bin", "p/main.go", "p/main_test.go", "p/pkg/lib.go", "p/pkg/tmp.tmp"},
		},
		{
			name:    "include go files anywhere",
			include: []string{"**/*.go"},
			want:    []string{"p/main.go", "p/main_test.go", "p/pkg/lib.go"},
		},
		{
			name:    "exclude directory",
			exclude: []string{"build/"},
			want:    []string{"p/README.md", "p/main.go", "p/main_test.go", "p/pkg/lib.go", "p/pkg/tmp.tmp"},
		},
		{
			name:    "exclude by base name",
			exclude: []string{"*.tmp"},
			want:    []string{"p/README.md", "p/build/out.bin", "p/main.go", "p/main_test.go", "p/pkg/lib.go"},
		},
		{
			name:    "exclude wins over include",
			include: []string{"*.go"},
			exclude: []string{"*_test.go"},
			want:    []string{"p/main.go", "p/pkg/lib.go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScanner(fs, tt.include, tt.exclude)
			_, items, err := s.Scan(context.Background(), "/ws/dir", "p")
			require.NoError(t, err)
			assert.Equal(t, tt.want, keys(items))
		})
	}
}

func TestScan_KeyTooLong(t *testing.T) {
	fs := newTestFS(t, map[string]string{"/ws/dir/" + strings.Repeat("n", 200) + ".txt": "x"})
	s := NewScanner(fs, nil, nil)

	_, _, err := s.Scan(context.Background(), "/ws/dir", strings.Repeat("p", 900))
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestScan_Cancelled(t *testing.T) {
	fs := newTestFS(t, map[string]string{"/ws/dir/a.txt": "a"})
	s := NewScanner(fs, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := s.Scan(ctx, "/ws/dir", "p")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

func TestScan_SymlinkedRootDirectory(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"real/a.txt":     "a",
		"real/sub/b.txt": "bb",
	})
	require.NoError(t, os.Symlink("real", filepath.Join(root, "dist")))

	s := NewScanner(billy.NewBaseOSFS(), nil, nil)
	kind, items, err := s.Scan(context.Background(), filepath.Join(root, "dist"), "k")
	require.NoError(t, err)

	assert.Equal(t, KindDirectory, kind)
	assert.Equal(t, []string{"k/a.txt", "k/sub/b.txt"}, keys(items))
	for _, item := range items {
		data, err := os.ReadFile(item.LocalPath)
		require.NoError(t, err)
		assert.Equal(t, item.Size, int64(len(data)))
	}
}

func TestScan_SymlinkedRootFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"real.txt": "hello"})
	require.NoError(t, os.Symlink("real.txt", filepath.Join(root, "link.txt")))

	s := NewScanner(billy.NewBaseOSFS(), nil, nil)
	kind, items, err := s.Scan(context.Background(), filepath.Join(root, "link.txt"), "k/a.txt")
	require.NoError(t, err)

	assert.Equal(t, KindFile, kind)
	require.Len(t, items, 1)
	assert.Equal(t, "k/a.txt", items[0].RemoteKey)
	assert.Equal(t, int64(5), items[0].Size)
}

func TestScan_SymlinksInsideDirectory(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/top.txt":       "t",
		"shared/lib/x.js":   "x",
		"shared/readme.md":  "r",
		"src/nested/in.txt": "i",
	})
	require.NoError(t, os.Symlink("../shared", filepath.Join(root, "src", "vendor")))
	require.NoError(t, os.Symlink(filepath.Join(root, "shared", "readme.md"), filepath.Join(root, "src", "README")))
	require.NoError(t, os.Symlink("missing.txt", filepath.Join(root, "src", "dangling")))

	s := NewScanner(billy.NewBaseOSFS(), nil, nil)
	_, items, err := s.Scan(context.Background(), filepath.Join(root, "src"), "p")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"p/README",
		"p/nested/in.txt",
		"p/top.txt",
		"p/vendor/lib/x.js",
		"p/vendor/readme.md",
	}, keys(items))
}

func TestScan_SymlinkLoops(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"tree/a.txt":   "a",
		"other/b.txt":  "b",
		"tree/c/d.txt": "d",
	})
	// tree/c/up points back at tree; tree/side and other/back form a cycle
	// through two directories.
	require.NoError(t, os.Symlink("..", filepath.Join(root, "tree", "c", "up")))
	require.NoError(t, os.Symlink("../other", filepath.Join(root, "tree", "side")))
	require.NoError(t, os.Symlink("../tree", filepath.Join(root, "other", "back")))
	require.NoError(t, os.Symlink("self", filepath.Join(root, "tree", "self")))

	s := NewScanner(billy.NewBaseOSFS(), nil, nil)
	_, items, err := s.Scan(context.Background(), filepath.Join(root, "tree"), "p")
	require.NoError(t, err)

	assert.Equal(t, []string{"p/a.txt", "p/c/d.txt", "p/side/b.txt"}, keys(items))
}

func TestScan_SymlinkedRootInMemory(t *testing.T) {
	fs := newTestFS(t, map[string]string{
		"/data/build/out/a.txt":     "a",
		"/data/build/out/sub/b.txt": "b",
	})
	require.NoError(t, fs.Symlink("/data/build/out", "/ws/dist"))

	s := NewScanner(fs, nil, nil)
	kind, items, err := s.Scan(context.Background(), "/ws/dist", "k")
	require.NoError(t, err)

	assert.Equal(t, KindDirectory, kind)
	assert.Equal(t, []string{"k/a.txt", "k/sub/b.txt"}, keys(items))
}

func TestDirectoryKey(t *testing.T) {
	tests := []struct {
		prefix, rel, want string
	}{
		{"p", "a.txt", "p/a.txt"},
		{"p/", "a.txt", "p/a.txt"},
		{"p", "sub/a.txt", "p/sub/a.txt"},
		{"/", "a.txt", "/a.txt"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DirectoryKey(tt.prefix, tt.rel))
	}
}
