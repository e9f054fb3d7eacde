package billy

import (
	"testing"

	parentfs "github.com/input-output-hk/catalyst-forge-libs/s3upload/fs"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/fs/fstest"
)

func TestInMemoryFS(t *testing.T) {
	fstest.TestSuite(t, func(*testing.T) (parentfs.Filesystem, string) {
		return NewInMemoryFS(), "/"
	})
}

func TestOSFS(t *testing.T) {
	fstest.TestSuite(t, func(t *testing.T) (parentfs.Filesystem, string) {
		return NewOSFS(t.TempDir()), "/"
	})
}

func TestBaseOSFS(t *testing.T) {
	fstest.TestSuite(t, func(t *testing.T) (parentfs.Filesystem, string) {
		return NewBaseOSFS(), t.TempDir()
	})
}
