package scanner

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/errors"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/fs"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/internal/validation"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/uploadtypes"
)

// Kind describes what a source path turned out to be.
type Kind int

const (
	// KindOther is anything that is neither a regular file nor a directory.
	KindOther Kind = iota
	// KindFile is a single regular file.
	KindFile
	// KindDirectory is a directory tree.
	KindDirectory
)

// maxLinkHops bounds symlink chains, matching the common kernel limit.
const maxLinkHops = 40

var errTooManyLinks = stderrors.New("too many levels of symbolic links")

// Scanner enumerates upload sources on a filesystem.
type Scanner struct {
	filesystem      fs.Filesystem
	patternMatcher  *PatternMatcher
	includePatterns []string
	excludePatterns []string
}

// NewScanner creates a scanner over the given filesystem. Include and exclude
// patterns only apply to directory sources.
func NewScanner(filesystem fs.Filesystem, includePatterns, excludePatterns []string) *Scanner {
	return &Scanner{
		filesystem:      filesystem,
		patternMatcher:  NewPatternMatcher(),
		includePatterns: includePatterns,
		excludePatterns: excludePatterns,
	}
}

// Scan enumerates the source at localPath and maps each file to a remote key
// under keyPrefix. It returns ErrNotFound if localPath does not exist.
func (s *Scanner) Scan(
	ctx context.Context,
	localPath string,
	keyPrefix string,
) (Kind, []*uploadtypes.TransferItem, error) {
	exists, err := s.filesystem.Exists(localPath)
	if err != nil {
		return KindOther, nil, fmt.Errorf("failed to check source %s: %w", localPath, err)
	}
	if !exists {
		return KindOther, nil, errors.NewError("enumerate", errors.ErrNotFound).
			WithMessage(localPath)
	}

	realPath, err := s.resolve(localPath)
	if err != nil {
		return KindOther, nil, fmt.Errorf("failed to resolve source %s: %w", localPath, err)
	}

	info, err := s.filesystem.Stat(realPath)
	if err != nil {
		return KindOther, nil, fmt.Errorf("failed to stat source %s: %w", localPath, err)
	}

	switch {
	case info.Mode().IsRegular():
		return KindFile, []*uploadtypes.TransferItem{newItem(realPath, keyPrefix, info.Size())}, nil
	case info.IsDir():
		w := &walker{scanner: s, keyPrefix: keyPrefix, ancestors: map[string]bool{}}
		if err := w.walk(ctx, realPath, ""); err != nil {
			return KindDirectory, nil, fmt.Errorf("failed to walk directory %s: %w", localPath, err)
		}
		return KindDirectory, w.items, nil
	default:
		return KindOther, nil, nil
	}
}

// resolve follows path while it is a symlink and returns the first path
// that is not one. Relative targets resolve against the link's directory.
func (s *Scanner) resolve(path string) (string, error) {
	for range maxLinkHops {
		info, err := s.filesystem.Lstat(path)
		if err != nil {
			return "", err
		}
		if info.Mode()&os.ModeSymlink == 0 {
			return path, nil
		}

		target, err := s.filesystem.Readlink(path)
		if err != nil {
			return "", err
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}
		path = filepath.Clean(target)
	}
	return "", fmt.Errorf("%s: %w", path, errTooManyLinks)
}

// walker enumerates one directory source. Directories are read by their
// resolved path, so a symlinked directory is walked like a real one and
// ancestors holds the resolved directories on the current branch.
type walker struct {
	scanner   *Scanner
	keyPrefix string
	ancestors map[string]bool
	items     []*uploadtypes.TransferItem
}

func (w *walker) walk(ctx context.Context, dir, relDir string) error {
	// A link back to a directory being walked would recurse forever.
	if w.ancestors[dir] {
		return nil
	}
	w.ancestors[dir] = true
	defer delete(w.ancestors, dir)

	entries, err := w.scanner.filesystem.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		path := filepath.Join(dir, entry.Name())
		relPath := filepath.Join(relDir, entry.Name())

		info := entry
		if entry.Mode()&os.ModeSymlink != 0 {
			resolved, err := w.scanner.resolve(path)
			if err != nil {
				// Dangling or looping links are skipped.
				continue
			}
			if info, err = w.scanner.filesystem.Stat(resolved); err != nil {
				continue
			}
			path = resolved
		}

		switch {
		case info.IsDir():
			if err := w.walk(ctx, path, relPath); err != nil {
				return err
			}
		case info.Mode().IsRegular():
			if err := w.add(path, relPath, info.Size()); err != nil {
				return err
			}
		}
	}

	return nil
}

func (w *walker) add(path, relPath string, size int64) error {
	if !w.scanner.patternMatcher.ShouldIncludeFile(relPath, w.scanner.includePatterns, w.scanner.excludePatterns) {
		return nil
	}

	key := DirectoryKey(w.keyPrefix, relPath)
	if err := validation.ValidateObjectKey(key); err != nil {
		return err
	}

	w.items = append(w.items, newItem(path, key, size))
	return nil
}

// DirectoryKey joins a key prefix and a relative path with a single "/".
// A trailing "/" on the prefix is not doubled and the relative path always
// uses forward slashes.
func DirectoryKey(keyPrefix, relPath string) string {
	return strings.TrimSuffix(keyPrefix, "/") + "/" + filepath.ToSlash(relPath)
}

func newItem(localPath, key string, size int64) *uploadtypes.TransferItem {
	return &uploadtypes.TransferItem{
		ID:        uuid.NewString(),
		LocalPath: localPath,
		RemoteKey: key,
		Size:      size,
		State:     uploadtypes.ItemPending,
	}
}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	default:
		return "other"
	}
}
