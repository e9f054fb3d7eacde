package scanner

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// PatternMatcher filters relative paths with gitignore-like glob patterns.
//
// Supported forms:
//   - "dir/" matches everything below dir
//   - "**" matches any number of path segments, e.g. "**/*.log" or "build/**"
//   - anything else is a path.Match pattern; a pattern without "/" also
//     matches against the base name, so "*.tmp" excludes nested files
type PatternMatcher struct{}

// NewPatternMatcher creates a new pattern matcher.
func NewPatternMatcher() *PatternMatcher {
	return &PatternMatcher{}
}

// ShouldIncludeFile reports whether relPath passes the filters. Excludes win;
// when include patterns are present the path must match at least one.
func (pm *PatternMatcher) ShouldIncludeFile(
	relPath string,
	includePatterns []string,
	excludePatterns []string,
) bool {
	relPath = filepath.ToSlash(relPath)

	for _, pattern := range excludePatterns {
		if pm.matchesPattern(relPath, pattern) {
			return false
		}
	}

	if len(includePatterns) == 0 {
		return true
	}

	for _, pattern := range includePatterns {
		if pm.matchesPattern(relPath, pattern) {
			return true
		}
	}
	return false
}

func (pm *PatternMatcher) matchesPattern(p, pattern string) bool {
	pattern = filepath.ToSlash(pattern)

	if dir, ok := strings.CutSuffix(pattern, "/"); ok {
		return p == dir || strings.HasPrefix(p, dir+"/")
	}

	if strings.Contains(pattern, "**") {
		return matchSegments(strings.Split(pattern, "/"), strings.Split(p, "/"))
	}

	if match, err := path.Match(pattern, p); err == nil && match {
		return true
	}

	if !strings.Contains(pattern, "/") {
		match, err := path.Match(pattern, path.Base(p))
		return err == nil && match
	}

	return false
}

// matchSegments matches slash-separated pattern segments against path
// segments, letting a "**" segment consume zero or more path segments.
func matchSegments(pattern, segments []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			for i := 0; i <= len(segments); i++ {
				if matchSegments(rest, segments[i:]) {
					return true
				}
			}
			return false
		}

		if len(segments) == 0 {
			return false
		}
		match, err := path.Match(pattern[0], segments[0])
		if err != nil || !match {
			return false
		}
		pattern, segments = pattern[1:], segments[1:]
	}
	return len(segments) == 0
}

// ValidatePatterns returns an error for every pattern path.Match rejects.
func (pm *PatternMatcher) ValidatePatterns(patterns []string) []error {
	var errs []error

	for i, pattern := range patterns {
		for _, seg := range strings.Split(filepath.ToSlash(pattern), "/") {
			if seg == "**" {
				continue
			}
			if _, err := path.Match(seg, "dummy"); err != nil {
				errs = append(errs, &PatternError{
					Pattern: pattern,
					Index:   i,
					Err:     err,
				})
				break
			}
		}
	}

	return errs
}

// PatternError represents an error with a pattern.
type PatternError struct {
	Pattern string
	Index   int
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern at index %d '%s': %v", e.Index, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}
