package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatternMatcher_ShouldIncludeFile(t *testing.T) {
	pm := NewPatternMatcher()

	tests := []struct {
		name    string
		path    string
		include []string
		exclude []string
		want    bool
	}{
		{"no patterns", "a/b.txt", nil, nil, true},
		{"simple include", "b.txt", []string{"*.txt"}, nil, true},
		{"include base name of nested file", "a/b.txt", []string{"*.txt"}, nil, true},
		{"include miss", "a/b.go", []string{"*.txt"}, nil, false},
		{"directory exclude", "build/x/y.o", nil, []string{"build/"}, false},
		{"directory exclude does not match sibling", "builder/y.o", nil, []string{"build/"}, true},
		{"recursive include", "a/b/c.log", []string{"**/*.log"}, nil, true},
		{"recursive include at root", "c.log", []string{"**/*.log"}, nil, true},
		{"recursive suffix", "dist/a/b", []string{"dist/**"}, nil, true},
		{"recursive middle", "a/x/y/z.go", []string{"a/**/z.go"}, nil, true},
		{"recursive middle miss", "b/x/z.go", []string{"a/**/z.go"}, nil, false},
		{"exclude wins", "a.txt", []string{"*.txt"}, []string{"a.*"}, false},
		{"anchored pattern with slash", "x/a.txt", []string{"a/*.txt"}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pm.ShouldIncludeFile(tt.path, tt.include, tt.exclude))
		})
	}
}

func TestPatternMatcher_ValidatePatterns(t *testing.T) {
	pm := NewPatternMatcher()

	assert.Empty(t, pm.ValidatePatterns([]string{"*.go", "**/x", "dir/", "a/**/b"}))

	errs := pm.ValidatePatterns([]string{"ok", "[bad"})
	if assert.Len(t, errs, 1) {
		var perr *PatternError
		assert.ErrorAs(t, errs[0], &perr)
		assert.Equal(t, 1, perr.Index)
		assert.Equal(t, "[bad", perr.Pattern)
	}
}
