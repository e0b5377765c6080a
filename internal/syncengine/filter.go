package syncengine

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FileFilter decides whether a scanned file name takes part in the sync.
type FileFilter interface {
	// ShouldInclude returns true if the file with the given name should be
	// considered a sync candidate.
	ShouldInclude(name string) bool
}

// ExcludeFilter implements FileFilter using a glob pattern of names to skip.
type ExcludeFilter struct {
	normalizedPattern string
	isEmpty           bool
}

// NewExcludeFilter creates a filter that skips names matching the pattern.
// An empty pattern excludes nothing. Matching is case-insensitive.
func NewExcludeFilter(pattern string) *ExcludeFilter {
	return &ExcludeFilter{
		normalizedPattern: strings.ToLower(pattern),
		isEmpty:           pattern == "",
	}
}

// ShouldInclude returns true unless the name matches the exclude pattern.
func (f *ExcludeFilter) ShouldInclude(name string) bool {
	if f.isEmpty {
		return true
	}

	matched, err := doublestar.Match(f.normalizedPattern, strings.ToLower(name))
	if err != nil {
		// An invalid pattern excludes nothing
		return true
	}

	return !matched
}
