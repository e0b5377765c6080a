package errors

import "strings"

// PatternMatcher matches error messages to categories using string patterns.
type PatternMatcher interface {
	Match(errorMsg string) ErrorCategory
}

// NewPatternMatcher creates a new PatternMatcher with predefined patterns.
func NewPatternMatcher() PatternMatcher {
	return &patternMatcher{
		patterns: map[ErrorCategory][]string{
			CategoryConnection: {
				"connection reset",
				"connection refused",
				"broken pipe",
				"connection lost",
				"handshake failed",
				"use of closed network connection",
			},
			CategoryPermission: {
				"permission denied",
				"access denied",
				"operation not permitted",
				"read-only file system",
			},
			CategoryDeviceSpace: {
				"no space left on device",
				"disk full",
				"quota exceeded",
			},
			CategoryPath: {
				"no such file or directory",
				"file not found",
				"path does not exist",
			},
			CategoryTransfer: {
				"short write",
				"input/output error",
				"i/o error",
				"unexpected eof",
			},
		},
	}
}

// patternMatcher is the concrete implementation of PatternMatcher.
type patternMatcher struct {
	patterns map[ErrorCategory][]string
}

// Match returns the error category based on pattern matching.
func (m *patternMatcher) Match(errorMsg string) ErrorCategory {
	lowerMsg := strings.ToLower(errorMsg)

	// Connection errors are checked first: a dropped session frequently
	// surfaces as a secondary i/o error, and the connection is the root cause.
	ordered := []ErrorCategory{
		CategoryConnection,
		CategoryPermission,
		CategoryDeviceSpace,
		CategoryPath,
		CategoryTransfer,
	}

	for _, category := range ordered {
		for _, pattern := range m.patterns[category] {
			if strings.Contains(lowerMsg, pattern) {
				return category
			}
		}
	}

	return CategoryUnknown
}
